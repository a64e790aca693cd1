package redis

import (
	"fmt"
	"strings"
)

// Key prefix for all arcade data
const keyPrefix = "arcade"

// userKey returns the Redis key for a user record. Usernames are lowercased
// in keys so lookups are case-insensitive.
func userKey(username string) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, strings.ToLower(username))
}

// usersIndexKey returns the Redis key for the SET of all usernames
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}
