package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// User records are stored as JSON values with a SET index over usernames;
// filter queries are evaluated client-side, which is adequate at the scale
// of a single-store deployment.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	key := userKey(user.Username)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkVersion(ctx, tx, key, user.Version); err != nil {
			return err
		}

		next := *user
		next.Version++
		data, err := json.Marshal(&next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, usersIndexKey(), strings.ToLower(user.Username))
			return nil
		})
		return err
	}, key)

	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return model.ErrVersionConflict
		}
		return err
	}

	user.Version++
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) DeleteUser(ctx context.Context, username string) (bool, error) {
	pipe := s.client.TxPipeline()
	del := pipe.Del(ctx, userKey(username))
	pipe.SRem(ctx, usersIndexKey(), strings.ToLower(username))
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return del.Val() > 0, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	return s.client.SCard(ctx, usersIndexKey()).Result()
}

func (s *Storage) CountMatching(ctx context.Context, filter storage.Filter) (int64, error) {
	users, err := s.loadAll(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, user := range users {
		if filter.Matches(user) {
			count++
		}
	}
	return count, nil
}

func (s *Storage) FindUsers(ctx context.Context, query storage.Query) ([]*model.User, error) {
	users, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*model.User, 0, len(users))
	for _, user := range users {
		if query.Filter.Matches(user) {
			matched = append(matched, user)
		}
	}

	storage.SortUsers(matched, query.Sort)
	return storage.Page(matched, query.Skip, query.Limit), nil
}

func (s *Storage) SaveUserPair(ctx context.Context, a, b *model.User) error {
	keyA := userKey(a.Username)
	keyB := userKey(b.Username)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		if err := checkVersion(ctx, tx, keyA, a.Version); err != nil {
			return err
		}
		if err := checkVersion(ctx, tx, keyB, b.Version); err != nil {
			return err
		}

		nextA := *a
		nextA.Version++
		dataA, err := json.Marshal(&nextA)
		if err != nil {
			return err
		}
		nextB := *b
		nextB.Version++
		dataB, err := json.Marshal(&nextB)
		if err != nil {
			return err
		}

		// MULTI/EXEC: both records land or neither does
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, keyA, dataA, 0)
			pipe.Set(ctx, keyB, dataB, 0)
			pipe.SAdd(ctx, usersIndexKey(),
				strings.ToLower(a.Username), strings.ToLower(b.Username))
			return nil
		})
		return err
	}, keyA, keyB)

	if err != nil {
		if errors.Is(err, redis.TxFailedErr) {
			return model.ErrVersionConflict
		}
		return err
	}

	a.Version++
	b.Version++
	return nil
}

// checkVersion verifies the stored record's version inside a WATCH block.
// A missing record counts as version 0.
func checkVersion(ctx context.Context, tx *redis.Tx, key string, expected int64) error {
	data, err := tx.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			if expected != 0 {
				return model.ErrVersionConflict
			}
			return nil
		}
		return err
	}

	var stored model.User
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}
	if stored.Version != expected {
		return model.ErrVersionConflict
	}
	return nil
}

// loadAll fetches every user record via the username index
func (s *Storage) loadAll(ctx context.Context) ([]*model.User, error) {
	usernames, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(usernames) == 0 {
		return nil, nil
	}

	keys := make([]string, len(usernames))
	for i, username := range usernames {
		keys[i] = userKey(username)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			// Index entry without a record; skip
			continue
		}
		var user model.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, nil
}
