package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are keyed by lowercased username so lookups are case-insensitive.
type Storage struct {
	mu    sync.RWMutex
	users map[string]*model.User
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users: make(map[string]*model.User),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func key(username string) string {
	return strings.ToLower(username)
}

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(user)
}

// saveLocked performs the conditional save; the caller holds the write lock
func (s *Storage) saveLocked(user *model.User) error {
	existing, ok := s.users[key(user.Username)]
	if ok {
		if existing.Version != user.Version {
			return model.ErrVersionConflict
		}
	} else if user.Version != 0 {
		return model.ErrVersionConflict
	}

	user.Version++
	stored := *user
	s.users[key(user.Username)] = &stored
	return nil
}

func (s *Storage) GetUser(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[key(username)]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) DeleteUser(ctx context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[key(username)]
	delete(s.users, key(username))
	return ok, nil
}

func (s *Storage) CountUsers(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

func (s *Storage) CountMatching(ctx context.Context, filter storage.Filter) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, user := range s.users {
		if filter.Matches(user) {
			count++
		}
	}
	return count, nil
}

func (s *Storage) FindUsers(ctx context.Context, query storage.Query) ([]*model.User, error) {
	s.mu.RLock()
	matched := make([]*model.User, 0)
	for _, user := range s.users {
		if query.Filter.Matches(user) {
			copied := *user
			matched = append(matched, &copied)
		}
	}
	s.mu.RUnlock()

	storage.SortUsers(matched, query.Sort)
	return storage.Page(matched, query.Skip, query.Limit), nil
}

func (s *Storage) SaveUserPair(ctx context.Context, a, b *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check both versions up front so a conflict on the second record cannot
	// leave the first one written
	for _, user := range []*model.User{a, b} {
		existing, ok := s.users[key(user.Username)]
		if ok {
			if existing.Version != user.Version {
				return model.ErrVersionConflict
			}
		} else if user.Version != 0 {
			return model.ErrVersionConflict
		}
	}

	if err := s.saveLocked(a); err != nil {
		return err
	}
	return s.saveLocked(b)
}
