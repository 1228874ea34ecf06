// Package store persists user records as a single JSON document in a
// key/value backend, keyed by lower-case username.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/holotask/internal/domain"
	"github.com/alexanderramin/holotask/internal/repository"
)

const (
	// DBKey holds the username -> user record document.
	DBKey = "HOLOTASK_PERSISTENT_DB_V2"
	// CurrentUserKey holds the last logged-in username for auto-resume.
	CurrentUserKey = "HOLOTASK_CURRENT_USER"
)

var (
	ErrEmptyUsername = errors.New("username is empty")
	// ErrCorrupt means the stored document exists but is not valid JSON.
	ErrCorrupt = errors.New("stored user data is corrupt")
)

// HoloStore is the durable username -> User mapping. Every write rewrites
// the whole document.
type HoloStore struct {
	kv repository.KVRepo
}

func New(kv repository.KVRepo) *HoloStore {
	return &HoloStore{kv: kv}
}

// GetUsers returns every stored user. Nothing stored yields an empty map.
func (s *HoloStore) GetUsers(ctx context.Context) (map[string]domain.User, error) {
	return readUsers(ctx, s.kv)
}

// SaveUser inserts or overwrites the record for user.Username.
func (s *HoloStore) SaveUser(ctx context.Context, user domain.User) error {
	return s.atomically(ctx, func(ctx context.Context, kv repository.KVRepo) error {
		users, err := readUsers(ctx, kv)
		if err != nil {
			return err
		}
		users[user.Username] = user
		return writeUsers(ctx, kv, users)
	})
}

// Login returns the stored record for username, creating an empty one on
// first login. Existing task history is returned untouched.
func (s *HoloStore) Login(ctx context.Context, username string) (domain.User, error) {
	if strings.TrimSpace(username) == "" {
		return domain.User{}, ErrEmptyUsername
	}
	name := domain.NormalizeUsername(username)

	var user domain.User
	err := s.atomically(ctx, func(ctx context.Context, kv repository.KVRepo) error {
		users, err := readUsers(ctx, kv)
		if err != nil {
			return err
		}
		if existing, ok := users[name]; ok {
			user = existing
			return nil
		}
		user = domain.User{Username: name, Tasks: []domain.Task{}}
		users[name] = user
		return writeUsers(ctx, kv, users)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("login %q: %w", name, err)
	}
	return user, nil
}

// UpdateTasks replaces the task list of an existing user. An unknown
// username is silently ignored; it does not create the user.
func (s *HoloStore) UpdateTasks(ctx context.Context, username string, tasks []domain.Task) error {
	name := domain.NormalizeUsername(username)
	return s.atomically(ctx, func(ctx context.Context, kv repository.KVRepo) error {
		users, err := readUsers(ctx, kv)
		if err != nil {
			return err
		}
		user, ok := users[name]
		if !ok {
			return nil
		}
		user.Tasks = tasks
		users[name] = user
		return writeUsers(ctx, kv, users)
	})
}

// DeleteUser removes a stored record. Unknown usernames are ignored.
func (s *HoloStore) DeleteUser(ctx context.Context, username string) error {
	name := domain.NormalizeUsername(username)
	return s.atomically(ctx, func(ctx context.Context, kv repository.KVRepo) error {
		users, err := readUsers(ctx, kv)
		if err != nil {
			return err
		}
		if _, ok := users[name]; !ok {
			return nil
		}
		delete(users, name)
		return writeUsers(ctx, kv, users)
	})
}

// CurrentUser returns the recorded last-logged-in username.
func (s *HoloStore) CurrentUser(ctx context.Context) (string, bool, error) {
	name, err := s.kv.Get(ctx, CurrentUserKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	if name == "" {
		return "", false, nil
	}
	return name, true, nil
}

func (s *HoloStore) SetCurrentUser(ctx context.Context, username string) error {
	return s.kv.Set(ctx, CurrentUserKey, domain.NormalizeUsername(username))
}

func (s *HoloStore) ClearCurrentUser(ctx context.Context) error {
	return s.kv.Remove(ctx, CurrentUserKey)
}

// atomically runs a read-modify-write in one backend transaction when the
// backend supports it.
func (s *HoloStore) atomically(ctx context.Context, fn func(ctx context.Context, kv repository.KVRepo) error) error {
	if tx, ok := s.kv.(repository.TxKVRepo); ok {
		return tx.WithinTx(ctx, fn)
	}
	return fn(ctx, s.kv)
}

func readUsers(ctx context.Context, kv repository.KVRepo) (map[string]domain.User, error) {
	data, err := kv.Get(ctx, DBKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return map[string]domain.User{}, nil
		}
		return nil, fmt.Errorf("reading users: %w", err)
	}
	if data == "" {
		return map[string]domain.User{}, nil
	}

	var users map[string]domain.User
	if err := json.Unmarshal([]byte(data), &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if users == nil {
		users = map[string]domain.User{}
	}
	return users, nil
}

func writeUsers(ctx context.Context, kv repository.KVRepo, users map[string]domain.User) error {
	for name, u := range users {
		users[name] = withEmptySlices(u)
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encoding users: %w", err)
	}
	if err := kv.Set(ctx, DBKey, string(data)); err != nil {
		return fmt.Errorf("writing users: %w", err)
	}
	return nil
}

// withEmptySlices keeps "tasks" and "subtasks" encoded as arrays, never null.
func withEmptySlices(u domain.User) domain.User {
	if u.Tasks == nil {
		u.Tasks = []domain.Task{}
		return u
	}
	tasks := make([]domain.Task, len(u.Tasks))
	for i, t := range u.Tasks {
		if t.Subtasks == nil {
			t.Subtasks = []domain.Subtask{}
		}
		tasks[i] = t
	}
	u.Tasks = tasks
	return u
}
