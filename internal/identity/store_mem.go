package identity

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyhall/studyhall-lms/internal/errs"
)

type memStore struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewInMemoryStore backs tests and throwaway setups; same uniqueness rules as
// the SQL store.
func NewInMemoryStore() Store {
	return &memStore{users: map[string]User{}}
}

func (m *memStore) Create(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.users {
		if e.Username == u.Username || e.Email == u.Email {
			return User{}, errs.Duplicate("username or email already taken")
		}
	}
	u.ID = uuid.NewString()
	now := time.Now().Unix()
	u.CreatedAt, u.UpdatedAt = now, now
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) Upsert(ctx context.Context, u User) (User, error) {
	m.mu.Lock()
	for id, e := range m.users {
		if e.Username == u.Username {
			e.Name, e.Email, e.Role = u.Name, u.Email, u.Role
			if u.PasswordHash != "" {
				e.PasswordHash = u.PasswordHash
			}
			e.UpdatedAt = time.Now().Unix()
			m.users[id] = e
			m.mu.Unlock()
			return e, nil
		}
	}
	m.mu.Unlock()
	return m.Create(ctx, u)
}

func (m *memStore) GetByID(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, errs.NotFoundf("user not found")
	}
	return u, nil
}

func (m *memStore) GetByUsername(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, errs.NotFoundf("user not found")
}

func (m *memStore) List(_ context.Context, role string) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []User
	for _, u := range m.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
