package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ricogpa/ricogpa-backend/internal/config"
	"github.com/ricogpa/ricogpa-backend/internal/model"
	"github.com/ricogpa/ricogpa-backend/internal/repository"
)

var nopLog = zerolog.New(io.Discard)

type memUsers struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*model.User
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int]*model.User{}} }

func (m *memUsers) GetByID(_ context.Context, id int) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memUsers) Create(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	m.nextID++
	u.ID = m.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) ListPaginated(_ context.Context, limit, offset int) ([]model.User, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]model.User, 0, len(m.byID))
	for _, u := range m.byID {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset >= len(all) {
		return nil, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

func (m *memUsers) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

type memCourses struct {
	mu      sync.Mutex
	courses []model.Course
	lists   int
}

func (m *memCourses) ListByUser(_ context.Context, userID int) ([]model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists++
	var out []model.Course
	for _, c := range m.courses {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCourses) ListByUsers(ctx context.Context, userIDs []int) (map[int][]model.Course, error) {
	out := map[int][]model.Course{}
	for _, id := range userIDs {
		cs, _ := m.ListByUser(ctx, id)
		if cs != nil {
			out[id] = cs
		}
	}
	return out, nil
}

func (m *memCourses) GetByID(_ context.Context, userID int, id uuid.UUID) (*model.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.courses {
		if c.ID == id && c.UserID == userID {
			cp := c
			return &cp, nil
		}
	}
	return nil, repository.ErrCourseNotFound
}

func (m *memCourses) Create(_ context.Context, c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courses = append(m.courses, *c)
	return nil
}

func (m *memCourses) Update(_ context.Context, c *model.Course) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.courses {
		if m.courses[i].ID == c.ID && m.courses[i].UserID == c.UserID {
			m.courses[i] = *c
			return nil
		}
	}
	return repository.ErrCourseNotFound
}

func (m *memCourses) Delete(_ context.Context, userID int, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.courses {
		if m.courses[i].ID == id && m.courses[i].UserID == userID {
			m.courses = append(m.courses[:i], m.courses[i+1:]...)
			return nil
		}
	}
	return repository.ErrCourseNotFound
}

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTExpiry:       time.Hour,
		BcryptCost:      4,
		AdminEmail:      "root@example.com",
		AdminPassword:   "rootpass",
		SummaryCacheTTL: time.Minute,
	}
}
