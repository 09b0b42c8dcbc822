package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ricogpa/ricogpa-backend/internal/model"
	"github.com/ricogpa/ricogpa-backend/internal/repository"
)

type userTable struct {
	mu   sync.Mutex
	next int
	rows map[int]model.User
}

func (u *userTable) GetByID(_ context.Context, id int) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	row, ok := u.rows[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &row, nil
}

func (u *userTable) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, row := range u.rows {
		if row.Email == email {
			return &row, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (u *userTable) Create(_ context.Context, user *model.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, row := range u.rows {
		if row.Email == user.Email {
			return repository.ErrEmailTaken
		}
	}
	u.next++
	user.ID = u.next
	user.CreatedAt, user.UpdatedAt = time.Now(), time.Now()
	u.rows[user.ID] = *user
	return nil
}

func (u *userTable) ListPaginated(_ context.Context, limit, offset int) ([]model.User, int, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	all := make([]model.User, 0, len(u.rows))
	for _, row := range u.rows {
		all = append(all, row)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	if offset > len(all) {
		offset = len(all)
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (u *userTable) Delete(_ context.Context, id int) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.rows[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(u.rows, id)
	return nil
}

type courseTable struct {
	mu   sync.Mutex
	rows []model.Course
}

func (t *courseTable) ListByUser(_ context.Context, userID int) ([]model.Course, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out []model.Course
	for _, c := range t.rows {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (t *courseTable) ListByUsers(ctx context.Context, userIDs []int) (map[int][]model.Course, error) {
	out := make(map[int][]model.Course, len(userIDs))
	for _, id := range userIDs {
		if cs, _ := t.ListByUser(ctx, id); len(cs) > 0 {
			out[id] = cs
		}
	}
	return out, nil
}

func (t *courseTable) find(userID int, id uuid.UUID) int {
	for i, c := range t.rows {
		if c.ID == id && c.UserID == userID {
			return i
		}
	}
	return -1
}

func (t *courseTable) GetByID(_ context.Context, userID int, id uuid.UUID) (*model.Course, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.find(userID, id)
	if i < 0 {
		return nil, repository.ErrCourseNotFound
	}
	c := t.rows[i]
	return &c, nil
}

func (t *courseTable) Create(_ context.Context, c *model.Course) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, *c)
	return nil
}

func (t *courseTable) Update(_ context.Context, c *model.Course) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.find(c.UserID, c.ID)
	if i < 0 {
		return repository.ErrCourseNotFound
	}
	t.rows[i] = *c
	return nil
}

func (t *courseTable) Delete(_ context.Context, userID int, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.find(userID, id)
	if i < 0 {
		return repository.ErrCourseNotFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}
