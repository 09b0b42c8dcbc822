package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ricogpa/ricogpa-backend/internal/model"
)

// UserStore is the persistence the services need for accounts.
// *repository.UserRepository implements it.
type UserStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	ListPaginated(ctx context.Context, limit, offset int) ([]model.User, int, error)
	Delete(ctx context.Context, id int) error
}

// CourseStore is the persistence the services need for courses.
// *repository.CourseRepository implements it.
type CourseStore interface {
	ListByUser(ctx context.Context, userID int) ([]model.Course, error)
	ListByUsers(ctx context.Context, userIDs []int) (map[int][]model.Course, error)
	GetByID(ctx context.Context, userID int, id uuid.UUID) (*model.Course, error)
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, userID int, id uuid.UUID) error
}
