package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/ricogpa/ricogpa-backend/internal/model"
	"github.com/ricogpa/ricogpa-backend/internal/response"
)

// SummaryDropper forgets a user's cached summary.
type SummaryDropper interface {
	Drop(ctx context.Context, userID int) error
}

// AdminService handles admin user management.
type AdminService struct {
	users     UserStore
	courses   CourseStore
	summaries SummaryDropper
	log       zerolog.Logger
}

// NewAdminService creates a new AdminService.
func NewAdminService(users UserStore, courses CourseStore, summaries SummaryDropper, log zerolog.Logger) *AdminService {
	return &AdminService{
		users:     users,
		courses:   courses,
		summaries: summaries,
		log:       log.With().Str("component", "admin_service").Logger(),
	}
}

// ListUsers retrieves users with their courses, paginated.
func (s *AdminService) ListUsers(ctx context.Context, page, perPage int) ([]model.UserWithCourses, *response.Pagination, error) {
	page, perPage = response.ClampPage(page, perPage)

	users, total, err := s.users.ListPaginated(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, nil, fmt.Errorf("list users: %w", err)
	}

	ids := make([]int, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	byUser, err := s.courses.ListByUsers(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("list courses: %w", err)
	}

	out := make([]model.UserWithCourses, len(users))
	for i, u := range users {
		courses := byUser[u.ID]
		if courses == nil {
			courses = []model.Course{}
		}
		out[i] = model.UserWithCourses{User: u, Courses: courses}
	}

	return out, response.NewPagination(page, perPage, total), nil
}

// DeleteUser removes a user and their courses.
func (s *AdminService) DeleteUser(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.summaries.Drop(ctx, id); err != nil {
		s.log.Warn().Err(err).Int("user_id", id).Msg("Dropping cached summary failed")
	}
	s.log.Info().Int("user_id", id).Msg("User deleted")
	return nil
}
