package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ricogpa/ricogpa-backend/internal/gpa"
	"github.com/ricogpa/ricogpa-backend/internal/model"
)

// SummaryInvalidator is told whenever a user's courses change.
type SummaryInvalidator interface {
	Invalidate(ctx context.Context, userID int) error
}

// CourseService handles course business logic. It is the only writer of
// GradePoint, so the grade/grade point pairing holds after every mutation.
type CourseService struct {
	courses   CourseStore
	summaries SummaryInvalidator
	log       zerolog.Logger
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore, summaries SummaryInvalidator, log zerolog.Logger) *CourseService {
	return &CourseService{
		courses:   courses,
		summaries: summaries,
		log:       log.With().Str("component", "course_service").Logger(),
	}
}

// setGrade assigns g and its grade point; the empty grade clears both.
func setGrade(c *model.Course, g model.Grade) {
	if g == "" {
		c.Grade = ""
		c.GradePoint = nil
		return
	}
	gp := gpa.Resolve(g, c.WeightClass)
	c.Grade = g
	c.GradePoint = &gp
}

// List retrieves all courses of a user.
func (s *CourseService) List(ctx context.Context, userID int) ([]model.Course, error) {
	courses, err := s.courses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []model.Course{}
	}
	return courses, nil
}

// Create adds a course for a user. The grade is optional.
func (s *CourseService) Create(ctx context.Context, userID int, req model.CreateCourseRequest) (*model.Course, error) {
	credits := req.CreditHours
	c := &model.Course{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Year:        req.Year,
		WeightClass: req.WeightClass,
		CreditHours: &credits,
	}
	setGrade(c, req.Grade)

	if err := s.courses.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}

	s.changed(ctx, userID)
	return c, nil
}

// Update applies a partial update. The grade point is recomputed whenever the
// grade or the weight class changes.
func (s *CourseService) Update(ctx context.Context, userID int, id uuid.UUID, req model.UpdateCourseRequest) (*model.Course, error) {
	c, err := s.courses.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Year != nil {
		c.Year = *req.Year
	}
	if req.CreditHours != nil {
		credits := *req.CreditHours
		c.CreditHours = &credits
	}

	grade := c.Grade
	if req.Grade != nil {
		grade = *req.Grade
	}
	if req.WeightClass != nil {
		c.WeightClass = *req.WeightClass
	}
	setGrade(c, grade)

	if err := s.courses.Update(ctx, c); err != nil {
		return nil, err
	}

	s.changed(ctx, userID)
	return c, nil
}

// Delete removes a course of a user.
func (s *CourseService) Delete(ctx context.Context, userID int, id uuid.UUID) error {
	if err := s.courses.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.changed(ctx, userID)
	return nil
}

// changed invalidates the cached summary. Failures are logged; the stale
// entry then lives until its TTL.
func (s *CourseService) changed(ctx context.Context, userID int) {
	if err := s.summaries.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Int("user_id", userID).Msg("Summary invalidation failed")
	}
}
