package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ricogpa/ricogpa-backend/internal/model"
)

var ErrCourseNotFound = errors.New("course not found")

const courseColumns = `id, user_id, name, year, weight_class, credit_hours, grade, grade_point, created_at, updated_at`

// CourseRepository handles course data access. Every query is scoped to the
// owning user so one user can never read or touch another's courses.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

func scanCourse(row pgx.Row) (*model.Course, error) {
	c := &model.Course{}
	var grade *string
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Year, &c.WeightClass, &c.CreditHours,
		&grade, &c.GradePoint, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	if grade != nil {
		c.Grade = model.Grade(*grade)
	}
	return c, nil
}

// nullableGrade maps the planned (empty) grade to SQL NULL.
func nullableGrade(g model.Grade) *string {
	if g == "" {
		return nil
	}
	s := string(g)
	return &s
}

func collectCourses(rows pgx.Rows) ([]model.Course, error) {
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

// ListByUser retrieves all courses of a user ordered by year then creation.
func (r *CourseRepository) ListByUser(ctx context.Context, userID int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE user_id = $1 ORDER BY year, created_at`, userID)
	if err != nil {
		return nil, err
	}
	return collectCourses(rows)
}

// ListByUsers retrieves the courses of several users in one round trip, grouped by user.
func (r *CourseRepository) ListByUsers(ctx context.Context, userIDs []int) (map[int][]model.Course, error) {
	grouped := make(map[int][]model.Course, len(userIDs))
	if len(userIDs) == 0 {
		return grouped, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE user_id = ANY($1) ORDER BY user_id, year, created_at`, userIDs)
	if err != nil {
		return nil, err
	}
	courses, err := collectCourses(rows)
	if err != nil {
		return nil, err
	}
	for _, c := range courses {
		grouped[c.UserID] = append(grouped[c.UserID], c)
	}
	return grouped, nil
}

// GetByID retrieves one course of a user.
func (r *CourseRepository) GetByID(ctx context.Context, userID int, id uuid.UUID) (*model.Course, error) {
	return scanCourse(r.pool.QueryRow(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE id = $1 AND user_id = $2`, id, userID))
}

// Create inserts a new course. c.ID must already be set.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (id, user_id, name, year, weight_class, credit_hours, grade, grade_point)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at, updated_at`,
		c.ID, c.UserID, c.Name, c.Year, c.WeightClass, c.CreditHours, nullableGrade(c.Grade), c.GradePoint,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

// Update overwrites every mutable column of a course.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE courses
		 SET name = $1, year = $2, weight_class = $3, credit_hours = $4, grade = $5, grade_point = $6,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = $7 AND user_id = $8
		 RETURNING updated_at`,
		c.Name, c.Year, c.WeightClass, c.CreditHours, nullableGrade(c.Grade), c.GradePoint, c.ID, c.UserID,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCourseNotFound
	}
	return err
}

// Delete removes one course of a user.
func (r *CourseRepository) Delete(ctx context.Context, userID int, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrCourseNotFound
	}
	return nil
}
