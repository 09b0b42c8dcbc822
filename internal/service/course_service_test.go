package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ricogpa/ricogpa-backend/internal/model"
	"github.com/ricogpa/ricogpa-backend/internal/repository"
)

type recordingInvalidator struct{ users []int }

func (r *recordingInvalidator) Invalidate(_ context.Context, userID int) error {
	r.users = append(r.users, userID)
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestCreateCourse(t *testing.T) {
	ctx := context.Background()
	inv := &recordingInvalidator{}
	svc := NewCourseService(&memCourses{}, inv, nopLog)

	c, err := svc.Create(ctx, 1, model.CreateCourseRequest{
		Name: " Algebra ", Year: 1, WeightClass: model.WeightHalf, CreditHours: 1.5, Grade: model.GradeA,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, "Algebra", c.Name)
	require.NotNil(t, c.GradePoint)
	assert.Equal(t, 2.0, *c.GradePoint)
	assert.Equal(t, []int{1}, inv.users)

	planned, err := svc.Create(ctx, 1, model.CreateCourseRequest{
		Name: "Future", Year: 3, WeightClass: model.WeightFull, CreditHours: 3,
	})
	require.NoError(t, err)
	assert.Empty(t, planned.Grade)
	assert.Nil(t, planned.GradePoint)
}

func TestUpdateCourseRecomputesGradePoint(t *testing.T) {
	ctx := context.Background()
	store := &memCourses{}
	svc := NewCourseService(store, &recordingInvalidator{}, nopLog)

	c, err := svc.Create(ctx, 1, model.CreateCourseRequest{
		Name: "Chem", Year: 1, WeightClass: model.WeightFull, CreditHours: 3, Grade: model.GradeB,
	})
	require.NoError(t, err)

	// weight class change alone must move the grade point to the half table
	c, err = svc.Update(ctx, 1, c.ID, model.UpdateCourseRequest{WeightClass: ptr(model.WeightHalf)})
	require.NoError(t, err)
	assert.Equal(t, model.GradeB, c.Grade)
	assert.Equal(t, 1.0, *c.GradePoint)

	c, err = svc.Update(ctx, 1, c.ID, model.UpdateCourseRequest{Grade: ptr(model.GradeAPlus)})
	require.NoError(t, err)
	assert.Equal(t, 2.5, *c.GradePoint)

	c, err = svc.Update(ctx, 1, c.ID, model.UpdateCourseRequest{Grade: ptr(model.Grade(""))})
	require.NoError(t, err)
	assert.Empty(t, c.Grade)
	assert.Nil(t, c.GradePoint)

	stored, err := store.GetByID(ctx, 1, c.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.GradePoint)
}

func TestUpdateCoursePartialFields(t *testing.T) {
	ctx := context.Background()
	svc := NewCourseService(&memCourses{}, &recordingInvalidator{}, nopLog)

	c, err := svc.Create(ctx, 1, model.CreateCourseRequest{
		Name: "Bio", Year: 1, WeightClass: model.WeightFull, CreditHours: 3, Grade: model.GradeA,
	})
	require.NoError(t, err)

	c, err = svc.Update(ctx, 1, c.ID, model.UpdateCourseRequest{Year: ptr(2), CreditHours: ptr(4.5)})
	require.NoError(t, err)
	assert.Equal(t, "Bio", c.Name)
	assert.Equal(t, 2, c.Year)
	assert.Equal(t, 4.5, *c.CreditHours)
	assert.Equal(t, 4.0, *c.GradePoint)
}

func TestCourseOwnership(t *testing.T) {
	ctx := context.Background()
	inv := &recordingInvalidator{}
	svc := NewCourseService(&memCourses{}, inv, nopLog)

	c, err := svc.Create(ctx, 1, model.CreateCourseRequest{
		Name: "Bio", Year: 1, WeightClass: model.WeightFull, CreditHours: 3,
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, 2, c.ID, model.UpdateCourseRequest{Name: ptr("stolen")})
	assert.ErrorIs(t, err, repository.ErrCourseNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 2, c.ID), repository.ErrCourseNotFound)

	require.NoError(t, svc.Delete(ctx, 1, c.ID))
	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
	assert.Equal(t, []int{1, 1}, inv.users)
}
