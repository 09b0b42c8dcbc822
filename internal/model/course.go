package model

import (
	"time"

	"github.com/google/uuid"
)

// WeightClass selects the grade-point table and the default credit hours of a course.
type WeightClass string

const (
	WeightFull WeightClass = "Full"
	WeightHalf WeightClass = "Half"
)

// Valid reports whether w is one of the known weight classes.
func (w WeightClass) Valid() bool {
	switch w {
	case WeightFull, WeightHalf:
		return true
	default:
		return false
	}
}

// DefaultCreditHours is used when a course carries no credit hours of its own.
func (w WeightClass) DefaultCreditHours() float64 {
	switch w {
	case WeightHalf:
		return 1.5
	default:
		return 3
	}
}

// Grade is a letter grade. The empty grade marks a planned course.
type Grade string

const (
	GradeAPlus Grade = "A+"
	GradeA     Grade = "A"
	GradeBPlus Grade = "B+"
	GradeB     Grade = "B"
	GradeCPlus Grade = "C+"
	GradeC     Grade = "C"
)

// Grades lists every known letter grade, highest first.
var Grades = []Grade{GradeAPlus, GradeA, GradeBPlus, GradeB, GradeCPlus, GradeC}

// Known reports whether g is one of the six letter grades.
func (g Grade) Known() bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}

// Course is a single enrollment of a user.
//
// GradePoint is set if and only if Grade is non-empty.
type Course struct {
	ID          uuid.UUID   `json:"id"`
	UserID      int         `json:"user_id"`
	Name        string      `json:"name"`
	Year        int         `json:"year"`
	WeightClass WeightClass `json:"weight_class"`
	CreditHours *float64    `json:"credit_hours,omitempty"`
	Grade       Grade       `json:"grade,omitempty"`
	GradePoint  *float64    `json:"grade_point,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Graded reports whether the course takes part in GPA arithmetic.
func (c *Course) Graded() bool {
	return c.Grade != "" && c.GradePoint != nil
}

// EffectiveCreditHours returns the stored credit hours, or the weight-class
// default when none (or zero) are stored.
func (c *Course) EffectiveCreditHours() float64 {
	if c.CreditHours != nil && *c.CreditHours != 0 {
		return *c.CreditHours
	}
	return c.WeightClass.DefaultCreditHours()
}

// CreateCourseRequest is the payload for adding a course.
type CreateCourseRequest struct {
	Name        string      `json:"name" binding:"required,min=1,max=200"`
	Year        int         `json:"year" binding:"required,min=1,max=20"`
	WeightClass WeightClass `json:"weight_class" binding:"required,weight_class"`
	CreditHours float64     `json:"credit_hours" binding:"required,gt=0,max=30"`
	Grade       Grade       `json:"grade" binding:"omitempty,grade"`
}

// UpdateCourseRequest is the payload for a partial course update.
// A nil field is left untouched; an empty grade clears the grade.
type UpdateCourseRequest struct {
	Name        *string      `json:"name" binding:"omitempty,min=1,max=200"`
	Year        *int         `json:"year" binding:"omitempty,min=1,max=20"`
	WeightClass *WeightClass `json:"weight_class" binding:"omitempty,weight_class"`
	CreditHours *float64     `json:"credit_hours" binding:"omitempty,gt=0,max=30"`
	Grade       *Grade       `json:"grade" binding:"omitempty,grade"`
}
