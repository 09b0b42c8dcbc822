// Package gpa converts letter grades to grade points and aggregates them into
// cumulative and per-year GPAs and forecasts. Everything here is a pure
// function of its arguments.
package gpa

import "github.com/ricogpa/ricogpa-backend/internal/model"

// Step pairs a letter grade with its grade point.
type Step struct {
	Grade model.Grade
	Point float64
}

// Scale is a grade-point table ordered from the highest point to the lowest.
// Forecast recommendations walk it in order, so the order must not change.
type Scale []Step

var (
	// FullScale applies to full-weight courses.
	FullScale = Scale{
		{model.GradeAPlus, 5.0},
		{model.GradeA, 4.0},
		{model.GradeBPlus, 3.0},
		{model.GradeB, 2.0},
		{model.GradeCPlus, 1.0},
		{model.GradeC, 0.0},
	}

	// HalfScale applies to half-weight courses.
	HalfScale = Scale{
		{model.GradeAPlus, 2.5},
		{model.GradeA, 2.0},
		{model.GradeBPlus, 1.5},
		{model.GradeB, 1.0},
		{model.GradeCPlus, 0.5},
		{model.GradeC, 0.0},
	}
)

// ScaleFor returns the table for a weight class. Callers reject unknown
// classes first; anything that is not Half reads the full table.
func ScaleFor(w model.WeightClass) Scale {
	switch w {
	case model.WeightHalf:
		return HalfScale
	default:
		return FullScale
	}
}

// Point looks up g. Unknown and empty grades are worth 0.
func (s Scale) Point(g model.Grade) float64 {
	for _, step := range s {
		if step.Grade == g {
			return step.Point
		}
	}
	return 0
}

// Top is the highest step of the scale.
func (s Scale) Top() Step { return s[0] }

// Bottom is the lowest step of the scale.
func (s Scale) Bottom() Step { return s[len(s)-1] }

// Lowest returns the lowest grade whose point still meets required.
// ok is false when no grade reaches it.
func (s Scale) Lowest(required float64) (step Step, ok bool) {
	for _, candidate := range s {
		if candidate.Point < required {
			break
		}
		step, ok = candidate, true
	}
	return step, ok
}

// Resolve returns the grade point of grade under the table for w.
func Resolve(grade model.Grade, w model.WeightClass) float64 {
	return ScaleFor(w).Point(grade)
}
