package gpa

import (
	"math"

	"github.com/ricogpa/ricogpa-backend/internal/model"
)

// bucket accumulates quality points and credits.
type bucket struct {
	quality float64
	credits float64
}

func (b *bucket) add(c *model.Course) {
	ch := c.EffectiveCreditHours()
	b.quality += *c.GradePoint * ch
	b.credits += ch
}

func (b bucket) gpa() float64 {
	if b.credits == 0 {
		return 0
	}
	return b.quality / b.credits
}

// Round2 rounds x to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// totals sums every graded course. Planned courses and courses whose grade
// point is missing are skipped.
func totals(courses []model.Course) bucket {
	var all bucket
	for i := range courses {
		if courses[i].Graded() {
			all.add(&courses[i])
		}
	}
	return all
}

// Summarize computes the cumulative GPA, total graded credits and the GPA of
// every year that has at least one graded course.
func Summarize(courses []model.Course) model.Summary {
	var all bucket
	years := make(map[int]*bucket)

	for i := range courses {
		c := &courses[i]
		if !c.Graded() {
			continue
		}
		all.add(c)

		y, ok := years[c.Year]
		if !ok {
			y = &bucket{}
			years[c.Year] = y
		}
		y.add(c)
	}

	perYear := make(map[int]model.YearSummary, len(years))
	for year, b := range years {
		perYear[year] = model.YearSummary{
			GPA:     Round2(b.gpa()),
			Credits: b.credits,
		}
	}

	return model.Summary{
		CumulativeGPA: Round2(all.gpa()),
		TotalCredits:  all.credits,
		PerYear:       perYear,
	}
}

// Forecast computes the average grade point the remaining credits need for the
// cumulative GPA to reach target, and the lowest full-weight grade that meets it.
//
// remainingCredits must not be negative.
func Forecast(courses []model.Course, target, remainingCredits float64) model.ForecastResult {
	current := totals(courses)

	requiredTotal := target * (current.credits + remainingCredits)
	requiredRemaining := requiredTotal - current.quality

	var required float64
	if remainingCredits > 0 {
		required = requiredRemaining / remainingCredits
	}

	res := model.ForecastResult{
		RequiredAvgGradePoint: Round2(required),
		Feasible:              true,
		CurrentGPA:            Round2(current.gpa()),
		CompletedCredits:      current.credits,
	}

	switch step, ok := FullScale.Lowest(required); {
	case required <= 0:
		res.RecommendedGrade = FullScale.Bottom().Grade
	case ok:
		res.RecommendedGrade = step.Grade
	default:
		res.RecommendedGrade = FullScale.Top().Grade
		res.Feasible = false
	}

	if remainingCredits == 0 && current.gpa() < target {
		res.Feasible = false
	}

	return res
}
