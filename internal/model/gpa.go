package model

// YearSummary aggregates the graded courses of one academic year.
type YearSummary struct {
	GPA     float64 `json:"gpa"`
	Credits float64 `json:"credits"`
}

// Summary is the cumulative and per-year GPA of a set of courses.
// PerYear is keyed by the year number.
type Summary struct {
	CumulativeGPA float64             `json:"cumulative_gpa"`
	TotalCredits  float64             `json:"total_credits"`
	PerYear       map[int]YearSummary `json:"per_year"`
}

// ForecastResult is the average grade point needed over the remaining credits.
//
// Feasible is false when even the top grade in every remaining credit
// cannot reach the target; RecommendedGrade is then the top grade.
type ForecastResult struct {
	RequiredAvgGradePoint float64 `json:"required_avg_grade_point"`
	RecommendedGrade      Grade   `json:"recommended_grade"`
	Feasible              bool    `json:"feasible"`
	CurrentGPA            float64 `json:"current_gpa"`
	CompletedCredits      float64 `json:"completed_credits"`
}

// ForecastRequest is the payload for a forecast.
type ForecastRequest struct {
	TargetGPA        *float64 `json:"target_gpa" binding:"required,gte=0,lte=5"`
	RemainingCredits *float64 `json:"remaining_credits" binding:"required,gte=0,max=1000"`
}

// GPAOverview is returned by the summary endpoint.
type GPAOverview struct {
	User Profile `json:"user"`
	Summary
}
