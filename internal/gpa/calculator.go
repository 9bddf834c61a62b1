// Package gpa computes credit-weighted grade point averages.
package gpa

import (
	"math"

	"github.com/wonny/gpacalc/internal/grading"
)

// Course is an immutable snapshot of one course entry
type Course struct {
	ID         string  `json:"id" yaml:"id"`
	CourseCode string  `json:"course_code" yaml:"code"`
	Score      float64 `json:"score" yaml:"score"`
	Credits    int     `json:"credits" yaml:"units"`
}

// Result is the outcome of one aggregation
type Result struct {
	Scale          string  `json:"scale"`
	GPA            float64 `json:"gpa"`
	TotalPoints    float64 `json:"total_points"`
	TotalCredits   int     `json:"total_credits"`
	Courses        int     `json:"courses"`
	Classification string  `json:"classification,omitempty"`

	// Degenerate is set when the list is non-empty but carries no credit weight
	Degenerate bool `json:"degenerate,omitempty"`
}

// Calculate aggregates courses on scale.
//
// GPA is Σ(points×credits)/Σcredits rounded half-up to 2 decimals. An empty
// list yields 0. A non-empty list whose credits sum to <= 0 also yields 0
// and is flagged Degenerate. Neither case is classified.
func Calculate(scale grading.Scale, courses []Course) Result {
	res := Result{
		Scale:   scale.Name,
		Courses: len(courses),
	}

	for _, c := range courses {
		res.TotalPoints += scale.Points(c.Score) * float64(c.Credits)
		res.TotalCredits += c.Credits
	}

	switch {
	case len(courses) == 0:
		res.GPA = 0
	case res.TotalCredits <= 0:
		res.GPA = 0
		res.Degenerate = true
	default:
		res.GPA = roundHalfUp(res.TotalPoints, res.TotalCredits)
	}

	if res.Courses > 0 && !res.Degenerate {
		if label, ok := scale.Classify(res.GPA); ok {
			res.Classification = label
		}
	}

	return res
}

// CalculateGPA returns only the rounded GPA
func CalculateGPA(scale grading.Scale, courses []Course) float64 {
	return Calculate(scale, courses).GPA
}

// roundHalfUp returns points/credits rounded to 2 decimals, ties away from zero.
// Scaling before the division keeps integral totals exact, so 629/200 is 314.5
// hundredths and rounds to 3.15.
func roundHalfUp(points float64, credits int) float64 {
	return math.Round(points*100/float64(credits)) / 100
}
