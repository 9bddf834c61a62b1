package session

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Titles shown to the user for each rejected input
const (
	TitleInvalidScore = "Invalid Score"
	TitleInvalidUnits = "Invalid Units"
	TitleIncomplete   = "Incomplete Information"
	TitleNoCourses    = "No Courses"
	TitleInvalidCode  = "Invalid Course Code"
)

// ValidationError names the violated constraint and the accepted range
type ValidationError struct {
	Title   string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Title, e.Message)
}

// IsValidationError reports whether err is (or wraps) a *ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IncompleteError reports a course with a blank code, no score or no units
func IncompleteError(field string) *ValidationError {
	return &ValidationError{
		Title:   TitleIncomplete,
		Field:   field,
		Message: "Please fill in all course details before calculating GPA",
	}
}

// Limits are the accepted input ranges, inclusive on both ends
type Limits struct {
	ScoreMin float64
	ScoreMax float64
	UnitsMin int
	UnitsMax int
}

// DefaultLimits returns score 0..100 and units 1..6
func DefaultLimits() Limits {
	return Limits{ScoreMin: 0, ScoreMax: 100, UnitsMin: 1, UnitsMax: 6}
}

// Validator checks raw user input against Limits
type Validator struct {
	limits   Limits
	v        *validator.Validate
	scoreTag string
	unitsTag string
}

// NewValidator creates a validator for limits
func NewValidator(limits Limits) *Validator {
	return &Validator{
		limits:   limits,
		v:        validator.New(),
		scoreTag: fmt.Sprintf("gte=%g,lte=%g", limits.ScoreMin, limits.ScoreMax),
		unitsTag: fmt.Sprintf("gte=%d,lte=%d", limits.UnitsMin, limits.UnitsMax),
	}
}

// Limits returns the ranges this validator enforces
func (v *Validator) Limits() Limits {
	return v.limits
}

// Score rejects scores outside [ScoreMin, ScoreMax]
func (v *Validator) Score(score float64) error {
	if math.IsNaN(score) || v.v.Var(score, v.scoreTag) != nil {
		return &ValidationError{
			Title:   TitleInvalidScore,
			Field:   "score",
			Message: fmt.Sprintf("Score must be between %g and %g", v.limits.ScoreMin, v.limits.ScoreMax),
		}
	}
	return nil
}

// Units rejects credit units outside [UnitsMin, UnitsMax]
func (v *Validator) Units(units int) error {
	if v.v.Var(units, v.unitsTag) != nil {
		return &ValidationError{
			Title:   TitleInvalidUnits,
			Field:   "units",
			Message: fmt.Sprintf("Units must be between %d and %d", v.limits.UnitsMin, v.limits.UnitsMax),
		}
	}
	return nil
}

// CourseCode rejects blank course codes
func (v *Validator) CourseCode(code string) error {
	if v.v.Var(strings.TrimSpace(code), "required") != nil {
		return &ValidationError{
			Title:   TitleInvalidCode,
			Field:   "course_code",
			Message: "Course code must not be blank",
		}
	}
	return nil
}

// Course checks all three fields of a fully specified course
func (v *Validator) Course(code string, score float64, units int) error {
	if err := v.CourseCode(code); err != nil {
		return err
	}
	if err := v.Score(score); err != nil {
		return err
	}
	return v.Units(units)
}
