package session

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Course(t *testing.T) {
	v := NewValidator(DefaultLimits())

	tests := []struct {
		name  string
		code  string
		score float64
		units int
		title string
	}{
		{"valid", "CSC101", 75, 3, ""},
		{"bounds", "X", 0, 6, ""},
		{"blank code first", "  ", 500, 0, TitleInvalidCode},
		{"score before units", "CSC101", -1, 0, TitleInvalidScore},
		{"infinite score", "CSC101", math.Inf(1), 3, TitleInvalidScore},
		{"NaN score", "CSC101", math.NaN(), 3, TitleInvalidScore},
		{"units", "CSC101", 50, 0, TitleInvalidUnits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Course(tt.code, tt.score, tt.units)
			if tt.title == "" {
				assert.NoError(t, err)
				return
			}
			requireValidation(t, err, tt.title)
		})
	}
}

func TestValidator_FractionalLimits(t *testing.T) {
	v := NewValidator(Limits{ScoreMin: 0.5, ScoreMax: 4.5, UnitsMin: 1, UnitsMax: 1})

	assert.NoError(t, v.Score(0.5))
	assert.NoError(t, v.Score(4.5))
	verr := requireValidation(t, v.Score(4.6), TitleInvalidScore)
	assert.Equal(t, "Score must be between 0.5 and 4.5", verr.Message)
	assert.Equal(t, "score", verr.Field)

	verr = requireValidation(t, v.Units(2), TitleInvalidUnits)
	assert.Equal(t, "Units must be between 1 and 1", verr.Message)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Title: TitleNoCourses, Field: "courses", Message: "Please add at least one course to calculate GPA"}
	assert.Equal(t, "No Courses: Please add at least one course to calculate GPA", err.Error())

	wrapped := fmt.Errorf("course 2: %w", err)
	require.True(t, IsValidationError(wrapped))
	assert.False(t, IsValidationError(fmt.Errorf("plain")))
}
