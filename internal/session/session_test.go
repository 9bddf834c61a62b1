package session

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/gpacalc/internal/grading"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	scale, err := grading.Lookup(grading.FivePoint)
	require.NoError(t, err)

	s := New(scale, DefaultLimits(), nil)
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}
	return s
}

func requireValidation(t *testing.T, err error, title string) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Equal(t, title, verr.Title)
	return verr
}

func TestSession_AddCourseAndCalculate(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddCourse("csc101", 75, 3)
	require.NoError(t, err)
	_, err = s.AddCourse(" mth101 ", 55, 2)
	require.NoError(t, err)

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "CSC101", entries[0].CourseCode)
	assert.Equal(t, "MTH101", entries[1].CourseCode)
	assert.True(t, entries[0].Scored)

	assert.False(t, s.ResultVisible())

	res, err := s.Calculate()
	require.NoError(t, err)
	assert.Equal(t, 4.2, res.GPA)
	assert.Equal(t, "Second Class Upper (2:1)", res.Classification)
	assert.True(t, s.ResultVisible())

	last, visible := s.LastResult()
	assert.True(t, visible)
	assert.Equal(t, res, last)
}

func TestSession_DefaultIDsAreUUIDs(t *testing.T) {
	scale, _ := grading.Lookup(grading.FourPoint)
	s := New(scale, DefaultLimits(), nil)

	e := s.Add()
	_, err := uuid.Parse(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, DefaultUnits, e.Credits)
	assert.False(t, e.Scored)
}

func TestSession_ScoreValidation(t *testing.T) {
	s := newTestSession(t)
	s.Add()

	tests := []struct {
		name  string
		score float64
		ok    bool
	}{
		{"lower bound", 0, true},
		{"upper bound", 100, true},
		{"fraction", 64.5, true},
		{"negative", -0.1, false},
		{"above range", 100.5, false},
		{"NaN", math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.UpdateScore("1", tt.score)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.score, s.Entries()[0].Score)
				return
			}
			verr := requireValidation(t, err, TitleInvalidScore)
			assert.Equal(t, "Score must be between 0 and 100", verr.Message)
		})
	}
}

func TestSession_UnitsValidation(t *testing.T) {
	s := newTestSession(t)
	s.Add()

	for units := 1; units <= 6; units++ {
		require.NoError(t, s.UpdateCredits("1", units))
	}

	for _, units := range []int{0, -1, 7} {
		err := s.UpdateCredits("1", units)
		verr := requireValidation(t, err, TitleInvalidUnits)
		assert.Equal(t, "Units must be between 1 and 6", verr.Message)
	}

	// rejected values leave the row untouched
	assert.Equal(t, 6, s.Entries()[0].Credits)
}

func TestSession_CustomLimits(t *testing.T) {
	scale, _ := grading.Lookup(grading.FivePoint)
	s := New(scale, Limits{ScoreMin: 0, ScoreMax: 20, UnitsMin: 2, UnitsMax: 10}, nil)

	_, err := s.AddCourse("LAW201", 25, 4)
	verr := requireValidation(t, err, TitleInvalidScore)
	assert.Equal(t, "Score must be between 0 and 20", verr.Message)

	_, err = s.AddCourse("LAW201", 15, 12)
	verr = requireValidation(t, err, TitleInvalidUnits)
	assert.Equal(t, "Units must be between 2 and 10", verr.Message)

	assert.Equal(t, 0, s.Len())
}

func TestSession_AddCourseRejectsBlankCode(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddCourse("   ", 80, 3)
	requireValidation(t, err, TitleInvalidCode)
	assert.True(t, IsValidationError(err))
	assert.Equal(t, 0, s.Len())
}

func TestSession_CalculateRefusesEmpty(t *testing.T) {
	s := newTestSession(t)

	_, err := s.Calculate()
	verr := requireValidation(t, err, TitleNoCourses)
	assert.Equal(t, "Please add at least one course to calculate GPA", verr.Message)
	assert.False(t, s.ResultVisible())
}

func TestSession_CalculateRefusesIncomplete(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Session)
	}{
		{"missing code", func(s *Session) {
			s.Add()
			require.NoError(t, s.UpdateScore("1", 70))
		}},
		{"missing score", func(s *Session) {
			s.Add()
			require.NoError(t, s.UpdateCourseCode("1", "bio101"))
		}},
		{"second row incomplete", func(s *Session) {
			_, err := s.AddCourse("BIO101", 70, 2)
			require.NoError(t, err)
			s.Add()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t)
			tt.setup(s)

			_, err := s.Calculate()
			requireValidation(t, err, TitleIncomplete)
		})
	}
}

func TestSession_ZeroScoreIsAValidEntry(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddCourse("GST101", 0, 2)
	require.NoError(t, err)

	res, err := s.Calculate()
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.GPA)
	assert.Equal(t, "Fail", res.Classification)
}

func TestSession_MutationsHideResult(t *testing.T) {
	mutations := []struct {
		name string
		fn   func(s *Session) error
	}{
		{"add", func(s *Session) error { s.Add(); return nil }},
		{"remove", func(s *Session) error { return s.Remove("1") }},
		{"score", func(s *Session) error { return s.UpdateScore("1", 40) }},
		{"rejected score", func(s *Session) error { _ = s.UpdateScore("1", 400); return nil }},
		{"credits", func(s *Session) error { return s.UpdateCredits("1", 5) }},
		{"code", func(s *Session) error { return s.UpdateCourseCode("1", "chm101") }},
		{"clear", func(s *Session) error { s.Clear(); return nil }},
		{"scale", func(s *Session) error {
			scale, _ := grading.Lookup(grading.FourPoint)
			s.SetScale(scale)
			return nil
		}},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			s := newTestSession(t)
			_, err := s.AddCourse("PHY101", 72, 3)
			require.NoError(t, err)
			_, err = s.Calculate()
			require.NoError(t, err)
			require.True(t, s.ResultVisible())

			require.NoError(t, m.fn(s))
			assert.False(t, s.ResultVisible())
		})
	}
}

func TestSession_Resolve(t *testing.T) {
	s := newTestSession(t)
	s.Add() // id-001
	s.Add() // id-002

	idx, err := s.Resolve("2")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	idx, err = s.Resolve("id-001")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = s.Resolve("id-00")
	assert.ErrorIs(t, err, ErrAmbiguous)

	_, err = s.Resolve("3")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Resolve("0")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Resolve("zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Resolve("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSession_RemoveAndClear(t *testing.T) {
	s := newTestSession(t)
	_, _ = s.AddCourse("A101", 50, 1)
	_, _ = s.AddCourse("B101", 60, 2)
	_, _ = s.AddCourse("C101", 70, 3)

	require.NoError(t, s.Remove("2"))
	codes := []string{}
	for _, e := range s.Entries() {
		codes = append(codes, e.CourseCode)
	}
	assert.Equal(t, []string{"A101", "C101"}, codes)

	assert.ErrorIs(t, s.Remove("9"), ErrNotFound)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}

func TestSession_SnapshotsAreIndependent(t *testing.T) {
	s := newTestSession(t)
	_, _ = s.AddCourse("A101", 50, 1)

	snapshot := s.Courses()
	require.NoError(t, s.UpdateScore("1", 99))

	assert.Equal(t, 50.0, snapshot[0].Score)
	assert.Equal(t, 99.0, s.Courses()[0].Score)
}

func TestSession_DefaultUnitsRespectsLimits(t *testing.T) {
	scale, _ := grading.Lookup(grading.FivePoint)

	s := New(scale, Limits{ScoreMin: 0, ScoreMax: 100, UnitsMin: 4, UnitsMax: 8}, nil)
	assert.Equal(t, 4, s.Add().Credits)

	s = New(scale, Limits{ScoreMin: 0, ScoreMax: 100, UnitsMin: 1, UnitsMax: 2}, nil)
	assert.Equal(t, 2, s.Add().Credits)
}
