// Package session holds the caller-owned course list behind the calculator.
//
// A Session validates every edit before it reaches the aggregator, hides the
// last result whenever the list changes, and hands out immutable snapshots
// to gpa.Calculate.
package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/wonny/gpacalc/internal/gpa"
	"github.com/wonny/gpacalc/internal/grading"
	"github.com/wonny/gpacalc/pkg/logger"
)

// DefaultUnits is the credit weight of a freshly added course
const DefaultUnits = 3

var (
	// ErrNotFound is returned when a reference matches no course
	ErrNotFound = errors.New("course not found")
	// ErrAmbiguous is returned when an ID prefix matches several courses
	ErrAmbiguous = errors.New("course reference is ambiguous")
)

// Entry is one row of the session. Scored is false until a score is entered,
// so a genuine score of 0 is distinguishable from an empty field.
type Entry struct {
	gpa.Course
	Scored bool `json:"scored"`
}

// Session is a single user's working list of courses. It is not safe for
// concurrent use.
type Session struct {
	scale     grading.Scale
	validator *Validator
	logger    *logger.Logger
	newID     func() string

	entries       []Entry
	resultVisible bool
	lastResult    gpa.Result
}

// New creates an empty session grading on scale
func New(scale grading.Scale, limits Limits, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		scale:     scale,
		validator: NewValidator(limits),
		logger:    log.WithField("component", "session"),
		newID:     uuid.NewString,
	}
}

// Scale returns the active grading scale
func (s *Session) Scale() grading.Scale {
	return s.scale
}

// SetScale switches the grading scale and hides any shown result
func (s *Session) SetScale(scale grading.Scale) {
	s.scale = scale
	s.hideResult()
	s.logger.WithField("scale", scale.Name).Debug("Scale changed")
}

// Limits returns the input ranges enforced by this session
func (s *Session) Limits() Limits {
	return s.validator.Limits()
}

// Len returns the number of courses
func (s *Session) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the rows in insertion order
func (s *Session) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Courses returns the snapshot passed to the aggregator
func (s *Session) Courses() []gpa.Course {
	courses := make([]gpa.Course, len(s.entries))
	for i, e := range s.entries {
		courses[i] = e.Course
	}
	return courses
}

// ResultVisible reports whether the last calculation is still current
func (s *Session) ResultVisible() bool {
	return s.resultVisible
}

// LastResult returns the last calculated result and whether it is still current
func (s *Session) LastResult() (gpa.Result, bool) {
	return s.lastResult, s.resultVisible
}

// Add appends a blank, unscored course with the default credit weight
func (s *Session) Add() Entry {
	e := Entry{Course: gpa.Course{ID: s.newID(), Credits: s.defaultUnits()}}
	s.replace(append(s.Entries(), e))

	s.logger.WithField("id", e.ID).Debug("Blank course added")
	return e
}

// AddCourse appends a fully specified course after validating it
func (s *Session) AddCourse(code string, score float64, units int) (Entry, error) {
	code = normalizeCode(code)
	if err := s.validator.Course(code, score, units); err != nil {
		s.reject(err)
		return Entry{}, err
	}

	e := Entry{
		Course: gpa.Course{ID: s.newID(), CourseCode: code, Score: score, Credits: units},
		Scored: true,
	}
	s.replace(append(s.Entries(), e))

	s.logger.WithFields(map[string]interface{}{
		"id":     e.ID,
		"course": code,
	}).Debug("Course added")
	return e, nil
}

// Remove deletes the course ref points to
func (s *Session) Remove(ref string) error {
	idx, err := s.Resolve(ref)
	if err != nil {
		return err
	}

	removed := s.entries[idx]
	next := make([]Entry, 0, len(s.entries)-1)
	next = append(next, s.entries[:idx]...)
	next = append(next, s.entries[idx+1:]...)
	s.replace(next)

	s.logger.WithField("id", removed.ID).Debug("Course removed")
	return nil
}

// UpdateScore sets the score of the course ref points to
func (s *Session) UpdateScore(ref string, score float64) error {
	if err := s.validator.Score(score); err != nil {
		s.hideResult()
		s.reject(err)
		return err
	}
	return s.update(ref, func(e *Entry) {
		e.Score = score
		e.Scored = true
	})
}

// UpdateCredits sets the credit units of the course ref points to
func (s *Session) UpdateCredits(ref string, units int) error {
	if err := s.validator.Units(units); err != nil {
		s.hideResult()
		s.reject(err)
		return err
	}
	return s.update(ref, func(e *Entry) {
		e.Credits = units
	})
}

// UpdateCourseCode sets the upper-cased code of the course ref points to
func (s *Session) UpdateCourseCode(ref string, code string) error {
	code = normalizeCode(code)
	return s.update(ref, func(e *Entry) {
		e.CourseCode = code
	})
}

// Clear removes every course
func (s *Session) Clear() {
	n := len(s.entries)
	s.replace(nil)
	s.logger.WithField("removed", n).Debug("Session cleared")
}

// Calculate aggregates the current courses. It refuses an empty list and
// rows with a blank code, no score or no units.
func (s *Session) Calculate() (gpa.Result, error) {
	if len(s.entries) == 0 {
		err := &ValidationError{
			Title:   TitleNoCourses,
			Field:   "courses",
			Message: "Please add at least one course to calculate GPA",
		}
		s.reject(err)
		return gpa.Result{}, err
	}

	for i, e := range s.entries {
		if strings.TrimSpace(e.CourseCode) == "" || !e.Scored || e.Credits == 0 {
			err := IncompleteError(fmt.Sprintf("courses[%d]", i))
			s.reject(err)
			return gpa.Result{}, err
		}
	}

	res := gpa.Calculate(s.scale, s.Courses())
	s.lastResult = res
	s.resultVisible = true

	s.logger.WithFields(map[string]interface{}{
		"scale":   res.Scale,
		"courses": res.Courses,
		"gpa":     res.GPA,
	}).Debug("GPA calculated")
	return res, nil
}

// Resolve maps a reference to an index. A reference is either a 1-based row
// number or a unique prefix of a course ID.
func (s *Session) Resolve(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.entries) {
			return -1, fmt.Errorf("%w: row %d (have %d)", ErrNotFound, n, len(s.entries))
		}
		return n - 1, nil
	}

	found := -1
	for i, e := range s.entries {
		if strings.HasPrefix(e.ID, ref) {
			if found >= 0 {
				return -1, fmt.Errorf("%w: %q", ErrAmbiguous, ref)
			}
			found = i
		}
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, ref)
	}
	return found, nil
}

func (s *Session) update(ref string, fn func(*Entry)) error {
	idx, err := s.Resolve(ref)
	if err != nil {
		return err
	}

	next := s.Entries()
	fn(&next[idx])
	s.replace(next)

	s.logger.WithField("id", next[idx].ID).Debug("Course updated")
	return nil
}

// replace swaps in a new course list; snapshots handed out earlier stay valid
func (s *Session) replace(entries []Entry) {
	s.entries = entries
	s.hideResult()
}

func (s *Session) hideResult() {
	s.resultVisible = false
}

func (s *Session) reject(err error) {
	s.logger.WithError(err).Warn("Input rejected")
}

func (s *Session) defaultUnits() int {
	l := s.validator.Limits()
	switch {
	case DefaultUnits < l.UnitsMin:
		return l.UnitsMin
	case DefaultUnits > l.UnitsMax:
		return l.UnitsMax
	}
	return DefaultUnits
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
