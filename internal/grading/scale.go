// Package grading maps raw percentage scores to grade points and final GPAs
// to classification labels.
//
// A Scale is an explicit, named configuration. Callers pick one by name
// (see Lookup) or build one from a scale file; thresholds are never
// hardcoded at call sites.
package grading

import (
	"errors"
	"fmt"
	"sort"
)

// Built-in scale names
const (
	FourPoint = "four_point"
	FivePoint = "five_point"
)

// ErrUnknownScale is returned by Lookup for a name that is not built in
var ErrUnknownScale = errors.New("unknown grading scale")

// Band maps every score >= MinScore (and below the previous band) to Points
type Band struct {
	MinScore float64 `json:"min_score"`
	Points   float64 `json:"points"`
	Letter   string  `json:"letter"`
}

// Class maps every GPA >= MinGPA (and below the previous class) to Label
type Class struct {
	MinGPA float64 `json:"min_gpa"`
	Label  string  `json:"label"`
}

// Scale is a grading configuration. Bands and Classes are ordered by
// descending threshold and evaluated top-down; the first match wins.
type Scale struct {
	Name      string  `json:"name"`
	MaxPoints float64 `json:"max_points"`
	Bands     []Band  `json:"bands"`
	Classes   []Class `json:"classes,omitempty"`
}

// Points returns the grade points for score. Scores matching no band,
// including NaN, earn 0.
func (s Scale) Points(score float64) float64 {
	if b, ok := s.band(score); ok {
		return b.Points
	}
	return 0
}

// Letter returns the letter of the band score falls into
func (s Scale) Letter(score float64) string {
	if b, ok := s.band(score); ok {
		return b.Letter
	}
	if n := len(s.Bands); n > 0 {
		return s.Bands[n-1].Letter
	}
	return ""
}

func (s Scale) band(score float64) (Band, bool) {
	for _, b := range s.Bands {
		if score >= b.MinScore {
			return b, true
		}
	}
	return Band{}, false
}

// HasClasses reports whether the scale defines classification labels
func (s Scale) HasClasses() bool {
	return len(s.Classes) > 0
}

// Classify returns the classification label for gpa.
// ok is false when the scale defines no classes.
func (s Scale) Classify(gpa float64) (label string, ok bool) {
	if !s.HasClasses() {
		return "", false
	}
	for _, c := range s.Classes {
		if gpa >= c.MinGPA {
			return c.Label, true
		}
	}
	return s.Classes[len(s.Classes)-1].Label, true
}

var builtins = map[string]Scale{
	FourPoint: {
		Name:      FourPoint,
		MaxPoints: 4.0,
		Bands: []Band{
			{MinScore: 90, Points: 4.0, Letter: "A"},
			{MinScore: 80, Points: 3.0, Letter: "B"},
			{MinScore: 70, Points: 2.0, Letter: "C"},
			{MinScore: 60, Points: 1.0, Letter: "D"},
			{MinScore: 0, Points: 0.0, Letter: "F"},
		},
	},
	FivePoint: {
		Name:      FivePoint,
		MaxPoints: 5.0,
		Bands: []Band{
			{MinScore: 70, Points: 5.0, Letter: "A"},
			{MinScore: 60, Points: 4.0, Letter: "B"},
			{MinScore: 50, Points: 3.0, Letter: "C"},
			{MinScore: 45, Points: 2.0, Letter: "D"},
			{MinScore: 0, Points: 0.0, Letter: "F"},
		},
		Classes: []Class{
			{MinGPA: 4.50, Label: "First Class Honours (1st)"},
			{MinGPA: 3.50, Label: "Second Class Upper (2:1)"},
			{MinGPA: 2.50, Label: "Second Class Lower (2:2)"},
			{MinGPA: 1.50, Label: "Third Class (3rd)"},
			{MinGPA: 0, Label: "Fail"},
		},
	},
}

// Lookup returns the built-in scale called name
func Lookup(name string) (Scale, error) {
	s, ok := builtins[name]
	if !ok {
		return Scale{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScale, name, Names())
	}
	return s.clone(), nil
}

// Names lists the built-in scale names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// clone copies the slices so callers cannot alter the built-in tables
func (s Scale) clone() Scale {
	out := s
	out.Bands = append([]Band(nil), s.Bands...)
	if s.Classes != nil {
		out.Classes = append([]Class(nil), s.Classes...)
	}
	return out
}
