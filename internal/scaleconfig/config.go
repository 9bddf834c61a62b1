package scaleconfig

import (
	"time"

	"github.com/wonny/gpacalc/internal/grading"
)

// Config is a custom grading scale as written in a scale file
type Config struct {
	Meta      Meta    `yaml:"meta" json:"meta"`
	MaxPoints float64 `yaml:"max_points" json:"max_points"`
	Bands     []Band  `yaml:"bands" json:"bands"`
	Classes   []Class `yaml:"classes,omitempty" json:"classes,omitempty"`
}

// Meta identifies the scale
type Meta struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
}

// Band is one score threshold (inclusive lower bound)
type Band struct {
	MinScore float64 `yaml:"min_score" json:"min_score"`
	Points   float64 `yaml:"points" json:"points"`
	Letter   string  `yaml:"letter" json:"letter"`
}

// Class is one GPA threshold (inclusive lower bound)
type Class struct {
	MinGPA float64 `yaml:"min_gpa" json:"min_gpa"`
	Label  string  `yaml:"label" json:"label"`
}

// Scale converts the file representation into a grading.Scale
func (c *Config) Scale() grading.Scale {
	s := grading.Scale{
		Name:      c.Meta.Name,
		MaxPoints: c.MaxPoints,
		Bands:     make([]grading.Band, 0, len(c.Bands)),
	}
	for _, b := range c.Bands {
		s.Bands = append(s.Bands, grading.Band{MinScore: b.MinScore, Points: b.Points, Letter: b.Letter})
	}
	for _, cl := range c.Classes {
		s.Classes = append(s.Classes, grading.Class{MinGPA: cl.MinGPA, Label: cl.Label})
	}
	return s
}

// Snapshot records which scale produced a result, for reproducibility
type Snapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml"`
	ScaleName  string    `json:"scale_name"`
	Version    string    `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
}
