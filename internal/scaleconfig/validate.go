package scaleconfig

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/wonny/gpacalc/internal/grading"
)

// ValidationError rejects a scale file
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning flags a legal but suspicious scale
type Warning struct {
	Code    string
	Message string
}

var namePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks all required constraints
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.Name == "" {
		return ValidationError{"meta.name", "required"}
	}
	if !namePattern.MatchString(cfg.Meta.Name) {
		return ValidationError{"meta.name", "must be lower snake_case"}
	}
	if _, err := grading.Lookup(cfg.Meta.Name); err == nil {
		return ValidationError{"meta.name", fmt.Sprintf("%q is a built-in scale", cfg.Meta.Name)}
	}

	if !finite(cfg.MaxPoints) {
		return ValidationError{"max_points", "must be a finite number"}
	}
	if cfg.MaxPoints <= 0 {
		return ValidationError{"max_points", "must be > 0"}
	}

	// === Bands ===
	if len(cfg.Bands) == 0 {
		return ValidationError{"bands", "required"}
	}

	for i, b := range cfg.Bands {
		field := fmt.Sprintf("bands[%d]", i)

		if !finite(b.MinScore) {
			return ValidationError{field + ".min_score", "must be a finite number"}
		}
		if !finite(b.Points) {
			return ValidationError{field + ".points", "must be a finite number"}
		}
		if b.Points < 0 {
			return ValidationError{field + ".points", "must be >= 0"}
		}
		if b.Points > cfg.MaxPoints {
			return ValidationError{field + ".points", fmt.Sprintf("must be <= max_points=%.2f", cfg.MaxPoints)}
		}
		if strings.TrimSpace(b.Letter) == "" {
			return ValidationError{field + ".letter", "required"}
		}

		if i == 0 {
			continue
		}
		prev := cfg.Bands[i-1]
		if b.MinScore >= prev.MinScore {
			return ValidationError{field + ".min_score", fmt.Sprintf("must be < %.2f (bands descend)", prev.MinScore)}
		}
		if b.Points > prev.Points {
			return ValidationError{field + ".points", fmt.Sprintf("must be <= %.2f (points never increase)", prev.Points)}
		}
	}

	// last band catches every valid score
	if last := cfg.Bands[len(cfg.Bands)-1]; last.MinScore != 0 {
		return ValidationError{
			Field:   fmt.Sprintf("bands[%d].min_score", len(cfg.Bands)-1),
			Message: "last band must start at 0",
		}
	}

	// === Classes ===
	for i, c := range cfg.Classes {
		field := fmt.Sprintf("classes[%d]", i)

		if strings.TrimSpace(c.Label) == "" {
			return ValidationError{field + ".label", "required"}
		}
		if !finite(c.MinGPA) {
			return ValidationError{field + ".min_gpa", "must be a finite number"}
		}
		if c.MinGPA < 0 || c.MinGPA > cfg.MaxPoints {
			return ValidationError{field + ".min_gpa", fmt.Sprintf("must be in [0, %.2f]", cfg.MaxPoints)}
		}
		if i > 0 && c.MinGPA >= cfg.Classes[i-1].MinGPA {
			return ValidationError{field + ".min_gpa", fmt.Sprintf("must be < %.2f (classes descend)", cfg.Classes[i-1].MinGPA)}
		}
	}

	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if len(cfg.Bands) > 0 && cfg.Bands[0].Points < cfg.MaxPoints {
		warnings = append(warnings, Warning{
			Code:    "UNREACHABLE_MAX",
			Message: fmt.Sprintf("top band awards %.2f, max_points %.2f can never be reached", cfg.Bands[0].Points, cfg.MaxPoints),
		})
	}

	for _, b := range cfg.Bands {
		if b.MinScore > 100 {
			warnings = append(warnings, Warning{
				Code:    "BAND_ABOVE_100",
				Message: fmt.Sprintf("band %s starts at %.2f, above the maximum score", b.Letter, b.MinScore),
			})
		}
	}

	if len(cfg.Classes) == 0 {
		warnings = append(warnings, Warning{
			Code:    "NO_CLASSES",
			Message: "scale defines no classifications; results will carry no label",
		})
	} else if last := cfg.Classes[len(cfg.Classes)-1]; last.MinGPA != 0 {
		warnings = append(warnings, Warning{
			Code:    "CLASS_FLOOR",
			Message: fmt.Sprintf("GPAs below %.2f fall back to %q", last.MinGPA, last.Label),
		})
	}

	return warnings
}
