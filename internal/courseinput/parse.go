// Package courseinput reads raw course entries from command-line specs and
// course files. It only parses; range checks belong to the session.
package courseinput

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned for input that cannot be parsed at all
var ErrMalformed = errors.New("malformed course")

// Input is one raw course as entered by the user
type Input struct {
	Code  string
	Score float64
	Units int

	// missing lists the fields a course file row left out
	missing []string
}

// Missing returns the fields that were absent from the source row
func (in Input) Missing() []string {
	return in.missing
}

// Complete reports whether every field was supplied
func (in Input) Complete() bool {
	return len(in.missing) == 0
}

// File is the layout of a course file. Pointers tell an absent key from a zero value.
type File struct {
	Courses []Row `yaml:"courses" json:"courses"`
}

// Row is one course as written in a course file
type Row struct {
	Code  *string  `yaml:"code" json:"code"`
	Score *float64 `yaml:"score" json:"score"`
	Units *int     `yaml:"units" json:"units"`
}

// Input converts the row, recording absent fields
func (r Row) Input() Input {
	var in Input
	if r.Code != nil {
		in.Code = strings.TrimSpace(*r.Code)
	} else {
		in.missing = append(in.missing, "code")
	}
	if r.Score != nil {
		in.Score = *r.Score
	} else {
		in.missing = append(in.missing, "score")
	}
	if r.Units != nil {
		in.Units = *r.Units
	} else {
		in.missing = append(in.missing, "units")
	}
	return in
}

// ParseSpec parses a CODE:SCORE:UNITS triple such as "CSC101:75:3"
func ParseSpec(spec string) (Input, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return Input{}, fmt.Errorf("%w: %q (want CODE:SCORE:UNITS)", ErrMalformed, spec)
	}

	score, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Input{}, fmt.Errorf("%w: %q score is not a number", ErrMalformed, spec)
	}

	units, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Input{}, fmt.Errorf("%w: %q units must be a whole number", ErrMalformed, spec)
	}

	return Input{Code: strings.TrimSpace(parts[0]), Score: score, Units: units}, nil
}

// ParseSpecs parses every spec, stopping at the first malformed one
func ParseSpecs(specs []string) ([]Input, error) {
	inputs := make([]Input, 0, len(specs))
	for _, spec := range specs {
		in, err := ParseSpec(spec)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// Read decodes a course file. JSON documents are accepted as YAML.
func Read(r io.Reader) ([]Input, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read course file: %w", err)
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if len(f.Courses) == 0 {
		return nil, nil
	}

	inputs := make([]Input, len(f.Courses))
	for i, row := range f.Courses {
		inputs[i] = row.Input()
	}
	return inputs, nil
}

// ReadFile decodes the course file at path; "-" reads stdin
func ReadFile(path string) ([]Input, error) {
	if path == "-" {
		return Read(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open course file: %w", err)
	}
	defer f.Close()

	return Read(f)
}
