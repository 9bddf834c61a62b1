package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/gpacalc/internal/courseinput"
	"github.com/wonny/gpacalc/internal/gpa"
	"github.com/wonny/gpacalc/internal/grading"
	"github.com/wonny/gpacalc/internal/scaleconfig"
	"github.com/wonny/gpacalc/internal/session"
)

type calcOptions struct {
	courses []string
	file    string
	json    bool
}

func newCalcCmd(root *rootOptions) *cobra.Command {
	opts := &calcOptions{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate a GPA from course specs or a course file",
		Long: `Calculate a credit-weighted GPA.

Courses are given as CODE:SCORE:UNITS with --course (repeatable), or as a
YAML course file with --file ("-" reads stdin). Both may be combined; file
courses come after flag courses.`,
		Example: `  gpa calc --course CSC101:75:3 --course MTH101:55:2
  gpa calc --file config/courses.example.yaml --scale four_point --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, root, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.courses, "course", "c", nil, "course as CODE:SCORE:UNITS (repeatable)")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML course file (- for stdin)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")

	return cmd
}

func runCalc(cmd *cobra.Command, root *rootOptions, opts *calcOptions) error {
	d, err := initDeps(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	inputs, err := collectInputs(cmd, opts)
	if err != nil {
		return err
	}

	s := d.newSession()
	for i, in := range inputs {
		if !in.Complete() {
			field := fmt.Sprintf("courses[%d].%s", i, strings.Join(in.Missing(), ","))
			return fmt.Errorf("course %d (%s): %w", i+1, in.Code, session.IncompleteError(field))
		}
		if _, err := s.AddCourse(in.Code, in.Score, in.Units); err != nil {
			return fmt.Errorf("course %d (%s): %w", i+1, in.Code, err)
		}
	}

	res, err := s.Calculate()
	if err != nil {
		return err
	}

	d.log.WithFields(map[string]interface{}{
		"scale":   res.Scale,
		"courses": res.Courses,
		"gpa":     res.GPA,
	}).Info("GPA calculated")

	out := newPrinter(cmd.OutOrStdout())
	if opts.json {
		return writeReport(out, newReport(s.Scale(), res, s.Courses(), d.snapshot))
	}

	printResult(out, s.Scale(), res, s.Courses())
	return nil
}

func collectInputs(cmd *cobra.Command, opts *calcOptions) ([]courseinput.Input, error) {
	inputs, err := courseinput.ParseSpecs(opts.courses)
	if err != nil {
		return nil, err
	}

	var fromFile []courseinput.Input
	switch opts.file {
	case "":
	case "-":
		fromFile, err = courseinput.Read(cmd.InOrStdin())
	default:
		fromFile, err = courseinput.ReadFile(opts.file)
	}
	if err != nil {
		return nil, err
	}

	return append(inputs, fromFile...), nil
}

// reportCourse is one graded row of a JSON report
type reportCourse struct {
	ID     string  `json:"id"`
	Code   string  `json:"code"`
	Score  float64 `json:"score"`
	Units  int     `json:"units"`
	Letter string  `json:"letter"`
	Points float64 `json:"points"`
}

// scaleSource identifies a custom scale file
type scaleSource struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Hash    string `json:"hash"`
}

type report struct {
	gpa.Result
	Entries     []reportCourse `json:"entries"`
	ScaleSource *scaleSource   `json:"scale_source,omitempty"`
}

func newReport(scale grading.Scale, res gpa.Result, courses []gpa.Course, snap *scaleconfig.Snapshot) report {
	r := report{Result: res, Entries: make([]reportCourse, 0, len(courses))}
	for _, c := range courses {
		r.Entries = append(r.Entries, reportCourse{
			ID:     c.ID,
			Code:   c.CourseCode,
			Score:  c.Score,
			Units:  c.Credits,
			Letter: scale.Letter(c.Score),
			Points: scale.Points(c.Score),
		})
	}
	if snap != nil && snap.ScaleName == scale.Name {
		r.ScaleSource = &scaleSource{Name: snap.ScaleName, Version: snap.Version, Hash: snap.ConfigHash}
	}
	return r
}

func writeReport(out *printer, r report) error {
	enc := json.NewEncoder(out.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

var courseColumns = []string{"#", "Code", "Score", "Units", "Grade", "Points"}
var courseWidths = []int{3, 10, 7, 5, 5, 6}

func printCourses(out *printer, scale grading.Scale, entries []session.Entry) {
	out.TableHeader(courseColumns, courseWidths)
	for i, e := range entries {
		score, letter, points := "-", "-", "-"
		if e.Scored {
			score = fmt.Sprintf("%.1f", e.Score)
			letter = scale.Letter(e.Score)
			points = fmt.Sprintf("%.1f", scale.Points(e.Score))
		}
		code := e.CourseCode
		if code == "" {
			code = "-"
		}
		out.TableRow([]string{
			fmt.Sprintf("%d", i+1),
			code,
			score,
			fmt.Sprintf("%d", e.Credits),
			letter,
			points,
		}, courseWidths)
	}
}

func printResult(out *printer, scale grading.Scale, res gpa.Result, courses []gpa.Course) {
	entries := make([]session.Entry, len(courses))
	for i, c := range courses {
		entries[i] = session.Entry{Course: c, Scored: true}
	}

	out.Header(fmt.Sprintf("GPA Result (%s)", scale.Name))
	printCourses(out, scale, entries)
	out.Separator()
	printSummary(out, scale, res)
}

func printSummary(out *printer, scale grading.Scale, res gpa.Result) {
	out.KeyValue("Courses", fmt.Sprintf("%d", res.Courses), 14)
	out.KeyValue("Total Units", fmt.Sprintf("%d", res.TotalCredits), 14)
	out.KeyValue("Total Points", fmt.Sprintf("%.2f", res.TotalPoints), 14)
	out.KeyValue("GPA", fmt.Sprintf("%.2f / %.1f", res.GPA, scale.MaxPoints), 14)
	if res.Classification != "" {
		out.KeyValue("Classification", res.Classification, 14)
	}
	if res.Degenerate {
		out.Warning("Courses carry no credit weight; GPA reported as 0")
	}
}
