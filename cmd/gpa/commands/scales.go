package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/gpacalc/internal/grading"
)

func newScalesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scales",
		Short: "List the grading scales with their bands and classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := initDeps(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout())
			for _, s := range d.availableScales() {
				printScale(out, s, s.Name == d.scale.Name)
			}
			return nil
		},
	}
}

func printScale(out *printer, s grading.Scale, active bool) {
	title := s.Name
	if active {
		title += " (active)"
	}
	out.Header(title)
	out.KeyValue("Max points", fmt.Sprintf("%.1f", s.MaxPoints), 10)
	out.println()

	widths := []int{9, 6, 6}
	out.TableHeader([]string{"Min score", "Grade", "Points"}, widths)
	for _, b := range s.Bands {
		out.TableRow([]string{
			fmt.Sprintf("%.1f", b.MinScore),
			b.Letter,
			fmt.Sprintf("%.1f", b.Points),
		}, widths)
	}

	if !s.HasClasses() {
		return
	}

	out.println()
	widths = []int{7, 30}
	out.TableHeader([]string{"Min GPA", "Classification"}, widths)
	for _, c := range s.Classes {
		out.TableRow([]string{fmt.Sprintf("%.2f", c.MinGPA), c.Label}, widths)
	}
}
