package commands

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"
)

func newClassifyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "classify GPA",
		Short:   "Print the degree classification for a GPA",
		Example: "  gpa classify 4.5\n  gpa classify 3.2 --scale-file config/scales/four_point_classified.yaml",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil || math.IsNaN(value) {
				return fmt.Errorf("invalid GPA %q", args[0])
			}

			d, err := initDeps(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			scale := d.scale
			if value < 0 || value > scale.MaxPoints {
				return fmt.Errorf("GPA %.2f is outside 0 to %.1f on %s", value, scale.MaxPoints, scale.Name)
			}

			label, ok := scale.Classify(value)
			if !ok {
				return fmt.Errorf("scale %s defines no classifications", scale.Name)
			}

			fmt.Fprintln(cmd.OutOrStdout(), label)
			return nil
		},
	}
}
