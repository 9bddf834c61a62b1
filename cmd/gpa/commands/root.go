package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wonny/gpacalc/internal/grading"
	"github.com/wonny/gpacalc/internal/scaleconfig"
	"github.com/wonny/gpacalc/internal/session"
	"github.com/wonny/gpacalc/pkg/config"
	"github.com/wonny/gpacalc/pkg/logger"
)

// rootOptions are the persistent flags shared by every command
type rootOptions struct {
	env       string
	verbose   bool
	scale     string
	scaleFile string
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gpa",
		Short: "GPA Calculator - credit-weighted grade point averages",
		Long: `GPA Calculator

Enter courses as code, score (0-100) and course units, and get a
credit-weighted GPA with a degree classification.

Usage:
  go run ./cmd/gpa [command]

Examples:
  go run ./cmd/gpa calc --course CSC101:75:3 --course MTH101:55:2
  go run ./cmd/gpa calc --file config/courses.example.yaml --json
  go run ./cmd/gpa interactive --scale four_point
  go run ./cmd/gpa classify 4.5
  go run ./cmd/gpa scales`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.env, "env", "", "environment (development|staging|production), overrides ENV")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&opts.scale, "scale", "", fmt.Sprintf("grading scale %v, overrides GPA_SCALE", grading.Names()))
	rootCmd.PersistentFlags().StringVar(&opts.scaleFile, "scale-file", "", "YAML file with a custom scale, overrides GPA_SCALE_FILE")

	rootCmd.AddCommand(
		newCalcCmd(opts),
		newInteractiveCmd(opts),
		newScalesCmd(opts),
		newClassifyCmd(opts),
	)

	return rootCmd
}

// Execute builds the root command and runs it. It is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// deps are the collaborators every command needs
type deps struct {
	cfg    *config.Config
	log    *logger.Logger
	scale  grading.Scale
	custom *grading.Scale

	// snapshot is set when a custom scale file was loaded
	snapshot *scaleconfig.Snapshot
}

func (d *deps) limits() session.Limits {
	return session.Limits{
		ScoreMin: d.cfg.Limits.ScoreMin,
		ScoreMax: d.cfg.Limits.ScoreMax,
		UnitsMin: d.cfg.Limits.UnitsMin,
		UnitsMax: d.cfg.Limits.UnitsMax,
	}
}

func (d *deps) newSession() *session.Session {
	return session.New(d.scale, d.limits(), d.log)
}

// availableScales returns the built-in scales followed by the custom one, if loaded
func (d *deps) availableScales() []grading.Scale {
	scales := make([]grading.Scale, 0, len(grading.Names())+1)
	for _, name := range grading.Names() {
		s, _ := grading.Lookup(name)
		scales = append(scales, s)
	}
	if d.custom != nil {
		scales = append(scales, *d.custom)
	}
	return scales
}

// findScale resolves name among the available scales
func (d *deps) findScale(name string) (grading.Scale, error) {
	if d.custom != nil && d.custom.Name == name {
		return *d.custom, nil
	}
	return grading.Lookup(name)
}

func initDeps(opts *rootOptions, logOut io.Writer) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if opts.env != "" {
		cfg.Env = opts.env
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log := logger.NewWithWriter(cfg, logOut)

	d := &deps{cfg: cfg, log: log}

	scaleFile := cfg.Grading.ScaleFile
	if opts.scaleFile != "" {
		scaleFile = opts.scaleFile
	}
	if scaleFile != "" {
		custom, snap, err := loadCustomScale(scaleFile, log)
		if err != nil {
			return nil, err
		}
		d.custom = &custom
		d.snapshot = snap
	}

	// an explicit --scale wins; otherwise a custom scale file wins over GPA_SCALE
	name := cfg.Grading.Scale
	switch {
	case opts.scale != "":
		name = opts.scale
	case d.custom != nil:
		name = d.custom.Name
	}

	d.scale, err = d.findScale(name)
	if err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"scale": d.scale.Name,
		"env":   cfg.Env,
	}).Debug("Calculator initialized")

	return d, nil
}

func loadCustomScale(path string, log *logger.Logger) (grading.Scale, *scaleconfig.Snapshot, error) {
	cfg, data, err := scaleconfig.Load(path)
	if err != nil {
		return grading.Scale{}, nil, fmt.Errorf("load scale file %s: %w", path, err)
	}

	for _, w := range scaleconfig.Warn(cfg) {
		log.WithFields(map[string]interface{}{
			"code":  w.Code,
			"scale": cfg.Meta.Name,
		}).Warn(w.Message)
	}

	snap, err := scaleconfig.NewSnapshot(cfg, data)
	if err != nil {
		return grading.Scale{}, nil, fmt.Errorf("snapshot scale %s: %w", cfg.Meta.Name, err)
	}

	log.WithFields(map[string]interface{}{
		"scale":   snap.ScaleName,
		"version": snap.Version,
		"hash":    snap.ConfigHash,
	}).Debug("Custom scale loaded")

	return cfg.Scale(), snap, nil
}
