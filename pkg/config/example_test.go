package config_test

import (
	"fmt"

	"github.com/wonny/gpacalc/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("Scale: %s\n", cfg.Grading.Scale)
	fmt.Printf("Units: %d..%d\n", cfg.Limits.UnitsMin, cfg.Limits.UnitsMax)
}
