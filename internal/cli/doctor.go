package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/config"
	"github.com/example/dispatch/internal/db"
	"github.com/example/dispatch/internal/version"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string
	Details string // only shown if the check did not pass
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Validate the dispatch environment",
		Long: `Environment health check for dispatch.

Validates:
- Config directory and config.yaml (~/.dispatch/)
- Configuration values
- Database file and schema version

Examples:
  dispatch doctor           # Run full health check
  dispatch doctor --quiet   # Exit code only (0=healthy, 1=issues)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results := []CheckResult{
				checkConfigDir(),
				checkConfig(),
				checkDatabase(),
			}

			hasErrors := false
			for _, r := range results {
				if r.Status == failMark {
					hasErrors = true
					break
				}
			}

			if !quiet {
				fmt.Println()
				fmt.Printf("dispatch %s\n", version.String())
				fmt.Println()
				for _, r := range results {
					fmt.Printf("%-14s %s\n", r.Name, r.Status)
				}
				fmt.Println()

				for _, r := range results {
					if r.Status != okMark && r.Details != "" {
						fmt.Printf("%s:\n%s\n", r.Name, r.Details)
					}
				}

				if !hasErrors {
					fmt.Println("All checks passed.")
				}
			}

			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

func checkConfigDir() CheckResult {
	dir, err := config.HomeDir()
	if err != nil {
		return CheckResult{Name: "Config dir", Status: failMark, Details: "  Cannot determine home directory"}
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Config dir",
			Status:  warnMark,
			Details: "  " + dir + " does not exist\n  Run: dispatch init",
		}
	}
	return CheckResult{Name: "Config dir", Status: okMark}
}

func checkConfig() CheckResult {
	cfg, err := config.Load()
	if err != nil {
		return CheckResult{Name: "Config", Status: failMark, Details: "  " + err.Error()}
	}
	if err := config.Validate(cfg); err != nil {
		return CheckResult{Name: "Config", Status: failMark, Details: "  " + err.Error()}
	}
	return CheckResult{Name: "Config", Status: okMark}
}

func checkDatabase() CheckResult {
	cfg, err := config.Load()
	if err != nil {
		return CheckResult{Name: "Database", Status: failMark, Details: "  Config unreadable"}
	}

	if _, err := os.Stat(cfg.DatabasePath); os.IsNotExist(err) {
		return CheckResult{
			Name:    "Database",
			Status:  warnMark,
			Details: "  " + cfg.DatabasePath + " does not exist\n  Run: dispatch init",
		}
	}

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return CheckResult{Name: "Database", Status: failMark, Details: "  " + err.Error()}
	}

	current, err := db.CurrentSchemaVersion(database)
	if err != nil {
		return CheckResult{Name: "Database", Status: failMark, Details: "  Cannot read schema version: " + err.Error()}
	}
	if current < db.LatestVersion() {
		return CheckResult{
			Name:    "Database",
			Status:  warnMark,
			Details: fmt.Sprintf("  Schema version %d, latest is %d\n  Run: dispatch init", current, db.LatestVersion()),
		}
	}

	return CheckResult{Name: "Database", Status: okMark}
}
