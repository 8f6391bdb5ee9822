package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/cli"
	"github.com/example/dispatch/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "dispatch",
		Short:   "dispatch - warehouse task planning and routing engine",
		Version: version.String(),
		Long: `dispatch plans, assigns and routes warehouse work tasks.
It decomposes order demand into tasks, balances them across a pool of
human and robot agents, and computes travel-efficient pick routes.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.SeedCmd())
	rootCmd.AddCommand(cli.DoctorCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	// Planning and execution
	rootCmd.AddCommand(cli.PlanCmd())
	rootCmd.AddCommand(cli.AssignCmd())
	rootCmd.AddCommand(cli.RouteCmd())
	rootCmd.AddCommand(cli.TaskCmd())

	// Supporting entities
	rootCmd.AddCommand(cli.AgentCmd())
	rootCmd.AddCommand(cli.OrderCmd())
	rootCmd.AddCommand(cli.MapCmd())
	rootCmd.AddCommand(cli.EventsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
