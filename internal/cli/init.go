package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/config"
	"github.com/example/dispatch/internal/db"
	"github.com/example/dispatch/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the dispatch database and config",
		Long:  `Initialize the dispatch database at ~/.dispatch/dispatch.db with the required schema and write a default config.yaml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.HomeDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}

			if err := config.WriteDefault(dir); err != nil {
				return err
			}
			fmt.Printf("%s Config written to %s/config.yaml\n", okMark, dir)

			cfg := wire.Config()
			fmt.Printf("Initializing dispatch database at %s\n", cfg.DatabasePath)

			// wire.Config already opened the database and ran schema init
			if _, err := db.Open(cfg.DatabasePath); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			fmt.Printf("%s Database initialized successfully\n", okMark)
			fmt.Println()
			fmt.Println("Next steps:")
			fmt.Println("  dispatch seed                 # load demo fixtures")
			fmt.Println("  dispatch status --company COMP-001 --warehouse WH-001")

			return nil
		},
	}
}

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo fixtures into the database",
		Long:  `Load a demo company with one warehouse, map bins, products, agents and an open order. Intended for evaluation and local development.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			database, err := db.Open(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			if err := db.SeedFixtures(database); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}

			fmt.Printf("%s Demo fixtures loaded\n", okMark)
			fmt.Println()
			fmt.Println("Try:")
			fmt.Println("  dispatch plan ORD-1001 --company COMP-001 --warehouse WH-001")
			return nil
		},
	}
}
