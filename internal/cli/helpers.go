// Package cli contains the cobra commands of the dispatch CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	okMark   = color.New(color.FgGreen).Sprint("✓")
	warnMark = color.New(color.FgYellow).Sprint("⚠")
	failMark = color.New(color.FgRed).Sprint("✗")
)

// tenancyFlags registers the --company and --warehouse flags shared by
// most commands. The company falls back to DISPATCH_COMPANY_ID via the
// environment when the flag is absent.
func tenancyFlags(cmd *cobra.Command, needWarehouse bool) {
	cmd.Flags().String("company", "", "Company ID (defaults to $DISPATCH_COMPANY_ID)")
	if needWarehouse {
		cmd.Flags().String("warehouse", "", "Warehouse ID")
	}
}

// companyID resolves the company context from the flag or environment.
func companyID(cmd *cobra.Command) string {
	id, _ := cmd.Flags().GetString("company")
	if id == "" {
		id = os.Getenv("DISPATCH_COMPANY_ID")
	}
	return id
}

// warehouseID resolves the warehouse flag, erroring when required.
func warehouseID(cmd *cobra.Command) (string, error) {
	id, _ := cmd.Flags().GetString("warehouse")
	if id == "" {
		return "", fmt.Errorf("no warehouse specified\nHint: use --warehouse WH-001")
	}
	return id, nil
}

// statusIcon maps a task status to a colored marker for listings.
func statusIcon(status string) string {
	switch status {
	case "pending":
		return color.New(color.FgWhite).Sprint("○")
	case "assigned":
		return color.New(color.FgCyan).Sprint("◐")
	case "in_progress":
		return color.New(color.FgYellow).Sprint("◑")
	case "completed":
		return color.New(color.FgGreen).Sprint("●")
	case "cancelled":
		return color.New(color.FgRed).Sprint("✗")
	}
	return "?"
}
