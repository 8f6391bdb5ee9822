package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a warehouse work overview",
		Long: `Summarize a warehouse: task counts per status, agent pool size and
open orders.

Examples:
  dispatch status --company COMP-001 --warehouse WH-001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, err := warehouseID(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()
			company := companyID(cmd)

			tasks, err := wire.TaskService().ListTasks(ctx, primary.TaskFilters{
				CompanyID:   company,
				WarehouseID: warehouse,
			})
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			counts := make(map[string]int)
			for _, t := range tasks {
				counts[t.Status]++
			}

			agents, err := wire.AgentService().ListAgents(ctx, primary.AgentFilters{
				CompanyID:   company,
				WarehouseID: warehouse,
			})
			if err != nil {
				return fmt.Errorf("failed to list agents: %w", err)
			}
			available := 0
			for _, a := range agents {
				if a.Available {
					available++
				}
			}

			orders, err := wire.OrderService().ListOrders(ctx, primary.OrderFilters{
				CompanyID:   company,
				WarehouseID: warehouse,
				Status:      "open",
			})
			if err != nil {
				return fmt.Errorf("failed to list orders: %w", err)
			}

			fmt.Printf("Warehouse %s\n", warehouse)
			fmt.Println()
			fmt.Printf("Tasks (%d total):\n", len(tasks))
			for _, status := range []string{"pending", "assigned", "in_progress", "completed", "cancelled"} {
				if counts[status] > 0 {
					fmt.Printf("  %s %-12s %d\n", statusIcon(status), status, counts[status])
				}
			}
			fmt.Println()
			fmt.Printf("Agents: %d (%d available)\n", len(agents), available)
			fmt.Printf("Open orders: %d\n", len(orders))

			return nil
		},
	}

	tenancyFlags(cmd, true)
	return cmd
}
