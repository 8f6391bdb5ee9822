package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/wire"
)

// PlanCmd returns the plan command
func PlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [order-id...]",
		Short: "Plan work tasks from orders",
		Long: `Decompose the named orders into pending work tasks, one per eligible
order line. Re-planning an order is safe: lines that already carry a
live task are skipped.

Examples:
  dispatch plan ORD-1001 --company COMP-001 --warehouse WH-001
  dispatch plan ORD-1001 ORD-1002 --company COMP-001 --warehouse WH-001 --type pick`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, err := warehouseID(cmd)
			if err != nil {
				return err
			}
			taskType, _ := cmd.Flags().GetString("type")
			actor, _ := cmd.Flags().GetString("actor")

			result, err := wire.PlannerService().PlanFromOrders(context.Background(), primary.PlanFromOrdersRequest{
				CompanyID:   companyID(cmd),
				WarehouseID: warehouse,
				OrderIDs:    args,
				TaskType:    taskType,
				ActorID:     actor,
			})
			if err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}

			fmt.Printf("%s Created %d task(s)\n", okMark, len(result.CreatedTaskIDs))
			for _, id := range result.CreatedTaskIDs {
				fmt.Printf("  %s\n", id)
			}
			if len(result.Skipped) > 0 {
				fmt.Printf("\n%s Skipped %d line(s):\n", warnMark, len(result.Skipped))
				for _, skip := range result.Skipped {
					fmt.Printf("  %s [%s] %s\n", skip.ID, skip.Code, skip.Reason)
				}
			}
			return nil
		},
	}

	tenancyFlags(cmd, true)
	cmd.Flags().String("type", "", "Task type to create (default pick)")
	cmd.Flags().String("actor", "", "Acting agent ID")

	return cmd
}

// AssignCmd returns the assign command
func AssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign [task-id...]",
		Short: "Distribute pending tasks across available agents",
		Long: `Assign the named pending tasks to the warehouse's available agents.
Higher-priority tasks are placed first; each task goes to the agent with
the fewest open tasks. Agents at the configured ceiling receive nothing,
and leftover tasks stay pending.

Examples:
  dispatch assign TASK-0001 TASK-0002 --company COMP-001 --warehouse WH-001`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, err := warehouseID(cmd)
			if err != nil {
				return err
			}
			actor, _ := cmd.Flags().GetString("actor")

			result, err := wire.PlannerService().AssignToAgents(context.Background(), primary.AssignRequest{
				CompanyID:   companyID(cmd),
				WarehouseID: warehouse,
				TaskIDs:     args,
				ActorID:     actor,
			})
			if err != nil {
				return fmt.Errorf("assignment failed: %w", err)
			}

			fmt.Printf("%s Assigned %d task(s)\n", okMark, result.AssignedCount)
			for _, id := range result.AssignedTaskIDs {
				fmt.Printf("  %s\n", id)
			}
			if len(result.Errors) > 0 {
				fmt.Printf("\n%s %d task(s) not assigned:\n", warnMark, len(result.Errors))
				for _, e := range result.Errors {
					fmt.Printf("  %s [%s] %s\n", e.ID, e.Code, e.Reason)
				}
			}
			return nil
		},
	}

	tenancyFlags(cmd, true)
	cmd.Flags().String("actor", "", "Acting agent ID")

	return cmd
}
