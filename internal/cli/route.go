package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/wire"
)

// RouteCmd returns the route command
func RouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route [task-id...]",
		Short: "Compute a travel-efficient visiting order for tasks",
		Long: `Order the named tasks into a travel-efficient sequence from a start
position. The start is a bin (--start-bin) or an explicit coordinate
(--start-x/--start-y); the explicit coordinate wins if both are given.
Tasks whose location cannot be resolved are appended at the end.

Examples:
  dispatch route TASK-0001 TASK-0002 TASK-0003 --company COMP-001 --warehouse WH-001
  dispatch route TASK-0001 TASK-0002 --company COMP-001 --warehouse WH-001 --start-bin BIN-0001`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, err := warehouseID(cmd)
			if err != nil {
				return err
			}
			startBin, _ := cmd.Flags().GetString("start-bin")
			startX, _ := cmd.Flags().GetFloat64("start-x")
			startY, _ := cmd.Flags().GetFloat64("start-y")
			hasCoord := cmd.Flags().Changed("start-x") || cmd.Flags().Changed("start-y")

			result, err := wire.RoutingService().OptimalSequence(context.Background(), primary.RouteRequest{
				CompanyID:     companyID(cmd),
				WarehouseID:   warehouse,
				TaskIDs:       args,
				StartBinID:    startBin,
				StartX:        startX,
				StartY:        startY,
				HasStartCoord: hasCoord,
			})
			if err != nil {
				return fmt.Errorf("routing failed: %w", err)
			}

			fmt.Printf("Route (%d stops, estimated distance %.2f):\n", len(result.OrderedTaskIDs), result.EstimatedTotalDistance)
			for i, id := range result.OrderedTaskIDs {
				fmt.Printf("  %d. %s\n", i+1, id)
			}
			if len(result.Errors) > 0 {
				fmt.Printf("\n%s %d issue(s):\n", warnMark, len(result.Errors))
				for _, e := range result.Errors {
					fmt.Printf("  %s [%s] %s\n", e.ID, e.Code, e.Reason)
				}
			}
			return nil
		},
	}

	tenancyFlags(cmd, true)
	cmd.Flags().String("start-bin", "", "Start bin ID")
	cmd.Flags().Float64("start-x", 0, "Start X coordinate")
	cmd.Flags().Float64("start-y", 0, "Start Y coordinate")

	return cmd
}
