package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/dispatch/internal/ports/primary"
	"github.com/example/dispatch/internal/wire"
)

// EventsCmd returns the events command
func EventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show the task event audit trail",
		Long: `List task state-change events, newest first. Every committed
transition (plan, assign, start, complete, cancel) appends one event.

Examples:
  dispatch events --company COMP-001 --limit 20
  dispatch events --company COMP-001 --task TASK-0001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, _ := cmd.Flags().GetString("warehouse")
			taskID, _ := cmd.Flags().GetString("task")
			limit, _ := cmd.Flags().GetInt("limit")

			events, err := wire.EventService().ListEvents(context.Background(), primary.EventFilters{
				CompanyID:   companyID(cmd),
				WarehouseID: warehouse,
				TaskID:      taskID,
				Limit:       limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list events: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No events found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "TIME\tTASK\tTRANSITION\tACTOR\tDETAIL")
			for _, e := range events {
				from := e.FromStatus
				if from == "" {
					from = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s → %s\t%s\t%s\n",
					e.CreatedAt, e.TaskID, from, e.ToStatus, e.ActorID, e.Detail)
			}
			w.Flush()
			return nil
		},
	}

	tenancyFlags(cmd, false)
	cmd.Flags().String("warehouse", "", "Filter by warehouse")
	cmd.Flags().String("task", "", "Filter by task")
	cmd.Flags().Int("limit", 50, "Limit number of results")

	return cmd
}
