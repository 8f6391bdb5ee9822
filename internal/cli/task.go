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

// TaskCmd returns the task command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage work tasks",
		Long:  `Inspect and transition work tasks: list, show, start, complete, cancel, delete.`,
	}

	cmd.AddCommand(taskListCmd())
	cmd.AddCommand(taskShowCmd())
	cmd.AddCommand(taskStartCmd())
	cmd.AddCommand(taskCompleteCmd())
	cmd.AddCommand(taskCancelCmd())
	cmd.AddCommand(taskDeleteCmd())

	return cmd
}

func taskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks ordered by priority (highest first), oldest first within
a priority.

Examples:
  dispatch task list --company COMP-001
  dispatch task list --company COMP-001 --status pending
  dispatch task list --company COMP-001 --assignee AGENT-001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			warehouse, _ := cmd.Flags().GetString("warehouse")
			status, _ := cmd.Flags().GetString("status")
			taskType, _ := cmd.Flags().GetString("type")
			assignee, _ := cmd.Flags().GetString("assignee")
			order, _ := cmd.Flags().GetString("order")
			includeDeleted, _ := cmd.Flags().GetBool("deleted")
			limit, _ := cmd.Flags().GetInt("limit")

			tasks, err := wire.TaskService().ListTasks(ctx, primary.TaskFilters{
				CompanyID:      companyID(cmd),
				WarehouseID:    warehouse,
				Status:         status,
				Type:           taskType,
				AssigneeID:     assignee,
				SourceOrderID:  order,
				IncludeDeleted: includeDeleted,
				Limit:          limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list tasks: %w", err)
			}

			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, " \tID\tTYPE\tPRI\tSTATUS\tPRODUCT\tQTY\tBIN\tASSIGNEE")
			for _, t := range tasks {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%g\t%s\t%s\n",
					statusIcon(t.Status), t.ID, t.Type, t.Priority, t.Status,
					t.ProductID, t.Quantity, t.BinID, t.AssigneeID,
				)
			}
			w.Flush()
			return nil
		},
	}

	tenancyFlags(cmd, false)
	cmd.Flags().String("warehouse", "", "Filter by warehouse")
	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().String("type", "", "Filter by task type")
	cmd.Flags().String("assignee", "", "Filter by assignee")
	cmd.Flags().String("order", "", "Filter by source order")
	cmd.Flags().Bool("deleted", false, "Include soft-deleted tasks")
	cmd.Flags().Int("limit", 0, "Limit number of results")

	return cmd
}

func taskShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [task-id]",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := wire.TaskService().GetTask(context.Background(), companyID(cmd), args[0])
			if err != nil {
				return fmt.Errorf("task not found: %w", err)
			}

			fmt.Printf("Task: %s\n", task.ID)
			fmt.Printf("Type: %s\n", task.Type)
			fmt.Printf("Status: %s %s\n", statusIcon(task.Status), task.Status)
			fmt.Printf("Priority: %d\n", task.Priority)
			fmt.Printf("Warehouse: %s\n", task.WarehouseID)
			if task.ProductID != "" {
				fmt.Printf("Product: %s (qty %g)\n", task.ProductID, task.Quantity)
			}
			if task.BinID != "" {
				fmt.Printf("Bin: %s\n", task.BinID)
			}
			if task.LocationCode != "" {
				fmt.Printf("Location: %s\n", task.LocationCode)
			}
			if task.SourceOrderID != "" {
				fmt.Printf("Source order: %s\n", task.SourceOrderID)
			}
			if task.AssigneeID != "" {
				fmt.Printf("Assignee: %s (%s)\n", task.AssigneeID, task.AssigneeKind)
			}
			if task.Notes != "" {
				fmt.Printf("Notes: %s\n", task.Notes)
			}
			if task.CancelReason != "" {
				fmt.Printf("Cancel reason: %s\n", task.CancelReason)
			}
			fmt.Printf("Created: %s\n", task.CreatedAt)
			if task.AssignedAt != "" {
				fmt.Printf("Assigned: %s\n", task.AssignedAt)
			}
			if task.StartedAt != "" {
				fmt.Printf("Started: %s\n", task.StartedAt)
			}
			if task.CompletedAt != "" {
				fmt.Printf("Completed: %s\n", task.CompletedAt)
			}
			return nil
		},
	}

	tenancyFlags(cmd, false)
	return cmd
}

func taskStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [task-id]",
		Short: "Start an assigned task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, _ := cmd.Flags().GetString("actor")

			err := wire.TaskService().StartTask(context.Background(), primary.TransitionRequest{
				CompanyID: companyID(cmd),
				TaskID:    args[0],
				ActorID:   actor,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s Task %s started\n", okMark, args[0])
			return nil
		},
	}

	tenancyFlags(cmd, false)
	cmd.Flags().String("actor", "", "Acting agent ID (recorded in the event trail)")
	return cmd
}

func taskCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [task-id]",
		Short: "Complete an assigned or in-progress task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, _ := cmd.Flags().GetString("actor")
			notes, _ := cmd.Flags().GetString("notes")

			err := wire.TaskService().CompleteTask(context.Background(), primary.TransitionRequest{
				CompanyID: companyID(cmd),
				TaskID:    args[0],
				ActorID:   actor,
				Notes:     notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s Task %s completed\n", okMark, args[0])
			return nil
		},
	}

	tenancyFlags(cmd, false)
	cmd.Flags().String("actor", "", "Acting agent ID")
	cmd.Flags().String("notes", "", "Completion notes")
	return cmd
}

func taskCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel [task-id]",
		Short: "Cancel a non-terminal task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, _ := cmd.Flags().GetString("actor")
			reason, _ := cmd.Flags().GetString("reason")

			err := wire.TaskService().CancelTask(context.Background(), primary.TransitionRequest{
				CompanyID: companyID(cmd),
				TaskID:    args[0],
				ActorID:   actor,
				Reason:    reason,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s Task %s cancelled\n", okMark, args[0])
			return nil
		},
	}

	tenancyFlags(cmd, false)
	cmd.Flags().String("actor", "", "Acting agent ID")
	cmd.Flags().String("reason", "", "Cancellation reason")
	return cmd
}

func taskDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Soft-delete a task",
		Long: `Mark a task deleted. The row is retained for the audit trail but
drops out of listings and open-task counts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.TaskService().DeleteTask(context.Background(), companyID(cmd), args[0]); err != nil {
				return err
			}
			fmt.Printf("%s Task %s deleted\n", okMark, args[0])
			return nil
		},
	}

	tenancyFlags(cmd, false)
	return cmd
}
