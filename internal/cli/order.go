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

// OrderCmd returns the order command
func OrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Inspect order demand",
		Long:  `List orders and show their lines. Orders are the input to planning.`,
	}

	cmd.AddCommand(orderListCmd())
	cmd.AddCommand(orderShowCmd())

	return cmd
}

func orderListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, _ := cmd.Flags().GetString("warehouse")
			status, _ := cmd.Flags().GetString("status")
			limit, _ := cmd.Flags().GetInt("limit")

			orders, err := wire.OrderService().ListOrders(context.Background(), primary.OrderFilters{
				CompanyID:   companyID(cmd),
				WarehouseID: warehouse,
				Status:      status,
				Limit:       limit,
			})
			if err != nil {
				return fmt.Errorf("failed to list orders: %w", err)
			}

			if len(orders) == 0 {
				fmt.Println("No orders found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tWAREHOUSE\tSTATUS\tPRIORITY\tCREATED")
			for _, o := range orders {
				priority := "-"
				if o.HasPriority {
					priority = fmt.Sprintf("%d", o.Priority)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", o.ID, o.WarehouseID, o.Status, priority, o.CreatedAt)
			}
			w.Flush()
			return nil
		},
	}

	tenancyFlags(cmd, false)
	cmd.Flags().String("warehouse", "", "Filter by warehouse")
	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().Int("limit", 0, "Limit number of results")

	return cmd
}

func orderShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [order-id]",
		Short: "Show an order with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := wire.OrderService().GetOrder(context.Background(), companyID(cmd), args[0])
			if err != nil {
				return fmt.Errorf("order not found: %w", err)
			}

			fmt.Printf("Order: %s\n", order.ID)
			fmt.Printf("Warehouse: %s\n", order.WarehouseID)
			fmt.Printf("Status: %s\n", order.Status)
			if order.HasPriority {
				fmt.Printf("Priority: %d\n", order.Priority)
			}
			fmt.Printf("Created: %s\n", order.CreatedAt)

			if len(order.Lines) > 0 {
				fmt.Println()
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
				fmt.Fprintln(w, "LINE\tPRODUCT\tQTY")
				for _, line := range order.Lines {
					fmt.Fprintf(w, "%d\t%s\t%g\n", line.LineNo, line.ProductID, line.Quantity)
				}
				w.Flush()
			}
			return nil
		},
	}

	tenancyFlags(cmd, false)
	return cmd
}
