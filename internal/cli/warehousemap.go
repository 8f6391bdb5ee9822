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

// MapCmd returns the map command
func MapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Query the warehouse map",
		Long:  `Resolve bins and location codes to coordinates and list a warehouse's bins.`,
	}

	cmd.AddCommand(mapResolveCmd())
	cmd.AddCommand(mapBinsCmd())

	return cmd
}

func mapResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [bin-id-or-code]",
		Short: "Resolve a bin id or location code to coordinates",
		Long: `Resolve a location to (x, y) coordinates. The argument is tried as a
bin id first, then as a location code. An unresolved location is a
normal outcome, not an error.

Examples:
  dispatch map resolve BIN-0001 --company COMP-001 --warehouse WH-001
  dispatch map resolve A1-1-01 --company COMP-001 --warehouse WH-001`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, err := warehouseID(cmd)
			if err != nil {
				return err
			}
			ctx := context.Background()

			// Try as bin id first, then as code.
			loc, err := wire.MapService().ResolveLocation(ctx, primary.ResolveLocationRequest{
				CompanyID:   companyID(cmd),
				WarehouseID: warehouse,
				BinID:       args[0],
			})
			if err != nil {
				return err
			}
			if !loc.Resolved {
				loc, err = wire.MapService().ResolveLocation(ctx, primary.ResolveLocationRequest{
					CompanyID:   companyID(cmd),
					WarehouseID: warehouse,
					Code:        args[0],
				})
				if err != nil {
					return err
				}
			}

			if !loc.Resolved {
				fmt.Printf("%s %s does not resolve in warehouse %s\n", warnMark, args[0], warehouse)
				return nil
			}

			fmt.Printf("%s %s resolves to (%g, %g)\n", okMark, args[0], loc.X, loc.Y)
			return nil
		},
	}

	tenancyFlags(cmd, true)
	return cmd
}

func mapBinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bins",
		Short: "List a warehouse's bins",
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, err := warehouseID(cmd)
			if err != nil {
				return err
			}

			bins, err := wire.MapService().ListBins(context.Background(), companyID(cmd), warehouse)
			if err != nil {
				return fmt.Errorf("failed to list bins: %w", err)
			}

			if len(bins) == 0 {
				fmt.Println("No bins found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tCODE\tRACK\tX\tY")
			for _, b := range bins {
				fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%g\n", b.ID, b.Code, b.RackID, b.X, b.Y)
			}
			w.Flush()
			return nil
		},
	}

	tenancyFlags(cmd, true)
	return cmd
}
