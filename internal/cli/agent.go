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

// AgentCmd returns the agent command
func AgentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Manage the agent pool",
		Long:  `Register and manage the humans and robots that execute work tasks.`,
	}

	cmd.AddCommand(agentRegisterCmd())
	cmd.AddCommand(agentListCmd())
	cmd.AddCommand(agentShowCmd())
	cmd.AddCommand(agentAvailableCmd())

	return cmd
}

func agentRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [name]",
		Short: "Register a new agent",
		Long: `Register an agent in a warehouse's pool. New agents start available.

Examples:
  dispatch agent register "Dana" --kind human --company COMP-001 --warehouse WH-001
  dispatch agent register "AMR-7" --kind robot --company COMP-001 --warehouse WH-001`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, err := warehouseID(cmd)
			if err != nil {
				return err
			}
			kind, _ := cmd.Flags().GetString("kind")

			resp, err := wire.AgentService().RegisterAgent(context.Background(), primary.RegisterAgentRequest{
				CompanyID:   companyID(cmd),
				WarehouseID: warehouse,
				Name:        args[0],
				Kind:        kind,
			})
			if err != nil {
				return fmt.Errorf("failed to register agent: %w", err)
			}

			fmt.Printf("%s Registered agent %s: %s (%s)\n", okMark, resp.AgentID, resp.Agent.Name, resp.Agent.Kind)
			return nil
		},
	}

	tenancyFlags(cmd, true)
	cmd.Flags().String("kind", "human", "Agent kind: human or robot")

	return cmd
}

func agentListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List agents with open-task counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			warehouse, _ := cmd.Flags().GetString("warehouse")
			kind, _ := cmd.Flags().GetString("kind")
			availableOnly, _ := cmd.Flags().GetBool("available")

			agents, err := wire.AgentService().ListAgents(context.Background(), primary.AgentFilters{
				CompanyID:     companyID(cmd),
				WarehouseID:   warehouse,
				Kind:          kind,
				AvailableOnly: availableOnly,
			})
			if err != nil {
				return fmt.Errorf("failed to list agents: %w", err)
			}

			if len(agents) == 0 {
				fmt.Println("No agents found.")
				fmt.Println()
				fmt.Println("Register your first agent:")
				fmt.Println("  dispatch agent register \"Dana\" --kind human --warehouse WH-001")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tAVAILABLE\tOPEN TASKS")
			for _, a := range agents {
				available := "yes"
				if !a.Available {
					available = "no"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", a.ID, a.Name, a.Kind, available, a.OpenTasks)
			}
			w.Flush()
			return nil
		},
	}

	tenancyFlags(cmd, false)
	cmd.Flags().String("warehouse", "", "Filter by warehouse")
	cmd.Flags().String("kind", "", "Filter by kind (human/robot)")
	cmd.Flags().Bool("available", false, "Only available agents")

	return cmd
}

func agentShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [agent-id]",
		Short: "Show agent details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, err := wire.AgentService().GetAgent(context.Background(), companyID(cmd), args[0])
			if err != nil {
				return fmt.Errorf("agent not found: %w", err)
			}

			fmt.Printf("Agent: %s\n", agent.ID)
			fmt.Printf("Name: %s\n", agent.Name)
			fmt.Printf("Kind: %s\n", agent.Kind)
			fmt.Printf("Warehouse: %s\n", agent.WarehouseID)
			fmt.Printf("Available: %v\n", agent.Available)
			fmt.Printf("Created: %s\n", agent.CreatedAt)
			return nil
		},
	}

	tenancyFlags(cmd, false)
	return cmd
}

func agentAvailableCmd() *cobra.Command {
	var available bool

	cmd := &cobra.Command{
		Use:   "available [agent-id]",
		Short: "Set agent availability",
		Long: `Mark an agent available or unavailable for assignment. Unavailable
agents keep their open tasks but receive no new ones.

Examples:
  dispatch agent available AGENT-001 --set=false
  dispatch agent available AGENT-001 --set=true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := wire.AgentService().SetAvailability(context.Background(), companyID(cmd), args[0], available)
			if err != nil {
				return err
			}

			state := "available"
			if !available {
				state = "unavailable"
			}
			fmt.Printf("%s Agent %s is now %s\n", okMark, args[0], state)
			return nil
		},
	}

	tenancyFlags(cmd, false)
	cmd.Flags().BoolVar(&available, "set", true, "Availability state")

	return cmd
}
