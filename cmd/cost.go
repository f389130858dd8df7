package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbuscli/nimbus/internal/ui"
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Inspect AWS spend",
	Long:  `Show month-to-date cost per service and flag idle resources that cost money.`,
}

var costSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Month-to-date spend grouped by service",
	Long: `Show the current month's spend per service, the running total and the
end-of-month forecast.

Examples:
  nbs cost summary
  nbs cost summary --top 5`,
	RunE: runCostSummary,
}

var costIdleCmd = &cobra.Command{
	Use:   "idle",
	Short: "Find idle resources that still cost money",
	Long: `Scan for resources that accrue cost without doing work: unattached EBS
volumes, unassociated Elastic IPs, stopped EC2 and RDS instances, and
load balancers without registered targets.`,
	RunE: runCostIdle,
}

var costTop int

func init() {
	rootCmd.AddCommand(costCmd)
	costCmd.AddCommand(costSummaryCmd)
	costCmd.AddCommand(costIdleCmd)

	costSummaryCmd.Flags().IntVar(&costTop, "top", 10, "Number of services to show")
}

func runCostSummary(cmd *cobra.Command, args []string) error {
	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	summary, err := client.MonthToDateCosts()
	if err != nil {
		return err
	}

	fmt.Printf("Spend %s to %s\n\n", summary.Start, summary.End)

	services := summary.Services
	if costTop > 0 && len(services) > costTop {
		services = services[:costTop]
	}

	rows := make([][]string, 0, len(services))
	for _, s := range services {
		rows = append(rows, []string{s.Service, fmt.Sprintf("%.2f %s", s.Amount, s.Unit)})
	}

	ui.PrintTable([]string{"Service", "Cost"}, rows)

	fmt.Printf("\n  Total:    %.2f %s\n", summary.Total, summary.Unit)
	if summary.Forecast > 0 {
		fmt.Printf("  Forecast: %.2f %s (end of month)\n", summary.Forecast, summary.Unit)
	}

	return nil
}

func runCostIdle(cmd *cobra.Command, args []string) error {
	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	idle, err := client.IdleResources()
	if err != nil {
		return err
	}

	if len(idle) == 0 {
		fmt.Println("No idle resources found")
		return nil
	}

	rows := make([][]string, 0, len(idle))
	for _, r := range idle {
		rows = append(rows, []string{r.Kind, r.ID, r.Detail})
	}

	ui.PrintTable([]string{"Kind", "Resource", "Detail"}, rows)
	fmt.Println("\nReview these resources; releasing them stops their charges.")

	return nil
}
