package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nimbuscli/nimbus/internal/aws"
	"github.com/nimbuscli/nimbus/internal/errors"
	"github.com/nimbuscli/nimbus/internal/ui"
)

var ecsCmd = &cobra.Command{
	Use:   "ecs",
	Short: "Manage ECS clusters and services",
	Long:  `Browse ECS clusters and services, view tasks and logs, and force new deployments.`,
}

var ecsClustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "List ECS clusters",
	RunE:  runECSClusters,
}

var ecsServicesCmd = &cobra.Command{
	Use:   "services <cluster>",
	Short: "List services of a cluster",
	Args:  cobra.ExactArgs(1),
	RunE:  runECSServices,
}

var ecsTasksCmd = &cobra.Command{
	Use:   "tasks <cluster> <service>",
	Short: "List the running tasks of a service",
	Args:  cobra.ExactArgs(2),
	RunE:  runECSTasks,
}

var ecsLogsCmd = &cobra.Command{
	Use:   "logs <cluster> <service>",
	Short: "Show recent CloudWatch logs of a service",
	Long: `Fetch recent log events of a service's containers.

Services with more than one container prompt for which container's log
group to read.

Examples:
  nbs ecs logs prod api
  nbs ecs logs prod api --since 4h --level ERROR
  nbs ecs logs prod api --tail 200`,
	Args: cobra.ExactArgs(2),
	RunE: runECSLogs,
}

var ecsDeployCmd = &cobra.Command{
	Use:   "deploy <cluster> <service>",
	Short: "Force a new deployment of a service",
	Long: `Restart a service's tasks without changing its task definition.
Useful after pushing a new image under the same tag.`,
	Args: cobra.ExactArgs(2),
	RunE: runECSDeploy,
}

var (
	// ecs logs flags
	logsSince time.Duration
	logsLevel string
	logsTail  int

	ecsYes bool
)

func init() {
	rootCmd.AddCommand(ecsCmd)
	ecsCmd.AddCommand(ecsClustersCmd)
	ecsCmd.AddCommand(ecsServicesCmd)
	ecsCmd.AddCommand(ecsTasksCmd)
	ecsCmd.AddCommand(ecsLogsCmd)
	ecsCmd.AddCommand(ecsDeployCmd)

	ecsLogsCmd.Flags().DurationVar(&logsSince, "since", time.Hour, "How far back to fetch logs (e.g. 30m, 4h)")
	ecsLogsCmd.Flags().StringVar(&logsLevel, "level", "", "Only show events containing this level (ERROR, WARN, INFO)")
	ecsLogsCmd.Flags().IntVar(&logsTail, "tail", 50, "Maximum number of events to show")

	ecsDeployCmd.Flags().BoolVarP(&ecsYes, "yes", "y", false, "Skip confirmation prompt")
}

func runECSClusters(cmd *cobra.Command, args []string) error {
	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	clusters, err := client.ListClusters()
	if err != nil {
		return err
	}

	if len(clusters) == 0 {
		fmt.Println("No ECS clusters found")
		return nil
	}

	rows := make([][]string, 0, len(clusters))
	for _, c := range clusters {
		rows = append(rows, []string{c})
	}
	ui.PrintTable([]string{"Cluster"}, rows)

	return nil
}

func runECSServices(cmd *cobra.Command, args []string) error {
	cluster := args[0]

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	services, err := client.ListServices(cluster)
	if err != nil {
		return err
	}

	if len(services) == 0 {
		fmt.Printf("No services found in cluster %s\n", cluster)
		return nil
	}

	rows := make([][]string, 0, len(services))
	for _, name := range services {
		svc, err := client.ServiceDetails(cluster, name)
		if err != nil {
			rows = append(rows, []string{name, "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			svc.Name,
			svc.Status,
			fmt.Sprintf("%d/%d", svc.RunningCount, svc.DesiredCount),
			svc.TaskDefinition,
		})
	}

	ui.PrintTable([]string{"Service", "Status", "Running", "Task Definition"}, rows)
	return nil
}

func runECSTasks(cmd *cobra.Command, args []string) error {
	cluster, service := args[0], args[1]

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	tasks, err := client.ListTasks(cluster, service)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Printf("No tasks running for %s/%s\n", cluster, service)
		return nil
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		started := "-"
		if !t.StartedAt.IsZero() {
			started = t.StartedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{t.ID, t.Status, t.Health, t.CPU, t.Memory, started})
	}

	ui.PrintTable([]string{"Task", "Status", "Health", "CPU", "Memory", "Started"}, rows)
	return nil
}

func runECSLogs(cmd *cobra.Command, args []string) error {
	cluster, service := args[0], args[1]

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	logGroup, container, err := pickLogGroup(client, cluster, service)
	if err != nil {
		return err
	}

	events, err := client.FetchRecentEvents(aws.FetchLogsInput{
		LogGroup: logGroup,
		Since:    logsSince,
		Level:    logsLevel,
		Tail:     logsTail,
	})
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Printf("No log events in the last %s\n", logsSince)
		return nil
	}

	ui.PrintLogEvents(events, fmt.Sprintf("%s/%s (%s)", service, container, logGroup))
	return nil
}

// pickLogGroup resolves the log group to read for a service. One container
// is used directly, several prompt for a choice.
func pickLogGroup(client *aws.Client, cluster, service string) (logGroup, container string, err error) {
	logGroups, err := client.ContainerLogGroups(cluster, service)
	if err != nil {
		return "", "", err
	}

	if len(logGroups) == 0 {
		return "", "", errors.Validationf("service %q has no containers using the awslogs driver", service)
	}

	if len(logGroups) == 1 {
		for name, group := range logGroups {
			return group, name, nil
		}
	}

	items := make([]ui.MenuItem, 0, len(logGroups))
	for name, group := range logGroups {
		items = append(items, ui.MenuItem{Label: name, Value: name, Detail: group})
	}

	selected, err := ui.SelectFromMenu("Select Container", items)
	if err != nil {
		return "", "", err
	}

	return selected.Detail, selected.Value, nil
}

func runECSDeploy(cmd *cobra.Command, args []string) error {
	cluster, service := args[0], args[1]

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	if !ecsYes && !ui.Confirm(fmt.Sprintf("Force a new deployment of %s/%s?", cluster, service)) {
		fmt.Println("Cancelled")
		return nil
	}

	deployment, err := client.ForceNewDeployment(cluster, service)
	if err != nil {
		return err
	}

	fmt.Printf("Deployment %s started (%s)\n", deployment.ID, deployment.Status)
	return nil
}
