package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nimbuscli/nimbus/internal/aws"
	"github.com/nimbuscli/nimbus/internal/config"
	"github.com/nimbuscli/nimbus/internal/ui"
)

// runWizard is the default action when nbs runs with no subcommand: pick a
// profile, then loop over an action menu until the user quits.
func runWizard(cmd *cobra.Command, args []string) error {
	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	for {
		fmt.Printf("\nProfile: %s\n\n", ui.HeaderStyle.Render(client.Profile()))

		action, err := ui.SelectFromMenu("What do you want to do?", []ui.MenuItem{
			{Label: "ECS", Value: "ecs", Detail: "Clusters, services, tasks, logs, deploys"},
			{Label: "EC2", Value: "ec2", Detail: "List, start, stop, reboot instances"},
			{Label: "API Gateway", Value: "apigw", Detail: "APIs, routes, create routes"},
			{Label: "S3", Value: "s3", Detail: "Browse buckets and objects"},
			{Label: "Cost summary", Value: "cost", Detail: "Month-to-date spend by service"},
			{Label: "Idle resources", Value: "idle", Detail: "Resources costing money while unused"},
			{Label: "Profiles", Value: "profiles", Detail: "List configured SSO profiles"},
			{Label: "Switch profile", Value: "profile", Detail: "Pick another SSO profile"},
			{Label: "Quit", Value: "quit", Detail: ""},
		})
		if err != nil {
			// Esc on the main menu means leave, not fail
			return nil
		}

		switch action.Value {
		case "ecs":
			err = wizardECS(client)
		case "ec2":
			err = wizardEC2(client)
		case "apigw":
			err = wizardAPIGW(client)
		case "s3":
			err = wizardS3(client)
		case "cost":
			err = wizardCostSummary(client)
		case "idle":
			err = wizardIdle(client)
		case "profiles":
			err = wizardProfiles(client)
		case "profile":
			client, err = switchProfile(cmd, client)
		case "quit":
			return nil
		}

		if err != nil {
			// Show the failure and return to the menu instead of exiting
			fmt.Println(ui.ErrorStyle.Render("Error: " + err.Error()))
		}
	}
}

func switchProfile(cmd *cobra.Command, current *aws.Client) (*aws.Client, error) {
	profiles, err := aws.ListSSOProfiles()
	if err != nil {
		return current, err
	}

	selected, err := ui.SelectProfile(profiles, current.Profile())
	if err != nil {
		return current, err
	}

	_ = config.SetProfile(selected.Name)

	client, err := aws.ResolveSession(cmd.Context(), selected.Name, selected.Region)
	if err != nil {
		return current, err
	}
	return client, nil
}

func wizardECS(client *aws.Client) error {
	clusters, err := client.ListClusters()
	if err != nil {
		return err
	}
	if len(clusters) == 0 {
		fmt.Println("No ECS clusters found")
		return nil
	}

	cluster, err := ui.SelectString("Select Cluster", clusters)
	if err != nil {
		return nil
	}

	services, err := client.ListServices(cluster)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		fmt.Printf("No services found in cluster %s\n", cluster)
		return nil
	}

	service, err := ui.SelectString("Select Service", services)
	if err != nil {
		return nil
	}

	action, err := ui.SelectFromMenu("Select Action", []ui.MenuItem{
		{Label: "Details", Value: "details", Detail: "Service status and counts"},
		{Label: "Tasks", Value: "tasks", Detail: "Running tasks"},
		{Label: "Logs", Value: "logs", Detail: "Recent CloudWatch logs"},
		{Label: "Force deploy", Value: "deploy", Detail: "Restart tasks with the same task definition"},
	})
	if err != nil {
		return nil
	}

	switch action.Value {
	case "details":
		svc, err := client.ServiceDetails(cluster, service)
		if err != nil {
			return err
		}
		fmt.Printf("\nService:         %s\n", svc.Name)
		fmt.Printf("Status:          %s\n", svc.Status)
		fmt.Printf("Running/Desired: %d/%d\n", svc.RunningCount, svc.DesiredCount)
		fmt.Printf("Task definition: %s\n", svc.TaskDefinition)

	case "tasks":
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
			rows = append(rows, []string{t.ID, t.Status, t.Health, t.CPU, t.Memory})
		}
		ui.PrintTable([]string{"Task", "Status", "Health", "CPU", "Memory"}, rows)

	case "logs":
		logGroup, container, err := pickLogGroup(client, cluster, service)
		if err != nil {
			return err
		}
		events, err := client.FetchRecentEvents(aws.FetchLogsInput{LogGroup: logGroup})
		if err != nil {
			return err
		}
		if len(events) == 0 {
			fmt.Println("No log events in the last hour")
			return nil
		}
		ui.PrintLogEvents(events, fmt.Sprintf("%s/%s (%s)", service, container, logGroup))

	case "deploy":
		if !ui.Confirm(fmt.Sprintf("Force a new deployment of %s/%s?", cluster, service)) {
			fmt.Println("Cancelled")
			return nil
		}
		deployment, err := client.ForceNewDeployment(cluster, service)
		if err != nil {
			return err
		}
		fmt.Printf("Deployment %s started (%s)\n", deployment.ID, deployment.Status)
	}

	return nil
}

func wizardEC2(client *aws.Client) error {
	instances, err := client.ListInstances(&aws.ListInstancesInput{})
	if err != nil {
		return err
	}
	if len(instances) == 0 {
		fmt.Println("No EC2 instances found")
		return nil
	}

	items := make([]ui.MenuItem, 0, len(instances))
	for _, inst := range instances {
		items = append(items, ui.MenuItem{
			Label:  inst.ID,
			Value:  inst.ID,
			Detail: fmt.Sprintf("%s  %s  %s", inst.Name, inst.State, inst.Type),
		})
	}

	selected, err := ui.SelectFromMenu("Select Instance", items)
	if err != nil {
		return nil
	}

	for _, inst := range instances {
		if inst.ID == selected.Value {
			fmt.Printf("\n%s  %s  %s\n", inst.ID, inst.Name, ui.FormatState(inst.State))
			break
		}
	}

	action, err := ui.SelectFromMenu("Select Action", []ui.MenuItem{
		{Label: "Start", Value: "start"},
		{Label: "Stop", Value: "stop"},
		{Label: "Reboot", Value: "reboot"},
	})
	if err != nil {
		return nil
	}

	id := selected.Value
	switch action.Value {
	case "start":
		if err := client.StartInstance(id); err != nil {
			return err
		}
		fmt.Printf("Start requested for %s\n", id)
	case "stop":
		if !ui.Confirm(fmt.Sprintf("Stop instance %s?", id)) {
			fmt.Println("Cancelled")
			return nil
		}
		if err := client.StopInstance(id); err != nil {
			return err
		}
		fmt.Printf("Stop requested for %s\n", id)
	case "reboot":
		if !ui.Confirm(fmt.Sprintf("Reboot instance %s?", id)) {
			fmt.Println("Cancelled")
			return nil
		}
		if err := client.RebootInstance(id); err != nil {
			return err
		}
		fmt.Printf("Reboot requested for %s\n", id)
	}

	return nil
}

func wizardAPIGW(client *aws.Client) error {
	apis, err := client.ListAPIs()
	if err != nil {
		return err
	}
	if len(apis) == 0 {
		fmt.Println("No APIs found")
		return nil
	}

	items := make([]ui.MenuItem, 0, len(apis))
	for _, api := range apis {
		items = append(items, ui.MenuItem{Label: api.Name, Value: api.ID, Detail: api.Endpoint})
	}

	selected, err := ui.SelectFromMenu("Select API", items)
	if err != nil {
		return nil
	}

	action, err := ui.SelectFromMenu("Select Action", []ui.MenuItem{
		{Label: "List routes", Value: "routes"},
		{Label: "Create route", Value: "create"},
	})
	if err != nil {
		return nil
	}

	switch action.Value {
	case "routes":
		routes, err := client.ListRoutes(selected.Value)
		if err != nil {
			return err
		}
		if len(routes) == 0 {
			fmt.Printf("No routes found for API %s\n", selected.Label)
			return nil
		}
		rows := make([][]string, 0, len(routes))
		for _, r := range routes {
			target := r.Target
			if target == "" {
				target = "-"
			}
			rows = append(rows, []string{r.Method, r.Path, r.ID, target})
		}
		ui.PrintTable([]string{"Method", "Path", "Route ID", "Target"}, rows)

	case "create":
		return promptCreateRoute(client, selected.Value)
	}

	return nil
}

func wizardS3(client *aws.Client) error {
	buckets, err := client.ListBuckets()
	if err != nil {
		return err
	}
	if len(buckets) == 0 {
		fmt.Println("No buckets found")
		return nil
	}

	names := make([]string, 0, len(buckets))
	for _, b := range buckets {
		names = append(names, b.Name)
	}

	bucket, err := ui.SelectString("Select Bucket", names)
	if err != nil {
		return nil
	}

	// Walk down the prefix tree one level per selection. ".." goes up,
	// picking an object ends the walk with its details.
	prefix := ""
	for {
		prefixes, objects, err := client.ListObjects(bucket, prefix)
		if err != nil {
			return err
		}

		if len(prefixes) == 0 && len(objects) == 0 {
			fmt.Printf("Nothing under s3://%s/%s\n", bucket, prefix)
			return nil
		}

		var items []ui.MenuItem
		if prefix != "" {
			items = append(items, ui.MenuItem{Label: "..", Value: "..", Detail: "up one level"})
		}
		for _, p := range prefixes {
			items = append(items, ui.MenuItem{Label: strings.TrimPrefix(p, prefix), Value: p, Detail: "prefix"})
		}
		for _, o := range objects {
			items = append(items, ui.MenuItem{
				Label:  strings.TrimPrefix(o.Key, prefix),
				Value:  o.Key,
				Detail: humanSize(o.Size),
			})
		}

		selected, err := ui.SelectFromMenu("s3://"+bucket+"/"+prefix, items)
		if err != nil {
			return nil
		}

		switch {
		case selected.Value == "..":
			prefix = parentPrefix(prefix)
		case strings.HasSuffix(selected.Value, "/"):
			prefix = selected.Value
		default:
			fmt.Printf("\ns3://%s/%s (%s)\n", bucket, selected.Value, selected.Detail)
			return nil
		}
	}
}

// parentPrefix strips the last path segment of a prefix like "a/b/"
func parentPrefix(prefix string) string {
	trimmed := strings.TrimSuffix(prefix, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[:idx+1]
	}
	return ""
}

func wizardCostSummary(client *aws.Client) error {
	summary, err := client.MonthToDateCosts()
	if err != nil {
		return err
	}

	fmt.Printf("\nSpend %s to %s\n\n", summary.Start, summary.End)

	services := summary.Services
	if len(services) > 10 {
		services = services[:10]
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

func wizardProfiles(client *aws.Client) error {
	profiles, err := aws.ListSSOProfiles()
	if err != nil {
		return err
	}
	ui.PrintProfileTable(profiles, client.Profile())
	return nil
}

func wizardIdle(client *aws.Client) error {
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
	return nil
}
