package aws

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ecs"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

// ListClusters returns the short names of all ECS clusters
func (c *Client) ListClusters() ([]string, error) {
	paginator := ecs.NewListClustersPaginator(c.ECS, &ecs.ListClustersInput{})

	var clusters []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return nil, errors.API("ListClusters", err)
		}
		for _, arn := range page.ClusterArns {
			clusters = append(clusters, shortARN(arn))
		}
	}

	return clusters, nil
}

// ListServices returns service names of a cluster, sorted case-insensitively
func (c *Client) ListServices(cluster string) ([]string, error) {
	paginator := ecs.NewListServicesPaginator(c.ECS, &ecs.ListServicesInput{
		Cluster: &cluster,
	})

	var services []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return nil, errors.API("ListServices", err)
		}
		for _, arn := range page.ServiceArns {
			services = append(services, shortARN(arn))
		}
	}

	sort.Slice(services, func(i, j int) bool {
		return strings.ToLower(services[i]) < strings.ToLower(services[j])
	})

	return services, nil
}

// ServiceDetails returns the status summary of one service
func (c *Client) ServiceDetails(cluster, service string) (*pkgtypes.Service, error) {
	output, err := c.ECS.DescribeServices(c.ctx, &ecs.DescribeServicesInput{
		Cluster:  &cluster,
		Services: []string{service},
	})
	if err != nil {
		return nil, errors.API("DescribeServices", err)
	}

	if len(output.Services) == 0 {
		return nil, errors.Validationf("service %q not found in cluster %q", service, cluster)
	}

	s := output.Services[0]
	return &pkgtypes.Service{
		Name:           deref(s.ServiceName),
		Cluster:        cluster,
		Status:         deref(s.Status),
		TaskDefinition: shortARN(deref(s.TaskDefinition)),
		RunningCount:   s.RunningCount,
		DesiredCount:   s.DesiredCount,
	}, nil
}

// ListTasks returns the tasks currently owned by a service
func (c *Client) ListTasks(cluster, service string) ([]pkgtypes.Task, error) {
	listOutput, err := c.ECS.ListTasks(c.ctx, &ecs.ListTasksInput{
		Cluster:     &cluster,
		ServiceName: &service,
	})
	if err != nil {
		return nil, errors.API("ListTasks", err)
	}

	if len(listOutput.TaskArns) == 0 {
		return nil, nil
	}

	describeOutput, err := c.ECS.DescribeTasks(c.ctx, &ecs.DescribeTasksInput{
		Cluster: &cluster,
		Tasks:   listOutput.TaskArns,
	})
	if err != nil {
		return nil, errors.API("DescribeTasks", err)
	}

	var tasks []pkgtypes.Task
	for _, t := range describeOutput.Tasks {
		task := pkgtypes.Task{
			ID:     shortARN(deref(t.TaskArn)),
			ARN:    deref(t.TaskArn),
			Status: deref(t.LastStatus),
			Health: string(t.HealthStatus),
			CPU:    deref(t.Cpu),
			Memory: deref(t.Memory),
		}
		if t.StartedAt != nil {
			task.StartedAt = *t.StartedAt
		}
		tasks = append(tasks, task)
	}

	return tasks, nil
}

// ContainerLogGroups maps container names of a service's task definition to
// their CloudWatch log groups. Only containers using the awslogs driver
// appear in the result.
func (c *Client) ContainerLogGroups(cluster, service string) (map[string]string, error) {
	svcOutput, err := c.ECS.DescribeServices(c.ctx, &ecs.DescribeServicesInput{
		Cluster:  &cluster,
		Services: []string{service},
	})
	if err != nil {
		return nil, errors.API("DescribeServices", err)
	}

	if len(svcOutput.Services) == 0 {
		return nil, errors.Validationf("service %q not found in cluster %q", service, cluster)
	}

	taskDefARN := svcOutput.Services[0].TaskDefinition
	defOutput, err := c.ECS.DescribeTaskDefinition(c.ctx, &ecs.DescribeTaskDefinitionInput{
		TaskDefinition: taskDefARN,
	})
	if err != nil {
		return nil, errors.API("DescribeTaskDefinition", err)
	}

	logGroups := make(map[string]string)
	for _, container := range defOutput.TaskDefinition.ContainerDefinitions {
		logCfg := container.LogConfiguration
		if logCfg == nil || string(logCfg.LogDriver) != "awslogs" {
			continue
		}
		if group, ok := logCfg.Options["awslogs-group"]; ok && group != "" {
			logGroups[deref(container.Name)] = group
		}
	}

	return logGroups, nil
}

// ForceNewDeployment restarts a service's tasks without changing the task
// definition.
func (c *Client) ForceNewDeployment(cluster, service string) (*pkgtypes.Deployment, error) {
	output, err := c.ECS.UpdateService(c.ctx, &ecs.UpdateServiceInput{
		Cluster:            &cluster,
		Service:            &service,
		ForceNewDeployment: true,
	})
	if err != nil {
		return nil, errors.API("UpdateService", err)
	}

	if output.Service == nil || len(output.Service.Deployments) == 0 {
		return nil, errors.API("UpdateService", fmt.Errorf("no deployment returned"))
	}

	d := output.Service.Deployments[0]
	return &pkgtypes.Deployment{
		ID:     deref(d.Id),
		Status: deref(d.Status),
	}, nil
}

// shortARN keeps the final path segment of an ARN, which is how clusters,
// services and tasks are displayed.
func shortARN(arn string) string {
	if idx := strings.LastIndex(arn, "/"); idx >= 0 {
		return arn[idx+1:]
	}
	return arn
}
