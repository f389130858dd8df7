package aws

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/rds"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

const dateLayout = "2006-01-02"

// MonthToDateCosts returns the current month's spend grouped by service,
// plus the end-of-month forecast. Forecast failures are tolerated (new
// accounts have no forecast data) and leave Forecast at zero.
func (c *Client) MonthToDateCosts() (*pkgtypes.CostSummary, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	// Cost Explorer treats the end date as exclusive
	end := now.AddDate(0, 0, 1)

	output, err := c.Cost.GetCostAndUsage(c.ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start.Format(dateLayout)),
			End:   aws.String(end.Format(dateLayout)),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{"UnblendedCost"},
		GroupBy: []cetypes.GroupDefinition{
			{
				Type: cetypes.GroupDefinitionTypeDimension,
				Key:  aws.String("SERVICE"),
			},
		},
	})
	if err != nil {
		return nil, errors.API("GetCostAndUsage", err)
	}

	summary := &pkgtypes.CostSummary{
		Start: start.Format(dateLayout),
		End:   now.Format(dateLayout),
		Unit:  "USD",
	}

	for _, result := range output.ResultsByTime {
		for _, group := range result.Groups {
			metric, ok := group.Metrics["UnblendedCost"]
			if !ok || len(group.Keys) == 0 {
				continue
			}

			amount, err := strconv.ParseFloat(deref(metric.Amount), 64)
			if err != nil {
				continue
			}

			summary.Services = append(summary.Services, pkgtypes.ServiceCost{
				Service: group.Keys[0],
				Amount:  amount,
				Unit:    deref(metric.Unit),
			})
			summary.Total += amount
			if unit := deref(metric.Unit); unit != "" {
				summary.Unit = unit
			}
		}
	}

	// Biggest spenders first
	sort.Slice(summary.Services, func(i, j int) bool {
		return summary.Services[i].Amount > summary.Services[j].Amount
	})

	summary.Forecast = c.monthEndForecast(now)

	return summary, nil
}

func (c *Client) monthEndForecast(now time.Time) float64 {
	start := now.AddDate(0, 0, 1)
	monthEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)

	if !start.Before(monthEnd) {
		return 0
	}

	output, err := c.Cost.GetCostForecast(c.ctx, &costexplorer.GetCostForecastInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start.Format(dateLayout)),
			End:   aws.String(monthEnd.Format(dateLayout)),
		},
		Metric:      cetypes.MetricUnblendedCost,
		Granularity: cetypes.GranularityMonthly,
	})
	if err != nil || output.Total == nil {
		return 0
	}

	forecast, err := strconv.ParseFloat(deref(output.Total.Amount), 64)
	if err != nil {
		return 0
	}
	return forecast
}

// IdleResources reports resources that accrue cost without doing work:
// available EBS volumes, unassociated Elastic IPs, stopped EC2 and RDS
// instances, and load balancers without registered targets.
func (c *Client) IdleResources() ([]pkgtypes.IdleResource, error) {
	var idle []pkgtypes.IdleResource

	volumes, err := c.unusedVolumes()
	if err != nil {
		return nil, err
	}
	idle = append(idle, volumes...)

	eips, err := c.unusedAddresses()
	if err != nil {
		return nil, err
	}
	idle = append(idle, eips...)

	stopped, err := c.stoppedInstances()
	if err != nil {
		return nil, err
	}
	idle = append(idle, stopped...)

	// RDS and ELB checks are best-effort: accounts without those services
	// often lack the IAM permissions to describe them.
	idle = append(idle, c.stoppedDatabases()...)
	idle = append(idle, c.unusedLoadBalancers()...)

	return idle, nil
}

func (c *Client) unusedVolumes() ([]pkgtypes.IdleResource, error) {
	output, err := c.EC2.DescribeVolumes(c.ctx, &ec2.DescribeVolumesInput{
		Filters: []ec2types.Filter{
			{
				Name:   aws.String("status"),
				Values: []string{"available"},
			},
		},
	})
	if err != nil {
		return nil, errors.API("DescribeVolumes", err)
	}

	var idle []pkgtypes.IdleResource
	for _, v := range output.Volumes {
		detail := ""
		if v.Size != nil {
			detail = fmt.Sprintf("%d GiB unattached", *v.Size)
		}
		idle = append(idle, pkgtypes.IdleResource{
			Kind:   "ebs-volume",
			ID:     deref(v.VolumeId),
			Detail: detail,
		})
	}
	return idle, nil
}

func (c *Client) unusedAddresses() ([]pkgtypes.IdleResource, error) {
	output, err := c.EC2.DescribeAddresses(c.ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, errors.API("DescribeAddresses", err)
	}

	var idle []pkgtypes.IdleResource
	for _, addr := range output.Addresses {
		if addr.AssociationId != nil {
			continue
		}
		idle = append(idle, pkgtypes.IdleResource{
			Kind:   "elastic-ip",
			ID:     deref(addr.PublicIp),
			Detail: "not associated",
		})
	}
	return idle, nil
}

func (c *Client) stoppedInstances() ([]pkgtypes.IdleResource, error) {
	instances, err := c.ListInstances(&ListInstancesInput{
		States: []string{"stopped"},
	})
	if err != nil {
		return nil, err
	}

	var idle []pkgtypes.IdleResource
	for _, inst := range instances {
		idle = append(idle, pkgtypes.IdleResource{
			Kind:   "ec2-stopped",
			ID:     inst.ID,
			Detail: inst.Name,
		})
	}
	return idle, nil
}

func (c *Client) stoppedDatabases() []pkgtypes.IdleResource {
	output, err := c.RDS.DescribeDBInstances(c.ctx, &rds.DescribeDBInstancesInput{})
	if err != nil {
		return nil
	}

	var idle []pkgtypes.IdleResource
	for _, db := range output.DBInstances {
		if deref(db.DBInstanceStatus) != "stopped" {
			continue
		}
		idle = append(idle, pkgtypes.IdleResource{
			Kind:   "rds-stopped",
			ID:     deref(db.DBInstanceIdentifier),
			Detail: deref(db.Engine),
		})
	}
	return idle
}

func (c *Client) unusedLoadBalancers() []pkgtypes.IdleResource {
	paginator := elasticloadbalancingv2.NewDescribeLoadBalancersPaginator(c.ELB, &elasticloadbalancingv2.DescribeLoadBalancersInput{})

	var idle []pkgtypes.IdleResource
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return idle
		}

		for _, lb := range page.LoadBalancers {
			if c.loadBalancerHasTargets(deref(lb.LoadBalancerArn)) {
				continue
			}
			idle = append(idle, pkgtypes.IdleResource{
				Kind:   "elb-unused",
				ID:     deref(lb.LoadBalancerName),
				Detail: "no registered targets",
			})
		}
	}
	return idle
}

func (c *Client) loadBalancerHasTargets(lbARN string) bool {
	tgOutput, err := c.ELB.DescribeTargetGroups(c.ctx, &elasticloadbalancingv2.DescribeTargetGroupsInput{
		LoadBalancerArn: &lbARN,
	})
	if err != nil || len(tgOutput.TargetGroups) == 0 {
		return false
	}

	for _, tg := range tgOutput.TargetGroups {
		health, err := c.ELB.DescribeTargetHealth(c.ctx, &elasticloadbalancingv2.DescribeTargetHealthInput{
			TargetGroupArn: tg.TargetGroupArn,
		})
		if err == nil && len(health.TargetHealthDescriptions) > 0 {
			return true
		}
	}
	return false
}
