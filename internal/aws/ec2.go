package aws

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

// ListInstancesInput contains parameters for listing EC2 instances
type ListInstancesInput struct {
	NamePattern string
	States      []string
	InstanceIDs []string
}

// ListInstances returns EC2 instances matching the input filters
func (c *Client) ListInstances(input *ListInstancesInput) ([]pkgtypes.Instance, error) {
	if input == nil {
		input = &ListInstancesInput{}
	}

	states := input.States
	if len(states) == 0 {
		states = []string{"pending", "running", "stopping", "stopped"}
	}

	filters := []ec2types.Filter{
		{
			Name:   aws.String("instance-state-name"),
			Values: states,
		},
	}

	if input.NamePattern != "" {
		filters = append(filters, ec2types.Filter{
			Name:   aws.String("tag:Name"),
			Values: []string{"*" + input.NamePattern + "*"},
		})
	}

	describeInput := &ec2.DescribeInstancesInput{
		Filters: filters,
	}

	if len(input.InstanceIDs) > 0 {
		describeInput.InstanceIds = input.InstanceIDs
	}

	paginator := ec2.NewDescribeInstancesPaginator(c.EC2, describeInput)

	var instances []pkgtypes.Instance
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(c.ctx)
		if err != nil {
			return nil, errors.API("DescribeInstances", err)
		}

		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				instances = append(instances, toInstance(inst))
			}
		}
	}

	return instances, nil
}

// StartInstance starts a stopped instance
func (c *Client) StartInstance(instanceID string) error {
	_, err := c.EC2.StartInstances(c.ctx, &ec2.StartInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return errors.API("StartInstances", err)
	}
	return nil
}

// StopInstance stops a running instance
func (c *Client) StopInstance(instanceID string) error {
	_, err := c.EC2.StopInstances(c.ctx, &ec2.StopInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return errors.API("StopInstances", err)
	}
	return nil
}

// RebootInstance reboots a running instance
func (c *Client) RebootInstance(instanceID string) error {
	_, err := c.EC2.RebootInstances(c.ctx, &ec2.RebootInstancesInput{
		InstanceIds: []string{instanceID},
	})
	if err != nil {
		return errors.API("RebootInstances", err)
	}
	return nil
}

// toInstance converts an SDK Instance to our Instance type
func toInstance(i ec2types.Instance) pkgtypes.Instance {
	inst := pkgtypes.Instance{
		ID:    deref(i.InstanceId),
		Type:  string(i.InstanceType),
		State: "unknown",
	}

	if i.State != nil {
		inst.State = string(i.State.Name)
	}

	if i.PrivateIpAddress != nil {
		inst.PrivateIP = *i.PrivateIpAddress
	}

	if i.PublicIpAddress != nil {
		inst.PublicIP = *i.PublicIpAddress
	}

	if i.Placement != nil && i.Placement.AvailabilityZone != nil {
		inst.AZ = *i.Placement.AvailabilityZone
	}

	if i.LaunchTime != nil {
		inst.LaunchTime = *i.LaunchTime
	}

	for _, tag := range i.Tags {
		if deref(tag.Key) == "Name" {
			inst.Name = deref(tag.Value)
		}
	}

	return inst
}

// deref safely dereferences a string pointer
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
