package aws

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
)

func TestToInstance(t *testing.T) {
	sdk := ec2types.Instance{
		InstanceId:       aws.String("i-0abc123"),
		InstanceType:     ec2types.InstanceTypeT3Micro,
		PrivateIpAddress: aws.String("10.0.1.5"),
		PublicIpAddress:  aws.String("54.1.2.3"),
		State: &ec2types.InstanceState{
			Name: ec2types.InstanceStateNameRunning,
		},
		Placement: &ec2types.Placement{
			AvailabilityZone: aws.String("eu-west-1a"),
		},
		Tags: []ec2types.Tag{
			{Key: aws.String("env"), Value: aws.String("prod")},
			{Key: aws.String("Name"), Value: aws.String("web-1")},
		},
	}

	inst := toInstance(sdk)

	assert.Equal(t, "i-0abc123", inst.ID)
	assert.Equal(t, "web-1", inst.Name)
	assert.Equal(t, "t3.micro", inst.Type)
	assert.Equal(t, "running", inst.State)
	assert.Equal(t, "10.0.1.5", inst.PrivateIP)
	assert.Equal(t, "54.1.2.3", inst.PublicIP)
	assert.Equal(t, "eu-west-1a", inst.AZ)
}

func TestToInstanceSparse(t *testing.T) {
	inst := toInstance(ec2types.Instance{
		InstanceId: aws.String("i-0empty"),
	})

	assert.Equal(t, "i-0empty", inst.ID)
	assert.Equal(t, "unknown", inst.State)
	assert.Empty(t, inst.Name)
	assert.Empty(t, inst.PrivateIP)
	assert.Empty(t, inst.AZ)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", deref(nil))
	assert.Equal(t, "x", deref(aws.String("x")))
}
