package aws

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"

	"github.com/nimbuscli/nimbus/internal/errors"
)

// Client wraps the AWS SDK service clients used by nimbus commands.
// Credential resolution, including the SSO token cache, is delegated
// entirely to the SDK; nimbus never manages tokens itself.
type Client struct {
	ECS   *ecs.Client
	EC2   *ec2.Client
	Logs  *cloudwatchlogs.Client
	APIGW *apigatewayv2.Client
	S3    *s3.Client
	Cost  *costexplorer.Client
	RDS   *rds.Client
	ELB   *elasticloadbalancingv2.Client
	STS   *sts.Client

	ctx     context.Context
	profile string
	region  string
}

// ClientOption allows customizing the AWS Client
type ClientOption func(*Client)

// WithProfile sets the shared config profile for the client
func WithProfile(profile string) ClientOption {
	return func(c *Client) {
		c.profile = profile
	}
}

// WithRegion sets the AWS region for the client
func WithRegion(region string) ClientOption {
	return func(c *Client) {
		c.region = region
	}
}

// NewClient loads the shared AWS config for the selected profile and
// builds the service clients.
func NewClient(ctx context.Context, opts ...ClientOption) (*Client, error) {
	c := &Client{
		ctx: ctx,
	}

	for _, opt := range opts {
		opt(c)
	}

	var configOpts []func(*config.LoadOptions) error

	if c.profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(c.profile))
	}

	if c.region != "" {
		configOpts = append(configOpts, config.WithRegion(c.region))
	}

	cfg, err := config.LoadDefaultConfig(c.ctx, configOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	c.ECS = ecs.NewFromConfig(cfg)
	c.EC2 = ec2.NewFromConfig(cfg)
	c.Logs = cloudwatchlogs.NewFromConfig(cfg)
	c.APIGW = apigatewayv2.NewFromConfig(cfg)
	c.S3 = s3.NewFromConfig(cfg)
	c.Cost = costexplorer.NewFromConfig(cfg)
	c.RDS = rds.NewFromConfig(cfg)
	c.ELB = elasticloadbalancingv2.NewFromConfig(cfg)
	c.STS = sts.NewFromConfig(cfg)

	return c, nil
}

// Context returns the client's context
func (c *Client) Context() context.Context {
	return c.ctx
}

// Profile returns the shared config profile the client was built for
func (c *Client) Profile() string {
	return c.profile
}

// ResolveSession builds a client for the given profile and verifies that
// the SDK can produce credentials for it. An unusable or expired SSO token
// surfaces as an Auth error pointing the user at `aws sso login`.
func ResolveSession(ctx context.Context, profile, region string) (*Client, error) {
	client, err := NewClient(ctx, WithProfile(profile), WithRegion(region))
	if err != nil {
		return nil, errors.Auth(profile, err)
	}

	if _, err := client.CallerIdentity(); err != nil {
		return nil, errors.Auth(profile, simplifyAPIError(err))
	}

	return client, nil
}

// simplifyAPIError unwraps layered SDK operation errors to the terminal
// API error so the user sees its code and message, not the middleware
// chain leading to it.
func simplifyAPIError(err error) error {
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s", apiErr.ErrorCode(), apiErr.ErrorMessage())
	}
	return err
}
