package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nimbuscli/nimbus/internal/aws"
	"github.com/nimbuscli/nimbus/internal/config"
	"github.com/nimbuscli/nimbus/internal/ui"
)

var (
	// Global flags
	profile string
	region  string
)

var rootCmd = &cobra.Command{
	Use:   "nbs",
	Short: "Nimbus - Interactive AWS CLI with SSO profile selection",
	Long: `Nimbus is a command-line tool for day-to-day AWS operations. It reads
SSO profiles from your AWS CLI configuration, lets you pick one
interactively, and wraps the most common ECS, EC2, API Gateway, S3 and
cost operations behind simple commands.

Interactive mode:
  nbs                        # Pick a profile and browse a menu of actions

Profiles:
  nbs profiles               # List SSO-complete profiles
  nbs profiles select        # Interactive profile selector

Service Commands:
  nbs ecs clusters           # List ECS clusters
  nbs ecs logs <cluster> <service>
  nbs ec2 ls                 # List EC2 instances
  nbs apigw apis             # List HTTP APIs
  nbs s3 buckets             # List buckets
  nbs cost summary           # Month-to-date spend`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runWizard,
}

// Execute runs the root command and returns the resulting error so main
// can map it to a user-facing message and exit code.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS SSO profile to use")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region to use")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
}

func initConfig() {
	// Read from environment variables
	viper.SetEnvPrefix("NIMBUS")
	viper.AutomaticEnv()

	// Priority for profile: --profile flag > ~/.nimbus/config.yaml > AWS_PROFILE env
	if profile == "" {
		if saved := config.GetSavedProfile(); saved != "" {
			profile = saved
		} else {
			profile = os.Getenv("AWS_PROFILE")
		}
	}

	// Use AWS_REGION if --region not specified
	if region == "" {
		region = os.Getenv("AWS_REGION")
		if region == "" {
			region = os.Getenv("AWS_DEFAULT_REGION")
		}
	}
}

// GetProfile returns the AWS profile
func GetProfile() string {
	return profile
}

// GetRegion returns the AWS region
func GetRegion() string {
	return region
}

// resolveSession resolves the active profile (prompting when none is
// configured) and returns an authenticated client for it.
func resolveSession(ctx context.Context) (*aws.Client, error) {
	name := GetProfile()

	if name == "" {
		profiles, err := aws.ListSSOProfiles()
		if err != nil {
			return nil, err
		}

		selected, err := ui.SelectProfile(profiles, "")
		if err != nil {
			return nil, err
		}
		name = selected.Name

		// Remember the choice for later invocations; the execution
		// region defaults to the profile's region when no flag is set.
		if region == "" {
			region = selected.Region
		}
		_ = config.SetProfile(name)
	} else {
		// Validate the configured profile still exists and is usable
		p, err := aws.FindProfile(name)
		if err != nil {
			return nil, err
		}
		if region == "" {
			region = p.Region
		}
	}

	return aws.ResolveSession(ctx, name, region)
}
