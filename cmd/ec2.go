package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbuscli/nimbus/internal/aws"
	"github.com/nimbuscli/nimbus/internal/ui"
)

var ec2Cmd = &cobra.Command{
	Use:   "ec2",
	Short: "Manage EC2 instances",
	Long:  `List EC2 instances and perform lifecycle operations (start, stop, reboot).`,
}

var ec2LsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List EC2 instances",
	Long: `List EC2 instances with optional filters.

Examples:
  nbs ec2 ls                  # List all instances
  nbs ec2 ls --state running  # Only running instances
  nbs ec2 ls --name web       # Filter by Name tag pattern`,
	RunE: runEC2List,
}

var ec2StartCmd = &cobra.Command{
	Use:   "start <instance-id>",
	Short: "Start a stopped instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runEC2Start,
}

var ec2StopCmd = &cobra.Command{
	Use:   "stop <instance-id>",
	Short: "Stop a running instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runEC2Stop,
}

var ec2RebootCmd = &cobra.Command{
	Use:   "reboot <instance-id>",
	Short: "Reboot a running instance",
	Args:  cobra.ExactArgs(1),
	RunE:  runEC2Reboot,
}

var (
	// ec2 ls flags
	ec2NamePattern string
	ec2State       string
	ec2Yes         bool
)

func init() {
	rootCmd.AddCommand(ec2Cmd)
	ec2Cmd.AddCommand(ec2LsCmd)
	ec2Cmd.AddCommand(ec2StartCmd)
	ec2Cmd.AddCommand(ec2StopCmd)
	ec2Cmd.AddCommand(ec2RebootCmd)

	ec2LsCmd.Flags().StringVar(&ec2NamePattern, "name", "", "Filter instances by Name tag pattern")
	ec2LsCmd.Flags().StringVar(&ec2State, "state", "", "Filter instances by state (running, stopped, ...)")

	ec2Cmd.PersistentFlags().BoolVarP(&ec2Yes, "yes", "y", false, "Skip confirmation prompts")
}

func runEC2List(cmd *cobra.Command, args []string) error {
	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	input := &aws.ListInstancesInput{
		NamePattern: ec2NamePattern,
	}
	if ec2State != "" {
		input.States = []string{ec2State}
	}

	instances, err := client.ListInstances(input)
	if err != nil {
		return err
	}

	if len(instances) == 0 {
		fmt.Println("No EC2 instances found")
		return nil
	}

	ui.PrintInstanceTable(instances)
	return nil
}

func runEC2Start(cmd *cobra.Command, args []string) error {
	instanceID := args[0]

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	if err := client.StartInstance(instanceID); err != nil {
		return err
	}

	fmt.Printf("Start requested for %s\n", instanceID)
	return nil
}

func runEC2Stop(cmd *cobra.Command, args []string) error {
	instanceID := args[0]

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	if !ec2Yes && !ui.Confirm(fmt.Sprintf("Stop instance %s?", instanceID)) {
		fmt.Println("Cancelled")
		return nil
	}

	if err := client.StopInstance(instanceID); err != nil {
		return err
	}

	fmt.Printf("Stop requested for %s\n", instanceID)
	return nil
}

func runEC2Reboot(cmd *cobra.Command, args []string) error {
	instanceID := args[0]

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	if !ec2Yes && !ui.Confirm(fmt.Sprintf("Reboot instance %s?", instanceID)) {
		fmt.Println("Cancelled")
		return nil
	}

	if err := client.RebootInstance(instanceID); err != nil {
		return err
	}

	fmt.Printf("Reboot requested for %s\n", instanceID)
	return nil
}
