package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbuscli/nimbus/internal/aws"
	"github.com/nimbuscli/nimbus/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active profile and authentication status",
	Long: `Display the active SSO profile and verify that the SDK can resolve
credentials for it.

Examples:
  nbs status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	active := getActiveProfile()

	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	if active == "" {
		fmt.Println("Profile:  " + ui.MutedStyle.Render("(not set)"))
		fmt.Println()
		fmt.Println("No profile configured. Pick one with:")
		fmt.Println("  nbs profiles select")
		return nil
	}

	p, err := aws.FindProfile(active)
	if err != nil {
		return err
	}

	fmt.Printf("Profile:  %s\n", ui.HeaderStyle.Render(p.Name))
	fmt.Printf("Account:  %s\n", p.AccountID)
	fmt.Printf("Role:     %s\n", p.RoleName)
	if p.Region != "" {
		fmt.Printf("Region:   %s\n", p.Region)
	}
	fmt.Println()

	fmt.Print("Auth:     ")
	client, err := aws.NewClient(cmd.Context(), aws.WithProfile(p.Name), aws.WithRegion(GetRegion()))
	if err == nil {
		var identity *aws.CallerIdentity
		identity, err = client.CallerIdentity()
		if err == nil {
			fmt.Println(ui.RunningStyle.Render("✓ Authenticated"))
			fmt.Printf("User:     %s\n", identity.UserID)
			if identity.Arn != "" {
				fmt.Printf("ARN:      %s\n", ui.MutedStyle.Render(identity.Arn))
			}
			return nil
		}
	}

	fmt.Println(ui.StoppedStyle.Render("✗ Not authenticated"))
	fmt.Printf("          %s\n", ui.MutedStyle.Render(err.Error()))
	fmt.Println()
	fmt.Println("To authenticate:")
	fmt.Printf("  aws sso login --profile %s\n", p.Name)

	return nil
}
