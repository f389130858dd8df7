package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nimbuscli/nimbus/internal/aws"
	"github.com/nimbuscli/nimbus/internal/config"
	"github.com/nimbuscli/nimbus/internal/ui"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List configured AWS SSO profiles",
	Long: `List the SSO profiles found in your AWS CLI configuration.

Only profiles with a complete SSO configuration (sso_start_url,
sso_region, sso_account_id, sso_role_name) are shown. Profiles missing
any of those fields are skipped.

Examples:
  nbs profiles                   # List SSO-complete profiles
  nbs profiles select            # Interactive profile selector
  nbs profiles set my-profile    # Set the active profile`,
	RunE: runProfilesList,
}

var profilesSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Interactively select the active profile",
	RunE:  runProfilesSelect,
}

var profilesSetCmd = &cobra.Command{
	Use:   "set <profile-name>",
	Short: "Set the active AWS profile",
	Long: `Set a specific SSO profile as active.

The profile is saved to ~/.nimbus/config.yaml and used by future nbs
commands.

Examples:
  nbs profiles set production`,
	Args: cobra.ExactArgs(1),
	RunE: runProfilesSet,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesSelectCmd)
	profilesCmd.AddCommand(profilesSetCmd)
}

func runProfilesList(cmd *cobra.Command, args []string) error {
	profiles, err := aws.ListSSOProfiles()
	if err != nil {
		return err
	}

	if len(profiles) == 0 {
		fmt.Println("No SSO profiles found")
		fmt.Println("Run `aws configure sso` to set one up")
		return nil
	}

	ui.PrintProfileTable(profiles, getActiveProfile())
	return nil
}

func runProfilesSelect(cmd *cobra.Command, args []string) error {
	profiles, err := aws.ListSSOProfiles()
	if err != nil {
		return err
	}

	selected, err := ui.SelectProfile(profiles, getActiveProfile())
	if err != nil {
		return err
	}

	if err := config.SetProfile(selected.Name); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save profile to config: %v\n", err)
	}

	fmt.Printf("\nProfile set to: %s\n", selected.Name)
	fmt.Printf("Saved to: %s\n\n", config.GetConfigPath())
	fmt.Println("To use this profile in your current shell, run:")
	fmt.Printf("  export AWS_PROFILE=%s\n", selected.Name)

	return nil
}

func runProfilesSet(cmd *cobra.Command, args []string) error {
	profileName := args[0]

	// Validate the profile exists and is SSO-complete
	if _, err := aws.FindProfile(profileName); err != nil {
		return err
	}

	if err := config.SetProfile(profileName); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	fmt.Printf("Profile set to: %s\n", profileName)
	fmt.Printf("Saved to: %s\n", config.GetConfigPath())

	return nil
}

// getActiveProfile returns the currently active profile
func getActiveProfile() string {
	// Priority: --profile flag > config file > AWS_PROFILE env
	if profile != "" {
		return profile
	}

	if saved := config.GetSavedProfile(); saved != "" {
		return saved
	}

	return os.Getenv("AWS_PROFILE")
}
