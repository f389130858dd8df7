package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nimbuscli/nimbus/internal/aws"
	"github.com/nimbuscli/nimbus/internal/errors"
	"github.com/nimbuscli/nimbus/internal/ui"
)

var apigwCmd = &cobra.Command{
	Use:   "apigw",
	Short: "Manage API Gateway HTTP APIs",
	Long:  `List API Gateway v2 APIs and their routes, and create new routes.`,
}

var apigwAPIsCmd = &cobra.Command{
	Use:   "apis",
	Short: "List HTTP APIs",
	RunE:  runAPIGWList,
}

var apigwRoutesCmd = &cobra.Command{
	Use:   "routes <api-id>",
	Short: "List the routes of an API",
	Args:  cobra.ExactArgs(1),
	RunE:  runAPIGWRoutes,
}

var apigwCreateRouteCmd = &cobra.Command{
	Use:   "create-route <api-id> <method> <path>",
	Short: "Create a route on an API",
	Long: `Create a new route with the given method and path.

Examples:
  nbs apigw create-route a1b2c3 GET /users
  nbs apigw create-route a1b2c3 POST /orders/{id}`,
	Args: cobra.ExactArgs(3),
	RunE: runAPIGWCreateRoute,
}

var httpMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true, "ANY": true,
}

func init() {
	rootCmd.AddCommand(apigwCmd)
	apigwCmd.AddCommand(apigwAPIsCmd)
	apigwCmd.AddCommand(apigwRoutesCmd)
	apigwCmd.AddCommand(apigwCreateRouteCmd)
}

func runAPIGWList(cmd *cobra.Command, args []string) error {
	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	apis, err := client.ListAPIs()
	if err != nil {
		return err
	}

	if len(apis) == 0 {
		fmt.Println("No APIs found")
		return nil
	}

	rows := make([][]string, 0, len(apis))
	for _, api := range apis {
		rows = append(rows, []string{api.ID, api.Name, api.Protocol, api.Endpoint})
	}

	ui.PrintTable([]string{"ID", "Name", "Protocol", "Endpoint"}, rows)
	return nil
}

func runAPIGWRoutes(cmd *cobra.Command, args []string) error {
	apiID := args[0]

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	routes, err := client.ListRoutes(apiID)
	if err != nil {
		return err
	}

	if len(routes) == 0 {
		fmt.Printf("No routes found for API %s\n", apiID)
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
	return nil
}

func runAPIGWCreateRoute(cmd *cobra.Command, args []string) error {
	apiID, method, path := args[0], args[1], args[2]

	if err := validateRouteKey(method, path); err != nil {
		return err
	}

	client, err := resolveSession(cmd.Context())
	if err != nil {
		return err
	}

	routeID, err := client.CreateRoute(apiID, method, path)
	if err != nil {
		return err
	}

	fmt.Printf("Route created: %s %s (id %s)\n", method, path, routeID)
	return nil
}

func validateRouteKey(method, path string) error {
	if !httpMethods[method] {
		return errors.Validationf("invalid HTTP method %q (use GET, POST, PUT, PATCH, DELETE, HEAD, OPTIONS or ANY)", method)
	}
	if len(path) == 0 || path[0] != '/' {
		return errors.Validationf("route path must start with '/', got %q", path)
	}
	return nil
}

// promptCreateRoute drives route creation interactively from the wizard
func promptCreateRoute(client *aws.Client, apiID string) error {
	method, err := ui.SelectString("HTTP Method", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "ANY"})
	if err != nil {
		return err
	}

	path := ui.PromptText("Route path (e.g. /users/{id})")
	if path == "" {
		fmt.Println("Cancelled")
		return nil
	}

	if err := validateRouteKey(method, path); err != nil {
		return err
	}

	routeID, err := client.CreateRoute(apiID, method, path)
	if err != nil {
		return err
	}

	fmt.Printf("Route created: %s %s (id %s)\n", method, path, routeID)
	return nil
}
