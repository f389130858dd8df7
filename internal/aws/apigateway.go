package aws

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"

	"github.com/nimbuscli/nimbus/internal/errors"
	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

// ListAPIs returns all API Gateway v2 APIs
func (c *Client) ListAPIs() ([]pkgtypes.API, error) {
	var apis []pkgtypes.API
	var nextToken *string

	for {
		output, err := c.APIGW.GetApis(c.ctx, &apigatewayv2.GetApisInput{
			NextToken: nextToken,
		})
		if err != nil {
			return nil, errors.API("GetApis", err)
		}

		for _, item := range output.Items {
			apis = append(apis, pkgtypes.API{
				ID:       deref(item.ApiId),
				Name:     deref(item.Name),
				Protocol: string(item.ProtocolType),
				Endpoint: deref(item.ApiEndpoint),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return apis, nil
}

// ListRoutes returns the routes of an API
func (c *Client) ListRoutes(apiID string) ([]pkgtypes.Route, error) {
	var routes []pkgtypes.Route
	var nextToken *string

	for {
		output, err := c.APIGW.GetRoutes(c.ctx, &apigatewayv2.GetRoutesInput{
			ApiId:     &apiID,
			NextToken: nextToken,
		})
		if err != nil {
			return nil, errors.API("GetRoutes", err)
		}

		for _, item := range output.Items {
			method, path := SplitRouteKey(deref(item.RouteKey))
			routes = append(routes, pkgtypes.Route{
				ID:     deref(item.RouteId),
				Method: method,
				Path:   path,
				Target: deref(item.Target),
			})
		}

		if output.NextToken == nil {
			break
		}
		nextToken = output.NextToken
	}

	return routes, nil
}

// CreateRoute creates a `METHOD /path` route on an API and returns its ID
func (c *Client) CreateRoute(apiID, method, path string) (string, error) {
	routeKey := method + " " + path

	output, err := c.APIGW.CreateRoute(c.ctx, &apigatewayv2.CreateRouteInput{
		ApiId:    &apiID,
		RouteKey: &routeKey,
	})
	if err != nil {
		return "", errors.API("CreateRoute", err)
	}

	return deref(output.RouteId), nil
}

// SplitRouteKey splits a route key like "GET /users/{id}" into its method
// and path. Keys without a space ($default) come back as method ANY.
func SplitRouteKey(routeKey string) (method, path string) {
	parts := strings.SplitN(routeKey, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return "ANY", routeKey
}
