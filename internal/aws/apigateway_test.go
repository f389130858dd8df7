package aws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRouteKey(t *testing.T) {
	tests := []struct {
		name     string
		routeKey string
		method   string
		path     string
	}{
		{"simple", "GET /users", "GET", "/users"},
		{"path parameter", "POST /orders/{id}", "POST", "/orders/{id}"},
		{"any method", "ANY /proxy/{proxy+}", "ANY", "/proxy/{proxy+}"},
		{"default route", "$default", "ANY", "$default"},
		{"path with spaces keeps the rest", "PUT /a b", "PUT", "/a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, path := SplitRouteKey(tt.routeKey)
			assert.Equal(t, tt.method, method)
			assert.Equal(t, tt.path, path)
		})
	}
}

func TestShortARN(t *testing.T) {
	assert.Equal(t, "web-service", shortARN("arn:aws:ecs:eu-west-1:111111111111:service/prod/web-service"))
	assert.Equal(t, "plain-name", shortARN("plain-name"))
	assert.Equal(t, "", shortARN("trailing/"))
}
