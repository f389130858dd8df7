package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHumanSize(t *testing.T) {
	tests := []struct {
		size int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanSize(tt.size))
	}
}

func TestParentPrefix(t *testing.T) {
	assert.Equal(t, "a/", parentPrefix("a/b/"))
	assert.Equal(t, "", parentPrefix("a/"))
	assert.Equal(t, "", parentPrefix(""))
	assert.Equal(t, "logs/2026/", parentPrefix("logs/2026/08/"))
}

func TestValidateRouteKey(t *testing.T) {
	assert.NoError(t, validateRouteKey("GET", "/users"))
	assert.NoError(t, validateRouteKey("ANY", "/{proxy+}"))
	assert.Error(t, validateRouteKey("FETCH", "/users"))
	assert.Error(t, validateRouteKey("GET", "users"))
	assert.Error(t, validateRouteKey("GET", ""))
}
