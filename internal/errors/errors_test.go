package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	plain := Validationf("bad input %q", "x")
	assert.Equal(t, `bad input "x"`, plain.Error())

	wrapped := API("DescribeInstances", fmt.Errorf("throttled"))
	assert.Equal(t, "DescribeInstances failed: throttled", wrapped.Error())
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("token expired")
	err := Auth("dev", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, stderrors.Unwrap(err))
}

func TestIsMatchesByKind(t *testing.T) {
	err := ConfigNotFound("/home/u/.aws/config")

	assert.ErrorIs(t, err, ConfigNotFound("/other/path"))
	assert.NotErrorIs(t, err, NoProfiles())
	assert.NotErrorIs(t, err, fmt.Errorf("plain"))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"config not found", ConfigNotFound("/x"), 2},
		{"no profiles", NoProfiles(), 3},
		{"auth", Auth("dev", nil), 4},
		{"validation", Validationf("bad"), 5},
		{"api", API("ListClusters", fmt.Errorf("boom")), 1},
		{"plain error", fmt.Errorf("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ExitCode(tt.err))
		})
	}
}

func TestFormatForUser(t *testing.T) {
	out := FormatForUser(Auth("dev", fmt.Errorf("token expired")))

	assert.Contains(t, out, `Error: not authenticated for profile "dev"`)
	assert.Contains(t, out, "token expired")
	assert.Contains(t, out, "hint: run `aws sso login --profile dev` and retry")
}

func TestFormatForUserPlainError(t *testing.T) {
	out := FormatForUser(fmt.Errorf("something broke"))
	assert.Equal(t, "Error: something broke\n", out)
}

func TestWithHint(t *testing.T) {
	err := Validationf("bad region").WithHint("use a region like us-east-1")

	out := FormatForUser(err)
	assert.Contains(t, out, "hint: use a region like us-east-1")
}
