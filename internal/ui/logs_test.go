package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"json level field", `{"level": "error", "message": "boom"}`, "ERROR"},
		{"json severity field", `{"severity": "warn", "msg": "careful"}`, "WARN"},
		{"bracketed tag", "[INFO] server started", "INFO"},
		{"bracketed warning normalized", "[WARNING] disk almost full", "WARN"},
		{"bare level word", "2026-08-23 DEBUG cache miss", "DEBUG"},
		{"trace word", "TRACE entering handler", "TRACE"},
		{"failure defaults to error", "request failed with status 502", "ERROR"},
		{"exception defaults to error", "Unhandled exception in worker", "ERROR"},
		{"warn substring", "this might warn you", "WARN"},
		{"plain message defaults to info", "user logged in", "INFO"},
		{"unknown bracket tag ignored", "[abc123] something happened", "INFO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLogLevel(tt.message))
		})
	}
}

func TestParseJSONPayload(t *testing.T) {
	payload := ParseJSONPayload(`prefix {"level":"info","message":"ok","count":3} suffix`)
	require.NotNil(t, payload)
	assert.Equal(t, "info", payload["level"])
	assert.Equal(t, "ok", payload["message"])
	assert.Equal(t, float64(3), payload["count"])

	assert.Nil(t, ParseJSONPayload("no json here"))
	assert.Nil(t, ParseJSONPayload("{broken json"))
}

func TestStripANSI(t *testing.T) {
	colored := "\x1b[31mERROR\x1b[0m something broke"
	assert.Equal(t, "ERROR something broke", StripANSI(colored))

	plain := "nothing to strip"
	assert.Equal(t, plain, StripANSI(plain))
}
