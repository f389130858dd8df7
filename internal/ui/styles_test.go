package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadRight(t *testing.T) {
	assert.Equal(t, "abc   ", padRight("abc", 6))
	assert.Equal(t, "abc", padRight("abc", 3))
	assert.Equal(t, "ab...", padRight("abcdefgh", 5))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "lo...", Truncate("long-instance-name", 5))
}

func TestFormatStateIndicators(t *testing.T) {
	assert.Contains(t, FormatState("running"), "●")
	assert.Contains(t, FormatState("stopped"), "○")
	assert.Contains(t, FormatState("pending"), "◐")
	assert.Contains(t, FormatState("terminated"), "○")
}
