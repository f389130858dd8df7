package ui

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	pkgtypes "github.com/nimbuscli/nimbus/pkg/types"
)

// Patterns used to pull a log level out of unstructured messages
var (
	levelFieldRe   = regexp.MustCompile(`(?i)"(?:level|severity)"\s*:\s*"(\w+)"`)
	levelBracketRe = regexp.MustCompile(`\[(\w+)\]`)
	levelWordRe    = regexp.MustCompile(`\b(ERROR|WARN|WARNING|INFO|DEBUG|TRACE)\b`)
	ansiEscapeRe   = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)
	jsonBodyRe     = regexp.MustCompile(`(?s)\{.*\}`)
)

var knownLevels = map[string]bool{
	"ERROR": true,
	"WARN":  true,
	"INFO":  true,
	"DEBUG": true,
	"TRACE": true,
}

// ExtractLogLevel guesses the level of a log message. Structured fields
// win over bracketed tags, which win over bare level words; messages that
// mention failures default to ERROR, everything else to INFO.
func ExtractLogLevel(message string) string {
	for _, re := range []*regexp.Regexp{levelFieldRe, levelBracketRe, levelWordRe} {
		if match := re.FindStringSubmatch(message); len(match) == 2 {
			level := strings.ToUpper(match[1])
			if level == "WARNING" {
				level = "WARN"
			}
			if knownLevels[level] {
				return level
			}
		}
	}

	upper := strings.ToUpper(message)
	if strings.Contains(upper, "ERROR") || strings.Contains(upper, "EXCEPTION") || strings.Contains(upper, "FAILED") {
		return "ERROR"
	}
	if strings.Contains(upper, "WARN") {
		return "WARN"
	}
	return "INFO"
}

// ParseJSONPayload extracts and decodes a JSON object embedded in a log
// message. Returns nil when the message carries no valid JSON.
func ParseJSONPayload(message string) map[string]interface{} {
	body := jsonBodyRe.FindString(message)
	if body == "" {
		return nil
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil
	}
	return payload
}

// StripANSI removes terminal escape sequences from a message
func StripANSI(message string) string {
	return ansiEscapeRe.ReplaceAllString(message, "")
}

func levelStyle(level string) lipgloss.Style {
	switch level {
	case "ERROR":
		return ErrorStyle
	case "WARN":
		return WarnStyle
	case "DEBUG", "TRACE":
		return DebugStyle
	default:
		return InfoStyle
	}
}

// PrintLogEvents renders log events with timestamps and colored levels.
// JSON payloads are pretty-printed under their event line.
func PrintLogEvents(events []pkgtypes.LogEvent, header string) {
	if header != "" {
		fmt.Println(HeaderStyle.Render(header))
		fmt.Println(MutedStyle.Render(strings.Repeat(Horizontal, 40)))
	}

	for _, event := range events {
		message := strings.TrimSpace(StripANSI(event.Message))
		level := ExtractLogLevel(message)
		payload := ParseJSONPayload(message)

		if payload != nil {
			if l, ok := payload["level"].(string); ok {
				upper := strings.ToUpper(l)
				if upper == "WARNING" {
					upper = "WARN"
				}
				if knownLevels[upper] {
					level = upper
				}
			}
		}

		timestamp := event.Timestamp.Format("2006-01-02 15:04:05")
		fmt.Printf("%s  %s  ",
			MutedStyle.Render(timestamp),
			levelStyle(level).Render(padRight(level, 5)))

		if payload != nil {
			pretty, err := json.MarshalIndent(payload, "    ", "  ")
			if err == nil {
				if msg, ok := payload["message"].(string); ok {
					fmt.Println(ValueStyle.Render(msg))
				} else {
					fmt.Println()
				}
				fmt.Println(MutedStyle.Render("    " + string(pretty)))
				continue
			}
		}

		fmt.Println(ValueStyle.Render(message))
	}

	fmt.Printf("\n  %d events\n", len(events))
}
