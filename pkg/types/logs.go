package types

import "time"

// LogEvent represents a single CloudWatch Logs event
type LogEvent struct {
	Timestamp time.Time
	Message   string
}
