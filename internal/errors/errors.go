package errors

import (
	"fmt"
	"strings"
)

// Kind categorizes user-facing CLI errors
type Kind string

const (
	// ConfigNotFoundKind means the AWS shared config file does not exist
	ConfigNotFoundKind Kind = "CONFIG_NOT_FOUND"
	// NoProfilesKind means the config file exists but holds no usable SSO profiles
	NoProfilesKind Kind = "NO_PROFILES"
	// AuthKind means the SDK could not produce valid credentials for the profile
	AuthKind Kind = "AUTH"
	// APIKind wraps failures of downstream AWS API calls
	APIKind Kind = "API"
	// ValidationKind covers invalid user input (flags, arguments)
	ValidationKind Kind = "VALIDATION"
)

// CLIError is the error type surfaced to the user. It carries a short
// message, an optional cause, and hint lines telling the user what to do.
type CLIError struct {
	Kind    Kind
	Message string
	Cause   error
	Hints   []string
}

// Error implements the error interface
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// Is matches errors by Kind so callers can test categories with errors.Is
func (e *CLIError) Is(target error) bool {
	t, ok := target.(*CLIError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithHint appends an actionable hint line
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hints = append(e.Hints, hint)
	return e
}

// ConfigNotFound reports a missing AWS shared config file
func ConfigNotFound(path string) *CLIError {
	return &CLIError{
		Kind:    ConfigNotFoundKind,
		Message: fmt.Sprintf("AWS config file not found at %s", path),
		Hints:   []string{"run `aws configure sso` to set up an SSO profile"},
	}
}

// NoProfiles reports that no SSO-complete profile is configured
func NoProfiles() *CLIError {
	return &CLIError{
		Kind:    NoProfilesKind,
		Message: "no SSO profiles configured",
		Hints:   []string{"run `aws configure sso` to set up an SSO profile"},
	}
}

// Auth reports that credentials could not be resolved for a profile
func Auth(profile string, cause error) *CLIError {
	return &CLIError{
		Kind:    AuthKind,
		Message: fmt.Sprintf("not authenticated for profile %q", profile),
		Cause:   cause,
		Hints:   []string{fmt.Sprintf("run `aws sso login --profile %s` and retry", profile)},
	}
}

// API wraps a failed AWS API call
func API(operation string, cause error) *CLIError {
	return &CLIError{
		Kind:    APIKind,
		Message: fmt.Sprintf("%s failed", operation),
		Cause:   cause,
	}
}

// Validationf reports invalid user input
func Validationf(format string, args ...interface{}) *CLIError {
	return &CLIError{
		Kind:    ValidationKind,
		Message: fmt.Sprintf(format, args...),
	}
}

// FormatForUser renders the error as the short actionable block printed
// to stderr before exiting non-zero.
func FormatForUser(err error) string {
	var sb strings.Builder

	cliErr, ok := err.(*CLIError)
	if !ok {
		sb.WriteString(fmt.Sprintf("Error: %v\n", err))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Error: %s\n", cliErr.Message))
	if cliErr.Cause != nil {
		sb.WriteString(fmt.Sprintf("  %v\n", cliErr.Cause))
	}
	for _, hint := range cliErr.Hints {
		sb.WriteString(fmt.Sprintf("  hint: %s\n", hint))
	}
	return sb.String()
}

// ExitCode maps error kinds to process exit codes
func ExitCode(err error) int {
	cliErr, ok := err.(*CLIError)
	if !ok {
		return 1
	}

	switch cliErr.Kind {
	case ConfigNotFoundKind:
		return 2
	case NoProfilesKind:
		return 3
	case AuthKind:
		return 4
	case ValidationKind:
		return 5
	default:
		return 1
	}
}
