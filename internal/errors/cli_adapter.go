package errors

import (
	"errors"
	"fmt"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool) *CLIErrorAdapter {
	return &CLIErrorAdapter{verbose: verbose}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	var te *ToolError
	if errors.As(err, &te) {
		return a.exitCodeFromTool(te)
	}

	return 1
}

// exitCodeFromTool maps ToolError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromTool(err *ToolError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryWorkspace:
		return 8 // Workspace resolution error
	case CategoryFileSystem:
		return 11 // Filesystem error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	var te *ToolError
	if errors.As(err, &te) {
		return a.formatTool(te)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatTool formats a ToolError for display.
func (a *CLIErrorAdapter) formatTool(err *ToolError) string {
	if a.verbose {
		return err.Error()
	}
	return fmt.Sprintf("Error: %s", err.Message)
}
