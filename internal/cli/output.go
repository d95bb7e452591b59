package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/parcelsync/internal/records"
	"github.com/spf13/cobra"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Sync/reconcile failure
	ExitCommandError = 2 // Command error (invalid paths, database not found, etc.)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format  string
	Writer  io.Writer
	Verbose bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`         // "ok" or "error"
	Data   interface{} `json:"data,omitempty"` // success payload
}

// newFormatter builds the formatter for one command invocation.
func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, renderText(data))
	return nil
}

// renderText produces the human-readable form of a command result.
func renderText(data interface{}) string {
	switch v := data.(type) {
	case records.GeneralAndMortgage:
		var b strings.Builder
		b.WriteString("general:\n")
		b.WriteString(renderOwnerAndMailing(v.General))
		b.WriteString("mortgage:\n")
		b.WriteString(renderOwnerAndMailing(v.Mortgage))
		return strings.TrimRight(b.String(), "\n")
	case records.MunicipalitySync:
		return fmt.Sprintf("total: %d\nskipped: %d %v", v.Total, len(v.Skipped), v.Skipped)
	default:
		return fmt.Sprint(data)
	}
}

func renderOwnerAndMailing(v records.OwnerAndMailing) string {
	var b strings.Builder
	if v.Owner == nil {
		b.WriteString("  owner: (none)\n")
	} else {
		fmt.Fprintf(&b, "  owner: %s", v.Owner.Name)
		if v.Owner.MultiEntity {
			b.WriteString(" [multiple entities]")
		}
		b.WriteString("\n")
	}
	if v.Mailing == nil {
		b.WriteString("  mailing: (none)\n")
	} else {
		d, l := v.Mailing.Delivery, v.Mailing.Last
		if d.Attn != "" {
			fmt.Fprintf(&b, "  attn: %s\n", d.Attn)
		}
		line := strings.TrimSpace(d.Number + " " + d.Street)
		if d.Secondary != "" {
			line += " " + d.Secondary
		}
		fmt.Fprintf(&b, "  mailing: %s\n", line)
		fmt.Fprintf(&b, "           %s, %s %s\n", l.City, l.State, l.Zip)
	}
	return b.String()
}
