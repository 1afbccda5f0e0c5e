package domain

import (
	"io"
)

// OutputFormat names a report encoding
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
	OutputFormatCSV  OutputFormat = "csv"
	OutputFormatHTML OutputFormat = "html"
)

// ReportWriter delivers a formatted report. A non-empty outputPath is
// created or truncated and handed to writeFunc; otherwise writer is used.
// HTML files are opened in a browser unless noOpen is set.
type ReportWriter interface {
	Write(writer io.Writer, outputPath string, format OutputFormat, noOpen bool, writeFunc func(io.Writer) error) error
}

// ErrorCategory groups errors for the recovery hints printed by the CLI
type ErrorCategory string

const (
	ErrorCategoryInput      ErrorCategory = "Input Error"
	ErrorCategoryConfig     ErrorCategory = "Configuration Error"
	ErrorCategoryProcessing ErrorCategory = "Processing Error"
	ErrorCategoryOutput     ErrorCategory = "Output Error"
	ErrorCategoryTimeout    ErrorCategory = "Timeout Error"
	ErrorCategoryUnknown    ErrorCategory = "Unknown Error"
)

// CategorizedError pairs an error with its category and a user-facing message
type CategorizedError struct {
	Category ErrorCategory
	Message  string
	Original error
}

// Error returns the original message when there is one
func (e *CategorizedError) Error() string {
	if e.Original != nil {
		return e.Original.Error()
	}
	return e.Message
}

// ErrorCategorizer maps errors to categories and recovery suggestions
type ErrorCategorizer interface {
	Categorize(err error) *CategorizedError
	GetRecoverySuggestions(category ErrorCategory) []string
}
