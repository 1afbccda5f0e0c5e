package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/hashscan/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		patterns: initializeErrorPatterns(),
	}
}

// initializeErrorPatterns lists message patterns in matching order
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"timed out",
			"deadline",
			"context canceled",
			"cancelled",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"configuration",
			"toml",
			"yaml",
			"top_k",
			"threshold",
			"unknown hash function",
			"selected more than once",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"corpus",
			"no files found",
			"file not found",
			"cannot access",
			"permission denied",
			"capacity",
			"line",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"format",
			"cannot create",
			"report",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"analysis",
			"evaluation",
			"digest",
		}},
	}
}

// codeCategories maps domain error codes to categories; codes win over message patterns
var codeCategories = []struct {
	code     string
	category domain.ErrorCategory
}{
	{domain.ErrCodeConfigError, domain.ErrorCategoryConfig},
	{domain.ErrCodeInvalidInput, domain.ErrorCategoryInput},
	{domain.ErrCodeFileNotFound, domain.ErrorCategoryInput},
	{domain.ErrCodeOutputError, domain.ErrorCategoryOutput},
	{domain.ErrCodeUnsupportedFormat, domain.ErrorCategoryOutput},
	{domain.ErrCodeAnalysisError, domain.ErrorCategoryProcessing},
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := ec.categoryOf(err)
	message := err.Error()
	if category != domain.ErrorCategoryUnknown {
		message = ec.getCategoryMessage(category)
	}

	return &domain.CategorizedError{
		Category: category,
		Message:  message,
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categoryOf(err error) domain.ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrorCategoryTimeout
	}

	for _, cc := range codeCategories {
		if domain.HasCode(err, cc.code) {
			return cc.category
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return cp.category
		}
	}

	return domain.ErrorCategoryUnknown
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that corpus files exist and contain one non-empty entry per line",
			"Check that the primes file holds one positive integer per line",
			"Try: hashscan rank without paths to use the built-in city corpus",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: hashscan init to generate a valid config file",
			"Try: hashscan hashes to list valid hash function names",
		},
		domain.ErrorCategoryTimeout: {
			"Increase performance.timeout_seconds or set it to 0",
			"Evaluate fewer functions or capacities",
			"Use --workers to raise parallelism",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions for the output directory",
			"Set output.directory in the configuration to a writable location",
			"Use the default text output to print to the terminal",
		},
		domain.ErrorCategoryProcessing: {
			"Run with -vv for per-evaluation details",
			"Narrow the run with --hash and --capacity to isolate the problem",
		},
		domain.ErrorCategoryUnknown: {
			"Run with -vv for detailed information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read corpus or capacity input",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Evaluation timed out or was cancelled",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error during collision evaluation",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
