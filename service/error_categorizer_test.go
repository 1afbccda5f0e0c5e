package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorCategorizer(t *testing.T) {
	categorizer := NewErrorCategorizer()
	assert.IsType(t, &ErrorCategorizerImpl{}, categorizer)
	assert.Nil(t, categorizer.Categorize(nil))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want domain.ErrorCategory
	}{
		{
			name: "invalid input code",
			err:  fmt.Errorf("collision analysis failed: %w", domain.NewInvalidInputError("corpus is empty", nil)),
			want: domain.ErrorCategoryInput,
		},
		{
			name: "file not found code",
			err:  domain.NewFileNotFoundError("cities.txt", errors.New("no such file")),
			want: domain.ErrorCategoryInput,
		},
		{
			name: "config code wins over message",
			err:  domain.NewConfigError("cannot write output", nil),
			want: domain.ErrorCategoryConfig,
		},
		{
			name: "output code",
			err:  domain.NewOutputError("failed to create output file", nil),
			want: domain.ErrorCategoryOutput,
		},
		{
			name: "unsupported format code",
			err:  domain.NewUnsupportedFormatError("xml"),
			want: domain.ErrorCategoryOutput,
		},
		{
			name: "analysis code",
			err:  domain.NewAnalysisError("digest failed", nil),
			want: domain.ErrorCategoryProcessing,
		},
		{
			name: "deadline",
			err:  fmt.Errorf("parallel execution timed out: %w", context.DeadlineExceeded),
			want: domain.ErrorCategoryTimeout,
		},
		{
			name: "cancelled",
			err:  fmt.Errorf("stopped: %w", context.Canceled),
			want: domain.ErrorCategoryTimeout,
		},
		{
			name: "config message",
			err:  errors.New("failed to read config file .hashscan.toml"),
			want: domain.ErrorCategoryConfig,
		},
		{
			name: "unknown hash message",
			err:  errors.New(`unknown hash function: "crc"`),
			want: domain.ErrorCategoryConfig,
		},
		{
			name: "unmatched",
			err:  errors.New("something odd"),
			want: domain.ErrorCategoryUnknown,
		},
	}

	categorizer := NewErrorCategorizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizer.Categorize(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.err, got.Original)
			assert.Equal(t, tt.err.Error(), got.Error())
		})
	}
}

func TestCategorize_UnknownKeepsMessage(t *testing.T) {
	got := NewErrorCategorizer().Categorize(errors.New("something odd"))
	assert.Equal(t, "something odd", got.Message)
}

func TestGetRecoverySuggestions(t *testing.T) {
	categorizer := NewErrorCategorizer()
	categories := []domain.ErrorCategory{
		domain.ErrorCategoryInput,
		domain.ErrorCategoryConfig,
		domain.ErrorCategoryTimeout,
		domain.ErrorCategoryOutput,
		domain.ErrorCategoryProcessing,
		domain.ErrorCategoryUnknown,
	}

	for _, category := range categories {
		assert.NotEmpty(t, categorizer.GetRecoverySuggestions(category), category)
	}
	assert.Equal(t, []string{"Check the error message for more details"},
		categorizer.GetRecoverySuggestions("Other"))
}
