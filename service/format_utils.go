package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/hashscan/domain"
	"gopkg.in/yaml.v3"
)

// EncodeJSON returns an indented JSON string for the given value.
func EncodeJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", domain.NewOutputError("failed to marshal JSON", err)
	}
	return string(data), nil
}

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// EncodeYAML returns a YAML string for the given value.
func EncodeYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", domain.NewOutputError("failed to marshal YAML", err)
	}
	return string(data), nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	SectionPadding = 2
	ItemPadding    = 4
)

// ANSI color codes for consistent color usage
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
)

// RateQuality grades a collision rate against the uniform-hash expectation
type RateQuality string

const (
	RateBetter RateQuality = "Better"
	RateNear   RateQuality = "Near"
	RateWorse  RateQuality = "Worse"
)

// nearFactor is how far above the expected rate still counts as near
const nearFactor = 1.5

// StatItem is one labelled value of a summary section
type StatItem struct {
	Label string
	Value interface{}
}

// FormatUtils provides shared formatting utilities
type FormatUtils struct{}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils() *FormatUtils {
	return &FormatUtils{}
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(title + "\n")
	builder.WriteString(strings.Repeat("=", HeaderWidth) + "\n\n")
	return builder.String()
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(title) + "\n")
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	return builder.String()
}

// FormatSectionSeparator creates a section separator
func (f *FormatUtils) FormatSectionSeparator() string {
	return "\n"
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatRate formats a collision rate as a percentage
func (f *FormatUtils) FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// GradeRate compares an observed rate with the uniform-hash expectation
func (f *FormatUtils) GradeRate(rate, expected float64) RateQuality {
	switch {
	case rate <= expected:
		return RateBetter
	case rate <= expected*nearFactor:
		return RateNear
	default:
		return RateWorse
	}
}

// GetRateColor returns the color for a rate grade
func (f *FormatUtils) GetRateColor(quality RateQuality) string {
	switch quality {
	case RateBetter:
		return ColorGreen
	case RateNear:
		return ColorYellow
	case RateWorse:
		return ColorRed
	default:
		return ColorReset
	}
}

// FormatSummaryStats creates a summary section with items in the given order
func (f *FormatUtils) FormatSummaryStats(items []StatItem) string {
	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("SUMMARY"))

	for _, item := range items {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, item.Label, item.Value))
	}

	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}

// FormatWarningsSection creates a standardized warnings section
func (f *FormatUtils) FormatWarningsSection(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(f.FormatSectionHeader("WARNINGS"))

	for _, warning := range warnings {
		builder.WriteString(f.FormatLabelWithIndent(SectionPadding, "Warning", warning))
	}

	builder.WriteString(f.FormatSectionSeparator())
	return builder.String()
}
