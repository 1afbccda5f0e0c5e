package service

import (
	"fmt"

	"github.com/ludo-technologies/hashscan/domain"
)

// OutputFormatResolver resolves output format and file extension from flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine evaluates format flags and returns the selected format and extension.
// At most one of html/json/csv/yaml may be true; if none are true, defaults to text.
func (r *OutputFormatResolver) Determine(html, json, csv, yaml bool) (domain.OutputFormat, string, error) {
	flags := []struct {
		set    bool
		format domain.OutputFormat
	}{
		{html, domain.OutputFormatHTML},
		{json, domain.OutputFormatJSON},
		{csv, domain.OutputFormatCSV},
		{yaml, domain.OutputFormatYAML},
	}

	format := domain.OutputFormatText
	count := 0
	for _, f := range flags {
		if f.set {
			count++
			format = f.format
		}
	}

	if count > 1 {
		return "", "", fmt.Errorf("only one output format flag can be specified")
	}
	if count == 0 {
		return domain.OutputFormatText, "", nil
	}
	return format, string(format), nil
}

// Parse maps a configured format name to an output format and file extension
func (r *OutputFormatResolver) Parse(name string) (domain.OutputFormat, string, error) {
	switch domain.OutputFormat(name) {
	case "", domain.OutputFormatText:
		return domain.OutputFormatText, "", nil
	case domain.OutputFormatJSON, domain.OutputFormatYAML, domain.OutputFormatCSV, domain.OutputFormatHTML:
		return domain.OutputFormat(name), name, nil
	default:
		return "", "", domain.NewUnsupportedFormatError(name)
	}
}
