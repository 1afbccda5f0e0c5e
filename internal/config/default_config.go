package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/ludo-technologies/hashscan/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package.
type DefaultConfigValues struct {
	Extended bool

	PrimeCount int
	MinPower   int
	MaxPower   int

	RankMode  string
	TopK      int
	Threshold float64

	IncludePatterns []string
	ExcludePatterns []string

	OutputFormat    string
	ReportDirectory string

	Workers        int
	TimeoutSeconds int
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		PrimeCount:      domain.DefaultPrimeCount,
		MinPower:        domain.DefaultMinPower,
		MaxPower:        domain.DefaultMaxPower,
		RankMode:        domain.DefaultRankMode,
		TopK:            domain.DefaultTopK,
		Threshold:       domain.DefaultRateThreshold,
		IncludePatterns: domain.DefaultCorpusIncludePatterns,
		ExcludePatterns: domain.DefaultCorpusExcludePatterns,
		OutputFormat:    domain.DefaultOutputFormat,
		ReportDirectory: domain.DefaultReportDirectory,
		Workers:         domain.DefaultWorkers,
		TimeoutSeconds:  domain.DefaultTimeoutSeconds,
	}
}

var templateFuncs = template.FuncMap{
	"quoteList": func(items []string) string {
		quoted := make([]string, len(items))
		for i, item := range items {
			quoted[i] = strconv.Quote(item)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	},
}

// GenerateDefaultConfigTOML renders the default config template with domain values
// and returns the resulting TOML string.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Funcs(templateFuncs).Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered default config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}
	return NewTomlConfigLoader().Parse([]byte(configTOML))
}
