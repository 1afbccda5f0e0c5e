package domain

import (
	"context"
	"io"
	"time"
)

// RankMode selects which evaluation results are reported
type RankMode string

const (
	// RankModeTop reports the K lowest collision rates
	RankModeTop RankMode = "top"
	// RankModeThreshold reports every result below a rate threshold
	RankModeThreshold RankMode = "threshold"
	// RankModeAll reports every result in evaluation order
	RankModeAll RankMode = "all"
)

// CollisionRequest represents a request for a collision-rate experiment
type CollisionRequest struct {
	// Corpus sources; empty means the built-in city corpus
	Paths           []string
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	Dedupe          bool

	// Hash function selection; empty means the default set
	Functions []string
	Extended  bool

	// Capacity candidates
	PrimesPath string
	PrimeCount int
	MinPower   int
	MaxPower   int
	Capacities []int64 // explicit capacities replace primes and powers

	// Ranking
	Mode      RankMode
	TopK      int
	Threshold float64

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
	NoOpen       bool
	ShowSummary  bool

	// Performance
	Workers        int
	TimeoutSeconds int

	// Configuration
	ConfigPath    string
	ExplicitFlags map[string]bool
}

// CollisionDataset holds the fully loaded, immutable inputs of an experiment
type CollisionDataset struct {
	Corpus        []string
	CorpusSources []string
	Capacities    []int64
}

// EvaluationResult is the outcome of one (hash function, capacity) evaluation
type EvaluationResult struct {
	Function      string        `json:"function" yaml:"function"`
	Capacity      int64         `json:"capacity" yaml:"capacity"`
	CapacityKind  string        `json:"capacity_kind" yaml:"capacity_kind"`
	CorpusSize    int           `json:"corpus_size" yaml:"corpus_size"`
	BucketsUsed   int           `json:"buckets_used" yaml:"buckets_used"`
	Collisions    int           `json:"collisions" yaml:"collisions"`
	CollisionRate float64       `json:"collision_rate" yaml:"collision_rate"`
	ExpectedRate  float64       `json:"expected_rate" yaml:"expected_rate"`
	Duration      time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// FunctionSummary aggregates all evaluations of one hash function
type FunctionSummary struct {
	Function          string  `json:"function" yaml:"function"`
	Evaluations       int     `json:"evaluations" yaml:"evaluations"`
	BestCapacity      int64   `json:"best_capacity" yaml:"best_capacity"`
	BestRate          float64 `json:"best_rate" yaml:"best_rate"`
	MeanRate          float64 `json:"mean_rate" yaml:"mean_rate"`
	PerfectCapacities int     `json:"perfect_capacities" yaml:"perfect_capacities"`
}

// CollisionSummary represents aggregate statistics of an experiment
type CollisionSummary struct {
	CorpusSize         int     `json:"corpus_size" yaml:"corpus_size"`
	DuplicateEntries   int     `json:"duplicate_entries" yaml:"duplicate_entries"`
	Functions          int     `json:"functions" yaml:"functions"`
	Capacities         int     `json:"capacities" yaml:"capacities"`
	Evaluations        int     `json:"evaluations" yaml:"evaluations"`
	PerfectEvaluations int     `json:"perfect_evaluations" yaml:"perfect_evaluations"`
	Selected           int     `json:"selected" yaml:"selected"`
	BestRate           float64 `json:"best_rate" yaml:"best_rate"`
	Mode               string  `json:"mode" yaml:"mode"`
}

// CollisionResponse represents the complete experiment result
type CollisionResponse struct {
	// Results selected by the ranking mode, in report order
	Results []EvaluationResult `json:"results" yaml:"results"`

	// Per-function aggregates in evaluation order
	Functions []FunctionSummary `json:"functions" yaml:"functions"`

	Summary  CollisionSummary `json:"summary" yaml:"summary"`
	Warnings []string         `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// Metadata
	GeneratedAt   string      `json:"generated_at" yaml:"generated_at"`
	Version       string      `json:"version" yaml:"version"`
	CorpusSources []string    `json:"corpus_sources" yaml:"corpus_sources"`
	Config        interface{} `json:"config,omitempty" yaml:"config,omitempty"`

	// ShowSummary appends the per-function summary to text output
	ShowSummary bool `json:"-" yaml:"-"`
}

// CollisionService defines the core business logic of the experiment
type CollisionService interface {
	// Analyze evaluates the cross product of functions and capacities and ranks the results
	Analyze(ctx context.Context, dataset CollisionDataset, req CollisionRequest) (*CollisionResponse, error)
}

// CorpusReader loads corpus entries and capacity candidates from external sources
type CorpusReader interface {
	// ReadCorpus reads entries from the given files or directories in order.
	// It returns the entries and the list of files they were read from.
	ReadCorpus(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, []string, error)

	// ReadCapacities reads up to limit positive integers, one per line (limit <= 0 reads all)
	ReadCapacities(path string, limit int) ([]int64, error)

	// FileExists checks if a file exists and returns an error if not
	FileExists(path string) (bool, error)
}

// CollisionOutputFormatter formats experiment results
type CollisionOutputFormatter interface {
	// Format formats the response according to the specified format
	Format(response *CollisionResponse, format OutputFormat) (string, error)

	// Write writes the formatted output to the writer
	Write(response *CollisionResponse, format OutputFormat, writer io.Writer) error
}

// CollisionConfigurationLoader loads and merges experiment configuration
type CollisionConfigurationLoader interface {
	// LoadConfig loads configuration from the specified path
	LoadConfig(path string) (*CollisionRequest, error)

	// LoadDefaultConfig loads the discovered or built-in default configuration
	LoadDefaultConfig() *CollisionRequest

	// LoadConfigForTarget resolves configuration for a run over targetPath
	LoadConfigForTarget(configPath, targetPath string) (*CollisionRequest, error)

	// MergeConfig merges CLI flags with configuration file values
	MergeConfig(base *CollisionRequest, override *CollisionRequest) *CollisionRequest
}

// DigestRequest asks for the raw digests of keys under selected hash functions
type DigestRequest struct {
	Keys      []string
	Functions []string
	Extended  bool
}

// DigestEntry is one raw digest
type DigestEntry struct {
	Key      string `json:"key" yaml:"key"`
	Function string `json:"function" yaml:"function"`
	Decimal  string `json:"decimal" yaml:"decimal"`
	Hex      string `json:"hex" yaml:"hex"`
	Bits     int    `json:"bits" yaml:"bits"`
}

// DigestService computes raw digests
type DigestService interface {
	Digest(ctx context.Context, req DigestRequest) ([]DigestEntry, error)
}
