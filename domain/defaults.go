package domain

// Capacity candidate defaults. The prime prefix and the power-of-two range
// mirror the reference experiment: the first 150 primes plus 2^9..2^14.
const (
	// DefaultPrimeCount is the number of leading primes used as capacities
	DefaultPrimeCount = 150

	// DefaultMinPower is the smallest power-of-two exponent evaluated (512 buckets)
	DefaultMinPower = 9

	// DefaultMaxPower is the largest power-of-two exponent evaluated (16384 buckets)
	DefaultMaxPower = 14

	// MaxPowerLimit keeps power-of-two capacities inside an int64
	MaxPowerLimit = 62
)

// Ranking defaults
const (
	// DefaultRankMode reports the K best results
	DefaultRankMode = "top"

	// DefaultTopK is the number of results reported in top mode
	DefaultTopK = 10

	// DefaultRateThreshold is the exclusive collision-rate bound used in threshold mode
	DefaultRateThreshold = 0.10
)

// Corpus defaults
var (
	// DefaultCorpusIncludePatterns selects corpus files when a directory is given
	DefaultCorpusIncludePatterns = []string{"*.txt"}

	// DefaultCorpusExcludePatterns is empty: every matching file is read
	DefaultCorpusExcludePatterns = []string{}
)

// Performance defaults
const (
	// DefaultWorkers of 0 means one worker per CPU
	DefaultWorkers = 0

	// DefaultTimeoutSeconds of 0 disables the overall timeout
	DefaultTimeoutSeconds = 0
)

// Output defaults
const (
	// DefaultOutputFormat is the format used when no format flag is given
	DefaultOutputFormat = "text"
)

// DefaultReportDirectory is where report files go when no output directory is configured
const DefaultReportDirectory = ".hashscan/reports"
