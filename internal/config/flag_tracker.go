package config

import (
	"sync"
)

// FlagTracker records which CLI flags the user set explicitly. Only explicit
// flags override configuration file values.
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates an empty tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{flags: make(map[string]bool)}
}

// NewFlagTrackerWithFlags creates a tracker from a copy of flags
func NewFlagTrackerWithFlags(flags map[string]bool) *FlagTracker {
	ft := NewFlagTracker()
	for name, set := range flags {
		if set {
			ft.flags[name] = true
		}
	}
	return ft
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(name string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags[name] = true
}

// WasSet reports whether name was explicitly set
func (ft *FlagTracker) WasSet(name string) bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[name]
}

// Names returns a copy of the explicit flag set
func (ft *FlagTracker) Names() map[string]bool {
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	out := make(map[string]bool, len(ft.flags))
	for k, v := range ft.flags {
		out[k] = v
	}
	return out
}

// Count returns the number of explicit flags
func (ft *FlagTracker) Count() int {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return len(ft.flags)
}

// MergeString returns override if flag was set, base otherwise
func (ft *FlagTracker) MergeString(base, override, flag string) string {
	if ft.WasSet(flag) {
		return override
	}
	return base
}

// MergeInt returns override if flag was set, base otherwise
func (ft *FlagTracker) MergeInt(base, override int, flag string) int {
	if ft.WasSet(flag) {
		return override
	}
	return base
}

// MergeBool returns override if flag was set, base otherwise
func (ft *FlagTracker) MergeBool(base, override bool, flag string) bool {
	if ft.WasSet(flag) {
		return override
	}
	return base
}

// MergeFloat64 returns override if flag was set, base otherwise
func (ft *FlagTracker) MergeFloat64(base, override float64, flag string) float64 {
	if ft.WasSet(flag) {
		return override
	}
	return base
}

// MergeStringSlice returns override if flag was set and override is not empty
func (ft *FlagTracker) MergeStringSlice(base, override []string, flag string) []string {
	if ft.WasSet(flag) && len(override) > 0 {
		return override
	}
	return base
}

// MergeInt64Slice returns override if flag was set and override is not empty
func (ft *FlagTracker) MergeInt64Slice(base, override []int64, flag string) []int64 {
	if ft.WasSet(flag) && len(override) > 0 {
		return override
	}
	return base
}

// CLI flag names whose explicit use overrides configuration values
const (
	FlagHash       = "hash"
	FlagExtended   = "extended"
	FlagPrimes     = "primes"
	FlagPrimeCount = "prime-count"
	FlagMinPower   = "min-power"
	FlagMaxPower   = "max-power"
	FlagCapacity   = "capacity"
	FlagMode       = "mode"
	FlagTop        = "top"
	FlagThreshold  = "threshold"
	FlagRecursive  = "recursive"
	FlagInclude    = "include"
	FlagExclude    = "exclude"
	FlagDedupe     = "dedupe"
	FlagSummary    = "summary"
	FlagWorkers    = "workers"
	FlagTimeout    = "timeout"
)
