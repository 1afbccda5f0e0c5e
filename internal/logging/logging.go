// Package logging provides the logr loggers used across hashscan.
package logging

import (
	"context"
	"io"
	"log"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

const (
	// LevelInfo is the default verbosity
	LevelInfo = 0
	// LevelDebug enables run parameters and stage timings
	LevelDebug = 1
	// LevelTrace enables one line per evaluation
	LevelTrace = 2
)

const rootName = "hashscan"

// GetLogger returns a stdr logger writing to stderr and sets the global
// verbosity. Negative values fall back to info, values above LevelTrace are
// clamped to it.
func GetLogger(v int) logr.Logger {
	return NewLogger(nil, v)
}

// NewLogger is GetLogger with an explicit destination. A nil writer means stderr.
func NewLogger(w io.Writer, v int) logr.Logger {
	var logger logr.Logger
	if w == nil {
		logger = stdr.New(nil)
	} else {
		logger = stdr.New(log.New(w, "", 0))
	}
	logger = logger.WithName(rootName)

	switch {
	case v < LevelInfo:
		logger.Info("Invalid verbosity, setting logger to display info level messages only.", "verbosity", v)
		v = LevelInfo
	case v > LevelTrace:
		v = LevelTrace
	}
	stdr.SetVerbosity(v)

	return logger
}

// ContextWithLogger returns a context carrying logger
func ContextWithLogger(ctx context.Context, logger logr.Logger) context.Context {
	return logr.NewContext(ctx, logger)
}

// FromContext returns the logger stored in ctx, or a stderr logger at the
// current global verbosity when there is none, named with name when it is not empty.
func FromContext(ctx context.Context, name string) logr.Logger {
	logger, err := logr.FromContext(ctx)
	if err != nil {
		logger = stdr.New(nil).WithName(rootName)
	}

	if name != "" {
		return logger.WithName(name)
	}
	return logger
}
