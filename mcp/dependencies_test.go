package mcp

import (
	"github.com/ludo-technologies/hashscan/domain"
)

func NewTestDependencies(reader domain.CorpusReader, loader domain.CollisionConfigurationLoader, path string) *Dependencies {
	return &Dependencies{
		corpusReader: reader,
		configLoader: loader,
		configPath:   path,
	}
}
