package mcp

import (
	"github.com/ludo-technologies/hashscan/app"
	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	corpusReader domain.CorpusReader
	configLoader domain.CollisionConfigurationLoader
	configPath   string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(configPath string) *Dependencies {
	return &Dependencies{
		corpusReader: service.NewCorpusReader(),
		configLoader: service.NewCollisionConfigurationLoader(),
		configPath:   configPath,
	}
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BuildCollisionUseCase assembles a fresh CollisionUseCase with injected dependencies.
// Progress bars are disabled since stdout carries JSON-RPC.
func (d *Dependencies) BuildCollisionUseCase() (*app.CollisionUseCase, error) {
	return app.NewCollisionUseCaseBuilder().
		WithService(service.NewCollisionService()).
		WithCorpusReader(d.corpusReader).
		WithFormatter(service.NewCollisionFormatter()).
		WithConfigLoader(d.configLoader).
		Build()
}

// DigestService returns the digest service used by digest_string.
func (d *Dependencies) DigestService() domain.DigestService {
	return service.NewDigestService()
}
