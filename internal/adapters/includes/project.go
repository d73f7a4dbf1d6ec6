package includes

import (
	"go.trai.ch/recache/internal/core/domain"
	"go.trai.ch/recache/internal/core/ports"
	"go.trai.ch/recache/internal/engine/cache"
)

// Project couples a document workspace with the builder that fills it.
type Project struct {
	Workspace *cache.Workspace[*Document]
	Builder   *Builder
}

// NewProject creates an empty project whose loads are traced through logger and tracer.
// Either may be nil.
func NewProject(
	policy domain.Policy,
	oracle ports.ChangeOracle,
	logger ports.Logger,
	tracer ports.Tracer,
) (*Project, error) {
	var opts []cache.Option
	if logger != nil || tracer != nil {
		opts = append(opts, cache.WithTracing(logger, tracer))
	}

	ws, err := cache.NewWorkspace[*Document](policy, oracle, opts...)
	if err != nil {
		return nil, err
	}
	return &Project{Workspace: ws, Builder: NewBuilder(ws)}, nil
}

// Factory creates projects from a resolved configuration.
type Factory struct {
	oracles ports.OracleFactory
	logger  ports.Logger
	tracer  ports.Tracer
}

// NewFactory creates a Factory.
func NewFactory(oracles ports.OracleFactory, logger ports.Logger, tracer ports.Tracer) *Factory {
	return &Factory{oracles: oracles, logger: logger, tracer: tracer}
}

// New creates a project using the policy and oracle named by cfg.
func (f *Factory) New(cfg *domain.Config) (*Project, error) {
	oracle, err := f.oracles.New(cfg.Oracle)
	if err != nil {
		return nil, err
	}
	return NewProject(cfg.Policy, oracle, f.logger, f.tracer)
}
