package engine

import (
	"context"

	"github.com/petrijr/flowlight/pkg/api"
)

// engineImpl wires the definition registry, the transition table cache and
// the execution and repository services together.
type engineImpl struct {
	definitions *definitionRegistry
	execution   *executionService
	repository  *repositoryService
}

// Config describes how to construct an engineImpl.
// Only used inside this package and the root facade.
type Config struct {
	// Provider reports transitions and hooks per definition type. When nil,
	// the definitions passed to RegisterWorkflow are used.
	Provider api.MetadataProvider

	// Observer receives execution callbacks. Defaults to api.NoopObserver.
	Observer api.Observer
}

// NewInMemoryEngine returns an Engine with no observer.
func NewInMemoryEngine() api.Engine {
	return NewEngineWithConfig(Config{})
}

// NewInMemoryEngineWithObserver returns an Engine reporting to obs.
func NewInMemoryEngineWithObserver(obs api.Observer) api.Engine {
	return NewEngineWithConfig(Config{Observer: obs})
}

// NewEngineWithConfig creates a new Engine using the given configuration.
func NewEngineWithConfig(cfg Config) api.Engine {
	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}

	defs := newDefinitionRegistry()

	provider := cfg.Provider
	if provider == nil {
		provider = defs
	}

	return &engineImpl{
		definitions: defs,
		execution: &executionService{
			transitions: newTransitionManager(provider),
			observer:    obs,
		},
		repository: &repositoryService{definitions: defs, external: cfg.Provider != nil},
	}
}

func (e *engineImpl) RegisterWorkflow(def api.Definition) error {
	return e.definitions.Register(def)
}

func (e *engineImpl) Execute(ctx context.Context, inst *api.ProcessInstance, transitionName string) error {
	return e.execution.Execute(ctx, inst, transitionName)
}

func (e *engineImpl) CreateProcessInstance(ctx context.Context, definitionType string) (*api.ProcessInstance, error) {
	return e.repository.CreateProcessInstance(ctx, definitionType)
}

func (e *engineImpl) GetProcessInstance(ctx context.Context, id string) (*api.ProcessInstance, error) {
	return e.repository.GetProcessInstance(ctx, id)
}

// ExecutionService exposes the execution half of an engine built by this
// package.
func ExecutionService(eng api.Engine) api.ExecutionService {
	if e, ok := eng.(*engineImpl); ok {
		return e.execution
	}
	return eng
}

// RepositoryService exposes the repository half of an engine built by this
// package.
func RepositoryService(eng api.Engine) api.RepositoryService {
	if e, ok := eng.(*engineImpl); ok {
		return e.repository
	}
	return eng
}
