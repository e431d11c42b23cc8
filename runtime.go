package flowlight

import (
	"context"

	"github.com/petrijr/flowlight/internal/engine"
)

// Runtime groups the two services an application talks to: the repository
// that creates process instances and the execution service that drives them.
type Runtime struct {
	ExecutionService  ExecutionService
	RepositoryService RepositoryService
}

// NewRuntime returns a Runtime backed by eng. When eng is nil a new engine
// from NewEngine is used.
func NewRuntime(eng Engine) *Runtime {
	if eng == nil {
		eng = NewEngine()
	}
	return &Runtime{
		ExecutionService:  engine.ExecutionService(eng),
		RepositoryService: engine.RepositoryService(eng),
	}
}

// CreateProcessInstance forwards to the repository service.
func (r *Runtime) CreateProcessInstance(ctx context.Context, definitionType string) (*ProcessInstance, error) {
	return r.RepositoryService.CreateProcessInstance(ctx, definitionType)
}

// Execute forwards to the execution service.
func (r *Runtime) Execute(ctx context.Context, inst *ProcessInstance, transitionName string) error {
	return r.ExecutionService.Execute(ctx, inst, transitionName)
}
