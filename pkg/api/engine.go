package api

import (
	"context"
	"errors"
)

var ErrDefinitionAlreadyRegistered = errors.New("workflow definition already registered")

// ExecutionService drives named transitions on process instances.
type ExecutionService interface {
	// Execute performs every branch of the named transition on inst, on the
	// calling goroutine. See the package documentation for the algorithm and
	// its failure semantics.
	Execute(ctx context.Context, inst *ProcessInstance, transitionName string) error
}

// RepositoryService creates process instances.
type RepositoryService interface {
	// CreateProcessInstance instantiates the definition registered under
	// definitionType and returns an instance occupying only Start.
	CreateProcessInstance(ctx context.Context, definitionType string) (*ProcessInstance, error)

	// GetProcessInstance is reserved for a persistent repository. The
	// in-process engine returns ErrNotSupported.
	GetProcessInstance(ctx context.Context, id string) (*ProcessInstance, error)
}

// Engine bundles definition registration with the execution and repository
// services.
type Engine interface {
	ExecutionService
	RepositoryService

	// RegisterWorkflow registers a definition by type name. Registering the
	// same type twice returns ErrDefinitionAlreadyRegistered.
	RegisterWorkflow(def Definition) error
}
