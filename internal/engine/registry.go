package engine

import (
	"fmt"
	"sync"

	"github.com/petrijr/flowlight/pkg/api"
)

// definitionRegistry holds registered definitions by type name. It doubles as
// the engine's default MetadataProvider.
type definitionRegistry struct {
	mu     sync.RWMutex
	byType map[string]api.Definition
}

func newDefinitionRegistry() *definitionRegistry {
	return &definitionRegistry{
		byType: make(map[string]api.Definition),
	}
}

var _ api.MetadataProvider = (*definitionRegistry)(nil)

func (r *definitionRegistry) Register(def api.Definition) error {
	if def.Type == "" {
		return fmt.Errorf("%w: definition type is required", api.ErrInvalidArgument)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byType[def.Type]; exists {
		return fmt.Errorf("%w: %q", api.ErrDefinitionAlreadyRegistered, def.Type)
	}

	r.byType[def.Type] = def
	return nil
}

func (r *definitionRegistry) Get(definitionType string) (api.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.byType[definitionType]
	if !ok {
		return api.Definition{}, fmt.Errorf("%w: %q", api.ErrDefinitionNotFound, definitionType)
	}
	return def, nil
}

func (r *definitionRegistry) WorkflowMetadata(definitionType string) (api.DefinitionMetadata, error) {
	def, err := r.Get(definitionType)
	if err != nil {
		return api.DefinitionMetadata{}, err
	}
	return def.Metadata(), nil
}
