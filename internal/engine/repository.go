package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/petrijr/flowlight/pkg/api"
)

// repositoryService creates process instances from registered definitions.
// It keeps no reference to the instances it creates.
type repositoryService struct {
	definitions *definitionRegistry

	// external is set when transitions come from a caller-supplied
	// MetadataProvider. Unregistered types are then bound to a bare
	// NamedDefinition instead of failing.
	external bool
}

var _ api.RepositoryService = (*repositoryService)(nil)

func (r *repositoryService) CreateProcessInstance(ctx context.Context, definitionType string) (*api.ProcessInstance, error) {
	if definitionType == "" {
		return nil, fmt.Errorf("%w: definition type is required", api.ErrInvalidArgument)
	}

	def, err := r.definitions.Get(definitionType)
	if err != nil {
		if r.external && errors.Is(err, api.ErrDefinitionNotFound) {
			return api.NewProcessInstance("", definitionType, nil), nil
		}
		return nil, err
	}
	return api.NewProcessInstance("", def.Type, def.NewDefinitionValue()), nil
}

func (r *repositoryService) GetProcessInstance(ctx context.Context, id string) (*api.ProcessInstance, error) {
	return nil, fmt.Errorf("get process instance %s: %w", id, api.ErrNotSupported)
}
