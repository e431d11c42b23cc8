package flowlight

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petrijr/flowlight/internal/engine"
	"github.com/petrijr/flowlight/internal/persistence"
	"github.com/petrijr/flowlight/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Engine                = api.Engine
	ExecutionService      = api.ExecutionService
	RepositoryService     = api.RepositoryService
	Definition            = api.Definition
	DefinitionFactory     = api.DefinitionFactory
	DefinitionMetadata    = api.DefinitionMetadata
	MetadataProvider      = api.MetadataProvider
	MetadataProviderFunc  = api.MetadataProviderFunc
	WorkflowDefinition    = api.WorkflowDefinition
	NamedDefinition       = api.NamedDefinition
	ProcessInstance       = api.ProcessInstance
	WorkflowContext       = api.WorkflowContext
	WorkflowState         = api.WorkflowState
	StateKind             = api.StateKind
	StateAttribute        = api.StateAttribute
	WorkflowTransition    = api.WorkflowTransition
	TransitionType        = api.TransitionType
	PostTransitProcessor  = api.PostTransitProcessor
	HandlerFunc           = api.HandlerFunc
	DefinitionError       = api.DefinitionError
	TransitionError       = api.TransitionError
	ExecutionError        = api.ExecutionError
	TransitionEvent       = api.TransitionEvent
	EventType             = api.EventType
	Observer              = api.Observer
	LoggingObserver       = api.LoggingObserver
	BasicMetrics          = api.BasicMetrics
	BasicMetricsSnapshot  = api.BasicMetricsSnapshot
	CompositeObserver     = api.CompositeObserver
	NoopObserver          = api.NoopObserver
	EventStore            = persistence.EventStore
	HistoryReader         = api.HistoryReader
	AsyncExecutor         = api.AsyncExecutor
	HistoryObserver       = persistence.HistoryObserver
	InMemoryEventStore    = persistence.InMemoryEventStore
	SQLiteEventStore      = persistence.SQLiteEventStore
	RedisEventStore       = persistence.RedisEventStore
	PostgresEventStore    = persistence.PostgresEventStore
	MongoEventStore       = persistence.MongoEventStore
)

// Re-export common helpers.

var (
	OfType               = api.OfType
	OfTypeWithAttribute  = api.OfTypeWithAttribute
	OfTypes              = api.OfTypes
	TransitionState      = api.TransitionState
	NewProcessInstance   = api.NewProcessInstance
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
	IsDefinitionError    = api.IsDefinitionError
)

// Re-export well-known states, kinds and transition types.

var (
	Start     = api.Start
	Completed = api.Completed
)

const (
	KindStart     = api.KindStart
	KindCompleted = api.KindCompleted

	AttributeNormal = api.AttributeNormal

	TransitionNormal      = api.TransitionNormal
	TransitionFromStart   = api.TransitionFromStart
	TransitionToCompleted = api.TransitionToCompleted
)

// Re-export sentinel errors.

var (
	ErrInvalidArgument             = api.ErrInvalidArgument
	ErrInvalidDefinition           = api.ErrInvalidDefinition
	ErrInvalidTransitionDefinition = api.ErrInvalidTransitionDefinition
	ErrTransitionNotFound          = api.ErrTransitionNotFound
	ErrDefinitionNotFound          = api.ErrDefinitionNotFound
	ErrDefinitionAlreadyRegistered = api.ErrDefinitionAlreadyRegistered
	ErrStateNotActive              = api.ErrStateNotActive
	ErrDuplicateFromStates         = api.ErrDuplicateFromStates
	ErrNotSupported                = api.ErrNotSupported
)

// Engine constructors
// These wrap the internal/engine package so external callers
// never need to import internal packages.

// NewEngine returns an Engine whose transitions come from the definitions
// passed to RegisterWorkflow.
func NewEngine() Engine {
	return engine.NewInMemoryEngine()
}

// NewEngineWithObserver returns an Engine reporting execution callbacks to
// obs.
func NewEngineWithObserver(obs Observer) Engine {
	return engine.NewInMemoryEngineWithObserver(obs)
}

// NewEngineWithProvider returns an Engine whose transitions come from an
// external metadata provider. Definitions registered on it still supply
// factories for CreateProcessInstance.
func NewEngineWithProvider(provider MetadataProvider, obs Observer) Engine {
	return engine.NewEngineWithConfig(engine.Config{
		Provider: provider,
		Observer: obs,
	})
}

// History constructors.

// NewInMemoryEventStore returns a non-durable EventStore.
func NewInMemoryEventStore() *InMemoryEventStore {
	return persistence.NewInMemoryEventStore()
}

// NewSQLiteEventStore returns an EventStore that keeps transition history in
// a SQLite database. The caller imports the driver, e.g. modernc.org/sqlite.
func NewSQLiteEventStore(db *sql.DB) (*SQLiteEventStore, error) {
	return persistence.NewSQLiteEventStore(db)
}

// NewRedisEventStore returns an EventStore that keeps transition history in
// Redis under the given key prefix.
func NewRedisEventStore(client *redis.Client, prefix string) *RedisEventStore {
	return persistence.NewRedisEventStore(client, prefix)
}

// NewPostgresEventStore returns an EventStore that keeps transition history
// in PostgreSQL. The caller imports the driver, e.g.
// github.com/jackc/pgx/v5/stdlib.
func NewPostgresEventStore(ctx context.Context, db *sql.DB) (*PostgresEventStore, error) {
	return persistence.NewPostgresEventStore(ctx, db)
}

// NewMongoEventStore returns an EventStore that keeps transition history in a
// MongoDB collection. Empty names select "flowlight" and "transition_events".
func NewMongoEventStore(ctx context.Context, client *mongo.Client, dbName, collName string) (*MongoEventStore, error) {
	return persistence.NewMongoEventStore(ctx, client, dbName, collName)
}

// NewHistoryObserver returns an Observer that records every execution
// callback into store. Append failures are logged to logger.
func NewHistoryObserver(store EventStore, logger *slog.Logger) *HistoryObserver {
	return persistence.NewHistoryObserver(store, logger)
}

// Convenience helpers that just forward to the underlying Engine.

// CreateProcessInstance creates an instance of a registered definition.
func CreateProcessInstance(ctx context.Context, eng Engine, definitionType string) (*ProcessInstance, error) {
	return eng.CreateProcessInstance(ctx, definitionType)
}

// Execute performs a named transition on inst.
func Execute(ctx context.Context, eng Engine, inst *ProcessInstance, transitionName string) error {
	return eng.Execute(ctx, inst, transitionName)
}

// ContextValue returns the value stored under key in inst's context bag,
// converted to T.
func ContextValue[T any](inst *ProcessInstance, key string) (T, bool) {
	return api.ContextValue[T](inst.Context(), key)
}
