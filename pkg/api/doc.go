// Package api contains the core types of the flowlight workflow engine:
// interned workflow states, transition and post-transition descriptors,
// definitions and metadata providers, process instances and the
// TransitionState primitive that mutates their active-state sets.
//
// Most users interact with the higher-level flowlight package, which
// re-exports these types. The api package is intended for custom metadata
// providers, observers and runners.
//
// # States
//
// WorkflowState values are flyweights. OfType and OfTypeWithAttribute return
// the same pointer for the same (kind, attribute) pair for the lifetime of the
// process, so states can be compared with == and used as map keys.
//
// # Errors
//
// Definition problems are reported as *DefinitionError and match
// ErrInvalidDefinition with errors.Is. Handler failures are wrapped in
// *ExecutionError. State-set violations are reported as *TransitionError
// wrapping ErrStateNotActive or ErrDuplicateFromStates. Errors returned by
// post-transition processors are passed through unchanged.
//
// # Observability
//
// The Observer interface receives lifecycle callbacks from the execution
// service. LoggingObserver writes them with log/slog, BasicMetrics counts
// them, and NewCompositeObserver fans them out.
package api
