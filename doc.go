// Package flowlight provides a small, embeddable multi-state workflow engine
// for Go.
//
// A process instance can occupy several states at once. Named transitions move
// it between states; one name may fan out into parallel branches (AND-split),
// and post-transition processors re-join them (AND-join). Everything runs
// in-process on the caller's goroutine, with no persistence of instances.
//
// # Core Concepts
//
//  1. WorkflowState: an interned (kind, attribute) pair. Start and Completed
//     are the implicit entry and exit states.
//  2. DefinitionBuilder: declares the transitions and post-transition
//     processors of a definition type.
//  3. Engine: registers definitions, creates instances through its
//     RepositoryService and drives them through its ExecutionService.
//  4. ProcessInstance: the active-state set plus a key/value WorkflowContext
//     for handlers.
//  5. LocalRunner: an asynchronous front end that serializes requests per
//     instance.
//
// # Defining a workflow
//
//	const (
//	    WorkingA flowlight.StateKind = "WorkingA"
//	    WorkingB flowlight.StateKind = "WorkingB"
//	    Working  flowlight.StateKind = "Working"
//	)
//
//	flowlight.New("Branched").
//	    FromStart("Start", WorkingA, noop).
//	    FromStart("Start", WorkingB, noop).
//	    Join("join", Working, WorkingA, WorkingB).
//	    ToCompleted("Stop", Working, noop).
//	    MustRegister(eng)
//
// Executing "Start" on a fresh instance leaves it in {WorkingA, WorkingB}.
// The join processor runs after every committed branch and replaces both
// states with Working once they are active together.
//
// # Execution
//
// Execute looks up every transition registered under the name, groups them by
// from-state and processes the groups in declaration order. For each group
// the handlers run first, then the from-state is swapped for the group's
// to-states, then every post-transition processor runs. Any failure stops the
// call; groups already committed stay committed.
//
// Transitions in which one to-state is reached from two different from-states
// are rejected with ErrInvalidTransitionDefinition. Such merges must be
// written as post-transition processors.
//
// # History
//
// NewHistoryObserver records execution callbacks into an EventStore. Stores
// exist for memory, SQLite (modernc.org/sqlite), PostgreSQL
// (github.com/jackc/pgx/v5/stdlib), Redis and MongoDB.
package flowlight
