package api

// TransitionRequestPayload is the payload of an "execute-transition" task
// placed on a task queue. It lives here so both the worker and the queue can
// depend on it without an import cycle.
type TransitionRequestPayload struct {
	Instance   *ProcessInstance
	Transition string

	// Result, when non-nil, receives the outcome of Execute. It must be
	// buffered so the worker never blocks on it.
	Result chan error
}
