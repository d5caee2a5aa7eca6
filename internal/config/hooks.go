package config

import "log/slog"

// Lifecycle hook signatures. The server runtime passes its own arbiter,
// worker, and request objects; hooks that need more than identity should
// type-assert against the runtime's concrete types.
type (
	// ServerHook is called with the master server instance.
	ServerHook func(server any)

	// ServerWorkerHook is called with the master server and one worker.
	ServerWorkerHook func(server, worker any)

	// RequestHook is called with a worker and the request it is about
	// to handle (or just handled).
	RequestHook func(worker, req any)
)

// Request is the minimal request surface the default pre_request hook
// reports on.
type Request interface {
	Method() string
	Path() string
}

func defaultWhenReady(server any) {}

func defaultPreFork(server, worker any) {}

func defaultPostFork(server, worker any) {}

func defaultPreExec(server any) {}

func defaultPreRequest(worker, req any) {
	if r, ok := req.(Request); ok {
		slog.Debug("handling request", "method", r.Method(), "path", r.Path())
	}
}

func defaultPostRequest(worker, req any) {}

func defaultWorkerExit(server, worker any) {}
