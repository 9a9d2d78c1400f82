package server

// Server is the lifecycle of the web front end process: the HTTP listener
// and the background workers that keep session caches small.
type Server interface {
	// RunServer starts the workers and the listener and blocks until an
	// interrupt or termination signal arrives.
	RunServer()

	// Shutdown stops the listener, then the workers.
	Shutdown()
}
