package server

// Server is the lifecycle contract of the relay server.
type Server interface {
	// RunServer serves requests and blocks until a termination signal
	// arrives or the listener fails.
	RunServer()

	// Shutdown gracefully stops the server.
	Shutdown()
}
