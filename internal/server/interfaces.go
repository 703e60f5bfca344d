package server

// Server is the lifecycle of the document server.
type Server interface {
	// RunServer serves until the server is shut down and returns then.
	RunServer()

	// Shutdown stops accepting requests and waits for in-flight ones.
	Shutdown()
}
