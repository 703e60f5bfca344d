// Package server runs the document server's HTTP transport.
//
// It handles startup, signal handling, and graceful shutdown: on SIGINT,
// SIGTERM or SIGQUIT in-flight requests are drained before the process
// exits.
package server
