// Package server wires and runs the application's HTTP transport.
//
// It owns server startup, OS signal handling, and graceful shutdown so the
// main package only has to construct the handler graph and call RunServer.
package server
