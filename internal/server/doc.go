// Package server runs the blob relay's HTTP server: startup, signal
// handling and graceful shutdown.
package server
