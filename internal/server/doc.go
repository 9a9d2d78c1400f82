// Package server runs the web front end: the HTTP listener and the
// background workers, with graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server
