// Package client implements the client application runtime.
//
// It ties the local collection stores, the server adapter, and the
// background synchronization workers into a single process lifecycle: start
// the change feed, reconcile once, keep reconciling on an interval, and shut
// everything down on exit.
package client
