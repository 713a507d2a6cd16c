// Package delivery defines the contract every transport entry point
// implements so main can start them uniformly.
package delivery

import "context"

// Delivery is a transport server (HTTP, worker, ...) started by main.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
