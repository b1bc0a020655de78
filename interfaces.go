package casstest

import "context"

// Controller starts and stops instances by client port. *Provisioner
// implements it; code that drives instances can accept a Controller so that
// tests can substitute a fake.
//
// Callers must pair every successful Start with a Stop on the same port.
// The server outlives the calling process otherwise.
type Controller interface {
	// Start provisions and launches an instance on port. It returns once
	// the launcher has returned, not once the server accepts connections.
	Start(ctx context.Context, port int) (*Instance, error)

	// Stop kills the instance on port and removes its working directory.
	// Returns ErrNotFound if nothing was started on port.
	Stop(ctx context.Context, port int) error
}
