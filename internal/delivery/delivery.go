// Package delivery defines the contract for transport servers.
package delivery

import "context"

// Delivery is a long-running transport server. Serve blocks until the
// server stops; shutdown happens through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
