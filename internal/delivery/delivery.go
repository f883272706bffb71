// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running transport such as an HTTP server. Serve blocks
// until the context is cancelled or the transport fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
