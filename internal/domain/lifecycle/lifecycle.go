// Package lifecycle holds shared constants for application startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle hooks such as database pings and server
// shutdown during Fx start and stop.
const DefaultTimeout = 10 * time.Second
