// Package lifecycle holds shared constants for component startup and
// shutdown handling.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup and shutdown operations.
const DefaultTimeout = 30 * time.Second
