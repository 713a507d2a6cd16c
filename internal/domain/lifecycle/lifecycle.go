// Package lifecycle holds shared constants for application start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds how long a single lifecycle hook may take.
const DefaultTimeout = 15 * time.Second
