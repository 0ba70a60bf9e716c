// Package timeouts defines the timeout constants shared by the commands.
package timeouts

import "time"

// TelemetryShutdown limits how long pending spans may take to flush when a
// command exits.
const TelemetryShutdown = 5 * time.Second
