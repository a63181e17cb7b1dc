// Package telemetry carries the ambient, non-simulation concerns a run
// needs: a unique run identifier, host resource usage at completion, and
// guaranteed cleanup regardless of how the process exits.
package telemetry

import "github.com/rs/xid"

// NewRunID returns a globally unique, sortable identifier for one
// invocation of the simulator, used to tag stderr telemetry and
// --record rows.
func NewRunID() string {
	return xid.New().String()
}
