package diagnostic

import (
	"slices"

	"github.com/google/uuid"
)

// FlowStatus is the result of processing one flow.
type FlowStatus string

const (
	FlowGenerated FlowStatus = "generated"
	FlowFailed    FlowStatus = "failed"
)

// FlowResult records what happened to a single flow.
type FlowResult struct {
	Flow   string
	Status FlowStatus
	// Files lists artifacts written for the flow, if any.
	Files []string
}

// Outcome is the result of one top-level invocation.
// It is created fresh per run and accrues monotonically.
type Outcome struct {
	RunID uuid.UUID
	Diagnostics
	Flows []FlowResult
}

// NewOutcome creates an empty outcome with a new run identifier.
func NewOutcome() *Outcome {
	return &Outcome{RunID: uuid.New()}
}

// HasError reports whether any error was recorded during the run.
func (o *Outcome) HasError() bool {
	return o.HasErrors()
}

// HasWarning reports whether any warning was recorded during the run.
func (o *Outcome) HasWarning() bool {
	return o.HasWarnings()
}

// AddFlow records the result of a processed flow.
func (o *Outcome) AddFlow(res FlowResult) {
	o.Flows = append(o.Flows, res)
}

// FlowsWith returns the names of flows with the given status, in processing order.
func (o *Outcome) FlowsWith(status FlowStatus) []string {
	var names []string

	for _, f := range o.Flows {
		if f.Status == status {
			names = append(names, f.Flow)
		}
	}

	return names
}

// Failed reports whether the named flow was marked as failed.
func (o *Outcome) Failed(flow string) bool {
	return slices.Contains(o.FlowsWith(FlowFailed), flow)
}
