package build

import (
	"context"

	"rdv-generator/internal/model"
)

// FlowSink receives every flow that was built without table-level errors.
type FlowSink interface {
	// Export persists the flow and returns the paths written.
	Export(ctx context.Context, flow *model.FlowContext) ([]string, error)
}

// DiscardSink accepts flows without writing anything.
type DiscardSink struct{}

func (DiscardSink) Export(context.Context, *model.FlowContext) ([]string, error) {
	return nil, nil
}

// CollectSink keeps exported flows in memory.
type CollectSink struct {
	Flows []*model.FlowContext
}

func (c *CollectSink) Export(_ context.Context, flow *model.FlowContext) ([]string, error) {
	c.Flows = append(c.Flows, flow)
	return nil, nil
}
