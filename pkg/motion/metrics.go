package motion

import "fluidcnc-go-migration/pkg/metrics"

// PlannerMetrics holds the planner's instrumentation. All fields are
// registered counters and gauges; collection is disabled entirely when no
// PlannerMetrics is attached so the hot path stays allocation-free.
type PlannerMetrics struct {
	BlocksPlanned *metrics.Counter
	ZeroMoves     *metrics.Counter
	RecalcPasses  *metrics.Counter
	BusyRaces     *metrics.Counter
	BufferDepth   *metrics.Gauge
}

// NewPlannerMetrics registers the planner metrics on the given registry.
func NewPlannerMetrics(reg *metrics.Registry) *PlannerMetrics {
	return &PlannerMetrics{
		BlocksPlanned: reg.NewCounter("planner_blocks_planned_total", "Motion blocks accepted by the planner"),
		ZeroMoves:     reg.NewCounter("planner_zero_moves_total", "Moves ignored because no axis stepped"),
		RecalcPasses:  reg.NewCounter("planner_recalculate_total", "Plan optimization passes"),
		BusyRaces:     reg.NewCounter("planner_busy_races_total", "Block mutations suppressed by the consumer"),
		BufferDepth:   reg.NewGauge("planner_buffer_depth", "Planned blocks awaiting execution"),
	}
}
