// Simulated step generator
//
// Drains the planner's block ring exactly the way the real-time step
// generator does: acquire the write cursor, refuse blocks whose
// parameters are in flux, publish the busy index, read the trapezoid
// fields as a coherent group, then advance the schedule and retire
// cursors. Instead of emitting step pulses it integrates the trapezoid
// into a per-block execution summary, so the planner can be driven and
// observed without hardware.

package stepgen

import (
	"context"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"

	"fluidcnc-go-migration/pkg/log"
	"fluidcnc-go-migration/pkg/motion"
)

// BlockSummary describes one executed block.
type BlockSummary struct {
	Index           int32
	Millimeters     float32
	Direction       uint16
	TotalSteps      uint32
	InitialRate     uint32
	CruiseRate      uint32
	FinalRate       uint32
	AccelerateUntil uint32
	DecelerateAfter uint32

	// Duration is the integrated execution time of the trapezoid.
	Duration time.Duration
}

// Stats aggregates execution totals.
type Stats struct {
	BlocksExecuted uint64
	StepsExecuted  uint64
	MotionTime     time.Duration
}

// Generator consumes planner blocks from the ring.
type Generator struct {
	buffer *motion.PlannerBuffer
	logger *log.Logger

	// OnBlock, when set, is called with every executed block's summary.
	// Must be set before Run starts.
	OnBlock func(BlockSummary)

	// TimeScale paces execution in wall-clock time: 1.0 runs blocks at
	// their planned duration, 0 runs as fast as possible.
	TimeScale float64

	mu    sync.Mutex
	stats Stats
}

// New creates a generator draining the given ring.
func New(buffer *motion.PlannerBuffer) *Generator {
	return &Generator{
		buffer: buffer,
		logger: log.GetLogger("stepgen"),
	}
}

// Stats returns a copy of the execution totals.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// Run consumes blocks until ctx is canceled. Single consumer only.
func (g *Generator) Run(ctx context.Context) {
	backoff := iox.Backoff{}
	for {
		if ctx.Err() != nil {
			return
		}

		block, index, ok := g.loadNext()
		if !ok {
			backoff.Wait()
			continue
		}
		backoff.Reset()

		summary := g.execute(block, index)

		g.buffer.AdvanceCurrent()
		g.buffer.ClearBusy()

		g.mu.Lock()
		g.stats.BlocksExecuted++
		g.stats.StepsExecuted += uint64(summary.TotalSteps)
		g.stats.MotionTime += summary.Duration
		g.mu.Unlock()

		if g.OnBlock != nil {
			g.OnBlock(summary)
		}
	}
}

// loadNext claims the next scheduled block. Returns false when no block
// is committed.
func (g *Generator) loadNext() (*motion.PlannerBlock, int32, bool) {
	index := g.buffer.ScheduleIndex()
	if index == g.buffer.WriteIndex() {
		return nil, 0, false
	}

	block := g.buffer.Block(index)

	// Publish the busy index before reading: the planner re-checks it
	// after setting the Recalculate flag and backs off a busy block.
	g.buffer.SetBusy(index)

	// If the planner won the race the flag is set; its parameters become
	// stable once the flag clears.
	sw := spin.Wait{}
	for block.Recalculate() {
		sw.Once()
	}

	g.buffer.AdvanceSchedule()
	return block, index, true
}

// execute integrates the trapezoid into an execution summary, optionally
// pacing it in wall-clock time.
func (g *Generator) execute(block *motion.PlannerBlock, index int32) BlockSummary {
	summary := BlockSummary{
		Index:           index,
		Millimeters:     block.Millimeters,
		Direction:       block.Direction,
		TotalSteps:      block.TotalStepCount,
		InitialRate:     block.InitialRate,
		CruiseRate:      block.CruiseRate,
		FinalRate:       block.FinalRate,
		AccelerateUntil: block.AccelerateUntilStep,
		DecelerateAfter: block.DecelerateAfterStep,
	}

	accel := float64(block.AccelerationStepsPerS2)
	seconds := 0.0
	if accel > 0 {
		seconds += rampSeconds(block.CruiseRate, block.InitialRate, accel)
		seconds += rampSeconds(block.CruiseRate, block.FinalRate, accel)
	}
	if block.CruiseRate > 0 {
		plateau := block.DecelerateAfterStep - block.AccelerateUntilStep
		seconds += float64(plateau) / float64(block.CruiseRate)
	}
	summary.Duration = time.Duration(seconds * float64(time.Second))

	if g.TimeScale > 0 {
		time.Sleep(time.Duration(seconds * g.TimeScale * float64(time.Second)))
	}

	g.logger.Debug("executed block %d: %d steps in %s (rates %d/%d/%d)",
		index, summary.TotalSteps, summary.Duration, summary.InitialRate, summary.CruiseRate, summary.FinalRate)
	return summary
}

// rampSeconds returns the time to change between two step rates at the
// given step acceleration. Rate floors can leave the entry rate above the
// cruise rate; such ramps take no time.
func rampSeconds(toRate, fromRate uint32, accel float64) float64 {
	if toRate <= fromRate {
		return 0
	}
	return float64(toRate-fromRate) / accel
}
