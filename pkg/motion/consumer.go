package motion

import "code.hybscloud.com/iox"

// Consumer-side convenience API for in-process consumers that do not run
// a full step generator. These helpers drive both consumer cursors
// (schedule and current) at once: a popped block is loaded and retired in
// the same call. The busy index is not published.
//
// The returned pointer stays valid until the producer reuses the slot,
// which cannot happen before another Cap()-1 blocks are planned; copy the
// fields out before letting the producer run that far.

// PeekFront returns the oldest unretired block without consuming it, or
// nil when the plan is empty.
func (p *Planner) PeekFront() *PlannerBlock {
	if p.buffer.Empty() {
		return nil
	}
	return p.buffer.Block(p.buffer.CurrentIndex())
}

// PopFront consumes and returns the oldest unretired block, or nil when
// the plan is empty.
func (p *Planner) PopFront() *PlannerBlock {
	block, err := p.TryPop()
	if err != nil {
		return nil
	}
	return block
}

// TryPop consumes the oldest unretired block without blocking. Returns
// iox.ErrWouldBlock when the plan is empty.
func (p *Planner) TryPop() (*PlannerBlock, error) {
	b := p.buffer
	if b.Empty() {
		return nil, iox.ErrWouldBlock
	}
	index := b.CurrentIndex()
	block := b.Block(index)
	if b.ScheduleIndex() == index {
		b.AdvanceSchedule()
	}
	b.AdvanceCurrent()
	return block, nil
}
