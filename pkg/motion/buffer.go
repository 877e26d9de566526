package motion

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// DefaultBufferSize is the planner ring capacity used when none is given.
const DefaultBufferSize = 128

// noBusyBlock is published while the consumer is between blocks.
const noBusyBlock int32 = -1

// PlannerBuffer is a fixed-capacity single-producer single-consumer ring
// of planner blocks.
//
// Three cursors walk the ring, each modulo the capacity:
//
//  1. currentIndex is the oldest block still executing or about to
//     execute. Written by the consumer, read by the planner.
//  2. scheduleIndex is the next block the consumer will load. Written by
//     the consumer, read by the planner.
//  3. writeIndex is the next free slot. Written by the planner, read by
//     the consumer.
//
// Read against the monotonic stream of written blocks the cursors obey
// currentIndex <= scheduleIndex <= writeIndex. The ring is empty when
// writeIndex == currentIndex and full when advancing writeIndex would
// collide with currentIndex.
//
// Every write of a block's payload happens-before the release store that
// advances writeIndex; the consumer acquires writeIndex before touching a
// block. The consumer additionally publishes the index of the block it is
// executing through a separate atomic, which the planner reads with
// acquire order before mutating any block (see IsBlockBusy).
type PlannerBuffer struct {
	blocks   []PlannerBlock
	capacity int32

	currentIndex  atomix.Int32 // consumer-owned
	scheduleIndex atomix.Int32 // consumer-owned
	writeIndex    atomix.Int32 // producer-owned
	busyIndex     atomix.Int32 // consumer-published, noBusyBlock when idle
}

// NewPlannerBuffer creates an empty ring with the given capacity.
// Capacities below 2 fall back to DefaultBufferSize.
func NewPlannerBuffer(capacity int) *PlannerBuffer {
	if capacity < 2 {
		capacity = DefaultBufferSize
	}
	b := &PlannerBuffer{
		blocks:   make([]PlannerBlock, capacity),
		capacity: int32(capacity),
	}
	b.busyIndex.StoreRelease(noBusyBlock)
	return b
}

// Cap returns the ring capacity.
func (b *PlannerBuffer) Cap() int { return int(b.capacity) }

// Block returns the block stored at index.
func (b *PlannerBuffer) Block(index int32) *PlannerBlock {
	return &b.blocks[index]
}

func (b *PlannerBuffer) nextIndex(index int32) int32 {
	return (index + 1) % b.capacity
}

func (b *PlannerBuffer) prevIndex(index int32) int32 {
	return (index + b.capacity - 1) % b.capacity
}

// WriteIndex returns the producer cursor.
func (b *PlannerBuffer) WriteIndex() int32 {
	return b.writeIndex.LoadAcquire()
}

// ScheduleIndex returns the consumer's schedule cursor.
func (b *PlannerBuffer) ScheduleIndex() int32 {
	return b.scheduleIndex.LoadAcquire()
}

// CurrentIndex returns the consumer's retire cursor.
func (b *PlannerBuffer) CurrentIndex() int32 {
	return b.currentIndex.LoadAcquire()
}

// LastWriteIndex returns the slot of the most recently committed block.
func (b *PlannerBuffer) LastWriteIndex() int32 {
	return b.prevIndex(b.writeIndex.LoadRelaxed())
}

// Empty reports whether no committed block remains unretired.
func (b *PlannerBuffer) Empty() bool {
	return b.writeIndex.LoadAcquire() == b.currentIndex.LoadAcquire()
}

// Full reports whether committing one more block would collide with the
// consumer's retire cursor.
func (b *PlannerBuffer) Full() bool {
	next := b.nextIndex(b.writeIndex.LoadRelaxed())
	return next == b.currentIndex.LoadAcquire()
}

// Depth returns the number of committed, unretired blocks.
func (b *PlannerBuffer) Depth() int {
	w := b.writeIndex.LoadAcquire()
	c := b.currentIndex.LoadAcquire()
	return int((w + b.capacity - c) % b.capacity)
}

// GrabWriteBlock returns the slot at writeIndex, spinning while the ring
// is full. Producer side only. The slot's previous contents are stale; the
// caller must fully repopulate it before CommitWrite.
func (b *PlannerBuffer) GrabWriteBlock() *PlannerBlock {
	sw := spin.Wait{}
	for b.Full() {
		sw.Once()
	}
	return &b.blocks[b.writeIndex.LoadRelaxed()]
}

// CommitWrite advances writeIndex by one slot with release order, making
// the block visible to the consumer. All payload stores must precede it.
func (b *PlannerBuffer) CommitWrite() {
	idx := b.writeIndex.LoadRelaxed()
	b.writeIndex.StoreRelease(b.nextIndex(idx))
}

// IsBlockBusy reports whether the consumer has begun executing the block
// at index. The planner calls this after setting the Recalculate flag and
// must not mutate the block if it returns true.
func (b *PlannerBuffer) IsBlockBusy(index int32) bool {
	return b.busyIndex.LoadAcquire() == index
}

// SetBusy publishes that the consumer is executing the block at index.
// Consumer side only.
func (b *PlannerBuffer) SetBusy(index int32) {
	b.busyIndex.StoreRelease(index)
}

// ClearBusy publishes that the consumer is between blocks. Consumer side
// only.
func (b *PlannerBuffer) ClearBusy() {
	b.busyIndex.StoreRelease(noBusyBlock)
}

// AdvanceSchedule moves the schedule cursor past one loaded block.
// Consumer side only.
func (b *PlannerBuffer) AdvanceSchedule() {
	idx := b.scheduleIndex.LoadRelaxed()
	b.scheduleIndex.StoreRelease(b.nextIndex(idx))
}

// AdvanceCurrent retires one executed block. Consumer side only.
func (b *PlannerBuffer) AdvanceCurrent() {
	idx := b.currentIndex.LoadRelaxed()
	b.currentIndex.StoreRelease(b.nextIndex(idx))
}

// consumerBusy reports whether the consumer currently publishes any block
// as executing.
func (b *PlannerBuffer) consumerBusy() bool {
	return b.busyIndex.LoadAcquire() != noBusyBlock
}

// distanceToWrite returns how many slots lie between index and the write
// cursor, walking forward around the ring. Larger means further behind.
func (b *PlannerBuffer) distanceToWrite(index int32) int32 {
	w := b.writeIndex.LoadRelaxed()
	return (w + b.capacity - index) % b.capacity
}

// reset rewinds all cursors to slot zero. Only safe with a quiesced
// consumer; see Planner.Reset.
func (b *PlannerBuffer) reset() {
	b.currentIndex.StoreRelease(0)
	b.scheduleIndex.StoreRelease(0)
	b.writeIndex.StoreRelease(0)
	b.busyIndex.StoreRelease(noBusyBlock)
}
