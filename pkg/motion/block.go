package motion

import "code.hybscloud.com/atomix"

// Block status bits. Packed into one atomic word so the planner and the
// step generator agree on a block's readiness without locking.
const (
	// statusNominalLength marks a block long enough to fully de/accelerate
	// between nominal speed and zero within its length. Sticky once set.
	statusNominalLength int32 = 1 << 0

	// statusRecalculate marks a block whose kinematic parameters are in
	// flux. The consumer must not load a block while this bit is set.
	statusRecalculate int32 = 1 << 1
)

// PlannerBlock is one planned segment of motion with a trapezoidal
// (accelerate / cruise / decelerate) speed profile.
//
// The status word is the only field with concurrent readers and writers:
// the planner writes it with release order and the consumer reads it with
// acquire order, so the Recalculate bit acts as a readiness latch over the
// kinematic and trapezoid fields.
type PlannerBlock struct {
	status atomix.Int32

	// Geometry, written once by the producer.
	Millimeters    float32 // total travel of this block in mm
	TargetPosition VectorI // absolute step count along each axis
	Direction      uint16  // bit i set iff axis i moves negative
	TotalStepCount uint32  // step events of the dominant axis

	// Kinematics, written by the producer and refined by Recalculate.
	Acceleration        float32 // mm/s^2, axis-limited for this direction
	NominalSpeed        float32 // mm/s, the fastest allowed rate
	NominalSpeedSqr     float32 // (mm/s)^2
	EntrySpeedSqr       float32 // entry speed at the previous junction, (mm/s)^2
	MaxJunctionSpeedSqr float32 // max allowable junction entry speed, (mm/s)^2

	// Trapezoid parameters consumed by the step generator.
	AccelerateUntilStep     uint32 // step index where acceleration stops
	DecelerateAfterStep     uint32 // step index where deceleration starts
	NominalRate             uint32 // steps/s
	InitialRate             uint32 // steps/s at block entry
	CruiseRate              uint32 // steps/s on the plateau (or peak)
	FinalRate               uint32 // steps/s at block exit
	AccelerationStepsPerS2  uint32 // steps/s^2
	AccelerationTime        uint32 // stepper timer ticks
	DecelerationTime        uint32 // stepper timer ticks
	AccelerationTimeInverse uint32 // 2^32 / AccelerationTime
	DecelerationTimeInverse uint32 // 2^32 / DecelerationTime
}

// NominalLength reports whether the block always reaches its maximum
// junction speed regardless of entry and exit speeds.
func (b *PlannerBlock) NominalLength() bool {
	return b.status.LoadAcquire()&statusNominalLength != 0
}

// Recalculate reports whether the block's parameters are being rewritten.
// Consumers must not load the block while this returns true.
func (b *PlannerBlock) Recalculate() bool {
	return b.status.LoadAcquire()&statusRecalculate != 0
}

// The status word has a single writer (the planner task), so a plain
// load-modify-store with release ordering on the store is sufficient.

func (b *PlannerBlock) setNominalLength(value bool) {
	s := b.status.LoadRelaxed()
	if value {
		s |= statusNominalLength
	} else {
		s &^= statusNominalLength
	}
	b.status.StoreRelease(s)
}

func (b *PlannerBlock) setRecalculate(value bool) {
	s := b.status.LoadRelaxed()
	if value {
		s |= statusRecalculate
	} else {
		s &^= statusRecalculate
	}
	b.status.StoreRelease(s)
}

func (b *PlannerBlock) resetStatus() {
	b.status.StoreRelease(0)
}
