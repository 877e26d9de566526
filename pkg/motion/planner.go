// Motion planner: converts Cartesian target moves into a continuously
// refined queue of step-accurate trapezoidal motion blocks.
//
// The planner is the producer side of a lock-free single-producer
// single-consumer ring (PlannerBuffer). Each Add converts one move into a
// block, then re-optimizes the unexecuted tail of the queue so consecutive
// blocks chain at the maximum physically legal junction speeds.

package motion

import (
	"math"

	"fluidcnc-go-migration/pkg/errors"
	"fluidcnc-go-migration/pkg/log"
)

const (
	// MinimumPlannerSpeed is the speed every plan decelerates to at its
	// end, in mm/s. Entry speeds are seeded with its square.
	MinimumPlannerSpeed = 0.05

	// MinimumSpeedRate is the floor on a block's nominal speed in mm/s.
	MinimumSpeedRate = 1.0

	// MinimalStepRate is the floor on initial and final step rates in
	// steps/s. Below this the step timer would overflow.
	MinimalStepRate = 80

	// StepperTimerRate is the step timer tick frequency in Hz.
	StepperTimerRate = 20_000_000
)

// Planner owns the producer side of the block ring: it converts moves into
// blocks and keeps the queued plan optimal as new blocks arrive.
type Planner struct {
	buffer *PlannerBuffer

	previousUnitVector      VectorF
	lastPositionVector      VectorI
	previousNominalSpeed    float32
	previousNominalSpeedSqr float32

	// blockBufferOptimal marks the furthest-forward block whose entry
	// speed is provably optimal; blocks behind it never need another
	// reverse/forward pass.
	blockBufferOptimal int32

	logger  *log.Logger
	metrics *PlannerMetrics
}

// NewPlanner creates an empty planner with the given ring capacity.
// Capacities below 2 fall back to DefaultBufferSize.
func NewPlanner(capacity int) *Planner {
	return &Planner{
		buffer: NewPlannerBuffer(capacity),
		logger: log.GetLogger("planner"),
	}
}

// Buffer exposes the block ring for the step-generator consumer.
func (p *Planner) Buffer() *PlannerBuffer { return p.buffer }

// SetLogger replaces the planner's logger.
func (p *Planner) SetLogger(logger *log.Logger) { p.logger = logger }

// AttachMetrics enables metrics collection. A nil value disables it.
func (p *Planner) AttachMetrics(m *PlannerMetrics) { p.metrics = m }

// IsEmpty reports whether no planned block remains unretired.
func (p *Planner) IsEmpty() bool { return p.buffer.Empty() }

// Depth returns the number of planned, unretired blocks.
func (p *Planner) Depth() int { return p.buffer.Depth() }

// Position returns the absolute step position at the end of the last
// accepted move.
func (p *Planner) Position() VectorI { return p.lastPositionVector }

// Reset aborts all pending blocks and restarts the plan from rest at the
// given step position. The consumer must be quiesced before calling this;
// a block still published as executing fails with a PLANNER_STATE error
// and leaves the plan untouched.
func (p *Planner) Reset(position VectorI) error {
	if p.buffer.consumerBusy() {
		return errors.PlannerStateError("reset with a block still executing")
	}
	p.buffer.reset()
	p.blockBufferOptimal = 0
	p.previousUnitVector = VectorF{}
	p.previousNominalSpeed = 0
	p.previousNominalSpeedSqr = 0
	p.lastPositionVector = position
	return nil
}

// Add plans one move to the Cartesian target (mm, at least numberAxis
// entries) at the requested feed rate in mm/s. Rapids pass a huge feed
// rate; it is clamped to the axis-limited rate. Zero-step moves are
// ignored. Blocks while the ring is full.
func (p *Planner) Add(target []float32, feedRate float32, axes *Axes) {
	numberAxis := axes.NumberAxis
	block := p.buffer.GrabWriteBlock()

	var unitVector VectorF
	var stepsPerAxis [MaxAxis]int32
	directionVector := uint16(0)
	maxNumberSteps := int32(0)
	totalLengthSqr := float32(0)

	for i := 0; i < numberAxis; i++ {
		axis := &axes.Axis[i]

		block.TargetPosition[i] = int32(math.Round(float64(target[i] * axis.StepsPerMm)))
		deltaSteps := block.TargetPosition[i] - p.lastPositionVector[i]

		d := float32(deltaSteps) / axis.StepsPerMm
		totalLengthSqr += d * d
		unitVector[i] = float32(deltaSteps)

		if deltaSteps < 0 {
			directionVector |= 1 << i
			deltaSteps = -deltaSteps
		}
		if deltaSteps > maxNumberSteps {
			maxNumberSteps = deltaSteps
		}
		stepsPerAxis[i] = deltaSteps
	}

	// No-op?
	if maxNumberSteps == 0 {
		if p.metrics != nil {
			p.metrics.ZeroMoves.Inc()
		}
		return
	}

	unitVector.Normalize(numberAxis)
	lengthInMm := float32(math.Sqrt(float64(totalLengthSqr)))
	invLengthInMm := 1.0 / lengthInMm

	block.resetStatus()
	block.Direction = directionVector
	block.TotalStepCount = uint32(maxNumberSteps)
	block.Millimeters = lengthInMm

	// Nominal speed can never exceed the axis-limited rate, nor the
	// requested feed rate, and never drops below the speed floor.
	nominalSpeed := limitRateByAxes(unitVector, axes)
	if nominalSpeed > feedRate {
		nominalSpeed = feedRate
	}
	if nominalSpeed < MinimumSpeedRate {
		nominalSpeed = MinimumSpeedRate
	}
	block.NominalSpeed = nominalSpeed
	block.NominalSpeedSqr = nominalSpeed * nominalSpeed

	// Steps of the dominant axis per second at nominal speed.
	block.NominalRate = uint32(math.Ceil(float64(float32(block.TotalStepCount) * nominalSpeed * invLengthInMm)))

	// Acceleration for the trapezoid generator, limited per axis. Each
	// axis constrains the dominant-axis step acceleration in proportion
	// to its share of the move.
	acceleration := uint32(math.MaxUint32)
	for i := 0; i < numberAxis; i++ {
		if stepsPerAxis[i] == 0 {
			continue
		}
		axis := &axes.Axis[i]
		maxPossible := uint32(axis.Acceleration * axis.StepsPerMm * float32(block.TotalStepCount) / float32(stepsPerAxis[i]))
		if maxPossible < acceleration {
			acceleration = maxPossible
		}
	}
	block.AccelerationStepsPerS2 = acceleration
	block.Acceleration = float32(acceleration) * lengthInMm / float32(block.TotalStepCount)

	block.MaxJunctionSpeedSqr = p.junctionSpeedSqr(block, unitVector, numberAxis, axes)

	// Initialize block entry speed; the reverse pass grows it later.
	block.EntrySpeedSqr = MinimumPlannerSpeed * MinimumPlannerSpeed

	// A block that can fully de/accelerate between nominal speed and zero
	// within its own length always reaches its maximum junction speeds,
	// so both passes may skip it for speed-reduction checks.
	vAllowableSqr := MaxAllowableSpeedSqr(-block.Acceleration, MinimumPlannerSpeed*MinimumPlannerSpeed, block.Millimeters)
	if block.NominalSpeedSqr <= vAllowableSqr {
		block.setNominalLength(true)
	}
	block.setRecalculate(true)

	// Update previous info for the next Add call.
	p.previousUnitVector = unitVector
	p.lastPositionVector = block.TargetPosition
	p.previousNominalSpeed = nominalSpeed
	p.previousNominalSpeedSqr = block.NominalSpeedSqr

	p.buffer.CommitWrite()

	if p.metrics != nil {
		p.metrics.BlocksPlanned.Inc()
		p.metrics.BufferDepth.Set(float64(p.buffer.Depth()))
	}
	p.logger.Debug("planned block: %.3fmm %d steps nominal %.2fmm/s accel %.2fmm/s2",
		block.Millimeters, block.TotalStepCount, block.NominalSpeed, block.Acceleration)

	p.Recalculate()
}

// junctionSpeedSqr computes the maximum allowable entry speed at the
// junction between the previous move and this block, in (mm/s)^2.
//
// A circle tangent to both path segments models the cornering path; the
// junction deviation is the distance from the junction to the closest edge
// of that circle. Solving centripetal acceleration about the circle's
// radius gives a robust cornering speed without trig calls, using the half
// angle identity on the cosine of the junction angle.
func (p *Planner) junctionSpeedSqr(block *PlannerBlock, unitVector VectorF, numberAxis int, axes *Axes) float32 {
	const minimumSpeedSqr = MinimumPlannerSpeed * MinimumPlannerSpeed

	// First block, or the consumer drained the queue and the machine
	// stops at the end of the previous move: start from rest.
	if p.buffer.ScheduleIndex() == p.buffer.writeIndex.LoadRelaxed() || p.previousNominalSpeedSqr < 0.000001 {
		return minimumSpeedSqr
	}

	junctionCosTheta := float32(0)
	for i := 0; i < numberAxis; i++ {
		junctionCosTheta -= p.previousUnitVector[i] * unitVector[i]
	}

	var vMaxJunctionSqr float32
	if junctionCosTheta > 0.999999 {
		// A full reversal. Just set minimum junction speed.
		vMaxJunctionSqr = minimumSpeedSqr
	} else {
		if junctionCosTheta < -0.999999 {
			// Colinear; avoid the divide by zero below.
			junctionCosTheta = -0.999999
		}

		junctionUnitVector := unitVector.Sub(p.previousUnitVector)
		junctionUnitVector.Normalize(numberAxis)

		junctionAcceleration := limitAccelerationByAxes(junctionUnitVector, axes, block.Acceleration)
		sinThetaD2 := float32(math.Sqrt(float64(0.5 * (1.0 - junctionCosTheta))))

		vMaxJunctionSqr = junctionAcceleration * axes.JunctionDeviation * sinThetaD2 / (1.0 - sinThetaD2)

		// For small moves with a junction wider than 135 degrees, cap the
		// speed by an approximate arc through the corner.
		if block.Millimeters < 1 && junctionCosTheta < -0.7071067812 {
			neg := float32(1.0)
			if junctionCosTheta < 0 {
				neg = -1.0
			}

			// Polynomial asin approximation (max error 0.033 rad), so
			// acos(-t) = pi/2 + sign * asin(|t|).
			t := neg * junctionCosTheta
			asinx := 0.032843707 +
				t*(-1.451838349+
					t*(29.66153956+
						t*(-131.1123477+
							t*(262.8130562+
								t*(-242.7199627+
									t*84.31466202)))))
			junctionTheta := float32(math.Pi/2) + neg*asinx

			// junctionTheta bottoms out at 0.033 which avoids divide by 0.
			limitSqr := block.Millimeters * junctionAcceleration / junctionTheta
			if limitSqr < vMaxJunctionSqr {
				vMaxJunctionSqr = limitSqr
			}
		}
	}

	// The junction can never be faster than either adjoining block.
	if vMaxJunctionSqr > block.NominalSpeedSqr {
		vMaxJunctionSqr = block.NominalSpeedSqr
	}
	if vMaxJunctionSqr > p.previousNominalSpeedSqr {
		vMaxJunctionSqr = p.previousNominalSpeedSqr
	}
	return vMaxJunctionSqr
}

// limitRateByAxes returns the fastest speed in mm/s the move's direction
// permits, taking the slowest axis as the limit. Axis rates are configured
// in mm/min.
func limitRateByAxes(unitVector VectorF, axes *Axes) float32 {
	maxRate := float32(math.MaxFloat32)
	for i := 0; i < axes.NumberAxis; i++ {
		if unitVector[i] != 0 { // Avoid divide by zero.
			rate := float32(math.Abs(float64(axes.Axis[i].MaxRate / 60.0 / unitVector[i])))
			if rate < maxRate {
				maxRate = rate
			}
		}
	}
	return maxRate
}

// limitAccelerationByAxes returns the largest acceleration in mm/s^2 the
// given direction permits, starting from limit and taking the running
// minimum over the active axes.
func limitAccelerationByAxes(unitVector VectorF, axes *Axes, limit float32) float32 {
	maxAcceleration := limit
	for i := 0; i < axes.NumberAxis; i++ {
		if unitVector[i] != 0 { // Avoid divide by zero.
			accel := float32(math.Abs(float64(axes.Axis[i].Acceleration / unitVector[i])))
			if accel < maxAcceleration {
				maxAcceleration = accel
			}
		}
	}
	return maxAcceleration
}

// MaxAllowableSpeedSqr returns the squared speed reachable at the start of
// a move of the given distance that ends at targetSpeedSqr under the given
// acceleration. Decelerations pass a negative acceleration. Never returns
// a negative value.
func MaxAllowableSpeedSqr(acceleration, targetSpeedSqr, distance float32) float32 {
	v := targetSpeedSqr - 2*acceleration*distance
	if v < 0 {
		return 0
	}
	return v
}

// Recalculate re-optimizes the unexecuted tail of the plan: a reverse pass
// maximizes deceleration curves from the newest block backward, a forward
// pass corrects over-optimistic entry speeds, and finally every flagged
// block gets its trapezoid recomputed.
func (p *Planner) Recalculate() {
	// The consumer may have scheduled past the optimal-plan cursor; the
	// cursor must never trail into consumed territory.
	scheduleIndex := p.buffer.ScheduleIndex()
	if p.buffer.distanceToWrite(p.blockBufferOptimal) > p.buffer.distanceToWrite(scheduleIndex) {
		p.blockBufferOptimal = scheduleIndex
	}

	if p.buffer.LastWriteIndex() != p.blockBufferOptimal {
		p.reversePass()
		p.forwardPass()
	}
	p.recalculateTrapezoids()
	if p.metrics != nil {
		p.metrics.RecalcPasses.Inc()
	}
}

// reversePass coarsely maximizes all possible deceleration curves
// back-planning from the newest block. Stops at the optimal-plan boundary,
// following any advance of the schedule cursor the consumer made while the
// pass was running. The forward pass refines the result.
func (p *Planner) reversePass() {
	blockIndex := p.buffer.LastWriteIndex()
	plannedBlockIndex := p.blockBufferOptimal

	if plannedBlockIndex == p.buffer.writeIndex.LoadRelaxed() {
		return
	}

	var next *PlannerBlock
	for blockIndex != plannedBlockIndex {
		current := p.buffer.Block(blockIndex)
		p.reversePassKernel(current, next, blockIndex)
		next = current

		blockIndex = p.buffer.prevIndex(blockIndex)

		// The consumer may have advanced the schedule cursor while we
		// were planning. Never touch a block it already loaded.
		scheduleIndex := p.buffer.ScheduleIndex()
		for p.buffer.distanceToWrite(plannedBlockIndex) > p.buffer.distanceToWrite(scheduleIndex) {
			if blockIndex == plannedBlockIndex {
				return
			}
			plannedBlockIndex = p.buffer.nextIndex(plannedBlockIndex)
		}
	}
}

func (p *Planner) reversePassKernel(current, next *PlannerBlock, blockIndex int32) {
	// If the entry speed is already at its maximum and the next block's
	// speed did not change, the block is cruising and nothing changes.
	maxEntrySpeedSqr := current.MaxJunctionSpeedSqr
	if current.EntrySpeedSqr == maxEntrySpeedSqr && (next == nil || !next.Recalculate()) {
		return
	}

	exitSpeedSqr := float32(MinimumPlannerSpeed * MinimumPlannerSpeed)
	if next != nil {
		exitSpeedSqr = next.EntrySpeedSqr
	}

	// A nominal-length block always reaches its maximum junction speed.
	newEntrySpeedSqr := maxEntrySpeedSqr
	if !current.NominalLength() {
		allowable := MaxAllowableSpeedSqr(-current.Acceleration, exitSpeedSqr, current.Millimeters)
		if allowable < newEntrySpeedSqr {
			newEntrySpeedSqr = allowable
		}
	}

	if current.EntrySpeedSqr != newEntrySpeedSqr {
		// Mark the block first so the consumer does not load it while the
		// speed changes underneath it.
		current.setRecalculate(true)

		// The block may have become busy just before it was marked, so
		// re-check. A busy block belongs to the consumer.
		if p.buffer.IsBlockBusy(blockIndex) {
			current.setRecalculate(false)
			p.noteBusyRace()
		} else {
			current.EntrySpeedSqr = newEntrySpeedSqr
		}
	}
}

// forwardPass corrects entry speeds the reverse pass set too high for the
// acceleration actually reachable across the preceding blocks, and
// advances the optimal-plan boundary past blocks that can no longer
// improve.
func (p *Planner) forwardPass() {
	blockIndex := p.blockBufferOptimal

	var previous *PlannerBlock
	previousIndex := int32(0)
	for blockIndex != p.buffer.writeIndex.LoadRelaxed() {
		block := p.buffer.Block(blockIndex)

		// If the previous block became busy its exit speed is frozen, so
		// this block's entry speed cannot be altered either.
		if previous == nil || !p.buffer.IsBlockBusy(previousIndex) {
			p.forwardPassKernel(previous, block, blockIndex)
		}
		previous = block
		previousIndex = blockIndex

		blockIndex = p.buffer.nextIndex(blockIndex)
	}
}

func (p *Planner) forwardPassKernel(previous, current *PlannerBlock, blockIndex int32) {
	if previous != nil {
		// A previous block too short to complete its full speed change
		// caps how fast this block can be entered.
		if !previous.NominalLength() && previous.EntrySpeedSqr < current.EntrySpeedSqr {
			newEntrySpeedSqr := previous.EntrySpeedSqr + 2*previous.Acceleration*previous.Millimeters

			if newEntrySpeedSqr < current.EntrySpeedSqr {
				current.setRecalculate(true)

				if p.buffer.IsBlockBusy(blockIndex) {
					current.setRecalculate(false)
					p.noteBusyRace()
				} else {
					// The previous block is full-acceleration: nothing
					// before this point can improve any further.
					current.EntrySpeedSqr = newEntrySpeedSqr
					p.blockBufferOptimal = blockIndex
				}
			}
		}

		// A block at its maximum entry speed brackets an optimal plan;
		// everything behind it never needs recomputation again.
		if current.EntrySpeedSqr == current.MaxJunctionSpeedSqr {
			p.blockBufferOptimal = blockIndex
		}
	}
}

// recalculateTrapezoids walks the unconsumed range and recomputes the
// trapezoid of every block whose entry or exit junction speed changed. The
// newest block always decelerates to MinimumPlannerSpeed.
func (p *Planner) recalculateTrapezoids() {
	blockIndex := p.buffer.ScheduleIndex()
	headBlockIndex := p.buffer.writeIndex.LoadRelaxed()

	var block, next *PlannerBlock
	currentIndex := int32(0)
	currentEntrySpeed := float32(0)
	nextEntrySpeed := float32(0)

	for blockIndex != headBlockIndex {
		next = p.buffer.Block(blockIndex)
		nextEntrySpeed = float32(math.Sqrt(float64(next.EntrySpeedSqr)))

		if block != nil {
			if block.Recalculate() || next.Recalculate() {
				// Protect the block from the consumer while the
				// trapezoid fields are rewritten; the flag may not be
				// set yet when only the successor changed.
				block.setRecalculate(true)

				if p.buffer.IsBlockBusy(currentIndex) {
					p.noteBusyRace()
				} else {
					nomr := 1.0 / block.NominalSpeed
					p.calculateTrapezoidForBlock(block, currentEntrySpeed*nomr, nextEntrySpeed*nomr)
				}

				// Release the block to the consumer.
				block.setRecalculate(false)
			}
		}

		block = next
		currentIndex = blockIndex
		currentEntrySpeed = nextEntrySpeed

		blockIndex = p.buffer.nextIndex(blockIndex)
	}

	// The newest block always exits at MinimumPlannerSpeed and is always
	// recomputed.
	if next != nil {
		next.setRecalculate(true)

		if p.buffer.IsBlockBusy(p.buffer.LastWriteIndex()) {
			p.noteBusyRace()
		} else {
			nomr := 1.0 / next.NominalSpeed
			p.calculateTrapezoidForBlock(next, nextEntrySpeed*nomr, MinimumPlannerSpeed*nomr)
		}

		next.setRecalculate(false)
	}
}

// calculateTrapezoidForBlock computes the step-accurate trapezoid for a
// block given its entry and exit speeds as fractions of the nominal speed.
func (p *Planner) calculateTrapezoidForBlock(block *PlannerBlock, entryFactor, exitFactor float32) {
	initialRate := uint32(math.Ceil(float64(float32(block.NominalRate) * entryFactor)))
	finalRate := uint32(math.Ceil(float64(float32(block.NominalRate) * exitFactor)))

	// Limit minimal step rate; otherwise the step timer overflows.
	if initialRate < MinimalStepRate {
		initialRate = MinimalStepRate
	}
	if finalRate < MinimalStepRate {
		finalRate = MinimalStepRate
	}

	accel := block.AccelerationStepsPerS2

	// Steps needed to reach the nominal rate from the entry rate, and to
	// brake from the nominal rate to the exit rate.
	accelerateSteps := ceilSteps(estimateAccelerationDistance(initialRate, block.NominalRate, int32(accel)))
	decelerateSteps := floorSteps(estimateAccelerationDistance(block.NominalRate, finalRate, -int32(accel)))

	plateauSteps := int64(block.TotalStepCount) - int64(accelerateSteps) - int64(decelerateSteps)

	var cruiseRate uint32
	if plateauSteps < 0 {
		// The nominal rate is unreachable inside this block: the profile
		// collapses to a triangle meeting the exit rate exactly at the
		// end of the block.
		accelerateSteps = ceilSteps(intersectionDistance(initialRate, finalRate, accel, block.TotalStepCount))
		if accelerateSteps > block.TotalStepCount {
			accelerateSteps = block.TotalStepCount
		}
		plateauSteps = 0
		cruiseRate = finalSpeed(initialRate, accel, accelerateSteps)
	} else {
		cruiseRate = block.NominalRate
	}

	// The ISR needs speed versus time, not steps, plus the precomputed
	// period inverses so it never divides.
	accelerationTime := timerTicks(cruiseRate, initialRate, accel)
	decelerationTime := timerTicks(cruiseRate, finalRate, accel)

	block.AccelerateUntilStep = accelerateSteps
	block.DecelerateAfterStep = accelerateSteps + uint32(plateauSteps)
	block.InitialRate = initialRate
	block.FinalRate = finalRate
	block.CruiseRate = cruiseRate
	block.AccelerationTime = accelerationTime
	block.DecelerationTime = decelerationTime
	block.AccelerationTimeInverse = getPeriodInverse(accelerationTime)
	block.DecelerationTimeInverse = getPeriodInverse(decelerationTime)
}

// estimateAccelerationDistance returns the steps it takes to go from
// initialRate to targetRate at the given step acceleration.
func estimateAccelerationDistance(initialRate, targetRate uint32, acceleration int32) float64 {
	if acceleration == 0 {
		return 0
	}
	ir := float64(initialRate)
	tr := float64(targetRate)
	return (tr*tr - ir*ir) / (2 * float64(acceleration))
}

// intersectionDistance returns the step at which braking must start so a
// move of the given distance that accelerates from initialRate ends at
// exactly finalRate. Used when the trapezoid has no plateau.
func intersectionDistance(initialRate, finalRate, acceleration, distance uint32) float64 {
	if acceleration == 0 {
		return 0
	}
	ir := float64(initialRate)
	fr := float64(finalRate)
	a := float64(acceleration)
	return (2*a*float64(distance) - ir*ir + fr*fr) / (4 * a)
}

// finalSpeed returns the rate reached after accelerating over the given
// step distance.
func finalSpeed(initialRate, acceleration, distance uint32) uint32 {
	ir := float64(initialRate)
	return uint32(math.Sqrt(ir*ir + 2*float64(acceleration)*float64(distance)))
}

// timerTicks converts a rate change at the given step acceleration into
// stepper timer ticks.
func timerTicks(toRate, fromRate, acceleration uint32) uint32 {
	if toRate <= fromRate || acceleration == 0 {
		return 0
	}
	return uint32(float64(toRate-fromRate) / float64(acceleration) * StepperTimerRate)
}

// getPeriodInverse returns ~2^32 / d for the ISR's fixed-point math.
func getPeriodInverse(d uint32) uint32 {
	if d == 0 {
		return 0xFFFFFFFF
	}
	return 0xFFFFFFFF / d
}

// ceilSteps converts a step distance to a whole step count, rounding up.
// Negative distances (rate already past the target) clamp to zero.
func ceilSteps(distance float64) uint32 {
	if distance <= 0 {
		return 0
	}
	return uint32(math.Ceil(distance))
}

// floorSteps converts a step distance to a whole step count, rounding
// down. Negative distances clamp to zero.
func floorSteps(distance float64) uint32 {
	if distance <= 0 {
		return 0
	}
	return uint32(math.Floor(distance))
}

func (p *Planner) noteBusyRace() {
	if p.metrics != nil {
		p.metrics.BusyRaces.Inc()
	}
	p.logger.Debug("block busy during recalculate, mutation suppressed")
}
