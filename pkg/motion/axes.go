package motion

// Axis holds the kinematic limits of a single machine axis.
type Axis struct {
	// StepsPerMm converts millimeters to motor steps. Must be > 0.
	StepsPerMm float32

	// MaxRate is the axis rapid rate in mm/min. Must be > 0.
	MaxRate float32

	// Acceleration is the axis acceleration limit in mm/s^2. Must be > 0.
	Acceleration float32

	// MaxTravel is the axis travel in mm. Informational for the planner.
	MaxTravel float32
}

// Axes is a read-only snapshot of the machine configuration consumed by the
// planner. It is built by the config subsystem, which also validates that
// every active axis has positive limits. The snapshot must stay valid for
// the lifetime of all planning operations against it.
type Axes struct {
	NumberAxis int
	Axis       [MaxAxis]Axis

	// JunctionDeviation is the distance in mm from the junction to the
	// closest edge of the cornering circle. Default 0.013.
	JunctionDeviation float32

	// ArcTolerance is the maximum arc interpolation error in mm.
	ArcTolerance float32
}

// DefaultAxes returns an Axes snapshot with numberAxis identical axes,
// useful for tests and for running without a config file.
func DefaultAxes(numberAxis int) *Axes {
	axes := &Axes{
		NumberAxis:        numberAxis,
		JunctionDeviation: 0.013,
		ArcTolerance:      0.002,
	}
	for i := 0; i < numberAxis; i++ {
		axes.Axis[i] = Axis{
			StepsPerMm:   320.0,
			MaxRate:      1000.0,
			Acceleration: 25.0,
			MaxTravel:    1000.0,
		}
	}
	return axes
}
