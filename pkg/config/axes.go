package config

import (
	"strings"

	"fluidcnc-go-migration/pkg/errors"
	"fluidcnc-go-migration/pkg/motion"
)

// Axis sections are named `[axis x]`, `[axis y]`, ... in machine order.
var axisNames = []string{"x", "y", "z", "a", "b", "c", "u", "v", "w"}

// BuildAxes validates the machine sections of cfg and produces the
// read-only Axes snapshot the planner consumes. Axes must be configured
// contiguously starting at x.
func BuildAxes(cfg *Config) (*motion.Axes, error) {
	axes := &motion.Axes{}

	planner, err := plannerSection(cfg)
	if err != nil {
		return nil, err
	}
	jd, err := planner.GetFloat("junction_deviation", 0.013)
	if err != nil {
		return nil, err
	}
	at, err := planner.GetFloat("arc_tolerance", 0.002)
	if err != nil {
		return nil, err
	}
	axes.JunctionDeviation = float32(jd)
	axes.ArcTolerance = float32(at)

	for i, name := range axisNames {
		sectionName := "axis " + name
		if !cfg.HasSection(sectionName) {
			break
		}
		section, err := cfg.GetSection(sectionName)
		if err != nil {
			return nil, err
		}
		axis, err := buildAxis(section)
		if err != nil {
			return nil, err
		}
		axes.Axis[i] = axis
		axes.NumberAxis = i + 1
	}

	if axes.NumberAxis == 0 {
		return nil, errors.ConfigSectionError("axis x")
	}

	// Reject gaps: a configured axis after the first missing one is a
	// mistake, not an extension.
	for _, name := range axisNames[axes.NumberAxis:] {
		if cfg.HasSection("axis " + name) {
			return nil, errors.New(errors.ErrConfigValidation,
				"axis sections must be contiguous, '"+name+"' configured after a gap")
		}
	}

	return axes, nil
}

// LoadAxes parses the config file at path and builds the Axes snapshot.
func LoadAxes(path string) (*motion.Axes, error) {
	cfg, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return BuildAxes(cfg)
}

func plannerSection(cfg *Config) (*Section, error) {
	if cfg.HasSection("planner") {
		return cfg.GetSection("planner")
	}
	// All planner options have defaults; a missing section is fine.
	return newSection("planner", nil), nil
}

func buildAxis(section *Section) (motion.Axis, error) {
	var axis motion.Axis

	stepsPerMm, err := section.GetFloat("steps_per_mm")
	if err != nil {
		return axis, err
	}
	maxRate, err := section.GetFloat("max_rate")
	if err != nil {
		return axis, err
	}
	acceleration, err := section.GetFloat("acceleration")
	if err != nil {
		return axis, err
	}
	maxTravel, err := section.GetFloat("max_travel", 1000.0)
	if err != nil {
		return axis, err
	}

	for option, value := range map[string]float64{
		"steps_per_mm": stepsPerMm,
		"max_rate":     maxRate,
		"acceleration": acceleration,
	} {
		if value <= 0 {
			return axis, errors.ConfigValidationError(section.Name(), option, "must be positive")
		}
	}

	axis.StepsPerMm = float32(stepsPerMm)
	axis.MaxRate = float32(maxRate)
	axis.Acceleration = float32(acceleration)
	axis.MaxTravel = float32(maxTravel)
	return axis, nil
}

// PlannerBufferSize returns the configured planner ring capacity.
func PlannerBufferSize(cfg *Config) (int, error) {
	planner, err := plannerSection(cfg)
	if err != nil {
		return 0, err
	}
	size, err := planner.GetInt("buffer_size", motion.DefaultBufferSize)
	if err != nil {
		return 0, err
	}
	if size < 2 {
		return 0, errors.ConfigValidationError("planner", "buffer_size", "must be at least 2")
	}
	return size, nil
}

// String helper kept close to the parser: axis order is part of the file
// format contract.
func AxisName(index int) string {
	if index < 0 || index >= len(axisNames) {
		return "?"
	}
	return strings.ToUpper(axisNames[index])
}
