package config

import (
	"math"
	"strings"
	"testing"

	"fluidcnc-go-migration/pkg/errors"
)

const sampleConfig = `
# Test machine
[planner]
junction_deviation: 0.02
buffer_size: 64

[axis x]
steps_per_mm: 100
max_rate: 10000      ; mm/min
acceleration: 10
max_travel: 500

[axis y]
steps_per_mm = 200
max_rate = 6000
acceleration = 5
`

func TestParseSections(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if !cfg.HasSection("planner") || !cfg.HasSection("axis x") || !cfg.HasSection("axis y") {
		t.Fatalf("missing sections, got %v", cfg.SectionNames())
	}

	section, err := cfg.GetSection("axis x")
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	v, err := section.GetFloat("steps_per_mm")
	if err != nil {
		t.Fatalf("GetFloat failed: %v", err)
	}
	if v != 100 {
		t.Errorf("steps_per_mm = %v, want 100", v)
	}

	// Inline comments must be stripped.
	rate, err := section.GetFloat("max_rate")
	if err != nil {
		t.Fatalf("GetFloat failed: %v", err)
	}
	if rate != 10000 {
		t.Errorf("max_rate = %v, want 10000", rate)
	}
}

func TestSectionFallbacks(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	section, _ := cfg.GetSection("axis y")

	// max_travel is absent: fallback applies.
	v, err := section.GetFloat("max_travel", 1000)
	if err != nil {
		t.Fatalf("fallback failed: %v", err)
	}
	if v != 1000 {
		t.Errorf("fallback = %v, want 1000", v)
	}

	// Without a fallback the option must error.
	if _, err := section.GetFloat("max_travel"); !errors.Is(err, errors.ErrConfigOption) {
		t.Errorf("expected CONFIG_OPTION error, got %v", err)
	}

	// Type errors must surface as CONFIG_TYPE.
	bad, _ := Parse(strings.NewReader("[s]\nv: abc\n"))
	s, _ := bad.GetSection("s")
	if _, err := s.GetFloat("v"); !errors.Is(err, errors.ErrConfigType) {
		t.Errorf("expected CONFIG_TYPE error, got %v", err)
	}
}

func TestAccessTracking(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	section, _ := cfg.GetSection("axis x")

	if got := section.GetAccessedOptions(); len(got) != 0 {
		t.Fatalf("no option read yet, got accessed %v", got)
	}

	if _, err := section.GetFloat("steps_per_mm"); err != nil {
		t.Fatalf("GetFloat failed: %v", err)
	}
	// Reads through a fallback count as accesses too.
	if _, err := section.GetInt("microsteps", 16); err != nil {
		t.Fatalf("fallback read failed: %v", err)
	}

	accessed := map[string]bool{}
	for _, opt := range section.GetAccessedOptions() {
		accessed[opt] = true
	}
	if !accessed["steps_per_mm"] || !accessed["microsteps"] {
		t.Errorf("accessed options missing reads: %v", section.GetAccessedOptions())
	}

	unused := map[string]bool{}
	for _, opt := range section.GetUnusedOptions() {
		unused[opt] = true
	}
	if unused["steps_per_mm"] {
		t.Error("steps_per_mm reported unused after being read")
	}
	if !unused["max_rate"] || !unused["acceleration"] || !unused["max_travel"] {
		t.Errorf("unread options missing from unused list: %v", section.GetUnusedOptions())
	}

	// A failed lookup without fallback is not an access.
	if _, err := section.Get("bogus"); err == nil {
		t.Fatal("expected error for missing option")
	}
	for _, opt := range section.GetAccessedOptions() {
		if opt == "bogus" {
			t.Error("failed lookup recorded as access")
		}
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"unterminated section", "[axis x\nsteps_per_mm: 1\n"},
		{"option before section", "steps_per_mm: 1\n"},
		{"missing separator", "[axis x]\nsteps_per_mm 100\n"},
	}
	for _, tc := range cases {
		if _, err := Parse(strings.NewReader(tc.in)); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
}

func TestBuildAxes(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleConfig))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	axes, err := BuildAxes(cfg)
	if err != nil {
		t.Fatalf("BuildAxes failed: %v", err)
	}

	if axes.NumberAxis != 2 {
		t.Fatalf("expected 2 axes, got %d", axes.NumberAxis)
	}
	if axes.Axis[0].StepsPerMm != 100 || axes.Axis[1].StepsPerMm != 200 {
		t.Errorf("unexpected steps_per_mm: %v %v", axes.Axis[0].StepsPerMm, axes.Axis[1].StepsPerMm)
	}
	if math.Abs(float64(axes.JunctionDeviation)-0.02) > 1e-6 {
		t.Errorf("junction deviation %v, want 0.02", axes.JunctionDeviation)
	}
	// Absent options keep their documented defaults.
	if math.Abs(float64(axes.ArcTolerance)-0.002) > 1e-6 {
		t.Errorf("arc tolerance %v, want default 0.002", axes.ArcTolerance)
	}
	if axes.Axis[1].MaxTravel != 1000 {
		t.Errorf("max_travel default %v, want 1000", axes.Axis[1].MaxTravel)
	}

	size, err := PlannerBufferSize(cfg)
	if err != nil {
		t.Fatalf("PlannerBufferSize failed: %v", err)
	}
	if size != 64 {
		t.Errorf("buffer size %d, want 64", size)
	}
}

func TestBuildAxesDefaults(t *testing.T) {
	// No planner section at all: defaults apply.
	cfg, _ := Parse(strings.NewReader("[axis x]\nsteps_per_mm: 80\nmax_rate: 3000\nacceleration: 20\n"))
	axes, err := BuildAxes(cfg)
	if err != nil {
		t.Fatalf("BuildAxes failed: %v", err)
	}
	if math.Abs(float64(axes.JunctionDeviation)-0.013) > 1e-6 {
		t.Errorf("junction deviation %v, want default 0.013", axes.JunctionDeviation)
	}
	size, err := PlannerBufferSize(cfg)
	if err != nil {
		t.Fatalf("PlannerBufferSize failed: %v", err)
	}
	if size != 128 {
		t.Errorf("buffer size %d, want default 128", size)
	}
}

func TestBuildAxesValidation(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"no axes", "[planner]\n"},
		{"negative acceleration", "[axis x]\nsteps_per_mm: 100\nmax_rate: 1000\nacceleration: -1\n"},
		{"zero steps_per_mm", "[axis x]\nsteps_per_mm: 0\nmax_rate: 1000\nacceleration: 10\n"},
		{"missing max_rate", "[axis x]\nsteps_per_mm: 100\nacceleration: 10\n"},
		{"axis gap", "[axis x]\nsteps_per_mm: 100\nmax_rate: 1000\nacceleration: 10\n" +
			"[axis z]\nsteps_per_mm: 100\nmax_rate: 1000\nacceleration: 10\n"},
	}
	for _, tc := range cases {
		cfg, err := Parse(strings.NewReader(tc.in))
		if err != nil {
			t.Fatalf("%s: parse failed: %v", tc.name, err)
		}
		if _, err := BuildAxes(cfg); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestAxisName(t *testing.T) {
	if AxisName(0) != "X" || AxisName(2) != "Z" {
		t.Errorf("unexpected axis names: %s %s", AxisName(0), AxisName(2))
	}
	if AxisName(99) != "?" {
		t.Errorf("out-of-range axis name %q, want ?", AxisName(99))
	}
}
