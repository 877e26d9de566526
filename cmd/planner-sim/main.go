// planner-sim drives the motion planner against a simulated step
// generator and reports per-block execution summaries.
//
// Moves come from a built-in test pattern, a move file, or a serial
// port streaming G1-style lines ("G1 X100 Y50 F3000"; F is mm/min).
//
// Usage:
//
//	planner-sim [-config machine.cfg] [options]
//
// Options:
//
//	-config string   Machine configuration file (built-in defaults if empty)
//	-moves string    Move file, one move per line
//	-serial string   Serial device streaming move lines
//	-baud int        Serial baud rate (default 115200)
//	-pattern string  Built-in pattern: square (default when no other source)
//	-size float      Pattern size in mm (default 100)
//	-count int       Pattern repetitions (default 1)
//	-listen string   Monitor HTTP/websocket address (disabled if empty)
//	-timescale float Pace execution at planned speed (1.0) or faster (0)
//	-debug           Enable debug logging
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tarm/serial"

	"fluidcnc-go-migration/pkg/config"
	"fluidcnc-go-migration/pkg/errors"
	"fluidcnc-go-migration/pkg/log"
	"fluidcnc-go-migration/pkg/metrics"
	"fluidcnc-go-migration/pkg/monitor"
	"fluidcnc-go-migration/pkg/motion"
	"fluidcnc-go-migration/pkg/stepgen"
)

func main() {
	configFile := flag.String("config", "", "Machine configuration file")
	movesFile := flag.String("moves", "", "Move file, one move per line")
	serialDev := flag.String("serial", "", "Serial device streaming move lines")
	baud := flag.Int("baud", 115200, "Serial baud rate")
	pattern := flag.String("pattern", "square", "Built-in pattern")
	size := flag.Float64("size", 100, "Pattern size in mm")
	count := flag.Int("count", 1, "Pattern repetitions")
	listen := flag.String("listen", "", "Monitor HTTP/websocket address")
	timeScale := flag.Float64("timescale", 0, "Wall-clock pacing factor")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := log.New("planner-sim")
	if *debug {
		logger.SetLevel(log.DEBUG)
	}
	log.SetDefaultLogger(logger)

	axes, bufferSize, err := loadMachine(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	registry := metrics.NewRegistry()
	planner := motion.NewPlanner(bufferSize)
	planner.AttachMetrics(motion.NewPlannerMetrics(registry))

	generator := stepgen.New(planner.Buffer())
	generator.TimeScale = *timeScale
	generator.OnBlock = func(s stepgen.BlockSummary) {
		logger.Info("block %3d: %8.3fmm %7d steps  rates %6d/%6d/%6d  %s",
			s.Index, s.Millimeters, s.TotalSteps, s.InitialRate, s.CruiseRate, s.FinalRate, s.Duration)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		generator.Run(ctx)
	}()

	if *listen != "" {
		server := monitor.New(monitor.Config{
			Addr:    *listen,
			Source:  &plannerStatus{planner: planner, generator: generator},
			Metrics: registry,
		})
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer server.Stop()
	}

	feed := func(target []float32, feedRate float32) {
		planner.Add(target, feedRate, axes)
	}

	switch {
	case *movesFile != "":
		err = streamFile(*movesFile, axes.NumberAxis, feed)
	case *serialDev != "":
		err = streamSerial(*serialDev, *baud, axes.NumberAxis, feed)
	default:
		err = streamPattern(*pattern, float32(*size), *count, feed)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Let the consumer drain the plan, then stop it.
	for !planner.IsEmpty() {
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-consumerDone

	stats := generator.Stats()
	logger.Info("done: %d blocks, %d steps, %.3fs of motion",
		stats.BlocksExecuted, stats.StepsExecuted, stats.MotionTime.Seconds())
}

// loadMachine builds the axes snapshot from a config file, or a two-axis
// default machine when no file is given.
func loadMachine(path string) (*motion.Axes, int, error) {
	if path == "" {
		axes := motion.DefaultAxes(2)
		return axes, motion.DefaultBufferSize, nil
	}
	cfg, err := config.ParseFile(path)
	if err != nil {
		return nil, 0, err
	}
	axes, err := config.BuildAxes(cfg)
	if err != nil {
		return nil, 0, err
	}
	bufferSize, err := config.PlannerBufferSize(cfg)
	if err != nil {
		return nil, 0, err
	}
	return axes, bufferSize, nil
}

// streamPattern feeds a built-in test pattern.
func streamPattern(name string, size float32, count int, feed func([]float32, float32)) error {
	switch name {
	case "square":
		rapid := float32(1e38)
		for i := 0; i < count; i++ {
			feed([]float32{size, 0}, rapid)
			feed([]float32{size, size}, rapid)
			feed([]float32{0, size}, rapid)
			feed([]float32{0, 0}, rapid)
		}
		return nil
	default:
		return fmt.Errorf("unknown pattern %q", name)
	}
}

// streamFile feeds moves from a file, one per line.
func streamFile(path string, numberAxis int, feed func([]float32, float32)) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return streamLines(f, numberAxis, feed)
}

// streamSerial feeds moves from a serial device until it closes.
func streamSerial(device string, baud, numberAxis int, feed func([]float32, float32)) error {
	port, err := serial.OpenPort(&serial.Config{Name: device, Baud: baud})
	if err != nil {
		return err
	}
	defer port.Close()
	return streamLines(port, numberAxis, feed)
}

func streamLines(r io.Reader, numberAxis int, feed func([]float32, float32)) error {
	target := make([]float32, numberAxis)
	feedRate := float32(1e38)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		changed, err := parseMoveLine(line, target, &feedRate)
		if err != nil {
			return err
		}
		if changed {
			feed(target, feedRate)
		}
	}
	return scanner.Err()
}

// parseMoveLine applies one G1-style move line to target and feedRate.
// Unmentioned axes keep their previous position. Returns false for lines
// carrying no axis word (e.g. a bare feed rate change).
func parseMoveLine(line string, target []float32, feedRate *float32) (bool, error) {
	axisWords := map[byte]int{'X': 0, 'Y': 1, 'Z': 2, 'A': 3, 'B': 4, 'C': 5}

	changed := false
	for _, word := range strings.Fields(strings.ToUpper(line)) {
		letter := word[0]
		if letter == 'G' {
			continue
		}
		value, err := strconv.ParseFloat(word[1:], 32)
		if err != nil {
			return false, errors.MoveParseError(line, "bad word "+word)
		}
		if letter == 'F' {
			if value <= 0 {
				return false, errors.MoveParseError(line, "non-positive feed rate")
			}
			*feedRate = float32(value) / 60.0 // mm/min to mm/s
			continue
		}
		axis, ok := axisWords[letter]
		if !ok || axis >= len(target) {
			return false, errors.MoveParseError(line, "unknown axis word "+word)
		}
		target[axis] = float32(value)
		changed = true
	}
	return changed, nil
}

// plannerStatus adapts the planner and generator to the monitor's
// StatusSource.
type plannerStatus struct {
	planner   *motion.Planner
	generator *stepgen.Generator
}

func (ps *plannerStatus) Status() monitor.Status {
	buffer := ps.planner.Buffer()
	position := ps.planner.Position()
	stats := ps.generator.Stats()
	return monitor.Status{
		Depth:          buffer.Depth(),
		CurrentIndex:   buffer.CurrentIndex(),
		ScheduleIndex:  buffer.ScheduleIndex(),
		WriteIndex:     buffer.WriteIndex(),
		Position:       position[:],
		BlocksExecuted: stats.BlocksExecuted,
		StepsExecuted:  stats.StepsExecuted,
		MotionTimeSec:  stats.MotionTime.Seconds(),
	}
}
