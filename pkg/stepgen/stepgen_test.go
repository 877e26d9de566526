package stepgen

import (
	"context"
	"sync"
	"testing"
	"time"

	"fluidcnc-go-migration/pkg/motion"
)

func testAxes() *motion.Axes {
	axes := &motion.Axes{
		NumberAxis:        2,
		JunctionDeviation: 0.013,
	}
	for i := 0; i < 2; i++ {
		axes.Axis[i] = motion.Axis{
			StepsPerMm:   100,
			MaxRate:      10_000,
			Acceleration: 10,
			MaxTravel:    100_000,
		}
	}
	return axes
}

func TestGeneratorDrainsPlan(t *testing.T) {
	planner := motion.NewPlanner(16)
	axes := testAxes()

	planner.Add([]float32{100, 0}, 1e38, axes)
	planner.Add([]float32{100, 100}, 1e38, axes)
	planner.Add([]float32{0, 100}, 1e38, axes)
	planner.Add([]float32{0, 0}, 1e38, axes)

	g := New(planner.Buffer())

	var mu sync.Mutex
	var summaries []BlockSummary
	g.OnBlock = func(s BlockSummary) {
		mu.Lock()
		summaries = append(summaries, s)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Run(ctx)
	}()

	deadline := time.After(5 * time.Second)
	for !planner.IsEmpty() {
		select {
		case <-deadline:
			t.Fatal("generator did not drain the plan")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if len(summaries) != 4 {
		t.Fatalf("expected 4 executed blocks, got %d", len(summaries))
	}
	for i, s := range summaries {
		if s.TotalSteps != 10_000 {
			t.Errorf("block %d: expected 10000 steps, got %d", i, s.TotalSteps)
		}
		if s.Duration <= 0 {
			t.Errorf("block %d: non-positive duration %v", i, s.Duration)
		}
		if s.CruiseRate < s.InitialRate || s.CruiseRate < s.FinalRate {
			t.Errorf("block %d: cruise rate %d below ramp rates %d/%d",
				i, s.CruiseRate, s.InitialRate, s.FinalRate)
		}
	}

	stats := g.Stats()
	if stats.BlocksExecuted != 4 {
		t.Errorf("expected 4 executed blocks in stats, got %d", stats.BlocksExecuted)
	}
	if stats.StepsExecuted != 40_000 {
		t.Errorf("expected 40000 executed steps, got %d", stats.StepsExecuted)
	}
}

// The producer plans into a small ring while the consumer drains it, so
// every slot is recycled many times and the busy-race protocol is
// exercised under the race detector.
func TestConcurrentProduceAndConsume(t *testing.T) {
	planner := motion.NewPlanner(8)
	axes := testAxes()

	g := New(planner.Buffer())

	var mu sync.Mutex
	executed := 0
	var totalSteps uint64
	g.OnBlock = func(s BlockSummary) {
		mu.Lock()
		executed++
		totalSteps += uint64(s.TotalSteps)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Run(ctx)
	}()

	// A long zigzag: each move is 10mm on alternating axes, 1000 steps.
	const moves = 200
	pos := []float32{0, 0}
	for i := 0; i < moves; i++ {
		pos[i%2] += 10
		planner.Add([]float32{pos[0], pos[1]}, 1e38, axes)
	}

	deadline := time.After(10 * time.Second)
	for !planner.IsEmpty() {
		select {
		case <-deadline:
			t.Fatal("plan did not drain")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	cancel()
	<-done

	mu.Lock()
	defer mu.Unlock()
	if executed != moves {
		t.Errorf("expected %d executed blocks, got %d", moves, executed)
	}
	if totalSteps != moves*1000 {
		t.Errorf("expected %d executed steps, got %d", moves*1000, totalSteps)
	}
}

func TestGeneratorStopsOnCancel(t *testing.T) {
	planner := motion.NewPlanner(8)
	g := New(planner.Buffer())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Run(ctx)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("generator did not stop on cancel")
	}
}
