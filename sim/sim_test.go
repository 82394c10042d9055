package sim

import (
	"testing"
	"time"

	"github.com/voltlab/circuitsim/config"
)

func newTestSim(t *testing.T, mutate func(*config.Config)) *Sim {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if mutate != nil {
		mutate(cfg)
	}
	s, err := New(cfg, Options{Seed: 42})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(s.Unload)
	return s
}

func TestSimStartsOpenAndFull(t *testing.T) {
	s := newTestSim(t, nil)
	snap := s.Snapshot()

	if snap.Closed {
		t.Error("switch starts closed, want open")
	}
	if snap.Charge != 100 || snap.IonBudget != 100 {
		t.Errorf("charge=%v budget=%v, want 100/100", snap.Charge, snap.IonBudget)
	}
	if snap.Dead || snap.Energized {
		t.Errorf("dead=%v energized=%v, want false/false", snap.Dead, snap.Energized)
	}
	if len(snap.Carriers) != s.cfg.Carriers.Count {
		t.Errorf("snapshot has %d carriers, want %d", len(snap.Carriers), s.cfg.Carriers.Count)
	}
	if len(snap.Markers) == 0 {
		t.Error("snapshot has no field markers")
	}
}

func TestToggleFlipsSwitch(t *testing.T) {
	s := newTestSim(t, nil)

	s.Toggle()
	if !s.closed {
		t.Error("first toggle did not close the switch")
	}
	s.Toggle()
	if s.closed {
		t.Error("second toggle did not open the switch")
	}
}

func TestToggleWhileDeadResets(t *testing.T) {
	s := newTestSim(t, func(cfg *config.Config) {
		cfg.Battery.DrainRate = 100
	})

	t0 := time.Unix(0, 0)
	s.Toggle()
	s.Step(t0)
	s.Step(t0.Add(time.Second))

	snap := s.Snapshot()
	if !snap.Dead || snap.Charge != 0 {
		t.Fatalf("dead=%v charge=%v after one full energized second at rate 100", snap.Dead, snap.Charge)
	}

	// Toggling a dead circuit is a full reset, never a close.
	s.Toggle()
	s.Step(t0.Add(2 * time.Second))
	snap = s.Snapshot()
	if snap.Dead {
		t.Error("still dead after reset")
	}
	if snap.Charge != 100 || snap.IonBudget != 100 {
		t.Errorf("charge=%v budget=%v after reset, want 100/100", snap.Charge, snap.IonBudget)
	}
	if snap.Closed {
		t.Error("switch closed after reset, want open")
	}
}

func TestCarriersMoveOnlyWhileEnergized(t *testing.T) {
	s := newTestSim(t, nil)
	t0 := time.Unix(0, 0)

	// Open switch: a full second passes, nobody moves.
	s.Step(t0)
	before := append([]float32(nil), carrierXs(s)...)
	s.Step(t0.Add(time.Second))
	if moved(before, carrierXs(s)) {
		t.Error("carriers moved with the switch open")
	}

	// Closed switch: same second, everybody advances 20 track units.
	s.Toggle()
	s.Step(t0.Add(2 * time.Second))
	before = append(before[:0], carrierXs(s)...)
	s.Step(t0.Add(3 * time.Second))
	if !moved(before, carrierXs(s)) {
		t.Error("carriers frozen with the switch closed")
	}
}

func TestToggleRestartsElapsedBaseline(t *testing.T) {
	t0 := time.Unix(0, 0)

	// Control: 0.6s + 0.6s of uninterrupted energized time drains once.
	s := newTestSim(t, nil)
	s.Toggle()
	s.Step(t0)
	s.Step(t0.Add(600 * time.Millisecond))
	s.Step(t0.Add(1200 * time.Millisecond))
	if got := s.Snapshot().Charge; got != 95 {
		t.Fatalf("control run charge = %v, want 95", got)
	}

	// Interrupted: toggling twice between the same timestamps discards the
	// baseline, so the second interval measures zero elapsed time.
	s = newTestSim(t, nil)
	s.Toggle()
	s.Step(t0)
	s.Step(t0.Add(600 * time.Millisecond))
	s.Toggle()
	s.Toggle()
	s.Step(t0.Add(1200 * time.Millisecond))
	if got := s.Snapshot().Charge; got != 100 {
		t.Errorf("interrupted run charge = %v, want 100", got)
	}
}

func TestDepletionGatesMotionSameFrame(t *testing.T) {
	s := newTestSim(t, func(cfg *config.Config) {
		cfg.Battery.DrainRate = 100
	})
	t0 := time.Unix(0, 0)

	s.Toggle()
	s.Step(t0)
	before := append([]float32(nil), carrierXs(s)...)

	// This frame both fires the fatal drain event and, because battery
	// health resolves first, denies the carriers its elapsed second.
	s.Step(t0.Add(time.Second))
	snap := s.Snapshot()
	if !snap.Dead {
		t.Fatal("expected depletion")
	}
	if snap.Energized {
		t.Error("snapshot energized after depletion")
	}
	if moved(before, carrierXs(s)) {
		t.Error("carriers moved in the frame the battery died")
	}

	// The death transition also restarts the baseline: the next frame
	// contributes nothing to simulation time.
	simTime := s.simTimeSec
	s.Step(t0.Add(5 * time.Second))
	if s.simTimeSec != simTime {
		t.Errorf("sim time advanced %v across an invalidated baseline", s.simTimeSec-simTime)
	}
}

func TestNegativeClockDeltaClamped(t *testing.T) {
	s := newTestSim(t, nil)
	t0 := time.Unix(100, 0)

	s.Toggle()
	s.Step(t0)
	s.Step(t0.Add(-10 * time.Second))
	if s.simTimeSec != 0 {
		t.Errorf("sim time = %v after backwards clock, want 0", s.simTimeSec)
	}
	if got := s.Snapshot().Charge; got != 100 {
		t.Errorf("charge = %v after backwards clock, want 100", got)
	}
}

func TestHeadlessRunDepletesAndResets(t *testing.T) {
	s := newTestSim(t, nil)

	s.Toggle()
	sawIons := false
	for i := 0; i < 1400 && !s.Snapshot().Dead; i++ {
		s.UpdateHeadless()
		if len(s.Snapshot().Ions) > 0 {
			sawIons = true
		}
	}

	snap := s.Snapshot()
	if !snap.Dead {
		t.Fatal("battery not depleted after 1400 energized 60Hz frames at rate 5")
	}
	if snap.Charge != 0 || snap.IonBudget != 0 {
		t.Errorf("charge=%v budget=%v at depletion, want 0/0", snap.Charge, snap.IonBudget)
	}
	if !sawIons {
		t.Error("no ions observed during an energized run")
	}

	s.Toggle()
	s.UpdateHeadless()
	snap = s.Snapshot()
	if snap.Dead || snap.Closed || snap.Charge != 100 {
		t.Errorf("post-reset dead=%v closed=%v charge=%v", snap.Dead, snap.Closed, snap.Charge)
	}
}

func TestUpdateHeadlessAdvancesTicks(t *testing.T) {
	s := newTestSim(t, nil)
	for i := 0; i < 10; i++ {
		s.UpdateHeadless()
	}
	if s.Tick() != 10 {
		t.Errorf("tick = %d, want 10", s.Tick())
	}
}

func TestNoIonsWhileOpen(t *testing.T) {
	s := newTestSim(t, nil)
	for i := 0; i < 300; i++ {
		s.UpdateHeadless()
	}
	if n := len(s.Snapshot().Ions); n != 0 {
		t.Errorf("%d ions spawned with the switch open", n)
	}
}

func carrierXs(s *Sim) []float32 {
	snap := s.Snapshot()
	xs := make([]float32, 0, 2*len(snap.Carriers))
	for _, c := range snap.Carriers {
		xs = append(xs, c.X, c.Y)
	}
	return xs
}

func moved(before, after []float32) bool {
	for i := range before {
		if before[i] != after[i] {
			return true
		}
	}
	return false
}
