// Package sim owns the simulation: the circuit controller that composes the
// battery, circulation and chemistry systems once per frame and exposes
// read-only snapshots to the rendering layer.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/voltlab/circuitsim/camera"
	"github.com/voltlab/circuitsim/config"
	"github.com/voltlab/circuitsim/systems"
	"github.com/voltlab/circuitsim/telemetry"
	"github.com/voltlab/circuitsim/track"
	"github.com/voltlab/circuitsim/ui"
)

// Options holds simulation construction options.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string  // empty = CSV output disabled
}

// Snapshot is the read-only view handed to the rendering layer each frame.
// The controller owns all mutable state; nothing in here aliases it.
type Snapshot struct {
	Tick      int32
	Carriers  []systems.CarrierView
	Ions      []systems.Ion
	Charge    float64
	IonBudget float64
	Dead      bool
	Closed    bool
	Energized bool
	Markers   []track.FieldMarker // static, computed once at startup
}

// headlessStep is the synthetic clock step for headless runs: fixed 60Hz.
const headlessStep = time.Second / 60

// Sim is the circuit controller. All four state structures (battery,
// carriers, ions, switch) are owned exclusively by one Sim instance;
// Toggle and the lifecycle are the only external mutators.
type Sim struct {
	cfg   *config.Config
	board *track.Board
	world *ecs.World
	rng   *rand.Rand

	battery     *systems.Battery
	circulation *systems.Circulation
	chemistry   *systems.Chemistry
	markers     []track.FieldMarker

	closed     bool
	tick       int32
	simTimeSec float64

	// Elapsed-time baseline. Invalidated on every closed/dead transition so
	// the following frame measures zero elapsed time.
	baselineValid bool
	lastStep      time.Time

	// Interaction
	cam          *camera.Camera
	hud          *ui.HUD
	debugOverlay bool

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool

	// Reused buffers
	snap         Snapshot
	lifetimesBuf []float64

	// Synthetic clock for headless stepping
	synthNow time.Time
}

// New builds a simulation from the given config and options.
func New(cfg *config.Config, opts Options) (*Sim, error) {
	board, err := track.NewBoard(boardSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("building board: %w", err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	battery, err := systems.NewBattery(cfg.Battery.DrainRate)
	if err != nil {
		return nil, err
	}

	circulation, err := systems.NewCirculation(world, board, systems.CirculationParams{
		Count:        cfg.Carriers.Count,
		Speed:        float32(cfg.Carriers.Speed),
		MaxOffset:    float32(cfg.Carriers.MaxOffset),
		VibrationAmp: float32(cfg.Carriers.VibrationAmp),
		PeriodMin:    float32(cfg.Carriers.VibrationPeriodMin),
		PeriodMax:    float32(cfg.Carriers.VibrationPeriodMax),
	}, rng)
	if err != nil {
		return nil, err
	}

	chemistry, err := systems.NewChemistry(
		board.Emitter,
		board.Junction,
		float32(cfg.Chemistry.Speed),
		float32(cfg.Chemistry.ArrivalEpsilon),
		float32(cfg.Chemistry.SpawnChance),
	)
	if err != nil {
		return nil, err
	}

	windowSec := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		windowSec = opts.StatsWindowSec
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config snapshot", "error", err)
	}

	s := &Sim{
		cfg:         cfg,
		board:       board,
		world:       world,
		rng:         rng,
		battery:     battery,
		circulation: circulation,
		chemistry:   chemistry,
		markers:     board.FieldMarkers(float32(cfg.Field.MarkerSpacing)),
		cam:         camera.New(cfg.Derived.ScreenW32, cfg.Derived.ScreenH32, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		hud:         ui.NewHUD(),
		collector:   telemetry.NewCollector(windowSec, float64(cfg.Screen.TargetFPS)),
		perf:        telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		output:      output,
		logStats:    opts.LogStats,
		synthNow:    time.Unix(0, 0),
	}
	s.snap.Markers = s.markers
	s.refreshSnapshot(false)

	return s, nil
}

// boardSpec translates the loaded config into the track geometry spec.
func boardSpec(cfg *config.Config) track.Spec {
	return track.Spec{
		OuterX:    float32(cfg.Derived.BoardX),
		OuterY:    float32(cfg.Derived.BoardY),
		OuterW:    float32(cfg.Board.Width),
		OuterH:    float32(cfg.Board.Height),
		Margin:    float32(cfg.Board.Margin),
		BatteryW:  float32(cfg.Battery.Width),
		BatteryH:  float32(cfg.Battery.Height),
		GapW:      float32(cfg.Battery.GapWidth),
		GapH:      float32(cfg.Battery.GapHeight),
		TerminalW: float32(cfg.Battery.TerminalWidth),
		TerminalH: float32(cfg.Battery.TerminalHeight),
	}
}

// Step advances the simulation by one tick at the given timestamp. The first
// call after construction or after any closed/dead transition measures zero
// elapsed time; negative clock deltas are clamped to zero.
func (s *Sim) Step(now time.Time) {
	s.perf.StartTick()

	var elapsed float64
	if s.baselineValid {
		elapsed = now.Sub(s.lastStep).Seconds()
		if elapsed < 0 {
			elapsed = 0
		}
	}
	s.lastStep = now
	s.baselineValid = true
	s.simTimeSec += elapsed

	// Battery health resolves before any carrier consumes the energized
	// flag: a depletion event gates motion in the same frame it occurs.
	s.perf.StartPhase(telemetry.PhaseBattery)
	energized := s.closed && !s.battery.Dead
	if s.battery.Tick(elapsed*1000, energized) {
		s.collector.RecordDrainEvent()
		if s.battery.Dead {
			s.baselineValid = false
			s.collector.RecordDepletion()
			slog.Info("battery depleted", "tick", s.tick)
		}
	}
	energized = s.closed && !s.battery.Dead

	s.perf.StartPhase(telemetry.PhaseCirculation)
	s.circulation.Advance(float32(elapsed), energized)

	s.perf.StartPhase(telemetry.PhaseChemistry)
	if s.chemistry.MaybeSpawn(energized, s.rng) {
		s.collector.RecordSpawn()
	}
	if n := s.chemistry.Advance(float32(elapsed)); n > 0 {
		s.lifetimesBuf = s.chemistry.DrainLifetimes(s.lifetimesBuf[:0])
		s.collector.RecordDespawns(n, s.lifetimesBuf)
	}

	s.perf.StartPhase(telemetry.PhaseSnapshot)
	s.tick++
	s.refreshSnapshot(energized)

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	s.flushTelemetry()

	s.perf.EndTick()
}

// UpdateHeadless advances one tick on the synthetic 60Hz clock.
func (s *Sim) UpdateHeadless() {
	s.synthNow = s.synthNow.Add(headlessStep)
	s.Step(s.synthNow)
}

// Toggle is the single externally invocable mutator: flips the switch, or
// performs a full reset (battery restored, switch forced open) if the
// power source is dead. The elapsed baseline restarts either way.
func (s *Sim) Toggle() {
	if s.battery.Dead {
		s.battery.Reset()
		s.closed = false
		s.collector.RecordReset()
		slog.Info("circuit reset", "tick", s.tick)
	} else {
		s.closed = !s.closed
		slog.Info("switch toggled", "tick", s.tick, "closed", s.closed)
	}
	s.collector.RecordToggle()
	s.baselineValid = false
}

// refreshSnapshot rebuilds the read-only view from current state.
func (s *Sim) refreshSnapshot(energized bool) {
	s.snap.Tick = s.tick
	s.snap.Carriers = s.circulation.Collect(s.closed, s.snap.Carriers)

	s.snap.Ions = append(s.snap.Ions[:0], s.chemistry.Ions()...)

	s.snap.Charge = s.battery.Charge
	s.snap.IonBudget = s.battery.IonBudget
	s.snap.Dead = s.battery.Dead
	s.snap.Closed = s.closed
	s.snap.Energized = energized
}

// flushTelemetry emits window stats when the current window completes.
func (s *Sim) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}

	visible := 0
	for i := range s.snap.Carriers {
		if s.snap.Carriers[i].Visible {
			visible++
		}
	}

	stats := s.collector.Flush(s.tick, telemetry.Sample{
		SimTimeSec:      s.simTimeSec,
		Charge:          s.battery.Charge,
		IonBudget:       s.battery.IonBudget,
		Dead:            s.battery.Dead,
		Closed:          s.closed,
		CarrierCount:    s.circulation.Count(),
		VisibleCarriers: visible,
		IonCount:        s.chemistry.Count(),
	})

	if s.logStats {
		slog.Info("window stats",
			"tick", stats.WindowEndTick,
			"charge", stats.Charge,
			"ion_budget", stats.IonBudget,
			"dead", stats.Dead,
			"closed", stats.Closed,
			"ions", stats.IonCount,
			"carriers_visible", stats.VisibleCarriers,
			"ion_spawns", stats.IonSpawns,
			"ion_despawns", stats.IonDespawns,
			"drain_events", stats.DrainEvents,
		)
		s.perf.Stats().LogStats()
	}

	if err := s.output.WriteTelemetry(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if err := s.output.WritePerf(s.perf.Stats(), s.tick); err != nil {
		slog.Warn("perf write failed", "error", err)
	}
}

// Snapshot returns the current read-only view. Valid until the next Step.
func (s *Sim) Snapshot() *Snapshot {
	return &s.snap
}

// Board returns the fixed circuit geometry.
func (s *Sim) Board() *track.Board {
	return s.board
}

// Tick returns the current simulation tick.
func (s *Sim) Tick() int32 {
	return s.tick
}

// Unload releases resources and closes telemetry output. Stopping the
// simulation must not leave anything still scheduled or open.
func (s *Sim) Unload() {
	if err := s.output.Close(); err != nil {
		slog.Warn("closing telemetry output", "error", err)
	}
}
