package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/voltlab/circuitsim/track"
)

// Ion is a transient carrier born at the negative terminal. IDs are
// monotonic and unique for the lifetime of one Chemistry instance; an ion
// is born once and despawned exactly once on arrival.
type Ion struct {
	ID   uint64
	X, Y float32
	Age  float32 // seconds since spawn
}

// Chemistry owns the variable-size ion population: stochastic per-frame
// births at the emitter and constant-speed pursuit of the junction point
// with epsilon despawn.
type Chemistry struct {
	emitter     track.Rect
	target      track.Point
	speed       float32
	epsilon     float32
	spawnChance float32

	ions   []Ion
	nextID uint64

	// Lifetimes of ions despawned since the last drain, for telemetry.
	lifetimes []float64
}

// NewChemistry validates the parameters and returns an empty system.
func NewChemistry(emitter track.Rect, target track.Point, speed, epsilon, spawnChance float32) (*Chemistry, error) {
	if speed <= 0 || math.IsInf(float64(speed), 0) || math.IsNaN(float64(speed)) {
		return nil, fmt.Errorf("chemistry: speed must be positive and finite, got %v", speed)
	}
	if epsilon <= 0 || math.IsInf(float64(epsilon), 0) || math.IsNaN(float64(epsilon)) {
		return nil, fmt.Errorf("chemistry: arrival epsilon must be positive and finite, got %v", epsilon)
	}
	if spawnChance <= 0 || spawnChance > 1 {
		return nil, fmt.Errorf("chemistry: spawn chance must be in (0,1], got %v", spawnChance)
	}
	return &Chemistry{
		emitter:     emitter,
		target:      target,
		speed:       speed,
		epsilon:     epsilon,
		spawnChance: spawnChance,
		ions:        make([]Ion, 0, 64),
	}, nil
}

// MaybeSpawn draws one Bernoulli sample per frame while energized and, on
// success, births one ion at a uniform position inside the emitter rect.
// The birth rate is intentionally per-frame, not per-unit-time.
func (ch *Chemistry) MaybeSpawn(energized bool, rng *rand.Rand) bool {
	if !energized {
		return false
	}
	if rng.Float32() >= ch.spawnChance {
		return false
	}

	ch.ions = append(ch.ions, Ion{
		ID: ch.nextID,
		X:  ch.emitter.X + rng.Float32()*ch.emitter.W,
		Y:  ch.emitter.Y + rng.Float32()*ch.emitter.H,
	})
	ch.nextID++
	return true
}

// Advance moves every ion toward the junction at constant speed, scaled by
// elapsed time, and despawns any ion within epsilon of the target. Runs
// unconditionally: ions in flight keep moving even when the circuit is not
// energized. Returns the number of ions despawned this frame.
func (ch *Chemistry) Advance(elapsedSec float32) int {
	step := ch.speed * elapsedSec
	if step < 0 {
		step = 0
	}

	despawned := 0
	alive := 0
	for i := range ch.ions {
		ion := &ch.ions[i]
		ion.Age += elapsedSec

		dx := ch.target.X - ion.X
		dy := ch.target.Y - ion.Y
		dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))

		if dist > step && dist > 0 {
			ion.X += dx / dist * step
			ion.Y += dy / dist * step
			dist -= step
		} else {
			ion.X = ch.target.X
			ion.Y = ch.target.Y
			dist = 0
		}

		if dist < ch.epsilon {
			ch.lifetimes = append(ch.lifetimes, float64(ion.Age))
			despawned++
			continue
		}

		ch.ions[alive] = ch.ions[i]
		alive++
	}
	ch.ions = ch.ions[:alive]
	return despawned
}

// Ions returns the live population. The slice is owned by the system;
// callers must copy what they keep.
func (ch *Chemistry) Ions() []Ion {
	return ch.ions
}

// Count returns the current ion population size.
func (ch *Chemistry) Count() int {
	return len(ch.ions)
}

// DrainLifetimes appends lifetimes of ions despawned since the last call
// to dst and clears the internal buffer.
func (ch *Chemistry) DrainLifetimes(dst []float64) []float64 {
	dst = append(dst, ch.lifetimes...)
	ch.lifetimes = ch.lifetimes[:0]
	return dst
}
