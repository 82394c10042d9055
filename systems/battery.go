package systems

import (
	"fmt"
	"math"
)

// Battery models the power source: two parallel depleting quantities and a
// terminal dead flag. Depletion is a discretized once-per-second event
// layered on continuous per-frame ticking; elapsed wall time accumulates
// while energized and each crossing of a whole second drains both
// quantities once.
type Battery struct {
	Charge    float64 // stored charge, percent [0,100]
	IonBudget float64 // visible-ion budget, percent [0,100]
	Dead      bool    // true iff Charge reached 0 via depletion

	drainRate float64 // percent removed per drain event
	accumMs   float64 // energized milliseconds since last drain event
}

// NewBattery creates a full battery. The drain rate must be positive and
// finite; anything else is fatal misconfiguration.
func NewBattery(drainRate float64) (*Battery, error) {
	if drainRate <= 0 || math.IsInf(drainRate, 0) || math.IsNaN(drainRate) {
		return nil, fmt.Errorf("battery: drain rate must be positive and finite, got %v", drainRate)
	}
	return &Battery{Charge: 100, IonBudget: 100, drainRate: drainRate}, nil
}

// Tick accumulates elapsed real time while energized and fires at most one
// drain event per call when the accumulator crosses 1000ms. Negative
// elapsed values are treated as zero. The dead flag is set the instant
// Charge reaches 0; IonBudget reaching 0 has no side effect. Returns
// whether a drain event fired.
func (b *Battery) Tick(elapsedMs float64, energized bool) bool {
	if !energized {
		return false
	}
	if elapsedMs > 0 {
		b.accumMs += elapsedMs
	}
	if b.accumMs < 1000 {
		return false
	}
	b.accumMs -= 1000

	b.Charge -= b.drainRate
	if b.Charge < 0 {
		b.Charge = 0
	}
	b.IonBudget -= b.drainRate
	if b.IonBudget < 0 {
		b.IonBudget = 0
	}
	if b.Charge == 0 {
		b.Dead = true
	}
	return true
}

// Reset restores a full battery. Idempotent.
func (b *Battery) Reset() {
	b.Charge = 100
	b.IonBudget = 100
	b.Dead = false
	b.accumMs = 0
}
