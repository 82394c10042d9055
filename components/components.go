// Package components defines ECS components for the stationary carrier
// population.
package components

// TrackPos is a carrier's position on the conductor: an arc-length
// coordinate in [0, perimeter) plus a small perpendicular offset that is
// assigned once at creation and never mutated.
type TrackPos struct {
	Coord  float32
	Offset float32
}

// Wobble holds the idle-vibration parameters used by the renderer while the
// circuit is not energized. Generated once from the seeded rng and frozen;
// the vibration is a drawing effect, never a state mutation.
type Wobble struct {
	AmpX   float32
	AmpY   float32
	Period float32 // seconds per oscillation
	Phase  float32 // radians, desyncs carriers from each other
}
