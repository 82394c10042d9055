package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/voltlab/circuitsim/components"
	"github.com/voltlab/circuitsim/track"
)

// CirculationParams configures the stationary carrier population.
type CirculationParams struct {
	Count        int
	Speed        float32 // track units per second, identical for all carriers
	MaxOffset    float32 // perpendicular jitter amplitude
	VibrationAmp float32
	PeriodMin    float32
	PeriodMax    float32
}

// CarrierView is the read-only per-carrier snapshot handed to the renderer.
type CarrierView struct {
	X, Y    float32
	Visible bool

	// Idle-vibration parameters, applied by the renderer when the circuit
	// is not energized.
	AmpX, AmpY float32
	Period     float32
	Phase      float32
}

// Circulation advances the fixed population of stationary carriers along
// the track. Carriers are created once at construction and never added or
// removed afterwards.
type Circulation struct {
	board  *track.Board
	speed  float32
	count  int
	mapper *ecs.Map2[components.TrackPos, components.Wobble]
	filter *ecs.Filter2[components.TrackPos, components.Wobble]
}

// NewCirculation spawns the carrier population into the world with uniform
// random coordinates and frozen jitter/vibration attributes drawn from rng.
func NewCirculation(world *ecs.World, board *track.Board, p CirculationParams, rng *rand.Rand) (*Circulation, error) {
	if p.Count <= 0 {
		return nil, fmt.Errorf("circulation: carrier count must be positive, got %d", p.Count)
	}
	if p.Speed <= 0 || math.IsInf(float64(p.Speed), 0) || math.IsNaN(float64(p.Speed)) {
		return nil, fmt.Errorf("circulation: speed must be positive and finite, got %v", p.Speed)
	}
	if p.MaxOffset <= 0 || p.VibrationAmp <= 0 || p.PeriodMin <= 0 || p.PeriodMax < p.PeriodMin {
		return nil, fmt.Errorf("circulation: invalid jitter/vibration parameters")
	}

	c := &Circulation{
		board:  board,
		speed:  p.Speed,
		count:  p.Count,
		mapper: ecs.NewMap2[components.TrackPos, components.Wobble](world),
		filter: ecs.NewFilter2[components.TrackPos, components.Wobble](world),
	}

	for i := 0; i < p.Count; i++ {
		pos := components.TrackPos{
			Coord:  rng.Float32() * board.Perimeter,
			Offset: (rng.Float32()*2 - 1) * p.MaxOffset,
		}
		wob := components.Wobble{
			AmpX:   (rng.Float32()*2 - 1) * p.VibrationAmp,
			AmpY:   (rng.Float32()*2 - 1) * p.VibrationAmp,
			Period: p.PeriodMin + rng.Float32()*(p.PeriodMax-p.PeriodMin),
			Phase:  rng.Float32() * 2 * math.Pi,
		}
		c.mapper.NewEntity(&pos, &wob)
	}

	return c, nil
}

// Advance moves every carrier by speed*elapsed while energized, wrapping
// into [0, perimeter). Positions are frozen when not energized; the idle
// vibration shown then is a renderer effect over the frozen position.
func (c *Circulation) Advance(elapsedSec float32, energized bool) {
	if !energized || elapsedSec <= 0 {
		return
	}
	delta := c.speed * elapsedSec

	query := c.filter.Query()
	for query.Next() {
		pos, _ := query.Get()
		pos.Coord = c.board.Wrap(pos.Coord + delta)
	}
}

// Collect appends the current carrier views to out (reusing its backing
// array) with visibility resolved against the battery and switch-gap
// footprints for the given switch state.
func (c *Circulation) Collect(closed bool, out []CarrierView) []CarrierView {
	out = out[:0]

	query := c.filter.Query()
	for query.Next() {
		pos, wob := query.Get()
		pose := c.board.Locate(pos.Coord)
		pt := track.OffsetPoint(pose, pos.Offset)

		out = append(out, CarrierView{
			X:       pt.X,
			Y:       pt.Y,
			Visible: !c.board.Occluded(pt, closed),
			AmpX:    wob.AmpX,
			AmpY:    wob.AmpY,
			Period:  wob.Period,
			Phase:   wob.Phase,
		})
	}
	return out
}

// Count returns the fixed population size.
func (c *Circulation) Count() int {
	return c.count
}
