// Package track provides the geometric mapping from a scalar track
// coordinate to 2D space on the closed rectangular conductor path.
// Everything here is pure and stateless.
package track

import (
	"fmt"
	"math"
)

// Axis identifies the orientation of the track segment a point lies on.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Point is a 2D position in screen/world units.
type Point struct {
	X, Y float32
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Pose is the full result of mapping a track coordinate: position, tangent
// direction in degrees (clockwise traversal: 0, 90, 180 or 270) and axis.
type Pose struct {
	Point
	TangentDeg float32
	Axis       Axis
}

// FieldMarker is a static decorative indicator placed along the track.
type FieldMarker struct {
	Point
	TangentDeg float32
}

// Spec holds the plain numbers a Board is built from.
type Spec struct {
	OuterX, OuterY float32 // outer conductor rectangle origin
	OuterW, OuterH float32
	Margin         float32 // inset from outer rect to the track midline

	BatteryW, BatteryH   float32 // battery footprint on the top segment
	GapW, GapH           float32 // switch-gap footprint, clockwise of the battery
	TerminalW, TerminalH float32 // negative-terminal emitter region
}

// Board is the fixed geometry of one circuit: the track midline rectangle
// and the footprints anchored to its top segment.
type Board struct {
	Outer     Rect
	Mid       Rect // track midline; carriers live on its perimeter
	Perimeter float32

	Battery   Rect  // occludes carriers unconditionally
	SwitchGap Rect  // occludes carriers only while the switch is open
	Emitter   Rect  // ion spawn region at the negative terminal
	Junction  Point // ion convergence target where the terminal meets the track
}

// NewBoard validates the spec and derives the board geometry.
func NewBoard(s Spec) (*Board, error) {
	if s.OuterW <= 0 || s.OuterH <= 0 {
		return nil, fmt.Errorf("track: outer rect must have positive size, got %vx%v", s.OuterW, s.OuterH)
	}
	if s.Margin <= 0 || 2*s.Margin >= s.OuterW || 2*s.Margin >= s.OuterH {
		return nil, fmt.Errorf("track: margin %v leaves no midline inside %vx%v", s.Margin, s.OuterW, s.OuterH)
	}
	for _, v := range []float32{s.BatteryW, s.BatteryH, s.GapW, s.GapH, s.TerminalW, s.TerminalH} {
		if v <= 0 || math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
			return nil, fmt.Errorf("track: footprint dimensions must be positive and finite")
		}
	}

	mid := Rect{
		X: s.OuterX + s.Margin,
		Y: s.OuterY + s.Margin,
		W: s.OuterW - 2*s.Margin,
		H: s.OuterH - 2*s.Margin,
	}

	// Battery sits centered on the top segment, straddling the midline.
	topCenterX := mid.X + mid.W/2
	battery := Rect{
		X: topCenterX - s.BatteryW/2,
		Y: mid.Y - s.BatteryH/2,
		W: s.BatteryW,
		H: s.BatteryH,
	}

	// Switch gap immediately clockwise (to the right on the top segment).
	gap := Rect{
		X: battery.X + battery.W + 10,
		Y: mid.Y - s.GapH/2,
		W: s.GapW,
		H: s.GapH,
	}

	// Emitter hugs the inside of the negative terminal (battery right edge).
	emitter := Rect{
		X: battery.X + battery.W - s.TerminalW - 5,
		Y: mid.Y - s.TerminalH/2,
		W: s.TerminalW,
		H: s.TerminalH,
	}

	return &Board{
		Outer:     Rect{X: s.OuterX, Y: s.OuterY, W: s.OuterW, H: s.OuterH},
		Mid:       mid,
		Perimeter: 2 * (mid.W + mid.H),
		Battery:   battery,
		SwitchGap: gap,
		Emitter:   emitter,
		Junction:  Point{X: battery.X + battery.W, Y: mid.Y},
	}, nil
}

// Wrap folds any coordinate, including negative values, into [0, Perimeter).
func (b *Board) Wrap(coord float32) float32 {
	c := float32(math.Mod(float64(coord), float64(b.Perimeter)))
	if c < 0 {
		c += b.Perimeter
	}
	return c
}

// Locate maps a track coordinate to its pose on the midline rectangle.
// The path runs clockwise: top left-to-right, right top-to-bottom, bottom
// right-to-left, left bottom-to-top. Piecewise linear, continuous at the
// corners, and periodic: Locate(0) == Locate(Perimeter).
func (b *Board) Locate(coord float32) Pose {
	c := b.Wrap(coord)
	w, h := b.Mid.W, b.Mid.H

	switch {
	case c < w: // top
		return Pose{
			Point:      Point{X: b.Mid.X + c, Y: b.Mid.Y},
			TangentDeg: 0,
			Axis:       AxisHorizontal,
		}
	case c < w+h: // right
		return Pose{
			Point:      Point{X: b.Mid.X + w, Y: b.Mid.Y + (c - w)},
			TangentDeg: 90,
			Axis:       AxisVertical,
		}
	case c < 2*w+h: // bottom
		return Pose{
			Point:      Point{X: b.Mid.X + w - (c - w - h), Y: b.Mid.Y + h},
			TangentDeg: 180,
			Axis:       AxisHorizontal,
		}
	default: // left
		return Pose{
			Point:      Point{X: b.Mid.X, Y: b.Mid.Y + h - (c - 2*w - h)},
			TangentDeg: 270,
			Axis:       AxisVertical,
		}
	}
}

// OffsetPoint shifts a pose perpendicular to its tangent by the given signed
// distance. Positive offsets point into the rectangle on every segment.
func OffsetPoint(p Pose, offset float32) Point {
	switch p.TangentDeg {
	case 0:
		return Point{X: p.X, Y: p.Y + offset}
	case 90:
		return Point{X: p.X - offset, Y: p.Y}
	case 180:
		return Point{X: p.X, Y: p.Y - offset}
	default: // 270
		return Point{X: p.X + offset, Y: p.Y}
	}
}

// Occluded reports whether a carrier at p must be hidden: always inside the
// battery footprint, and inside the switch gap only while the switch is open.
func (b *Board) Occluded(p Point, closed bool) bool {
	if b.Battery.Contains(p) {
		return true
	}
	if !closed && b.SwitchGap.Contains(p) {
		return true
	}
	return false
}

// FieldMarkers places markers at regular spacing along the track, skipping
// any that fall inside the battery footprint. Computed once at startup.
func (b *Board) FieldMarkers(spacing float32) []FieldMarker {
	if spacing <= 0 {
		return nil
	}
	count := int(b.Perimeter / spacing)
	markers := make([]FieldMarker, 0, count)
	for i := 0; i < count; i++ {
		pose := b.Locate(float32(i) * spacing)
		if b.Battery.Contains(pose.Point) {
			continue
		}
		markers = append(markers, FieldMarker{Point: pose.Point, TangentDeg: pose.TangentDeg})
	}
	return markers
}
