// Package renderer draws the circuit board and its populations. It consumes
// read-only snapshots only; nothing here mutates simulation state.
package renderer

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/voltlab/circuitsim/camera"
	"github.com/voltlab/circuitsim/track"
)

const wireThickness = 14

// wireColor is the copper tone of the conductor.
var wireColor = rl.Color{R: 184, G: 115, B: 51, A: 255}

// DrawBoard renders the conductor loop, battery body, switch and the static
// field markers (markers only while energized).
func DrawBoard(cam *camera.Camera, b *track.Board, closed, energized, dead bool,
	charge, ionBudget float64, markers []track.FieldMarker) {

	drawWire(cam, b, closed)
	if energized {
		drawFieldMarkers(cam, markers)
	}
	drawBattery(cam, b, charge, ionBudget, dead)
	drawSwitch(cam, b, closed)
}

// drawWire draws the four conductor sides along the track midline.
func drawWire(cam *camera.Camera, b *track.Board, closed bool) {
	corners := [4]track.Point{
		{X: b.Mid.X, Y: b.Mid.Y},
		{X: b.Mid.X + b.Mid.W, Y: b.Mid.Y},
		{X: b.Mid.X + b.Mid.W, Y: b.Mid.Y + b.Mid.H},
		{X: b.Mid.X, Y: b.Mid.Y + b.Mid.H},
	}
	for i := 0; i < 4; i++ {
		a := corners[i]
		c := corners[(i+1)%4]
		ax, ay := cam.WorldToScreen(a.X, a.Y)
		cx, cy := cam.WorldToScreen(c.X, c.Y)
		rl.DrawLineEx(
			rl.Vector2{X: ax, Y: ay},
			rl.Vector2{X: cx, Y: cy},
			wireThickness*cam.Zoom,
			wireColor,
		)
	}
}

// drawBattery draws the battery body with terminal plates and charge bars.
func drawBattery(cam *camera.Camera, b *track.Board, charge, ionBudget float64, dead bool) {
	x, y := cam.WorldToScreen(b.Battery.X, b.Battery.Y)
	w := b.Battery.W * cam.Zoom
	h := b.Battery.H * cam.Zoom

	body := rl.DarkGray
	if dead {
		body = rl.Color{R: 60, G: 30, B: 30, A: 255}
	}
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), body)
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), rl.LightGray)

	// Terminal plates: long positive on the left, short negative on the right
	plateH := h * 0.6
	plateY := y + (h-plateH)/2
	rl.DrawRectangle(int32(x+4*cam.Zoom), int32(plateY), int32(4*cam.Zoom), int32(plateH), rl.LightGray)
	rl.DrawRectangle(int32(x+w-8*cam.Zoom), int32(plateY+plateH*0.2), int32(4*cam.Zoom), int32(plateH*0.6), rl.LightGray)
	rl.DrawText("+", int32(x+10*cam.Zoom), int32(y+4*cam.Zoom), int32(16*cam.Zoom), rl.White)
	rl.DrawText("-", int32(x+w-18*cam.Zoom), int32(y+4*cam.Zoom), int32(16*cam.Zoom), rl.White)

	// Charge and ion-budget bars along the bottom of the body
	barW := w - 12*cam.Zoom
	barX := x + 6*cam.Zoom
	barY := y + h - 14*cam.Zoom
	drawLevelBar(barX, barY, barW, 4*cam.Zoom, charge, rl.Green)
	drawLevelBar(barX, barY+6*cam.Zoom, barW, 4*cam.Zoom, ionBudget, rl.SkyBlue)

	if dead {
		rl.DrawText("DEAD", int32(x+w/2-22*cam.Zoom), int32(y+h/2-8*cam.Zoom), int32(14*cam.Zoom), rl.Red)
	} else {
		rl.DrawText(fmt.Sprintf("%.0f%%", charge), int32(x+w/2-14*cam.Zoom), int32(y+h/2-8*cam.Zoom), int32(12*cam.Zoom), rl.White)
	}
}

func drawLevelBar(x, y, w, h float32, pct float64, color rl.Color) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), rl.Color{R: 40, G: 40, B: 40, A: 255})
	rl.DrawRectangle(int32(x), int32(y), int32(w*float32(pct)/100), int32(h), color)
}

// drawSwitch draws the switch blade over the gap footprint: a closed link
// or an open blade lifted off the track.
func drawSwitch(cam *camera.Camera, b *track.Board, closed bool) {
	gap := b.SwitchGap
	midY := gap.Y + gap.H/2

	ax, ay := cam.WorldToScreen(gap.X, midY)
	bx, by := cam.WorldToScreen(gap.X+gap.W, midY)

	// Hinge and contact posts
	rl.DrawCircleV(rl.Vector2{X: ax, Y: ay}, 4*cam.Zoom, rl.LightGray)
	rl.DrawCircleV(rl.Vector2{X: bx, Y: by}, 4*cam.Zoom, rl.LightGray)

	if closed {
		rl.DrawLineEx(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: bx, Y: by}, 5*cam.Zoom, wireColor)
		return
	}

	// Open blade at ~35 degrees off the track
	angle := float32(-35 * math.Pi / 180)
	tipX := ax + gap.W*cam.Zoom*float32(math.Cos(float64(angle)))
	tipY := ay + gap.W*cam.Zoom*float32(math.Sin(float64(angle)))
	rl.DrawLineEx(rl.Vector2{X: ax, Y: ay}, rl.Vector2{X: tipX, Y: tipY}, 5*cam.Zoom, rl.Gray)
}

// drawFieldMarkers draws the static decorative field indicators as small
// chevrons pointing along the tangent.
func drawFieldMarkers(cam *camera.Camera, markers []track.FieldMarker) {
	for _, m := range markers {
		x, y := cam.WorldToScreen(m.X, m.Y)
		rad := float64(m.TangentDeg) * math.Pi / 180
		dx := float32(math.Cos(rad)) * 8 * cam.Zoom
		dy := float32(math.Sin(rad)) * 8 * cam.Zoom
		// Perpendicular half-width of the chevron
		px := -dy * 0.4
		py := dx * 0.4

		tip := rl.Vector2{X: x + dx/2, Y: y + dy/2}
		left := rl.Vector2{X: x - dx/2 + px, Y: y - dy/2 + py}
		right := rl.Vector2{X: x - dx/2 - px, Y: y - dy/2 - py}

		color := rl.Color{R: 255, G: 220, B: 80, A: 160}
		rl.DrawLineEx(left, tip, 2*cam.Zoom, color)
		rl.DrawLineEx(right, tip, 2*cam.Zoom, color)
	}
}

// DrawDebugOverlay outlines the footprint rectangles and the ion target.
func DrawDebugOverlay(cam *camera.Camera, b *track.Board) {
	for _, r := range []struct {
		rect  track.Rect
		color rl.Color
	}{
		{b.Battery, rl.Red},
		{b.SwitchGap, rl.Orange},
		{b.Emitter, rl.SkyBlue},
		{b.Mid, rl.DarkGreen},
	} {
		x, y := cam.WorldToScreen(r.rect.X, r.rect.Y)
		rl.DrawRectangleLines(int32(x), int32(y), int32(r.rect.W*cam.Zoom), int32(r.rect.H*cam.Zoom), r.color)
	}
	jx, jy := cam.WorldToScreen(b.Junction.X, b.Junction.Y)
	rl.DrawCircleLines(int32(jx), int32(jy), 6*cam.Zoom, rl.SkyBlue)
}
