package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/voltlab/circuitsim/camera"
	"github.com/voltlab/circuitsim/systems"
)

var (
	carrierColor = rl.Color{R: 80, G: 170, B: 255, A: 220}
	ionColor     = rl.Color{R: 120, G: 255, B: 160, A: 230}
)

// DrawCarriers renders the stationary carrier population. While the circuit
// is not energized each carrier jiggles around its frozen position using its
// own vibration parameters; the simulation state is untouched.
func DrawCarriers(cam *camera.Camera, carriers []systems.CarrierView, energized bool, timeSec float64) {
	for i := range carriers {
		c := &carriers[i]
		if !c.Visible {
			continue
		}

		x, y := c.X, c.Y
		if !energized {
			phase := 2*math.Pi*timeSec/float64(c.Period) + float64(c.Phase)
			s := float32(math.Sin(phase))
			x += c.AmpX * s
			y += c.AmpY * s
		}

		sx, sy := cam.WorldToScreen(x, y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 2*cam.Zoom, carrierColor)
	}
}

// DrawIons renders the transient carriers converging on the junction.
func DrawIons(cam *camera.Camera, ions []systems.Ion) {
	for i := range ions {
		sx, sy := cam.WorldToScreen(ions[i].X, ions[i].Y)
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, 3*cam.Zoom, ionColor)
		rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, 3*cam.Zoom, rl.White)
	}
}
