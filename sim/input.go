package sim

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/voltlab/circuitsim/track"
)

// handleInput processes keyboard and mouse input.
func (s *Sim) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		s.Toggle()
	}

	// Clicking the switch or the battery also toggles: the one interactive
	// element of the circuit.
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		wx, wy := s.cam.ScreenToWorld(mouse.X, mouse.Y)
		p := track.Point{X: wx, Y: wy}
		if s.board.SwitchGap.Contains(p) || s.board.Battery.Contains(p) {
			s.Toggle()
		}
	}

	if rl.IsKeyPressed(rl.KeyD) {
		s.debugOverlay = !s.debugOverlay
	}

	s.handleCameraInput()
}

// handleCameraInput processes camera pan/zoom controls.
func (s *Sim) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0)

	if rl.IsKeyDown(rl.KeyLeft) {
		s.cam.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		s.cam.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		s.cam.Pan(0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		s.cam.Pan(0, panSpeed)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		s.cam.ZoomBy(1 + wheel*0.1)
	}

	// Window resize propagation
	if rl.IsWindowResized() {
		s.cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}
}
