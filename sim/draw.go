package sim

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/voltlab/circuitsim/renderer"
	"github.com/voltlab/circuitsim/ui"
)

// Update runs input handling and one simulation tick on the wall clock.
func (s *Sim) Update() {
	s.handleInput()
	s.perf.RecordFrame()
	s.Step(time.Now())
}

// Draw renders the current snapshot.
func (s *Sim) Draw() {
	snap := &s.snap

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 18, G: 18, B: 24, A: 255})

	renderer.DrawBoard(s.cam, s.board, snap.Closed, snap.Energized, snap.Dead,
		snap.Charge, snap.IonBudget, snap.Markers)
	renderer.DrawCarriers(s.cam, snap.Carriers, snap.Energized, rl.GetTime())
	renderer.DrawIons(s.cam, snap.Ions)

	if s.debugOverlay {
		renderer.DrawDebugOverlay(s.cam, s.board)
	}

	visible := 0
	for i := range snap.Carriers {
		if snap.Carriers[i].Visible {
			visible++
		}
	}
	s.hud.Draw(ui.HUDData{
		Title:           "Circuit Sim",
		Charge:          snap.Charge,
		IonBudget:       snap.IonBudget,
		Dead:            snap.Dead,
		Closed:          snap.Closed,
		Energized:       snap.Energized,
		CarrierCount:    len(snap.Carriers),
		VisibleCarriers: visible,
		IonCount:        len(snap.Ions),
		Tick:            snap.Tick,
		FPS:             rl.GetFPS(),
	})
	s.hud.DrawControls(int32(rl.GetScreenHeight()),
		"[SPACE/click] toggle switch   [arrows] pan   [wheel] zoom   [D] debug")

	rl.EndDrawing()
}
