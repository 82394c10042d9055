// Track geometry preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/trackpreview
package main

import (
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/voltlab/circuitsim/camera"
	"github.com/voltlab/circuitsim/config"
	"github.com/voltlab/circuitsim/renderer"
	"github.com/voltlab/circuitsim/track"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	panelWidth   = 280
)

func main() {
	if err := config.Init(""); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Track Geometry Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	margin := float32(cfg.Board.Margin)
	spacing := float32(cfg.Field.MarkerSpacing)
	closed := false
	showFootprints := true

	cam := camera.New(windowWidth, windowHeight, windowWidth, windowHeight)

	board, markers, err := rebuild(cfg, margin, spacing)
	if err != nil {
		slog.Error("failed to build board", "error", err)
		os.Exit(1)
	}

	for !rl.WindowShouldClose() {
		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 18, G: 18, B: 24, A: 255})

		renderer.DrawBoard(cam, board, closed, true, false, 100, 100, markers)
		if showFootprints {
			renderer.DrawDebugOverlay(cam, board)
		}

		// Control panel
		panelX := float32(windowWidth - panelWidth - 10)
		panelY := float32(20)

		rl.DrawText("Track Parameters", int32(panelX), int32(panelY), 20, rl.LightGray)
		panelY += 35

		rl.DrawText("Margin (midline inset)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newMargin := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"10", "100",
			margin, 10, 100,
		)
		rl.DrawText(fmt.Sprintf("%.0f", margin), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.LightGray)
		panelY += 35

		rl.DrawText("Marker spacing (track units)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newSpacing := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"20", "200",
			spacing, 20, 200,
		)
		rl.DrawText(fmt.Sprintf("%.0f", spacing), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.LightGray)
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(closed, "Open switch", "Close switch")) {
			closed = !closed
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, toggleText(showFootprints, "Hide rects", "Show rects")) {
			showFootprints = !showFootprints
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Perimeter: %.0f", board.Perimeter), int32(panelX), int32(panelY), 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("Markers: %d", len(markers)), int32(panelX), int32(panelY+20), 16, rl.LightGray)

		rl.EndDrawing()

		if newMargin != margin || newSpacing != spacing {
			margin = newMargin
			spacing = newSpacing
			if b, m, err := rebuild(cfg, margin, spacing); err == nil {
				board, markers = b, m
			}
		}
	}
}

// rebuild derives a board and markers for the slider values.
func rebuild(cfg *config.Config, margin, spacing float32) (*track.Board, []track.FieldMarker, error) {
	board, err := track.NewBoard(track.Spec{
		OuterX:    (windowWidth - float32(cfg.Board.Width)) / 2,
		OuterY:    (windowHeight - float32(cfg.Board.Height)) / 2,
		OuterW:    float32(cfg.Board.Width),
		OuterH:    float32(cfg.Board.Height),
		Margin:    margin,
		BatteryW:  float32(cfg.Battery.Width),
		BatteryH:  float32(cfg.Battery.Height),
		GapW:      float32(cfg.Battery.GapWidth),
		GapH:      float32(cfg.Battery.GapHeight),
		TerminalW: float32(cfg.Battery.TerminalWidth),
		TerminalH: float32(cfg.Battery.TerminalHeight),
	})
	if err != nil {
		return nil, nil, err
	}
	return board, board.FieldMarkers(spacing), nil
}

func toggleText(on bool, yes, no string) string {
	if on {
		return yes
	}
	return no
}
