// Package ui renders the heads-up display.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title           string
	Charge          float64
	IonBudget       float64
	Dead            bool
	Closed          bool
	Energized       bool
	CarrierCount    int
	VisibleCarriers int
	IonCount        int
	Tick            int32
	FPS             int32
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Charge: %.0f%% | Ion budget: %.0f%%", data.Charge, data.IonBudget),
		10, 35, 16, rl.LightGray,
	)

	rl.DrawText(
		fmt.Sprintf("Carriers: %d (%d visible) | Ions: %d | Tick: %d | FPS: %d",
			data.CarrierCount, data.VisibleCarriers, data.IonCount, data.Tick, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := "OPEN"
	color := rl.Gray
	switch {
	case data.Dead:
		status = "DEPLETED - toggle to reset"
		color = rl.Red
	case data.Energized:
		status = "ENERGIZED"
		color = rl.Yellow
	case data.Closed:
		status = "CLOSED"
		color = rl.LightGray
	}
	rl.DrawText(status, 10, 75, 16, color)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
