package camera

import (
	"math"
	"testing"
)

func TestNewCentersOnWorld(t *testing.T) {
	c := New(1280, 720, 1280, 720)
	if c.X != 640 || c.Y != 360 {
		t.Errorf("center = (%v, %v), want (640, 360)", c.X, c.Y)
	}
	if c.Zoom != 1 {
		t.Errorf("zoom = %v, want 1", c.Zoom)
	}
}

func TestWorldToScreenRoundTrip(t *testing.T) {
	c := New(1280, 720, 1280, 720)
	c.ZoomBy(2)

	points := [][2]float32{
		{640, 360},
		{100, 100},
		{1200, 700},
		{0, 0},
	}
	for _, p := range points {
		sx, sy := c.WorldToScreen(p[0], p[1])
		wx, wy := c.ScreenToWorld(sx, sy)
		if !near(wx, p[0]) || !near(wy, p[1]) {
			t.Errorf("round trip (%v, %v) -> (%v, %v)", p[0], p[1], wx, wy)
		}
	}
}

func TestIdentityAtUnitZoom(t *testing.T) {
	// Viewport matching the world at zoom 1 is a 1:1 mapping.
	c := New(1280, 720, 1280, 720)
	sx, sy := c.WorldToScreen(300, 200)
	if sx != 300 || sy != 200 {
		t.Errorf("WorldToScreen(300, 200) = (%v, %v), want identity", sx, sy)
	}
}

func TestZoomClamped(t *testing.T) {
	c := New(1280, 720, 1280, 720)

	c.ZoomBy(100)
	if c.Zoom != c.MaxZoom {
		t.Errorf("zoom = %v, want max %v", c.Zoom, c.MaxZoom)
	}
	c.ZoomBy(0.0001)
	if c.Zoom != c.MinZoom {
		t.Errorf("zoom = %v, want min %v", c.Zoom, c.MinZoom)
	}
}

func TestPanClampedToWorld(t *testing.T) {
	c := New(1280, 720, 1280, 720)
	c.ZoomBy(2)

	// Hard pan toward the top-left corner: the view edge stops at the world edge.
	c.Pan(-1e6, -1e6)
	if c.X != 320 || c.Y != 180 {
		t.Errorf("center = (%v, %v), want (320, 180)", c.X, c.Y)
	}

	c.Pan(1e6, 1e6)
	if c.X != 960 || c.Y != 540 {
		t.Errorf("center = (%v, %v), want (960, 540)", c.X, c.Y)
	}
}

func TestPanLockedWhenWorldFits(t *testing.T) {
	// At zoom 1 the whole world is visible; panning cannot move the view.
	c := New(1280, 720, 1280, 720)
	c.Pan(500, -300)
	if c.X != 640 || c.Y != 360 {
		t.Errorf("center = (%v, %v), want locked (640, 360)", c.X, c.Y)
	}
}

func TestResizeReclamps(t *testing.T) {
	c := New(1280, 720, 1280, 720)
	c.ZoomBy(2)
	c.Pan(-1e6, 0)

	c.Resize(2560, 720)
	// The wider viewport at 2x shows the full world width again.
	if c.X != 640 {
		t.Errorf("center x = %v after resize, want 640", c.X)
	}
}

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-3
}
