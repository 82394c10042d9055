package systems

import (
	"math"
	"testing"
)

func TestBatteryDrainSequence(t *testing.T) {
	b, err := NewBattery(5)
	if err != nil {
		t.Fatalf("NewBattery: %v", err)
	}

	// One whole energized second per step drains exactly once.
	for i := 1; i <= 20; i++ {
		if !b.Tick(1000, true) {
			t.Fatalf("step %d: expected drain event", i)
		}
		want := 100 - float64(i)*5
		if b.Charge != want {
			t.Fatalf("step %d: charge = %v, want %v", i, b.Charge, want)
		}
		if b.IonBudget != want {
			t.Fatalf("step %d: ion budget = %v, want %v", i, b.IonBudget, want)
		}
	}

	if !b.Dead {
		t.Error("battery at zero charge not dead")
	}
}

func TestBatteryAccumulatesSubSecondFrames(t *testing.T) {
	b, err := NewBattery(5)
	if err != nil {
		t.Fatalf("NewBattery: %v", err)
	}

	// 16ms frames: no drain until a whole second has accumulated.
	for i := 0; i < 70; i++ {
		if b.Tick(16, true) {
			if ms := float64(i+1) * 16; ms < 1000 {
				t.Fatalf("drain after %vms", ms)
			}
			if b.Charge != 95 {
				t.Errorf("charge = %v, want 95", b.Charge)
			}
			return
		}
	}
	t.Error("no drain event after more than a second of 16ms frames")
}

func TestBatteryKeepsRemainderAfterDrain(t *testing.T) {
	b, err := NewBattery(5)
	if err != nil {
		t.Fatalf("NewBattery: %v", err)
	}

	if !b.Tick(1200, true) {
		t.Fatal("expected drain at 1200ms")
	}
	// 200ms carried over; 800ms more completes the next second.
	if b.Tick(700, true) {
		t.Error("unexpected drain at 1900ms accumulated")
	}
	if !b.Tick(100, true) {
		t.Error("expected drain at 2000ms accumulated")
	}
	if b.Charge != 90 {
		t.Errorf("charge = %v, want 90", b.Charge)
	}
}

func TestBatterySingleEventPerTick(t *testing.T) {
	b, err := NewBattery(5)
	if err != nil {
		t.Fatalf("NewBattery: %v", err)
	}

	// A pathological 3.5s frame still fires at most one event.
	b.Tick(3500, true)
	if b.Charge != 95 {
		t.Errorf("charge = %v, want 95 after one oversized frame", b.Charge)
	}
}

func TestBatteryIdleDoesNotAccumulate(t *testing.T) {
	b, err := NewBattery(5)
	if err != nil {
		t.Fatalf("NewBattery: %v", err)
	}

	for i := 0; i < 10; i++ {
		if b.Tick(600, false) {
			t.Fatal("drain while not energized")
		}
	}
	// Idle time must not have counted toward the next event.
	if b.Tick(600, true) {
		t.Error("drain after only 600 energized ms")
	}
	if b.Charge != 100 {
		t.Errorf("charge = %v, want 100", b.Charge)
	}
}

func TestBatteryFloorsAtZero(t *testing.T) {
	b, err := NewBattery(30)
	if err != nil {
		t.Fatalf("NewBattery: %v", err)
	}

	charges := []float64{70, 40, 10, 0}
	for i, want := range charges {
		b.Tick(1000, true)
		if b.Charge != want {
			t.Fatalf("event %d: charge = %v, want %v", i+1, b.Charge, want)
		}
	}
	if !b.Dead {
		t.Error("battery floored at zero but not dead")
	}
}

func TestBatteryNegativeElapsedIgnored(t *testing.T) {
	b, err := NewBattery(5)
	if err != nil {
		t.Fatalf("NewBattery: %v", err)
	}

	b.Tick(-500, true)
	if b.Tick(900, true) {
		t.Error("negative elapsed contributed to the accumulator")
	}
}

func TestBatteryReset(t *testing.T) {
	b, err := NewBattery(50)
	if err != nil {
		t.Fatalf("NewBattery: %v", err)
	}
	b.Tick(1000, true)
	b.Tick(1000, true)
	if !b.Dead {
		t.Fatal("expected dead battery")
	}

	for i := 0; i < 2; i++ {
		b.Reset()
		if b.Charge != 100 || b.IonBudget != 100 || b.Dead {
			t.Fatalf("reset %d: charge=%v budget=%v dead=%v", i+1, b.Charge, b.IonBudget, b.Dead)
		}
	}

	// Accumulator was cleared too.
	if b.Tick(900, true) {
		t.Error("drain right after reset")
	}
}

func TestNewBatteryValidation(t *testing.T) {
	for _, rate := range []float64{0, -5, math.Inf(1), math.NaN()} {
		if _, err := NewBattery(rate); err == nil {
			t.Errorf("NewBattery(%v): expected error", rate)
		}
	}
}
