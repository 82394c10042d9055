package telemetry

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowEndTick int32   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Circuit state sampled at window end
	Charge          float64 `csv:"charge"`
	IonBudget       float64 `csv:"ion_budget"`
	Dead            bool    `csv:"dead"`
	Closed          bool    `csv:"closed"`
	CarrierCount    int     `csv:"carriers"`
	VisibleCarriers int     `csv:"carriers_visible"`
	IonCount        int     `csv:"ions"`

	// Events during the window
	Toggles     int `csv:"toggles"`
	DrainEvents int `csv:"drain_events"`
	Depletions  int `csv:"depletions"`
	Resets      int `csv:"resets"`
	IonSpawns   int `csv:"ion_spawns"`
	IonDespawns int `csv:"ion_despawns"`

	// Ion lifetime distribution over despawns in the window
	IonLifetimeMean float64 `csv:"ion_lifetime_mean"`
	IonLifetimeP50  float64 `csv:"ion_lifetime_p50"`
	IonLifetimeP90  float64 `csv:"ion_lifetime_p90"`
}

// Sample is the circuit state handed to Flush at window end.
type Sample struct {
	SimTimeSec      float64
	Charge          float64
	IonBudget       float64
	Dead            bool
	Closed          bool
	CarrierCount    int
	VisibleCarriers int
	IonCount        int
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int32
	windowStartTick int32

	toggles     int
	drainEvents int
	depletions  int
	resets      int
	spawns      int
	despawns    int
	lifetimes   []float64
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts.
// ticksPerSec: nominal tick rate used for tick-to-time conversion.
func NewCollector(windowDurationSec, ticksPerSec float64) *Collector {
	ticks := int32(windowDurationSec * ticksPerSec)
	if ticks < 1 {
		ticks = 1
	}
	return &Collector{windowTicks: ticks}
}

// RecordToggle counts a switch toggle (including dead-state resets).
func (c *Collector) RecordToggle() { c.toggles++ }

// RecordDrainEvent counts a once-per-second battery drain.
func (c *Collector) RecordDrainEvent() { c.drainEvents++ }

// RecordDepletion counts the battery reaching its dead state.
func (c *Collector) RecordDepletion() { c.depletions++ }

// RecordReset counts a full circuit reset.
func (c *Collector) RecordReset() { c.resets++ }

// RecordSpawn counts an ion birth.
func (c *Collector) RecordSpawn() { c.spawns++ }

// RecordDespawns counts ion arrivals and takes their lifetimes.
func (c *Collector) RecordDespawns(n int, lifetimes []float64) {
	c.despawns += n
	c.lifetimes = append(c.lifetimes, lifetimes...)
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces the stats for the completed window and starts the next one.
func (c *Collector) Flush(currentTick int32, s Sample) WindowStats {
	mean, p50, p90 := LifetimeStats(c.lifetimes)

	stats := WindowStats{
		WindowEndTick:   currentTick,
		SimTimeSec:      s.SimTimeSec,
		Charge:          s.Charge,
		IonBudget:       s.IonBudget,
		Dead:            s.Dead,
		Closed:          s.Closed,
		CarrierCount:    s.CarrierCount,
		VisibleCarriers: s.VisibleCarriers,
		IonCount:        s.IonCount,
		Toggles:         c.toggles,
		DrainEvents:     c.drainEvents,
		Depletions:      c.depletions,
		Resets:          c.resets,
		IonSpawns:       c.spawns,
		IonDespawns:     c.despawns,
		IonLifetimeMean: mean,
		IonLifetimeP50:  p50,
		IonLifetimeP90:  p90,
	}

	c.windowStartTick = currentTick
	c.toggles = 0
	c.drainEvents = 0
	c.depletions = 0
	c.resets = 0
	c.spawns = 0
	c.despawns = 0
	c.lifetimes = c.lifetimes[:0]

	return stats
}

// WindowDurationTicks returns the window size in ticks.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowTicks
}
