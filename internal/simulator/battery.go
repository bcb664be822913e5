package simulator

import (
	"math"
	"time"
)

// Battery is a lossless energy store clamped to [0, capacity]. Energy that
// cannot be absorbed when full, or served when empty, is tracked separately.
type Battery struct {
	CapacityWh float64
	StoredWh   float64

	// Stats
	SpilledWh       float64 // surplus discarded because the battery was full
	UnmetWh         float64 // load that could not be served from an empty battery
	StepsAtFull     int
	StepsAtEmpty    int
	MinStoredWh     float64
	MaxStoredWh     float64
	TimeAtSoCPctSec map[int]float64 // seconds spent per 10% SoC bucket
}

// NewBattery creates a battery with the given capacity and initial charge.
// The initial charge is clamped to [0, capacity].
func NewBattery(capacityWh, initialWh float64) *Battery {
	stored := math.Min(math.Max(initialWh, 0), capacityWh)
	return &Battery{
		CapacityWh:      capacityWh,
		StoredWh:        stored,
		MinStoredWh:     stored,
		MaxStoredWh:     stored,
		TimeAtSoCPctSec: make(map[int]float64),
	}
}

// Apply adds deltaWh (positive = surplus, negative = deficit) to the stored
// energy, clamping to the capacity bounds, and records time-at-SoC stats for
// the step duration.
func (b *Battery) Apply(deltaWh float64, dt time.Duration) {
	unbounded := b.StoredWh + deltaWh

	switch {
	case unbounded < 0:
		b.UnmetWh += -unbounded
		b.StoredWh = 0
		b.StepsAtEmpty++
	case unbounded > b.CapacityWh:
		b.SpilledWh += unbounded - b.CapacityWh
		b.StoredWh = b.CapacityWh
		b.StepsAtFull++
	default:
		b.StoredWh = unbounded
	}

	if b.StoredWh < b.MinStoredWh {
		b.MinStoredWh = b.StoredWh
	}
	if b.StoredWh > b.MaxStoredWh {
		b.MaxStoredWh = b.StoredWh
	}

	b.recordSoC(dt.Seconds())
}

// SoCPercent returns the state of charge as a percentage of capacity.
func (b *Battery) SoCPercent() float64 {
	if b.CapacityWh <= 0 {
		return 0
	}
	return b.StoredWh / b.CapacityWh * 100
}

// recordSoC accumulates the time-at-SoC histogram in 10% buckets.
func (b *Battery) recordSoC(dtSec float64) {
	bucket := int(math.Floor(b.SoCPercent()/10)) * 10
	if bucket < 0 {
		bucket = 0
	}
	if bucket > 100 {
		bucket = 100
	}
	b.TimeAtSoCPctSec[bucket] += dtSec
}

// Reset restores the battery to the given initial charge and clears stats.
func (b *Battery) Reset(initialWh float64) {
	stored := math.Min(math.Max(initialWh, 0), b.CapacityWh)
	b.StoredWh = stored
	b.SpilledWh = 0
	b.UnmetWh = 0
	b.StepsAtFull = 0
	b.StepsAtEmpty = 0
	b.MinStoredWh = stored
	b.MaxStoredWh = stored
	b.TimeAtSoCPctSec = make(map[int]float64)
}
