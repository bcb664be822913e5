package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var stepDt = 45 * time.Minute

func TestBattery_NewClampsInitialCharge(t *testing.T) {
	b := NewBattery(1000, 1500)
	assert.Equal(t, 1000.0, b.StoredWh)

	b = NewBattery(1000, -10)
	assert.Equal(t, 0.0, b.StoredWh)
}

func TestBattery_ApplySurplus(t *testing.T) {
	b := NewBattery(1000, 100)
	b.Apply(250, stepDt)
	assert.InDelta(t, 350, b.StoredWh, 1e-9)
	assert.Equal(t, 0.0, b.SpilledWh)
	assert.Equal(t, 0.0, b.UnmetWh)
}

func TestBattery_ApplyDeficit(t *testing.T) {
	b := NewBattery(100, 50)
	// Constant 20 W load over 2 h with no solar
	b.Apply(-40, 2*time.Hour)
	assert.InDelta(t, 10, b.StoredWh, 1e-9)
}

func TestBattery_ClampsAtCapacity(t *testing.T) {
	b := NewBattery(1000, 900)
	b.Apply(300, stepDt)
	assert.Equal(t, 1000.0, b.StoredWh)
	assert.InDelta(t, 200, b.SpilledWh, 1e-9)
	assert.Equal(t, 1, b.StepsAtFull)
}

func TestBattery_ClampsAtEmpty(t *testing.T) {
	b := NewBattery(1000, 50)
	b.Apply(-120, stepDt)
	assert.Equal(t, 0.0, b.StoredWh)
	assert.InDelta(t, 70, b.UnmetWh, 1e-9)
	assert.Equal(t, 1, b.StepsAtEmpty)
}

func TestBattery_TracksMinMax(t *testing.T) {
	b := NewBattery(1000, 500)
	b.Apply(-200, stepDt)
	b.Apply(400, stepDt)
	assert.InDelta(t, 300, b.MinStoredWh, 1e-9)
	assert.InDelta(t, 700, b.MaxStoredWh, 1e-9)
}

func TestBattery_SoCHistogram(t *testing.T) {
	b := NewBattery(1000, 500)
	b.Apply(0, time.Hour)    // stays at 50% -> bucket 50
	b.Apply(-300, time.Hour) // drops to 20% -> bucket 20

	assert.InDelta(t, 3600, b.TimeAtSoCPctSec[50], 1e-9)
	assert.InDelta(t, 3600, b.TimeAtSoCPctSec[20], 1e-9)
}

func TestBattery_Reset(t *testing.T) {
	b := NewBattery(1000, 500)
	b.Apply(2000, stepDt)
	b.Reset(100)

	assert.Equal(t, 100.0, b.StoredWh)
	assert.Equal(t, 0.0, b.SpilledWh)
	assert.Equal(t, 0, b.StepsAtFull)
	assert.Empty(t, b.TimeAtSoCPctSec)
	assert.Equal(t, 100.0, b.MinStoredWh)
}

func TestBattery_SoCPercentZeroCapacity(t *testing.T) {
	b := NewBattery(0, 0)
	assert.Equal(t, 0.0, b.SoCPercent())
}
