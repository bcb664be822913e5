package simulator

import (
	"time"

	"solar_battery_sim/internal/model"
	"solar_battery_sim/internal/solar"
)

// StepResult is the outcome of a single integration step.
type StepResult struct {
	Timestamp  time.Time `json:"timestamp"`
	ChargeWh   float64   `json:"charge_wh"` // stored energy at step start
	SolarW     float64   `json:"solar_w"`
	DaylightH  float64   `json:"daylight_h"`
	NetWh      float64   `json:"net_wh"`
	SoCPercent float64   `json:"soc_percent"` // after the step
}

// Summary holds run totals and battery statistics.
type Summary struct {
	SolarKWh        float64         `json:"solar_kwh"`
	LoadKWh         float64         `json:"load_kwh"`
	SpilledKWh      float64         `json:"spilled_kwh"`
	UnmetKWh        float64         `json:"unmet_kwh"`
	MinSoCWh        float64         `json:"min_soc_wh"`
	MaxSoCWh        float64         `json:"max_soc_wh"`
	FinalSoCWh      float64         `json:"final_soc_wh"`
	StepsAtFull     int             `json:"steps_at_full"`
	StepsAtEmpty    int             `json:"steps_at_empty"`
	TimeAtSoCPctSec map[int]float64 `json:"time_at_soc_pct_sec"`
}

// Result is the full output of a simulation run.
type Result struct {
	Params   model.Params `json:"params"`
	Charge   model.Series `json:"charge"`
	Solar    model.Series `json:"solar"`
	Daylight model.Series `json:"daylight"`
	Summary  Summary      `json:"summary"`
}

// step computes one integration step starting at now and applies it to the
// battery. The recorded charge is the stored energy *before* the step, so the
// first point of a run shows the initial charge.
func step(now time.Time, p model.Params, b *Battery) StepResult {
	dt := p.Step()
	solarW := solar.Power(now, dt, p.LatitudeDeg, p.SolarNominalW)
	overlapH := solar.DaylightOverlap(now, now.Add(dt), p.LatitudeDeg)

	solarWh := solarW * overlapH
	loadWh := p.LoadW * dt.Hours()
	netWh := solarWh - loadWh

	chargeBefore := b.StoredWh
	b.Apply(netWh, dt)

	return StepResult{
		Timestamp:  now,
		ChargeWh:   chargeBefore,
		SolarW:     solarW,
		DaylightH:  solar.DaylightHours(p.LatitudeDeg, now.YearDay()-1),
		NetWh:      netWh,
		SoCPercent: b.SoCPercent(),
	}
}

// Run executes a full simulation over [start day, end day) and returns the
// recorded series and summary. Deterministic: same params, same result.
func Run(p model.Params) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	start := p.StartTime()
	end := p.EndTime()
	dt := p.Step()
	estSteps := int(end.Sub(start)/dt) + 1

	res := Result{
		Params:   p,
		Charge:   model.NewSeries(model.SeriesCharge, estSteps),
		Solar:    model.NewSeries(model.SeriesSolar, estSteps),
		Daylight: model.NewSeries(model.SeriesDaylight, estSteps),
	}

	b := NewBattery(p.BatteryCapacityWh, p.InitialChargeWh)

	var solarWh, loadWh float64
	for now := start; now.Before(end); now = now.Add(dt) {
		sr := step(now, p, b)
		res.Charge.Points = append(res.Charge.Points, model.Point{Timestamp: sr.Timestamp, Value: sr.ChargeWh})
		res.Solar.Points = append(res.Solar.Points, model.Point{Timestamp: sr.Timestamp, Value: sr.SolarW})
		res.Daylight.Points = append(res.Daylight.Points, model.Point{Timestamp: sr.Timestamp, Value: sr.DaylightH})

		stepLoadWh := p.LoadW * dt.Hours()
		solarWh += sr.NetWh + stepLoadWh
		loadWh += stepLoadWh
	}

	res.Summary = summarize(b, solarWh, loadWh)
	return res, nil
}

func summarize(b *Battery, solarWh, loadWh float64) Summary {
	return Summary{
		SolarKWh:        solarWh / 1000,
		LoadKWh:         loadWh / 1000,
		SpilledKWh:      b.SpilledWh / 1000,
		UnmetKWh:        b.UnmetWh / 1000,
		MinSoCWh:        b.MinStoredWh,
		MaxSoCWh:        b.MaxStoredWh,
		FinalSoCWh:      b.StoredWh,
		StepsAtFull:     b.StepsAtFull,
		StepsAtEmpty:    b.StepsAtEmpty,
		TimeAtSoCPctSec: b.TimeAtSoCPctSec,
	}
}
