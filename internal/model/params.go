package model

import (
	"errors"
	"fmt"
	"time"
)

// SimYear is the calendar year every simulation runs in. It is a non-leap
// year, so day-of-year values map to the same dates on every run.
const SimYear = 2023

// DaysInYear is the number of simulatable days in SimYear.
const DaysInYear = 365

// Params holds the user-configurable simulation parameters.
type Params struct {
	LatitudeDeg       float64 `json:"latitude_deg" yaml:"latitude_deg"`
	LoadW             float64 `json:"load_w" yaml:"load_w"`
	BatteryCapacityWh float64 `json:"battery_capacity_wh" yaml:"battery_capacity_wh"`
	InitialChargeWh   float64 `json:"initial_charge_wh" yaml:"initial_charge_wh"`
	SolarNominalW     float64 `json:"solar_nominal_w" yaml:"solar_nominal_w"`
	StepMinutes       int     `json:"step_minutes" yaml:"step_minutes"`
	// StartDay and EndDay are 1-based days of year. Zero means day 1.
	StartDay int `json:"start_day" yaml:"start_day"`
	EndDay   int `json:"end_day" yaml:"end_day"`
}

// DefaultParams returns the stock scenario: a 100 W panel, 1 kWh battery and
// a 25 W constant load at latitude 36°N, simulated over the whole year.
func DefaultParams() Params {
	return Params{
		LatitudeDeg:       36,
		LoadW:             25,
		BatteryCapacityWh: 1000,
		InitialChargeWh:   0,
		SolarNominalW:     100,
		StepMinutes:       45,
		StartDay:          1,
		EndDay:            364,
	}
}

var (
	ErrLatitudeRange = errors.New("latitude must be between -66 and 66 degrees")
	ErrNegativeLoad  = errors.New("load must be >= 0 W")
	ErrNegativeSolar = errors.New("solar nominal output must be >= 0 W")
	ErrCapacityRange = errors.New("battery capacity must be >= 0 Wh")
	ErrInitialCharge = errors.New("initial charge must be between 0 and battery capacity")
	ErrStepRange     = errors.New("step must be between 1 minute and 24 hours")
	ErrDayRange      = fmt.Errorf("days must be between 1 and %d", DaysInYear)
	ErrDayOrder      = errors.New("start day must not be after end day")
)

// Validate checks parameter bounds. The latitude bound excludes polar
// latitudes where the day-length formula has no solution on some days.
func (p Params) Validate() error {
	if p.LatitudeDeg < -66 || p.LatitudeDeg > 66 {
		return ErrLatitudeRange
	}
	if p.LoadW < 0 {
		return ErrNegativeLoad
	}
	if p.SolarNominalW < 0 {
		return ErrNegativeSolar
	}
	if p.BatteryCapacityWh < 0 {
		return ErrCapacityRange
	}
	if p.InitialChargeWh < 0 || p.InitialChargeWh > p.BatteryCapacityWh {
		return ErrInitialCharge
	}
	if p.StepMinutes < 1 || p.StepMinutes > 24*60 {
		return ErrStepRange
	}
	if p.startDay() > DaysInYear || p.endDay() > DaysInYear {
		return ErrDayRange
	}
	if p.startDay() > p.endDay() {
		return ErrDayOrder
	}
	return nil
}

// Merge overlays non-zero fields from override onto p. Used when a request
// or config file supplies only a subset of the parameters.
func Merge(p, override Params) Params {
	out := p
	if override.LatitudeDeg != 0 {
		out.LatitudeDeg = override.LatitudeDeg
	}
	if override.LoadW != 0 {
		out.LoadW = override.LoadW
	}
	if override.BatteryCapacityWh != 0 {
		out.BatteryCapacityWh = override.BatteryCapacityWh
	}
	if override.InitialChargeWh != 0 {
		out.InitialChargeWh = override.InitialChargeWh
	}
	if override.SolarNominalW != 0 {
		out.SolarNominalW = override.SolarNominalW
	}
	if override.StepMinutes != 0 {
		out.StepMinutes = override.StepMinutes
	}
	if override.StartDay != 0 {
		out.StartDay = override.StartDay
	}
	if override.EndDay != 0 {
		out.EndDay = override.EndDay
	}
	return out
}

func (p Params) startDay() int {
	if p.StartDay < 1 {
		return 1
	}
	return p.StartDay
}

func (p Params) endDay() int {
	if p.EndDay < 1 {
		return 1
	}
	return p.EndDay
}

// Step returns the integration step as a duration.
func (p Params) Step() time.Duration {
	return time.Duration(p.StepMinutes) * time.Minute
}

// StartTime returns midnight of the start day in the simulated year.
func (p Params) StartTime() time.Time {
	return DayOfYear(p.startDay())
}

// EndTime returns midnight of the end day in the simulated year.
func (p Params) EndTime() time.Time {
	return DayOfYear(p.endDay())
}

// DayOfYear converts a 1-based day of year to midnight UTC in SimYear.
func DayOfYear(day int) time.Time {
	if day < 1 {
		day = 1
	}
	return time.Date(SimYear, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day-1)
}
