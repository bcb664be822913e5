package solar

import (
	"math"
	"time"
)

// ProductionCoefficient returns the normalized panel output [0, 1] at the
// given instant. The curve is a half-sine hump between sunrise and sunset:
// zero at both, 1.0 at solar noon.
func ProductionCoefficient(t time.Time, latitudeDeg float64) float64 {
	lightHours := DaylightHours(latitudeDeg, t.YearDay()-1)
	rise := Sunrise(t, latitudeDeg)
	set := Sunset(t, latitudeDeg)

	if !t.After(rise) || !t.Before(set) {
		return 0
	}

	hour := fractionalHour(t)
	scale := (2 * math.Pi) / lightHours
	return 0.5*math.Cos(scale*(hour-12)) + 0.5
}

// Power returns the average panel power in watts over the step starting at t,
// using the mean of the curve at the step's endpoints.
func Power(t time.Time, step time.Duration, latitudeDeg, nominalW float64) float64 {
	startCoeff := ProductionCoefficient(t, latitudeDeg)
	endCoeff := ProductionCoefficient(t.Add(step), latitudeDeg)
	return nominalW * (startCoeff + endCoeff) / 2
}

// fractionalHour returns the time of day as a fractional hour, e.g. 13.5.
func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}
