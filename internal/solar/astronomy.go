// Package solar derives day length, sun times and a normalized production
// curve from latitude and day of year. The day-length formula is the CBM
// model (Forsythe et al. 1995) with a 0.8333° refraction horizon; daylight is
// centered on 12:00 local solar noon with no equation-of-time correction.
package solar

import (
	"math"
	"time"
)

// refractionHorizonDeg is the sun elevation at which sunrise/sunset are
// defined, accounting for atmospheric refraction and the solar disc radius.
const refractionHorizonDeg = 0.8333

// DaylightHours returns the day length in hours for a latitude (degrees) and
// a 0-based day of year.
func DaylightHours(latitudeDeg float64, day0 int) float64 {
	// Revolution angle and solar declination, CBM model.
	theta := 0.2163108 + 2*math.Atan(0.9671396*math.Tan(0.00860*float64(day0)))
	p := math.Asin(0.39795 * math.Cos(theta))

	latRad := latitudeDeg * math.Pi / 180
	numerator := math.Sin(refractionHorizonDeg*math.Pi/180) + math.Sin(latRad)*math.Sin(p)
	denominator := math.Cos(latRad) * math.Cos(p)

	return (24 / math.Pi) * math.Acos(numerator/denominator)
}

// Sunrise returns the sunrise time on the given date at the given latitude.
func Sunrise(date time.Time, latitudeDeg float64) time.Time {
	hours := DaylightHours(latitudeDeg, date.YearDay()-1)
	return noonOf(date).Add(-hoursToDuration(hours / 2))
}

// Sunset returns the sunset time on the given date at the given latitude.
func Sunset(date time.Time, latitudeDeg float64) time.Time {
	hours := DaylightHours(latitudeDeg, date.YearDay()-1)
	return noonOf(date).Add(hoursToDuration(hours / 2))
}

// DaylightOverlap returns the number of hours of the interval [start, end]
// that fall between sunrise and sunset on start's date.
func DaylightOverlap(start, end time.Time, latitudeDeg float64) float64 {
	rise := Sunrise(start, latitudeDeg)
	set := Sunset(start, latitudeDeg)

	if end.Before(rise) || start.After(set) {
		return 0
	}
	lo := laterOf(start, rise)
	hi := earlierOf(end, set)
	return hi.Sub(lo).Hours()
}

func noonOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

func hoursToDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func earlierOf(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
