package model

import "time"

type SeriesType string

const (
	SeriesCharge   SeriesType = "battery_charge"
	SeriesSolar    SeriesType = "solar_power"
	SeriesDaylight SeriesType = "daylight_hours"
)

// SeriesInfo holds display name and unit for a series type.
type SeriesInfo struct {
	Name string
	Unit string
}

// SeriesCatalog maps every known SeriesType to its display name and unit.
var SeriesCatalog = map[SeriesType]SeriesInfo{
	SeriesCharge:   {Name: "State of Charge", Unit: "Wh"},
	SeriesSolar:    {Name: "Solar Output", Unit: "W"},
	SeriesDaylight: {Name: "Daylight Hours", Unit: "h"},
}

// Point is a single timestamped sample.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series is a named time series produced by a simulation run.
type Series struct {
	Type   SeriesType `json:"type"`
	Name   string     `json:"name"`
	Unit   string     `json:"unit"`
	Points []Point    `json:"points"`
}

// NewSeries returns an empty series with name and unit filled from the catalog.
func NewSeries(t SeriesType, capacity int) Series {
	info := SeriesCatalog[t]
	return Series{
		Type:   t,
		Name:   info.Name,
		Unit:   info.Unit,
		Points: make([]Point, 0, capacity),
	}
}

// TimeRange returns the covered time range, or false for an empty series.
func (s Series) TimeRange() (TimeRange, bool) {
	if len(s.Points) == 0 {
		return TimeRange{}, false
	}
	return TimeRange{
		Start: s.Points[0].Timestamp,
		End:   s.Points[len(s.Points)-1].Timestamp,
	}, true
}

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}
