package ws

import (
	"encoding/json"
	"time"

	"solar_battery_sim/internal/model"
	"solar_battery_sim/internal/simulator"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeParamsUpdate = "params:update"
	TypeSimRun       = "sim:run"
	TypeSimStart     = "sim:start"
	TypeSimPause     = "sim:pause"
	TypeSimSetSpeed  = "sim:set_speed"
	TypeSimSeek      = "sim:seek"

	// Server -> Client
	TypeParamsState   = "params:state"
	TypeSimState      = "sim:state"
	TypeSeriesFull    = "series:full"
	TypeStepResult    = "step:result"
	TypeSummaryUpdate = "summary:update"
	TypeError         = "error"
)

// Client -> Server payloads

// ParamsUpdatePayload carries a partial parameter set; zero fields keep
// their current value.
type ParamsUpdatePayload struct {
	model.Params
}

type SetSpeedPayload struct {
	Speed float64 `json:"speed"`
}

type SeekPayload struct {
	Day int `json:"day"`
}

// Server -> Client payloads

type SimStatePayload struct {
	Time    string  `json:"time"`
	Speed   float64 `json:"speed"`
	Running bool    `json:"running"`
}

type SeriesFullPayload struct {
	Params  model.Params      `json:"params"`
	Series  []model.Series    `json:"series"`
	Summary simulator.Summary `json:"summary"`
	Range   model.TimeRange   `json:"range"`
}

type StepResultPayload struct {
	Timestamp  string  `json:"timestamp"`
	ChargeWh   float64 `json:"charge_wh"`
	SolarW     float64 `json:"solar_w"`
	DaylightH  float64 `json:"daylight_h"`
	SoCPercent float64 `json:"soc_percent"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

func SimStateFromEngine(s simulator.State) SimStatePayload {
	return SimStatePayload{
		Time:    s.Time.Format(time.RFC3339),
		Speed:   s.Speed,
		Running: s.Running,
	}
}

func StepResultFromEngine(sr simulator.StepResult) StepResultPayload {
	return StepResultPayload{
		Timestamp:  sr.Timestamp.Format(time.RFC3339),
		ChargeWh:   sr.ChargeWh,
		SolarW:     sr.SolarW,
		DaylightH:  sr.DaylightH,
		SoCPercent: sr.SoCPercent,
	}
}

func SeriesFullFromResult(res simulator.Result) SeriesFullPayload {
	tr, _ := res.Charge.TimeRange()
	return SeriesFullPayload{
		Params:  res.Params,
		Series:  []model.Series{res.Charge, res.Solar, res.Daylight},
		Summary: res.Summary,
		Range:   tr,
	}
}
