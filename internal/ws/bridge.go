package ws

import (
	"log/slog"

	"solar_battery_sim/internal/simulator"
)

// Bridge implements simulator.Callback and broadcasts engine events to the
// WebSocket hub.
type Bridge struct {
	hub *Hub
}

func NewBridge(hub *Hub) *Bridge {
	return &Bridge{hub: hub}
}

func (b *Bridge) OnState(state simulator.State) {
	b.broadcast(TypeSimState, SimStateFromEngine(state))
}

func (b *Bridge) OnStep(step simulator.StepResult) {
	b.broadcast(TypeStepResult, StepResultFromEngine(step))
}

func (b *Bridge) OnSummary(summary simulator.Summary) {
	b.broadcast(TypeSummaryUpdate, summary)
}

func (b *Bridge) broadcast(msgType string, payload any) {
	msg, err := NewEnvelope(msgType, payload)
	if err != nil {
		slog.Error("encoding ws message", "type", msgType, "err", err)
		return
	}
	b.hub.Broadcast(msg)
}
