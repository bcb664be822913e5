package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"solar_battery_sim/internal/model"
	"solar_battery_sim/internal/simulator"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes messages to the engine.
type Handler struct {
	hub    *Hub
	engine *simulator.Engine
}

func NewHandler(hub *Hub, engine *simulator.Engine) *Handler {
	return &Handler{hub: hub, engine: engine}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade", "err", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	// A new client gets the current parameters, a full run of them, and
	// the playback state.
	h.sendParams(client)
	h.sendFullRun(client)
	h.sendSimState(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Error("websocket read", "err", err)
			}
			return
		}

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		slog.Warn("invalid message", "err", err)
		return
	}

	switch env.Type {
	case TypeParamsUpdate:
		var p ParamsUpdatePayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			slog.Warn("invalid params:update payload", "err", err)
			return
		}
		merged := model.Merge(h.engine.Params(), p.Params)
		if err := h.engine.SetParams(merged); err != nil {
			h.sendError(c, err)
			return
		}
		h.broadcastParams()
		// Re-run with the new parameters so every client sees fresh series.
		h.broadcastFullRun()

	case TypeSimRun:
		h.broadcastFullRun()

	case TypeSimStart:
		h.engine.Start()

	case TypeSimPause:
		h.engine.Pause()

	case TypeSimSetSpeed:
		var p SetSpeedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			slog.Warn("invalid set_speed payload", "err", err)
			return
		}
		h.engine.SetSpeed(p.Speed)

	case TypeSimSeek:
		var p SeekPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			slog.Warn("invalid seek payload", "err", err)
			return
		}
		h.engine.Seek(p.Day)

	default:
		slog.Warn("unknown message type", "type", env.Type)
	}
}

func (h *Handler) fullRunMessage() ([]byte, error) {
	res, err := simulator.Run(h.engine.Params())
	if err != nil {
		return nil, err
	}
	return NewEnvelope(TypeSeriesFull, SeriesFullFromResult(res))
}

func (h *Handler) broadcastFullRun() {
	msg, err := h.fullRunMessage()
	if err != nil {
		slog.Error("running simulation", "err", err)
		return
	}
	h.hub.Broadcast(msg)
}

func (h *Handler) sendFullRun(c *Client) {
	msg, err := h.fullRunMessage()
	if err != nil {
		slog.Error("running simulation", "err", err)
		return
	}
	h.trySend(c, msg)
}

func (h *Handler) broadcastParams() {
	msg, err := NewEnvelope(TypeParamsState, h.engine.Params())
	if err != nil {
		return
	}
	h.hub.Broadcast(msg)
}

func (h *Handler) sendParams(c *Client) {
	msg, err := NewEnvelope(TypeParamsState, h.engine.Params())
	if err != nil {
		return
	}
	h.trySend(c, msg)
}

func (h *Handler) sendSimState(c *Client) {
	msg, err := NewEnvelope(TypeSimState, SimStateFromEngine(h.engine.State()))
	if err != nil {
		return
	}
	h.trySend(c, msg)
}

func (h *Handler) sendError(c *Client, err error) {
	msg, mErr := NewEnvelope(TypeError, ErrorPayload{Message: err.Error()})
	if mErr != nil {
		return
	}
	h.trySend(c, msg)
}

func (h *Handler) trySend(c *Client, msg []byte) {
	select {
	case c.send <- msg:
	default:
	}
}
