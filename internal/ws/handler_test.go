package ws

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar_battery_sim/internal/model"
	"solar_battery_sim/internal/simulator"
)

func dialTestHandler(t *testing.T) (*websocket.Conn, *simulator.Engine) {
	t.Helper()

	hub := NewHub()
	engine := simulator.New(NewBridge(hub))
	p := model.DefaultParams()
	p.EndDay = 3
	require.NoError(t, engine.SetParams(p))

	handler := NewHandler(hub, engine)
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn, engine
}

// readEnvelope reads messages until one of the given type arrives.
func readEnvelope(t *testing.T, conn *websocket.Conn, msgType string) Envelope {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	require.NoError(t, conn.SetReadDeadline(deadline))

	for {
		_, msg, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %s", msgType)

		var env Envelope
		require.NoError(t, json.Unmarshal(msg, &env))
		if env.Type == msgType {
			return env
		}
	}
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()
	msg, err := NewEnvelope(msgType, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, msg))
}

func TestHandler_SendsInitialMessages(t *testing.T) {
	conn, engine := dialTestHandler(t)

	env := readEnvelope(t, conn, TypeParamsState)
	var params model.Params
	require.NoError(t, json.Unmarshal(env.Payload, &params))
	assert.Equal(t, engine.Params(), params)

	env = readEnvelope(t, conn, TypeSeriesFull)
	var full SeriesFullPayload
	require.NoError(t, json.Unmarshal(env.Payload, &full))
	assert.Len(t, full.Series, 3)
	assert.NotEmpty(t, full.Series[0].Points)

	readEnvelope(t, conn, TypeSimState)
}

func TestHandler_ParamsUpdateRerunsSimulation(t *testing.T) {
	conn, engine := dialTestHandler(t)
	readEnvelope(t, conn, TypeSimState) // drain initial burst

	send(t, conn, TypeParamsUpdate, map[string]any{"latitude_deg": 52.0, "load_w": 40.0})

	env := readEnvelope(t, conn, TypeParamsState)
	var params model.Params
	require.NoError(t, json.Unmarshal(env.Payload, &params))
	assert.Equal(t, 52.0, params.LatitudeDeg)
	assert.Equal(t, 40.0, params.LoadW)
	// Untouched fields keep their previous values.
	assert.Equal(t, 1000.0, params.BatteryCapacityWh)

	env = readEnvelope(t, conn, TypeSeriesFull)
	var full SeriesFullPayload
	require.NoError(t, json.Unmarshal(env.Payload, &full))
	assert.Equal(t, 52.0, full.Params.LatitudeDeg)

	assert.Equal(t, 52.0, engine.Params().LatitudeDeg)
}

func TestHandler_InvalidParamsSendError(t *testing.T) {
	conn, engine := dialTestHandler(t)
	readEnvelope(t, conn, TypeSimState)

	send(t, conn, TypeParamsUpdate, map[string]any{"latitude_deg": 89.0})

	env := readEnvelope(t, conn, TypeError)
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	assert.Contains(t, p.Message, "latitude")

	// Engine keeps its previous parameters.
	assert.Equal(t, 36.0, engine.Params().LatitudeDeg)
}

func TestHandler_RunBroadcastsSeries(t *testing.T) {
	conn, _ := dialTestHandler(t)
	readEnvelope(t, conn, TypeSimState)

	send(t, conn, TypeSimRun, nil)

	env := readEnvelope(t, conn, TypeSeriesFull)
	var full SeriesFullPayload
	require.NoError(t, json.Unmarshal(env.Payload, &full))
	assert.NotEmpty(t, full.Series[0].Points)
	assert.Greater(t, full.Summary.LoadKWh, 0.0)
}

func TestHandler_SeekBroadcastsState(t *testing.T) {
	conn, engine := dialTestHandler(t)
	readEnvelope(t, conn, TypeSimState)

	send(t, conn, TypeSimSeek, SeekPayload{Day: 2})

	want := model.DayOfYear(2)
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		env := readEnvelope(t, conn, TypeSimState)
		var p SimStatePayload
		require.NoError(t, json.Unmarshal(env.Payload, &p))
		if p.Time == want.Format(time.RFC3339) {
			assert.Equal(t, want, engine.State().Time)
			return
		}
	}
	t.Fatal("never saw sim:state at the seek target")
}

func TestHandler_SetSpeed(t *testing.T) {
	conn, engine := dialTestHandler(t)
	readEnvelope(t, conn, TypeSimState)

	send(t, conn, TypeSimSetSpeed, SetSpeedPayload{Speed: 7200})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		env := readEnvelope(t, conn, TypeSimState)
		var p SimStatePayload
		require.NoError(t, json.Unmarshal(env.Payload, &p))
		if p.Speed == 7200 {
			assert.Equal(t, 7200.0, engine.State().Speed)
			return
		}
	}
	t.Fatal("never saw sim:state with the new speed")
}
