package simulator

import (
	"sync"
	"time"

	"solar_battery_sim/internal/model"
)

// State represents the current playback state.
type State struct {
	Time    time.Time `json:"time"`
	Speed   float64   `json:"speed"`
	Running bool      `json:"running"`
}

// Callback receives engine events.
type Callback interface {
	OnState(state State)
	OnStep(step StepResult)
	OnSummary(summary Summary)
}

// Engine animates a simulation through time at a configurable speed,
// emitting each integration step through the callback. Parameter changes
// reset the run. A one-shot deterministic run is available through Run.
type Engine struct {
	mu       sync.Mutex
	callback Callback

	params  model.Params
	battery *Battery

	running bool
	speed   float64 // simulated seconds per wall second
	simTime time.Time
	cursor  time.Time // start of the next unemitted step

	solarWh float64
	loadWh  float64

	stopCh chan struct{}
}

func New(cb Callback) *Engine {
	e := &Engine{
		callback: cb,
		speed:    6 * 3600, // 6 simulated hours per second
	}
	e.params = model.DefaultParams()
	e.reset()
	return e
}

// Params returns the current parameter set.
func (e *Engine) Params() model.Params {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.params
}

// SetParams replaces the parameters and resets the run to its start.
func (e *Engine) SetParams(p model.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}

	e.Pause()

	e.mu.Lock()
	e.params = p
	e.reset()
	e.mu.Unlock()

	e.broadcastState()
	e.broadcastSummary()
	return nil
}

// reset rewinds the run to the start day. Must be called with mu held
// (or before the engine is shared).
func (e *Engine) reset() {
	e.battery = NewBattery(e.params.BatteryCapacityWh, e.params.InitialChargeWh)
	e.simTime = e.params.StartTime()
	e.cursor = e.simTime
	e.solarWh = 0
	e.loadWh = 0
}

// State returns the current playback state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{Time: e.simTime, Speed: e.speed, Running: e.running}
}

// Summary returns the summary accumulated so far.
func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return summarize(e.battery, e.solarWh, e.loadWh)
}

// Start begins the playback loop.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.stopCh = make(chan struct{})
	e.mu.Unlock()

	e.broadcastState()
	go e.loop()
}

// Pause stops the playback loop.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	close(e.stopCh)
	e.mu.Unlock()

	e.broadcastState()
}

// SetSpeed sets the playback speed in simulated seconds per wall second.
func (e *Engine) SetSpeed(speed float64) {
	if speed < 1 {
		speed = 1
	}
	if speed > 604800 {
		speed = 604800
	}

	e.mu.Lock()
	e.speed = speed
	e.mu.Unlock()

	e.broadcastState()
}

// Seek jumps the playback to midnight of the given day of year. The run is
// replayed silently from its start so the battery state stays consistent.
func (e *Engine) Seek(day int) {
	e.mu.Lock()
	target := model.DayOfYear(day)
	start := e.params.StartTime()
	end := e.params.EndTime()
	if target.Before(start) {
		target = start
	}
	if target.After(end) {
		target = end
	}

	e.reset()
	dt := e.params.Step()
	for e.cursor.Before(target) {
		sr := step(e.cursor, e.params, e.battery)
		e.solarWh += sr.NetWh + e.params.LoadW*dt.Hours()
		e.loadWh += e.params.LoadW * dt.Hours()
		e.cursor = e.cursor.Add(dt)
	}
	e.simTime = target
	e.mu.Unlock()

	e.broadcastState()
	e.broadcastSummary()
}

// Step advances the playback by the given simulated duration and emits the
// covered steps. Useful for deterministic testing. Does not require Start().
func (e *Engine) Step(delta time.Duration) {
	e.advance(delta)
}

const tickInterval = 100 * time.Millisecond

func (e *Engine) loop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.stopCh:
			return
		case <-ticker.C:
			if e.tick() {
				return
			}
		}
	}
}

// tick advances one frame. Returns true if the run reached its end.
func (e *Engine) tick() bool {
	e.mu.Lock()
	simDelta := time.Duration(float64(tickInterval) * e.speed)
	e.mu.Unlock()

	if !e.advance(simDelta) {
		return false
	}

	e.mu.Lock()
	if e.running {
		e.running = false
		close(e.stopCh)
	}
	e.mu.Unlock()
	e.broadcastState()
	return true
}

// advance moves simulated time forward, emitting every step whose start was
// crossed. Returns true when the end of the run is reached.
func (e *Engine) advance(simDelta time.Duration) bool {
	e.mu.Lock()

	end := e.params.EndTime()
	e.simTime = e.simTime.Add(simDelta)
	ended := false
	if !e.simTime.Before(end) {
		e.simTime = end
		ended = true
	}

	dt := e.params.Step()
	var emitted []StepResult
	for e.cursor.Before(e.simTime) && e.cursor.Before(end) {
		sr := step(e.cursor, e.params, e.battery)
		e.solarWh += sr.NetWh + e.params.LoadW*dt.Hours()
		e.loadWh += e.params.LoadW * dt.Hours()
		e.cursor = e.cursor.Add(dt)
		emitted = append(emitted, sr)
	}
	e.mu.Unlock()

	for _, sr := range emitted {
		e.callback.OnStep(sr)
	}
	e.broadcastState()
	if len(emitted) > 0 {
		e.broadcastSummary()
	}

	return ended
}

func (e *Engine) broadcastState() {
	if e.callback != nil {
		e.callback.OnState(e.State())
	}
}

func (e *Engine) broadcastSummary() {
	if e.callback != nil {
		e.callback.OnSummary(e.Summary())
	}
}
