package web

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/retroenv/retrogolib/log"

	"github.com/LouisGariepy/chippers"
)

// Debugger streams one machine snapshot per step over a websocket. It
// pauses the runner and drops its speed so that single stepping from the
// page stays readable.
type Debugger struct {
	runner *chippers.Runner
	logger *log.Logger

	// SendEvery skips snapshots: only every n-th step is streamed.
	SendEvery uint

	steps uint
	send  chan chippers.State
}

func NewDebugger(runner *chippers.Runner, logger *log.Logger) *Debugger {
	deb := &Debugger{
		runner:    runner,
		logger:    logger,
		SendEvery: 1,
		send:      make(chan chippers.State, 16),
	}

	runner.AddAfterStepHook(deb.afterStep)
	runner.SetSpeedInHz(chippers.MinSpeed)
	runner.Stop()

	return deb
}

// afterStep runs inside the run loop; it must not block, so snapshots are
// dropped when no page is keeping up.
func (d *Debugger) afterStep(m *chippers.Machine) {
	d.steps++
	if d.steps%d.SendEvery != 0 {
		return
	}

	select {
	case d.send <- m.Snapshot():
	default:
	}
}

func (d *Debugger) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.logger.Error("Websocket upgrade failed", log.Err(err))
		return
	}
	defer conn.Close()

	d.logger.Info("Debugger connected")

	for {
		select {
		case state := <-d.send:
			payload, err := json.Marshal(state)
			if err != nil {
				d.logger.Error("Snapshot encoding failed", log.Err(err))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				d.logger.Info("Debugger disconnected")
				return
			}

		case <-r.Context().Done():
			d.logger.Info("Debugger disconnected")
			return
		}
	}
}
