// Package web serves a machine over HTTP: a websocket display stream,
// keypad input, run controls and an optional per-step debugger stream.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/retroenv/retrogolib/log"

	"github.com/LouisGariepy/chippers"
)

//go:embed static
var staticFiles embed.FS

var upgrader = websocket.Upgrader{} // use default options

type Server struct {
	runner *chippers.Runner
	buzzer *chippers.DummyBuzzer
	logger *log.Logger

	debugger *Debugger

	socket  *websocket.Conn
	wsMutex sync.RWMutex
}

type ServerConfig struct {
	Mode        chippers.Mode
	SpeedInHz   uint
	UseDebugger bool
}

type ServerConfigCb func(config *ServerConfig)

// NewServer builds a machine for the program and wires it to the HTTP
// surface. The server itself acts as the machine's display.
func NewServer(logger *log.Logger, program []byte, configs ...ServerConfigCb) (*Server, error) {
	config := &ServerConfig{
		Mode:        chippers.Modern,
		SpeedInHz:   chippers.DefaultSpeed,
		UseDebugger: false,
	}
	for _, cb := range configs {
		cb(config)
	}

	machine, err := chippers.New(program, chippers.WithMode(config.Mode))
	if err != nil {
		return nil, err
	}

	s := &Server{
		buzzer: chippers.NewDummyBuzzer(),
		logger: logger,
	}
	s.runner = chippers.NewRunner(machine, s, s.buzzer)
	s.runner.SetSpeedInHz(config.SpeedInHz)

	if config.UseDebugger {
		s.debugger = NewDebugger(s.runner, logger)
	}

	return s, nil
}

// Listen starts the run loop paused and serves until the context is
// canceled or the listener fails.
func (s *Server) Listen(ctx context.Context, port int) error {
	s.runner.Stop()
	go func() {
		if err := s.runner.Run(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("Machine stopped", log.Err(err))
		}
	}()

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(static)))
	mux.HandleFunc("/start", s.handleStart)
	mux.HandleFunc("/stop", s.handleStop)
	mux.HandleFunc("/step", s.handleStep)
	mux.HandleFunc("/reset", s.handleReset)
	mux.HandleFunc("/display", s.handleDisplay)
	if s.debugger != nil {
		mux.HandleFunc("/debugger", s.debugger.handle)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	s.logger.Info("Listening", log.Int("port", port))
	err = srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	allowAnyOrigin(w)
	s.logger.Info("Starting")
	s.runner.Start()
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	allowAnyOrigin(w)
	s.logger.Info("Stopping")
	s.runner.Stop()
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	allowAnyOrigin(w)
	s.logger.Info("Single step")
	if err := s.runner.StepOnce(); err != nil {
		s.logger.Error("Step failed", log.Err(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	allowAnyOrigin(w)
	s.logger.Info("Stopping and resetting")
	s.runner.Stop()
	s.runner.Reset()
}

// keyEvent is what the display page sends for keypad input.
type keyEvent struct {
	Key     byte `json:"key"`
	Pressed bool `json:"pressed"`
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Websocket upgrade failed", log.Err(err))
		return
	}
	defer conn.Close()

	s.logger.Info("Display connected")
	s.setWs(conn)
	defer s.unsetWs()

	// Push the current frame so a fresh page is not blank until the next
	// draw.
	screen := s.runner.Machine().Screen()
	_ = conn.WriteMessage(websocket.BinaryMessage, screen.Pack())

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("Display disconnected")
			return
		}

		var ev keyEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			s.logger.Debug("Bad key event", log.Err(err))
			continue
		}
		s.runner.SetKey(ev.Key, ev.Pressed)
	}
}

// Boot implements chippers.Display.
func (s *Server) Boot() error {
	return nil
}

// Render implements chippers.Display by streaming the packed screen to the
// connected page, if any.
func (s *Server) Render(screen chippers.Screen) error {
	s.wsMutex.RLock()
	defer s.wsMutex.RUnlock()

	if s.socket == nil {
		return nil
	}
	return s.socket.WriteMessage(websocket.BinaryMessage, screen.Pack())
}

func (s *Server) setWs(conn *websocket.Conn) {
	s.wsMutex.Lock()
	s.socket = conn
	s.wsMutex.Unlock()
}

func (s *Server) unsetWs() {
	s.wsMutex.Lock()
	s.socket = nil
	s.wsMutex.Unlock()
}

func allowAnyOrigin(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Expose-Headers", "Content-Type")
	w.Header().Set("Cache-Control", "no-cache")
}
