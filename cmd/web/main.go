// Package main serves the emulator over HTTP and websockets.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/LouisGariepy/chippers"
	"github.com/LouisGariepy/chippers/web"
)

func main() {
	port := flag.Int("port", 9999, "port to serve on")
	speed := flag.Uint("speed", chippers.DefaultSpeed, fmt.Sprintf("machine speed in instructions per second, in the range [%d, %d]", chippers.MinSpeed, chippers.MaxSpeed))
	legacy := flag.Bool("legacy", false, "run with legacy instruction behaviour")
	debugger := flag.Bool("debugger", false, "stream machine state over the debugger websocket")
	debug := flag.Bool("debug", false, "print debug logging")

	flag.Parse()

	cfg := log.DefaultConfig()
	if *debug {
		cfg.Level = log.DebugLevel
	}
	logger := log.NewWithConfig(cfg)

	if flag.NArg() < 1 {
		logger.Fatal("Missing the path to a program as an argument")
	}

	program, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		logger.Fatal("Reading program failed", log.String("path", flag.Arg(0)), log.Err(err))
	}

	mode := chippers.Modern
	if *legacy {
		mode = chippers.Legacy
	}

	server, err := web.NewServer(logger, program, func(config *web.ServerConfig) {
		config.Mode = mode
		config.SpeedInHz = *speed
		config.UseDebugger = *debugger
	})
	if err != nil {
		logger.Fatal("Initializing machine failed", log.Err(err))
	}

	if err := server.Listen(app.Context(), *port); err != nil {
		logger.Fatal("Server stopped", log.Err(err))
	}
}
