// Package main runs programs in a raylib window.
package main

import (
	"flag"
	"fmt"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"github.com/LouisGariepy/chippers"
	"github.com/LouisGariepy/chippers/gui"
)

func main() {
	autostart := flag.Bool("start", false, "start the machine automatically once a program is loaded")
	speed := flag.Uint("speed", chippers.DefaultSpeed, fmt.Sprintf("machine speed in instructions per second, in the range [%d, %d]", chippers.MinSpeed, chippers.MaxSpeed))
	legacy := flag.Bool("legacy", false, "run with legacy instruction behaviour")
	debug := flag.Bool("debug", false, "print debug logging")

	flag.Parse()

	cfg := log.DefaultConfig()
	if *debug {
		cfg.Level = log.DebugLevel
	}
	logger := log.NewWithConfig(cfg)

	mode := chippers.Modern
	if *legacy {
		mode = chippers.Legacy
	}

	guiApp, err := gui.NewApp(logger, func(config *gui.AppConfig) {
		config.Mode = mode
		config.SpeedInHz = *speed
	})
	if err != nil {
		logger.Fatal("Initializing machine failed", log.Err(err))
	}

	if flag.NArg() > 0 {
		guiApp.Load(flag.Arg(0))
	}

	guiApp.Run(app.Context(), *autostart)
}
