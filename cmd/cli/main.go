// Package main runs programs in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pkg/term"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/LouisGariepy/chippers"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// keyHoldDuration is how long a terminal keystroke counts as held. Terminals
// only report key presses, so releases are synthesized after this delay.
const keyHoldDuration = 120 * time.Millisecond

type optionFlags struct {
	speed  uint
	legacy bool
	debug  bool
	quiet  bool

	input string
}

func main() {
	options := readArguments()

	logger := createLogger(options)

	err := run(app.Context(), logger, options)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("Emulation stopped")
	case err != nil:
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func readArguments() optionFlags {
	options := optionFlags{}
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	flags.UintVar(&options.speed, "speed", chippers.DefaultSpeed, "machine speed in instructions per second")
	flags.BoolVar(&options.legacy, "legacy", false, "run with legacy instruction behaviour")
	flags.BoolVar(&options.debug, "debug", false, "print debug logging")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner(options)
		fmt.Printf("usage: chippers [options] <program file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.input = args[0]

	return options
}

func printBanner(options optionFlags) {
	if !options.quiet {
		fmt.Println("[--------------------------------]")
		fmt.Println("[ chippers - a chip-8 interpreter ]")
		fmt.Printf("[--------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
}

func createLogger(options optionFlags) *log.Logger {
	cfg := log.DefaultConfig()
	if options.debug {
		cfg.Level = log.DebugLevel
	} else if options.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func run(ctx context.Context, logger *log.Logger, options optionFlags) error {
	program, err := os.ReadFile(options.input)
	if err != nil {
		return fmt.Errorf("reading program '%s': %w", options.input, err)
	}

	mode := chippers.Modern
	if options.legacy {
		mode = chippers.Legacy
	}

	machine, err := chippers.New(program, chippers.WithMode(mode))
	if err != nil {
		return fmt.Errorf("initializing machine: %w", err)
	}

	runner := chippers.NewRunner(machine, chippers.NewTerminalDisplay(), chippers.NewTerminalBuzzer())
	runner.SetSpeedInHz(options.speed)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	restore, err := watchKeyboard(ctx, cancel, logger, runner)
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}
	defer restore()

	logger.Info("Starting emulation",
		log.String("program", options.input),
		log.Int("speed", int(options.speed)),
		log.Stringer("mode", mode))

	return runner.Run(ctx)
}

// watchKeyboard reads raw keystrokes from the controlling terminal and taps
// the matching machine keys. Ctrl-C cancels the run.
func watchKeyboard(ctx context.Context, cancel context.CancelFunc, logger *log.Logger, runner *chippers.Runner) (func(), error) {
	tty, err := term.Open("/dev/tty")
	if err != nil {
		return nil, err
	}
	if err := term.RawMode(tty); err != nil {
		_ = tty.Close()
		return nil, err
	}

	restore := func() {
		_ = tty.Restore()
		_ = tty.Close()
	}

	lookup := chippers.LookupMap(chippers.DefaultKeyboardLayout)

	go func() {
		buf := make([]byte, 1)
		for ctx.Err() == nil {
			n, err := tty.Read(buf)
			if err != nil || n == 0 {
				return
			}

			switch c := buf[0]; {
			case c == 0x03: // Ctrl-C
				cancel()
				return
			default:
				if key, ok := lookup[rune(c)]; ok {
					runner.TapKey(key, keyHoldDuration)
				} else {
					logger.Debug("Unmapped key", log.Uint8("char", c))
				}
			}
		}
	}()

	return restore, nil
}
