// Package gui is a raylib frontend: a window with the machine screen, a
// toolbar to start, stop, step and reset, a speed slider, and drag-and-drop
// program loading.
package gui

import (
	"context"
	"fmt"
	"os"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/retroenv/retrogolib/log"

	"github.com/LouisGariepy/chippers"
)

const (
	ToolbarGap       = 5
	ToolbarBtnWidth  = 80
	ToolbarBtnHeight = 40
	ToolbarHeight    = 50
	ToolbarBtnOffset = ToolbarBtnWidth + ToolbarGap

	ScreenPixelSize = 15
	ScreenPositionX = 0
	ScreenPositionY = ToolbarHeight + 1

	MessageBarGap    = 5
	MessageBarHeight = 30
)

var MessageBarBgColor = rl.DarkGray
var MessageBarInfoColor = rl.SkyBlue
var MessageBarWarningColor = rl.Gold
var MessageBarErrorColor = rl.Red

type MessageType byte

const (
	MessageInfo MessageType = iota
	MessageWarning
	MessageError
)

type App struct {
	runner *chippers.Runner
	logger *log.Logger

	// Speed factor
	// Speed in Hz is (speedFactor+1) * 5
	speedFactor float32

	keyLookupMap map[int32]byte

	// Window width and height
	winW, winH int

	// Toolbar
	startBtn, stopBtn, stepBtn, resetBtn bool

	loadedProgramPath string

	lastMessage      string
	lastMessageColor rl.Color
}

type AppConfig struct {
	Mode      chippers.Mode
	SpeedInHz uint
	Layout    chippers.KeyboardLayout
}

type AppConfigCb func(config *AppConfig)

func speedFactorToHz(s float32) uint {
	return uint((s + 1) * 5)
}

func hzToSpeedFactor(hz uint) float32 {
	return float32(hz)/5 - 1
}

func NewApp(logger *log.Logger, configs ...AppConfigCb) (*App, error) {
	config := &AppConfig{
		Mode:      chippers.Modern,
		SpeedInHz: chippers.DefaultSpeed,
		Layout:    chippers.DefaultKeyboardLayout,
	}
	for _, cb := range configs {
		cb(config)
	}

	machine, err := chippers.New(nil, chippers.WithMode(config.Mode))
	if err != nil {
		return nil, err
	}

	app := &App{
		logger:       logger,
		speedFactor:  hzToSpeedFactor(config.SpeedInHz),
		keyLookupMap: scanCodeLookupMap(config.Layout),
	}
	app.runner = chippers.NewRunner(machine, chippers.NewDummyDisplay(), chippers.NewDummyBuzzer())
	app.runner.SetSpeedInHz(config.SpeedInHz)
	app.updateWindowSize()

	return app, nil
}

// Load reads a program file into the machine.
func (app *App) Load(path string) {
	program, err := os.ReadFile(path)
	if err != nil {
		app.logger.Error("Error loading program", log.String("path", path), log.Err(err))
		app.showMessage(err.Error(), MessageError)
		return
	}

	if err := app.runner.Load(program); err != nil {
		app.logger.Error("Error loading program", log.String("path", path), log.Err(err))
		app.showMessage(err.Error(), MessageError)
		return
	}

	app.loadedProgramPath = path
	app.logger.Info("Program loaded", log.String("path", path))
	app.showMessage(fmt.Sprintf("Program '%s' loaded", path), MessageInfo)
}

// Run starts the machine loop and the UI loop. It returns when the window
// closes.
func (app *App) Run(ctx context.Context, autostart bool) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if !autostart || !app.hasProgramLoaded() {
			app.runner.Stop()
		}
		if err := app.runner.Run(ctx); err != nil && ctx.Err() == nil {
			app.logger.Error("Machine stopped", log.Err(err))
			app.showMessage(err.Error(), MessageError)
		}
	}()

	rl.InitWindow(int32(app.winW), int32(app.winH), "chippers")
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		rl.BeginDrawing()

		rl.ClearBackground(rl.Black)

		app.handleFileLoad()
		app.handleActions()
		app.handleKeyPress()
		app.updateSpeed()

		app.drawMessageBar()
		app.drawScreen()
		app.drawToolbar()

		rl.EndDrawing()
	}
}

func (app *App) hasProgramLoaded() bool {
	return len(app.loadedProgramPath) > 0
}

func (app *App) updateWindowSize() {
	app.winW = chippers.ScreenWidth * ScreenPixelSize
	app.winH = chippers.ScreenHeight*ScreenPixelSize + ToolbarHeight + MessageBarHeight
}

func (app *App) handleFileLoad() {
	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		defer rl.UnloadDroppedFiles()

		app.logger.Info("Files were dropped", log.String("files", strings.Join(files, ",")))

		app.Load(files[0])
	}
}

func (app *App) handleActions() {
	if app.startBtn {
		if app.hasProgramLoaded() {
			app.logger.Info("Starting the machine")
			app.runner.Start()
		} else {
			app.showMessage("There is no program loaded", MessageError)
		}
	}
	if app.stopBtn {
		app.logger.Info("Stopping the machine")
		app.runner.Stop()
	}
	if app.resetBtn {
		app.logger.Info("Resetting the program to the beginning")
		app.runner.Reset()
	}
	if app.stepBtn {
		if err := app.runner.StepOnce(); err != nil {
			app.showMessage(err.Error(), MessageError)
		}
	}
}

func (app *App) handleKeyPress() {
	for scanCode, key := range app.keyLookupMap {
		app.runner.SetKey(key, rl.IsKeyDown(scanCode))
	}
}

func (app *App) updateSpeed() {
	app.runner.SetSpeedInHz(speedFactorToHz(app.speedFactor))
}

func (app *App) showMessage(msg string, mType MessageType) {
	app.lastMessage = msg
	switch mType {
	case MessageInfo:
		app.lastMessageColor = MessageBarInfoColor
	case MessageWarning:
		app.lastMessageColor = MessageBarWarningColor
	case MessageError:
		app.lastMessageColor = MessageBarErrorColor
	}
}
