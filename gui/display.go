package gui

import (
	"fmt"
	"unicode"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/LouisGariepy/chippers"
)

var ScreenBgColor = rl.Gold
var ScreenPixelColor = rl.Yellow

const (
	minSpeedFactor = float32(chippers.MinSpeed/5) - 1
	maxSpeedFactor = float32(chippers.MaxSpeed/5) - 1
)

// scanCodeLookupMap maps raylib scan codes to machine keys. Raylib scan codes
// for letters and digits are the upper-case ASCII values.
func scanCodeLookupMap(layout chippers.KeyboardLayout) map[int32]byte {
	lookup := map[int32]byte{}
	for r, k := range chippers.LookupMap(layout) {
		lookup[int32(unicode.ToUpper(r))] = k
	}
	return lookup
}

func (app *App) drawScreen() {
	screen := app.runner.Screen()

	for y := 0; y < chippers.ScreenHeight; y++ {
		for x := 0; x < chippers.ScreenWidth; x++ {
			color := ScreenBgColor
			if screen.Pixel(byte(x), byte(y)) {
				color = ScreenPixelColor
			}

			rl.DrawRectangle(
				ScreenPositionX+ScreenPixelSize*int32(x),
				ScreenPositionY+ScreenPixelSize*int32(y),
				ScreenPixelSize,
				ScreenPixelSize,
				color)
		}
	}
}

func (app *App) drawToolbar() {
	rl.DrawRectangle(0, 0, int32(rl.GetScreenWidth()), ToolbarHeight, rl.Gray)

	app.startBtn = gui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*0, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		gui.IconText(gui.ICON_PLAYER_PLAY, "Start"),
	)
	app.stopBtn = gui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*1, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		gui.IconText(gui.ICON_PLAYER_STOP, "Stop"),
	)
	app.stepBtn = gui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*2, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		gui.IconText(gui.ICON_PLAYER_NEXT, "Step"),
	)
	app.resetBtn = gui.Button(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*3, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		gui.IconText(gui.ICON_ROTATE, "Reset"),
	)

	status := "Stopped"
	if app.runner.IsRunning() {
		status = "Running"
	}
	gui.Label(
		rl.NewRectangle(ToolbarGap+ToolbarBtnOffset*4, ToolbarGap, ToolbarBtnWidth, ToolbarBtnHeight),
		status,
	)

	gui.Label(
		rl.NewRectangle(float32(app.winW)-ToolbarGap-150, 26, 50, 20),
		fmt.Sprintf("%d Hz", speedFactorToHz(app.speedFactor)),
	)

	if gui.Button(
		rl.NewRectangle(float32(app.winW)-ToolbarGap-150+50, 26, 50, 20),
		gui.IconText(gui.ICON_ROTATE, ""),
	) {
		app.speedFactor = hzToSpeedFactor(chippers.DefaultSpeed)
	}

	app.speedFactor = gui.Slider(
		rl.NewRectangle(float32(app.winW)-ToolbarGap-150, ToolbarGap, 100, 20),
		fmt.Sprintf("%d Hz", chippers.MinSpeed),
		fmt.Sprintf("%d Hz", chippers.MaxSpeed),
		app.speedFactor,
		minSpeedFactor,
		maxSpeedFactor,
	)
}

func (app *App) drawMessageBar() {
	rl.DrawRectangle(
		0,
		int32(app.winH)-MessageBarHeight,
		int32(app.winW),
		MessageBarHeight,
		MessageBarBgColor,
	)

	rl.DrawText(
		app.lastMessage,
		MessageBarGap,
		int32(app.winH)-MessageBarHeight+MessageBarGap,
		16,
		app.lastMessageColor,
	)
}
