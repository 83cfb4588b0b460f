package chippers

import (
	"io"
	"os"
)

// Display presents the machine screen. The run loop pushes a snapshot to it
// whenever a draw changed the screen.
type Display interface {
	// Boot initializes the component
	Boot() error
	Render(Screen) error
}

// DummyDisplay is a display that does nothing.
type DummyDisplay struct{}

func NewDummyDisplay() *DummyDisplay {
	return &DummyDisplay{}
}

func (d DummyDisplay) Boot() error {
	return nil
}

func (d DummyDisplay) Render(Screen) error {
	return nil
}

const esc = 0x1B

// TerminalDisplay draws the screen to a terminal with ANSI cursor control,
// two characters per pixel.
type TerminalDisplay struct {
	terminal        io.Writer
	OnChar, OffChar string
}

func NewTerminalDisplay() *TerminalDisplay {
	return NewTerminalDisplayWithOutput(os.Stdout)
}

func NewTerminalDisplayWithOutput(out io.Writer) *TerminalDisplay {
	return &TerminalDisplay{
		terminal: out,
		OnChar:   "##",
		OffChar:  "  ",
	}
}

// Boot implements Display.
func (disp *TerminalDisplay) Boot() error {
	_, err := disp.terminal.Write([]byte{
		// Move cursor to start
		esc, '[', '1', 'H',
		// Clear the terminal
		esc, '[', '0', 'J',
	})
	return err
}

// Render implements Display.
func (disp *TerminalDisplay) Render(screen Screen) error {
	buff := make([]byte, 0, ScreenWidth*ScreenHeight*2+ScreenHeight+8)
	buff = append(buff, esc, '[', '1', 'H')

	for y := byte(0); y < ScreenHeight; y++ {
		for x := byte(0); x < ScreenWidth; x++ {
			if screen.Pixel(x, y) {
				buff = append(buff, disp.OnChar...)
			} else {
				buff = append(buff, disp.OffChar...)
			}
		}
		buff = append(buff, '|', '\n')
	}

	_, err := disp.terminal.Write(buff)
	return err
}
