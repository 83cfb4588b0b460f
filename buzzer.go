package chippers

import (
	"io"
	"os"
)

// Buzzer is the single-tone sound device. The run loop calls Play while the
// sound timer is counting down and Stop when it reaches zero.
type Buzzer interface {
	// Boot initializes the component
	Boot() error
	Play()
	Stop()
}

type DummyBuzzer struct {
	IsPlaying bool
}

func NewDummyBuzzer() *DummyBuzzer {
	return &DummyBuzzer{
		IsPlaying: false,
	}
}

// Boot implements Buzzer.
func (b *DummyBuzzer) Boot() error {
	return nil
}

// Play implements Buzzer.
func (b *DummyBuzzer) Play() {
	b.IsPlaying = true
}

// Stop implements Buzzer.
func (b *DummyBuzzer) Stop() {
	b.IsPlaying = false
}

// TerminalBuzzer rings the terminal bell when the tone starts.
type TerminalBuzzer struct {
	terminal io.Writer
	playing  bool
}

func NewTerminalBuzzer() *TerminalBuzzer {
	return &TerminalBuzzer{terminal: os.Stdout}
}

// Boot implements Buzzer.
func (b *TerminalBuzzer) Boot() error {
	return nil
}

// Play implements Buzzer.
func (b *TerminalBuzzer) Play() {
	if !b.playing {
		b.playing = true
		_, _ = b.terminal.Write([]byte{0x07})
	}
}

// Stop implements Buzzer.
func (b *TerminalBuzzer) Stop() {
	b.playing = false
}
