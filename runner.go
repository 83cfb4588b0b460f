package chippers

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultSpeed uint = 700
	MaxSpeed     uint = 1200
	MinSpeed     uint = 5

	// Timers tick at the conventional display rate regardless of how fast
	// instructions run.
	timerRate = 60
)

// Runner paces a machine: instructions at a configurable rate, timer ticks
// at 60 Hz decoupled from the instruction rate, frames pushed to the
// display when the screen changed, and the buzzer driven by the sound
// timer. The machine itself never schedules anything; the runner is the
// driver, so it also serializes access for frontends that poke at it from
// other goroutines.
type Runner struct {
	mu sync.Mutex

	machine *Machine
	display Display
	buzzer  Buzzer

	speedInHz uint
	step      time.Duration

	booted  bool
	paused  bool
	lastErr error

	steps uint

	beforeStepHooks []Hook
	afterStepHooks  []Hook
	errorHooks      []ErrorHook
}

func NewRunner(machine *Machine, display Display, buzzer Buzzer) *Runner {
	r := &Runner{
		machine: machine,
		display: display,
		buzzer:  buzzer,
	}
	r.SetSpeedInHz(DefaultSpeed)
	return r
}

// SetSpeedInHz sets the instruction rate, clamped to [MinSpeed, MaxSpeed].
func (r *Runner) SetSpeedInHz(inHz uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.speedInHz = min(max(inHz, MinSpeed), MaxSpeed)
	r.step = time.Second / time.Duration(r.speedInHz)
}

func (r *Runner) SpeedInHz() uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.speedInHz
}

// Machine exposes the driven machine. Frontends must not step it directly
// while Run is active.
func (r *Runner) Machine() *Machine {
	return r.machine
}

// Boot initializes the display and buzzer. Booting twice is a noop.
func (r *Runner) Boot() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.booted {
		return nil
	}

	if err := r.display.Boot(); err != nil {
		return err
	}
	if err := r.buzzer.Boot(); err != nil {
		return err
	}

	r.booted = true
	return nil
}

// Run steps the machine at the configured speed until the context is
// canceled or a step fails. Timers tick at 60 Hz on the side.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Boot(); err != nil {
		return err
	}

	var last time.Time
	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.mu.Lock()
		if r.lastErr != nil {
			err := r.lastErr
			r.mu.Unlock()
			return err
		}
		if !r.paused {
			if err := r.stepLocked(); err != nil {
				r.mu.Unlock()
				return err
			}
		}
		for time.Since(lastTick) >= time.Second/timerRate {
			r.tickTimersLocked()
			lastTick = lastTick.Add(time.Second / timerRate)
		}
		step := r.step
		r.mu.Unlock()

		// Prevent the loop from running faster than the configured speed
		time.Sleep(max(step-time.Since(last), 0))
		last = time.Now()
	}
}

// StepOnce runs a single step bypassing the pause state.
func (r *Runner) StepOnce() error {
	if err := r.Boot(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastErr != nil {
		return r.lastErr
	}
	return r.stepLocked()
}

// TickTimers decrements both timers once. Run does this on its own; the
// method exists for drivers that pace the machine themselves.
func (r *Runner) TickTimers() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tickTimersLocked()
}

// Start resumes stepping.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = false
}

// Stop pauses stepping. Timers keep ticking while paused.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paused = true
}

func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.paused
}

// Reset returns the machine to its power-on state and clears any stored
// error. The pause state is kept.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.machine.Reset()
	r.machine.screenDirty = false
	r.lastErr = nil
	r.steps = 0
	_ = r.display.Render(r.machine.Screen())
}

// Load replaces the machine program and clears any stored error.
func (r *Runner) Load(program []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.machine.Load(program); err != nil {
		return err
	}
	r.machine.screenDirty = false
	r.lastErr = nil
	r.steps = 0
	return nil
}

// Screen copies the machine screen without racing the run loop.
func (r *Runner) Screen() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.Screen()
}

// SetKey records a key transition on the machine.
func (r *Runner) SetKey(key byte, pressed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.machine.SetKey(key, pressed)
}

// TapKey presses a key and schedules its release. Terminals only report key
// presses, so a tap stands in for the press-and-release pair the machine
// expects.
func (r *Runner) TapKey(key byte, hold time.Duration) {
	r.SetKey(key, true)
	time.AfterFunc(hold, func() {
		r.SetKey(key, false)
	})
}

// Snapshot copies the machine state without racing the run loop.
func (r *Runner) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.machine.Snapshot()
}

func (r *Runner) LastError() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func (r *Runner) Steps() uint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.steps
}

func (r *Runner) stepLocked() error {
	r.runHooks(r.beforeStepHooks)

	if err := r.machine.Step(); err != nil {
		r.runErrorHooks(err)
		r.lastErr = err
		return err
	}
	r.steps++
	r.runHooks(r.afterStepHooks)

	if r.machine.SoundActive() {
		r.buzzer.Play()
	} else {
		r.buzzer.Stop()
	}

	if r.machine.screenDirty {
		r.machine.screenDirty = false
		if err := r.display.Render(r.machine.Screen()); err != nil {
			r.runErrorHooks(err)
			r.lastErr = err
			return err
		}
	}

	return nil
}

func (r *Runner) tickTimersLocked() {
	r.machine.TickTimer(DelayTimer)
	r.machine.TickTimer(SoundTimer)
}
