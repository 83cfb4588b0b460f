package chippers

// TimerState is the lifecycle of a countdown timer. The transition to
// TimerZero happens exactly once, when the value reaches 0 from 1.
type TimerState byte

const (
	TimerAboveZero TimerState = iota
	TimerZero
)

// Timer is an 8-bit countdown decremented by an external clock,
// conventionally at 60 Hz. The machine never ticks its own timers.
type Timer struct {
	value byte
	state TimerState
}

// Decrement counts the timer down by one. Decrementing a timer that is
// already at zero is a no-op.
func (t *Timer) Decrement() {
	switch t.value {
	case 0:
	case 1:
		t.value = 0
		t.state = TimerZero
	default:
		t.value--
	}
}

// Reset sets the value back to a full second worth of ticks.
func (t *Timer) Reset() {
	t.value = 60
}

// Set loads a new value, rearming the lifecycle when the value is above
// zero.
func (t *Timer) Set(v byte) {
	t.value = v
	if v > 0 {
		t.state = TimerAboveZero
	} else {
		t.state = TimerZero
	}
}

func (t Timer) Value() byte {
	return t.value
}

func (t Timer) State() TimerState {
	return t.state
}

// Active reports whether the timer is still counting down.
func (t Timer) Active() bool {
	return t.value > 0
}
