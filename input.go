package chippers

// NumKeys is the number of keys on the hex keypad.
const NumKeys = 16

// KeyState tracks one key of the keypad.
type KeyState byte

const (
	// KeyNotPressed means the key is up, including when it was just
	// released.
	KeyNotPressed KeyState = iota
	// KeyPressed means the key is down, including when it was just pressed.
	KeyPressed
	// KeyAlreadyPressed means the key was down before a wait-for-key began.
	// It does not count as held and cannot satisfy the wait until it is
	// released and pressed again.
	KeyAlreadyPressed
)

// InputHandler tracks the keypad and the wait-for-key protocol.
type InputHandler struct {
	keys [NumKeys]KeyState

	waiting      bool
	waitRegister byte

	released    bool
	releasedKey byte
}

// SetKey records a key transition. A Pressed to released transition records
// the pressed-then-released event the wait-for-key protocol consumes; a key
// must go down and up again to produce one.
func (in *InputHandler) SetKey(key byte, pressed bool) {
	if key >= NumKeys {
		return
	}

	if pressed {
		if in.keys[key] == KeyNotPressed {
			in.keys[key] = KeyPressed
		}
		return
	}

	if in.keys[key] == KeyPressed {
		in.released = true
		in.releasedKey = key
	}
	in.keys[key] = KeyNotPressed
}

// IsHeld reports whether key counts as currently held. Keys that were down
// before a wait began report false until re-pressed. Key values outside the
// keypad are never held.
func (in *InputHandler) IsHeld(key byte) bool {
	if key >= NumKeys {
		return false
	}
	return in.keys[key] == KeyPressed
}

// State returns the state of key. Key values outside the keypad read as not
// pressed.
func (in *InputHandler) State(key byte) KeyState {
	if key >= NumKeys {
		return KeyNotPressed
	}
	return in.keys[key]
}

// beginWait arms the wait for register x. Keys held at this point are
// demoted so that only a fresh press-then-release can satisfy the wait, and
// any stale release event is dropped.
func (in *InputHandler) beginWait(register byte) {
	for k, state := range in.keys {
		if state == KeyPressed {
			in.keys[k] = KeyAlreadyPressed
		}
	}
	in.waiting = true
	in.waitRegister = register
	in.released = false
}

// takeReleased consumes the pending pressed-then-released event, if any.
func (in *InputHandler) takeReleased() (byte, bool) {
	if !in.released {
		return 0, false
	}
	in.released = false
	return in.releasedKey, true
}
