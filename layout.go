package chippers

// KeyboardLayout maps each of the 16 machine keys to the rune that triggers
// it on a host keyboard.
type KeyboardLayout [NumKeys]rune

// DefaultKeyboardLayout maps the left-hand 4x4 block of a QWERTY keyboard
// onto the keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var DefaultKeyboardLayout = KeyboardLayout{
	0x0: 'x',
	0x1: '1',
	0x2: '2',
	0x3: '3',
	0x4: 'q',
	0x5: 'w',
	0x6: 'e',
	0x7: 'a',
	0x8: 's',
	0x9: 'd',
	0xA: 'z',
	0xB: 'c',
	0xC: '4',
	0xD: 'r',
	0xE: 'f',
	0xF: 'v',
}

// LookupMap inverts a layout into a rune-to-key map for frontends.
func LookupMap(layout KeyboardLayout) map[rune]byte {
	m := make(map[rune]byte, len(layout))
	for k, r := range layout {
		m[r] = byte(k)
	}
	return m
}
