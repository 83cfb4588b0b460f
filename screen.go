package chippers

import "strings"

// Common display size. The machine always uses 64x32; larger variants
// belong to later instruction-set extensions.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Screen is the monochrome pixel grid, row-major. Pixels are toggled by
// drawing, never set directly; a pixel keeps its state until cleared or
// toggled again.
type Screen [ScreenWidth * ScreenHeight]bool

// Pixel reports whether the pixel at x, y is lit.
func (s *Screen) Pixel(x, y byte) bool {
	return s[int(y)*ScreenWidth+int(x)]
}

// Toggle flips the pixel at x, y and reports whether a lit pixel was turned
// off (a collision).
func (s *Screen) Toggle(x, y byte) bool {
	i := int(y)*ScreenWidth + int(x)
	collision := s[i]
	s[i] = !s[i]
	return collision
}

// Clear turns every pixel off.
func (s *Screen) Clear() {
	*s = Screen{}
}

// Pack returns the bit-packed screen, one bit per pixel, most significant
// bit first. This is the wire form the web display streams.
func (s *Screen) Pack() []byte {
	out := make([]byte, len(s)/8)
	for i, on := range s {
		if on {
			out[i/8] |= 0x80 >> (i % 8)
		}
	}
	return out
}

// String renders the screen for a terminal, two characters per pixel.
func (s *Screen) String() string {
	sb := strings.Builder{}

	sb.WriteString(strings.Repeat("-", ScreenWidth*2+2))
	sb.WriteByte('\n')
	for y := byte(0); y < ScreenHeight; y++ {
		sb.WriteByte('|')
		for x := byte(0); x < ScreenWidth; x++ {
			if s.Pixel(x, y) {
				sb.WriteString("##")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(strings.Repeat("-", ScreenWidth*2+2))

	return sb.String()
}
