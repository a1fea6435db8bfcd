package gui

import "fmt"

// Color is a 24-bit RGB color. It implements color.Color as an opaque color.
type Color struct {
	R, G, B uint8
}

// Named colors.
var (
	Black = ColorHex(0x000000)
	White = ColorHex(0xFFFFFF)
)

// ColorHex returns the color of a 0xRRGGBB value. Bits above 24 are ignored.
func ColorHex(c uint32) Color {
	return Color{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c)}
}

// Hex returns the color as 0xRRGGBB.
func (c Color) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	return r, g, b, 0xFFFF
}

func (c Color) String() string {
	return fmt.Sprintf("#%06X", c.Hex())
}
