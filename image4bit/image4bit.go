package image4bit

import (
	"image"
	"image/color"
)

// Gray4 is a 4-bit grayscale color. Only the lower 4 bits of Y are used.
type Gray4 struct {
	Y uint8
}

// RGBA implements color.Color.
func (c Gray4) RGBA() (r, g, b, a uint32) {
	// 0xF * 0x1111 = 0xFFFF
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

func toGray4(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	// ITU-R 601 luma on 16-bit channels, then down to 4 bits.
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
}

// Gray4Model converts colors to Gray4.
var Gray4Model = color.ModelFunc(toGray4)

// HorizontalNibble is an in-memory image of Gray4 pixels, two per byte.
type HorizontalNibble struct {
	Pix    []byte
	Stride int // Bytes per row
	Rect   image.Rectangle
}

// NewHorizontalNibble returns an image with bounds r. The width of r must be
// even.
func NewHorizontalNibble(r image.Rectangle) *HorizontalNibble {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalNibble{Rect: r}
	}
	if w%2 != 0 {
		panic("image4bit: width must be even")
	}
	return &HorizontalNibble{
		Pix:    make([]byte, w/2*h),
		Stride: w / 2,
		Rect:   r,
	}
}

func (p *HorizontalNibble) ColorModel() color.Model { return Gray4Model }

func (p *HorizontalNibble) Bounds() image.Rectangle { return p.Rect }

func (p *HorizontalNibble) At(x, y int) color.Color {
	return p.Gray4At(x, y)
}

// Gray4At returns the pixel at (x, y), or black outside the bounds.
func (p *HorizontalNibble) Gray4At(x, y int) Gray4 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Gray4{}
	}
	offset, shift := p.pixOffset(x, y)
	return Gray4{Y: (p.Pix[offset] >> shift) & 0x0F}
}

// Set implements draw.Image.
func (p *HorizontalNibble) Set(x, y int, c color.Color) {
	p.SetGray4(x, y, Gray4Model.Convert(c).(Gray4))
}

// SetGray4 sets the pixel at (x, y) without color conversion.
func (p *HorizontalNibble) SetGray4(x, y int, c Gray4) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.pixOffset(x, y)
	p.Pix[offset] = (p.Pix[offset] &^ (0x0F << shift)) | ((c.Y & 0x0F) << shift)
}

// Fill sets every pixel of r, clipped to the image bounds, to c.
// Whole bytes are written where r covers both pixels of a byte.
func (p *HorizontalNibble) Fill(r image.Rectangle, c Gray4) {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return
	}
	packed := (c.Y&0x0F)<<4 | c.Y&0x0F
	for y := r.Min.Y; y < r.Max.Y; y++ {
		x := r.Min.X
		if (x-p.Rect.Min.X)%2 != 0 {
			p.SetGray4(x, y, c)
			x++
		}
		for ; x+1 < r.Max.X; x += 2 {
			offset, _ := p.pixOffset(x, y)
			p.Pix[offset] = packed
		}
		if x < r.Max.X {
			p.SetGray4(x, y, c)
		}
	}
}

// pixOffset returns the byte offset and bit shift of the pixel at (x, y).
// Even columns use the high nibble.
func (p *HorizontalNibble) pixOffset(x, y int) (offset int, shift uint) {
	offset = (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/2
	shift = uint(4 * (1 - ((x - p.Rect.Min.X) & 1)))
	return
}
