package ssd1322

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/homesmthng/homedisplay/image4bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

var (
	// ErrNotInitialized is returned by drawing operations before Begin succeeded.
	ErrNotInitialized = errors.New("ssd1322: not initialized")
	// ErrHalted is returned by drawing operations after Halt.
	ErrHalted = errors.New("ssd1322: halted")
	// ErrUnknownMode is returned for modes outside the variant table.
	ErrUnknownMode = errors.New("ssd1322: unknown mode")
)

// Bus settings. The controller accepts Mode0 or Mode3 up to 10 MHz write
// cycle time, so 10 MHz Mode0 is used.
const (
	busFrequency = 10 * physic.MegaHertz
	busMode      = spi.Mode0
	busBits      = 8

	ramColumns = 480
	resetDelay = 200 * time.Millisecond
)

// Dev is the handle of a SSD1322 panel.
//
// The zero state after NewSPI is unconfigured; Begin must succeed before any
// drawing operation.
type Dev struct {
	// Communication
	port spi.Port
	c    conn.Conn   // Connected lazily by Begin
	dc   gpio.PinOut // Data/Command pin
	rst  gpio.PinIO  // Reset pin (optional)

	sleep func(time.Duration)

	// Display geometry
	mode         Mode
	rect         image.Rectangle
	columnOffset int // For centering on 480-column RAM

	// Pixel buffers
	buffer []byte                      // Current frame
	next   *image4bit.HorizontalNibble // For lazy double buffering
	lastDm image4bit.HorizontalNibble  // Last displayed frame for differential updates

	// State
	initialized bool
	halted      bool
}

// NewSPI returns an unconfigured handle for a panel on the SPI port p.
//
// The dc (Data/Command) pin is required. rst is optional; when nil, Begin
// relies on the power-on reset. No bus traffic happens until Begin.
func NewSPI(p spi.Port, dc gpio.PinOut, rst gpio.PinIO) *Dev {
	return &Dev{
		port:  p,
		dc:    dc,
		rst:   rst,
		sleep: time.Sleep,
	}
}

// Begin initializes the panel as the variant m.
//
// Begin may be called again to re-initialize the panel, including after Halt.
// On error the handle stays unusable for drawing.
func (d *Dev) Begin(m Mode) error {
	d.initialized = false
	v, err := m.variant()
	if err != nil {
		return err
	}
	if d.dc == nil {
		return errors.New("ssd1322: dc pin is required")
	}

	if d.c == nil {
		if d.port == nil {
			return errors.New("ssd1322: spi port is required")
		}
		c, err := d.port.Connect(busFrequency, busMode, busBits)
		if err != nil {
			return fmt.Errorf("ssd1322: failed to connect: %w", err)
		}
		d.c = c
	}

	d.mode = m
	d.rect = image.Rect(0, 0, v.w, v.h)
	d.columnOffset = (ramColumns - v.w) / 2
	d.buffer = make([]byte, v.w*v.h/2)
	d.next = nil
	d.lastDm = image4bit.HorizontalNibble{}

	if err := d.init(v); err != nil {
		return err
	}
	d.initialized = true
	d.halted = false
	return nil
}

// Mode returns the variant selected by the last successful Begin.
func (d *Dev) Mode() Mode {
	return d.mode
}

// init sends the initialization sequence to the display.
func (d *Dev) init(v variant) error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST low: %w", err)
		}
		d.sleep(resetDelay)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("ssd1322: failed to pull RST high: %w", err)
		}
		d.sleep(resetDelay)
	}

	remap1, remap2 := v.remap()
	cmds := []byte{
		0xFD, 0x12, // Unlock command codes
		0xAE,       // Display OFF
		0xB3, 0xF2, // Clock divider and oscillator frequency
		0xCA, byte(v.h - 1), // MUX ratio
		0xA2, 0x00, // Display offset
		0xA1, 0x00, // Start line
		0xA0, remap1, remap2, // Remap and dual COM mode
		0xAB, 0x01, // Enable internal VDD
		0xB4, 0xA0, 0xFD, // VSL
		0xC1, 0xFF, // Contrast
		0xC7, 0x0F, // Master contrast
		0xB9,       // Default grayscale table
		0xB1, 0xE2, // Phase length
		0xD1, 0x82, 0x20, // Display enhancement B
		0xBB, 0x1F, // Pre-charge voltage
		0xB6, 0x08, // Second pre-charge period
		0xBE, 0x07, // VCOMH
		0xA6, // Normal display mode
		0xA9, // Exit partial display mode
	}
	if err := d.sendCommands(cmds); err != nil {
		return fmt.Errorf("ssd1322: init sequence: %w", err)
	}

	if err := d.writeFullFrame(d.buffer); err != nil {
		return fmt.Errorf("ssd1322: clear RAM: %w", err)
	}

	return d.sendCommand(0xAF) // Display ON
}

// ready returns ErrNotInitialized or ErrHalted when the device cannot draw.
func (d *Dev) ready() error {
	if !d.initialized {
		return ErrNotInitialized
	}
	if d.halted {
		return ErrHalted
	}
	return nil
}

func (d *Dev) sendCommand(cmd byte) error {
	return d.sendCommands([]byte{cmd})
}

func (d *Dev) sendCommands(cmds []byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx(cmds, nil)
}

func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// writeRect writes pixel data to a rectangular region of the display.
func (d *Dev) writeRect(x, y, width, height int, pixels []byte) error {
	// Column addresses count groups of 4 pixels in RAM
	colStart := byte((x + d.columnOffset) / 4)
	colEnd := byte((x + width - 1 + d.columnOffset) / 4)

	if err := d.sendCommands([]byte{
		0x15, colStart, colEnd, // Column address
		0x75, byte(y), byte(y + height - 1), // Row address
		0x5C, // Write RAM
	}); err != nil {
		return err
	}
	return d.sendData(pixels)
}

func (d *Dev) writeFullFrame(pixels []byte) error {
	return d.writeRect(0, 0, d.rect.Dx(), d.rect.Dy(), pixels)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image4bit.Gray4Model
}

// Bounds implements display.Drawer. It is empty before Begin.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes a raw frame in HorizontalNibble format.
// The frame must be exactly Bounds().Dx() * Bounds().Dy() / 2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	if len(pixels) != len(d.buffer) {
		return 0, errors.New("ssd1322: invalid buffer size")
	}
	if err := d.writeFullFrame(pixels); err != nil {
		return 0, err
	}
	copy(d.buffer, pixels)
	if d.next != nil {
		copy(d.next.Pix, pixels)
		copy(d.lastDm.Pix, pixels)
	}
	return len(pixels), nil
}

// Draw implements display.Drawer.
//
// Only the smallest rectangle that differs from the last frame is sent.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	if srcImg, ok := src.(*image4bit.HorizontalNibble); ok {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			_, err := d.Write(srcImg.Pix)
			return err
		}
	}

	if d.next == nil {
		d.next = image4bit.NewHorizontalNibble(d.rect)
		copy(d.next.Pix, d.buffer)
		d.lastDm = image4bit.HorizontalNibble{
			Pix:    make([]byte, len(d.buffer)),
			Stride: d.next.Stride,
			Rect:   d.rect,
		}
		copy(d.lastDm.Pix, d.buffer)
	}

	if u, ok := src.(*image.Uniform); ok {
		d.next.Fill(dst, image4bit.Gray4Model.Convert(u.C).(image4bit.Gray4))
	} else {
		draw.Draw(d.next, dst, src, sp, draw.Src)
	}

	minCol, maxCol, minRow, maxRow := d.calculateDiff()
	if minCol > maxCol {
		return nil
	}
	changed := d.extractRegion(minCol, maxCol, minRow, maxRow)
	if err := d.writeRect(minCol, minRow, maxCol-minCol+1, maxRow-minRow+1, changed); err != nil {
		return err
	}

	copy(d.buffer, d.next.Pix)
	copy(d.lastDm.Pix, d.next.Pix)
	return nil
}

// calculateDiff returns the changed region between lastDm and next, aligned
// to the 4-pixel RAM column groups. minCol > maxCol means no change.
func (d *Dev) calculateDiff() (minCol, maxCol, minRow, maxRow int) {
	width := d.rect.Dx()
	height := d.rect.Dy()
	stride := width / 2

	minRow, maxRow = height, -1
	minCol, maxCol = width, -1

	for y := 0; y < height; y++ {
		row := y * stride
		prev, cur := d.lastDm.Pix[row:row+stride], d.next.Pix[row:row+stride]
		if bytes.Equal(prev, cur) {
			continue
		}
		minRow = min(minRow, y)
		maxRow = max(maxRow, y)
		for x := 0; x < stride; x++ {
			if prev[x] != cur[x] {
				minCol = min(minCol, x*2)
				maxCol = max(maxCol, x*2+1)
			}
		}
	}
	if maxCol < 0 {
		return 1, 0, 0, 0
	}

	// Widen to whole column groups, keeping the region inside the panel.
	minCol -= (minCol + d.columnOffset) % 4
	if minCol < 0 {
		minCol = 0
	}
	maxCol += 3 - (maxCol+d.columnOffset)%4
	if maxCol > width-1 {
		maxCol = width - 1
	}
	return minCol, maxCol, minRow, maxRow
}

// extractRegion copies the pixel bytes of a rectangular region out of next.
func (d *Dev) extractRegion(minCol, maxCol, minRow, maxRow int) []byte {
	stride := d.rect.Dx() / 2
	byteWidth := (maxCol - minCol + 1) / 2

	result := make([]byte, 0, byteWidth*(maxRow-minRow+1))
	for y := minRow; y <= maxRow; y++ {
		start := y*stride + minCol/2
		result = append(result, d.next.Pix[start:start+byteWidth]...)
	}
	return result
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(contrast byte) error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.sendCommands([]byte{0xC1, contrast})
}

// Invert inverts the display colors.
func (d *Dev) Invert(invert bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	mode := byte(0xA6)
	if invert {
		mode = 0xA7
	}
	return d.sendCommand(mode)
}

// Halt switches the display off. Begin brings it back.
func (d *Dev) Halt() error {
	if d.halted {
		return nil
	}
	d.halted = true
	if !d.initialized {
		return nil
	}
	return d.sendCommand(0xAE)
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1322.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// ScrollSpeed defines the horizontal scroll frame interval.
type ScrollSpeed byte

const (
	Speed6Frames   ScrollSpeed = 0x00
	Speed10Frames  ScrollSpeed = 0x01
	Speed100Frames ScrollSpeed = 0x02
	Speed200Frames ScrollSpeed = 0x03
)

// ScrollHorizontal scrolls rows startRow through endRow left, or right when
// right is true.
func (d *Dev) ScrollHorizontal(startRow, endRow byte, speed ScrollSpeed, right bool) error {
	if err := d.ready(); err != nil {
		return err
	}
	if int(startRow) >= d.rect.Dy() || int(endRow) >= d.rect.Dy() || startRow > endRow {
		return errors.New("ssd1322: scroll row out of range")
	}

	scrollCmd := byte(0x26)
	if right {
		scrollCmd = 0x27
	}
	return d.sendCommands([]byte{
		scrollCmd,
		0x00, // Dummy
		startRow,
		byte(speed),
		endRow,
		0x00, 0x00, // Dummy
		0x2F, // Activate scroll
	})
}

// StopScroll stops scrolling.
func (d *Dev) StopScroll() error {
	if err := d.ready(); err != nil {
		return err
	}
	return d.sendCommand(0x2E)
}
