package ssd1322

import (
	"fmt"
	"strings"
)

// Mode selects one of the supported panel variants.
//
// A variant fixes the glass geometry and the way the COM and segment lines are
// wired to the controller, which is all Begin needs to bring the panel up.
type Mode uint8

const (
	// Mode256x64 is the common 3.12" 256×64 module.
	Mode256x64 Mode = iota
	// Mode256x64Rotated is the 256×64 module mounted upside down.
	Mode256x64Rotated
	// Mode128x64 is the smaller 128×64 module, centered in the 480-column RAM.
	Mode128x64
	// Mode256x64DualCOM is a 256×64 module with odd/even split COM pins
	// and swapped halves.
	Mode256x64DualCOM
	// Mode480x128 drives the full controller RAM.
	Mode480x128
)

// variant describes the panel geometry and remap configuration of a Mode.
type variant struct {
	name string
	w, h int

	rotated       bool // 180° rotation
	comSplit      bool // Odd/even COM split
	swapTopBottom bool // Swap top/bottom display halves
}

var variants = [...]variant{
	Mode256x64:        {name: "256x64", w: 256, h: 64},
	Mode256x64Rotated: {name: "256x64-rotated", w: 256, h: 64, rotated: true},
	Mode128x64:        {name: "128x64", w: 128, h: 64},
	Mode256x64DualCOM: {name: "256x64-dualcom", w: 256, h: 64, comSplit: true, swapTopBottom: true},
	Mode480x128:       {name: "480x128", w: 480, h: 128},
}

func (m Mode) variant() (variant, error) {
	if int(m) >= len(variants) {
		return variant{}, fmt.Errorf("%w %d", ErrUnknownMode, m)
	}
	return variants[m], nil
}

// String returns the mode name accepted by ParseMode.
func (m Mode) String() string {
	if int(m) >= len(variants) {
		return fmt.Sprintf("Mode(%d)", m)
	}
	return variants[m].name
}

// Size returns the panel resolution of the mode, or 0, 0 for unknown modes.
func (m Mode) Size() (w, h int) {
	v, err := m.variant()
	if err != nil {
		return 0, 0
	}
	return v.w, v.h
}

// ParseMode returns the Mode with the given name. Matching is case insensitive.
func ParseMode(s string) (Mode, error) {
	for i, v := range variants {
		if strings.EqualFold(v.name, s) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// remap returns the two parameter bytes of the remap and dual COM command.
func (v variant) remap() (byte, byte) {
	remap1, remap2 := byte(0x14), byte(0x11)
	if v.rotated {
		remap1 = 0x06
	}
	if v.comSplit {
		remap1 |= 0x20
	}
	if v.swapTopBottom {
		remap2 |= 0x02
	}
	return remap1, remap2
}
