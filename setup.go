// Package homedisplay brings up the panel and GUI of the home display.
//
// Setup initializes a panel, binds it to a GUI context and paints the root
// screen black. It is meant to run once at program start, before anything
// else touches the panel or the GUI.
package homedisplay

import (
	"github.com/homesmthng/homedisplay/gui"
	"github.com/homesmthng/homedisplay/ssd1322"
	"periph.io/x/conn/v3/display"
)

// DefaultMode is the panel variant the home display ships with.
const DefaultMode = ssd1322.Mode256x64

// background is the color Setup paints the root screen with.
var background = gui.ColorHex(0x000000)

// Panel is a display that has to be initialized before it can draw.
//
// *ssd1322.Dev implements Panel.
type Panel interface {
	display.Drawer
	// Begin initializes the panel hardware as the variant m.
	Begin(m ssd1322.Mode) error
}

// Display is the part of a GUI display Setup uses.
type Display interface {
	TriggerActivity()
}

// Object is the part of a GUI object Setup uses.
type Object interface {
	SetStyleBgColor(c gui.Color, p gui.Part)
}

// GUI is the part of a GUI context Setup uses. FromContext adapts a
// *gui.Context.
type GUI interface {
	Bind(d display.Drawer)
	DefaultDisplay() Display
	ActiveScreen() Object
}

// FromContext returns c as a GUI.
func FromContext(c *gui.Context) GUI {
	return contextGUI{c}
}

type contextGUI struct {
	c *gui.Context
}

func (g contextGUI) Bind(d display.Drawer) { g.c.Bind(d) }

func (g contextGUI) DefaultDisplay() Display { return g.c.DefaultDisplay() }

func (g contextGUI) ActiveScreen() Object { return g.c.ActiveScreen() }

// Setup initializes p as the variant m and binds it to g.
//
// If the panel fails to initialize Setup returns false and g is not touched.
// Otherwise the default display of g is marked active, the main part of the
// active screen is painted black, and Setup returns true. The panel
// stays owned by the caller.
func Setup(p Panel, g GUI, m ssd1322.Mode) bool {
	if err := p.Begin(m); err != nil {
		return false
	}

	g.Bind(p)
	g.DefaultDisplay().TriggerActivity()
	g.ActiveScreen().SetStyleBgColor(background, gui.PartMain)
	return true
}
