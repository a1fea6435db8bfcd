// Package gui is a small retained-mode GUI layer for periph.io displays.
//
// A Context owns the displays bound to it. Each display has a root screen
// object whose styles are rendered onto the display's drawer by Refresh.
// Style changes and user activity invalidate the display; nothing reaches the
// panel until the next Refresh.
//
// A Context is not safe for concurrent use.
package gui

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/display"
)

// Part selects the part of an object a style applies to.
type Part uint8

const (
	PartMain Part = iota
	PartScrollbar
	PartIndicator
	PartKnob
	numParts
)

func (p Part) String() string {
	switch p {
	case PartMain:
		return "main"
	case PartScrollbar:
		return "scrollbar"
	case PartIndicator:
		return "indicator"
	case PartKnob:
		return "knob"
	}
	return fmt.Sprintf("Part(%d)", uint8(p))
}

// Option configures a Context.
type Option func(*Context)

// WithClock sets the time source used for activity tracking.
func WithClock(now func() time.Time) Option {
	return func(c *Context) {
		c.now = now
	}
}

// Context holds the GUI state that would otherwise be process wide: the
// displays and which of them is the default.
type Context struct {
	now      func() time.Time
	displays []*Display
	def      *Display
}

// New returns an empty Context.
func New(opts ...Option) *Context {
	c := &Context{now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Bind creates a display rendering onto d and makes it the default display.
//
// d must already be initialized; Bind only reads its bounds. The new root
// screen has a white main background and the display starts invalid so the
// first Refresh paints it.
//
// Binding a drawer that is already bound returns its existing display, made
// default and invalid again; its screen keeps its styles.
func (c *Context) Bind(d display.Drawer) *Display {
	if d == nil {
		panic("gui: Bind with nil drawer")
	}
	for _, disp := range c.displays {
		if disp.drawer == d {
			disp.lastActivity = c.now()
			disp.invalid = true
			c.def = disp
			Logger().Debug("gui: display rebound", slog.String("drawer", d.String()))
			return disp
		}
	}
	disp := &Display{
		ctx:          c,
		drawer:       d,
		lastActivity: c.now(),
		invalid:      true,
	}
	disp.screen = &Obj{disp: disp}
	disp.screen.bg[PartMain] = White

	c.displays = append(c.displays, disp)
	c.def = disp
	Logger().Debug("gui: display bound", slog.String("drawer", d.String()), slog.Any("bounds", d.Bounds()))
	return disp
}

// DefaultDisplay returns the most recently bound display, or nil.
func (c *Context) DefaultDisplay() *Display {
	return c.def
}

// Displays returns the bound displays in bind order.
func (c *Context) Displays() []*Display {
	return c.displays
}

// SetDefaultDisplay makes d the default display. d must belong to c.
func (c *Context) SetDefaultDisplay(d *Display) {
	if d == nil || d.ctx != c {
		panic("gui: display does not belong to this context")
	}
	c.def = d
}

// ActiveScreen returns the root screen of the default display, or nil if no
// display is bound.
func (c *Context) ActiveScreen() *Obj {
	if c.def == nil {
		return nil
	}
	return c.def.screen
}

// Refresh refreshes every bound display and returns the first error.
func (c *Context) Refresh() error {
	for _, d := range c.displays {
		if err := d.Refresh(); err != nil {
			return err
		}
	}
	return nil
}

// Display is a drawer bound to a Context.
type Display struct {
	ctx          *Context
	drawer       display.Drawer
	screen       *Obj
	lastActivity time.Time
	invalid      bool
}

// Drawer returns the drawer the display renders onto.
func (d *Display) Drawer() display.Drawer {
	return d.drawer
}

// Screen returns the root screen of the display.
func (d *Display) Screen() *Obj {
	return d.screen
}

// TriggerActivity marks the display as in use now and forces a redraw on
// the next Refresh.
func (d *Display) TriggerActivity() {
	d.lastActivity = d.ctx.now()
	d.invalid = true
	Logger().Debug("gui: activity", slog.String("drawer", d.drawer.String()))
}

// InactiveTime returns the time elapsed since the last activity.
func (d *Display) InactiveTime() time.Duration {
	return d.ctx.now().Sub(d.lastActivity)
}

// Invalid reports whether the next Refresh will redraw the display.
func (d *Display) Invalid() bool {
	return d.invalid
}

// Refresh repaints the display if it is invalid. The display stays invalid
// when the drawer fails.
func (d *Display) Refresh() error {
	if !d.invalid {
		return nil
	}
	bg := d.screen.bg[PartMain]
	if err := d.drawer.Draw(d.drawer.Bounds(), image.NewUniform(bg), image.Point{}); err != nil {
		return fmt.Errorf("gui: refresh %s: %w", d.drawer, err)
	}
	d.invalid = false
	Logger().Debug("gui: refreshed", slog.String("drawer", d.drawer.String()), slog.String("bg", bg.String()))
	return nil
}

// Obj is a GUI object. Only screens exist for now.
type Obj struct {
	disp *Display
	bg   [numParts]Color
}

// Display returns the display the object belongs to.
func (o *Obj) Display() *Display {
	return o.disp
}

// SetStyleBgColor sets the background color of part p and invalidates the
// display. Unknown parts are ignored.
func (o *Obj) SetStyleBgColor(c Color, p Part) {
	if p >= numParts {
		return
	}
	o.bg[p] = c
	o.disp.invalid = true
}

// StyleBgColor returns the background color of part p.
func (o *Obj) StyleBgColor(p Part) Color {
	if p >= numParts {
		return Color{}
	}
	return o.bg[p]
}
