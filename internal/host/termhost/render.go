package termhost

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/zeusync/courier/internal/core/events"
	"github.com/zeusync/courier/internal/core/events/bus"
)

var (
	styleObstacle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleDelivery  = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleItem      = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleDelivered = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleAgent     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true)
)

// agent glyph per quarter turn, starting at Forward and turning right
var headingGlyphs = [4]rune{'^', '>', 'v', '<'}

func headingGlyph(heading float64) rune {
	q := int(math.Round(heading / (math.Pi / 2)))
	return headingGlyphs[((q%4)+4)%4]
}

// cell maps a world position to a screen cell of the play area, which
// fills every row but the status line.
func (h *Host) cell(pos mgl64.Vec3) (x, y int, ok bool) {
	w, rows := h.screen.Size()
	rows--
	half := h.sess.Config().World.HalfExtent
	if w < 2 || rows < 2 || half <= 0 {
		return 0, 0, false
	}
	fx := (pos[0] + half) / (2 * half)
	fz := (pos[2] + half) / (2 * half)
	if fx < 0 || fx > 1 || fz < 0 || fz > 1 {
		return 0, 0, false
	}
	return int(math.Round(fx * float64(w-1))), int(math.Round(fz * float64(rows-1))), true
}

func (h *Host) put(pos mgl64.Vec3, r rune, style tcell.Style) {
	if x, y, ok := h.cell(pos); ok {
		h.screen.SetContent(x, y, r, nil, style)
	}
}

func (h *Host) draw() {
	h.screen.Clear()
	snap := h.sess.Snapshot()

	for _, o := range snap.Obstacles {
		h.put(o, '#', styleObstacle)
	}
	h.put(snap.Delivery, 'D', styleDelivery)
	for _, it := range snap.Items {
		if it.Delivered {
			h.put(it.Position, '*', styleDelivered)
		} else if it.ID != snap.Carrying {
			h.put(it.Position, 'o', styleItem)
		}
	}
	h.put(snap.Agent.Position, headingGlyph(snap.Agent.Heading), styleAgent)

	carrying := "-"
	if held, ok := h.sess.Carrying(); ok {
		carrying = held.Name()
	}
	line := fmt.Sprintf(" score %d | %s | carrying %s | %s", snap.Score, snap.Agent.Mode, carrying, h.status)
	w, rows := h.screen.Size()
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = rune(line[x])
		}
		h.screen.SetContent(x, rows-1, r, nil, styleStatus)
	}
	h.screen.Show()
}

func describe(e bus.Event) string {
	switch d := e.Data().(type) {
	case events.Carry:
		switch e.Type() {
		case events.TypePickedUp:
			return "picked up " + d.ItemName
		case events.TypeDelivered:
			return fmt.Sprintf("delivered %s, score %d", d.ItemName, d.Score)
		case events.TypeNotInDeliveryZone:
			return fmt.Sprintf("not in the delivery zone (%.1f away)", d.Distance)
		default:
			return "nothing in range"
		}
	case events.Attach:
		return "physics ready"
	default:
		return e.Type()
	}
}
