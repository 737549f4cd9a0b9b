package game

import (
	"fmt"
	"math"
	"unicode"

	"github.com/doronn/ggj2026-sub000/internal/core"
	"github.com/doronn/ggj2026-sub000/internal/hue"
	"github.com/doronn/ggj2026-sub000/internal/mask"
)

// statusHeight is the two bottom lines: hint/flash and controls.
const statusHeight = 2

// Render draws the HUD, the level and any overlay into dst.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	switch {
	case g.failed != "":
		g.renderOverlay(dst, "Level failed to load", g.failed)
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	case g.world == nil:
		return
	}

	g.renderWorld(dst)
	g.renderStatus(dst)

	switch {
	case g.won:
		g.renderOverlay(dst, "You Win!", fmt.Sprintf("Final score: %d - press R to play again", g.score))
	case g.clearTicks > 0:
		g.renderOverlay(dst, g.level.Name+" cleared!", "Get ready...")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the title line and the mask slot row.
func (g *Game) renderHUD(dst *core.Screen) {
	title := " Breaking Hue"
	if g.world != nil {
		title = fmt.Sprintf(" Breaking Hue | %s (%d/%d) | Score: %d | Deaths: %d",
			g.level.Name, g.levelNum, g.catalog.Len(), g.score, g.Deaths())
	}
	dst.DrawTextColored(0, 0, title, core.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}

	g.renderSlots(dst, 1, 2)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 3, '─', core.ColorGray)
	}
}

// renderSlots draws the three mask slots and the combined active color.
// Active masks show uppercase in their bright color, inactive lowercase.
func (g *Game) renderSlots(dst *core.Screen, x, y int) {
	if g.world == nil {
		return
	}
	inv := g.world.Player().Inventory

	dst.DrawTextColored(x, y, "Masks", core.ColorGray)
	bx := x + 6
	for i := 0; i < mask.SlotCount; i++ {
		slot := inv.Slot(i)
		label := fmt.Sprintf("%d:", i+1)
		dst.DrawTextColored(bx, y, label, core.ColorGray)
		bx += len(label)

		box := "[ ]"
		c := core.ColorGray
		if !slot.Empty() {
			ch := slot.Color.Char()
			if slot.Active {
				c = brightFor(slot.Color)
			} else {
				ch = unicode.ToLower(ch)
				c = colorFor(slot.Color)
			}
			box = "[" + string(ch) + "]"
		}
		dst.DrawTextColored(bx, y, box, c)
		bx += len(box) + 1
	}

	combined := inv.GetCombinedActiveColor()
	label := "Combined: " + combined.String()
	dst.DrawTextColored(bx+2, y, label, brightFor(combined))
}

// renderWorld draws the level entities back to front.
func (g *Game) renderWorld(dst *core.Screen) {
	w := g.world

	for _, wall := range w.Walls() {
		g.fillRect(dst, wall.Cells(), '█', core.ColorGray)
	}

	g.fillRect(dst, w.PortalArea().Cells(), '◊', core.ColorBrightCyan)

	for _, cp := range w.Checkpoints() {
		c := core.ColorGray
		if cp.Activated() {
			c = core.ColorBrightGreen
		}
		g.fillRect(dst, cp.Area.Cells(), '+', c)
	}

	for _, gate := range w.Gates() {
		ch := '▓'
		if !gate.SolidEnabled() {
			ch = '░'
		}
		g.fillRect(dst, gate.Solid.Cells(), ch, brightFor(gate.Color))
	}

	for _, b := range w.Barrels() {
		if b.Exploded() {
			continue
		}
		g.fillRect(dst, b.Bounds.Cells(), '●', brightFor(b.Color))
	}

	for _, p := range w.Pickups() {
		if p.Collected() {
			continue
		}
		ch := '◆'
		if !p.Collectible() {
			ch = '◇' // dropped mask still cooling down
		}
		g.putPoint(dst, p.Pos, ch, brightFor(p.Color))
	}

	for _, bot := range w.Bots() {
		if bot.Removed() {
			continue
		}
		if !bot.Alive() {
			g.putPoint(dst, bot.Pos, '×', core.ColorGray)
			continue
		}
		g.putPoint(dst, bot.Pos, 'Ω', brightFor(bot.Inventory.GetCombinedActiveColor()))
	}

	g.putPoint(dst, w.Player().Pos, '@', core.ColorBrightWhite)
}

// renderStatus draws the hint/flash line and the controls line.
func (g *Game) renderStatus(dst *core.Screen) {
	hintY := dst.Height() - 2
	switch {
	case g.flashTicks > 0 && g.flash != "":
		dst.DrawTextCenteredColored(hintY, g.flash, g.flashColor)
	case g.level.Hint != "":
		dst.DrawTextCenteredColored(hintY, g.level.Hint, core.ColorGray)
	}

	controls := " Move: WASD/arrows | 1/2/3: toggle mask | X: all off | G: drop | P: pause | Q: quit"
	dst.DrawTextColored(0, dst.Height()-1, controls, core.ColorGray)
}

// fillRect paints every screen cell the rect covers.
func (g *Game) fillRect(dst *core.Screen, r core.Rect, ch rune, c core.Color) {
	for cy := r.Y; cy < r.Y+r.H; cy++ {
		for cx := r.X; cx < r.X+r.W; cx++ {
			g.putCell(dst, cx, cy, ch, c)
		}
	}
}

// putCell paints one world cell, cellW screen characters wide.
func (g *Game) putCell(dst *core.Screen, cx, cy int, ch rune, c core.Color) {
	sy := g.offsetY + cy
	for i := 0; i < g.cellW; i++ {
		sx := g.offsetX + cx*g.cellW + i
		if sx >= 0 && sx < dst.Width() && sy >= 0 && sy < dst.Height() {
			dst.SetColored(sx, sy, ch, c)
		}
	}
}

// putPoint paints the world cell containing p.
func (g *Game) putPoint(dst *core.Screen, p core.Vec2, ch rune, c core.Color) {
	g.putCell(dst, int(math.Floor(p.X)), int(math.Floor(p.Y)), ch, c)
}

// renderOverlay draws a centered message box over the scene.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := len(line1)
	if len(line2) > maxLen {
		maxLen = len(line2)
	}
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH && y < h; y++ {
		for x := boxX; x < boxX+boxW && x < w; x++ {
			if x < 0 || y < 0 {
				continue
			}
			isTopOrBottom := y == boxY || y == boxY+boxH-1
			isLeftOrRight := x == boxX || x == boxX+boxW-1
			switch {
			case isTopOrBottom && isLeftOrRight:
				dst.Set(x, y, '+')
			case isTopOrBottom:
				dst.Set(x, y, '-')
			case isLeftOrRight:
				dst.Set(x, y, '|')
			default:
				dst.Set(x, y, ' ')
			}
		}
	}

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}

// colorFor maps a mask color to its base screen color.
func colorFor(c hue.Color) core.Color {
	switch c {
	case hue.Red:
		return core.ColorRed
	case hue.Yellow:
		return core.ColorYellow
	case hue.Blue:
		return core.ColorBlue
	case hue.Orange:
		return core.ColorOrange
	case hue.Green:
		return core.ColorGreen
	case hue.Purple:
		return core.ColorMagenta
	case hue.Black:
		return core.ColorWhite
	default:
		return core.ColorGray
	}
}

// brightFor maps a mask color to the highlighted variant used for active
// masks and live entities.
func brightFor(c hue.Color) core.Color {
	switch c {
	case hue.Red:
		return core.ColorBrightRed
	case hue.Yellow:
		return core.ColorBrightYellow
	case hue.Blue:
		return core.ColorBrightBlue
	case hue.Orange:
		return core.ColorOrange
	case hue.Green:
		return core.ColorBrightGreen
	case hue.Purple:
		return core.ColorBrightMagenta
	case hue.Black:
		return core.ColorBrightWhite
	default:
		return core.ColorWhite
	}
}
