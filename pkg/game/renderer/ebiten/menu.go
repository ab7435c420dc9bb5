package ebiten

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"frontier/pkg/game/menu"
)

// appendRoundedRect adds a rounded rectangle to the path. (x, y) is top-left; w, h are size; r is corner radius.
// Uses clockwise arcs so the path winds correctly for fill.
func appendRoundedRect(p *vector.Path, x, y, w, h, r float32) {
	appendRoundedRectDir(p, x, y, w, h, r, vector.Clockwise)
}

// appendRoundedRectDir adds a rounded rectangle with the given winding direction.
// CounterClockwise creates a hole when combined with an outer clockwise rect.
func appendRoundedRectDir(p *vector.Path, x, y, w, h, r float32, dir vector.Direction) {
	if r <= 0 {
		p.MoveTo(x, y)
		p.LineTo(x, y+h)
		p.LineTo(x+w, y+h)
		p.LineTo(x+w, y)
		p.Close()
		return
	}
	if r > w/2 {
		r = w / 2
	}
	if r > h/2 {
		r = h / 2
	}
	halfPi := float32(math.Pi / 2)
	pi := float32(math.Pi)
	p.MoveTo(x+r, y)
	p.LineTo(x+w-r, y)
	p.Arc(x+w-r, y+r, r, 3*halfPi, 0, dir)
	p.LineTo(x+w, y+h-r)
	p.Arc(x+w-r, y+h-r, r, 0, halfPi, dir)
	p.LineTo(x+r, y+h)
	p.Arc(x+r, y+h-r, r, halfPi, pi, dir)
	p.LineTo(x, y+r)
	p.Arc(x+r, y+r, r, pi, 3*halfPi, dir)
	p.Close()
}

// drawRoundedRectWithShadow draws a rounded rectangle with drop shadow, fill, and border.
// alpha scales shadow opacity.
// Shadow color is derived from borderColor (darkened to ~15% brightness).
func drawRoundedRectWithShadow(screen *ebiten.Image, x, y, w, h, cornerRadius, borderWidth float32, bgColor, borderColor color.Color, alpha float32) {
	const shadowSpread = 8
	// Derive shadow from border color (darkened)
	bor, bog, bob, _ := borderColor.RGBA()
	shadowR := uint8((bor >> 8) * 15 / 255)
	shadowG := uint8((bog >> 8) * 15 / 255)
	shadowB := uint8((bob >> 8) * 15 / 255)
	if shadowR < 8 {
		shadowR = 8
	}
	if shadowG < 8 {
		shadowG = 8
	}
	if shadowB < 8 {
		shadowB = 8
	}

	var path vector.Path
	for i := shadowSpread; i >= 1; i-- {
		ringAlpha := uint8(12 + i*8)
		if ringAlpha > 55 {
			ringAlpha = 55
		}
		ringAlpha = uint8(float32(ringAlpha) * alpha)
		path.Reset()
		appendRoundedRect(&path,
			x-float32(i), y-float32(i),
			w+float32(i*2), h+float32(i*2),
			cornerRadius+float32(i))
		appendRoundedRectDir(&path,
			x-float32(i-1), y-float32(i-1),
			w+float32((i-1)*2), h+float32((i-1)*2),
			cornerRadius+float32(i-1), vector.CounterClockwise)
		drawOpts := &vector.DrawPathOptions{AntiAlias: true}
		drawOpts.ColorScale.ScaleWithColor(color.RGBA{shadowR, shadowG, shadowB, ringAlpha})
		vector.FillPath(screen, &path, nil, drawOpts)
	}

	path.Reset()
	appendRoundedRect(&path, x, y, w, h, cornerRadius)
	drawOpts := &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(bgColor)
	vector.FillPath(screen, &path, nil, drawOpts)

	path.Reset()
	appendRoundedRect(&path, x, y, w, h, cornerRadius)
	strokeOpts := &vector.StrokeOptions{Width: borderWidth, MiterLimit: 10}
	drawOpts = &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(borderColor)
	vector.StrokePath(screen, &path, strokeOpts, drawOpts)
}

// menuColumns groups item indexes by layout column, in column order.
func menuColumns(items []menu.MenuItem) [][]int {
	var cols [][]int
	for i, item := range items {
		c := 0
		if ci, ok := item.(menu.ColumnItem); ok {
			c = max(ci.Column(), 0)
		}
		for len(cols) <= c {
			cols = append(cols, nil)
		}
		cols[c] = append(cols[c], i)
	}
	return cols
}

// itemLabel returns the text drawn for an item, with its shortcut key.
func itemLabel(item menu.MenuItem) string {
	if s, ok := item.(menu.ShortcutItem); ok && s.Shortcut() != "" {
		return "[" + s.Shortcut() + "] " + item.GetLabel()
	}
	return item.GetLabel()
}

// drawMenu draws m as a centred panel.
func (a *App) drawMenu(screen *ebiten.Image, m *menu.Menu, bg color.RGBA) {
	items := m.Items()
	cols := menuColumns(items)
	title := m.Title()
	instructions := m.Instructions()
	help := m.HelpText()
	lineHeight := float32(uiFontSize + lineSpacing)

	colWidths := make([]float32, len(cols))
	rows := 0
	for c, col := range cols {
		rows = max(rows, len(col))
		for _, i := range col {
			w, _ := text.Measure(itemLabel(items[i]), a.fonts.regular, 0)
			colWidths[c] = max(colWidths[c], float32(w)+16)
		}
	}
	var contentW float32
	for c, w := range colWidths {
		if c > 0 {
			contentW += columnGap
		}
		contentW += w
	}
	for _, line := range []string{instructions, help} {
		w, _ := text.Measure(line, a.fonts.regular, 0)
		contentW = max(contentW, float32(w))
	}
	titleW, _ := text.Measure(title, a.fonts.title, 0)
	contentW = max(contentW, float32(titleW))

	panelW := contentW + 2*panelPadding
	panelH := 2*panelPadding + float32(rows)*lineHeight
	if title != "" {
		panelH += titleFontSize + lineSpacing*2
	}
	for _, line := range []string{instructions, help} {
		if line != "" {
			panelH += lineHeight
		}
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	panelX := (float32(sw) - panelW) / 2
	panelY := (float32(sh) - panelH) / 2
	drawRoundedRectWithShadow(screen, panelX, panelY, panelW, panelH, 12, 2, bg, colorAction, 1)

	x := panelX + panelPadding
	y := panelY + panelPadding
	if title != "" {
		drawText(screen, title, a.fonts.title, x, y, colorAction)
		y += titleFontSize + lineSpacing*2
	}

	colX := x
	for c, col := range cols {
		for r, i := range col {
			item := items[i]
			iy := y + float32(r)*lineHeight
			clr := colorText
			switch {
			case !item.IsSelectable():
				clr = colorHeading
			case i == m.Selected():
				vector.DrawFilledRect(screen, colX-8, iy-4, colWidths[c], lineHeight, colorHighlight, true)
			}
			drawText(screen, itemLabel(item), a.fonts.regular, colX, iy, clr)
		}
		colX += colWidths[c] + columnGap
	}
	y += float32(rows) * lineHeight

	if help != "" {
		drawText(screen, help, a.fonts.regular, x, y, colorAction)
		y += lineHeight
	}
	if instructions != "" {
		drawText(screen, instructions, a.fonts.regular, x, y, colorSubtle)
	}
}

// drawText draws s with its top-left corner at x, y.
func drawText(screen *ebiten.Image, s string, face text.Face, x, y float32, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
