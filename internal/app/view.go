package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"blockwin/internal/block"
	"blockwin/internal/nodetree"
	"blockwin/internal/render"
)

// viewLine is one laid-out terminal line of the rendered window.
type viewLine struct {
	key     string
	text    string
	section bool
	style   tcell.Style
}

var (
	styleDefault = tcell.StyleDefault
	styleHeader  = tcell.StyleDefault.Bold(true)
	styleSection = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCode    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleQuote   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleStatus  = tcell.StyleDefault.Reverse(true)
)

// rebuildView renders the engine's window into lines and a node tree,
// recording each block's line bounds for the visibility scans.
func (a *Application) rebuildView() {
	blocks := a.engine.WindowBlocks()
	specs := a.rend.Render(blocks)
	a.tree = render.BuildTree(specs)

	byKey := make(map[string]block.Filtered, len(blocks))
	for _, f := range blocks {
		byKey[f.Key] = f
	}

	a.lines = a.lines[:0]
	for _, spec := range specs {
		a.layoutSpec(spec, byKey)
	}
}

// layoutSpec appends lines for a spec and its children, setting node
// bounds as lines are assigned. Hidden blocks get no line and keep
// degenerate bounds.
func (a *Application) layoutSpec(spec *render.NodeSpec, byKey map[string]block.Filtered) {
	if spec.Wrapper {
		for _, child := range spec.Children {
			a.layoutSpec(child, byKey)
		}
		return
	}
	if spec.Hidden {
		return
	}

	f, ok := byKey[spec.Key]
	if !ok {
		return
	}

	row := len(a.lines)
	a.lines = append(a.lines, a.lineFor(spec, f))

	if n := a.tree.Find(spec.Key); n != nil {
		n.SetBounds(nodetree.Rect{
			Top:    float64(row),
			Bottom: float64(row + 1),
			Right:  float64(a.width),
		})
	}
}

// lineFor formats one block as a terminal line.
func (a *Application) lineFor(spec *render.NodeSpec, f block.Filtered) viewLine {
	text := f.Data.String("text")
	if text == "" {
		text = f.Key
	}

	indent := strings.Repeat("  ", spec.Depth)
	style := styleDefault
	var marker string

	switch f.Type {
	case block.TypeHeader:
		marker = "# "
		style = styleHeader
	case block.TypeOrderedListItem:
		marker = fmt.Sprintf("%d. ", spec.Ordinal)
		if f.IsSection {
			style = styleSection
			if f.IsOpen() {
				marker = "v " + marker
			} else {
				marker = "> " + marker
			}
		}
	case block.TypeUnorderedListItem:
		marker = "- "
	case block.TypeCodeBlock:
		marker = "    "
		style = styleCode
	case block.TypeBlockquote:
		marker = "> "
		style = styleQuote
	case block.TypeAtomic:
		marker = "[*] "
	}

	return viewLine{
		key:     spec.Key,
		text:    indent + marker + text,
		section: f.IsSection,
		style:   style,
	}
}

// draw paints the visible lines and the status bar.
func (a *Application) draw() {
	if a.screen == nil {
		return
	}
	a.screen.Clear()

	body := a.bodyHeight()
	start := int(a.offset)
	for row := 0; row < body; row++ {
		idx := start + row
		if idx < 0 || idx >= len(a.lines) {
			continue
		}
		l := a.lines[idx]
		style := l.style
		if l.key != "" && (l.key == a.selStart || l.key == a.selEnd) {
			style = style.Underline(true)
		}
		drawText(a.screen, 0, row, a.width, style, l.text)
	}

	drawText(a.screen, 0, a.height-1, a.width, styleStatus, a.statusLine())
	a.screen.Show()
}

// statusLine summarizes the window state.
func (a *Application) statusLine() string {
	state := a.engine.State()
	status := fmt.Sprintf(" %d/%d blocks  slice [%d..%d]  line %d",
		len(state.OutputIndexes), len(a.doc.Blocks),
		state.SliceStart, state.SliceEnd, int(a.offset))
	if state.CurrentFocus.Key != "" {
		status += "  focus " + state.CurrentFocus.Key
	}
	if a.selStart != "" {
		status += fmt.Sprintf("  sel %s..%s", a.selStart, a.selEnd)
	}
	if a.engine.TopOfPage() {
		status += "  top"
	}
	if a.engine.ScrollSuspended() {
		status += "  seeking"
	}
	return status
}

// drawText writes a string at a position, padded or truncated to width.
func drawText(s tcell.Screen, x, y, width int, style tcell.Style, text string) {
	col := x
	for _, r := range text {
		if col >= x+width {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < x+width; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}
