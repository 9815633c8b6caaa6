package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Padding is the space kept between a block border and its content.
type Padding struct {
	Left, Right, Top, Bottom int
}

// drawString renders s into area. Lines past the bottom are dropped and each
// line is cut at the area width, so nothing lands outside area.
func drawString(scr uv.Screen, area uv.Rectangle, s string) {
	if area.Empty() {
		return
	}
	lines := strings.Split(s, "\n")
	if len(lines) > area.Dy() {
		lines = lines[:area.Dy()]
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, area.Dx(), "")
	}
	uv.NewStyledString(strings.Join(lines, "\n")).Draw(scr, area)
}

// fill paints area with the style's background.
func fill(scr uv.Screen, area uv.Rectangle, style lipgloss.Style) {
	if area.Empty() {
		return
	}
	row := style.Render(strings.Repeat(" ", area.Dx()))
	rows := make([]string, area.Dy())
	for i := range rows {
		rows[i] = row
	}
	drawString(scr, area, strings.Join(rows, "\n"))
}

// drawBlock draws a rounded border around area with title centred in the top
// edge and returns the content rectangle inside border and padding.
func drawBlock(scr uv.Screen, area uv.Rectangle, st Styles, title string, pad Padding) uv.Rectangle {
	return drawBlockWithBorder(scr, area, st, title, pad, st.Theme.Border)
}

// drawFocusedBlock is drawBlock with the theme's focus border color.
func drawFocusedBlock(scr uv.Screen, area uv.Rectangle, st Styles, title string, pad Padding) uv.Rectangle {
	return drawBlockWithBorder(scr, area, st, title, pad, st.Theme.GetBorderFocus())
}

func drawBlockWithBorder(scr uv.Screen, area uv.Rectangle, st Styles, title string, pad Padding, border string) uv.Rectangle {
	w, h := area.Dx(), area.Dy()
	if w < BorderSize || h < BorderSize {
		return uv.Rectangle{}
	}

	b := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().
		Foreground(lipgloss.Color(border)).
		Background(lipgloss.Color(st.Theme.Bg))
	inner := w - BorderSize

	label := ""
	if title != "" {
		label = ansi.Truncate(" "+title+" ", inner, "")
	}
	left := (inner - runewidth.StringWidth(label)) / 2
	right := inner - left - runewidth.StringWidth(label)

	var sb strings.Builder
	sb.WriteString(edge.Render(b.TopLeft + strings.Repeat(b.Top, left)))
	sb.WriteString(st.BlockTitle.Render(label))
	sb.WriteString(edge.Render(strings.Repeat(b.Top, right) + b.TopRight))

	middle := edge.Render(b.Left) + st.Content.Render(strings.Repeat(" ", inner)) + edge.Render(b.Right)
	for i := 0; i < h-BorderSize; i++ {
		sb.WriteString("\n")
		sb.WriteString(middle)
	}
	sb.WriteString("\n")
	sb.WriteString(edge.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight))

	drawString(scr, area, sb.String())

	cw := inner - pad.Left - pad.Right
	ch := h - BorderSize - pad.Top - pad.Bottom
	if cw <= 0 || ch <= 0 {
		return uv.Rectangle{}
	}
	return uv.Rect(area.Min.X+1+pad.Left, area.Min.Y+1+pad.Top, cw, ch)
}

// renderTabs renders the mode tab strip with selected highlighted.
func renderTabs(st Styles, titles []string, selected int) string {
	parts := make([]string, 0, len(titles)*2)
	for i, title := range titles {
		if i > 0 {
			parts = append(parts, st.TabDivider.Render("│"))
		}
		if i == selected {
			parts = append(parts, st.TabSelected.Render(title))
		} else {
			parts = append(parts, st.Tab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// wrap word-wraps s to width cells.
func wrap(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

// center pads s so it sits in the middle of width cells.
func center(s string, width int) string {
	if ansi.StringWidth(s) >= width {
		return s
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
