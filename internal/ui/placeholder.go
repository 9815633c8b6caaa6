package ui

import (
	uv "github.com/charmbracelet/ultraviolet"
)

// DrawPlaceholder fills area with a notice that the named panel could not be
// drawn. It is used in place of a panel whose Draw failed.
func DrawPlaceholder(scr uv.Screen, area uv.Rectangle, name string) {
	if area.Empty() {
		return
	}
	st := NewStyles(BuiltinThemes[DefaultTheme])
	fill(scr, area, st.Root)

	msg := st.StatusError.Render(name + " unavailable")
	if area.Dy() < 3 {
		drawString(scr, area, center(msg, area.Dx()))
		return
	}
	inner := drawBlock(scr, area, st, name, Padding{})
	if !inner.Empty() {
		drawString(scr, uv.Rect(inner.Min.X, inner.Min.Y+inner.Dy()/2, inner.Dx(), 1), center(msg, inner.Dx()))
	}
}
