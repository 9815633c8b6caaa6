// Package layout splits a screen rectangle into disjoint sub-rectangles.
//
// Sizes are resolved in a single pass: fixed constraints (Length, Percentage,
// Ratio, Min) are allocated in order while space remains, Max segments then
// grow up to their cap, and whatever is left goes to Fill segments by weight.
// Without Fill segments the leftover goes to Min segments, and failing that
// to the last segment, so a split always covers the whole area.
package layout

import (
	"fmt"
	"image"

	uv "github.com/charmbracelet/ultraviolet"
)

// Kind is the sizing rule of a Constraint.
type Kind int

const (
	KindLength Kind = iota
	KindMin
	KindMax
	KindPercentage
	KindRatio
	KindFill
)

// Constraint sizes one segment of a split.
type Constraint struct {
	Kind  Kind
	Value int
	Den   int // KindRatio only
}

// Length is exactly n cells.
func Length(n int) Constraint { return Constraint{Kind: KindLength, Value: max(n, 0)} }

// Min is at least n cells and absorbs leftover space when nothing fills.
func Min(n int) Constraint { return Constraint{Kind: KindMin, Value: max(n, 0)} }

// Max is at most n cells.
func Max(n int) Constraint { return Constraint{Kind: KindMax, Value: max(n, 0)} }

// Percentage is p percent of the available space.
func Percentage(p int) Constraint {
	return Constraint{Kind: KindPercentage, Value: min(max(p, 0), 100)}
}

// Ratio is num/den of the available space.
func Ratio(num, den int) Constraint {
	if den <= 0 {
		den = 1
	}
	return Constraint{Kind: KindRatio, Value: min(max(num, 0), den), Den: den}
}

// Fill takes a share of the leftover space proportional to weight.
func Fill(weight int) Constraint { return Constraint{Kind: KindFill, Value: max(weight, 1)} }

func (c Constraint) String() string {
	switch c.Kind {
	case KindLength:
		return fmt.Sprintf("Length(%d)", c.Value)
	case KindMin:
		return fmt.Sprintf("Min(%d)", c.Value)
	case KindMax:
		return fmt.Sprintf("Max(%d)", c.Value)
	case KindPercentage:
		return fmt.Sprintf("Percentage(%d)", c.Value)
	case KindRatio:
		return fmt.Sprintf("Ratio(%d, %d)", c.Value, c.Den)
	case KindFill:
		return fmt.Sprintf("Fill(%d)", c.Value)
	default:
		return fmt.Sprintf("Constraint(%d)", int(c.Kind))
	}
}

// Direction is the axis a Layout splits along.
type Direction int

const (
	Vertical Direction = iota // top to bottom
	Horizontal                // left to right
)

// Layout describes a split of a rectangle.
type Layout struct {
	Direction   Direction
	Constraints []Constraint
	Margin      int // cells trimmed from every edge before splitting
	Spacing     int // cells left empty between segments
}

// Rows returns a top-to-bottom layout.
func Rows(cs ...Constraint) Layout {
	return Layout{Direction: Vertical, Constraints: cs}
}

// Columns returns a left-to-right layout.
func Columns(cs ...Constraint) Layout {
	return Layout{Direction: Horizontal, Constraints: cs}
}

// WithMargin returns a copy of l with the given margin.
func (l Layout) WithMargin(m int) Layout {
	l.Margin = max(m, 0)
	return l
}

// WithSpacing returns a copy of l with the given spacing.
func (l Layout) WithSpacing(s int) Layout {
	l.Spacing = max(s, 0)
	return l
}

// Split returns one rectangle per constraint. The rectangles lie inside area,
// never overlap, and follow constraint order along the layout axis. Segments
// that get no space are empty.
func (l Layout) Split(area uv.Rectangle) []uv.Rectangle {
	area = Inner(area, l.Margin)
	n := len(l.Constraints)
	if n == 0 {
		return nil
	}

	total := area.Dy()
	if l.Direction == Horizontal {
		total = area.Dx()
	}
	gaps := 0
	if n > 1 {
		gaps = min(l.Spacing*(n-1), total)
	}
	sizes := Sizes(total-gaps, l.Constraints)

	out := make([]uv.Rectangle, n)
	pos := 0
	for i, size := range sizes {
		if i > 0 {
			pos = min(pos+l.Spacing, total)
		}
		size = min(size, total-pos)
		if l.Direction == Vertical {
			out[i] = uv.Rect(area.Min.X, area.Min.Y+pos, area.Dx(), size)
		} else {
			out[i] = uv.Rect(area.Min.X+pos, area.Min.Y, size, area.Dy())
		}
		pos += size
	}
	return out
}

// Sizes resolves constraints against total cells. The result has one entry
// per constraint, every entry is non-negative and the entries sum to total
// (or to 0 when total is not positive).
func Sizes(total int, cs []Constraint) []int {
	sizes := make([]int, len(cs))
	if total <= 0 || len(cs) == 0 {
		return sizes
	}

	remaining := total
	for i, c := range cs {
		var want int
		switch c.Kind {
		case KindLength, KindMin:
			want = c.Value
		case KindPercentage:
			want = total * c.Value / 100
		case KindRatio:
			want = total * c.Value / c.Den
		}
		sizes[i] = min(want, remaining)
		remaining -= sizes[i]
	}

	for i, c := range cs {
		if remaining == 0 {
			break
		}
		if c.Kind == KindMax {
			sizes[i] = min(c.Value, remaining)
			remaining -= sizes[i]
		}
	}
	if remaining == 0 {
		return sizes
	}

	if distribute(sizes, cs, remaining, KindFill) {
		return sizes
	}
	if distribute(sizes, cs, remaining, KindMin) {
		return sizes
	}
	sizes[len(sizes)-1] += remaining
	return sizes
}

// distribute shares extra among the segments of kind k in proportion to their
// weight (Fill) or evenly (other kinds). Rounding remainders go to the
// earliest segments. It reports whether any segment of kind k exists.
func distribute(sizes []int, cs []Constraint, extra int, k Kind) bool {
	weight := 0
	for _, c := range cs {
		if c.Kind == k {
			weight += shareWeight(c)
		}
	}
	if weight == 0 {
		return false
	}

	given := 0
	for i, c := range cs {
		if c.Kind == k {
			share := extra * shareWeight(c) / weight
			sizes[i] += share
			given += share
		}
	}
	for i, c := range cs {
		if given == extra {
			break
		}
		if c.Kind == k {
			sizes[i]++
			given++
		}
	}
	return true
}

func shareWeight(c Constraint) int {
	if c.Kind == KindFill {
		return c.Value
	}
	return 1
}

// Inner shrinks area by margin cells on every side. An area too small for the
// margin collapses to an empty rectangle at its centre.
func Inner(area uv.Rectangle, margin int) uv.Rectangle {
	if margin <= 0 {
		return area
	}
	if area.Dx() <= 2*margin || area.Dy() <= 2*margin {
		c := image.Pt(area.Min.X+area.Dx()/2, area.Min.Y+area.Dy()/2)
		return uv.Rectangle{Min: c, Max: c}
	}
	return uv.Rect(area.Min.X+margin, area.Min.Y+margin, area.Dx()-2*margin, area.Dy()-2*margin)
}

// Centered returns a w×h rectangle centred in area, clipped to it.
func Centered(area uv.Rectangle, w, h int) uv.Rectangle {
	w = min(max(w, 0), area.Dx())
	h = min(max(h, 0), area.Dy())
	x := area.Min.X + (area.Dx()-w)/2
	y := area.Min.Y + (area.Dy()-h)/2
	return uv.Rect(x, y, w, h)
}
