package ui

import (
	"fmt"
	"strings"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/rivo/uniseg"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/mode"
)

// FPS counts Tick and Render actions and shows their rate per second.
type FPS struct {
	panel
	now func() time.Time

	tickStart time.Time
	ticks     int
	tickRate  float64

	frameStart time.Time
	frames     int
	frameRate  float64
}

// NewFPS creates an unregistered FPS counter using the wall clock.
func NewFPS() *FPS {
	return NewFPSWithClock(time.Now)
}

// NewFPSWithClock creates an FPS counter reading time from now.
func NewFPSWithClock(now func() time.Time) *FPS {
	t := now()
	return &FPS{
		panel:      newPanel("fps"),
		now:        now,
		tickStart:  t,
		frameStart: t,
	}
}

// Mode reports that the counter is active in every mode.
func (f *FPS) Mode() (mode.Mode, bool) {
	return 0, false
}

// Rates returns the last measured ticks per second and frames per second.
func (f *FPS) Rates() (ticks, frames float64) {
	return f.tickRate, f.frameRate
}

// Update counts Tick and Render. Rates are recomputed once at least a second
// has passed since the previous measurement.
func (f *FPS) Update(act action.Action) (action.Action, error) {
	if !f.Ready() {
		return action.NoAction, nil
	}
	switch act.Type {
	case action.Tick:
		f.ticks++
		f.tickRate, f.tickStart, f.ticks = measure(f.now(), f.tickStart, f.ticks, f.tickRate)
	case action.Render:
		f.frames++
		f.frameRate, f.frameStart, f.frames = measure(f.now(), f.frameStart, f.frames, f.frameRate)
	}
	return action.NoAction, nil
}

func measure(now, start time.Time, count int, rate float64) (float64, time.Time, int) {
	elapsed := now.Sub(start)
	if elapsed < time.Second {
		return rate, start, count
	}
	return float64(count) / elapsed.Seconds(), now, 0
}

// Draw right-aligns the rates on the first line of area.
func (f *FPS) Draw(scr uv.Screen, area uv.Rectangle) error {
	if !f.Ready() {
		return nil
	}
	if err := f.CheckArea(area); err != nil {
		return err
	}

	text := fmt.Sprintf("%.2f ticks/sec, %.2f fps", f.tickRate, f.frameRate)
	if pad := area.Dx() - uniseg.StringWidth(text); pad > 0 {
		text = strings.Repeat(" ", pad) + text
	}
	drawString(scr, uv.Rect(area.Min.X, area.Min.Y, area.Dx(), FPSHeight), f.styles.FPS.Render(text))
	return nil
}
