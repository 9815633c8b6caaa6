package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// castHeader is the first line of an asciinema v2 recording.
type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// clearHome clears the screen and homes the cursor before each frame.
const clearHome = "\x1b[2J\x1b[H"

// GenerateASCIICast writes frames as an asciinema v2 cast. Each frame is
// emitted as a full redraw after its delay; annotations become markers.
func GenerateASCIICast(w io.Writer, frames []Frame, width, height int, title string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	header := castHeader{
		Version: 2,
		Width:   width,
		Height:  height,
		Title:   title,
		Env:     map[string]string{"TERM": "xterm-256color"},
	}
	if err := enc.Encode(header); err != nil {
		return fmt.Errorf("writing cast header: %w", err)
	}

	var at time.Duration
	for i, f := range frames {
		at += f.Delay
		ts := at.Seconds()
		if f.Annotation != "" {
			if err := enc.Encode([]any{ts, "m", f.Annotation}); err != nil {
				return fmt.Errorf("writing marker %d: %w", i, err)
			}
		}
		data := clearHome + strings.ReplaceAll(f.Content, "\n", "\r\n")
		if err := enc.Encode([]any{ts, "o", data}); err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
	}
	return nil
}
