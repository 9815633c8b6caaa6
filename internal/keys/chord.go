package keys

import (
	"strings"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/errors"
)

// Binding maps a key sequence to the action it produces.
type Binding struct {
	Keys   []string
	Action action.Action
}

// Chord returns the binding's sequence in config notation.
func (b Binding) Chord() string {
	return FormatChord(b.Keys)
}

// ParseChord splits "<g><ctrl+n>" into ["g", "ctrl+n"]. Named keys are lower
// cased, single characters keep their case; at least one key is required.
func ParseChord(s string) ([]string, error) {
	rest := strings.TrimSpace(s)
	if rest == "" {
		return nil, errors.InvalidChord(s)
	}

	var out []string
	for rest != "" {
		if rest[0] != '<' {
			return nil, errors.InvalidChord(s)
		}
		end := strings.IndexByte(rest, '>')
		// "<>>" binds the '>' key itself
		if end == 1 && len(rest) > 2 && rest[2] == '>' {
			end = 2
		}
		if end <= 1 {
			return nil, errors.InvalidChord(s)
		}
		k := rest[1:end]
		if len(k) > 1 {
			k = strings.ToLower(k)
		}
		out = append(out, k)
		rest = rest[end+1:]
	}
	return out, nil
}

// FormatChord is the inverse of ParseChord.
func FormatChord(seq []string) string {
	var b strings.Builder
	for _, k := range seq {
		b.WriteString("<")
		b.WriteString(k)
		b.WriteString(">")
	}
	return b.String()
}

// DisplayChord renders a sequence for on-screen help: ctrl chords use the
// short "<C-x>" form, everything else is shown as configured.
func DisplayChord(seq []string) string {
	var b strings.Builder
	for _, k := range seq {
		if rest, ok := strings.CutPrefix(k, "ctrl+"); ok {
			b.WriteString("<C-" + rest + ">")
			continue
		}
		b.WriteString("<" + k + ">")
	}
	return b.String()
}

// Matcher resolves multi-key sequences. It remembers the keys typed so far and
// is owned by the single input goroutine.
type Matcher struct {
	pending []string
}

// Pending returns the keys typed towards an incomplete sequence.
func (m *Matcher) Pending() []string {
	return append([]string(nil), m.pending...)
}

// Reset forgets any partially typed sequence.
func (m *Matcher) Reset() {
	m.pending = nil
}

// Feed adds key to the pending sequence and returns the bound action once a
// sequence completes. A key that cannot continue the pending sequence starts
// a new one.
func (m *Matcher) Feed(key string, bindings []Binding) (action.Action, bool) {
	m.pending = append(m.pending, key)
	if act, ok, prefix := lookup(m.pending, bindings); ok {
		m.pending = nil
		return act, true
	} else if prefix {
		return action.NoAction, false
	}

	// The pending sequence is dead; retry the key on its own.
	m.pending = []string{key}
	act, ok, prefix := lookup(m.pending, bindings)
	switch {
	case ok:
		m.pending = nil
		return act, true
	case prefix:
		return action.NoAction, false
	default:
		m.pending = nil
		return action.NoAction, false
	}
}

// lookup reports an exact match for seq and whether seq is a strict prefix of
// some longer binding.
func lookup(seq []string, bindings []Binding) (action.Action, bool, bool) {
	prefix := false
	for _, b := range bindings {
		if len(b.Keys) < len(seq) {
			continue
		}
		if !hasPrefix(b.Keys, seq) {
			continue
		}
		if len(b.Keys) == len(seq) {
			return b.Action, true, false
		}
		prefix = true
	}
	return action.NoAction, false, prefix
}

func hasPrefix(seq, prefix []string) bool {
	for i := range prefix {
		if seq[i] != prefix[i] {
			return false
		}
	}
	return true
}
