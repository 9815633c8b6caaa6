package ui

import (
	"sort"
	"strings"

	"charm.land/bubbles/v2/key"

	"github.com/zhubert/panes/internal/keys"
)

// BindingGroup is every chord bound to one action, in configuration order.
type BindingGroup struct {
	Action string
	Chords []string // display form, e.g. "<C-d>"
}

// Label joins the chords for display.
func (g BindingGroup) Label() string {
	return strings.Join(g.Chords, ChordSeparator)
}

// GroupBindings groups bindings by action name, sorted by that name.
func GroupBindings(bindings []keys.Binding) []BindingGroup {
	index := make(map[string]int)
	var groups []BindingGroup
	for _, b := range bindings {
		name := b.Action.String()
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, BindingGroup{Action: name})
		}
		groups[i].Chords = append(groups[i].Chords, keys.DisplayChord(b.Keys))
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Action < groups[j].Action
	})
	return groups
}

// HelpBindings converts bindings to bubbles key bindings for the help view.
// Only single-key chords become matchable keys; every chord still shows in
// the help text.
func HelpBindings(bindings []keys.Binding) []key.Binding {
	var out []key.Binding
	for _, g := range GroupBindings(bindings) {
		var names []string
		for _, b := range bindings {
			if b.Action.String() == g.Action && len(b.Keys) == 1 {
				names = append(names, b.Keys[0])
			}
		}
		if len(names) == 0 {
			// help hides bindings without keys
			names = []string{g.Chords[0]}
		}
		out = append(out, key.NewBinding(
			key.WithKeys(names...),
			key.WithHelp(strings.Join(g.Chords, "/"), strings.ToLower(g.Action)),
		))
	}
	return out
}
