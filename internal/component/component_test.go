package component

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/config"
	"github.com/zhubert/panes/internal/errors"
	"github.com/zhubert/panes/internal/mode"
)

type fakePanel struct {
	Base
	mode    mode.Mode
	bound   bool
	updates []action.Action
}

func (f *fakePanel) Mode() (mode.Mode, bool) { return f.mode, f.bound }

func (f *fakePanel) Update(act action.Action) (action.Action, error) {
	if !f.Ready() {
		return action.NoAction, nil
	}
	f.updates = append(f.updates, act)
	return action.NoAction, nil
}

func (f *fakePanel) Draw(scr uv.Screen, area uv.Rectangle) error {
	return f.CheckArea(area)
}

var _ Component = (*fakePanel)(nil)

func TestBase_RegistrationErrors(t *testing.T) {
	p := &fakePanel{Base: NewBase("fake")}

	err := p.RegisterActionHandler(nil)
	if !errors.Is(err, errors.KindRegistration) {
		t.Errorf("RegisterActionHandler(nil) = %v, want registration error", err)
	}
	err = p.RegisterConfigHandler(nil)
	if !errors.Is(err, errors.KindRegistration) {
		t.Errorf("RegisterConfigHandler(nil) = %v, want registration error", err)
	}
	if p.Ready() {
		t.Error("Ready() after failed registration")
	}
}

func TestBase_ReadyAfterBothRegistrations(t *testing.T) {
	tx, rx := action.NewChannel()
	defer rx.Close()
	p := &fakePanel{Base: NewBase("fake")}

	if err := p.RegisterActionHandler(tx); err != nil {
		t.Fatal(err)
	}
	if p.Ready() {
		t.Error("Ready() with only a sender")
	}
	if err := p.RegisterConfigHandler(config.Default()); err != nil {
		t.Fatal(err)
	}
	if !p.Ready() {
		t.Error("Ready() = false after both registrations")
	}
}

func TestBase_UnregisteredIsHarmless(t *testing.T) {
	p := &fakePanel{Base: NewBase("fake")}

	if _, err := p.Update(action.New(action.Tick)); err != nil {
		t.Errorf("Update before registration = %v", err)
	}
	if len(p.updates) != 0 {
		t.Errorf("Update before registration recorded %v", p.updates)
	}
	if err := p.Emit(action.New(action.Quit)); err != nil {
		t.Errorf("Emit before registration = %v", err)
	}
	if p.Config() != nil {
		t.Error("Config() before registration should be nil")
	}
}

func TestBase_EmitQueuesAction(t *testing.T) {
	tx, rx := action.NewChannel()
	p := &fakePanel{Base: NewBase("fake")}
	_ = p.RegisterActionHandler(tx)

	if err := p.Emit(action.StatusText("hi")); err != nil {
		t.Fatalf("Emit() = %v", err)
	}
	got := rx.Drain()
	if len(got) != 1 || got[0] != action.StatusText("hi") {
		t.Errorf("Drain() = %v", got)
	}
}

func TestBase_ReRegistrationReleasesPreviousSender(t *testing.T) {
	first, rx := action.NewChannel()
	second := first.Clone()
	p := &fakePanel{Base: NewBase("fake")}

	_ = p.RegisterActionHandler(first)
	_ = p.RegisterActionHandler(second)

	if err := first.Send(action.New(action.Tick)); err == nil {
		t.Error("replaced sender should be released")
	}
	p.Release()

	select {
	case <-rx.Done():
	default:
		t.Error("channel should be closed once every handle is released")
	}
}

func TestBase_CheckArea(t *testing.T) {
	p := &fakePanel{Base: NewBase("fake")}

	err := p.Draw(nil, uv.Rect(0, 0, 0, 3))
	if !errors.Is(err, errors.KindDraw) {
		t.Errorf("Draw(empty) = %v, want draw error", err)
	}
	if err := p.Draw(nil, uv.Rect(0, 0, 4, 3)); err != nil {
		t.Errorf("Draw(non-empty) = %v", err)
	}
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		name    string
		panel   *fakePanel
		current mode.Mode
		want    bool
	}{
		{"matching mode", &fakePanel{mode: mode.Home, bound: true}, mode.Home, true},
		{"other mode", &fakePanel{mode: mode.Home, bound: true}, mode.Note, false},
		{"mode agnostic", &fakePanel{}, mode.Note, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActive(tt.panel, tt.current); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}
