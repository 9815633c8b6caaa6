package app

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/zhubert/panes/internal/action"
	"github.com/zhubert/panes/internal/clipboard"
	"github.com/zhubert/panes/internal/config"
	perrors "github.com/zhubert/panes/internal/errors"
	"github.com/zhubert/panes/internal/layout"
	"github.com/zhubert/panes/internal/logger"
	"github.com/zhubert/panes/internal/mode"
	"github.com/zhubert/panes/internal/ui"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateIdle, "Idle"},
		{StateUpdating, "Updating"},
		{StateDrawing, "Drawing"},
		{StateShutDown, "ShutDown"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestDispatcher_RegisterFailureAborts(t *testing.T) {
	setupTestLogger(t)
	bad := newRecorder("bad")
	bad.configErr = errors.New("boom")
	after := newRecorder("after")

	d := NewDispatcher(config.StaticSource(config.Default()), fill("bad", bad), fill("after", after))
	defer d.Close()

	err := d.Register()
	if err == nil {
		t.Fatal("Register() should fail")
	}
	if !perrors.Is(err, perrors.KindRegistration) {
		t.Errorf("Register() kind = %v, want %v", perrors.GetKind(err), perrors.KindRegistration)
	}
	if after.Ready() {
		t.Error("slots after the failing one should not be registered")
	}
}

func TestDispatcher_RegisterGivesEverySlotHandles(t *testing.T) {
	a, b := newRecorder("a"), newRecorder("b")
	testDispatcher(t, fill("a", a), fill("b", b))

	for _, r := range []*recorder{a, b} {
		if !r.Ready() {
			t.Errorf("%s not ready after Register", r.Name())
		}
	}
}

func TestDispatcher_FIFOOneActionPerUpdate(t *testing.T) {
	a, b := newRecorder("a"), newRecorder("b")
	d := testDispatcher(t, fill("a", a), fill("b", b))

	send(t, d,
		action.New(action.Tick),
		action.New(action.NextNote),
		action.Resized(80, 24),
		action.New(action.Render),
	)
	if _, running := cycle(d, 10, 10); !running {
		t.Fatal("Cycle() stopped unexpectedly")
	}

	want := []action.Type{action.Tick, action.NextNote, action.Resize, action.Render}
	for _, r := range []*recorder{a, b} {
		if got := r.types(); !reflect.DeepEqual(got, want) {
			t.Errorf("%s saw %v, want %v", r.Name(), got, want)
		}
	}
	if w, h := d.Size(); w != 80 || h != 24 {
		t.Errorf("Size() = %dx%d, want 80x24", w, h)
	}
	if d.State() != StateIdle {
		t.Errorf("State() = %v, want Idle", d.State())
	}
}

func TestDispatcher_FollowUpsArriveNextCycle(t *testing.T) {
	a, b := newRecorder("a"), newRecorder("b")
	a.reply[action.Tick] = action.StatusText("ticked")
	d := testDispatcher(t, fill("a", a), fill("b", b))

	send(t, d, action.New(action.Tick))
	cycle(d, 10, 10)

	if got := b.types(); !reflect.DeepEqual(got, []action.Type{action.Tick}) {
		t.Fatalf("first cycle: b saw %v, want only Tick", got)
	}
	if n := d.Receiver().Len(); n != 1 {
		t.Fatalf("queued after first cycle = %d, want 1", n)
	}

	cycle(d, 10, 10)
	want := []action.Type{action.Tick, action.Status}
	if got := b.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("second cycle: b saw %v, want %v", got, want)
	}
	if got := b.seen[1].Message; got != "ticked" {
		t.Errorf("follow-up message = %q, want %q", got, "ticked")
	}
}

func TestDispatcher_ActivityByMode(t *testing.T) {
	home := newRecorder("home").inMode(mode.Home)
	note := newRecorder("note").inMode(mode.Note)
	status := newRecorder("status")
	d := testDispatcher(t, fill("home", home), fill("note", note), fill("status", status))

	if got := d.Active(); !reflect.DeepEqual(got, []string{"home", "status"}) {
		t.Errorf("Active() in Home = %v", got)
	}

	cycle(d, 10, 10)
	if len(note.draws) != 0 {
		t.Errorf("inactive panel drawn %d times", len(note.draws))
	}
	if got, want := home.draws[0], uv.Rect(0, 0, 10, 5); got != want {
		t.Errorf("home area = %v, want %v", got, want)
	}
	if got, want := status.draws[0], uv.Rect(0, 5, 10, 5); got != want {
		t.Errorf("status area = %v, want %v", got, want)
	}
	if home.draws[0].Overlaps(status.draws[0]) {
		t.Error("panel areas overlap")
	}

	send(t, d, action.New(action.Switch))
	cycle(d, 10, 10)
	if got := d.Active(); !reflect.DeepEqual(got, []string{"note", "status"}) {
		t.Errorf("Active() in Note = %v", got)
	}
	if len(note.draws) != 1 || len(home.draws) != 1 {
		t.Errorf("draws after switch: home=%d note=%d, want 1 and 1", len(home.draws), len(note.draws))
	}
}

func TestDispatcher_InactivePanelsStillSeeActions(t *testing.T) {
	note := newRecorder("note").inMode(mode.Note)
	d := testDispatcher(t, fill("note", note))

	send(t, d, action.New(action.Tick))
	cycle(d, 10, 10)
	if got := note.types(); !reflect.DeepEqual(got, []action.Type{action.Tick}) {
		t.Errorf("inactive panel saw %v, want [Tick]", got)
	}
}

func TestDispatcher_HomeToNoteSwitch(t *testing.T) {
	keysPanel := ui.NewKeys()
	d := testDispatcher(t,
		Slot{Name: "home", Component: ui.NewHome(), Size: layout.Fill(1)},
		Slot{Name: "note", Component: ui.NewNote(clipboard.NewMemory(nil)), Size: layout.Fill(1)},
		Slot{Name: "keys", Component: keysPanel, Size: layout.Length(1)},
	)

	if d.Mode() != mode.Home {
		t.Fatalf("initial Mode() = %v, want Home", d.Mode())
	}

	send(t, d, action.New(action.Switch))
	out, _ := cycle(d, 240, 20)
	if d.Mode() != mode.Note {
		t.Fatalf("Mode() after Switch = %v, want Note", d.Mode())
	}
	if got := d.Active(); !reflect.DeepEqual(got, []string{"note", "keys"}) {
		t.Errorf("Active() = %v, want [note keys]", got)
	}
	// The status bar agrees with the page in the frame that handled Switch.
	if keysPanel.CurrentMode() != mode.Note {
		t.Errorf("status bar mode = %v, want Note", keysPanel.CurrentMode())
	}
	for _, want := range []string{"Notes", "Text", "Mode : Note"} {
		if !strings.Contains(out, want) {
			t.Errorf("frame missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Key Bindings") || strings.Contains(out, "Mode : Home") {
		t.Errorf("Home state drawn in Note mode:\n%s", out)
	}

	// The ModeChanged follow-up keeps it there.
	cycle(d, 240, 20)
	if keysPanel.CurrentMode() != mode.Note {
		t.Errorf("status bar mode after ModeChanged = %v, want Note", keysPanel.CurrentMode())
	}
}

func TestDispatcher_UpdateErrorQuarantines(t *testing.T) {
	setupTestLogger(t)
	notifier := installNotifier(t)

	broken := newRecorder("broken")
	broken.failOn = action.NextNote
	broken.updateErr = errors.New("kaput")
	healthy := newRecorder("healthy")

	d := NewDispatcher(config.StaticSource(config.Default()), fill("broken", broken), fill("healthy", healthy))
	if err := d.Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	defer d.Close()

	send(t, d, action.New(action.NextNote))
	out, running := cycle(d, 40, 10)
	if !running {
		t.Fatal("an update error must not stop the dispatcher")
	}
	if !d.Faulted("broken") {
		t.Fatal("broken panel not quarantined")
	}
	if d.Faulted("healthy") {
		t.Error("healthy panel quarantined")
	}
	if !strings.Contains(out, "broken unavailable") {
		t.Errorf("placeholder missing:\n%s", out)
	}
	if len(notifier.messages) != 1 || !strings.Contains(notifier.messages[0], "broken") {
		t.Errorf("notifications = %v, want one about broken", notifier.messages)
	}

	send(t, d, action.New(action.Tick))
	cycle(d, 40, 10)

	if got := broken.types(); !reflect.DeepEqual(got, []action.Type{action.NextNote}) {
		t.Errorf("quarantined panel saw %v after the fault", got)
	}
	want := []action.Type{action.NextNote, action.Error, action.Tick}
	if got := healthy.types(); !reflect.DeepEqual(got, want) {
		t.Errorf("healthy saw %v, want %v", got, want)
	}
	if msg := healthy.seen[1].Message; !strings.Contains(msg, "kaput") {
		t.Errorf("Error message = %q, want the cause", msg)
	}
}

func TestDispatcher_NotificationsCanBeDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications = false

	broken := newRecorder("broken")
	broken.failOn = action.Tick
	broken.updateErr = errors.New("kaput")

	setupTestLogger(t)
	notifier := installNotifier(t)
	d := NewDispatcher(config.StaticSource(cfg), fill("broken", broken))
	if err := d.Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	defer d.Close()

	send(t, d, action.New(action.Tick))
	cycle(d, 10, 10)
	if len(notifier.messages) != 0 {
		t.Errorf("notifications = %v, want none", notifier.messages)
	}
}

func TestDispatcher_NotificationFailureIsLogged(t *testing.T) {
	logPath := setupTestLogger(t)
	notifier := installNotifier(t)
	notifier.err = errors.New("no dbus")

	broken := newRecorder("broken")
	broken.failOn = action.Tick
	broken.updateErr = errors.New("kaput")

	d := NewDispatcher(config.StaticSource(config.Default()), fill("broken", broken))
	if err := d.Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	defer d.Close()

	send(t, d, action.New(action.Tick))
	if _, running := cycle(d, 40, 10); !running {
		t.Fatal("a failed notification must not stop the dispatcher")
	}

	content := readLog(t, logPath)
	if !strings.Contains(content, "desktop notification failed") || !strings.Contains(content, "no dbus") {
		t.Errorf("notification error not logged:\n%s", content)
	}
}

func TestDispatcher_DrawErrorIsLogged(t *testing.T) {
	logPath := setupTestLogger(t)
	installNotifier(t)
	logger.SetDebug(true)

	broken := newRecorder("broken")
	broken.drawErr = errors.New("no ink")
	d := NewDispatcher(config.StaticSource(config.Default()), fill("broken", broken))
	if err := d.Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	defer d.Close()

	cycle(d, 40, 10)

	content := readLog(t, logPath)
	if !strings.Contains(content, "app.Draw: broken failed to draw: no ink") {
		t.Errorf("draw error not logged with its kind:\n%s", content)
	}
}

func TestDispatcher_DrawErrorRendersPlaceholder(t *testing.T) {
	broken := newRecorder("broken")
	broken.drawErr = errors.New("no ink")
	healthy := newRecorder("healthy")
	d := testDispatcher(t, fill("broken", broken), fill("healthy", healthy))

	out, running := cycle(d, 40, 10)
	if !running {
		t.Fatal("a draw error must not stop the dispatcher")
	}
	if !strings.Contains(out, "broken unavailable") {
		t.Errorf("placeholder missing:\n%s", out)
	}
	if len(healthy.draws) != 1 {
		t.Errorf("healthy drawn %d times, want 1", len(healthy.draws))
	}
	if d.Faulted("broken") {
		t.Error("a draw error should not quarantine the panel")
	}

	// The panel is asked again next frame.
	cycle(d, 40, 10)
	if len(broken.draws) != 2 {
		t.Errorf("broken drawn %d times, want 2", len(broken.draws))
	}
}

func TestDispatcher_HiddenSlotKeepsUpdating(t *testing.T) {
	fps := newRecorder("fps")
	main := newRecorder("main")
	d := testDispatcher(t,
		fill("main", main),
		Slot{
			Name:      "fps",
			Component: fps,
			Size:      layout.Length(1),
			Visible:   func(cfg *config.Config) bool { return cfg.ShowFPS },
		},
	)

	send(t, d, action.New(action.Render))
	cycle(d, 10, 10)

	if len(fps.draws) != 0 {
		t.Error("hidden slot was drawn")
	}
	if got := fps.types(); !reflect.DeepEqual(got, []action.Type{action.Render}) {
		t.Errorf("hidden slot saw %v, want [Render]", got)
	}
	if got, want := main.draws[0], uv.Rect(0, 0, 10, 10); got != want {
		t.Errorf("main area = %v, want %v", got, want)
	}
}

func TestDispatcher_QuitFinishesFrame(t *testing.T) {
	r := newRecorder("r")
	d := testDispatcher(t, fill("r", r))

	send(t, d, action.New(action.Quit), action.New(action.Tick))
	if _, running := cycle(d, 10, 10); running {
		t.Fatal("Cycle() should report shutdown after Quit")
	}
	if d.State() != StateShutDown {
		t.Errorf("State() = %v, want ShutDown", d.State())
	}
	if len(r.draws) != 1 {
		t.Errorf("frame drawn %d times, want 1", len(r.draws))
	}
	if got := r.types(); !reflect.DeepEqual(got, []action.Type{action.Quit, action.Tick}) {
		t.Errorf("saw %v, want the whole snapshot", got)
	}

	if _, running := cycle(d, 10, 10); running {
		t.Error("Cycle() after shutdown should stay stopped")
	}
	if len(r.draws) != 1 {
		t.Error("no frame should be drawn after shutdown")
	}
}

func TestDispatcher_EndOfStreamShutsDown(t *testing.T) {
	r := newRecorder("r")
	d := testDispatcher(t, fill("r", r))

	tx := d.Sender()
	if err := tx.Send(action.New(action.NextNote)); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	tx.Close()
	d.Close()

	if _, running := cycle(d, 10, 10); running {
		t.Fatal("Cycle() should shut down once every sender is closed")
	}
	if got := r.types(); !reflect.DeepEqual(got, []action.Type{action.NextNote}) {
		t.Errorf("pending actions should be processed before shutdown, saw %v", got)
	}
	if d.State() != StateShutDown {
		t.Errorf("State() = %v, want ShutDown", d.State())
	}
}

func TestDispatcher_TerminalRequests(t *testing.T) {
	d := testDispatcher(t, fill("r", newRecorder("r")))

	send(t, d, action.New(action.Suspend), action.New(action.Tick), action.New(action.ClearScreen))
	cycle(d, 10, 10)

	var got []action.Type
	for _, a := range d.TakeRequests() {
		got = append(got, a.Type)
	}
	if want := []action.Type{action.Suspend, action.ClearScreen}; !reflect.DeepEqual(got, want) {
		t.Errorf("TakeRequests() = %v, want %v", got, want)
	}
	if again := d.TakeRequests(); len(again) != 0 {
		t.Errorf("second TakeRequests() = %v, want empty", again)
	}
}

func TestDispatcher_EmptyAreaFallsBackToResize(t *testing.T) {
	r := newRecorder("r")
	d := testDispatcher(t, fill("r", r))

	send(t, d, action.Resized(12, 4))
	scr := uv.NewScreenBuffer(12, 4)
	d.Cycle(scr, uv.Rectangle{})

	if len(r.draws) != 1 || r.draws[0] != uv.Rect(0, 0, 12, 4) {
		t.Errorf("draws = %v, want one at the resized area", r.draws)
	}
}

func TestDispatcher_ReloadConfig(t *testing.T) {
	setupTestLogger(t)
	installNotifier(t)

	path := filepath.Join(t.TempDir(), "config.json")
	cfg := config.Default()
	cfg.Notes = []string{"first"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	src, err := config.NewSource(path)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	r := newRecorder("r")
	d := NewDispatcher(src, fill("r", r))
	if err := d.Register(); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	defer d.Close()

	cfg.Notes = []string{"second"}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	send(t, d, action.New(action.ReloadConfig))
	cycle(d, 10, 10)

	if len(r.configs) != 2 {
		t.Fatalf("config registered %d times, want 2", len(r.configs))
	}
	if got := r.configs[1].Notes; !reflect.DeepEqual(got, []string{"second"}) {
		t.Errorf("re-registered notes = %v", got)
	}
	if d.Config() != r.configs[1] {
		t.Error("Config() should return the reloaded config")
	}

	cycle(d, 10, 10)
	last := r.seen[len(r.seen)-1]
	if last.Type != action.Status || last.Message != "config reloaded" {
		t.Errorf("last action = %v, want Status(config reloaded)", last)
	}

	// A broken file keeps the previous config.
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	send(t, d, action.New(action.ReloadConfig))
	cycle(d, 10, 10)
	cycle(d, 10, 10)

	if len(r.configs) != 2 {
		t.Errorf("config registered %d times after a failed reload, want 2", len(r.configs))
	}
	last = r.seen[len(r.seen)-1]
	if last.Type != action.Error || !strings.Contains(last.Message, "config reload failed") {
		t.Errorf("last action = %v, want an Error about the reload", last)
	}
	if got := d.Config().Notes; !reflect.DeepEqual(got, []string{"second"}) {
		t.Errorf("Config().Notes = %v after failed reload", got)
	}
}
