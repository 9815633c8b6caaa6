package mode

import "testing"

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode     Mode
		expected string
	}{
		{Home, "Home"},
		{Note, "Note"},
		{Mode(-1), "Unknown"},
		{Mode(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.expected {
				t.Errorf("Mode.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMode_Next(t *testing.T) {
	if got := Home.Next(); got != Note {
		t.Errorf("Home.Next() = %v, want Note", got)
	}
	if got := Note.Next(); got != Home {
		t.Errorf("Note.Next() = %v, want Home (wrap)", got)
	}
	if got := Mode(42).Next(); got != Home {
		t.Errorf("invalid Next() = %v, want Home", got)
	}
}

func TestMode_CyclicClosure(t *testing.T) {
	for _, start := range All() {
		t.Run(start.String(), func(t *testing.T) {
			s := NewState(start)
			for i := 0; i < len(All()); i++ {
				s.Switch()
			}
			if got := s.Current(); got != start {
				t.Errorf("after %d switches Current() = %v, want %v", len(All()), got, start)
			}
		})
	}
}

func TestMode_CycleVisitsEveryMode(t *testing.T) {
	seen := make(map[Mode]bool)
	m := Home
	for i := 0; i < len(All()); i++ {
		seen[m] = true
		m = m.Next()
	}
	for _, want := range All() {
		if !seen[want] {
			t.Errorf("cycle never visited %v", want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"Home", Home, false},
		{"note", Note, false},
		{" NOTE ", Note, false},
		{"Zen", Home, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestState_SwitchReturnsNewValue(t *testing.T) {
	s := NewState(Home)

	if got := s.Switch(); got != Note {
		t.Errorf("Switch() = %v, want Note", got)
	}
	if got := s.Current(); got != Note {
		t.Errorf("Current() = %v, want Note", got)
	}
}

func TestNewState_InvalidStartsAtHome(t *testing.T) {
	if got := NewState(Mode(7)).Current(); got != Home {
		t.Errorf("NewState(invalid).Current() = %v, want Home", got)
	}
}
