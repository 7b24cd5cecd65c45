package render

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine"
	"rotten-soup/pkg/api"
	"rotten-soup/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name   string
		key    tcell.Key
		r      rune
		want   domain.ActionType
		wantDx int
		wantDy int
		wantOK bool
	}{
		{"arrow left", tcell.KeyLeft, 0, domain.ActionMove, -1, 0, true},
		{"arrow down", tcell.KeyDown, 0, domain.ActionMove, 0, 1, true},
		{"vi diagonal", tcell.KeyRune, 'u', domain.ActionMove, 1, -1, true},
		{"wait", tcell.KeyRune, '.', domain.ActionWait, 0, 0, true},
		{"interact by enter", tcell.KeyEnter, 0, domain.ActionInteract, 0, 0, true},
		{"aim", tcell.KeyRune, 't', domain.ActionAim, 0, 0, true},
		{"cycle", tcell.KeyTab, 0, domain.ActionCycle, 0, 0, true},
		{"nearest", tcell.KeyRune, 'N', domain.ActionNearest, 0, 0, true},
		{"cancel", tcell.KeyEscape, 0, domain.ActionCancel, 0, 0, true},
		{"quit", tcell.KeyRune, 'q', domain.ActionQuit, 0, 0, true},
		{"unbound rune", tcell.KeyRune, 'z', domain.ActionUnknown, 0, 0, false},
		{"unbound key", tcell.KeyF5, 0, domain.ActionUnknown, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := KeyCommand(tt.key, tt.r)
			if ok != tt.wantOK {
				t.Fatalf("KeyCommand() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cmd.Action != tt.want {
				t.Errorf("action = %v, want %v", cmd.Action, tt.want)
			}
			if tt.want != domain.ActionMove {
				return
			}
			var p api.DirectionPayload
			if err := json.Unmarshal(cmd.Payload, &p); err != nil {
				t.Fatalf("payload: %v", err)
			}
			if p.Dx != tt.wantDx || p.Dy != tt.wantDy {
				t.Errorf("direction = (%d,%d), want (%d,%d)", p.Dx, p.Dy, tt.wantDx, tt.wantDy)
			}
		})
	}
}

func TestCellColor(t *testing.T) {
	tests := []struct {
		in   string
		want tcell.Color
	}{
		{"transparent", tcell.ColorBlack},
		{"black", tcell.ColorBlack},
		{"#FF8000", tcell.NewRGBColor(255, 128, 0)},
		{"rgba(250,250,0,0.2)", tcell.NewRGBColor(50, 50, 0)},
		{"rgba(1,2)", tcell.ColorBlack},
		{"hsl(0,0,0)", tcell.ColorBlack},
	}

	for _, tt := range tests {
		if got := CellColor(tt.in); got != tt.want {
			t.Errorf("CellColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGlyphColor(t *testing.T) {
	if got, want := GlyphColor(types.MakeGlyph(0x9E9E9E, '.')), tcell.NewRGBColor(0x9E, 0x9E, 0x9E); got != want {
		t.Errorf("GlyphColor() = %v, want %v", got, want)
	}
}

func TestStatusLine(t *testing.T) {
	st := engine.Status{Turn: 7, Level: "cave-2", Mode: domain.ModeTargeting, Message: "[You see a rat.]"}
	if got, want := StatusLine(st), "Turn 7 | cave-2 | TARGETING | [You see a rat.]"; got != want {
		t.Errorf("StatusLine() = %q, want %q", got, want)
	}

	st.Message = ""
	st.Mode = domain.ModeExplore
	if got, want := StatusLine(st), "Turn 7 | cave-2 | EXPLORE"; got != want {
		t.Errorf("StatusLine() = %q, want %q", got, want)
	}
}

func TestTerminal_OnLogKeepsTail(t *testing.T) {
	term := NewTerminal(nil)
	for _, text := range []string{"one", "two", "three", "four"} {
		term.OnLog(domain.LogEntry{Text: text})
	}
	if len(term.log) != logLines || term.log[0] != "two" || term.log[2] != "four" {
		t.Errorf("log tail = %v", term.log)
	}
}

func TestMouseCommand(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		buttons tcell.ButtonMask
		wantOK  bool
	}{
		{"left click on map", 3, 2, tcell.Button1, true},
		{"map corner", 19, 11, tcell.Button1, true},
		{"right click", 3, 2, tcell.Button2, false},
		{"move without buttons", 3, 2, tcell.ButtonNone, false},
		{"status line", 3, 12, tcell.Button1, false},
		{"right of map", 20, 0, tcell.Button1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok := MouseCommand(tt.x, tt.y, tt.buttons, 20, 12)
			if ok != tt.wantOK {
				t.Fatalf("MouseCommand() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if cmd.Action != domain.ActionSelectAt {
				t.Errorf("action = %v, want SELECT_AT", cmd.Action)
			}
			var p api.CellPayload
			if err := json.Unmarshal(cmd.Payload, &p); err != nil {
				t.Fatalf("payload: %v", err)
			}
			if p.Col != tt.x || p.Row != tt.y {
				t.Errorf("cell = (%d,%d), want (%d,%d)", p.Col, p.Row, tt.x, tt.y)
			}
		})
	}
}

// cellScreen запоминает, какая руна легла в какую колонку
type cellScreen struct {
	tcell.Screen
	cells map[[2]int]rune
}

func (s *cellScreen) SetContent(x, y int, r rune, _ []rune, _ tcell.Style) {
	s.cells[[2]int{x, y}] = r
}

func (s *cellScreen) Show() {}

func TestTerminal_FlushPlacesOneRunePerColumn(t *testing.T) {
	screen := &cellScreen{cells: make(map[[2]int]rune)}
	term := NewTerminal(screen)
	term.SetStatus(engine.Status{Height: 2})
	term.OnLog(domain.LogEntry{Text: "Ёж → ok"})

	if err := term.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	// Подвал журнала - сразу под строкой статуса
	row := 3
	want := []rune("Ёж → ok")
	for col, r := range want {
		if got := screen.cells[[2]int{col, row}]; got != r {
			t.Errorf("cell (%d,%d) = %q, want %q", col, row, got, r)
		}
	}
	if _, ok := screen.cells[[2]int{len(want), row}]; ok {
		t.Errorf("text spills past column %d", len(want)-1)
	}
}
