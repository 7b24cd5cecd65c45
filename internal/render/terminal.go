package render

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine"
	"rotten-soup/pkg/api"
	"rotten-soup/pkg/logger"
)

// Сколько последних записей журнала показывать под картой
const logLines = 3

// CommandSink принимает команды с клавиатуры
type CommandSink interface {
	Push(cmd domain.Command) bool
}

// Terminal рисует окно камеры в tcell-экран и читает клавиатуру и мышь.
// Реализует engine.RenderSink, engine.StatusConsumer и engine.LogConsumer.
type Terminal struct {
	screen tcell.Screen

	mu     sync.Mutex
	status engine.Status
	log    []string

	logger *logrus.Entry
}

// OpenTerminal захватывает текущий терминал
func OpenTerminal() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.EnableMouse()
	s.Clear()
	return NewTerminal(s), nil
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		logger: logger.Log.WithField("component", "terminal"),
	}
}

func (t *Terminal) Clear() {
	t.screen.Clear()
}

// Draw рисует верхний глиф стопки
func (t *Terminal) Draw(col, row int, glyphs []types.Glyph, fg, bg string) {
	top := types.Blank
	if len(glyphs) > 0 {
		top = glyphs[len(glyphs)-1]
	}

	style := tcell.StyleDefault.
		Foreground(GlyphColor(top)).
		Background(CellColor(bg))
	t.screen.SetContent(col, row, top.Rune(), nil, style)
}

func (t *Terminal) SetStatus(st engine.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = st
}

// OnLog запоминает последние записи журнала для подвала
func (t *Terminal) OnLog(entry domain.LogEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.log = append(t.log, entry.Text)
	if len(t.log) > logLines {
		t.log = t.log[len(t.log)-logLines:]
	}
}

// Flush дорисовывает строку статуса и журнал под картой и показывает кадр
func (t *Terminal) Flush() error {
	t.mu.Lock()
	st := t.status
	lines := append([]string(nil), t.log...)
	t.mu.Unlock()

	row := st.Height
	t.drawText(0, row, StatusLine(st), tcell.StyleDefault.Foreground(tcell.ColorYellow))
	for i, line := range lines {
		t.drawText(0, row+1+i, line, tcell.StyleDefault.Foreground(tcell.ColorSilver))
	}

	t.screen.Show()
	return nil
}

// drawText пишет строку по одной руне на колонку
func (t *Terminal) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		t.screen.SetContent(col, y, r, nil, style)
		col++
	}
}

// Close возвращает терминал в исходное состояние. После этого Listen завершится.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// Listen переводит нажатия клавиш в команды, пока экран не закрыт или ctx не отменён.
func (t *Terminal) Listen(ctx context.Context, input CommandSink) {
	for {
		if ctx.Err() != nil {
			return
		}

		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// Экран финализирован
			return
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			cmd, ok := KeyCommand(ev.Key(), ev.Rune())
			if !ok {
				continue
			}
			if !input.Push(cmd) {
				t.logger.WithField("action", cmd.Action).Debug("Input queue full, key dropped")
			}
		case *tcell.EventMouse:
			t.mu.Lock()
			w, h := t.status.Width, t.status.Height
			t.mu.Unlock()

			x, y := ev.Position()
			cmd, ok := MouseCommand(x, y, ev.Buttons(), w, h)
			if !ok {
				continue
			}
			if !input.Push(cmd) {
				t.logger.WithField("action", cmd.Action).Debug("Input queue full, click dropped")
			}
		}
	}
}

// MouseCommand переводит клик левой кнопкой по карте в SELECT_AT.
// Клики по строке статуса и журналу игнорируются.
func MouseCommand(x, y int, buttons tcell.ButtonMask, viewW, viewH int) (domain.Command, bool) {
	if buttons&tcell.Button1 == 0 {
		return domain.Command{}, false
	}
	if x < 0 || y < 0 || x >= viewW || y >= viewH {
		return domain.Command{}, false
	}
	return domain.NewCommand(domain.ActionSelectAt, api.CellPayload{Col: x, Row: y}), true
}

// Направления vi-клавиш и стрелок
var runeDirections = map[rune][2]int{
	'h': {-1, 0}, 'l': {1, 0}, 'k': {0, -1}, 'j': {0, 1},
	'y': {-1, -1}, 'u': {1, -1}, 'b': {-1, 1}, 'n': {1, 1},
}

var keyDirections = map[tcell.Key][2]int{
	tcell.KeyLeft:  {-1, 0},
	tcell.KeyRight: {1, 0},
	tcell.KeyUp:    {0, -1},
	tcell.KeyDown:  {0, 1},
}

var runeActions = map[rune]domain.ActionType{
	'.': domain.ActionWait,
	'e': domain.ActionInteract,
	't': domain.ActionAim,
	'c': domain.ActionCast,
	'N': domain.ActionNearest,
	'f': domain.ActionFire,
	'q': domain.ActionQuit,
}

// KeyCommand переводит клавишу в команду. Шаг в режиме прицеливания
// движок сам превращает в сдвиг прицела.
func KeyCommand(key tcell.Key, r rune) (domain.Command, bool) {
	if d, ok := keyDirections[key]; ok {
		return domain.NewCommand(domain.ActionMove, api.DirectionPayload{Dx: d[0], Dy: d[1]}), true
	}

	switch key {
	case tcell.KeyEnter:
		return domain.Command{Action: domain.ActionInteract}, true
	case tcell.KeyTab:
		return domain.Command{Action: domain.ActionCycle}, true
	case tcell.KeyEscape:
		return domain.Command{Action: domain.ActionCancel}, true
	case tcell.KeyCtrlC:
		return domain.Command{Action: domain.ActionQuit}, true
	case tcell.KeyRune:
	default:
		return domain.Command{}, false
	}

	if d, ok := runeDirections[r]; ok {
		return domain.NewCommand(domain.ActionMove, api.DirectionPayload{Dx: d[0], Dy: d[1]}), true
	}
	if action, ok := runeActions[r]; ok {
		return domain.Command{Action: action}, true
	}
	return domain.Command{}, false
}

// StatusLine - строка статуса под картой
func StatusLine(st engine.Status) string {
	parts := []string{
		fmt.Sprintf("Turn %d", st.Turn),
		st.Level,
		st.Mode.String(),
	}
	if st.Message != "" {
		parts = append(parts, st.Message)
	}
	return strings.Join(parts, " | ")
}

// GlyphColor - цвет символа для терминала
func GlyphColor(g types.Glyph) tcell.Color {
	c := g.Color()
	return tcell.NewRGBColor(int32(c>>16&0xFF), int32(c>>8&0xFF), int32(c&0xFF))
}

// CellColor переводит цвет подсветки клетки ("black", "#RRGGBB",
// "rgba(r,g,b,a)") в цвет терминала. Прозрачность смешивается с чёрным.
func CellColor(css string) tcell.Color {
	css = strings.TrimSpace(css)
	switch {
	case css == "" || css == "transparent" || css == "black":
		return tcell.ColorBlack
	case strings.HasPrefix(css, "#"):
		v, err := types.ParseHexColor(css)
		if err != nil {
			return tcell.ColorBlack
		}
		return tcell.NewRGBColor(int32(v>>16&0xFF), int32(v>>8&0xFF), int32(v&0xFF))
	case strings.HasPrefix(css, "rgba(") && strings.HasSuffix(css, ")"):
		fields := strings.Split(strings.TrimSuffix(strings.TrimPrefix(css, "rgba("), ")"), ",")
		if len(fields) != 4 {
			return tcell.ColorBlack
		}
		var rgb [3]float64
		for i := 0; i < 3; i++ {
			v, err := strconv.Atoi(strings.TrimSpace(fields[i]))
			if err != nil {
				return tcell.ColorBlack
			}
			rgb[i] = float64(v)
		}
		alpha, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			return tcell.ColorBlack
		}
		return tcell.NewRGBColor(int32(rgb[0]*alpha), int32(rgb[1]*alpha), int32(rgb[2]*alpha))
	}
	return tcell.ColorBlack
}
