package network

import (
	"encoding/json"
	"fmt"
	"sync"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine"
	"rotten-soup/pkg/api"
)

// FrameSink собирает кадр окна камеры и рассылает его как api.FrameMessage.
// Реализует engine.RenderSink, engine.StatusConsumer, engine.MinimapConsumer
// и engine.LogConsumer.
type FrameSink struct {
	hub *Broadcaster

	mu      sync.Mutex
	cells   []api.CellView
	status  engine.Status
	minimap *api.MinimapView
	last    []byte // последний кадр для новых подписчиков
}

func NewFrameSink(hub *Broadcaster) *FrameSink {
	return &FrameSink{hub: hub}
}

func (f *FrameSink) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cells = f.cells[:0]
}

func (f *FrameSink) Draw(col, row int, glyphs []types.Glyph, fg, bg string) {
	views := make([]api.GlyphView, 0, len(glyphs))
	for _, g := range glyphs {
		views = append(views, GlyphView(g))
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.cells = append(f.cells, api.CellView{Col: col, Row: row, Glyphs: views, Fg: fg, Bg: bg})
}

func (f *FrameSink) SetStatus(st engine.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = st
}

func (f *FrameSink) SetMinimap(m engine.Minimap) {
	view := MinimapView(m)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.minimap = &view
}

// Flush кодирует кадр и рассылает его
func (f *FrameSink) Flush() error {
	f.mu.Lock()
	msg := api.FrameMessage{
		Type:    api.MessageFrame,
		Turn:    f.status.Turn,
		Level:   f.status.Level,
		Grid:    api.GridMeta{Width: f.status.Width, Height: f.status.Height},
		Cells:   append([]api.CellView(nil), f.cells...),
		Mode:    f.status.Mode.String(),
		Message: f.status.Message,
		Minimap: f.minimap,
	}
	if f.status.Selected != nil {
		msg.Selected = &api.PositionPayload{X: f.status.Selected.X, Y: f.status.Selected.Y}
	}
	f.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	f.mu.Lock()
	f.last = data
	f.mu.Unlock()

	f.hub.Broadcast(data)
	return nil
}

// OnLog рассылает новую запись журнала
func (f *FrameSink) OnLog(entry domain.LogEntry) {
	data, err := json.Marshal(api.LogMessage{Type: api.MessageLog, Entry: LogEntryView(entry)})
	if err != nil {
		return
	}
	f.hub.Broadcast(data)
}

// LastFrame - последний отправленный кадр или nil
func (f *FrameSink) LastFrame() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

// GlyphView конвертирует глиф в DTO
func GlyphView(g types.Glyph) api.GlyphView {
	return api.GlyphView{Symbol: string(g.Rune()), Color: g.HexColor()}
}

var minimapSymbols = map[engine.MinimapCell]byte{
	engine.MinimapUnknown: ' ',
	engine.MinimapSeen:    '.',
	engine.MinimapVisible: '+',
	engine.MinimapFeature: '>',
	engine.MinimapPlayer:  '@',
}

// MinimapView кодирует миникарту строками
func MinimapView(m engine.Minimap) api.MinimapView {
	rows := make([]string, m.Height)
	line := make([]byte, m.Width)
	for y := range m.Height {
		for x := range m.Width {
			line[x] = minimapSymbols[m.At(x, y)]
		}
		rows[y] = string(line)
	}
	return api.MinimapView{Width: m.Width, Height: m.Height, Rows: rows}
}

// LogEntryView конвертирует запись журнала в DTO
func LogEntryView(e domain.LogEntry) api.LogEntry {
	return api.LogEntry{
		ID:        e.ID,
		Text:      e.Text,
		Category:  string(e.Category),
		Color:     e.Color,
		Turn:      e.Turn,
		Timestamp: e.Timestamp,
	}
}
