package engine

import (
	"errors"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/core/types/enums"
	"rotten-soup/internal/domain"
	"rotten-soup/internal/systems"
)

// Цвета подсветки клетки
const (
	colorTransparent = "transparent"
	colorBlack       = "black"
	colorPath        = "rgba(250,250,0,0.2)"
)

// RenderSink принимает клетки окна камеры. Ядро только поставляет данные.
type RenderSink interface {
	Clear()
	Draw(col, row int, glyphs []types.Glyph, fg, bg string)
	Flush() error
}

// Status - сводка кадра для приёмников, которым нужно больше, чем клетки.
type Status struct {
	Turn     int
	Level    string
	Width    int
	Height   int
	Mode     domain.PlayerMode
	Selected *domain.Position // в координатах уровня
	Message  string
}

// StatusConsumer - необязательное расширение RenderSink
type StatusConsumer interface {
	SetStatus(st Status)
}

// MinimapCell - вид клетки на миникарте
type MinimapCell uint8

const (
	MinimapUnknown MinimapCell = iota
	MinimapSeen                // видена раньше, обычная яркость
	MinimapVisible             // видна сейчас, подсвечена
	MinimapFeature             // лестница или дверь
	MinimapPlayer
)

// Minimap - весь уровень по клеткам, строки подряд
type Minimap struct {
	Level  string
	Width  int
	Height int
	Cells  []MinimapCell
}

func (m Minimap) At(x, y int) MinimapCell {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return MinimapUnknown
	}
	return m.Cells[y*m.Width+x]
}

// MinimapConsumer - необязательное расширение RenderSink
type MinimapConsumer interface {
	SetMinimap(m Minimap)
}

// MultiSink рисует в несколько приёмников сразу (терминал + сеть).
type MultiSink []RenderSink

func (m MultiSink) Clear() {
	for _, s := range m {
		s.Clear()
	}
}

func (m MultiSink) Draw(col, row int, glyphs []types.Glyph, fg, bg string) {
	for _, s := range m {
		s.Draw(col, row, glyphs, fg, bg)
	}
}

func (m MultiSink) Flush() error {
	var errs []error
	for _, s := range m {
		if err := s.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) SetStatus(st Status) {
	for _, s := range m {
		if sc, ok := s.(StatusConsumer); ok {
			sc.SetStatus(st)
		}
	}
}

func (m MultiSink) SetMinimap(mm Minimap) {
	for _, s := range m {
		if mc, ok := s.(MinimapConsumer); ok {
			mc.SetMinimap(mm)
		}
	}
}

// OnLog пересылает запись журнала тем приёмникам, которые её принимают.
func (m MultiSink) OnLog(entry domain.LogEntry) {
	for _, s := range m {
		if lc, ok := s.(LogConsumer); ok {
			lc.OnLog(entry)
		}
	}
}

// drawViewport рисует окно камеры.
//   - уровень открыт или клетка видна: полная стопка глифов;
//   - клетка видена раньше: приглушённая подложка;
//   - иначе чёрная пустая клетка.
//
// Клетки линии прицела получают жёлтую подсветку.
func drawViewport(sink RenderSink, lvl *domain.Level, vp systems.Viewport, tg *systems.Targeting, animate bool) {
	sink.Clear()
	for row := 0; row < vp.Height; row++ {
		for col := 0; col < vp.Width; col++ {
			p := domain.Position{X: vp.X + col, Y: vp.Y + row}
			tile, err := lvl.TileAt(p.X, p.Y)
			if err != nil {
				continue
			}

			var glyphs []types.Glyph
			switch {
			case lvl.Revealed || lvl.IsVisible(p):
				glyphs = tile.Glyphs(animate, false)
			case lvl.IsSeen(p):
				glyphs = tile.Glyphs(animate, true)
			default:
				sink.Draw(col, row, []types.Glyph{types.Blank}, colorBlack, colorBlack)
				continue
			}

			fg, bg := colorTransparent, colorTransparent
			if tg != nil && tg.OnPath(p) {
				fg, bg = colorPath, colorPath
			}
			sink.Draw(col, row, glyphs, fg, bg)
		}
	}
}

// buildMinimap раскладывает уровень для миникарты. На открытом уровне
// известны все клетки, иначе только виденные. Лестницы и двери
// показываются, только если их клетку уже видели.
func buildMinimap(lvl *domain.Level, player *domain.Entity) Minimap {
	m := Minimap{
		Level:  lvl.Name,
		Width:  lvl.Width,
		Height: lvl.Height,
		Cells:  make([]MinimapCell, lvl.Width*lvl.Height),
	}

	known := func(p domain.Position) bool {
		return lvl.Revealed || lvl.IsSeen(p) || lvl.IsVisible(p)
	}

	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			p := domain.Position{X: x, Y: y}
			switch {
			case lvl.IsVisible(p):
				m.Cells[y*m.Width+x] = MinimapVisible
			case known(p):
				m.Cells[y*m.Width+x] = MinimapSeen
			}
		}
	}

	for _, e := range lvl.Actors() {
		if e.Kind != enums.EntityKindLadder && e.Kind != enums.EntityKindDoor {
			continue
		}
		if lvl.InBounds(e.Pos.X, e.Pos.Y) && known(e.Pos) {
			m.Cells[e.Pos.Y*m.Width+e.Pos.X] = MinimapFeature
		}
	}

	if player != nil && lvl.InBounds(player.Pos.X, player.Pos.Y) {
		m.Cells[player.Pos.Y*m.Width+player.Pos.X] = MinimapPlayer
	}
	return m
}
