package engine

import (
	"rotten-soup/internal/domain"
)

// LevelSummary - краткое описание уровня для отладочных эндпоинтов
type LevelSummary struct {
	Name     string `json:"name"`
	Style    string `json:"style"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Depth    int    `json:"depth"`
	Revealed bool   `json:"revealed"`
	Actors   int    `json:"actors"`
	Seen     int    `json:"seen"`
	Active   bool   `json:"active"`
}

// Summary - снимок сессии, безопасный для чтения из других горутин.
type Summary struct {
	Turn      int                      `json:"turn"`
	Active    string                   `json:"active"`
	Player    domain.Position          `json:"player"`
	Mode      string                   `json:"mode"`
	Levels    []LevelSummary           `json:"levels"`
	Queue     []map[string]interface{} `json:"queue"`
	LogLength int                      `json:"logLength"`
}

// Summary возвращает последний опубликованный снимок.
// HTTP-обработчики читают только его, а не живое состояние.
func (s *Session) Summary() Summary {
	if snap := s.summary.Load(); snap != nil {
		return *snap
	}
	return Summary{Levels: []LevelSummary{}, Queue: []map[string]interface{}{}}
}

// publishSummary пересобирает снимок. Вызывается из горутины планировщика.
func (s *Session) publishSummary() {
	snap := s.buildSummary()
	s.summary.Store(&snap)
}

func (s *Session) buildSummary() Summary {
	active := s.levels.ActiveName()

	levels := make([]LevelSummary, 0)
	for _, lvl := range s.levels.Levels() {
		style, _, _ := domain.StyleForLevel(lvl.Name)
		levels = append(levels, LevelSummary{
			Name:     lvl.Name,
			Style:    style.String(),
			Width:    lvl.Width,
			Height:   lvl.Height,
			Depth:    lvl.Depth,
			Revealed: lvl.Revealed,
			Actors:   len(lvl.Actors()),
			Seen:     lvl.SeenTiles().Size(),
			Active:   lvl.Name == active,
		})
	}

	snap := Summary{
		Turn:      s.turn,
		Active:    active,
		Levels:    levels,
		Queue:     s.scheduler.DebugDump(),
		LogLength: len(s.log.History()),
	}
	if s.player != nil {
		snap.Player = s.player.Pos
		if s.player.Player != nil {
			snap.Mode = s.player.Player.Mode.String()
		}
	}
	return snap
}
