package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"rotten-soup/internal/domain"
)

// Transition делает уровень target активным.
// Неизвестный уровень генерируется, его контейнеры наполняются добычей.
// Переход на уже активный уровень ничего не делает.
func (s *Session) Transition(ctx context.Context, target string, arrival domain.Arrival) error {
	old := s.levels.Active()
	if old != nil && old.Name == target {
		s.logger.WithField("level", target).Debug("Transition to active level ignored")
		return nil
	}

	_, span := s.tracer.Start(ctx, "level.transition")
	span.SetAttributes(
		attribute.String("from", arrival.Source),
		attribute.String("to", target),
		attribute.String("direction", arrival.Direction),
	)
	defer span.End()

	lvl, err := s.ensureLevel(target, arrival)
	if err != nil {
		span.RecordError(err)
		return err
	}

	// Прицел живёт на старом уровне: снимаем его до ухода
	s.targeting.Clear()
	if s.player.Player != nil {
		s.player.Player.Mode = domain.ModeExplore
	}

	if old != nil {
		// Сначала запоминаем позицию, потом снимаем игрока с клетки
		old.PlayerArrival = s.player.Pos
		old.RemoveActor(s.player)
	}

	if err := s.activate(lvl); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"component": "level_transition",
		"to":        target,
		"direction": arrival.Direction,
		"arrival":   lvl.PlayerArrival,
	}).Info("Level changed")
	return nil
}

// ensureLevel возвращает уровень из реестра или генерирует новый.
func (s *Session) ensureLevel(name string, arrival domain.Arrival) (*domain.Level, error) {
	if lvl, ok := s.levels.Get(name); ok {
		return lvl, nil
	}

	style, w, h := domain.StyleForLevel(name)
	depth := 0
	if src, ok := s.levels.Get(arrival.Source); ok {
		depth = src.Depth + 1
	}

	req := domain.GenerateRequest{
		Name:      name,
		Style:     style,
		Width:     w,
		Height:    h,
		Depth:     depth,
		Direction: arrival.Direction,
		Source:    arrival.Source,
		Seed:      levelSeed(s.cfg.Seed, name),
	}
	data, err := s.deps.Generator.Generate(req)
	if err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}

	lvl, err := data.Materialize(name, depth)
	if err != nil {
		return nil, fmt.Errorf("materialize %s: %w", name, err)
	}
	lvl.Revealed = false

	s.fillContainers(lvl)

	if err := s.levels.Add(lvl); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"component": "level_transition",
		"level":     name,
		"style":     style,
		"size":      fmt.Sprintf("%dx%d", w, h),
		"actors":    len(lvl.Actors()),
	}).Info("Level generated")
	return lvl, nil
}

// fillContainers наполняет сундуки уровня по их таблицам добычи.
func (s *Session) fillContainers(lvl *domain.Level) {
	if s.deps.Loot == nil {
		return
	}
	for _, e := range lvl.Actors() {
		if e.Container == nil {
			continue
		}
		table, ok := s.deps.Loot.Table(e.Container.Table)
		if !ok {
			s.logger.WithFields(logrus.Fields{
				"container": e.Name,
				"table":     e.Container.Table,
			}).Warn("Unknown loot table, container left empty")
			continue
		}
		items := s.deps.Loot.Roll(e.Container.MinItems, e.Container.MaxItems, table, e.Pos.X, e.Pos.Y)
		if e.Inventory == nil {
			e.Inventory = &domain.InventoryComponent{}
		}
		e.Inventory.Add(items...)
	}
}

// activate ставит игрока на уровень и перестраивает расписание.
func (s *Session) activate(lvl *domain.Level) error {
	if err := s.levels.Activate(lvl.Name); err != nil {
		return err
	}

	s.player.Pos = lvl.PlayerArrival
	if err := lvl.AddActor(s.player); err != nil {
		return fmt.Errorf("place player on %s: %w", lvl.Name, err)
	}

	s.viewW = min(lvl.Width, s.cfg.DisplayWidth)
	s.viewH = min(lvl.Height, s.cfg.DisplayHeight)

	s.schedule(lvl)
	s.publishSummary()
	return nil
}

// schedule регистрирует участников заново: экран, игрок, затем монстры
// в порядке добавления на уровень.
func (s *Session) schedule(lvl *domain.Level) {
	s.scheduler.Reset()
	s.scheduler.Register(&displayParticipant{s: s}, true)
	s.scheduler.Register(&playerParticipant{s: s}, true)
	for _, e := range lvl.Actors() {
		if e.ID == s.player.ID || !e.Schedulable {
			continue
		}
		s.scheduler.Register(&monsterParticipant{s: s, e: e}, true)
	}
}
