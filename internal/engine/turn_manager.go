package engine

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rotten-soup/internal/engine/handlers"
	"rotten-soup/pkg/logger"
)

var (
	// ErrNoParticipants - планировщику некого вызывать. Это ошибка конфигурации.
	ErrNoParticipants = errors.New("turn scheduler has no participants")

	// ErrQuit - участник попросил остановить игру.
	ErrQuit = handlers.ErrQuit
)

// Participant - всё, что получает ход: экран, игрок, монстры.
type Participant interface {
	TakeTurn(ctx context.Context) error
}

// Named - участник с именем для отладки.
type Named interface {
	Name() string
}

type turnEntry struct {
	p         Participant
	repeating bool
}

// TurnScheduler - круговой планировщик ходов.
// Каждый цикл вызывает всех участников ровно один раз в порядке регистрации.
type TurnScheduler struct {
	entries []turnEntry

	// generation растёт при каждом Reset. Цикл, заметивший смену поколения, прерывается.
	generation uint64
	cycles     int

	tracer trace.Tracer
	logger *logrus.Entry
}

func NewTurnScheduler(tracer trace.Tracer) *TurnScheduler {
	return &TurnScheduler{
		tracer: tracer,
		logger: logger.Log.WithField("component", "turn_manager"),
	}
}

// Register добавляет участника в конец очереди.
// Неповторяющийся участник получает ровно один ход.
func (ts *TurnScheduler) Register(p Participant, repeating bool) {
	ts.entries = append(ts.entries, turnEntry{p: p, repeating: repeating})
	ts.logger.WithFields(logrus.Fields{
		"participant": participantName(p),
		"repeating":   repeating,
	}).Debug("Participant registered")
}

// Reset выбрасывает всех участников. Текущий цикл прерывается.
func (ts *TurnScheduler) Reset() {
	ts.entries = nil
	ts.generation++
	ts.logger.WithField("generation", ts.generation).Debug("Scheduler reset")
}

func (ts *TurnScheduler) Len() int {
	return len(ts.entries)
}

// Cycles - сколько полных циклов было выполнено
func (ts *TurnScheduler) Cycles() int {
	return ts.cycles
}

// Tick выполняет один цикл.
func (ts *TurnScheduler) Tick(ctx context.Context) error {
	if len(ts.entries) == 0 {
		return ErrNoParticipants
	}

	gen := ts.generation
	snapshot := slices.Clone(ts.entries)

	ctx, span := ts.tracer.Start(ctx, "scheduler.cycle")
	span.SetAttributes(
		attribute.Int("participants", len(snapshot)),
		attribute.Int("cycle", ts.cycles),
	)
	defer span.End()

	finished := make(map[int]bool)
	for i, entry := range snapshot {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := entry.p.TakeTurn(ctx); err != nil {
			span.RecordError(err)
			return err
		}

		if ts.generation != gen {
			// Участники сменились посреди цикла (переход между уровнями)
			span.SetAttributes(attribute.Bool("aborted", true))
			return nil
		}
		if !entry.repeating {
			finished[i] = true
		}
	}

	if len(finished) > 0 {
		kept := make([]turnEntry, 0, len(ts.entries))
		for i, entry := range ts.entries {
			if i < len(snapshot) && finished[i] {
				continue
			}
			kept = append(kept, entry)
		}
		ts.entries = kept
	}

	ts.cycles++
	return nil
}

// Start крутит циклы до отмены контекста или ErrQuit.
// Пустой планировщик - ошибка конфигурации, она возвращается сразу.
func (ts *TurnScheduler) Start(ctx context.Context) error {
	if len(ts.entries) == 0 {
		return ErrNoParticipants
	}

	ts.logger.WithField("participants", len(ts.entries)).Info("Turn loop started")

	for {
		err := ts.Tick(ctx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, ErrQuit):
			ts.logger.Info("Turn loop stopped by player")
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			ts.logger.Info("Turn loop stopped")
			return nil
		default:
			return fmt.Errorf("turn loop: %w", err)
		}
	}
}

// DebugDump возвращает снимок очереди для отладки
func (ts *TurnScheduler) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0, len(ts.entries))

	for i, entry := range ts.entries {
		result = append(result, map[string]interface{}{
			"index":     i,
			"name":      participantName(entry.p),
			"repeating": entry.repeating,
		})
	}
	return result
}

func participantName(p Participant) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", p)
}
