package engine

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"rotten-soup/internal/core/types"
	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine/handlers"
	"rotten-soup/internal/engine/handlers/actions"
	"rotten-soup/internal/engine/handlers/events"
	"rotten-soup/internal/systems"
	"rotten-soup/internal/telemetry"
	"rotten-soup/pkg/logger"
)

// LevelGenerator строит сырые данные нового уровня.
type LevelGenerator interface {
	Generate(req domain.GenerateRequest) (*domain.LevelData, error)
}

// LootRoller выдаёт предметы для контейнеров добычи.
type LootRoller interface {
	Table(name string) (domain.LootTable, bool)
	Roll(min, max int, table domain.LootTable, x, y int) []*domain.Entity
}

// Deps - внешние соавторы сессии.
type Deps struct {
	Generator LevelGenerator
	Loot      LootRoller
	IDs       *types.IDAllocator // Общий с генератором и таблицей добычи
	Sink      RenderSink
	Input     InputSource
	Tracer    trace.Tracer
}

// Session - весь мир одной игры: реестр уровней, игрок, планировщик,
// прицел и журнал. Жизненный цикл: NewSession -> Init -> Run/Tick -> Close.
// Всё состояние меняется только из горутины, которая крутит Run.
type Session struct {
	cfg  Config
	deps Deps

	levels    *LevelRegistry
	player    *domain.Entity
	scheduler *TurnScheduler
	targeting *systems.Targeting
	log       *MessageLog

	// Окно камеры: min(уровень, экран) по каждой оси
	viewW, viewH int
	turn         int

	handlers map[domain.ActionType]handlers.HandlerFunc
	events   map[domain.EventType]handlers.HandlerFunc

	summary atomic.Pointer[Summary]

	tracer trace.Tracer
	logger *logrus.Entry
}

// NewSession собирает сессию. Уровни ещё не созданы: это делает Init.
func NewSession(cfg Config, deps Deps) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if deps.Generator == nil {
		return nil, errors.New("level generator is required")
	}
	if deps.Input == nil {
		return nil, errors.New("input source is required")
	}
	if deps.IDs == nil {
		deps.IDs = types.NewIDAllocator(uint16(cfg.Seed))
	}
	if deps.Sink == nil {
		deps.Sink = MultiSink{}
	}
	if deps.Tracer == nil {
		deps.Tracer = telemetry.Tracer("engine")
	}

	s := &Session{
		cfg:       cfg,
		deps:      deps,
		levels:    NewLevelRegistry(),
		scheduler: NewTurnScheduler(deps.Tracer),
		handlers:  make(map[domain.ActionType]handlers.HandlerFunc),
		events:    make(map[domain.EventType]handlers.HandlerFunc),
		tracer:    deps.Tracer,
		logger:    logger.Log.WithField("component", "session"),
	}
	s.log = NewMessageLog(func() int { return s.turn })
	s.targeting = systems.NewTargeting(s, s.log)

	if lc, ok := deps.Sink.(LogConsumer); ok {
		s.log.Subscribe(lc)
	}

	s.registerHandlers()
	return s, nil
}

func (s *Session) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	s.handlers[domain.ActionInteract] = handlers.WithEmptyPayload(actions.HandleInteract)
	s.handlers[domain.ActionAim] = handlers.WithEmptyPayload(actions.HandleAim)
	s.handlers[domain.ActionCast] = handlers.WithEmptyPayload(actions.HandleCast)
	s.handlers[domain.ActionSelect] = handlers.RequireAiming(handlers.WithPayload(actions.HandleSelect))
	s.handlers[domain.ActionSelectAt] = handlers.RequireAiming(handlers.WithPayload(actions.HandleSelectAt))
	s.handlers[domain.ActionNearest] = handlers.RequireAiming(handlers.WithEmptyPayload(actions.HandleNearest))
	s.handlers[domain.ActionCycle] = handlers.RequireAiming(handlers.WithEmptyPayload(actions.HandleCycle))
	s.handlers[domain.ActionFire] = handlers.RequireAiming(handlers.WithEmptyPayload(actions.HandleFire))
	s.handlers[domain.ActionCancel] = handlers.WithEmptyPayload(actions.HandleCancel)
	s.handlers[domain.ActionQuit] = handlers.WithEmptyPayload(actions.HandleQuit)

	s.events[domain.EventLevelTransition] = events.HandleLevelTransition
}

// Init создает стартовый уровень и игрока и строит первое расписание.
func (s *Session) Init(ctx context.Context) error {
	if s.player != nil {
		return errors.New("session already initialised")
	}

	lvl, err := s.ensureLevel(s.cfg.StartLevel, domain.Arrival{})
	if err != nil {
		return fmt.Errorf("start level %s: %w", s.cfg.StartLevel, err)
	}
	lvl.Revealed = s.cfg.StartRevealed

	player, err := newPlayer(s.deps.IDs, lvl.PlayerArrival, s.cfg.VisionRadius)
	if err != nil {
		return err
	}
	s.player = player

	if err := s.activate(lvl); err != nil {
		return err
	}

	if _, err := s.execute(ctx, s.player, domain.Command{Action: domain.ActionInit}); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"seed":  s.cfg.Seed,
		"level": lvl.Name,
	}).Info("Session initialised")
	return nil
}

// Run крутит планировщик до выхода игрока или отмены ctx.
func (s *Session) Run(ctx context.Context) error {
	if s.player == nil {
		return errors.New("session is not initialised")
	}
	return s.scheduler.Start(ctx)
}

// Tick выполняет один цикл планировщика.
func (s *Session) Tick(ctx context.Context) error {
	return s.scheduler.Tick(ctx)
}

// Close освобождает источник ввода.
func (s *Session) Close() error {
	s.publishSummary()
	if c, ok := s.deps.Input.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close input: %w", err)
		}
	}
	s.logger.Info("Session closed")
	return nil
}

// --- Доступ к состоянию ---

// ActiveLevel возвращает активный уровень
func (s *Session) ActiveLevel() *domain.Level { return s.levels.Active() }

// Player возвращает сущность игрока
func (s *Session) Player() *domain.Entity { return s.player }

// DisplaySize - размер экрана из конфига
func (s *Session) DisplaySize() (int, int) { return s.cfg.DisplayWidth, s.cfg.DisplayHeight }

// Viewport - текущий размер окна камеры
func (s *Session) Viewport() (int, int) { return s.viewW, s.viewH }

func (s *Session) Targeting() *systems.Targeting { return s.targeting }
func (s *Session) Log() *MessageLog              { return s.log }
func (s *Session) Levels() *LevelRegistry        { return s.levels }
func (s *Session) Scheduler() *TurnScheduler     { return s.scheduler }
func (s *Session) Turn() int                     { return s.turn }

// Animate - флаг чётности хода для двухкадровой анимации
func (s *Session) Animate() bool { return s.turn%2 == 0 }

// --- Выполнение команд ---

func (s *Session) handlerContext(ctx context.Context, actor *domain.Entity) handlers.Context {
	return handlers.Context{
		Ctx:       ctx,
		Level:     s.levels.Active(),
		Actor:     actor,
		Targeting: s.targeting,
		Viewport:  s.Camera(),
		Switcher:  s,
	}
}

// Camera - окно камеры вокруг игрока на активном уровне
func (s *Session) Camera() systems.Viewport {
	lvl := s.levels.Active()
	if lvl == nil || s.player == nil {
		return systems.Viewport{}
	}
	return systems.CameraWindow(lvl.Width, lvl.Height, s.viewW, s.viewH, s.player.Pos)
}

// execute выполняет команду от имени actor
func (s *Session) execute(ctx context.Context, actor *domain.Entity, cmd domain.Command) (handlers.Result, error) {
	handler, ok := s.handlers[cmd.Action]
	if !ok {
		s.logger.WithField("action", cmd.Action).Warn("No handler for action")
		return handlers.EmptyResult(), nil
	}

	result, err := handler(s.handlerContext(ctx, actor), cmd.Payload)
	if err != nil {
		return result, err
	}

	if result.Msg != "" {
		s.log.Log(result.Msg, result.Category)
	}

	if result.Event != nil {
		if err := s.processEvent(ctx, actor, result.Event); err != nil {
			return result, err
		}
	}
	return result, nil
}

// levelSeed - зерно уровня: мастер-зерно, смешанное с хешем имени
func levelSeed(master int64, name string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return master ^ int64(h.Sum64())
}
