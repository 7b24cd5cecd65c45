package engine

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"rotten-soup/internal/systems"
)

// displayParticipant открывает каждый цикл: счётчик хода и кадр.
type displayParticipant struct {
	s *Session
}

func (d *displayParticipant) Name() string { return "display" }

func (d *displayParticipant) TakeTurn(ctx context.Context) error {
	d.s.turn++
	return d.s.render(ctx)
}

// playerParticipant читает команды, пока одна из них не потратит ход.
type playerParticipant struct {
	s *Session
}

func (p *playerParticipant) Name() string { return "player" }

func (p *playerParticipant) TakeTurn(ctx context.Context) error {
	s := p.s
	for {
		cmd, err := s.deps.Input.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrInputClosed) {
				return ErrQuit
			}
			return err
		}

		result, err := s.execute(ctx, s.player, cmd)
		if err != nil {
			if errors.Is(err, ErrQuit) {
				return err
			}
			// Плохая команда не роняет игру
			s.logger.WithError(err).WithField("action", cmd.Action).Warn("Command failed")
		}

		if result.EndsTurn {
			return nil
		}

		// Ход не потрачен (прицел, сообщение): перерисовываем и ждём дальше
		if err := s.render(ctx); err != nil {
			return err
		}
	}
}

// render рисует окно камеры вокруг игрока.
func (s *Session) render(ctx context.Context) error {
	lvl := s.levels.Active()
	if lvl == nil || s.player == nil {
		return nil
	}

	_, span := s.tracer.Start(ctx, "fov.refresh")
	radius := s.cfg.VisionRadius
	if s.player.Vision != nil {
		radius = s.player.Vision.Radius
	}
	visible := systems.RefreshVisibility(lvl, s.player.Pos, radius)
	span.SetAttributes(
		attribute.String("level", lvl.Name),
		attribute.Int("visible", visible),
	)
	span.End()

	aiming := s.player.Player != nil && s.player.Player.Aiming()
	if aiming {
		// Путь зависит от позиции игрока и обзора, строим его заново
		s.targeting.Redraw(true)
	}

	vp := s.Camera()
	drawViewport(s.deps.Sink, lvl, vp, s.targeting, s.Animate())

	if sc, ok := s.deps.Sink.(StatusConsumer); ok {
		st := Status{
			Turn:    s.turn,
			Level:   lvl.Name,
			Width:   vp.Width,
			Height:  vp.Height,
			Message: s.log.Temp(),
		}
		if s.player.Player != nil {
			st.Mode = s.player.Player.Mode
		}
		if pos, ok := s.targeting.Selected(); ok && aiming {
			st.Selected = &pos
		}
		sc.SetStatus(st)
	}

	if mc, ok := s.deps.Sink.(MinimapConsumer); ok {
		mc.SetMinimap(buildMinimap(lvl, s.player))
	}

	if err := s.deps.Sink.Flush(); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"turn":  s.turn,
			"level": lvl.Name,
		}).Warn("Frame flush failed")
	}

	s.publishSummary()
	return nil
}
