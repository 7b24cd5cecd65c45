package engine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"rotten-soup/internal/domain"
	"rotten-soup/internal/systems"
	"rotten-soup/pkg/api"
)

// monsterParticipant - ход одного монстра активного уровня.
type monsterParticipant struct {
	s *Session
	e *domain.Entity
}

func (m *monsterParticipant) Name() string {
	return fmt.Sprintf("monster:%s", m.e.Name)
}

// TakeTurn обрабатывает логику NPC
func (m *monsterParticipant) TakeTurn(ctx context.Context) error {
	s := m.s
	lvl := s.levels.Active()

	// Монстр мог исчезнуть с уровня между регистрацией и ходом
	if lvl == nil || lvl.Actor(m.e.ID) == nil {
		return nil
	}

	decision := systems.ComputeNPCAction(m.e, s.player, lvl)

	if decision.Noticed {
		s.log.Log(fmt.Sprintf("The %s notices you!", m.e.DisplayName()), domain.LogAlert)
	}

	switch decision.Action {
	case domain.ActionMove:
		cmd := domain.NewCommand(domain.ActionMove, api.DirectionPayload{Dx: decision.Dx, Dy: decision.Dy})
		if _, err := s.execute(ctx, m.e, cmd); err != nil {
			s.logger.WithError(err).WithFields(logrus.Fields{
				"npc": m.e.Name,
				"dx":  decision.Dx,
				"dy":  decision.Dy,
			}).Warn("NPC move failed")
		}
	default:
		// Wait
	}
	return nil
}
