package systems

import (
	"math"

	"github.com/sirupsen/logrus"

	"rotten-soup/internal/core/types/enums"
	"rotten-soup/internal/domain"
	"rotten-soup/pkg/logger"
)

// DefaultAggroRadius - радиус преследования, если в компоненте он не задан
const DefaultAggroRadius = 7

// NPCDecision - решение монстра на текущий ход
type NPCDecision struct {
	Action  domain.ActionType
	Dx, Dy  int
	Noticed bool // Монстр только что заметил игрока
}

// ComputeNPCAction решает, что делать монстру.
// Враждебный монстр идёт к игроку, если видит его в пределах радиуса,
// и стоит рядом, если уже дошёл. Иначе ждёт.
func ComputeNPCAction(npc, player *domain.Entity, lvl *domain.Level) NPCDecision {
	aiLogger := logger.Log.WithFields(logrus.Fields{
		"component": "ai_system",
		"npc":       npc.Name,
		"npc_id":    npc.ID,
	})

	wait := NPCDecision{Action: domain.ActionWait}

	if npc.AI == nil || !npc.AI.IsHostile || player == nil {
		return wait
	}

	aggro := npc.AI.AggroRadius
	if aggro <= 0 {
		aggro = DefaultAggroRadius
	}

	dist := npc.Pos.DistanceTo(player.Pos)
	if dist > float64(aggro) {
		aiLogger.WithField("distance", dist).Debug("Target out of aggro range. Action: WAIT")
		npc.AI.State = enums.AIStateIdle
		return wait
	}

	if !HasLineOfSight(lvl, npc.Pos, player.Pos) {
		aiLogger.Debug("Target not visible. Action: WAIT")
		npc.AI.State = enums.AIStateIdle
		return wait
	}

	decision := wait
	if npc.AI.State != enums.AIStateHunting {
		npc.AI.State = enums.AIStateHunting
		decision.Noticed = true
	}

	if npc.Pos.IsAdjacent(player.Pos) {
		aiLogger.Debug("Target adjacent. Action: WAIT")
		return decision
	}

	dx, dy := calculateSmartMove(npc, player, lvl)
	if dx == 0 && dy == 0 {
		aiLogger.Debug("Path is blocked. Action: WAIT")
		return decision
	}

	aiLogger.WithFields(logrus.Fields{"dx": dx, "dy": dy}).Debug("Path found. Action: MOVE")
	decision.Action = domain.ActionMove
	decision.Dx, decision.Dy = dx, dy
	return decision
}

func calculateSmartMove(npc, target *domain.Entity, lvl *domain.Level) (int, int) {
	dxRaw := target.Pos.X - npc.Pos.X
	dyRaw := target.Pos.Y - npc.Pos.Y

	stepX, stepY := npc.Pos.DirectionTo(target.Pos)

	// Попытка 1: Идеальный путь
	if CalculateMove(npc, stepX, stepY, lvl).HasMoved {
		return stepX, stepY
	}

	// Попытка 2: Smart Sliding (выбор приоритетной оси)
	tryXFirst := math.Abs(float64(dxRaw)) > math.Abs(float64(dyRaw))

	if tryXFirst {
		if stepX != 0 && checkMove(npc, stepX, 0, lvl) {
			return stepX, 0
		}
		if stepY != 0 && checkMove(npc, 0, stepY, lvl) {
			return 0, stepY
		}
	} else {
		if stepY != 0 && checkMove(npc, 0, stepY, lvl) {
			return 0, stepY
		}
		if stepX != 0 && checkMove(npc, stepX, 0, lvl) {
			return stepX, 0
		}
	}

	return 0, 0 // Тупик
}

func checkMove(e *domain.Entity, dx, dy int, lvl *domain.Level) bool {
	return CalculateMove(e, dx, dy, lvl).HasMoved
}
