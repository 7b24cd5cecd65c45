package systems

import (
	"rotten-soup/internal/domain"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	NewX, NewY int
	HasMoved   bool
	BlockedBy  *domain.Entity // Если врезались в кого-то
	IsWall     bool           // Если врезались в стену
}

// CalculateMove вычисляет новую позицию. Не меняет состояние уровня!
func CalculateMove(e *domain.Entity, dx, dy int, lvl *domain.Level) MovementResult {
	targetPos := e.Pos.Shift(dx, dy)

	res := MovementResult{NewX: targetPos.X, NewY: targetPos.Y}

	// 1. Границы и стены
	if !CanStandOn(lvl, targetPos) {
		res.IsWall = true
		return res
	}

	// 2. Сущности.
	// Блокируют только те, у кого есть AI или кто управляется игроком.
	// Предметы, сундуки и лестницы проходимы.
	for _, other := range lvl.ActorsAt(targetPos.X, targetPos.Y) {
		if other.ID == e.ID {
			continue
		}
		if other.AI != nil || other.IsPlayer() {
			res.BlockedBy = other
			return res
		}
	}

	res.HasMoved = true
	return res
}

// ApplyMove вычисляет и сразу применяет шаг. Возвращает результат вычисления.
func ApplyMove(e *domain.Entity, dx, dy int, lvl *domain.Level) (MovementResult, error) {
	res := CalculateMove(e, dx, dy, lvl)
	if !res.HasMoved {
		return res, nil
	}
	if err := lvl.MoveActor(e, domain.Position{X: res.NewX, Y: res.NewY}); err != nil {
		return MovementResult{}, err
	}
	return res, nil
}
