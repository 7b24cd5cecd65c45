package systems

import "rotten-soup/internal/domain"

// Line возвращает 8-связную линию Брезенхэма от from до to.
// Начальная точка в результат не входит, конечная входит.
// Для from == to результат пуст.
func Line(from, to domain.Position) []domain.Position {
	dx := to.X - from.X
	if dx < 0 {
		dx = -dx
	}
	dy := to.Y - from.Y
	if dy < 0 {
		dy = -dy
	}
	sx, sy := from.DirectionTo(to)

	// Удвоенная ошибка, только целочисленная арифметика
	err := -dy
	if dx > dy {
		err = dx
	}

	points := make([]domain.Position, 0, max(dx, dy))
	x, y := from.X, from.Y
	for x != to.X || y != to.Y {
		e2 := err
		if e2 > -2*dx {
			err -= 2 * dy
			x += sx
		}
		if e2 < 2*dy {
			err += 2 * dx
			y += sy
		}
		points = append(points, domain.Position{X: x, Y: y})
	}
	return points
}
