package systems

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"

	"rotten-soup/internal/domain"
	"rotten-soup/pkg/logger"
)

// OpacityFunc сообщает, загораживает ли клетка (x, y) обзор.
type OpacityFunc func(x, y int) bool

// OpacityFor строит предикат прозрачности для уровня.
// Выход за границы считается непрозрачным и проверяется первым.
func OpacityFor(lvl *domain.Level) OpacityFunc {
	return func(x, y int) bool {
		if !lvl.InBounds(x, y) {
			return true
		}
		tile, _ := lvl.TileAt(x, y)
		return tile.Opaque()
	}
}

// fraction - точный наклон num/den, den > 0.
// Дроби вместо float, чтобы на диагоналях не появлялись дыры и асимметрия.
type fraction struct {
	num, den int
}

// quadrant - одна из четырёх сторон света вокруг наблюдателя.
type quadrant uint8

const (
	quadNorth quadrant = iota
	quadEast
	quadSouth
	quadWest
)

// transform переводит (глубина, колонка) квадранта в координаты уровня.
func (q quadrant) transform(origin domain.Position, depth, col int) (int, int) {
	switch q {
	case quadNorth:
		return origin.X + col, origin.Y - depth
	case quadSouth:
		return origin.X + col, origin.Y + depth
	case quadEast:
		return origin.X + depth, origin.Y + col
	default:
		return origin.X - depth, origin.Y + col
	}
}

// scanRow - ряд клеток на заданной глубине между двумя наклонами.
type scanRow struct {
	depth      int
	start, end fraction
}

// minCol = round_ties_up(depth * start)
func (r scanRow) minCol() int {
	return floorDiv(2*r.depth*r.start.num+r.start.den, 2*r.start.den)
}

// maxCol = round_ties_down(depth * end)
func (r scanRow) maxCol() int {
	return -floorDiv(-(2*r.depth*r.end.num - r.end.den), 2*r.end.den)
}

func (r scanRow) next() scanRow {
	return scanRow{depth: r.depth + 1, start: r.start, end: r.end}
}

// isSymmetric - центр клетки лежит внутри сектора ряда.
// Именно эта проверка делает обзор симметричным: A видит B тогда и только тогда, когда B видит A.
func (r scanRow) isSymmetric(col int) bool {
	return col*r.start.den >= r.depth*r.start.num &&
		col*r.end.den <= r.depth*r.end.num
}

func slopeOf(depth, col int) fraction {
	return fraction{num: 2*col - 1, den: 2 * depth}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// ComputeVisibleTiles возвращает множество клеток, видимых из origin в пределах radius.
// Симметричный shadowcasting по четырём квадрантам, стек вместо рекурсии.
// Стены, ограничивающие обзор, видны. Сама клетка наблюдателя видна всегда.
func ComputeVisibleTiles(origin domain.Position, radius int, isOpaque OpacityFunc) mapset.Set[domain.Position] {
	visible := mapset.New[domain.Position]()
	visible.Put(origin)

	if radius <= 0 {
		return visible
	}
	radiusSq := radius * radius

	for q := quadNorth; q <= quadWest; q++ {
		reveal := func(depth, col int) {
			if depth*depth+col*col > radiusSq {
				return
			}
			x, y := q.transform(origin, depth, col)
			visible.Put(domain.Position{X: x, Y: y})
		}
		isWall := func(depth, col int) bool {
			x, y := q.transform(origin, depth, col)
			return isOpaque(x, y)
		}

		rows := []scanRow{{depth: 1, start: fraction{-1, 1}, end: fraction{1, 1}}}
		for len(rows) > 0 {
			row := rows[len(rows)-1]
			rows = rows[:len(rows)-1]

			if row.depth > radius {
				continue
			}

			// Границы колонок считаются один раз: сдвиг start ниже влияет только на следующие ряды.
			lo, hi := row.minCol(), row.maxCol()
			hasPrev, prevWall := false, false

			for col := lo; col <= hi; col++ {
				wall := isWall(row.depth, col)
				if wall || row.isSymmetric(col) {
					reveal(row.depth, col)
				}
				if hasPrev && prevWall && !wall {
					row.start = slopeOf(row.depth, col)
				}
				if hasPrev && !prevWall && wall {
					next := row.next()
					next.end = slopeOf(row.depth, col)
					rows = append(rows, next)
				}
				hasPrev, prevWall = true, wall
			}

			if hasPrev && !prevWall {
				rows = append(rows, row.next())
			}
		}
	}

	return visible
}

// RefreshVisibility пересчитывает обзор и обновляет туман войны уровня.
// Возвращает количество видимых клеток.
func RefreshVisibility(lvl *domain.Level, origin domain.Position, radius int) int {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"level":        lvl.Name,
		"observer_pos": origin,
	})

	fovLogger.WithField("radius", radius).Debug("Starting FOV calculation.")
	if radius <= 0 {
		fovLogger.Warn("Blind observer (radius <= 0), only own tile is visible.")
	}

	next := ComputeVisibleTiles(origin, radius, OpacityFor(lvl))
	lvl.UpdateVisibility(next)

	count := lvl.VisibleTiles().Size()
	fovLogger.WithField("visible_tiles", count).Debug("FOV calculation complete.")
	return count
}
