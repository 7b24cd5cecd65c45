package systems

import (
	"github.com/sirupsen/logrus"

	"rotten-soup/internal/domain"
	"rotten-soup/pkg/logger"
)

// HasLineOfSight проверяет прямую видимость между двумя точками по линии Брезенхэма.
// Стартовая и конечная клетки не проверяются: стоя у стены, её видно.
func HasLineOfSight(lvl *domain.Level, p1, p2 domain.Position) bool {
	losLogger := logger.Log.WithFields(logrus.Fields{
		"component": "physics_system",
		"function":  "HasLineOfSight",
		"start_pos": p1,
		"end_pos":   p2,
	})

	if p1 == p2 {
		return true
	}

	opaque := OpacityFor(lvl)
	line := Line(p1, p2)
	for _, p := range line[:len(line)-1] {
		if opaque(p.X, p.Y) {
			losLogger.WithField("blocking_point", p).Debug("Line is blocked. Result: false")
			return false
		}
	}

	losLogger.Debug("No obstructions found. Result: true")
	return true
}

// CanStandOn - можно ли встать на клетку: в границах и не непроходима.
func CanStandOn(lvl *domain.Level, p domain.Position) bool {
	tile, err := lvl.TileAt(p.X, p.Y)
	if err != nil {
		return false
	}
	return !tile.Blocked()
}
