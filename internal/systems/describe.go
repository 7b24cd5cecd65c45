package systems

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rotten-soup/internal/domain"
)

var lowerNames = cases.Lower(language.English)

// DescribeOccupants перечисляет обитателей клетки для строки осмотра:
// "nothing", "a goblin", "a goblin and a rat", "a goblin, a rat, and a bat".
// Игрок в перечисление не попадает, предметы называются по типу.
func DescribeOccupants(occupants []*domain.Entity) string {
	names := make([]string, 0, len(occupants))
	for _, e := range occupants {
		if e.IsPlayer() {
			continue
		}
		names = append(names, "a "+lowerNames.String(e.DisplayName()))
	}
	return joinNames(names)
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "nothing"
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}
