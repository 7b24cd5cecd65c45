package domain

import "fmt"

// InvalidEntityError возвращается при создании сущности без идентификатора.
type InvalidEntityError struct {
	Name string
}

func (e *InvalidEntityError) Error() string {
	return fmt.Sprintf("invalid entity %q: missing id", e.Name)
}

// BoundsError возвращается при обращении к клетке за пределами сетки уровня.
// Камера и прицел обязаны ограничивать координаты сами, до индексации.
type BoundsError struct {
	Level  string
	Pos    Position
	Width  int
	Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("level %q: %s is out of bounds %dx%d", e.Level, e.Pos, e.Width, e.Height)
}
