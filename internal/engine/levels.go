package engine

import (
	"errors"
	"fmt"

	"rotten-soup/internal/domain"
)

// ErrUnknownLevel - уровня с таким именем нет в реестре
var ErrUnknownLevel = errors.New("unknown level")

// LevelRegistry - все уровни сессии по имени. Ровно один уровень активен.
// Неактивные уровни хранят свой туман войны и флаг Revealed.
type LevelRegistry struct {
	levels map[string]*domain.Level
	order  []string
	active string
}

func NewLevelRegistry() *LevelRegistry {
	return &LevelRegistry{levels: make(map[string]*domain.Level)}
}

// Get ищет уровень по имени
func (r *LevelRegistry) Get(name string) (*domain.Level, bool) {
	lvl, ok := r.levels[name]
	return lvl, ok
}

// Add регистрирует уровень. Повторная регистрация имени - ошибка.
func (r *LevelRegistry) Add(lvl *domain.Level) error {
	if _, ok := r.levels[lvl.Name]; ok {
		return fmt.Errorf("level %q already registered", lvl.Name)
	}
	r.levels[lvl.Name] = lvl
	r.order = append(r.order, lvl.Name)
	return nil
}

// Activate делает уровень активным
func (r *LevelRegistry) Activate(name string) error {
	if _, ok := r.levels[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownLevel, name)
	}
	r.active = name
	return nil
}

// Active возвращает активный уровень или nil до первой активации
func (r *LevelRegistry) Active() *domain.Level {
	return r.levels[r.active]
}

// ActiveName - имя активного уровня
func (r *LevelRegistry) ActiveName() string {
	return r.active
}

// Levels возвращает уровни в порядке создания
func (r *LevelRegistry) Levels() []*domain.Level {
	out := make([]*domain.Level, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.levels[name])
	}
	return out
}
