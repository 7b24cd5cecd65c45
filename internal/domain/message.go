package domain

// LogCategory - категория сообщения журнала, определяет цвет строки
type LogCategory string

const (
	LogDefend      LogCategory = "defend"
	LogMagic       LogCategory = "magic"
	LogAttack      LogCategory = "attack"
	LogDeath       LogCategory = "death"
	LogInformation LogCategory = "information"
	LogPlayerMove  LogCategory = "player_move"
	LogLevelUp     LogCategory = "level_up"
	LogAlert       LogCategory = "alert"
)

var logCategoryColors = map[LogCategory]string{
	LogDefend:      "lightblue",
	LogMagic:       "#3C1CFD",
	LogAttack:      "red",
	LogDeath:       "crimson",
	LogInformation: "yellow",
	LogPlayerMove:  "grey",
	LogLevelUp:     "green",
	LogAlert:       "orange",
}

// Color возвращает цвет категории. Неизвестная категория сама считается цветом.
func (c LogCategory) Color() string {
	if color, ok := logCategoryColors[c]; ok {
		return color
	}
	return string(c)
}

// LogEntry - запись журнала сообщений
type LogEntry struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Category  LogCategory `json:"category"`
	Color     string      `json:"color"`
	Turn      int         `json:"turn"`
	Timestamp int64       `json:"timestamp"`
}
