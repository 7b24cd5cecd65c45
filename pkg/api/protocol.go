package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений сервера
const (
	MessageFrame = "FRAME"
	MessageLog   = "LOG"
)

// FrameMessage это полный кадр окна камеры. Отправляется после каждой
// перерисовки: клиент просто заменяет экран целиком.
type FrameMessage struct {
	// Type тип сообщения, всегда "FRAME".
	Type string `json:"type"`

	// Turn номер хода. Чётность выбирает кадр анимации.
	Turn int `json:"turn"`

	// Level имя активного уровня.
	Level string `json:"level"`

	// Grid размер окна камеры в клетках.
	Grid GridMeta `json:"grid"`

	// Cells клетки окна построчно.
	Cells []CellView `json:"cells"`

	// Mode режим ввода игрока: EXPLORE, TARGETING, CASTING.
	Mode string `json:"mode"`

	// Selected выбранная прицелом клетка в координатах уровня.
	Selected *PositionPayload `json:"selected,omitempty"`

	// Message временное сообщение (описание выбранной клетки).
	Message string `json:"message,omitempty"`

	// Minimap весь уровень целиком, если движок его прислал.
	Minimap *MinimapView `json:"minimap,omitempty"`
}

// MinimapView - миникарта уровня построчно, по символу на клетку:
// ' ' неизвестно, '.' видено раньше, '+' видно сейчас, '>' лестница или дверь, '@' игрок.
type MinimapView struct {
	Width  int      `json:"w"`
	Height int      `json:"h"`
	Rows   []string `json:"rows"`
}

// GridMeta содержит размеры сетки, чтобы клиент знал,
// какую сетку для рендеринга нужно подготовить.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// CellView это DTO для одной клетки окна.
type CellView struct {
	Col int `json:"col"`
	Row int `json:"row"`

	// Glyphs стопка символов снизу вверх: подложка, обитатели, рамка прицела.
	Glyphs []GlyphView `json:"glyphs"`

	// Fg и Bg - цвета подсветки клетки ("transparent", "black", rgba(...)).
	Fg string `json:"fg"`
	Bg string `json:"bg"`
}

// GlyphView - символ и его цвет.
type GlyphView struct {
	Symbol string `json:"symbol"`
	Color  string `json:"color"`
}

// LogMessage оборачивает одну запись журнала.
type LogMessage struct {
	Type  string   `json:"type"`
	Entry LogEntry `json:"entry"`
}

// LogEntry представляет одну запись в журнале сообщений.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Category  string `json:"category"` // defend, magic, attack, death, information, player_move, level_up, alert
	Color     string `json:"color"`
	Turn      int    `json:"turn"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для шага (MOVE) и сдвига прицела (SELECT).
type DirectionPayload struct {
	Dx int `json:"dx"` // Смещение по X (-1, 0, 1)
	Dy int `json:"dy"` // Смещение по Y (-1, 0, 1)
}

// CellPayload - клетка окна камеры (SELECT_AT), отсчёт от левого верхнего угла.
type CellPayload struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// PositionPayload - точка на карте уровня.
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}
