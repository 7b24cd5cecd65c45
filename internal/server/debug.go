package server

import (
	"encoding/json"
	"net/http"
)

// DebugHandler предоставляет доступ к снимку состояния сессии
type DebugHandler struct {
	Game SummaryProvider
}

func NewDebugHandler(g SummaryProvider) *DebugHandler {
	return &DebugHandler{Game: g}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/levels", h.handleListLevels)
	mux.HandleFunc("/debug/level", h.handleLevel)
	mux.HandleFunc("/debug/queue", h.handleTurnQueue)
	mux.HandleFunc("/debug/summary", h.handleSummary)
}

// /debug/levels - список созданных уровней
func (h *DebugHandler) handleListLevels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Game.Summary().Levels)
}

// /debug/level?name=cave-1 - один уровень
func (h *DebugHandler) handleLevel(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	for _, lvl := range h.Game.Summary().Levels {
		if lvl.Name == name {
			writeJSON(w, lvl)
			return
		}
	}
	http.Error(w, "Level not found or not generated yet", http.StatusNotFound)
}

// /debug/queue - участники планировщика в порядке хода
func (h *DebugHandler) handleTurnQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Game.Summary().Queue)
}

// /debug/summary - весь снимок
func (h *DebugHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Game.Summary())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
