package handlers

import (
	"context"
	"encoding/json"
	"errors"

	"rotten-soup/internal/domain"
	"rotten-soup/internal/systems"
)

// ErrQuit - игрок попросил завершить сессию.
var ErrQuit = errors.New("quit requested")

// LevelSwitcher меняет активный уровень. Session неявно реализует этот интерфейс.
type LevelSwitcher interface {
	Transition(ctx context.Context, target string, arrival domain.Arrival) error
}

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Ctx       context.Context
	Level     *domain.Level      // Активный уровень
	Actor     *domain.Entity     // Тот, кто выполняет команду (Игрок или монстр)
	Targeting *systems.Targeting // Прицел игрока
	Viewport  systems.Viewport   // Окно камеры на момент команды
	Switcher  LevelSwitcher
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в журнал сессии напрямую, он возвращает данные.
type Result struct {
	Msg      string             // Текст сообщения
	Category domain.LogCategory // Категория сообщения (цвет)
	Event    json.RawMessage    // Сырые данные события для обработки движком
	EndsTurn bool               // Команда потратила ход
}

// HandlerFunc - это контракт для любой команды (MOVE, SELECT, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

// TurnResult - пустой результат, который завершает ход
func TurnResult() Result {
	return Result{EndsTurn: true}
}

// Info - сообщение без траты хода
func Info(msg string) Result {
	return Result{Msg: msg, Category: domain.LogInformation}
}
