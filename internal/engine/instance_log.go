package engine

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rotten-soup/internal/domain"
	"rotten-soup/pkg/logger"
)

const defaultLogLimit = 200

// LogConsumer получает каждую новую запись журнала (панель сообщений, сеть).
type LogConsumer interface {
	OnLog(entry domain.LogEntry)
}

// MessageLog - журнал сообщений сессии: постоянная история
// и одно временное сообщение (описание клетки под прицелом).
type MessageLog struct {
	mu        sync.Mutex
	entries   []domain.LogEntry
	temp      *domain.LogEntry
	limit     int
	consumers []LogConsumer
	turn      func() int
}

// NewMessageLog создает журнал. turn сообщает текущий номер хода.
func NewMessageLog(turn func() int) *MessageLog {
	return &MessageLog{limit: defaultLogLimit, turn: turn}
}

// Subscribe подписывает получателя на новые записи
func (l *MessageLog) Subscribe(c LogConsumer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.consumers = append(l.consumers, c)
}

// Log добавляет запись в историю
func (l *MessageLog) Log(text string, category domain.LogCategory) domain.LogEntry {
	entry := l.newEntry(text, category)

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if len(l.entries) > l.limit {
		l.entries = slices.Delete(l.entries, 0, len(l.entries)-l.limit)
	}
	consumers := slices.Clone(l.consumers)
	l.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"category":  category,
		"turn":      entry.Turn,
	}).Info(text)

	for _, c := range consumers {
		c.OnLog(entry)
	}
	return entry
}

// LogTemp заменяет временное сообщение. В историю оно не попадает.
func (l *MessageLog) LogTemp(text string, category domain.LogCategory) {
	entry := l.newEntry(text, category)

	l.mu.Lock()
	l.temp = &entry
	l.mu.Unlock()

	logger.Log.WithFields(logrus.Fields{
		"component": "game_log",
		"category":  category,
	}).Debug(text)
}

// ClearTemp убирает временное сообщение
func (l *MessageLog) ClearTemp() {
	l.mu.Lock()
	l.temp = nil
	l.mu.Unlock()
}

// Temp возвращает текст временного сообщения или пустую строку
func (l *MessageLog) Temp() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.temp == nil {
		return ""
	}
	return l.temp.Text
}

// History возвращает копию истории
func (l *MessageLog) History() []domain.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

func (l *MessageLog) newEntry(text string, category domain.LogCategory) domain.LogEntry {
	turn := 0
	if l.turn != nil {
		turn = l.turn()
	}
	return domain.LogEntry{
		ID:        uuid.NewString(),
		Text:      text,
		Category:  category,
		Color:     category.Color(),
		Turn:      turn,
		Timestamp: time.Now().UnixMilli(),
	}
}
