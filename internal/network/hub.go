package network

import (
	"sync"

	"github.com/sirupsen/logrus"

	"rotten-soup/pkg/logger"
)

const subscriberBuffer = 64

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID подключения -> Личный канал
	subscribers map[string]chan []byte
	logger      *logrus.Entry
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan []byte),
		logger:      logger.Log.WithField("component", "broadcaster"),
	}
}

// Register создает личный канал подписчика (вкладка браузера, бот)
func (b *Broadcaster) Register(id string) chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan []byte, subscriberBuffer)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет сообщение одному подписчику (Unicast)
func (b *Broadcaster) SendTo(id string, msg []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[id]; ok {
		select {
		case ch <- msg:
		default:
			b.logger.WithField("subscriber", id).Debug("Channel full, message dropped")
		}
	}
}

// Broadcast отправляет всем. Медленный подписчик теряет сообщение, а не тормозит игру.
func (b *Broadcaster) Broadcast(msg []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			b.logger.WithField("subscriber", id).Debug("Channel full, message dropped")
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
