package engine

import (
	"context"
	"errors"
	"sync"

	"rotten-soup/internal/domain"
)

// ErrInputClosed - источник ввода закрыт, команд больше не будет
var ErrInputClosed = errors.New("input source closed")

// InputSource выдаёт команды игрока. Next блокируется до команды или отмены ctx.
type InputSource interface {
	Next(ctx context.Context) (domain.Command, error)
}

// ChanInput - источник ввода на канале. В него пишут вебсокет-клиенты и терминал.
type ChanInput struct {
	ch     chan domain.Command
	done   chan struct{}
	closed sync.Once
}

func NewChanInput(buffer int) *ChanInput {
	return &ChanInput{
		ch:   make(chan domain.Command, buffer),
		done: make(chan struct{}),
	}
}

// Push кладёт команду в очередь. Возвращает false, если очередь полна или закрыта.
func (c *ChanInput) Push(cmd domain.Command) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.ch <- cmd:
		return true
	default:
		return false
	}
}

func (c *ChanInput) Next(ctx context.Context) (domain.Command, error) {
	select {
	case <-ctx.Done():
		return domain.Command{}, ctx.Err()
	case <-c.done:
		return domain.Command{}, ErrInputClosed
	case cmd := <-c.ch:
		return cmd, nil
	}
}

// Close будит ожидающий Next. Повторный вызов безопасен.
func (c *ChanInput) Close() error {
	c.closed.Do(func() { close(c.done) })
	return nil
}
