package storage

import (
	"context"
	"io"
	"sync"

	"rotten-soup/internal/domain"
	"rotten-soup/internal/engine"
)

// RecordingInput пишет в запись каждую команду, которую движок забрал из источника.
type RecordingInput struct {
	engine.InputSource

	mu  sync.Mutex
	rec *Recording
}

func NewRecordingInput(src engine.InputSource, seed int64, startLevel string) *RecordingInput {
	return &RecordingInput{
		InputSource: src,
		rec:         &Recording{Seed: seed, StartLevel: startLevel},
	}
}

func (r *RecordingInput) Next(ctx context.Context) (domain.Command, error) {
	cmd, err := r.InputSource.Next(ctx)
	if err != nil {
		return cmd, err
	}

	r.mu.Lock()
	r.rec.Commands = append(r.rec.Commands, RecordedCommand{
		Seq:     len(r.rec.Commands),
		Action:  cmd.Action,
		Payload: append([]byte(nil), cmd.Payload...),
	})
	r.mu.Unlock()

	return cmd, nil
}

// Close закрывает исходный источник, если он это умеет
func (r *RecordingInput) Close() error {
	if c, ok := r.InputSource.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Recording возвращает копию накопленной записи
func (r *RecordingInput) Recording() *Recording {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := *r.rec
	out.Commands = append([]RecordedCommand(nil), r.rec.Commands...)
	return &out
}

// ReplayInput отдаёт команды из записи по порядку, затем сообщает о закрытии ввода.
type ReplayInput struct {
	commands []RecordedCommand
	next     int
}

func NewReplayInput(rec *Recording) *ReplayInput {
	return &ReplayInput{commands: rec.Commands}
}

func (r *ReplayInput) Next(ctx context.Context) (domain.Command, error) {
	if err := ctx.Err(); err != nil {
		return domain.Command{}, err
	}
	if r.next >= len(r.commands) {
		return domain.Command{}, engine.ErrInputClosed
	}

	rc := r.commands[r.next]
	r.next++

	cmd := domain.Command{Action: rc.Action}
	if len(rc.Payload) > 0 {
		cmd.Payload = rc.Payload
	}
	return cmd, nil
}

// Remaining - сколько команд ещё не воспроизведено
func (r *ReplayInput) Remaining() int {
	return len(r.commands) - r.next
}
