package engine

import (
	"context"
	"errors"
	"slices"
	"testing"

	"rotten-soup/internal/telemetry"
)

// fakeParticipant пишет своё имя в общий журнал и вызывает hook.
type fakeParticipant struct {
	name  string
	calls *[]string
	hook  func() error
}

func (f *fakeParticipant) Name() string { return f.name }

func (f *fakeParticipant) TakeTurn(ctx context.Context) error {
	*f.calls = append(*f.calls, f.name)
	if f.hook != nil {
		return f.hook()
	}
	return nil
}

func TestTurnScheduler_Order(t *testing.T) {
	var calls []string
	ts := NewTurnScheduler(telemetry.NoopTracer())
	ts.Register(&fakeParticipant{name: "display", calls: &calls}, true)
	ts.Register(&fakeParticipant{name: "player", calls: &calls}, true)
	ts.Register(&fakeParticipant{name: "rat", calls: &calls}, true)

	for i := 0; i < 2; i++ {
		if err := ts.Tick(t.Context()); err != nil {
			t.Fatalf("Tick() error = %v", err)
		}
	}

	want := []string{"display", "player", "rat", "display", "player", "rat"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if ts.Cycles() != 2 {
		t.Errorf("Cycles() = %d, want 2", ts.Cycles())
	}
}

func TestTurnScheduler_NonRepeating(t *testing.T) {
	var calls []string
	ts := NewTurnScheduler(telemetry.NoopTracer())
	ts.Register(&fakeParticipant{name: "once", calls: &calls}, false)
	ts.Register(&fakeParticipant{name: "always", calls: &calls}, true)

	_ = ts.Tick(t.Context())
	_ = ts.Tick(t.Context())

	want := []string{"once", "always", "always"}
	if !slices.Equal(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
	if ts.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ts.Len())
	}
}

func TestTurnScheduler_ResetAbortsCycle(t *testing.T) {
	var calls []string
	ts := NewTurnScheduler(telemetry.NoopTracer())

	fresh := &fakeParticipant{name: "fresh", calls: &calls}
	ts.Register(&fakeParticipant{name: "switcher", calls: &calls, hook: func() error {
		ts.Reset()
		ts.Register(fresh, true)
		return nil
	}}, true)
	ts.Register(&fakeParticipant{name: "stale", calls: &calls}, true)

	if err := ts.Tick(t.Context()); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if slices.Contains(calls, "stale") {
		t.Errorf("stale participant ran after reset: %v", calls)
	}
	if ts.Cycles() != 0 {
		t.Errorf("aborted cycle counted: Cycles() = %d", ts.Cycles())
	}

	calls = calls[:0]
	if err := ts.Tick(t.Context()); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
	if !slices.Equal(calls, []string{"fresh"}) {
		t.Errorf("calls after reset = %v, want [fresh]", calls)
	}
}

func TestTurnScheduler_Empty(t *testing.T) {
	ts := NewTurnScheduler(telemetry.NoopTracer())
	if err := ts.Tick(t.Context()); !errors.Is(err, ErrNoParticipants) {
		t.Errorf("Tick() error = %v, want ErrNoParticipants", err)
	}
	if err := ts.Start(t.Context()); !errors.Is(err, ErrNoParticipants) {
		t.Errorf("Start() error = %v, want ErrNoParticipants", err)
	}
}

func TestTurnScheduler_Start(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name    string
		hook    func(turn int, cancel context.CancelFunc) error
		wantErr error
	}{
		{
			name: "quit stops loop",
			hook: func(turn int, _ context.CancelFunc) error {
				if turn == 3 {
					return ErrQuit
				}
				return nil
			},
		},
		{
			name: "cancel stops loop",
			hook: func(turn int, cancel context.CancelFunc) error {
				if turn == 2 {
					cancel()
				}
				return nil
			},
		},
		{
			name: "other errors are returned",
			hook: func(turn int, _ context.CancelFunc) error {
				return boom
			},
			wantErr: boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(t.Context())
			defer cancel()

			var calls []string
			turn := 0
			ts := NewTurnScheduler(telemetry.NoopTracer())
			ts.Register(&fakeParticipant{name: "p", calls: &calls, hook: func() error {
				turn++
				return tt.hook(turn, cancel)
			}}, true)

			err := ts.Start(ctx)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Start() error = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Start() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestTurnScheduler_DebugDump(t *testing.T) {
	var calls []string
	ts := NewTurnScheduler(telemetry.NoopTracer())
	if dump := ts.DebugDump(); dump == nil || len(dump) != 0 {
		t.Errorf("empty DebugDump() = %v, want empty non-nil slice", dump)
	}

	ts.Register(&fakeParticipant{name: "display", calls: &calls}, true)
	ts.Register(&fakeParticipant{name: "once", calls: &calls}, false)

	dump := ts.DebugDump()
	if len(dump) != 2 {
		t.Fatalf("len(DebugDump()) = %d, want 2", len(dump))
	}
	if dump[0]["name"] != "display" || dump[1]["repeating"] != false {
		t.Errorf("unexpected dump: %v", dump)
	}
}
