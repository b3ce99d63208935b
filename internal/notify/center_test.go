package notify

import (
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type recordSink struct {
	mu    sync.Mutex
	shown []Notification
}

func (s *recordSink) Show(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, n)
}

func (s *recordSink) snapshot() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.shown))
	copy(out, s.shown)
	return out
}

func TestCenterShowsQueuedNotifications(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, time.Minute, zap.NewNop(), nil)
	c.Start()

	c.Success("Regra criada!", "A regra de alerta foi criada com sucesso.")
	c.Error("Erro", "Erro ao carregar regras")
	c.Stop()

	shown := sink.snapshot()
	if len(shown) != 2 {
		t.Fatalf("shown = %d, want 2", len(shown))
	}
	if shown[0].Level != LevelSuccess || shown[0].Title != "Regra criada!" {
		t.Errorf("first = %+v", shown[0])
	}
	if shown[1].Level != LevelError {
		t.Errorf("second = %+v", shown[1])
	}
	if shown[0].ID == shown[1].ID || shown[0].ID == "" {
		t.Errorf("ids must be unique and non-empty: %q, %q", shown[0].ID, shown[1].ID)
	}
}

func TestCenterDropsExpiredNotifications(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, time.Nanosecond, zap.NewNop(), nil)

	// Воркер еще не запущен: к моменту старта уведомление уже протухло
	c.Success("ok", "stale")
	time.Sleep(5 * time.Millisecond)
	c.Start()
	c.Stop()

	if shown := sink.snapshot(); len(shown) != 0 {
		t.Errorf("shown = %v, want expired notification dropped", shown)
	}
}

func TestCenterStopRacingPushesDoesNotPanic(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, time.Minute, zap.NewNop(), nil)
	c.Start()

	// Пуши наперегонки со Stop: ни один не должен попасть в закрытый канал
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Success("ok", "racing stop")
		}()
	}
	c.Stop()
	wg.Wait()
}

func TestCenterRejectsPushAfterStop(t *testing.T) {
	sink := &recordSink{}
	c := NewCenter(sink, time.Minute, zap.NewNop(), nil)
	c.Start()
	c.Stop()

	// Не должно паниковать записью в закрытый канал
	c.Success("late", "after stop")

	if shown := sink.snapshot(); len(shown) != 0 {
		t.Errorf("shown = %v, want none after stop", shown)
	}
}
