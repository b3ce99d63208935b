package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/xela07ax/sensor-alert-console/internal/notify"
	"github.com/xela07ax/sensor-alert-console/internal/theme"
)

type palette struct {
	success string
	failure string
	reset   string
}

// newPalette подбирает ANSI-коды под эффективную схему: на темной теме
// берем яркие варианты, на светлой — стандартные.
func newPalette(scheme theme.Scheme) palette {
	if scheme == theme.SchemeLight {
		return palette{success: "\x1b[32m", failure: "\x1b[31m", reset: "\x1b[0m"}
	}
	return palette{success: "\x1b[92m", failure: "\x1b[91m", reset: "\x1b[0m"}
}

// Sink рисует транзиентные уведомления в консоль.
// Реализует notify.Sink; это единственное место, где уведомление становится
// видимым — ни в какие долговременные стоки оно не попадает.
type Sink struct {
	mu     sync.Mutex
	out    io.Writer
	themes *theme.Store
}

func NewSink(out io.Writer, themes *theme.Store) *Sink {
	return &Sink{out: out, themes: themes}
}

func (s *Sink) Show(n notify.Notification) {
	p := newPalette(s.themes.Resolve())

	prefix := p.success + "[OK]"
	if n.Level == notify.LevelError {
		prefix = p.failure + "[ERRO]"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "%s %s: %s%s\n", prefix, n.Title, n.Message, p.reset)
}
