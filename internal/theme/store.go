package theme

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Scheme — трехпозиционная тема оформления.
type Scheme string

const (
	SchemeLight  Scheme = "light"
	SchemeDark   Scheme = "dark"
	SchemeSystem Scheme = "system"
)

// DefaultScheme — тема по умолчанию для свежей установки.
const DefaultScheme = SchemeDark

// Store хранит выбор темы между сессиями консоли.
// Это единственное состояние, которое этот слой персистит локально:
// предпочтение пользователя, не данные.
type Store struct {
	mu     sync.RWMutex
	path   string
	pref   Scheme
	logger *zap.Logger
}

func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		pref:   DefaultScheme,
		logger: logger.Named("theme"),
	}
}

// Load читает сохраненное предпочтение. Отсутствие файла или мусор в нем —
// не ошибка: откатываемся на дефолт.
func (s *Store) Load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	scheme := Scheme(strings.TrimSpace(string(data)))
	switch scheme {
	case SchemeLight, SchemeDark, SchemeSystem:
		s.mu.Lock()
		s.pref = scheme
		s.mu.Unlock()
	default:
		s.logger.Warn("ignoring invalid persisted theme", zap.String("value", string(data)))
	}
}

// Set валидирует и сохраняет выбор темы.
func (s *Store) Set(scheme Scheme) error {
	switch scheme {
	case SchemeLight, SchemeDark, SchemeSystem:
	default:
		return fmt.Errorf("unknown theme %q (want light, dark or system)", scheme)
	}

	s.mu.Lock()
	s.pref = scheme
	s.mu.Unlock()

	if err := os.WriteFile(s.path, []byte(scheme+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to persist theme: %w", err)
	}
	return nil
}

// Preference возвращает сохраненный выбор (включая system).
func (s *Store) Preference() Scheme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pref
}

// Resolve превращает предпочтение в эффективную схему light/dark.
// system берется из окружения (CONSOLE_THEME), иначе действует дефолт dark.
func (s *Store) Resolve() Scheme {
	pref := s.Preference()
	if pref != SchemeSystem {
		return pref
	}
	switch Scheme(os.Getenv("CONSOLE_THEME")) {
	case SchemeLight:
		return SchemeLight
	case SchemeDark:
		return SchemeDark
	}
	return DefaultScheme
}
