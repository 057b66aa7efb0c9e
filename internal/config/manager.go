package config

import (
	"sync"

	"github.com/rs/zerolog"
)

// Manager owns the live settings value and its subscriptions.
type Manager struct {
	mu       sync.RWMutex
	path     string
	settings Settings

	notifier *notifier
	log      zerolog.Logger
}

// NewManager creates a manager for a settings file path. The file is not
// read until Reload.
func NewManager(path string, log zerolog.Logger) *Manager {
	return &Manager{
		path:     path,
		settings: Default(),
		notifier: newNotifier(),
		log:      log,
	}
}

// Path returns the settings file path.
func (m *Manager) Path() string {
	return m.path
}

// Current returns the live settings value.
func (m *Manager) Current() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings
}

// Subscribe registers an observer for settings changes.
func (m *Manager) Subscribe(observer Observer) *Subscription {
	return m.notifier.subscribe(observer)
}

// Reload re-reads the settings file and notifies observers when the value
// changed. The previous settings are kept on error.
func (m *Manager) Reload(source string) error {
	loaded, err := Load(m.path)
	if err != nil {
		m.log.Warn().Str("path", m.path).Err(err).Msg("could not reload settings")
		return err
	}

	m.mu.Lock()
	old := m.settings
	m.settings = loaded
	m.mu.Unlock()

	if old == loaded {
		return nil
	}

	m.log.Info().
		Str("path", m.path).
		Str("source", source).
		Int("chainTimeoutMS", loaded.ChainTimeoutMS).
		Msg("settings reloaded")

	m.notifier.notify(Change{Old: old, New: loaded, Source: source})
	return nil
}
