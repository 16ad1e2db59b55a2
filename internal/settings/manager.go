package settings

import (
	"fmt"
	"sync"
)

// Manager owns the live settings and persists every change.
type Manager struct {
	store *Store

	mu             sync.Mutex
	current        Settings
	onRibbonChange func(enabled bool)
}

// Open loads settings from store and writes them straight back, so the data
// file always carries every field.
func Open(store *Store) (*Manager, error) {
	s, err := store.Load()
	if err != nil {
		return nil, err
	}
	m := &Manager{store: store, current: s}
	if err := store.Save(s); err != nil {
		return nil, err
	}
	return m, nil
}

// Current returns a copy of the live settings.
func (m *Manager) Current() Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// OnRibbonChange registers fn to run whenever EnableRibbonIcon changes.
func (m *Manager) OnRibbonChange(fn func(enabled bool)) {
	m.mu.Lock()
	m.onRibbonChange = fn
	m.mu.Unlock()
}

// SetOpenInNewLeaf sets and persists OpenInNewLeaf.
func (m *Manager) SetOpenInNewLeaf(v bool) error {
	return m.Update(func(s *Settings) { s.OpenInNewLeaf = v })
}

// SetEnableRibbonIcon sets and persists EnableRibbonIcon.
func (m *Manager) SetEnableRibbonIcon(v bool) error {
	return m.Update(func(s *Settings) { s.EnableRibbonIcon = v })
}

// SetExcludedFolders sets and persists ExcludedFolders.
func (m *Manager) SetExcludedFolders(v string) error {
	return m.Update(func(s *Settings) { s.ExcludedFolders = v })
}

// SetSelectedTag sets and persists SelectedTag.
func (m *Manager) SetSelectedTag(v string) error {
	return m.Update(func(s *Settings) { s.SelectedTag = v })
}

// Update applies fn to a copy of the settings, validates and saves the result.
// Nothing changes if validation or saving fails.
func (m *Manager) Update(fn func(*Settings)) error {
	m.mu.Lock()
	next := m.current
	fn(&next)
	if err := next.Validate(); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := m.store.Save(next); err != nil {
		m.mu.Unlock()
		return err
	}
	ribbonChanged := next.EnableRibbonIcon != m.current.EnableRibbonIcon
	m.current = next
	cb := m.onRibbonChange
	m.mu.Unlock()

	if ribbonChanged && cb != nil {
		cb(next.EnableRibbonIcon)
	}
	return nil
}
