package settings

import (
	"fmt"
	"log/slog"
	"sync"
)

// Store is the settings object handed to the renderer and the export
// pipeline. Every change is validated, written through to the backend and
// then announced to subscribers.
type Store struct {
	mu        sync.RWMutex
	backend   Backend
	current   Settings
	listeners map[int]func(Settings)
	nextID    int
	log       *slog.Logger
}

// Open loads the persisted settings from backend.
func Open(backend Backend, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	current, err := backend.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := current.Validate(); err != nil {
		log.Warn("stored settings are invalid, resetting invalid fields", "error", err)
		current = current.Repair()
	}
	return &Store{
		backend:   backend,
		current:   current,
		listeners: make(map[int]func(Settings)),
		log:       log,
	}, nil
}

// Get returns a copy of the current settings.
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers fn to be called with the new settings after every
// successful change. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Settings)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Update applies fn to a copy of the current settings, validates and
// persists the result. Nothing changes when validation or saving fails.
func (s *Store) Update(fn func(*Settings)) error {
	s.mu.Lock()
	next := s.current
	fn(&next)
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return err
	}
	if err := s.backend.Save(next); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.current = next
	listeners := make([]func(Settings), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return nil
}

func (s *Store) SetName(name string) error {
	s.log.Debug("setting changed", "field", "name", "value", name)
	return s.Update(func(st *Settings) { st.Name = name })
}

func (s *Store) SetPosition(position string) error {
	s.log.Debug("setting changed", "field", "position", "value", position)
	return s.Update(func(st *Settings) { st.Position = position })
}

func (s *Store) SetSiteName(siteName string) error {
	s.log.Debug("setting changed", "field", "siteName", "value", siteName)
	return s.Update(func(st *Settings) { st.SiteName = siteName })
}

func (s *Store) SetPageBreakDay(day int) error {
	s.log.Debug("setting changed", "field", "pageBreakDay", "value", day)
	return s.Update(func(st *Settings) { st.PageBreakDay = day })
}

func (s *Store) SetPayrollDeadlineOffset(offset int) error {
	s.log.Debug("setting changed", "field", "payrollDeadlineOffset", "value", offset)
	return s.Update(func(st *Settings) { st.PayrollDeadlineOffset = offset })
}

func (s *Store) SetUseCygnetLogo(use bool) error {
	s.log.Debug("setting changed", "field", "useCygnetLogo", "value", use)
	return s.Update(func(st *Settings) { st.UseCygnetLogo = use })
}
