package store

import (
	"fmt"

	"github.com/duoplan/duoplan/internal/model"
)

// SettingsStore reads and writes the single global settings document,
// seeding defaults on first read.
type SettingsStore struct {
	docs *DocumentStore
}

func NewSettingsStore(docs *DocumentStore) *SettingsStore {
	return &SettingsStore{docs: docs}
}

func (s *SettingsStore) Get() (model.AppSettings, error) {
	var settings model.AppSettings
	if err := s.docs.Get(KeySettings, model.DefaultSettings(), &settings); err != nil {
		return model.AppSettings{}, fmt.Errorf("get settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsStore) Put(settings model.AppSettings) error {
	if err := s.docs.Put(KeySettings, settings); err != nil {
		return fmt.Errorf("put settings: %w", err)
	}
	return nil
}
