package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/duoplan/duoplan/internal/model"
)

// ErrNotFound is returned when an operation targets a template id that is
// not in the collection. The collection is left unchanged.
var ErrNotFound = errors.New("not found")

// TemplateStore manages the schedule template collection, which lives in a
// single document. It owns the invariant that at most one template is
// flagged default at any time.
type TemplateStore struct {
	docs *DocumentStore
}

func NewTemplateStore(docs *DocumentStore) *TemplateStore {
	return &TemplateStore{docs: docs}
}

func (s *TemplateStore) List() ([]model.ScheduleTemplate, error) {
	var templates []model.ScheduleTemplate
	if err := s.docs.Get(KeyTemplates, model.DefaultTemplates(), &templates); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// clearOtherDefaults is the single transition point for the default flag:
// when incoming claims the default, every other entry loses it. Both Create
// and Update go through here, so the invariant cannot drift between write
// paths.
func clearOtherDefaults(templates []model.ScheduleTemplate, incoming model.ScheduleTemplate) {
	if !incoming.IsDefault {
		return
	}
	for i := range templates {
		if templates[i].ID != incoming.ID {
			templates[i].IsDefault = false
		}
	}
}

// Create appends a template, assigning an id when the caller left it empty.
func (s *TemplateStore) Create(t model.ScheduleTemplate) (model.ScheduleTemplate, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	var templates []model.ScheduleTemplate
	err := s.docs.Update(KeyTemplates, model.DefaultTemplates(), &templates, func() error {
		clearOtherDefaults(templates, t)
		templates = append(templates, t)
		return nil
	})
	if err != nil {
		return model.ScheduleTemplate{}, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// Update replaces the entry sharing t's id. Returns ErrNotFound, leaving
// the collection untouched, when no entry matches.
func (s *TemplateStore) Update(t model.ScheduleTemplate) error {
	var templates []model.ScheduleTemplate
	err := s.docs.Update(KeyTemplates, model.DefaultTemplates(), &templates, func() error {
		idx := -1
		for i := range templates {
			if templates[i].ID == t.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return ErrNotFound
		}
		clearOtherDefaults(templates, t)
		templates[idx] = t
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

// Delete removes the entry with the given id. No replacement default is
// assigned; the collection may end up with zero defaults. Deleting an
// unknown id is a no-op.
func (s *TemplateStore) Delete(id string) error {
	var templates []model.ScheduleTemplate
	err := s.docs.Update(KeyTemplates, model.DefaultTemplates(), &templates, func() error {
		kept := templates[:0]
		for _, t := range templates {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		templates = kept
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// GetDefault returns the template flagged default, falling back to the
// first template when none is flagged, or nil for an empty collection.
func (s *TemplateStore) GetDefault() (*model.ScheduleTemplate, error) {
	templates, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := range templates {
		if templates[i].IsDefault {
			return &templates[i], nil
		}
	}
	if len(templates) > 0 {
		return &templates[0], nil
	}
	return nil, nil
}
