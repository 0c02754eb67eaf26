package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/duoplan/duoplan/internal/model"
)

// DayStore materializes and mutates per-date day documents. Days are
// created lazily from the default template on first access and never
// deleted.
type DayStore struct {
	docs      *DocumentStore
	templates *TemplateStore
}

func NewDayStore(docs *DocumentStore, templates *TemplateStore) *DayStore {
	return &DayStore{docs: docs, templates: templates}
}

// cloneBlocks copies a template's blocks by value, keeping the stored ids.
// Initial materialization keeps ids because they only need to be unique
// within one day's schedule; clients scope block lookups to a single day.
func cloneBlocks(blocks []model.TimeBlock) []model.TimeBlock {
	cloned := make([]model.TimeBlock, len(blocks))
	copy(cloned, blocks)
	return cloned
}

// freshBlocks copies a template's blocks under newly generated ids. Used
// when a template is explicitly re-applied to an existing day, so repeated
// applications never collide with blocks already referenced by tasks or
// todos.
func freshBlocks(blocks []model.TimeBlock) []model.TimeBlock {
	out := make([]model.TimeBlock, len(blocks))
	for i, b := range blocks {
		b.ID = uuid.New().String()
		out[i] = b
	}
	return out
}

func (s *DayStore) newDay(date string) (model.DayData, error) {
	tmpl, err := s.templates.GetDefault()
	if err != nil {
		return model.DayData{}, err
	}
	var blocks []model.TimeBlock
	if tmpl != nil {
		blocks = tmpl.Blocks
	}
	return model.DayData{
		Date:  date,
		User1: model.UserDayData{Schedule: cloneBlocks(blocks), Tasks: []model.Task{}},
		User2: model.UserDayData{Schedule: cloneBlocks(blocks), Tasks: []model.Task{}},
	}, nil
}

// GetOrCreate returns the day document for date, synthesizing and
// persisting one from the default template when absent. Calling it twice
// for a never-written date yields identical documents.
func (s *DayStore) GetOrCreate(date string) (model.DayData, error) {
	def, err := s.newDay(date)
	if err != nil {
		return model.DayData{}, fmt.Errorf("materialize day %s: %w", date, err)
	}
	var day model.DayData
	if err := s.docs.Get(DayKey(date), def, &day); err != nil {
		return model.DayData{}, fmt.Errorf("get day %s: %w", date, err)
	}
	return day, nil
}

// Put overwrites the day document for date, materializing first so a
// partial body merges onto a fully shaped day. The date field always wins
// over whatever the payload carried.
func (s *DayStore) Put(date string, day model.DayData) (model.DayData, error) {
	day.Date = date
	if day.User1.Schedule == nil {
		day.User1.Schedule = []model.TimeBlock{}
	}
	if day.User1.Tasks == nil {
		day.User1.Tasks = []model.Task{}
	}
	if day.User2.Schedule == nil {
		day.User2.Schedule = []model.TimeBlock{}
	}
	if day.User2.Tasks == nil {
		day.User2.Tasks = []model.Task{}
	}
	if err := s.docs.Put(DayKey(date), day); err != nil {
		return model.DayData{}, fmt.Errorf("put day %s: %w", date, err)
	}
	return day, nil
}

// UpdateSchedule replaces one user's schedule array wholesale, leaving the
// other user and the task lists untouched.
func (s *DayStore) UpdateSchedule(date string, userID model.UserID, blocks []model.TimeBlock) (model.DayData, error) {
	return s.updateUser(date, userID, func(u *model.UserDayData) {
		if blocks == nil {
			blocks = []model.TimeBlock{}
		}
		u.Schedule = blocks
	})
}

// UpdateTasks replaces one user's task array wholesale.
func (s *DayStore) UpdateTasks(date string, userID model.UserID, tasks []model.Task) (model.DayData, error) {
	return s.updateUser(date, userID, func(u *model.UserDayData) {
		if tasks == nil {
			tasks = []model.Task{}
		}
		u.Tasks = tasks
	})
}

// ApplyTemplate replaces one user's schedule with the named template's
// blocks under fresh ids. Unlike initial materialization this never reuses
// the template's stored ids; templates feed many future days and must not
// leak shared ids on explicit re-application.
func (s *DayStore) ApplyTemplate(date string, userID model.UserID, templateID string) (model.DayData, error) {
	templates, err := s.templates.List()
	if err != nil {
		return model.DayData{}, err
	}
	var tmpl *model.ScheduleTemplate
	for i := range templates {
		if templates[i].ID == templateID {
			tmpl = &templates[i]
			break
		}
	}
	if tmpl == nil {
		return model.DayData{}, ErrNotFound
	}
	blocks := freshBlocks(tmpl.Blocks)
	return s.updateUser(date, userID, func(u *model.UserDayData) {
		u.Schedule = blocks
	})
}

func (s *DayStore) updateUser(date string, userID model.UserID, fn func(*model.UserDayData)) (model.DayData, error) {
	def, err := s.newDay(date)
	if err != nil {
		return model.DayData{}, fmt.Errorf("materialize day %s: %w", date, err)
	}
	var day model.DayData
	err = s.docs.Update(DayKey(date), def, &day, func() error {
		fn(day.ForUser(userID))
		return nil
	})
	if err != nil {
		return model.DayData{}, fmt.Errorf("update day %s: %w", date, err)
	}
	return day, nil
}

// ListDates returns every materialized date, sorted ascending.
func (s *DayStore) ListDates() ([]string, error) {
	keys, err := s.docs.ListKeys(dayKeyPrefix)
	if err != nil {
		return nil, fmt.Errorf("list day dates: %w", err)
	}
	dates := make([]string, 0, len(keys))
	for _, k := range keys {
		dates = append(dates, strings.TrimPrefix(k, dayKeyPrefix))
	}
	return dates, nil
}

// All returns every materialized day document in date order.
func (s *DayStore) All() ([]model.DayData, error) {
	dates, err := s.ListDates()
	if err != nil {
		return nil, err
	}
	days := make([]model.DayData, 0, len(dates))
	for _, date := range dates {
		day, err := s.GetOrCreate(date)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// Month returns the materialized days of one calendar month (month is
// 1-based), without materializing any new dates.
func (s *DayStore) Month(year, month int) ([]model.DayData, error) {
	prefix := fmt.Sprintf("%s%04d-%02d", dayKeyPrefix, year, month)
	keys, err := s.docs.ListKeys(prefix)
	if err != nil {
		return nil, fmt.Errorf("list month days: %w", err)
	}
	days := make([]model.DayData, 0, len(keys))
	for _, k := range keys {
		day, err := s.GetOrCreate(strings.TrimPrefix(k, dayKeyPrefix))
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}
