package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/duoplan/duoplan/internal/model"
)

// TodoStore manages the cross-day todo ledger: two date-agnostic ordered
// lists in a single document. Every mutation is a whole-document
// read-modify-write serialized by the document store.
type TodoStore struct {
	docs *DocumentStore
	now  func() time.Time
}

func NewTodoStore(docs *DocumentStore) *TodoStore {
	return &TodoStore{docs: docs, now: time.Now}
}

func (s *TodoStore) Get() (model.GlobalTodoList, error) {
	var todos model.GlobalTodoList
	if err := s.docs.Get(KeyTodos, model.EmptyTodoList(), &todos); err != nil {
		return model.GlobalTodoList{}, fmt.Errorf("get todos: %w", err)
	}
	return todos, nil
}

// Put replaces the whole ledger document.
func (s *TodoStore) Put(todos model.GlobalTodoList) error {
	if todos.User1 == nil {
		todos.User1 = []model.GlobalTodoItem{}
	}
	if todos.User2 == nil {
		todos.User2 = []model.GlobalTodoItem{}
	}
	if err := s.docs.Put(KeyTodos, todos); err != nil {
		return fmt.Errorf("put todos: %w", err)
	}
	return nil
}

// Add appends item to owner's ledger. Status is forced to pending and
// createdAt to now regardless of what the caller sent. CreatedBy records
// provenance only when the acting user assigned the item onto the other
// user's list.
func (s *TodoStore) Add(owner model.UserID, item model.GlobalTodoItem, actingUser model.UserID) (model.GlobalTodoItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Status = model.StatusPending
	item.CreatedAt = s.now().Format(time.RFC3339)
	if actingUser != "" && actingUser != owner {
		item.CreatedBy = actingUser
	} else {
		item.CreatedBy = ""
	}

	err := s.update(func(todos *model.GlobalTodoList) {
		list := todos.ForUser(owner)
		*list = append(*list, item)
	})
	if err != nil {
		return model.GlobalTodoItem{}, fmt.Errorf("add todo: %w", err)
	}
	return item, nil
}

// CycleStatus advances the item's status one step in the pending ->
// in_progress -> completed cycle. An unknown id is silently ignored.
func (s *TodoStore) CycleStatus(owner model.UserID, todoID string) error {
	err := s.update(func(todos *model.GlobalTodoList) {
		list := *todos.ForUser(owner)
		for i := range list {
			if list[i].ID == todoID {
				list[i].Status = list[i].Status.Next()
				return
			}
		}
	})
	if err != nil {
		return fmt.Errorf("cycle todo status: %w", err)
	}
	return nil
}

// Delete removes the item from owner's ledger; deleting an absent id is a
// no-op.
func (s *TodoStore) Delete(owner model.UserID, todoID string) error {
	err := s.update(func(todos *model.GlobalTodoList) {
		list := todos.ForUser(owner)
		kept := (*list)[:0]
		for _, item := range *list {
			if item.ID != todoID {
				kept = append(kept, item)
			}
		}
		*list = kept
	})
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

// Link sets or clears the item's weak reference to a schedule block. The
// block id is not validated against any day's schedule; a dangling
// reference is tolerated and resolved lazily at read time.
func (s *TodoStore) Link(owner model.UserID, todoID, blockID string) error {
	err := s.update(func(todos *model.GlobalTodoList) {
		list := *todos.ForUser(owner)
		for i := range list {
			if list[i].ID == todoID {
				list[i].LinkedBlockID = blockID
				return
			}
		}
	})
	if err != nil {
		return fmt.Errorf("link todo: %w", err)
	}
	return nil
}

func (s *TodoStore) update(fn func(*model.GlobalTodoList)) error {
	var todos model.GlobalTodoList
	return s.docs.Update(KeyTodos, model.EmptyTodoList(), &todos, func() error {
		fn(&todos)
		if todos.User1 == nil {
			todos.User1 = []model.GlobalTodoItem{}
		}
		if todos.User2 == nil {
			todos.User2 = []model.GlobalTodoItem{}
		}
		return nil
	})
}
