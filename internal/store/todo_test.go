package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/duoplan/duoplan/internal/model"
)

func setupTodoStore(t *testing.T) *TodoStore {
	t.Helper()
	ts := NewTodoStore(setupDocStore(t))
	ts.now = func() time.Time { return time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC) }
	return ts
}

func TestTodoGetSeedsEmptyLedger(t *testing.T) {
	ts := setupTodoStore(t)

	todos, err := ts.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if todos.User1 == nil || todos.User2 == nil {
		t.Error("seeded ledger should have non-nil empty lists")
	}
	if len(todos.User1)+len(todos.User2) != 0 {
		t.Errorf("seeded ledger should be empty, got %+v", todos)
	}
}

func TestTodoAddSelf(t *testing.T) {
	ts := setupTodoStore(t)

	item, err := ts.Add(model.User1, model.GlobalTodoItem{
		Title:  "Buy groceries",
		Status: model.StatusCompleted, // must be overridden
	}, model.User1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.ID == "" {
		t.Error("expected generated id")
	}
	if item.Status != model.StatusPending {
		t.Errorf("status = %s, want pending on add", item.Status)
	}
	if item.CreatedAt != "2026-01-20T09:30:00Z" {
		t.Errorf("createdAt = %s", item.CreatedAt)
	}
	if item.CreatedBy != "" {
		t.Errorf("createdBy = %s, want empty for self-added item", item.CreatedBy)
	}
}

func TestTodoAddCrossUserSetsProvenance(t *testing.T) {
	ts := setupTodoStore(t)

	// user1 assigns a todo onto user2's list.
	item, err := ts.Add(model.User2, model.GlobalTodoItem{Title: "Call the dentist"}, model.User1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.CreatedBy != model.User1 {
		t.Errorf("createdBy = %s, want user1", item.CreatedBy)
	}

	todos, _ := ts.Get()
	if len(todos.User2) != 1 || len(todos.User1) != 0 {
		t.Errorf("item landed on the wrong list: %+v", todos)
	}
}

func TestTodoCycleStatus(t *testing.T) {
	ts := setupTodoStore(t)
	item, _ := ts.Add(model.User1, model.GlobalTodoItem{Title: "Essay"}, model.User1)

	wantSequence := []model.TodoStatus{
		model.StatusInProgress, model.StatusCompleted, model.StatusPending,
	}
	for _, want := range wantSequence {
		if err := ts.CycleStatus(model.User1, item.ID); err != nil {
			t.Fatalf("cycle: %v", err)
		}
		todos, _ := ts.Get()
		if got := todos.User1[0].Status; got != want {
			t.Errorf("status = %s, want %s", got, want)
		}
	}
}

func TestTodoCycleUnknownIDIsNoop(t *testing.T) {
	ts := setupTodoStore(t)
	item, _ := ts.Add(model.User1, model.GlobalTodoItem{Title: "Essay"}, model.User1)

	if err := ts.CycleStatus(model.User1, "missing"); err != nil {
		t.Fatalf("cycle unknown: %v", err)
	}
	// Cycling in the wrong user's list is also a no-op.
	if err := ts.CycleStatus(model.User2, item.ID); err != nil {
		t.Fatalf("cycle wrong list: %v", err)
	}

	todos, _ := ts.Get()
	if todos.User1[0].Status != model.StatusPending {
		t.Errorf("status = %s, want pending untouched", todos.User1[0].Status)
	}
}

func TestTodoDeleteIdempotent(t *testing.T) {
	ts := setupTodoStore(t)
	item, _ := ts.Add(model.User1, model.GlobalTodoItem{Title: "Essay"}, model.User1)

	if err := ts.Delete(model.User1, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	before, _ := ts.Get()

	// Deleting again is a no-op and leaves the ledger equivalent.
	if err := ts.Delete(model.User1, item.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	after, _ := ts.Get()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("ledger changed by deleting an absent todo:\n%+v\n%+v", before, after)
	}
}

func TestTodoLinkAndUnlink(t *testing.T) {
	ts := setupTodoStore(t)
	item, _ := ts.Add(model.User1, model.GlobalTodoItem{Title: "Essay"}, model.User1)

	// No validation of the block id: dangling references are fine.
	if err := ts.Link(model.User1, item.ID, "some-block-id"); err != nil {
		t.Fatalf("link: %v", err)
	}
	todos, _ := ts.Get()
	if todos.User1[0].LinkedBlockID != "some-block-id" {
		t.Errorf("linkedBlockId = %s", todos.User1[0].LinkedBlockID)
	}

	if err := ts.Link(model.User1, item.ID, ""); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	todos, _ = ts.Get()
	if todos.User1[0].LinkedBlockID != "" {
		t.Errorf("linkedBlockId = %s, want cleared", todos.User1[0].LinkedBlockID)
	}
}

func TestTodoPutReplacesLedger(t *testing.T) {
	ts := setupTodoStore(t)
	ts.Add(model.User1, model.GlobalTodoItem{Title: "Old"}, model.User1)

	err := ts.Put(model.GlobalTodoList{
		User1: []model.GlobalTodoItem{{ID: "n1", Title: "New", Status: model.StatusInProgress}},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	todos, _ := ts.Get()
	if len(todos.User1) != 1 || todos.User1[0].Title != "New" {
		t.Errorf("user1 = %+v, want the replacement list", todos.User1)
	}
	if todos.User2 == nil {
		t.Error("nil user2 list should be normalized to empty")
	}
}
