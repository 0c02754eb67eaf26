package model

// TodoStatus is a three-state cycle with no terminal state:
// pending -> in_progress -> completed -> pending.
type TodoStatus string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "in_progress"
	StatusCompleted  TodoStatus = "completed"
)

// Next advances the status by exactly one step in the cycle. Unknown values
// are treated as pending so the cycle always stays total.
func (s TodoStatus) Next() TodoStatus {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	case StatusCompleted:
		return StatusPending
	default:
		return StatusInProgress
	}
}

// GlobalTodoItem lives in the cross-day ledger until explicitly deleted.
// CreatedBy is set only when the item was added by the other user than the
// list's owner. LinkedBlockID and LinkedSubjectID are weak references
// resolved lazily at read time.
type GlobalTodoItem struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Status          TodoStatus `json:"status"`
	CreatedAt       string     `json:"createdAt"`
	Deadline        string     `json:"deadline,omitempty"`
	CreatedBy       UserID     `json:"createdBy,omitempty"`
	LinkedBlockID   string     `json:"linkedBlockId,omitempty"`
	LinkedSubjectID string     `json:"linkedSubjectId,omitempty"`
}

// GlobalTodoList is a single document holding both users' ledgers; it is not
// date-partitioned.
type GlobalTodoList struct {
	User1 []GlobalTodoItem `json:"user1"`
	User2 []GlobalTodoItem `json:"user2"`
}

// ForUser returns a pointer to the named user's ledger slice.
func (l *GlobalTodoList) ForUser(id UserID) *[]GlobalTodoItem {
	if id == User2 {
		return &l.User2
	}
	return &l.User1
}

// EmptyTodoList seeds the ledger document on first read.
func EmptyTodoList() GlobalTodoList {
	return GlobalTodoList{User1: []GlobalTodoItem{}, User2: []GlobalTodoItem{}}
}
