package model

// TimeBlock is a labeled, categorized interval within one day's schedule.
// Times are naive local wall-clock "HH:mm" strings; blocks never span
// midnight, so StartTime < EndTime lexicographically. Ids are unique within
// the owning schedule array only.
type TimeBlock struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
	Category  string `json:"category"`
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Task is a per-day checklist entry. LinkedBlockID is a weak reference to a
// TimeBlock in the same user's schedule; the block may have been replaced,
// and a dangling id must be tolerated by readers.
type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Completed     bool         `json:"completed"`
	Priority      TaskPriority `json:"priority"`
	LinkedBlockID string       `json:"linkedBlockId,omitempty"`
}

// UserDayData holds one user's half of a day document. Schedule and tasks
// mutate independently and are always replaced wholesale.
type UserDayData struct {
	Schedule []TimeBlock `json:"schedule"`
	Tasks    []Task      `json:"tasks"`
}

// DayData is the per-date document holding both users' schedules and tasks.
// One document per date, created lazily from the default template and never
// deleted.
type DayData struct {
	Date  string      `json:"date"`
	User1 UserDayData `json:"user1"`
	User2 UserDayData `json:"user2"`
}

// ForUser returns a pointer to the named user's half of the day.
func (d *DayData) ForUser(id UserID) *UserDayData {
	if id == User2 {
		return &d.User2
	}
	return &d.User1
}
