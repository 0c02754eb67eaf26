// Package stats derives read-only views from day, settings, and todo
// documents. Everything in here is pure; nothing writes.
package stats

import "github.com/duoplan/duoplan/internal/model"

// DayStatus classifies one user's day for calendar coloring.
type DayStatus string

const (
	StatusUnplanned  DayStatus = "unplanned"
	StatusIncomplete DayStatus = "incomplete"
	StatusPartial    DayStatus = "partial"
	StatusComplete   DayStatus = "complete"
)

// ForDay classifies a day for one user: unplanned when the day is absent or
// the task list is empty, incomplete with zero completions, complete when
// everything is done, partial otherwise.
func ForDay(day *model.DayData, userID model.UserID) DayStatus {
	if day == nil {
		return StatusUnplanned
	}
	tasks := day.ForUser(userID).Tasks
	if len(tasks) == 0 {
		return StatusUnplanned
	}

	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}

	switch completed {
	case 0:
		return StatusIncomplete
	case len(tasks):
		return StatusComplete
	default:
		return StatusPartial
	}
}
