package stats

import (
	"sort"
	"time"

	"github.com/duoplan/duoplan/internal/model"
)

// DailyProgress is one point in a user's completion-rate series.
type DailyProgress struct {
	Date     string  `json:"date"`
	Progress float64 `json:"progress"`
}

// DayProgress returns the completion rate of a task list as a percentage,
// 0 for an empty list.
func DayProgress(tasks []model.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range tasks {
		if t.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// WeeklyComparison maps a set of day documents to one user's daily
// completion series, in date order.
func WeeklyComparison(days []model.DayData, userID model.UserID) []DailyProgress {
	series := make([]DailyProgress, 0, len(days))
	for _, day := range days {
		series = append(series, DailyProgress{
			Date:     day.Date,
			Progress: DayProgress(day.ForUser(userID).Tasks),
		})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})
	return series
}

// WeeklyAverage is the arithmetic mean of a daily series, 0 when empty.
func WeeklyAverage(series []DailyProgress) float64 {
	if len(series) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range series {
		sum += p.Progress
	}
	return sum / float64(len(series))
}

// WeekDates returns the seven YYYY-MM-DD dates of the Monday-started week
// containing date.
func WeekDates(date string) ([]string, error) {
	t, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	// time.Weekday is Sunday-based; shift so Monday is day 0.
	offset := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -offset)

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = monday.AddDate(0, 0, i).Format(dateLayout)
	}
	return dates, nil
}

// FilterDates keeps the day documents whose date is in the given set,
// sorted by date. Missing dates simply do not appear; callers treat absent
// days as unplanned.
func FilterDates(days []model.DayData, dates []string) []model.DayData {
	want := make(map[string]bool, len(dates))
	for _, d := range dates {
		want[d] = true
	}
	kept := make([]model.DayData, 0, len(days))
	for _, day := range days {
		if want[day.Date] {
			kept = append(kept, day)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Date < kept[j].Date
	})
	return kept
}

// Today returns the current local date as YYYY-MM-DD. Wall-clock local
// time, no timezone handling beyond that.
func Today() string {
	return time.Now().Format(dateLayout)
}
