package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/duoplan/duoplan/internal/model"
)

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// daysBetween counts whole days from a to b. Both are midnight-anchored, so
// the division is exact.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// VacationProgress describes elapsed and remaining vacation time. The
// window is inclusive on both ends: the start date itself counts as day 1.
type VacationProgress struct {
	DaysPassed    int     `json:"daysPassed"`
	TotalDays     int     `json:"totalDays"`
	Percentage    float64 `json:"percentage"`
	DaysRemaining int     `json:"daysRemaining"`
}

// Vacation computes the countdown for a start/end/today triple of
// YYYY-MM-DD strings. Percentage is clamped to [0, 100], so it reads 100
// after the window closes and 0 before it opens.
func Vacation(startDate, endDate, today string) (VacationProgress, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return VacationProgress{}, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return VacationProgress{}, err
	}
	now, err := parseDate(today)
	if err != nil {
		return VacationProgress{}, err
	}

	totalDays := daysBetween(start, end) + 1
	daysPassed := daysBetween(start, now) + 1
	if daysPassed < 0 {
		daysPassed = 0
	}
	daysRemaining := totalDays - daysPassed
	if daysRemaining < 0 {
		daysRemaining = 0
	}

	percentage := 0.0
	if totalDays > 0 {
		percentage = float64(daysPassed) / float64(totalDays) * 100
	}
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	return VacationProgress{
		DaysPassed:    daysPassed,
		TotalDays:     totalDays,
		Percentage:    percentage,
		DaysRemaining: daysRemaining,
	}, nil
}

// ExamDaysLeft counts the days until an exam. Zero means the exam is today;
// negative values mean it has passed.
func ExamDaysLeft(examDate, today string) (int, error) {
	exam, err := parseDate(examDate)
	if err != nil {
		return 0, err
	}
	now, err := parseDate(today)
	if err != nil {
		return 0, err
	}
	return daysBetween(now, exam), nil
}

// UpcomingExams filters exams on or after today and sorts them by date
// ascending. Past exams drop out of countdown lists.
func UpcomingExams(exams []model.ExamCountdown, today string) []model.ExamCountdown {
	upcoming := make([]model.ExamCountdown, 0, len(exams))
	for _, e := range exams {
		if e.Date >= today {
			upcoming = append(upcoming, e)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Date < upcoming[j].Date
	})
	return upcoming
}

// SubjectShare is one subject's slice of the homework progress view.
type SubjectShare struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Percentage float64 `json:"percentage"`
}

// SubjectProgress aggregates homework pages per subject and overall.
type SubjectProgress struct {
	TotalItems     int            `json:"totalItems"`
	CompletedItems int            `json:"completedItems"`
	Percentage     float64        `json:"percentage"`
	BySubject      []SubjectShare `json:"bySubject"`
}

// Subjects sums totalPages and completedPages across all homework items.
// Every percentage is guarded against an empty denominator.
func Subjects(subjects []model.Subject) SubjectProgress {
	progress := SubjectProgress{BySubject: make([]SubjectShare, 0, len(subjects))}

	for _, subject := range subjects {
		subjectTotal := 0
		subjectCompleted := 0
		for _, hw := range subject.Homework {
			subjectTotal += hw.TotalPages
			subjectCompleted += hw.CompletedPages
		}
		progress.TotalItems += subjectTotal
		progress.CompletedItems += subjectCompleted

		share := SubjectShare{ID: subject.ID, Name: subject.Name, Color: subject.Color}
		if subjectTotal > 0 {
			share.Percentage = float64(subjectCompleted) / float64(subjectTotal) * 100
		}
		progress.BySubject = append(progress.BySubject, share)
	}

	if progress.TotalItems > 0 {
		progress.Percentage = float64(progress.CompletedItems) / float64(progress.TotalItems) * 100
	}
	return progress
}
