package stats

import (
	"math"
	"testing"
	"time"

	"github.com/duoplan/duoplan/internal/model"
)

func TestVacationFirstDay(t *testing.T) {
	got, err := Vacation("2026-01-15", "2026-02-15", "2026-01-15")
	if err != nil {
		t.Fatalf("vacation: %v", err)
	}
	if got.TotalDays != 32 {
		t.Errorf("totalDays = %d, want 32", got.TotalDays)
	}
	if got.DaysPassed != 1 {
		t.Errorf("daysPassed = %d, want 1", got.DaysPassed)
	}
	if got.DaysRemaining != 31 {
		t.Errorf("daysRemaining = %d, want 31", got.DaysRemaining)
	}
	if math.Abs(got.Percentage-3.125) > 0.001 {
		t.Errorf("percentage = %f, want 3.125", got.Percentage)
	}
}

func TestVacationBeforeStart(t *testing.T) {
	got, err := Vacation("2026-01-15", "2026-02-15", "2026-01-10")
	if err != nil {
		t.Fatalf("vacation: %v", err)
	}
	if got.DaysPassed != 0 {
		t.Errorf("daysPassed = %d, want 0", got.DaysPassed)
	}
	if got.Percentage != 0 {
		t.Errorf("percentage = %f, want 0", got.Percentage)
	}
	if got.DaysRemaining != 32 {
		t.Errorf("daysRemaining = %d, want 32", got.DaysRemaining)
	}
}

func TestVacationAfterEnd(t *testing.T) {
	got, err := Vacation("2026-01-15", "2026-02-15", "2026-03-01")
	if err != nil {
		t.Fatalf("vacation: %v", err)
	}
	if got.Percentage != 100 {
		t.Errorf("percentage = %f, want 100 (clamped)", got.Percentage)
	}
	if got.DaysRemaining != 0 {
		t.Errorf("daysRemaining = %d, want 0", got.DaysRemaining)
	}
}

func TestVacationPercentageMonotonic(t *testing.T) {
	start, _ := time.Parse(dateLayout, "2026-01-15")
	end, _ := time.Parse(dateLayout, "2026-02-20")
	prev := -1.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		got, err := Vacation("2026-01-15", "2026-02-15", d.Format(dateLayout))
		if err != nil {
			t.Fatalf("vacation at %s: %v", d.Format(dateLayout), err)
		}
		if got.Percentage < prev {
			t.Fatalf("percentage decreased at %s: %f < %f", d.Format(dateLayout), got.Percentage, prev)
		}
		if got.Percentage > 100 {
			t.Fatalf("percentage exceeds 100 at %s: %f", d.Format(dateLayout), got.Percentage)
		}
		prev = got.Percentage
	}
	if prev != 100 {
		t.Errorf("final percentage = %f, want 100", prev)
	}
}

func TestVacationBadDate(t *testing.T) {
	if _, err := Vacation("not-a-date", "2026-02-15", "2026-01-15"); err == nil {
		t.Error("expected error for malformed start date")
	}
}

func TestExamDaysLeft(t *testing.T) {
	cases := []struct {
		exam, today string
		want        int
	}{
		{"2026-02-17", "2026-02-10", 7},
		{"2026-02-17", "2026-02-17", 0},
		{"2026-02-17", "2026-02-20", -3},
	}
	for _, c := range cases {
		got, err := ExamDaysLeft(c.exam, c.today)
		if err != nil {
			t.Fatalf("exam days left: %v", err)
		}
		if got != c.want {
			t.Errorf("ExamDaysLeft(%s, %s) = %d, want %d", c.exam, c.today, got, c.want)
		}
	}
}

func TestUpcomingExams(t *testing.T) {
	exams := []model.ExamCountdown{
		{ID: "b", Name: "Finals", Date: "2026-03-01"},
		{ID: "a", Name: "Placement", Date: "2026-02-17"},
		{ID: "c", Name: "Past", Date: "2026-01-01"},
	}
	got := UpcomingExams(exams, "2026-02-01")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("order = %s, %s; want a, b", got[0].ID, got[1].ID)
	}
}

func TestUpcomingExamsIncludesToday(t *testing.T) {
	exams := []model.ExamCountdown{{ID: "x", Date: "2026-02-17"}}
	if got := UpcomingExams(exams, "2026-02-17"); len(got) != 1 {
		t.Errorf("exam on today should remain upcoming, got %d entries", len(got))
	}
}

func TestSubjects(t *testing.T) {
	subjects := []model.Subject{
		{ID: "math", Name: "Math", Color: "#00f", Homework: []model.HomeworkItem{
			{ID: "m1", TotalPages: 60, CompletedPages: 30},
			{ID: "m2", TotalPages: 40, CompletedPages: 10},
		}},
		{ID: "art", Name: "Art", Color: "#f00", Homework: nil},
	}
	got := Subjects(subjects)
	if got.TotalItems != 100 || got.CompletedItems != 40 {
		t.Errorf("totals = %d/%d, want 40/100", got.CompletedItems, got.TotalItems)
	}
	if math.Abs(got.Percentage-40) > 0.001 {
		t.Errorf("percentage = %f, want 40", got.Percentage)
	}
	if len(got.BySubject) != 2 {
		t.Fatalf("bySubject len = %d, want 2", len(got.BySubject))
	}
	if math.Abs(got.BySubject[0].Percentage-40) > 0.001 {
		t.Errorf("math percentage = %f, want 40", got.BySubject[0].Percentage)
	}
	if got.BySubject[1].Percentage != 0 {
		t.Errorf("empty subject percentage = %f, want 0", got.BySubject[1].Percentage)
	}
}

func TestSubjectsEmpty(t *testing.T) {
	got := Subjects(nil)
	if got.Percentage != 0 || got.TotalItems != 0 {
		t.Errorf("empty subjects should produce zero progress, got %+v", got)
	}
}
