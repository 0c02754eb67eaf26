package stats

import (
	"math"
	"testing"

	"github.com/duoplan/duoplan/internal/model"
)

func weekDay(date string, total, completed int) model.DayData {
	tasks := make([]model.Task, total)
	for i := range tasks {
		tasks[i] = model.Task{Completed: i < completed}
	}
	return model.DayData{Date: date, User1: model.UserDayData{Tasks: tasks}}
}

func TestDayProgress(t *testing.T) {
	if got := DayProgress(nil); got != 0 {
		t.Errorf("empty tasks progress = %f, want 0", got)
	}
	tasks := []model.Task{{Completed: true}, {Completed: false}, {Completed: true}, {Completed: false}}
	if got := DayProgress(tasks); math.Abs(got-50) > 0.001 {
		t.Errorf("progress = %f, want 50", got)
	}
}

func TestWeeklyComparisonOrdersByDate(t *testing.T) {
	days := []model.DayData{
		weekDay("2026-01-22", 2, 1),
		weekDay("2026-01-20", 2, 2),
		weekDay("2026-01-21", 2, 0),
	}
	series := WeeklyComparison(days, model.User1)
	if len(series) != 3 {
		t.Fatalf("len = %d, want 3", len(series))
	}
	wantDates := []string{"2026-01-20", "2026-01-21", "2026-01-22"}
	wantProgress := []float64{100, 0, 50}
	for i := range series {
		if series[i].Date != wantDates[i] {
			t.Errorf("series[%d].Date = %s, want %s", i, series[i].Date, wantDates[i])
		}
		if math.Abs(series[i].Progress-wantProgress[i]) > 0.001 {
			t.Errorf("series[%d].Progress = %f, want %f", i, series[i].Progress, wantProgress[i])
		}
	}
}

func TestWeeklyAverage(t *testing.T) {
	if got := WeeklyAverage(nil); got != 0 {
		t.Errorf("empty series average = %f, want 0", got)
	}
	series := []DailyProgress{{Progress: 100}, {Progress: 0}, {Progress: 50}}
	if got := WeeklyAverage(series); math.Abs(got-50) > 0.001 {
		t.Errorf("average = %f, want 50", got)
	}
}

func TestWeekDates(t *testing.T) {
	// 2026-01-21 is a Wednesday; its week starts Monday 2026-01-19.
	dates, err := WeekDates("2026-01-21")
	if err != nil {
		t.Fatalf("week dates: %v", err)
	}
	if len(dates) != 7 {
		t.Fatalf("len = %d, want 7", len(dates))
	}
	if dates[0] != "2026-01-19" {
		t.Errorf("week start = %s, want 2026-01-19", dates[0])
	}
	if dates[6] != "2026-01-25" {
		t.Errorf("week end = %s, want 2026-01-25", dates[6])
	}
}

func TestWeekDatesOnMonday(t *testing.T) {
	dates, err := WeekDates("2026-01-19")
	if err != nil {
		t.Fatalf("week dates: %v", err)
	}
	if dates[0] != "2026-01-19" {
		t.Errorf("monday should start its own week, got %s", dates[0])
	}
}

func TestFilterDates(t *testing.T) {
	days := []model.DayData{
		weekDay("2026-01-25", 1, 0),
		weekDay("2026-01-19", 1, 1),
		weekDay("2026-02-01", 1, 1),
	}
	week, _ := WeekDates("2026-01-21")
	kept := FilterDates(days, week)
	if len(kept) != 2 {
		t.Fatalf("len = %d, want 2", len(kept))
	}
	if kept[0].Date != "2026-01-19" || kept[1].Date != "2026-01-25" {
		t.Errorf("kept = %s, %s; want 2026-01-19, 2026-01-25", kept[0].Date, kept[1].Date)
	}
}
