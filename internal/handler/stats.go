package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/duoplan/duoplan/internal/model"
	"github.com/duoplan/duoplan/internal/stats"
	"github.com/duoplan/duoplan/internal/store"
)

// StatsHandler serves the derived read-only views: calendar statuses,
// vacation countdown, homework progress, and the weekly comparison.
type StatsHandler struct {
	days     *store.DayStore
	settings *store.SettingsStore
	logger   *slog.Logger

	// today is swappable in tests.
	today func() string
}

func NewStatsHandler(days *store.DayStore, settings *store.SettingsStore, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{days: days, settings: settings, logger: logger, today: stats.Today}
}

type calendarDay struct {
	Date  string          `json:"date"`
	User1 stats.DayStatus `json:"user1"`
	User2 stats.DayStatus `json:"user2"`
}

// Calendar classifies every planned day of a month for both users. Days
// without a document simply do not appear; the client renders those as
// unplanned.
func (h *StatsHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month")
		return
	}

	days, err := h.days.Month(year, month)
	if err != nil {
		h.logger.Error("calendar stats", "year", year, "month", month, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load days")
		return
	}

	out := make([]calendarDay, 0, len(days))
	for i := range days {
		out = append(out, calendarDay{
			Date:  days[i].Date,
			User1: stats.ForDay(&days[i], model.User1),
			User2: stats.ForDay(&days[i], model.User2),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": out})
}

type examView struct {
	model.ExamCountdown
	DaysLeft int `json:"daysLeft"`
}

// Vacation returns the countdown view: elapsed share of the vacation window
// plus the upcoming exams with days remaining.
func (h *StatsHandler) Vacation(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		h.logger.Error("vacation stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}

	today := h.today()
	progress, err := stats.Vacation(settings.Vacation.StartDate, settings.Vacation.EndDate, today)
	if err != nil {
		h.logger.Error("vacation stats", "error", err)
		writeError(w, http.StatusInternalServerError, "invalid vacation dates")
		return
	}

	upcoming := stats.UpcomingExams(settings.Exams, today)
	exams := make([]examView, 0, len(upcoming))
	for _, e := range upcoming {
		left, err := stats.ExamDaysLeft(e.Date, today)
		if err != nil {
			continue
		}
		exams = append(exams, examView{ExamCountdown: e, DaysLeft: left})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"vacation": settings.Vacation,
		"progress": progress,
		"exams":    exams,
	})
}

// Homework returns page-sum progress per subject and overall.
func (h *StatsHandler) Homework(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		h.logger.Error("homework stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"progress": stats.Subjects(settings.Subjects)})
}

type comparisonSide struct {
	Today   float64               `json:"today"`
	Week    []stats.DailyProgress `json:"week"`
	Average float64               `json:"average"`
}

// Comparison builds the head-to-head view for the week containing ?date
// (today when absent): per-day completion series and the weekly mean for
// both users.
func (h *StatsHandler) Comparison(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.today()
	}
	if !dateParamRegexp.MatchString(date) {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	week, err := stats.WeekDates(date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}

	all, err := h.days.All()
	if err != nil {
		h.logger.Error("comparison stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load days")
		return
	}
	days := stats.FilterDates(all, week)

	side := func(userID model.UserID) comparisonSide {
		series := stats.WeeklyComparison(days, userID)
		today := 0.0
		for _, day := range days {
			if day.Date == date {
				today = stats.DayProgress(day.ForUser(userID).Tasks)
			}
		}
		return comparisonSide{Today: today, Week: series, Average: stats.WeeklyAverage(series)}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":  date,
		"week":  week,
		"user1": side(model.User1),
		"user2": side(model.User2),
	})
}
