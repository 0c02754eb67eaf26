package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/duoplan/duoplan/internal/model"
	"github.com/duoplan/duoplan/internal/store"
)

type DayHandler struct {
	days   *store.DayStore
	logger *slog.Logger
}

func NewDayHandler(days *store.DayStore, logger *slog.Logger) *DayHandler {
	return &DayHandler{days: days, logger: logger}
}

// List returns every materialized day document in date order.
func (h *DayHandler) List(w http.ResponseWriter, r *http.Request) {
	days, err := h.days.All()
	if err != nil {
		h.logger.Error("list days", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list days")
		return
	}
	if days == nil {
		days = []model.DayData{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": days})
}

// Get materializes and returns one day.
func (h *DayHandler) Get(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	day, err := h.days.GetOrCreate(date)
	if err != nil {
		h.logger.Error("get day", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get day")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": day})
}

// Put overwrites one day document wholesale.
func (h *DayHandler) Put(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	var body model.DayData
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	day, err := h.days.Put(date, body)
	if err != nil {
		h.logger.Error("put day", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save day")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": day})
}

// userParam resolves the ?userId query value, defaulting to user1 as the
// read APIs always have a subject user.
func userParam(r *http.Request) (model.UserID, bool) {
	userID := model.UserID(r.URL.Query().Get("userId"))
	if userID == "" {
		return model.User1, true
	}
	return userID, userID.Valid()
}

// GetSchedule returns one user's schedule for a day.
func (h *DayHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	userID, ok := userParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}
	day, err := h.days.GetOrCreate(date)
	if err != nil {
		h.logger.Error("get schedule", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get schedule")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": day.ForUser(userID).Schedule})
}

type scheduleUpdateRequest struct {
	UserID   model.UserID      `json:"userId" validate:"required,oneof=user1 user2"`
	Schedule []model.TimeBlock `json:"schedule" validate:"required"`
}

// PutSchedule replaces one user's schedule array for a day.
func (h *DayHandler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	var req scheduleUpdateRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing userId or schedule")
		return
	}
	day, err := h.days.UpdateSchedule(date, req.UserID, req.Schedule)
	if err != nil {
		h.logger.Error("put schedule", "date", date, "user", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save schedule")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": day.ForUser(req.UserID).Schedule})
}

// GetTasks returns one user's task list for a day.
func (h *DayHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	userID, ok := userParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}
	day, err := h.days.GetOrCreate(date)
	if err != nil {
		h.logger.Error("get tasks", "date", date, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get tasks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": day.ForUser(userID).Tasks})
}

type tasksUpdateRequest struct {
	UserID model.UserID `json:"userId" validate:"required,oneof=user1 user2"`
	Tasks  []model.Task `json:"tasks" validate:"required"`
}

// PutTasks replaces one user's task array for a day.
func (h *DayHandler) PutTasks(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	var req tasksUpdateRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing userId or tasks")
		return
	}
	day, err := h.days.UpdateTasks(date, req.UserID, req.Tasks)
	if err != nil {
		h.logger.Error("put tasks", "date", date, "user", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save tasks")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": day.ForUser(req.UserID).Tasks})
}

type applyTemplateRequest struct {
	UserID     model.UserID `json:"userId" validate:"required,oneof=user1 user2"`
	TemplateID string       `json:"templateId" validate:"required"`
}

// ApplyTemplate replaces one user's schedule with a template's blocks under
// fresh ids.
func (h *DayHandler) ApplyTemplate(w http.ResponseWriter, r *http.Request) {
	date, ok := dateParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	var req applyTemplateRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing userId or templateId")
		return
	}
	day, err := h.days.ApplyTemplate(date, req.UserID, req.TemplateID)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		h.logger.Error("apply template", "date", date, "template", req.TemplateID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to apply template")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"schedule": day.ForUser(req.UserID).Schedule})
}
