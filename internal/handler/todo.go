package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/duoplan/duoplan/internal/auth"
	"github.com/duoplan/duoplan/internal/model"
	"github.com/duoplan/duoplan/internal/store"
)

type TodoHandler struct {
	todos  *store.TodoStore
	logger *slog.Logger
}

func NewTodoHandler(todos *store.TodoStore, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{todos: todos, logger: logger}
}

func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.Get()
	if err != nil {
		h.logger.Error("get todos", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get todos")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"todos": todos})
}

// Put replaces the whole two-user ledger, for bulk edits like reordering.
func (h *TodoHandler) Put(w http.ResponseWriter, r *http.Request) {
	var ledger model.GlobalTodoList
	if err := json.NewDecoder(r.Body).Decode(&ledger); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := h.todos.Put(ledger); err != nil {
		h.logger.Error("put todos", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save todos")
		return
	}
	todos, err := h.todos.Get()
	if err != nil {
		h.logger.Error("reload todos", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get todos")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"todos": todos})
}

type todoCreateRequest struct {
	UserID          model.UserID `json:"userId" validate:"required,oneof=user1 user2"`
	Title           string       `json:"title" validate:"required"`
	Deadline        string       `json:"deadline"`
	LinkedBlockID   string       `json:"linkedBlockId"`
	LinkedSubjectID string       `json:"linkedSubjectId"`
}

// Add appends a todo to the given user's list. The acting user comes from
// the session, so cross-user assignments carry provenance automatically.
func (h *TodoHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req todoCreateRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing userId or title")
		return
	}
	actingUser := auth.UserID(r.Context())
	if actingUser == "" {
		actingUser = req.UserID
	}
	item, err := h.todos.Add(req.UserID, model.GlobalTodoItem{
		Title:           req.Title,
		Deadline:        req.Deadline,
		LinkedBlockID:   req.LinkedBlockID,
		LinkedSubjectID: req.LinkedSubjectID,
	}, actingUser)
	if err != nil {
		h.logger.Error("add todo", "user", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add todo")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"todo": item})
}

type todoUserRequest struct {
	UserID model.UserID `json:"userId" validate:"required,oneof=user1 user2"`
}

// Cycle advances a todo one step around pending, in progress, completed.
func (h *TodoHandler) Cycle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req todoUserRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}
	if err := h.todos.CycleStatus(req.UserID, id); err != nil {
		h.logger.Error("cycle todo", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to cycle todo")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

type todoLinkRequest struct {
	UserID  model.UserID `json:"userId" validate:"required,oneof=user1 user2"`
	BlockID string       `json:"blockId"`
}

// Link attaches the todo to a schedule block, or detaches it when blockId
// is empty.
func (h *TodoHandler) Link(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req todoLinkRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}
	if err := h.todos.Link(req.UserID, id, req.BlockID); err != nil {
		h.logger.Error("link todo", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to link todo")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	userID, ok := userParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid userId")
		return
	}
	if err := h.todos.Delete(userID, id); err != nil {
		h.logger.Error("delete todo", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
