package handler

import (
	"log/slog"
	"net/http"

	"github.com/duoplan/duoplan/internal/model"
	"github.com/duoplan/duoplan/internal/store"
)

type UserHandler struct {
	users  *store.UserStore
	logger *slog.Logger
}

func NewUserHandler(users *store.UserStore, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		h.logger.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

type renameRequest struct {
	Name string `json:"name" validate:"required"`
}

// Rename changes one of the two display names. The pair itself is fixed.
func (h *UserHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := model.UserID(r.PathValue("id"))
	if !id.Valid() {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req renameRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing name")
		return
	}
	users, err := h.users.Rename(id, req.Name)
	if err != nil {
		h.logger.Error("rename user", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to rename user")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}
