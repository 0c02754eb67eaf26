package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/duoplan/duoplan/internal/model"
	"github.com/duoplan/duoplan/internal/store"
)

type TemplateHandler struct {
	templates *store.TemplateStore
	logger    *slog.Logger
}

func NewTemplateHandler(templates *store.TemplateStore, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, logger: logger}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List()
	if err != nil {
		h.logger.Error("list templates", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

type templateRequest struct {
	Name      string            `json:"name" validate:"required"`
	Blocks    []model.TimeBlock `json:"blocks"`
	IsDefault bool              `json:"isDefault"`
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing template name")
		return
	}
	created, err := h.templates.Create(model.ScheduleTemplate{
		Name:      req.Name,
		Blocks:    req.Blocks,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		h.logger.Error("create template", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create template")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"template": created})
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req templateRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing template name")
		return
	}
	tmpl := model.ScheduleTemplate{
		ID:        id,
		Name:      req.Name,
		Blocks:    req.Blocks,
		IsDefault: req.IsDefault,
	}
	err := h.templates.Update(tmpl)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		h.logger.Error("update template", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update template")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"template": tmpl})
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.templates.Delete(id); err != nil {
		h.logger.Error("delete template", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete template")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
