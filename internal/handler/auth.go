package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/duoplan/duoplan/internal/auth"
	"github.com/duoplan/duoplan/internal/middleware"
	"github.com/duoplan/duoplan/internal/model"
)

type AuthHandler struct {
	svc    *auth.Service
	logger *slog.Logger
}

func NewAuthHandler(svc *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(middleware.SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login issues a session for whichever user the password matches. With no
// password set anywhere the app is open and login lands on user1.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	userID, token, err := h.svc.Login(req.Password)
	if errors.Is(err, auth.ErrBadPassword) {
		writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}
	if err != nil {
		h.logger.Error("login", "error", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	setSessionCookie(w, token, int(auth.SessionTTL.Seconds()))
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "userId": userID})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := h.svc.Logout(token); err != nil {
			h.logger.Error("logout", "error", err)
			writeError(w, http.StatusInternalServerError, "logout failed")
			return
		}
	}
	setSessionCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Verify reports whether the request carries a live session, and as whom.
// With auth disabled every request counts as user1.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	enabled, err := h.svc.Enabled()
	if err != nil {
		h.logger.Error("verify", "error", err)
		writeError(w, http.StatusInternalServerError, "auth check failed")
		return
	}
	if !enabled {
		writeJSON(w, http.StatusOK, map[string]any{
			"authenticated": true,
			"userId":        model.User1,
			"authEnabled":   false,
		})
		return
	}

	userID, ok, err := h.svc.Verify(sessionToken(r))
	if err != nil {
		h.logger.Error("verify", "error", err)
		writeError(w, http.StatusInternalServerError, "auth check failed")
		return
	}
	resp := map[string]any{"authenticated": ok, "authEnabled": true}
	if ok {
		resp["userId"] = userID
	}
	writeJSON(w, http.StatusOK, resp)
}

// PasswordStatus reports which users have a password set.
func (h *AuthHandler) PasswordStatus(w http.ResponseWriter, r *http.Request) {
	user1, err := h.svc.HasPassword(model.User1)
	if err != nil {
		h.logger.Error("password status", "error", err)
		writeError(w, http.StatusInternalServerError, "auth check failed")
		return
	}
	user2, err := h.svc.HasPassword(model.User2)
	if err != nil {
		h.logger.Error("password status", "error", err)
		writeError(w, http.StatusInternalServerError, "auth check failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled": user1 || user2,
		"user1":   user1,
		"user2":   user2,
	})
}

type setPasswordRequest struct {
	UserID          model.UserID `json:"userId" validate:"required,oneof=user1 user2"`
	NewPassword     string       `json:"newPassword" validate:"required"`
	CurrentPassword string       `json:"currentPassword"`
}

func (h *AuthHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	var req setPasswordRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing userId or newPassword")
		return
	}

	err := h.svc.SetPassword(req.UserID, req.NewPassword, req.CurrentPassword, sessionToken(r))
	switch {
	case errors.Is(err, auth.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "password too short")
	case errors.Is(err, auth.ErrPasswordTaken):
		writeError(w, http.StatusConflict, "password already in use")
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "current password or session required")
	case err != nil:
		h.logger.Error("set password", "user", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to set password")
	default:
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

type removePasswordRequest struct {
	UserID          model.UserID `json:"userId" validate:"required,oneof=user1 user2"`
	CurrentPassword string       `json:"currentPassword"`
}

func (h *AuthHandler) RemovePassword(w http.ResponseWriter, r *http.Request) {
	var req removePasswordRequest
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "missing userId")
		return
	}

	err := h.svc.RemovePassword(req.UserID, req.CurrentPassword, sessionToken(r))
	if errors.Is(err, auth.ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, "current password or session required")
		return
	}
	if err != nil {
		h.logger.Error("remove password", "user", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove password")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
