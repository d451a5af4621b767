package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/yaxyebile/admin/internal/infrastructure/backend"
	"github.com/yaxyebile/admin/internal/infrastructure/http/response"
)

// AuthHandler forwards auth requests to the backend. The gateway does not
// interpret auth payloads; credentials and tokens pass through untouched.
type AuthHandler struct {
	client *backend.Client
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(client *backend.Client, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{client: client, logger: logger}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req backend.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.client.Register(r.Context(), req)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, result)
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req backend.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	result, err := h.client.Login(r.Context(), req)
	if err != nil {
		h.writeAuthError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// writeAuthError forwards the backend's own status for rejected
// credentials, so a 401 stays a 401 instead of becoming a 502
func (h *AuthHandler) writeAuthError(w http.ResponseWriter, err error) {
	var httpErr *backend.HTTPError
	if errors.As(err, &httpErr) && httpErr.Status >= 400 && httpErr.Status < 500 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpErr.Status)
		_, _ = w.Write([]byte(httpErr.Body))
		return
	}
	writeError(w, err)
}
