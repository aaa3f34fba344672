package handlers

import (
	"net/http"

	"go.uber.org/zap"

	userapp "github.com/tastebite/platform/internal/application/user"
)

// AdminHandlers serves the admin panel endpoints. Routes are mounted
// behind the admin role middleware.
type AdminHandlers struct {
	users  *userapp.Service
	logger *zap.Logger
}

// NewAdminHandlers creates admin API handlers.
func NewAdminHandlers(users *userapp.Service, logger *zap.Logger) *AdminHandlers {
	return &AdminHandlers{
		users:  users,
		logger: logger.Named("admin-handlers"),
	}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetUserActive handles PUT /admin/users/{id}/active.
func (h *AdminHandlers) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	var req setActiveRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	dto, err := h.users.SetUserActive(r.Context(), userID, req.Active)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": dto})
}
