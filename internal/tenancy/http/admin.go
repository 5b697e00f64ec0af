package http

import (
	"encoding/json"
	"net/http"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/pkg/api"
	"github.com/keyhold/keyhold/pkg/httpx"
)

type AdminHandler struct {
	AdminService *service.AdminService
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	users, err := h.AdminService.ListUsers(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, renderUsers(users))
}

func (h *AdminHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	var req api.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	user, err := h.AdminService.ChangeUserRole(r.Context(), id, r.PathValue("id"), domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, renderUser(user))
}

func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.AdminService.DeleteUser(r.Context(), id, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
