package http

import (
	"encoding/json"
	"net/http"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/pkg/api"
	"github.com/keyhold/keyhold/pkg/httpx"
	"github.com/keyhold/keyhold/pkg/jwtx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, renderUser(user))
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	token, user, err := h.AuthService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	ttl := h.AuthService.SessionTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}

	httpx.WriteJSON(w, http.StatusOK, api.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(ttl.Seconds()),
		User:      renderUser(user),
	})
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.AuthService.Me(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, renderUser(user))
}
