package http

import (
	"errors"
	"net/http"

	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/pkg/api"
	"github.com/keyhold/keyhold/pkg/httpx"
	"github.com/keyhold/keyhold/pkg/slogx"
)

// writeServiceError maps the service error taxonomy onto HTTP statuses with
// stable error codes. Anything unmapped is a 500 and gets logged; expected
// failures never hit the error log.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{
			Error:            "invalid_credentials",
			ErrorDescription: "Invalid username or password",
		})
	case errors.Is(err, service.ErrUnauthorized):
		httpx.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Authentication required",
		})
	case errors.Is(err, service.ErrSelfAction):
		httpx.WriteJSON(w, http.StatusForbidden, api.ErrorResponse{
			Error:            "self_action",
			ErrorDescription: "You cannot perform this action on your own account",
		})
	case errors.Is(err, service.ErrForbidden):
		httpx.WriteJSON(w, http.StatusForbidden, api.ErrorResponse{
			Error:            "forbidden",
			ErrorDescription: "You do not have permission to perform this action",
		})
	case errors.Is(err, service.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, api.ErrorResponse{
			Error:            "not_found",
			ErrorDescription: "The requested resource does not exist",
		})
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteJSON(w, http.StatusConflict, api.ErrorResponse{
			Error:            "username_taken",
			ErrorDescription: "Username already taken",
		})
	case errors.Is(err, service.ErrUserExists):
		httpx.WriteJSON(w, http.StatusConflict, api.ErrorResponse{
			Error:            "user_exists",
			ErrorDescription: "An account with this email already exists",
		})
	case errors.Is(err, service.ErrAlreadyMember):
		httpx.WriteJSON(w, http.StatusConflict, api.ErrorResponse{
			Error:            "already_member",
			ErrorDescription: "User is already a member of this property",
		})
	case errors.Is(err, service.ErrAlreadyAccepted):
		httpx.WriteJSON(w, http.StatusConflict, api.ErrorResponse{
			Error:            "invite_accepted",
			ErrorDescription: "This invitation has already been accepted",
		})
	case errors.Is(err, service.ErrInvalidState):
		httpx.WriteJSON(w, http.StatusConflict, api.ErrorResponse{
			Error:            "invalid_state",
			ErrorDescription: "Only pending invitations can be revoked",
		})
	case errors.Is(err, service.ErrExpired):
		httpx.WriteJSON(w, http.StatusGone, api.ErrorResponse{
			Error:            "invite_expired",
			ErrorDescription: "This invitation has expired",
		})
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, api.ErrorResponse{
			Error:            "server_error",
			ErrorDescription: "An internal error occurred",
		})
	}
}

// writeBadJSON is the shared response for undecodable request bodies.
func writeBadJSON(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusBadRequest, api.ErrorResponse{
		Error:            "invalid_request",
		ErrorDescription: "Invalid JSON body",
	})
}

// callerID pulls the authenticated user ID out of the request context. The
// authn middleware guarantees it for secured routes.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, api.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Authentication required",
		})
		return "", false
	}
	return id, true
}
