package http

import (
	"encoding/json"
	"net/http"

	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/pkg/api"
	"github.com/keyhold/keyhold/pkg/httpx"
)

// InvitationsHandler serves the owner-facing invitation endpoints: mint,
// list, revoke.
type InvitationsHandler struct {
	InvitationService *service.InvitationService
}

func (h *InvitationsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	var req api.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	invitation, err := h.InvitationService.CreateInvitation(r.Context(), id, r.PathValue("id"), req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated,
		renderInvitation(invitation, h.InvitationService.InviteLink(invitation.Token)))
}

func (h *InvitationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	invitations, err := h.InvitationService.ListInvitations(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]api.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, renderInvitation(inv, h.InvitationService.InviteLink(inv.Token)))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func (h *InvitationsHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.InvitationService.RevokeInvitation(r.Context(), id, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// InvitesHandler serves the public token-facing endpoints. No session is
// required: possession of the token is the credential.
type InvitesHandler struct {
	InvitationService *service.InvitationService
}

func (h *InvitesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	preview, err := h.InvitationService.GetInvitationByToken(r.Context(), r.PathValue("token"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, api.InvitePreview{
		Email:     preview.Email,
		ExpiresAt: preview.ExpiresAt,
		Property:  renderPropertySummary(preview.Property),
	})
}

func (h *InvitesHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	var req api.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	user, err := h.InvitationService.AcceptInvitation(r.Context(), r.PathValue("token"), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, renderUser(user))
}
