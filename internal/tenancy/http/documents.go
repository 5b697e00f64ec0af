package http

import (
	"encoding/json"
	"net/http"

	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/pkg/api"
	"github.com/keyhold/keyhold/pkg/httpx"
)

type DocumentsHandler struct {
	DocumentService *service.DocumentService
}

func (h *DocumentsHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	var req api.DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	doc, err := h.DocumentService.AddDocument(r.Context(), id, r.PathValue("id"), service.DocumentInput{
		Name:     req.Name,
		Filename: req.Filename,
		FileType: req.FileType,
		FileSize: req.FileSize,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, renderDocument(doc))
}

func (h *DocumentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	docs, err := h.DocumentService.ListDocuments(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, renderDocuments(docs))
}

func (h *DocumentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.DocumentService.DeleteDocument(r.Context(), id, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DocumentsHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	var req api.ShareDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	if err := h.DocumentService.ShareDocument(r.Context(), id, r.PathValue("id"), req.UserIDs); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
