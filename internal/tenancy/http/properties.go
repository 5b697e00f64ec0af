package http

import (
	"encoding/json"
	"net/http"

	"github.com/keyhold/keyhold/internal/tenancy/service"
	"github.com/keyhold/keyhold/pkg/api"
	"github.com/keyhold/keyhold/pkg/httpx"
)

type PropertiesHandler struct {
	PropertyService *service.PropertyService
}

func propertyInput(req api.PropertyRequest) service.PropertyInput {
	return service.PropertyInput{
		Name:         req.Name,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		County:       req.County,
		Postcode:     req.Postcode,
		PropertyType: req.PropertyType,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Description:  req.Description,
	}
}

func (h *PropertiesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	var req api.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	property, err := h.PropertyService.CreateProperty(r.Context(), id, propertyInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, renderProperty(property))
}

func (h *PropertiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	properties, err := h.PropertyService.ListProperties(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, renderProperties(properties))
}

func (h *PropertiesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	property, err := h.PropertyService.GetProperty(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, renderProperty(property))
}

func (h *PropertiesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	var req api.PropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadJSON(w)
		return
	}

	property, err := h.PropertyService.UpdateProperty(r.Context(), id, r.PathValue("id"), propertyInput(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, renderProperty(property))
}

func (h *PropertiesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.PropertyService.DeleteProperty(r.Context(), id, r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
