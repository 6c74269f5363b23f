package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"formforge/internal/model"
	"formforge/internal/service"
)

// ResponseHandler handles submission and results endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Submit handles POST /v1/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	responseID, err := h.responseSvc.Submit(r.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrUserRequired:
			writeError(w, http.StatusBadRequest, err.Error())
		case service.ErrFormNotFound:
			writeError(w, http.StatusNotFound, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "could not submit response")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message":    "Response submitted successfully!",
		"responseId": responseID,
	})
}

// GetSingle handles GET /v1/responses/single/{responseId}
func (h *ResponseHandler) GetSingle(w http.ResponseWriter, r *http.Request) {
	responseID := mux.Vars(r)["responseId"]

	detail, err := h.responseSvc.GetDetail(r.Context(), responseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if detail == nil {
		writeError(w, http.StatusNotFound, "response not found")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// ListByForm handles GET /v1/responses/form/{formId}
func (h *ResponseHandler) ListByForm(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["formId"]

	responses, err := h.responseSvc.GetByForm(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}

// ListByUser handles GET /v1/responses/user/{userId}
func (h *ResponseHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	responses, err := h.responseSvc.GetByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"responses": responses})
}
