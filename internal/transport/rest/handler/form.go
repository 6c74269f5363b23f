package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"formforge/internal/model"
	"formforge/internal/service"
	"formforge/internal/transport/rest/middleware"
)

// FormHandler handles form and question endpoints
type FormHandler struct {
	formSvc     *service.FormService
	responseSvc *service.ResponseService
}

// NewFormHandler creates a new form handler
func NewFormHandler(formSvc *service.FormService, responseSvc *service.ResponseService) *FormHandler {
	return &FormHandler{
		formSvc:     formSvc,
		responseSvc: responseSvc,
	}
}

// CreateFormRequest is the request body for creating a form
type CreateFormRequest struct {
	Title     string           `json:"title"`
	Username  string           `json:"username"`
	Theme     string           `json:"theme"`
	Questions []model.Question `json:"questions"`
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateFormRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := &model.Form{
		Title:    req.Title,
		UserID:   userID,
		Username: req.Username,
		Theme:    req.Theme,
	}
	created, err := h.formSvc.Create(r.Context(), form, req.Questions)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Get handles GET /v1/forms/{id} — public so respondents can load the form
func (h *FormHandler) Get(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	populated, err := h.formSvc.GetPopulated(r.Context(), formID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if populated == nil {
		writeError(w, http.StatusNotFound, "form not found")
		return
	}

	writeJSON(w, http.StatusOK, populated)
}

// ListByUser handles GET /v1/forms/user/{userId}
func (h *FormHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	forms, err := h.formSvc.GetByUser(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"forms": forms})
}

// Delete handles DELETE /v1/forms/{id}
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	if err := h.formSvc.Delete(r.Context(), formID); err != nil {
		if err == service.ErrFormNotFound {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "form and all associated data deleted"})
}

// AddQuestion handles POST /v1/forms/{id}/questions
func (h *FormHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	var q model.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.formSvc.AddQuestion(r.Context(), formID, &q)
	if err != nil {
		if err == service.ErrFormNotFound {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// UpdateQuestion handles PUT /v1/forms/{formId}/questions/{questionId}
func (h *FormHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var q model.Question
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.formSvc.UpdateQuestion(r.Context(), vars["formId"], vars["questionId"], &q)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// RemoveQuestion handles DELETE /v1/forms/{formId}/questions/{questionId}
func (h *FormHandler) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.formSvc.RemoveQuestion(r.Context(), vars["formId"], vars["questionId"]); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "question deleted"})
}

// Scoreboard handles GET /v1/forms/{id}/scoreboard
func (h *FormHandler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	formID := mux.Vars(r)["id"]

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.responseSvc.Scoreboard(r.Context(), formID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"scoreboard": entries})
}
