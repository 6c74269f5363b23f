package handler

import (
	"encoding/json"
	"net/http"

	"formforge/internal/service"
	"formforge/internal/transport/rest/middleware"
)

// AIHandler handles AI form generation
type AIHandler struct {
	aiSvc *service.AIService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(aiSvc *service.AIService) *AIHandler {
	return &AIHandler{aiSvc: aiSvc}
}

// GenerateRequest is the request body for AI form generation
type GenerateRequest struct {
	Prompt   string `json:"prompt"`
	Username string `json:"username"`
}

// Generate handles POST /v1/ai/generate
func (h *AIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	form, err := h.aiSvc.GenerateForm(r.Context(), req.Prompt, userID, req.Username)
	if err != nil {
		if err == service.ErrAINotConfigured {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to generate AI form")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"formId": form.ID})
}
