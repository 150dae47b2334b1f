package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/remindwell/storefront/internal/contact"
	"go.uber.org/zap"
)

type ContactHandler struct {
	service *contact.Service
	logger  *zap.Logger
	timeout time.Duration
	maxBody int64
}

func NewContactHandler(service *contact.Service, logger *zap.Logger, timeout time.Duration, maxBody int64) *ContactHandler {
	return &ContactHandler{
		service: service,
		logger:  logger,
		timeout: timeout,
		maxBody: maxBody,
	}
}

type ContactRequestDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type ContactResponseDTO struct {
	ID         string    `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ContactRequestDTO
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	msg, err := h.service.Submit(ctx, req.Name, req.Email, req.Message)
	if err != nil {
		if errors.Is(err, contact.ErrInvalidMessage) {
			respondJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
				Error:   "invalid contact message",
				Code:    "invalid_contact",
				Details: err.Error(),
			})
			return
		}
		respondError(w, h.logger, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, h.logger, http.StatusAccepted, ContactResponseDTO{
		ID:         msg.ID,
		ReceivedAt: msg.ReceivedAt,
	})
}
