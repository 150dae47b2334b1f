package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/remindwell/storefront/internal/domain"
	"github.com/remindwell/storefront/internal/service"
	"go.uber.org/zap"
)

type CartHandler struct {
	service *service.CartService
	logger  *zap.Logger
	timeout time.Duration
	maxBody int64
}

func NewCartHandler(service *service.CartService, logger *zap.Logger, timeout time.Duration, maxBody int64) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
		timeout: timeout,
		maxBody: maxBody,
	}
}

type AddItemRequestDTO struct {
	Configuration domain.Configuration `json:"configuration"`
}

type CartItemDTO struct {
	Index         int                  `json:"index"`
	Configuration domain.Configuration `json:"configuration"`
	Labels        domain.Labels        `json:"labels"`
	Quantity      int                  `json:"quantity"`
	UnitPrice     string               `json:"unit_price"`
	LineTotal     string               `json:"line_total"`
}

type CartDTO struct {
	Items      []CartItemDTO `json:"items"`
	EntryCount int           `json:"entry_count"`
	ItemCount  int           `json:"item_count"`
	Subtotal   string        `json:"subtotal"`
	JustAdded  bool          `json:"just_added"`
}

func convertCart(state *service.CartState) CartDTO {
	items := state.Cart.Items()
	dto := CartDTO{
		Items:      make([]CartItemDTO, len(items)),
		EntryCount: state.Cart.EntryCount(),
		ItemCount:  state.Cart.ItemCount(),
		Subtotal:   state.Cart.Subtotal().StringFixed(2),
		JustAdded:  state.JustAdded,
	}
	for i, item := range items {
		dto.Items[i] = CartItemDTO{
			Index:         i,
			Configuration: item.Configuration,
			Labels:        item.Configuration.Labels(),
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice.StringFixed(2),
			LineTotal:     item.LineTotal().StringFixed(2),
		}
	}
	return dto
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	state, err := h.service.GetCart(ctx, getSessionID(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, convertCart(state))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	state, err := h.service.AddItem(ctx, getSessionID(r.Context()), req.Configuration)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, convertCart(state))
}

func (h *CartHandler) IncrementQuantity(w http.ResponseWriter, r *http.Request) {
	h.changeQuantity(w, r, 1)
}

func (h *CartHandler) DecrementQuantity(w http.ResponseWriter, r *http.Request) {
	h.changeQuantity(w, r, -1)
}

func (h *CartHandler) changeQuantity(w http.ResponseWriter, r *http.Request, delta int) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	state, err := h.service.ChangeQuantity(ctx, getSessionID(r.Context()), index, delta)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, convertCart(state))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	index, ok := h.parseIndex(w, r)
	if !ok {
		return
	}

	state, err := h.service.RemoveItem(ctx, getSessionID(r.Context()), index)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, convertCart(state))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	state, err := h.service.ClearCart(ctx, getSessionID(r.Context()))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, convertCart(state))
}

// Checkout is shown in the cart panel but no payment backend exists.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	respondError(w, h.logger, http.StatusNotImplemented, "checkout_unavailable", "checkout is not available")
}

// parseIndex reads the {index} path segment. Integers too large for int
// address no entry and map to -1 so the service treats them as out of range.
func (h *CartHandler) parseIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if errors.Is(err, strconv.ErrRange) {
		return -1, true
	}
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_index", "index must be an integer")
		return 0, false
	}
	return index, true
}

func (h *CartHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidConfiguration):
		respondJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid configuration",
			Code:    "invalid_configuration",
			Details: err.Error(),
		})
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, h.logger, http.StatusGatewayTimeout, "timeout", "request timed out")
	default:
		h.logger.Error("cart request failed", zap.Error(err))
		respondError(w, h.logger, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
