package http

import (
	"net/http"

	"github.com/remindwell/storefront/internal/domain"
	"go.uber.org/zap"
)

type ConfiguratorHandler struct {
	logger  *zap.Logger
	maxBody int64
}

func NewConfiguratorHandler(logger *zap.Logger, maxBody int64) *ConfiguratorHandler {
	return &ConfiguratorHandler{logger: logger, maxBody: maxBody}
}

type OptionGroupDTO struct {
	Default string          `json:"default"`
	Options []domain.Option `json:"options"`
}

type ConfiguratorDTO struct {
	PillboxType  OptionGroupDTO `json:"pillbox_type"`
	DoseSchedule OptionGroupDTO `json:"dose_schedule"`
	LightOption  OptionGroupDTO `json:"light_option"`
	BasePrice    string         `json:"base_price"`
}

type QuoteRequestDTO struct {
	Configuration domain.Configuration `json:"configuration"`
}

type QuoteDTO struct {
	Configuration domain.Configuration `json:"configuration"`
	Labels        domain.Labels        `json:"labels"`
	UnitPrice     string               `json:"unit_price"`
}

func (h *ConfiguratorHandler) Options(w http.ResponseWriter, r *http.Request) {
	def := domain.DefaultConfiguration()
	respondJSON(w, h.logger, http.StatusOK, ConfiguratorDTO{
		PillboxType:  OptionGroupDTO{Default: string(def.PillboxType), Options: domain.PillboxTypeOptions()},
		DoseSchedule: OptionGroupDTO{Default: string(def.DoseSchedule), Options: domain.DoseScheduleOptions()},
		LightOption:  OptionGroupDTO{Default: string(def.LightOption), Options: domain.LightOptionOptions()},
		BasePrice:    domain.BasePrice.StringFixed(2),
	})
}

// Quote prices a configuration without touching the cart.
func (h *ConfiguratorHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequestDTO
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := req.Configuration.Validate(); err != nil {
		respondJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid configuration",
			Code:    "invalid_configuration",
			Details: err.Error(),
		})
		return
	}

	respondJSON(w, h.logger, http.StatusOK, QuoteDTO{
		Configuration: req.Configuration,
		Labels:        req.Configuration.Labels(),
		UnitPrice:     domain.Price(req.Configuration).StringFixed(2),
	})
}
