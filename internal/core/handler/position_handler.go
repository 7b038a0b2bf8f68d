package handler

import (
	"context"
	"net/http"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/usecase"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type PositionHandler struct {
	usecase usecase.PositionUsecase
	log     logger.Logger
}

type OpenPositionRequest struct {
	PoolID uuid.UUID `json:"pool_id"`
	Amount string    `json:"amount"`
}

func NewPositionHandler(usecase usecase.PositionUsecase, log logger.Logger) *PositionHandler {
	return &PositionHandler{usecase: usecase, log: log}
}

// RegisterRoutes mounts the position routes; all of them act for the caller.
func (h *PositionHandler) RegisterRoutes(router *mux.Router, identity mux.MiddlewareFunc) {
	router.Handle("/api/v1/positions", identity(http.HandlerFunc(h.ListPositions))).Methods(http.MethodGet)
	router.Handle("/api/v1/positions", identity(http.HandlerFunc(h.OpenPosition))).Methods(http.MethodPost)
	router.Handle("/api/v1/positions/{id}", identity(http.HandlerFunc(h.GetPosition))).Methods(http.MethodGet)
	router.Handle("/api/v1/positions/{id}", identity(http.HandlerFunc(h.ClosePosition))).Methods(http.MethodDelete)
	router.Handle("/api/v1/positions/{id}/increase", identity(http.HandlerFunc(h.IncreasePosition))).Methods(http.MethodPost)
	router.Handle("/api/v1/positions/{id}/decrease", identity(http.HandlerFunc(h.DecreasePosition))).Methods(http.MethodPost)
}

func (h *PositionHandler) ListPositions(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	positions, err := h.usecase.ListPositions(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, positions)
}

func (h *PositionHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}
	positionID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	position, err := h.usecase.GetPosition(r.Context(), userID, positionID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, position)
}

func (h *PositionHandler) OpenPosition(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req OpenPositionRequest
	if err := decodeRequest(w, r, &req); err != nil {
		h.log.Warn("Failed to decode request body", logger.ErrorField("error", err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PoolID == uuid.Nil {
		respondWithError(w, http.StatusBadRequest, "pool_id is required")
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.log.Warn("Invalid amount", logger.StringField("amount", req.Amount), logger.ErrorField("error", err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	change, err := withRetry(r.Context(), h.log, "open_position", func() (*models.PositionChange, error) {
		return h.usecase.OpenPosition(r.Context(), userID, req.PoolID, amount)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, change)
}

func (h *PositionHandler) IncreasePosition(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, "increase_position", h.usecase.IncreasePosition)
}

func (h *PositionHandler) DecreasePosition(w http.ResponseWriter, r *http.Request) {
	h.adjust(w, r, "decrease_position", h.usecase.DecreasePosition)
}

func (h *PositionHandler) ClosePosition(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}
	positionID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	change, err := withRetry(r.Context(), h.log, "close_position", func() (*models.PositionChange, error) {
		return h.usecase.ClosePosition(r.Context(), userID, positionID)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, change)
}

type adjustFunc func(ctx context.Context, userID, positionID uuid.UUID, delta decimal.Decimal) (*models.PositionChange, error)

func (h *PositionHandler) adjust(w http.ResponseWriter, r *http.Request, op string, apply adjustFunc) {
	userID, err := callerID(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}
	positionID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req AmountRequest
	if err := decodeRequest(w, r, &req); err != nil {
		h.log.Warn("Failed to decode request body", logger.ErrorField("error", err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	delta, err := parseAmount(req.Amount)
	if err != nil {
		h.log.Warn("Invalid amount", logger.StringField("amount", req.Amount), logger.ErrorField("error", err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	change, err := withRetry(r.Context(), h.log, op, func() (*models.PositionChange, error) {
		return apply(r.Context(), userID, positionID, delta)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, change)
}
