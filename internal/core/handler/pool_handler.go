package handler

import (
	"net/http"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/usecase"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PoolHandler struct {
	usecase usecase.PoolUsecase
	log     logger.Logger
}

type ConditionsRequest struct {
	MinAmount string `json:"min_amount"`
	MaxAmount string `json:"max_amount"`
}

type PoolRequest struct {
	Name         string    `json:"name"`
	ConditionsID uuid.UUID `json:"conditions_id"`
}

type RenamePoolRequest struct {
	Name string `json:"name"`
}

func NewPoolHandler(usecase usecase.PoolUsecase, log logger.Logger) *PoolHandler {
	return &PoolHandler{usecase: usecase, log: log}
}

// RegisterRoutes mounts the conditions and pool routes, all behind admin.
func (h *PoolHandler) RegisterRoutes(router *mux.Router, admin mux.MiddlewareFunc) {
	router.Handle("/api/v1/conditions", admin(http.HandlerFunc(h.ListConditions))).Methods(http.MethodGet)
	router.Handle("/api/v1/conditions", admin(http.HandlerFunc(h.CreateConditions))).Methods(http.MethodPost)
	router.Handle("/api/v1/conditions/{id}", admin(http.HandlerFunc(h.GetConditions))).Methods(http.MethodGet)
	router.Handle("/api/v1/conditions/{id}", admin(http.HandlerFunc(h.DeleteConditions))).Methods(http.MethodDelete)

	router.Handle("/api/v1/pools", admin(http.HandlerFunc(h.ListPools))).Methods(http.MethodGet)
	router.Handle("/api/v1/pools", admin(http.HandlerFunc(h.CreatePool))).Methods(http.MethodPost)
	router.Handle("/api/v1/pools/{id}", admin(http.HandlerFunc(h.GetPool))).Methods(http.MethodGet)
	router.Handle("/api/v1/pools/{id}", admin(http.HandlerFunc(h.RenamePool))).Methods(http.MethodPatch)
	router.Handle("/api/v1/pools/{id}", admin(http.HandlerFunc(h.DeletePool))).Methods(http.MethodDelete)
}

func (h *PoolHandler) ListConditions(w http.ResponseWriter, r *http.Request) {
	list, err := h.usecase.ListConditions(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, list)
}

func (h *PoolHandler) CreateConditions(w http.ResponseWriter, r *http.Request) {
	var req ConditionsRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	min, err := parseAmount(req.MinAmount)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "min_amount: "+err.Error())
		return
	}
	max, err := parseAmount(req.MaxAmount)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "max_amount: "+err.Error())
		return
	}

	conditions, err := withRetry(r.Context(), h.log, "create_conditions", func() (*models.PoolConditions, error) {
		return h.usecase.CreateConditions(r.Context(), min, max)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, conditions)
}

func (h *PoolHandler) GetConditions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	conditions, err := h.usecase.GetConditions(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, conditions)
}

func (h *PoolHandler) DeleteConditions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := withRetry(r.Context(), h.log, "delete_conditions", func() (*models.CascadeResult, error) {
		return h.usecase.DeleteConditions(r.Context(), id)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

func (h *PoolHandler) ListPools(w http.ResponseWriter, r *http.Request) {
	pools, err := h.usecase.ListPools(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pools)
}

func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var req PoolRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ConditionsID == uuid.Nil {
		respondWithError(w, http.StatusBadRequest, "conditions_id is required")
		return
	}

	pool, err := withRetry(r.Context(), h.log, "create_pool", func() (*models.StakingPool, error) {
		return h.usecase.CreatePool(r.Context(), req.Name, req.ConditionsID)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, pool)
}

func (h *PoolHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	pool, err := h.usecase.GetPool(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pool)
}

func (h *PoolHandler) RenamePool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req RenamePoolRequest
	if err := decodeRequest(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	pool, err := withRetry(r.Context(), h.log, "rename_pool", func() (*models.StakingPool, error) {
		return h.usecase.RenamePool(r.Context(), id, req.Name)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, pool)
}

func (h *PoolHandler) DeletePool(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := withRetry(r.Context(), h.log, "delete_pool", func() (*models.CascadeResult, error) {
		return h.usecase.DeletePool(r.Context(), id)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
