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

type WalletHandler struct {
	usecase usecase.WalletUsecase
	log     logger.Logger
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

func NewWalletHandler(usecase usecase.WalletUsecase, log logger.Logger) *WalletHandler {
	return &WalletHandler{usecase: usecase, log: log}
}

// RegisterRoutes mounts the wallet routes. identity guards the routes acting
// on the caller's own wallet, admin the ones acting on any user's.
func (h *WalletHandler) RegisterRoutes(router *mux.Router, identity, admin mux.MiddlewareFunc) {
	router.Handle("/api/v1/users/{user_id}/wallet", admin(http.HandlerFunc(h.EnsureWallet))).Methods(http.MethodPost)
	router.Handle("/api/v1/wallets", admin(http.HandlerFunc(h.ListWallets))).Methods(http.MethodGet)
	router.Handle("/api/v1/wallets/{user_id}", admin(http.HandlerFunc(h.GetUserWallet))).Methods(http.MethodGet)

	router.Handle("/api/v1/wallet", identity(http.HandlerFunc(h.GetWallet))).Methods(http.MethodGet)
	router.Handle("/api/v1/wallet/holdings", identity(http.HandlerFunc(h.Holdings))).Methods(http.MethodGet)
	router.Handle("/api/v1/wallet/deposit", identity(http.HandlerFunc(h.Deposit))).Methods(http.MethodPost)
	router.Handle("/api/v1/wallet/withdraw", identity(http.HandlerFunc(h.Withdraw))).Methods(http.MethodPost)
}

func (h *WalletHandler) EnsureWallet(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	wallet, err := withRetry(r.Context(), h.log, "ensure_wallet", func() (*models.Wallet, error) {
		return h.usecase.EnsureWallet(r.Context(), userID)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, wallet)
}

func (h *WalletHandler) ListWallets(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.usecase.ListWallets(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, wallets)
}

func (h *WalletHandler) GetUserWallet(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "user_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondWallet(w, r, userID)
}

func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}
	h.respondWallet(w, r, userID)
}

func (h *WalletHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	holdings, err := h.usecase.Holdings(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, holdings)
}

func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.moveFunds(w, r, "deposit", h.usecase.Deposit)
}

func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.moveFunds(w, r, "withdraw", h.usecase.Withdraw)
}

type fundsFunc func(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*models.Wallet, error)

func (h *WalletHandler) moveFunds(w http.ResponseWriter, r *http.Request, op string, move fundsFunc) {
	userID, err := callerID(r)
	if err != nil {
		respondWithError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req AmountRequest
	if err := decodeRequest(w, r, &req); err != nil {
		h.log.Warn("Failed to decode request body", logger.ErrorField("error", err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		h.log.Warn("Invalid amount", logger.StringField("amount", req.Amount), logger.ErrorField("error", err))
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	wallet, err := withRetry(r.Context(), h.log, op, func() (*models.Wallet, error) {
		return move(r.Context(), userID, amount)
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	h.log.Info("Wallet operation successful",
		logger.StringField("user_id", userID.String()),
		logger.StringField("operation", op),
		logger.DecimalField("amount", amount),
		logger.DecimalField("new_balance", wallet.Balance))
	respondWithJSON(w, http.StatusOK, wallet)
}

func (h *WalletHandler) respondWallet(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	wallet, err := h.usecase.GetWallet(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	respondWithJSON(w, http.StatusOK, wallet)
}
