package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Nzyazin/stakeledger/internal/core/handler"
	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/middleware"
	"github.com/Nzyazin/stakeledger/internal/core/models"
	"github.com/Nzyazin/stakeledger/internal/core/repository/memory"
	"github.com/Nzyazin/stakeledger/internal/core/usecase"
	mockusecase "github.com/Nzyazin/stakeledger/internal/mock/mock_usecase"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var adminID = uuid.MustParse("7d3f6d0e-6f7b-4c3e-9a57-2f1c8e4b5a10")

func newRouter() *mux.Router {
	log := logger.NewNop()
	ledger := usecase.NewLedger(memory.NewMemoryLedgerRepo(log), log, nil)
	identity := middleware.Identity(log)
	admin := middleware.RequireAdmin(log, []uuid.UUID{adminID})

	router := mux.NewRouter()
	handler.NewWalletHandler(ledger, log).RegisterRoutes(router, identity, admin)
	handler.NewPositionHandler(ledger, log).RegisterRoutes(router, identity)
	handler.NewPoolHandler(ledger, log).RegisterRoutes(router, admin)
	return router
}

func do(t *testing.T, router http.Handler, method, path string, userID uuid.UUID, body interface{}, out interface{}) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != uuid.Nil {
		req.Header.Set(middleware.UserIDHeader, userID.String())
	}
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
	}
	return rec.Code
}

func TestLedgerOverHTTP(t *testing.T) {
	router := newRouter()
	userID := uuid.New()

	var wallet models.Wallet
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/v1/users/"+userID.String()+"/wallet", adminID, nil, &wallet))
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/v1/wallet/deposit", userID,
		handler.AmountRequest{Amount: "1000"}, &wallet))
	assert.True(t, wallet.Balance.Equal(decimal.NewFromInt(1000)))

	var conditions models.PoolConditions
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/conditions", adminID,
		handler.ConditionsRequest{MinAmount: "100", MaxAmount: "500"}, &conditions))
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/api/v1/conditions", adminID,
		handler.ConditionsRequest{MinAmount: "500", MaxAmount: "100"}, nil))
	assert.Equal(t, http.StatusConflict, do(t, router, http.MethodPost, "/api/v1/conditions", adminID,
		handler.ConditionsRequest{MinAmount: "100", MaxAmount: "500"}, nil))

	var pool models.StakingPool
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/pools", adminID,
		handler.PoolRequest{Name: "Example Pool 1", ConditionsID: conditions.ID}, &pool))

	var change models.PositionChange
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/positions", userID,
		handler.OpenPositionRequest{PoolID: pool.ID, Amount: "300"}, &change))
	assert.True(t, change.Wallet.Balance.Equal(decimal.NewFromInt(700)))
	positionPath := "/api/v1/positions/" + change.Position.ID.String()

	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, positionPath+"/increase", userID,
		handler.AmountRequest{Amount: "150"}, &change))
	assert.True(t, change.Position.Amount.Equal(decimal.NewFromInt(450)))

	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, positionPath+"/decrease", userID,
		handler.AmountRequest{Amount: "500"}, nil))
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, positionPath, uuid.New(), nil, nil))

	var holdings models.Holdings
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/v1/wallet/holdings", userID, nil, &holdings))
	assert.True(t, holdings.Total.Equal(decimal.NewFromInt(1000)))
	assert.Len(t, holdings.Positions, 1)

	require.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, positionPath, userID, nil, &change))
	assert.True(t, change.Wallet.Balance.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, positionPath, userID, nil, nil))

	var renamed models.StakingPool
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPatch, "/api/v1/pools/"+pool.ID.String(), adminID,
		handler.RenamePoolRequest{Name: "Renamed"}, &renamed))
	assert.Equal(t, "Renamed", renamed.Name)

	var result models.CascadeResult
	require.Equal(t, http.StatusOK, do(t, router, http.MethodDelete, "/api/v1/conditions/"+conditions.ID.String(), adminID, nil, &result))
	assert.Equal(t, 1, result.PoolsDeleted)
}

func TestWalletRoutes_RequireIdentity(t *testing.T) {
	router := newRouter()

	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodGet, "/api/v1/wallet", uuid.Nil, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, do(t, router, http.MethodPost, "/api/v1/positions", uuid.Nil,
		handler.OpenPositionRequest{PoolID: uuid.New(), Amount: "1"}, nil))
	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/v1/wallet", uuid.New(), nil, nil))
}

func TestAdminRoutes_RequireAdmin(t *testing.T) {
	router := newRouter()
	userID := uuid.New()
	pool := "/api/v1/pools/" + uuid.NewString()
	conditions := handler.ConditionsRequest{MinAmount: "100", MaxAmount: "500"}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{name: "create conditions", method: http.MethodPost, path: "/api/v1/conditions", body: conditions},
		{name: "list conditions", method: http.MethodGet, path: "/api/v1/conditions"},
		{name: "create pool", method: http.MethodPost, path: "/api/v1/pools", body: handler.PoolRequest{Name: "p", ConditionsID: uuid.New()}},
		{name: "rename pool", method: http.MethodPatch, path: pool, body: handler.RenamePoolRequest{Name: "x"}},
		{name: "delete pool", method: http.MethodDelete, path: pool},
		{name: "list wallets", method: http.MethodGet, path: "/api/v1/wallets"},
		{name: "user wallet", method: http.MethodGet, path: "/api/v1/wallets/" + userID.String()},
		{name: "provision wallet", method: http.MethodPost, path: "/api/v1/users/" + userID.String() + "/wallet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, do(t, router, tt.method, tt.path, uuid.Nil, tt.body, nil))
			assert.Equal(t, http.StatusForbidden, do(t, router, tt.method, tt.path, userID, tt.body, nil))
		})
	}

	var list []models.Wallet
	require.Equal(t, http.StatusOK, do(t, router, http.MethodGet, "/api/v1/wallets", adminID, nil, &list))
	assert.Empty(t, list)
}

func TestDeposit_InvalidAmount(t *testing.T) {
	router := newRouter()
	userID := uuid.New()
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/v1/users/"+userID.String()+"/wallet", adminID, nil, nil))

	for _, amount := range []string{"", "abc", "-5", "1.12345678901", "0"} {
		t.Run(fmt.Sprintf("%q", amount), func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/api/v1/wallet/deposit", userID,
				handler.AmountRequest{Amount: amount}, nil))
		})
	}
}

func TestDeposit_PastColumnLimit(t *testing.T) {
	router := newRouter()
	userID := uuid.New()
	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/v1/users/"+userID.String()+"/wallet", adminID, nil, nil))

	require.Equal(t, http.StatusOK, do(t, router, http.MethodPost, "/api/v1/wallet/deposit", userID,
		handler.AmountRequest{Amount: "99999999999999999999"}, nil))
	assert.Equal(t, http.StatusBadRequest, do(t, router, http.MethodPost, "/api/v1/wallet/deposit", userID,
		handler.AmountRequest{Amount: "1"}, nil))
}

// decimalEq matches by numeric value; 5 and 5.0 differ under reflect.DeepEqual.
type decimalEq string

func (m decimalEq) Matches(x interface{}) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(decimal.RequireFromString(string(m)))
}

func (m decimalEq) String() string { return "is decimal " + string(m) }

func newPositionRouter(t *testing.T) (*mux.Router, *mockusecase.MockPositionUsecase) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockUsecase := mockusecase.NewMockPositionUsecase(ctrl)
	log := logger.NewNop()

	router := mux.NewRouter()
	handler.NewPositionHandler(mockUsecase, log).RegisterRoutes(router, middleware.Identity(log))
	return router, mockUsecase
}

func TestPositionHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		calls    int
		wantCode int
	}{
		{name: "validation", err: usecase.ErrAmountOutOfRange, calls: 1, wantCode: http.StatusBadRequest},
		{name: "insufficient funds", err: usecase.ErrInsufficientFunds, calls: 1, wantCode: http.StatusBadRequest},
		{name: "not found", err: usecase.ErrPositionNotFound, calls: 1, wantCode: http.StatusNotFound},
		{name: "conflict is retried", err: usecase.ErrConflict, calls: 3, wantCode: http.StatusConflict},
		{name: "consistency", err: fmt.Errorf("%w: disk on fire", usecase.ErrConsistency), calls: 1, wantCode: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), calls: 1, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockUsecase := newPositionRouter(t)
			userID, positionID := uuid.New(), uuid.New()

			mockUsecase.EXPECT().
				IncreasePosition(gomock.Any(), userID, positionID, decimalEq("5")).
				Return(nil, tt.err).
				Times(tt.calls)

			code := do(t, router, http.MethodPost, "/api/v1/positions/"+positionID.String()+"/increase", userID,
				handler.AmountRequest{Amount: "5"}, nil)

			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestPositionHandler_RetrySucceeds(t *testing.T) {
	router, mockUsecase := newPositionRouter(t)
	userID, poolID := uuid.New(), uuid.New()
	amount := decimal.RequireFromString("250.5")

	want := &models.PositionChange{
		Operation: models.PositionOpen,
		Delta:     amount,
		Position:  models.Position{ID: uuid.New(), UserID: userID, PoolID: poolID, Amount: amount},
	}

	gomock.InOrder(
		mockUsecase.EXPECT().
			OpenPosition(gomock.Any(), userID, poolID, decimalEq("250.5")).
			Return(nil, usecase.ErrConflict),
		mockUsecase.EXPECT().
			OpenPosition(gomock.Any(), userID, poolID, decimalEq("250.5")).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, _ decimal.Decimal) (*models.PositionChange, error) {
				return want, nil
			}),
	)

	var got models.PositionChange
	code := do(t, router, http.MethodPost, "/api/v1/positions", userID,
		handler.OpenPositionRequest{PoolID: poolID, Amount: "250,5"}, &got)

	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, want.Position.ID, got.Position.ID)
	assert.True(t, got.Delta.Equal(amount))
}
