package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Nzyazin/stakeledger/internal/core/logger"
	"github.com/Nzyazin/stakeledger/internal/core/usecase"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "100", want: "100"},
		{in: "100.5", want: "100.5"},
		{in: "100,25", want: "100.25"},
		{in: " 1 000.10 ", want: "1000.1"},
		{in: "0.0000000001", want: "0.0000000001"},
		{in: "0", want: "0"},
		{in: "0.00000000001", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1e3", wantErr: true},
		{in: "", wantErr: true},
		{in: ".5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), got.String())
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(usecase.ErrSameName))
	assert.Equal(t, http.StatusBadRequest, statusFor(usecase.ErrInsufficientFunds))
	assert.Equal(t, http.StatusNotFound, statusFor(usecase.ErrConditionsNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(usecase.ErrDuplicatePoolName))
	assert.Equal(t, http.StatusConflict, statusFor(usecase.ErrConflict))
	assert.Equal(t, http.StatusInternalServerError, statusFor(usecase.ErrConsistency))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestWithRetry_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := withRetry(ctx, logger.NewNop(), "test", func() (int, error) {
		calls++
		return 0, usecase.ErrConflict
	})

	assert.ErrorIs(t, err, usecase.ErrConflict)
	assert.Equal(t, 1, calls)
}
