package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPoolConditions_Contains(t *testing.T) {
	conditions := PoolConditions{
		MinAmount: decimal.NewFromInt(100),
		MaxAmount: decimal.NewFromInt(500),
	}

	tests := []struct {
		amount string
		want   bool
	}{
		{amount: "99.9999999999", want: false},
		{amount: "100", want: true},
		{amount: "100.00", want: true},
		{amount: "300", want: true},
		{amount: "500", want: true},
		{amount: "500.0000000001", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, conditions.Contains(decimal.RequireFromString(tt.amount)))
		})
	}
}

func TestCascadeResult_Merge(t *testing.T) {
	result := CascadeResult{PoolsDeleted: 1, PositionsRefunded: 2, AmountRefunded: decimal.NewFromInt(300)}
	result.Merge(CascadeResult{PoolsDeleted: 1, PositionsRefunded: 1, AmountRefunded: decimal.RequireFromString("0.5")})

	assert.Equal(t, 2, result.PoolsDeleted)
	assert.Equal(t, 3, result.PositionsRefunded)
	assert.True(t, result.AmountRefunded.Equal(decimal.RequireFromString("300.5")))
}
