package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaleSplit(t *testing.T) {
	tests := []struct {
		price       int64
		wantFee     int64
		wantRevenue int64
	}{
		{1000, 20, 980},
		{500, 10, 490},
		{101, 2, 99},
		{100, 2, 98},
		{50, 1, 49},
		// Fee rounds down to zero on tiny prices; the seller keeps everything.
		{49, 0, 49},
		{1, 0, 1},
		{0, 0, 0},
	}

	for _, tt := range tests {
		fee, revenue := SaleSplit(tt.price)
		assert.Equal(t, tt.wantFee, fee, "price %d", tt.price)
		assert.Equal(t, tt.wantRevenue, revenue, "price %d", tt.price)
		assert.Equal(t, tt.price, fee+revenue, "split must conserve the price")
	}
}

func TestTipSplit(t *testing.T) {
	tests := []struct {
		amount      int64
		wantFee     int64
		wantRevenue int64
	}{
		{100, 1, 99},
		{1000, 10, 990},
		{199, 1, 198},
		{99, 0, 99},
		{1, 0, 1},
	}

	for _, tt := range tests {
		fee, revenue := TipSplit(tt.amount)
		assert.Equal(t, tt.wantFee, fee, "amount %d", tt.amount)
		assert.Equal(t, tt.wantRevenue, revenue, "amount %d", tt.amount)
		assert.Equal(t, tt.amount, fee+revenue, "split must conserve the amount")
	}
}
