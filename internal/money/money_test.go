package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   int64
	}{
		{"whole rupees", "1000.00", 100000},
		{"paise preserved", "499.99", 49999},
		{"half rounds up", "10.005", 1001},
		{"below half rounds down", "10.004", 1000},
		{"third of a rupee", "33.333", 3333},
		{"zero", "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := decimal.NewFromString(tt.amount)
			if err != nil {
				t.Fatalf("bad amount %q: %v", tt.amount, err)
			}
			assert.Equal(t, tt.want, ToMinorUnits(amount))
		})
	}
}

func TestFromMinorUnitsRoundTrip(t *testing.T) {
	for _, minor := range []int64{0, 1, 99, 100, 49999, 100000} {
		got := ToMinorUnits(FromMinorUnits(minor))
		assert.Equal(t, minor, got)
	}
}
