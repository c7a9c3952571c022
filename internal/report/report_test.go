package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snazzify/snazzpay-backend/internal/model"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestCommissionCountsOnlyCapturedSellerOrders(t *testing.T) {
	orders := []model.Order{
		{Price: dec(t, "1000"), PaymentStatus: model.OrderStatusPaid, SellerID: "S1"},
		{Price: dec(t, "500"), PaymentStatus: model.OrderStatusLead, SellerID: "S1"},
	}
	got := Commission(orders, nil, dec(t, "5"))
	require.Contains(t, got, "S1")
	assert.True(t, got["S1"].Equal(dec(t, "50")), "commission %s", got["S1"])
}

func TestCommissionPerSellerOverrides(t *testing.T) {
	orders := []model.Order{
		{Price: dec(t, "1000"), PaymentStatus: model.OrderStatusPaid, SellerID: "S1"},
		{Price: dec(t, "1000"), PaymentStatus: model.OrderStatusFeeCharged, SellerID: "S2"},
		{Price: dec(t, "1000"), PaymentStatus: model.OrderStatusPaid, SellerID: ""},
		{Price: dec(t, "1000"), PaymentStatus: model.OrderStatusRefunded, SellerID: "S1"},
	}
	rates := map[string]decimal.Decimal{"S2": dec(t, "10")}
	got := Commission(orders, rates, dec(t, "5"))

	assert.True(t, got["S1"].Equal(dec(t, "50")))
	assert.True(t, got["S2"].Equal(dec(t, "100")))
	assert.NotContains(t, got, "")
	assert.True(t, CommissionTotal(orders, rates, dec(t, "5")).Equal(dec(t, "150")))
}

func TestSummarize(t *testing.T) {
	orders := []model.Order{
		{Price: dec(t, "1000"), PaymentStatus: model.OrderStatusAuthorized},
		{Price: dec(t, "250"), PaymentStatus: model.OrderStatusAuthorized},
		{Price: dec(t, "2000"), PaymentStatus: model.OrderStatusPaid},
		{Price: dec(t, "300"), PaymentStatus: model.OrderStatusFeeCharged},
		{Price: dec(t, "500"), PaymentStatus: model.OrderStatusVoided},
		{Price: dec(t, "700"), PaymentStatus: model.OrderStatusRefunded},
		{Price: dec(t, "900"), PaymentStatus: model.OrderStatusPending},
	}
	leads := []model.Lead{
		{Status: model.LeadStatusNew},
		{Status: model.LeadStatusIntentVerified},
		{Status: model.LeadStatusPushedToSeller},
		{Status: model.LeadStatusConverted},
	}

	s := Summarize(orders, leads)
	assert.Equal(t, 3, s.ActiveLeads)
	assert.True(t, s.TotalSecuredValue.Equal(dec(t, "1250")), "secured %s", s.TotalSecuredValue)
	assert.True(t, s.SuccessfulCharges.Equal(dec(t, "2300")), "charges %s", s.SuccessfulCharges)
	assert.True(t, s.RefundedValue.Equal(dec(t, "1200")), "refunded %s", s.RefundedValue)
}

func TestSummarizeEmptySnapshot(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Equal(t, 0, s.ActiveLeads)
	assert.True(t, s.TotalSecuredValue.IsZero())
	assert.True(t, s.SuccessfulCharges.IsZero())
	assert.True(t, s.RefundedValue.IsZero())
}
