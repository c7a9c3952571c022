// Package report computes dashboard read-models. Everything here is a pure
// function of an order/lead snapshot; no hidden state, safe to recompute.
package report

import (
	"github.com/shopspring/decimal"
	"github.com/snazzify/snazzpay-backend/internal/model"
)

var percent = decimal.NewFromInt(100)

type Summary struct {
	ActiveLeads       int             `json:"activeLeads"`
	TotalSecuredValue decimal.Decimal `json:"totalSecuredValue"`
	SuccessfulCharges decimal.Decimal `json:"successfulCharges"`
	RefundedValue     decimal.Decimal `json:"refundedValue"`
}

func Summarize(orders []model.Order, leads []model.Lead) Summary {
	s := Summary{
		TotalSecuredValue: decimal.Zero,
		SuccessfulCharges: decimal.Zero,
		RefundedValue:     decimal.Zero,
	}
	for _, l := range leads {
		if l.Status != model.LeadStatusConverted {
			s.ActiveLeads++
		}
	}
	for _, o := range orders {
		switch o.PaymentStatus {
		case model.OrderStatusAuthorized:
			s.TotalSecuredValue = s.TotalSecuredValue.Add(o.Price)
		case model.OrderStatusPaid, model.OrderStatusFeeCharged:
			s.SuccessfulCharges = s.SuccessfulCharges.Add(o.Price)
		case model.OrderStatusRefunded, model.OrderStatusVoided:
			s.RefundedValue = s.RefundedValue.Add(o.Price)
		}
	}
	return s
}

// Commission returns per-seller commission totals. Rates are percentages
// (5 means 5%); sellers without an override use defaultRate. Only captured
// orders (paid or fee_charged) with a seller attached count.
func Commission(orders []model.Order, rates map[string]decimal.Decimal, defaultRate decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, o := range orders {
		if o.SellerID == "" {
			continue
		}
		if o.PaymentStatus != model.OrderStatusPaid && o.PaymentStatus != model.OrderStatusFeeCharged {
			continue
		}
		rate, ok := rates[o.SellerID]
		if !ok {
			rate = defaultRate
		}
		c := o.Price.Mul(rate).Div(percent)
		out[o.SellerID] = out[o.SellerID].Add(c)
	}
	return out
}

func CommissionTotal(orders []model.Order, rates map[string]decimal.Decimal, defaultRate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, c := range Commission(orders, rates, defaultRate) {
		total = total.Add(c)
	}
	return total
}
