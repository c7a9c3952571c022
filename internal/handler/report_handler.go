package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/report"
	"github.com/snazzify/snazzpay-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

type ReportHandler struct {
	orders      repository.OrderRepository
	leads       repository.LeadRepository
	defaultRate decimal.Decimal
}

func NewReportHandler(orders repository.OrderRepository, leads repository.LeadRepository, defaultRate decimal.Decimal) *ReportHandler {
	return &ReportHandler{orders: orders, leads: leads, defaultRate: defaultRate}
}

const snapshotLimit = 200

func (h *ReportHandler) snapshot(ctx context.Context, withLeads bool) ([]model.Order, []model.Lead, error) {
	var (
		orders []model.Order
		leads  []model.Lead
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, _, err = h.orders.List(gctx, "", "", snapshotLimit, 0)
		return err
	})
	if withLeads {
		g.Go(func() error {
			var err error
			leads, _, err = h.leads.List(gctx, false, snapshotLimit, 0)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return orders, leads, nil
}

func (h *ReportHandler) Summary(c echo.Context) error {
	orders, leads, err := h.snapshot(c.Request().Context(), true)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build report"))
	}
	s := report.Summarize(orders, leads)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"activeLeads":       s.ActiveLeads,
		"totalSecuredValue": s.TotalSecuredValue.StringFixed(2),
		"successfulCharges": s.SuccessfulCharges.StringFixed(2),
		"refundedValue":     s.RefundedValue.StringFixed(2),
	})
}

func (h *ReportHandler) Commission(c echo.Context) error {
	orders, _, err := h.snapshot(c.Request().Context(), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to build report"))
	}
	perSeller := report.Commission(orders, nil, h.defaultRate)
	out := make(map[string]string, len(perSeller))
	total := decimal.Zero
	for seller, amount := range perSeller {
		out[seller] = amount.StringFixed(2)
		total = total.Add(amount)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"rate":      h.defaultRate.String(),
		"perSeller": out,
		"total":     total.StringFixed(2),
	})
}
