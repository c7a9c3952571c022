package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/service"
)

type LeadHandler struct {
	svc service.LeadService
}

func NewLeadHandler(svc service.LeadService) *LeadHandler {
	return &LeadHandler{svc: svc}
}

type LeadResponse struct {
	ID              uint64  `json:"id"`
	Product         string  `json:"product"`
	Quantity        int     `json:"quantity"`
	Price           string  `json:"price"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail,omitempty"`
	ContactNo       string  `json:"contactNo"`
	CustomerAddress string  `json:"customerAddress,omitempty"`
	Pincode         string  `json:"pincode,omitempty"`
	Status          string  `json:"status"`
	SellerID        string  `json:"sellerId,omitempty"`
	Source          string  `json:"source,omitempty"`
	OrderID         *uint64 `json:"orderId,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

func toLeadResponse(l *model.Lead) LeadResponse {
	return LeadResponse{
		ID:              l.ID,
		Product:         l.Product,
		Quantity:        l.Quantity,
		Price:           l.Price.StringFixed(2),
		CustomerName:    l.CustomerName,
		CustomerEmail:   l.CustomerEmail,
		ContactNo:       l.ContactNo,
		CustomerAddress: l.CustomerAddress,
		Pincode:         l.Pincode,
		Status:          string(l.Status),
		SellerID:        l.SellerID,
		Source:          l.Source,
		OrderID:         l.OrderID,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
}

func (h *LeadHandler) Create(c echo.Context) error {
	var body struct {
		Product         string `json:"product"`
		Quantity        int    `json:"quantity"`
		Price           string `json:"price"`
		CustomerName    string `json:"customerName"`
		CustomerEmail   string `json:"customerEmail"`
		ContactNo       string `json:"contactNo"`
		CustomerAddress string `json:"customerAddress"`
		Pincode         string `json:"pincode"`
		Source          string `json:"source"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid payload"))
	}
	price, err := decimal.NewFromString(body.Price)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid price"))
	}
	l, err := h.svc.Create(c.Request().Context(), &model.Lead{
		Product:         body.Product,
		Quantity:        body.Quantity,
		Price:           price,
		CustomerName:    body.CustomerName,
		CustomerEmail:   body.CustomerEmail,
		ContactNo:       body.ContactNo,
		CustomerAddress: body.CustomerAddress,
		Pincode:         body.Pincode,
		Source:          body.Source,
	})
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusCreated, toLeadResponse(l))
}

func (h *LeadHandler) List(c echo.Context) error {
	activeOnly := c.QueryParam("active") != "false"
	list, total, err := h.svc.List(c.Request().Context(), activeOnly, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch leads"))
	}
	resp := make([]LeadResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toLeadResponse(&list[i]))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"leads": resp,
		"total": total,
	})
}

func (h *LeadHandler) VerifyIntent(c echo.Context) error {
	id, err := leadID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid lead id"))
	}
	l, err := h.svc.VerifyIntent(c.Request().Context(), id)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, toLeadResponse(l))
}

func (h *LeadHandler) PushToSeller(c echo.Context) error {
	id, err := leadID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid lead id"))
	}
	var body struct {
		SellerID string `json:"sellerId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid payload"))
	}
	l, err := h.svc.PushToSeller(c.Request().Context(), id, body.SellerID)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, toLeadResponse(l))
}

func (h *LeadHandler) Convert(c echo.Context) error {
	id, err := leadID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid lead id"))
	}
	o, err := h.svc.Convert(c.Request().Context(), id)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o, false))
}

func leadID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
