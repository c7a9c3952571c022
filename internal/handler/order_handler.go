package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/snazzify/snazzpay-backend/internal/gateway"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/service"
)

type OrderHandler struct {
	svc service.OrderService
}

func NewOrderHandler(svc service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type OrderResponse struct {
	ID                string  `json:"id"`
	Product           string  `json:"product"`
	Quantity          int     `json:"quantity"`
	Price             string  `json:"price"`
	CustomerName      string  `json:"customerName"`
	CustomerEmail     string  `json:"customerEmail,omitempty"`
	ContactNo         string  `json:"contactNo"`
	CustomerAddress   string  `json:"customerAddress,omitempty"`
	Pincode           string  `json:"pincode,omitempty"`
	PaymentStatus     string  `json:"paymentStatus"`
	DeliveryStatus    string  `json:"deliveryStatus"`
	TrackingNumber    string  `json:"trackingNumber,omitempty"`
	CourierCompany    string  `json:"courierCompany,omitempty"`
	EstDelivery       *string `json:"estDelivery,omitempty"`
	SellerID          string  `json:"sellerId,omitempty"`
	Source            string  `json:"source"`
	GatewayOrderID    string  `json:"gatewayOrderId,omitempty"`
	CancellationToken string  `json:"cancellationToken,omitempty"`
	RefundAmount      *string `json:"refundAmount,omitempty"`
	IsRead            bool    `json:"isRead"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

func toOrderResponse(o *model.Order, includeToken bool) OrderResponse {
	var est *string
	if o.EstDelivery != nil {
		val := o.EstDelivery.Format("2006-01-02")
		est = &val
	}
	var refund *string
	if o.RefundAmount != nil {
		val := o.RefundAmount.StringFixed(2)
		refund = &val
	}
	resp := OrderResponse{
		ID:              o.OrderRef,
		Product:         o.Product,
		Quantity:        o.Quantity,
		Price:           o.Price.StringFixed(2),
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		ContactNo:       o.ContactNo,
		CustomerAddress: o.CustomerAddress,
		Pincode:         o.Pincode,
		PaymentStatus:   string(o.PaymentStatus),
		DeliveryStatus:  string(o.DeliveryStatus),
		TrackingNumber:  o.TrackingNumber,
		CourierCompany:  o.CourierCompany,
		EstDelivery:     est,
		SellerID:        o.SellerID,
		Source:          o.Source,
		GatewayOrderID:  o.GatewayOrderID,
		RefundAmount:    refund,
		IsRead:          o.IsRead,
		CreatedAt:       o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       o.UpdatedAt.Format(time.RFC3339),
	}
	// The shared-secret token goes out exactly once, on creation.
	if includeToken {
		resp.CancellationToken = o.CancellationToken
	}
	return resp
}

type createOrderRequest struct {
	Product         string `json:"product"`
	Quantity        int    `json:"quantity"`
	Amount          string `json:"amount"`
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	ContactNo       string `json:"contactNo"`
	CustomerAddress string `json:"customerAddress"`
	Pincode         string `json:"pincode"`
	SellerID        string `json:"sellerId"`
	Source          string `json:"source"`
	Prepaid         bool   `json:"prepaid"`
	// Draft creates a pending order without touching the gateway.
	Draft bool `json:"draft"`
	// OrderRef authorizes an existing pending order instead of creating one.
	OrderRef string `json:"orderRef"`
}

func (h *OrderHandler) Create(c echo.Context) error {
	var body createOrderRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid payload"))
	}
	amount := decimal.Zero
	if body.Amount != "" {
		parsed, err := decimal.NewFromString(body.Amount)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid amount"))
		}
		amount = parsed
	}
	in := service.AuthorizeInput{
		OrderRef:        body.OrderRef,
		Product:         body.Product,
		Quantity:        body.Quantity,
		Amount:          amount,
		CustomerName:    body.CustomerName,
		CustomerEmail:   body.CustomerEmail,
		ContactNo:       body.ContactNo,
		CustomerAddress: body.CustomerAddress,
		Pincode:         body.Pincode,
		SellerID:        body.SellerID,
		Source:          body.Source,
		Prepaid:         body.Prepaid,
	}
	var (
		o   *model.Order
		err error
	)
	if body.Draft {
		o, err = h.svc.CreatePending(c.Request().Context(), in)
	} else {
		o, err = h.svc.Authorize(c.Request().Context(), in)
	}
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o, true))
}

func (h *OrderHandler) Get(c echo.Context) error {
	o, err := h.svc.Get(c.Request().Context(), c.Param("ref"), true)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o, false))
}

func (h *OrderHandler) List(c echo.Context) error {
	status := model.OrderStatus(c.QueryParam("status"))
	sellerID := c.QueryParam("seller")
	list, total, err := h.svc.List(c.Request().Context(), status, sellerID, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("internal_error", "failed to fetch orders"))
	}
	resp := make([]OrderResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toOrderResponse(&list[i], false))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": resp,
		"total":  total,
	})
}

func (h *OrderHandler) RecordPayment(c echo.Context) error {
	var body struct {
		PaymentID string `json:"paymentId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid payload"))
	}
	o, err := h.svc.RecordPayment(c.Request().Context(), c.Param("ref"), body.PaymentID)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o, false))
}

func (h *OrderHandler) Dispatch(c echo.Context) error {
	var body struct {
		TrackingNumber string `json:"trackingNumber"`
		CourierCompany string `json:"courierCompany"`
		EstDelivery    string `json:"estDelivery"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid payload"))
	}
	in := service.DispatchInput{
		TrackingNumber: body.TrackingNumber,
		CourierCompany: body.CourierCompany,
	}
	if body.EstDelivery != "" {
		est, err := time.Parse("2006-01-02", body.EstDelivery)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid estDelivery date"))
		}
		in.EstDelivery = &est
	}
	o, err := h.svc.CaptureOnDispatch(c.Request().Context(), c.Param("ref"), in)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o, false))
}

func (h *OrderHandler) Cancel(c echo.Context) error {
	var body struct {
		CancellationID string `json:"cancellationId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid payload"))
	}
	o, err := h.svc.CancelBeforeDispatch(c.Request().Context(), c.Param("ref"), body.CancellationID)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o, false))
}

func (h *OrderHandler) CancelWithFee(c echo.Context) error {
	var body struct {
		TotalAmount string `json:"totalAmount"`
		FeeAmount   string `json:"feeAmount"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid payload"))
	}
	total, err := decimal.NewFromString(body.TotalAmount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid totalAmount"))
	}
	fee, err := decimal.NewFromString(body.FeeAmount)
	if err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid feeAmount"))
	}
	o, err := h.svc.CancelWithFee(c.Request().Context(), c.Param("ref"), total, fee)
	if err != nil {
		return orderError(c, err)
	}
	return c.JSON(http.StatusOK, toOrderResponse(o, false))
}

// orderError maps the lifecycle error taxonomy onto HTTP. Partial failures
// carry a reconciliation payload so the operator can finish the refund by
// hand; gateway rejections relay the provider's description verbatim.
func orderError(c echo.Context, err error) error {
	var (
		cfgErr  *gateway.ConfigError
		rejErr  *gateway.RejectedError
		partial *service.PartialFailureError
	)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, NewErrorResponse("not_found", "order not found"))
	case errors.Is(err, service.ErrAlreadyCaptured):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_captured", "order is already captured"))
	case errors.Is(err, service.ErrAlreadyConverted):
		return c.JSON(http.StatusConflict, NewErrorResponse("already_converted", "lead is already converted"))
	case errors.Is(err, service.ErrInvalidCancellationToken):
		return c.JSON(http.StatusForbidden, NewErrorResponse("invalid_cancellation_token", "cancellation id does not match"))
	case errors.Is(err, service.ErrFeeExceedsTotal):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("fee_exceeds_total", "fee must be less than the total amount"))
	case errors.Is(err, service.ErrInvalidAmount):
		return c.JSON(http.StatusBadRequest, NewErrorResponse("invalid_amount", "amount must be a positive number"))
	case errors.As(err, &partial):
		return c.JSON(http.StatusBadGateway, map[string]interface{}{
			"error": NewErrorResponse("partial_failure", partial.Error()).Error,
			"reconciliation": map[string]string{
				"orderRef":    partial.OrderRef,
				"feeCaptured": partial.FeeCaptured.StringFixed(2),
				"refundDue":   partial.RefundDue.StringFixed(2),
			},
		})
	case errors.As(err, &cfgErr):
		return c.JSON(http.StatusInternalServerError, NewErrorResponse("configuration_error", cfgErr.Error()))
	case errors.As(err, &rejErr):
		return c.JSON(http.StatusBadGateway, NewErrorResponse("gateway_rejected", rejErr.Description))
	default:
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", err.Error()))
	}
}
