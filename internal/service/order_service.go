package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snazzify/snazzpay-backend/internal/gateway"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/money"
	"github.com/snazzify/snazzpay-backend/internal/notify"
	"github.com/snazzify/snazzpay-backend/internal/repository"
	"gorm.io/gorm"
)

// AuthorizeInput describes a checkout. When OrderRef is set the input
// targets an existing pending order (seller entry path) and the commercial
// fields are taken from the stored order instead.
type AuthorizeInput struct {
	OrderRef        string
	Product         string
	Quantity        int
	Amount          decimal.Decimal
	CustomerName    string
	CustomerEmail   string
	ContactNo       string
	CustomerAddress string
	Pincode         string
	SellerID        string
	Source          string
	// Prepaid charges the card immediately instead of placing a hold.
	Prepaid bool
}

type DispatchInput struct {
	TrackingNumber string
	CourierCompany string
	EstDelivery    *time.Time
}

// OrderService owns the secure-COD payment lifecycle. Local status is only
// persisted after the gateway call succeeds, so a network failure leaves
// the order in its prior state.
type OrderService interface {
	CreatePending(ctx context.Context, in AuthorizeInput) (*model.Order, error)
	Authorize(ctx context.Context, in AuthorizeInput) (*model.Order, error)
	RecordPayment(ctx context.Context, orderRef, paymentID string) (*model.Order, error)
	CaptureOnDispatch(ctx context.Context, orderRef string, in DispatchInput) (*model.Order, error)
	CancelBeforeDispatch(ctx context.Context, orderRef, token string) (*model.Order, error)
	CancelWithFee(ctx context.Context, orderRef string, total, fee decimal.Decimal) (*model.Order, error)
	Get(ctx context.Context, orderRef string, markRead bool) (*model.Order, error)
	List(ctx context.Context, status model.OrderStatus, sellerID string, limit, offset int) ([]model.Order, int64, error)
}

type orderService struct {
	orders   repository.OrderRepository
	cards    CardService
	gw       gateway.Gateway
	sender   notify.Sender
	notes    NotificationService
	currency string
}

func NewOrderService(orders repository.OrderRepository, cards CardService, gw gateway.Gateway, sender notify.Sender, notes NotificationService, currency string) OrderService {
	if currency == "" {
		currency = "INR"
	}
	return &orderService{orders: orders, cards: cards, gw: gw, sender: sender, notes: notes, currency: currency}
}

func newOrderRef() string {
	return "SNZ-" + strings.ToUpper(uuid.NewString()[:8])
}

func (s *orderService) CreatePending(ctx context.Context, in AuthorizeInput) (*model.Order, error) {
	if err := validateCustomer(in); err != nil {
		return nil, err
	}
	o := orderFromInput(in)
	o.PaymentStatus = model.OrderStatusPending
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	if s.notes != nil {
		s.notes.Notify(ctx, "admin", "order_pending", "New seller order",
			fmt.Sprintf("Order %s (%s) is awaiting pickup", o.OrderRef, o.Product), &o.ID, nil)
	}
	return o, nil
}

func (s *orderService) Authorize(ctx context.Context, in AuthorizeInput) (*model.Order, error) {
	var o *model.Order
	if in.OrderRef != "" {
		existing, err := s.orders.FindByRef(ctx, in.OrderRef)
		if err != nil {
			return nil, mapNotFound(err)
		}
		switch existing.PaymentStatus {
		case model.OrderStatusPending, model.OrderStatusLead, model.OrderStatusIntentVerified:
		default:
			return nil, fmt.Errorf("order %s cannot be authorized from status %s", existing.OrderRef, existing.PaymentStatus)
		}
		o = existing
	} else {
		if err := validateCustomer(in); err != nil {
			return nil, err
		}
		o = orderFromInput(in)
	}

	if !o.Price.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if err := s.gwReady(); err != nil {
		return nil, err
	}

	amountMinor := money.ToMinorUnits(o.Price)
	gwOrderID, err := s.gw.CreateOrder(ctx, amountMinor, s.currency, in.Prepaid, map[string]string{
		"order_ref": o.OrderRef,
		"product":   o.Product,
	})
	if err != nil {
		return nil, err
	}

	o.GatewayOrderID = gwOrderID
	o.PaymentStatus = model.OrderStatusAuthorized
	if in.OrderRef != "" {
		if err := s.orders.Update(ctx, o); err != nil {
			return nil, err
		}
	} else {
		if err := s.orders.Create(ctx, o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (s *orderService) RecordPayment(ctx context.Context, orderRef, paymentID string) (*model.Order, error) {
	if paymentID == "" {
		return nil, errors.New("payment id is required")
	}
	o, err := s.orders.FindByRef(ctx, orderRef)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if o.PaymentID == paymentID {
		return o, nil
	}
	if o.PaymentID != "" {
		return nil, fmt.Errorf("order %s already has payment %s recorded", o.OrderRef, o.PaymentID)
	}
	if o.PaymentStatus != model.OrderStatusAuthorized {
		return nil, fmt.Errorf("order %s is not awaiting payment (status %s)", o.OrderRef, o.PaymentStatus)
	}
	o.PaymentID = paymentID
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *orderService) CaptureOnDispatch(ctx context.Context, orderRef string, in DispatchInput) (*model.Order, error) {
	o, err := s.orders.FindByRef(ctx, orderRef)
	if err != nil {
		return nil, mapNotFound(err)
	}
	switch o.PaymentStatus {
	case model.OrderStatusPaid, model.OrderStatusFeeCharged, model.OrderStatusRefunded:
		return nil, ErrAlreadyCaptured
	case model.OrderStatusAuthorized:
	default:
		return nil, fmt.Errorf("order %s cannot be captured from status %s", o.OrderRef, o.PaymentStatus)
	}
	if o.PaymentID == "" {
		return nil, fmt.Errorf("order %s has no payment recorded", o.OrderRef)
	}
	if err := s.gwReady(); err != nil {
		return nil, err
	}

	amountMinor := money.ToMinorUnits(o.Price)
	if _, err := s.gw.Capture(ctx, o.PaymentID, amountMinor, s.currency); err != nil {
		return nil, err
	}

	now := time.Now()
	o.PaymentStatus = model.OrderStatusPaid
	o.DeliveryStatus = model.DeliveryStatusDispatched
	o.TrackingNumber = in.TrackingNumber
	o.CourierCompany = in.CourierCompany
	o.EstDelivery = in.EstDelivery
	o.ReadyForDispatchDate = &now
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if s.cards != nil {
		if _, err := s.cards.IssueOnCapture(ctx, o.ContactNo, o.CustomerName, o.Price); err != nil {
			log.Printf("shakti card issue for order %s: %v", o.OrderRef, err)
		}
	}
	s.sendTemplate(ctx, o, notify.TemplateDispatch, map[string]string{
		"orderRef":    o.OrderRef,
		"courier":     o.CourierCompany,
		"tracking":    o.TrackingNumber,
		"estDelivery": formatDate(o.EstDelivery),
	})
	if s.notes != nil {
		s.notes.Notify(ctx, sellerActor(o), "order_dispatched", "Order dispatched",
			fmt.Sprintf("Order %s captured and dispatched via %s", o.OrderRef, o.CourierCompany), &o.ID, nil)
	}
	return o, nil
}

func (s *orderService) CancelBeforeDispatch(ctx context.Context, orderRef, token string) (*model.Order, error) {
	o, err := s.orders.FindByRef(ctx, orderRef)
	if err != nil {
		return nil, mapNotFound(err)
	}
	// Exact, case-sensitive match. No gateway interaction on mismatch.
	if token == "" || o.CancellationToken != token {
		return nil, ErrInvalidCancellationToken
	}
	if o.PaymentStatus != model.OrderStatusAuthorized {
		return nil, fmt.Errorf("order %s cannot be voided from status %s", o.OrderRef, o.PaymentStatus)
	}

	if o.PaymentID != "" {
		if err := s.gwReady(); err != nil {
			return nil, err
		}
		amountMinor := money.ToMinorUnits(o.Price)
		if _, err := s.gw.Refund(ctx, o.PaymentID, amountMinor, map[string]string{
			"order_ref": o.OrderRef,
			"reason":    "customer cancellation before dispatch",
		}); err != nil {
			return nil, err
		}
		refunded := money.FromMinorUnits(amountMinor)
		o.RefundAmount = &refunded
	}
	o.PaymentStatus = model.OrderStatusVoided
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	s.sendTemplate(ctx, o, notify.TemplateCancellation, map[string]string{
		"orderRef": o.OrderRef,
		"product":  o.Product,
	})
	return o, nil
}

func (s *orderService) CancelWithFee(ctx context.Context, orderRef string, total, fee decimal.Decimal) (*model.Order, error) {
	if !total.IsPositive() || !fee.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if fee.GreaterThanOrEqual(total) {
		return nil, ErrFeeExceedsTotal
	}
	o, err := s.orders.FindByRef(ctx, orderRef)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if o.PaymentStatus != model.OrderStatusPaid && o.PaymentStatus != model.OrderStatusAuthorized {
		return nil, fmt.Errorf("order %s cannot be fee-cancelled from status %s", o.OrderRef, o.PaymentStatus)
	}
	if o.PaymentID == "" {
		return nil, fmt.Errorf("order %s has no payment recorded", o.OrderRef)
	}
	if err := s.gwReady(); err != nil {
		return nil, err
	}

	// Minor-unit split; the remainder refund is computed from the rounded
	// total so captured + refunded always equals total to the paise.
	totalMinor := money.ToMinorUnits(total)
	feeMinor := money.ToMinorUnits(fee)
	refundMinor := totalMinor - feeMinor

	if _, err := s.gw.Capture(ctx, o.PaymentID, feeMinor, s.currency); err != nil {
		return nil, err
	}
	o.PaymentStatus = model.OrderStatusFeeCharged
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	if _, err := s.gw.Refund(ctx, o.PaymentID, refundMinor, map[string]string{
		"order_ref": o.OrderRef,
		"reason":    "cancellation after capture, service fee retained",
	}); err != nil {
		pf := &PartialFailureError{
			OrderRef:    o.OrderRef,
			FeeCaptured: money.FromMinorUnits(feeMinor),
			RefundDue:   money.FromMinorUnits(refundMinor),
			Cause:       err,
		}
		if s.sender != nil {
			if serr := s.sender.Send(ctx, notify.TemplateInternalAlert, "operations", map[string]string{
				"orderRef":  o.OrderRef,
				"refundDue": pf.RefundDue.StringFixed(2),
				"detail":    pf.Error(),
			}); serr != nil {
				log.Printf("notify internal_alert for order %s: %v", o.OrderRef, serr)
			}
		}
		return o, pf
	}

	refunded := money.FromMinorUnits(refundMinor)
	o.RefundAmount = &refunded
	o.PaymentStatus = model.OrderStatusRefunded
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	s.sendTemplate(ctx, o, notify.TemplateRefund, map[string]string{
		"orderRef": o.OrderRef,
		"fee":      money.FromMinorUnits(feeMinor).StringFixed(2),
		"refunded": refunded.StringFixed(2),
	})
	return o, nil
}

func (s *orderService) Get(ctx context.Context, orderRef string, markRead bool) (*model.Order, error) {
	o, err := s.orders.FindByRef(ctx, orderRef)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if markRead && !o.IsRead {
		if err := s.orders.MarkRead(ctx, orderRef); err == nil {
			o.IsRead = true
		}
	}
	return o, nil
}

func (s *orderService) List(ctx context.Context, status model.OrderStatus, sellerID string, limit, offset int) ([]model.Order, int64, error) {
	return s.orders.List(ctx, status, sellerID, limit, offset)
}

// sendTemplate is best-effort; a messaging failure never fails the flow.
func (s *orderService) sendTemplate(ctx context.Context, o *model.Order, tpl notify.Template, data map[string]string) {
	if s.sender == nil {
		return
	}
	recipient := o.CustomerEmail
	if recipient == "" {
		recipient = o.ContactNo
	}
	if recipient == "" {
		return
	}
	if err := s.sender.Send(ctx, tpl, recipient, data); err != nil {
		log.Printf("notify %s for order %s: %v", tpl, o.OrderRef, err)
	}
}

func (s *orderService) gwReady() error {
	if s.gw == nil {
		return &gateway.ConfigError{Reason: "payment gateway not configured"}
	}
	return nil
}

func orderFromInput(in AuthorizeInput) *model.Order {
	qty := in.Quantity
	if qty <= 0 {
		qty = 1
	}
	source := in.Source
	if source == "" {
		source = "Seller"
	}
	return &model.Order{
		OrderRef:          newOrderRef(),
		Product:           in.Product,
		Quantity:          qty,
		Price:             in.Amount,
		CustomerName:      in.CustomerName,
		CustomerEmail:     in.CustomerEmail,
		ContactNo:         in.ContactNo,
		CustomerAddress:   in.CustomerAddress,
		Pincode:           in.Pincode,
		DeliveryStatus:    model.DeliveryStatusPending,
		SellerID:          in.SellerID,
		Source:            source,
		CancellationToken: uuid.NewString(),
	}
}

func validateCustomer(in AuthorizeInput) error {
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if in.CustomerName == "" || in.ContactNo == "" {
		return errors.New("customer name and phone are required")
	}
	if in.Product == "" {
		return errors.New("product description is required")
	}
	return nil
}

func sellerActor(o *model.Order) string {
	if o.SellerID != "" {
		return o.SellerID
	}
	return "admin"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
