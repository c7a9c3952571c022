package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the payment lifecycle state of an order. Transitions are
// one-directional; an order never moves back to an earlier state.
type OrderStatus string

const (
	OrderStatusLead           OrderStatus = "lead"
	OrderStatusIntentVerified OrderStatus = "intent_verified"
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAuthorized     OrderStatus = "authorized"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusFeeCharged     OrderStatus = "fee_charged"
	OrderStatusRefunded       OrderStatus = "refunded"
	OrderStatusVoided         OrderStatus = "voided"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusPushedToSeller OrderStatus = "pushed_to_seller"
	OrderStatusConverted      OrderStatus = "converted"
)

type DeliveryStatus string

const (
	DeliveryStatusPending        DeliveryStatus = "pending"
	DeliveryStatusPacked         DeliveryStatus = "packed"
	DeliveryStatusDispatched     DeliveryStatus = "dispatched"
	DeliveryStatusOutForDelivery DeliveryStatus = "out_for_delivery"
	DeliveryStatusDelivered      DeliveryStatus = "delivered"
	DeliveryStatusFailed         DeliveryStatus = "failed"
	DeliveryStatusRTO            DeliveryStatus = "rto"
)

// Order is the central entity. Price is the order total in the base currency
// unit (rupees), not a unit price. Orders are never hard-deleted; they are
// the audit trail.
type Order struct {
	ID                   uint64           `gorm:"primaryKey;autoIncrement"`
	OrderRef             string           `gorm:"column:order_ref;size:64;uniqueIndex;not null"`
	Product              string           `gorm:"size:255;not null"`
	Quantity             int              `gorm:"not null;default:1"`
	Price                decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	CustomerName         string           `gorm:"size:120;not null"`
	CustomerEmail        string           `gorm:"size:255"`
	ContactNo            string           `gorm:"size:32;index;not null"`
	CustomerAddress      string           `gorm:"type:text"`
	Pincode              string           `gorm:"size:16"`
	PaymentStatus        OrderStatus      `gorm:"column:payment_status;size:32;index;not null"`
	DeliveryStatus       DeliveryStatus   `gorm:"column:delivery_status;size:32;not null"`
	TrackingNumber       string           `gorm:"size:64"`
	CourierCompany       string           `gorm:"column:courier_company;size:120"`
	EstDelivery          *time.Time       `gorm:"column:est_delivery"`
	ReadyForDispatchDate *time.Time       `gorm:"column:ready_for_dispatch_date"`
	SellerID             string           `gorm:"column:seller_id;size:64;index"`
	Source               string           `gorm:"size:32"`
	GatewayOrderID       string           `gorm:"column:gateway_order_id;size:64"`
	PaymentID            string           `gorm:"column:payment_id;size:64"`
	CancellationToken    string           `gorm:"column:cancellation_token;size:64"`
	RefundAmount         *decimal.Decimal `gorm:"column:refund_amount;type:decimal(12,2)"`
	IsRead               bool             `gorm:"column:is_read"`
	CreatedAt            time.Time        `gorm:"autoCreateTime"`
	UpdatedAt            time.Time        `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
