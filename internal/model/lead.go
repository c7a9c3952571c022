package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type LeadStatus string

const (
	LeadStatusNew            LeadStatus = "lead"
	LeadStatusIntentVerified LeadStatus = "intent_verified"
	LeadStatusPushedToSeller LeadStatus = "pushed_to_seller"
	LeadStatusConverted      LeadStatus = "converted"
)

// Lead is a pre-order intent record. Converted leads stay in the table
// flagged converted, with OrderID pointing at the order they became.
type Lead struct {
	ID              uint64          `gorm:"primaryKey;autoIncrement"`
	Product         string          `gorm:"size:255;not null"`
	Quantity        int             `gorm:"not null;default:1"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CustomerName    string          `gorm:"size:120;not null"`
	CustomerEmail   string          `gorm:"size:255"`
	ContactNo       string          `gorm:"size:32;index;not null"`
	CustomerAddress string          `gorm:"type:text"`
	Pincode         string          `gorm:"size:16"`
	Status          LeadStatus      `gorm:"size:32;index;not null"`
	SellerID        string          `gorm:"column:seller_id;size:64;index"`
	Source          string          `gorm:"size:32"`
	OrderID         *uint64         `gorm:"column:order_id;index"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

func (Lead) TableName() string {
	return "leads"
}
