package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShaktiCard is the loyalty/cashback account. CustomerPhone holds the
// normalized phone number and is the lookup key; at most one card exists
// per normalized phone.
type ShaktiCard struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement"`
	CardNumber    string          `gorm:"column:card_number;size:32;uniqueIndex;not null"`
	CustomerPhone string          `gorm:"column:customer_phone;size:32;uniqueIndex;not null"`
	CustomerName  string          `gorm:"size:120"`
	Points        int64           `gorm:"not null;default:0"`
	Cashback      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ValidFrom     time.Time       `gorm:"column:valid_from"`
	ValidThru     time.Time       `gorm:"column:valid_thru"`
	CreatedAt     time.Time       `gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime"`
}

func (ShaktiCard) TableName() string {
	return "shakti_cards"
}
