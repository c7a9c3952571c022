package model

import "time"

// Notification is an in-app record backing the dashboard badge counts.
// Actor is the operator role or seller id the notification is addressed to.
type Notification struct {
	ID        uint64     `gorm:"primaryKey;autoIncrement"`
	Actor     string     `gorm:"column:actor;size:64;index;not null"`
	Type      string     `gorm:"column:type;size:64;not null"`
	Title     string     `gorm:"column:title;size:255"`
	Body      string     `gorm:"column:body;type:text"`
	OrderID   *uint64    `gorm:"column:order_id;index"`
	LeadID    *uint64    `gorm:"column:lead_id;index"`
	ReadAt    *time.Time `gorm:"column:read_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}
