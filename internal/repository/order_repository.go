package repository

import (
	"context"
	"errors"

	"github.com/snazzify/snazzpay-backend/internal/model"
	"gorm.io/gorm"
)

var ErrDBNotReady = errors.New("database not initialized")

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByRef(ctx context.Context, ref string) (*model.Order, error)
	FindByID(ctx context.Context, id uint64) (*model.Order, error)
	Update(ctx context.Context, o *model.Order) error
	List(ctx context.Context, status model.OrderStatus, sellerID string, limit, offset int) ([]model.Order, int64, error)
	MarkRead(ctx context.Context, ref string) error
	SetDB(db *gorm.DB)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepository) FindByRef(ctx context.Context, ref string) (*model.Order, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var o model.Order
	if err := r.db.WithContext(ctx).
		Where("order_ref = ?", ref).
		First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var o model.Order
	if err := r.db.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Update(ctx context.Context, o *model.Order) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepository) List(ctx context.Context, status model.OrderStatus, sellerID string, limit, offset int) ([]model.Order, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Model(&model.Order{})
	if status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if sellerID != "" {
		q = q.Where("seller_id = ?", sellerID)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Order
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *orderRepository) MarkRead(ctx context.Context, ref string) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("order_ref = ? AND is_read = ?", ref, false).
		Update("is_read", true).Error
}

func (r *orderRepository) SetDB(db *gorm.DB) {
	r.db = db
}
