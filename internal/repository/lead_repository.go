package repository

import (
	"context"

	"github.com/snazzify/snazzpay-backend/internal/model"
	"gorm.io/gorm"
)

type LeadRepository interface {
	Create(ctx context.Context, l *model.Lead) error
	FindByID(ctx context.Context, id uint64) (*model.Lead, error)
	Update(ctx context.Context, l *model.Lead) error
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Lead, int64, error)
	SetDB(db *gorm.DB)
}

type leadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &leadRepository{db: db}
}

func (r *leadRepository) Create(ctx context.Context, l *model.Lead) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *leadRepository) FindByID(ctx context.Context, id uint64) (*model.Lead, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var l model.Lead
	if err := r.db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *leadRepository) Update(ctx context.Context, l *model.Lead) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *leadRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Lead, int64, error) {
	if r.db == nil {
		return nil, 0, ErrDBNotReady
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Model(&model.Lead{})
	if activeOnly {
		q = q.Where("status <> ?", model.LeadStatusConverted)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Lead
	if err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *leadRepository) SetDB(db *gorm.DB) {
	r.db = db
}
