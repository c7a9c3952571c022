package repository

import (
	"context"
	"errors"

	"github.com/snazzify/snazzpay-backend/internal/model"
	"gorm.io/gorm"
)

type CardRepository interface {
	Create(ctx context.Context, card *model.ShaktiCard) error
	// FindByPhone expects an already-normalized phone number and returns
	// (nil, nil) when no card exists for it.
	FindByPhone(ctx context.Context, phone string) (*model.ShaktiCard, error)
	Update(ctx context.Context, card *model.ShaktiCard) error
	SetDB(db *gorm.DB)
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Create(ctx context.Context, card *model.ShaktiCard) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *cardRepository) FindByPhone(ctx context.Context, phone string) (*model.ShaktiCard, error) {
	if r.db == nil {
		return nil, ErrDBNotReady
	}
	var card model.ShaktiCard
	if err := r.db.WithContext(ctx).
		Where("customer_phone = ?", phone).
		First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) Update(ctx context.Context, card *model.ShaktiCard) error {
	if r.db == nil {
		return ErrDBNotReady
	}
	return r.db.WithContext(ctx).Save(card).Error
}

func (r *cardRepository) SetDB(db *gorm.DB) {
	r.db = db
}
