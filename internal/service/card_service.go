package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/phone"
	"github.com/snazzify/snazzpay-backend/internal/repository"
)

// One loyalty point per ₹100 captured.
var pointDivisor = decimal.NewFromInt(100)

const cardValidityYears = 2

type CardService interface {
	// IssueOnCapture is idempotent per normalized phone: the first capture
	// creates the card, later captures only accrue points on it.
	IssueOnCapture(ctx context.Context, rawPhone, customerName string, amount decimal.Decimal) (*model.ShaktiCard, error)
	FindByPhone(ctx context.Context, rawPhone string) (*model.ShaktiCard, error)
}

type cardService struct {
	cards repository.CardRepository
}

func NewCardService(cards repository.CardRepository) CardService {
	return &cardService{cards: cards}
}

func (s *cardService) IssueOnCapture(ctx context.Context, rawPhone, customerName string, amount decimal.Decimal) (*model.ShaktiCard, error) {
	key := phone.Normalize(rawPhone)
	if key == "" {
		return nil, nil
	}
	points := amount.Div(pointDivisor).IntPart()

	existing, err := s.cards.FindByPhone(ctx, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Points += points
		if err := s.cards.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	now := time.Now()
	card := &model.ShaktiCard{
		CardNumber:    newCardNumber(),
		CustomerPhone: key,
		CustomerName:  customerName,
		Points:        points,
		Cashback:      decimal.Zero,
		ValidFrom:     now,
		ValidThru:     now.AddDate(cardValidityYears, 0, 0),
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *cardService) FindByPhone(ctx context.Context, rawPhone string) (*model.ShaktiCard, error) {
	key := phone.Normalize(rawPhone)
	if key == "" {
		return nil, ErrNotFound
	}
	card, err := s.cards.FindByPhone(ctx, key)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrNotFound
	}
	return card, nil
}

func newCardNumber() string {
	return "SHK" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
}
