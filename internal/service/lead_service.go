package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/repository"
)

type LeadService interface {
	Create(ctx context.Context, l *model.Lead) (*model.Lead, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Lead, int64, error)
	VerifyIntent(ctx context.Context, id uint64) (*model.Lead, error)
	PushToSeller(ctx context.Context, id uint64, sellerID string) (*model.Lead, error)
	// Convert copies the lead into a new pending order exactly once.
	Convert(ctx context.Context, id uint64) (*model.Order, error)
}

type leadService struct {
	leads  repository.LeadRepository
	orders repository.OrderRepository
	notes  NotificationService
}

func NewLeadService(leads repository.LeadRepository, orders repository.OrderRepository, notes NotificationService) LeadService {
	return &leadService{leads: leads, orders: orders, notes: notes}
}

func (s *leadService) Create(ctx context.Context, l *model.Lead) (*model.Lead, error) {
	if l.CustomerName == "" || l.ContactNo == "" {
		return nil, errors.New("customer name and phone are required")
	}
	if !l.Price.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if l.Quantity <= 0 {
		l.Quantity = 1
	}
	l.Status = model.LeadStatusNew
	if err := s.leads.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *leadService) List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Lead, int64, error) {
	return s.leads.List(ctx, activeOnly, limit, offset)
}

func (s *leadService) VerifyIntent(ctx context.Context, id uint64) (*model.Lead, error) {
	l, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if l.Status == model.LeadStatusConverted {
		return nil, ErrAlreadyConverted
	}
	if l.Status == model.LeadStatusIntentVerified {
		return l, nil
	}
	l.Status = model.LeadStatusIntentVerified
	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *leadService) PushToSeller(ctx context.Context, id uint64, sellerID string) (*model.Lead, error) {
	if sellerID == "" {
		return nil, errors.New("seller id is required")
	}
	l, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	switch l.Status {
	case model.LeadStatusNew, model.LeadStatusIntentVerified:
	default:
		return nil, fmt.Errorf("lead %d cannot be pushed from status %s", l.ID, l.Status)
	}
	l.Status = model.LeadStatusPushedToSeller
	l.SellerID = sellerID
	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	if s.notes != nil {
		s.notes.Notify(ctx, sellerID, "lead_pushed", "Lead assigned",
			fmt.Sprintf("Lead for %s (%s) is in your queue", l.Product, l.CustomerName), nil, &l.ID)
	}
	return l, nil
}

func (s *leadService) Convert(ctx context.Context, id uint64) (*model.Order, error) {
	l, err := s.leads.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if l.Status == model.LeadStatusConverted {
		return nil, ErrAlreadyConverted
	}

	o := &model.Order{
		OrderRef:          newOrderRef(),
		Product:           l.Product,
		Quantity:          l.Quantity,
		Price:             l.Price,
		CustomerName:      l.CustomerName,
		CustomerEmail:     l.CustomerEmail,
		ContactNo:         l.ContactNo,
		CustomerAddress:   l.CustomerAddress,
		Pincode:           l.Pincode,
		PaymentStatus:     model.OrderStatusPending,
		DeliveryStatus:    model.DeliveryStatusPending,
		SellerID:          l.SellerID,
		Source:            l.Source,
		CancellationToken: uuid.NewString(),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	l.Status = model.LeadStatusConverted
	l.OrderID = &o.ID
	if err := s.leads.Update(ctx, l); err != nil {
		return nil, err
	}
	return o, nil
}
