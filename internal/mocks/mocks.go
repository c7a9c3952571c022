// Package mocks holds testify doubles for the repository, gateway and
// notification interfaces used by the service tests.
package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/notify"
	"gorm.io/gorm"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByRef(ctx context.Context, ref string) (*model.Order, error) {
	args := m.Called(ctx, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, status model.OrderStatus, sellerID string, limit, offset int) ([]model.Order, int64, error) {
	args := m.Called(ctx, status, sellerID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) MarkRead(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockOrderRepository) SetDB(db *gorm.DB) {
	m.Called(db)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, l *model.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id uint64) (*model.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, l *model.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]model.Lead, int64, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Lead), args.Get(1).(int64), args.Error(2)
}

func (m *MockLeadRepository) SetDB(db *gorm.DB) {
	m.Called(db)
}

type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *model.ShaktiCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) FindByPhone(ctx context.Context, phone string) (*model.ShaktiCard, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShaktiCard), args.Error(1)
}

func (m *MockCardRepository) Update(ctx context.Context, card *model.ShaktiCard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) SetDB(db *gorm.DB) {
	m.Called(db)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency string, captureImmediately bool, notes map[string]string) (string, error) {
	args := m.Called(ctx, amountMinor, currency, captureImmediately, notes)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Capture(ctx context.Context, paymentID string, amountMinor int64, currency string) (string, error) {
	args := m.Called(ctx, paymentID, amountMinor, currency)
	return args.String(0), args.Error(1)
}

func (m *MockGateway) Refund(ctx context.Context, paymentID string, amountMinor int64, notes map[string]string) (string, error) {
	args := m.Called(ctx, paymentID, amountMinor, notes)
	return args.String(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, tpl notify.Template, recipient string, data map[string]string) error {
	args := m.Called(ctx, tpl, recipient, data)
	return args.Error(0)
}

type MockCardService struct {
	mock.Mock
}

func (m *MockCardService) IssueOnCapture(ctx context.Context, rawPhone, customerName string, amount decimal.Decimal) (*model.ShaktiCard, error) {
	args := m.Called(ctx, rawPhone, customerName, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShaktiCard), args.Error(1)
}

func (m *MockCardService) FindByPhone(ctx context.Context, rawPhone string) (*model.ShaktiCard, error) {
	args := m.Called(ctx, rawPhone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShaktiCard), args.Error(1)
}
