package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/snazzify/snazzpay-backend/internal/gateway"
	"github.com/snazzify/snazzpay-backend/internal/mocks"
	"github.com/snazzify/snazzpay-backend/internal/model"
	"github.com/snazzify/snazzpay-backend/internal/notify"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func authorizedOrder(t *testing.T, price string) *model.Order {
	return &model.Order{
		ID:                1,
		OrderRef:          "SNZ-TEST0001",
		Product:           "Handloom saree",
		Quantity:          1,
		Price:             dec(t, price),
		CustomerName:      "Asha Patel",
		CustomerEmail:     "asha@example.com",
		ContactNo:         "9876543210",
		PaymentStatus:     model.OrderStatusAuthorized,
		DeliveryStatus:    model.DeliveryStatusPending,
		PaymentID:         "pay_123",
		CancellationToken: "tok-secret",
	}
}

func TestAuthorizeCreatesHold(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")

	gw.On("CreateOrder", mock.Anything, int64(149900), "INR", false, mock.Anything).
		Return("order_gw_1", nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*model.Order")).Return(nil)

	o, err := svc.Authorize(context.Background(), AuthorizeInput{
		Product:      "Handloom saree",
		Amount:       dec(t, "1499.00"),
		CustomerName: "Asha Patel",
		ContactNo:    "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAuthorized, o.PaymentStatus)
	assert.Equal(t, "order_gw_1", o.GatewayOrderID)
	assert.NotEmpty(t, o.OrderRef)
	assert.NotEmpty(t, o.CancellationToken)
	assert.NotEqual(t, o.OrderRef, o.GatewayOrderID)
	gw.AssertExpectations(t)
	orders.AssertExpectations(t)
}

func TestAuthorizeRejectsNonPositiveAmount(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")

	for _, amount := range []string{"0", "-10"} {
		_, err := svc.Authorize(context.Background(), AuthorizeInput{
			Product:      "x",
			Amount:       dec(t, amount),
			CustomerName: "A",
			ContactNo:    "9876543210",
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	gw.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthorizeRelaysGatewayRejection(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")

	rejection := &gateway.RejectedError{Description: "Order amount exceeds maximum allowed"}
	gw.On("CreateOrder", mock.Anything, mock.Anything, "INR", false, mock.Anything).
		Return("", rejection)

	_, err := svc.Authorize(context.Background(), AuthorizeInput{
		Product:      "x",
		Amount:       dec(t, "99999999"),
		CustomerName: "A",
		ContactNo:    "9876543210",
	})
	var rej *gateway.RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Order amount exceeds maximum allowed", rej.Description)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCaptureOnDispatch(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	sender := new(mocks.MockSender)
	o := authorizedOrder(t, "1499.00")

	orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)
	gw.On("Capture", mock.Anything, "pay_123", int64(149900), "INR").Return("cap_1", nil)
	orders.On("Update", mock.Anything, o).Return(nil)
	sender.On("Send", mock.Anything, notify.TemplateDispatch, "asha@example.com", mock.Anything).Return(nil)

	svc := NewOrderService(orders, nil, gw, sender, nil, "INR")
	got, err := svc.CaptureOnDispatch(context.Background(), o.OrderRef, DispatchInput{
		TrackingNumber: "TRK1001",
		CourierCompany: "Delhivery",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, got.PaymentStatus)
	assert.Equal(t, model.DeliveryStatusDispatched, got.DeliveryStatus)
	assert.Equal(t, "TRK1001", got.TrackingNumber)
	gw.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestCaptureTwiceFailsWithoutMutation(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	o := authorizedOrder(t, "1499.00")
	o.PaymentStatus = model.OrderStatusPaid

	orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)

	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")
	_, err := svc.CaptureOnDispatch(context.Background(), o.OrderRef, DispatchInput{})
	assert.ErrorIs(t, err, ErrAlreadyCaptured)
	// No second charge, no status write.
	gw.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, model.OrderStatusPaid, o.PaymentStatus)
}

func TestCaptureGatewayFailureLeavesStateIntact(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	o := authorizedOrder(t, "1499.00")

	orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)
	gw.On("Capture", mock.Anything, "pay_123", int64(149900), "INR").
		Return("", &gateway.RejectedError{Description: "capture declined"})

	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")
	_, err := svc.CaptureOnDispatch(context.Background(), o.OrderRef, DispatchInput{})
	require.Error(t, err)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, model.OrderStatusAuthorized, o.PaymentStatus)
}

func TestCancelBeforeDispatchWithCorrectToken(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	o := authorizedOrder(t, "500.00")

	orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)
	gw.On("Refund", mock.Anything, "pay_123", int64(50000), mock.Anything).Return("rfnd_1", nil)
	orders.On("Update", mock.Anything, o).Return(nil)

	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")
	got, err := svc.CancelBeforeDispatch(context.Background(), o.OrderRef, "tok-secret")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusVoided, got.PaymentStatus)
	require.NotNil(t, got.RefundAmount)
	assert.True(t, got.RefundAmount.Equal(dec(t, "500.00")), "refund amount %s", got.RefundAmount)
	gw.AssertNumberOfCalls(t, "Refund", 1)
}

func TestCancelBeforeDispatchWrongToken(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	o := authorizedOrder(t, "500.00")

	orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)

	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")
	for _, token := range []string{"", "TOK-SECRET", "tok-secret ", "wrong"} {
		_, err := svc.CancelBeforeDispatch(context.Background(), o.OrderRef, token)
		assert.ErrorIs(t, err, ErrInvalidCancellationToken, "token %q", token)
	}
	// A bad token must never reach the gateway.
	gw.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelBeforeDispatchWithoutPaymentVoidsLocally(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	o := authorizedOrder(t, "500.00")
	o.PaymentID = ""

	orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)
	orders.On("Update", mock.Anything, o).Return(nil)

	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")
	got, err := svc.CancelBeforeDispatch(context.Background(), o.OrderRef, "tok-secret")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusVoided, got.PaymentStatus)
	assert.Nil(t, got.RefundAmount)
	gw.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelWithFeeSplit(t *testing.T) {
	tests := []struct {
		name       string
		total      string
		fee        string
		wantFee    int64
		wantRefund int64
	}{
		{"spec scenario 1000/300", "1000.00", "300", 30000, 70000},
		{"small fee", "500.00", "50.00", 5000, 45000},
		{"paise amounts", "999.99", "333.33", 33333, 66666},
		{"rounding half up", "100.005", "33.335", 3334, 6667},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			gw := new(mocks.MockGateway)
			o := authorizedOrder(t, tt.total)
			o.PaymentStatus = model.OrderStatusPaid

			orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)
			gw.On("Capture", mock.Anything, "pay_123", tt.wantFee, "INR").Return("cap_fee", nil)
			orders.On("Update", mock.Anything, o).Return(nil)
			gw.On("Refund", mock.Anything, "pay_123", tt.wantRefund, mock.Anything).Return("rfnd_1", nil)

			svc := NewOrderService(orders, nil, gw, nil, nil, "INR")
			got, err := svc.CancelWithFee(context.Background(), o.OrderRef, dec(t, tt.total), dec(t, tt.fee))
			require.NoError(t, err)
			assert.Equal(t, model.OrderStatusRefunded, got.PaymentStatus)
			require.NotNil(t, got.RefundAmount)

			// Conservation: captured + refunded covers the total to the paise.
			totalMinor := dec(t, tt.total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
			assert.Equal(t, totalMinor, tt.wantFee+tt.wantRefund)
			gw.AssertExpectations(t)
		})
	}
}

func TestCancelWithFeeRejectsFeeAtOrAboveTotal(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	svc := NewOrderService(orders, nil, gw, nil, nil, "INR")

	cases := [][2]string{{"1000", "1000"}, {"1000", "1200"}, {"0.01", "0.01"}}
	for _, c := range cases {
		_, err := svc.CancelWithFee(context.Background(), "SNZ-X", dec(t, c[0]), dec(t, c[1]))
		assert.ErrorIs(t, err, ErrFeeExceedsTotal, "total=%s fee=%s", c[0], c[1])
	}
	gw.AssertNotCalled(t, "Capture", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	gw.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelWithFeePartialFailure(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	gw := new(mocks.MockGateway)
	sender := new(mocks.MockSender)
	o := authorizedOrder(t, "1000.00")
	o.PaymentStatus = model.OrderStatusPaid

	orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)
	gw.On("Capture", mock.Anything, "pay_123", int64(30000), "INR").Return("cap_fee", nil)
	orders.On("Update", mock.Anything, o).Return(nil)
	gw.On("Refund", mock.Anything, "pay_123", int64(70000), mock.Anything).
		Return("", errors.New("gateway timeout"))
	sender.On("Send", mock.Anything, notify.TemplateInternalAlert, mock.Anything, mock.Anything).Return(nil)

	svc := NewOrderService(orders, nil, gw, sender, nil, "INR")
	got, err := svc.CancelWithFee(context.Background(), o.OrderRef, dec(t, "1000.00"), dec(t, "300"))

	var pf *PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.True(t, pf.FeeCaptured.Equal(dec(t, "300")), "fee %s", pf.FeeCaptured)
	assert.True(t, pf.RefundDue.Equal(dec(t, "700")), "refund due %s", pf.RefundDue)
	// The order stays fee_charged so the operator can finish the refund.
	assert.Equal(t, model.OrderStatusFeeCharged, got.PaymentStatus)
	sender.AssertExpectations(t)
}

func TestRecordPaymentIdempotent(t *testing.T) {
	orders := new(mocks.MockOrderRepository)
	o := authorizedOrder(t, "500.00")

	orders.On("FindByRef", mock.Anything, o.OrderRef).Return(o, nil)

	svc := NewOrderService(orders, nil, nil, nil, nil, "INR")

	got, err := svc.RecordPayment(context.Background(), o.OrderRef, "pay_123")
	require.NoError(t, err)
	assert.Equal(t, "pay_123", got.PaymentID)
	orders.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	_, err = svc.RecordPayment(context.Background(), o.OrderRef, "pay_other")
	assert.Error(t, err)
}
