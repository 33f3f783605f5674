package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mdriyazakondo/book-curriter-server/internal/models"
	"github.com/mdriyazakondo/book-curriter-server/internal/repositories"
	"github.com/mdriyazakondo/book-curriter-server/internal/services"
	"github.com/mdriyazakondo/book-curriter-server/pkg/checkout"
)

// MockPublisher is a mock implementation of rabbitmq.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(eventType string, payload interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

// MockPaymentStore is a testify mock of repositories.PaymentRepository, for
// tests that need to force specific repository outcomes.
type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) Create(payment *models.Payment) error {
	args := m.Called(payment)
	return args.Error(0)
}

func (m *MockPaymentStore) GetByTransactionID(txID string) (*models.Payment, error) {
	args := m.Called(txID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentStore) GetByCustomerEmail(email string) ([]models.Payment, error) {
	args := m.Called(email)
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentStore) GetAll() ([]models.Payment, error) {
	args := m.Called()
	return args.Get(0).([]models.Payment), args.Error(1)
}

func (m *MockPaymentStore) UpdateStatusByOrderID(orderID, status string) error {
	args := m.Called(orderID, status)
	return args.Error(0)
}

// setupReconcileFixture seeds an order and a paid provider session pointing
// at it, returning everything a reconciliation test needs.
func setupReconcileFixture(t *testing.T) (*services.PaymentService, *repositories.MockOrderRepository, *repositories.MockPaymentRepository, *checkout.MockProvider, *models.Order) {
	t.Helper()

	orderRepo := repositories.NewMockOrderRepository()
	paymentRepo := repositories.NewMockPaymentRepository()
	provider := checkout.NewMockProvider()

	order := &models.Order{
		ID:            "o1",
		BookID:        "b1",
		BookName:      "The Go Programming Language",
		CustomerEmail: "reader@example.com",
		CustomerName:  "Reader",
		AuthorName:    "Alan Donovan",
		AuthorEmail:   "author@example.com",
		Quantity:      3,
		Price:         25.00,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	assert.NoError(t, orderRepo.Create(order))

	svc := services.NewPaymentService(paymentRepo, orderRepo, provider, nil,
		"https://example.com/success", "https://example.com/cancel")
	return svc, orderRepo, paymentRepo, provider, order
}

func TestPaymentService_ReconcilePaidSession(t *testing.T) {
	svc, orderRepo, paymentRepo, provider, order := setupReconcileFixture(t)

	provider.Seed(&checkout.Session{
		ID:            "cs_123",
		PaymentStatus: checkout.PaymentStatusPaid,
		TransactionID: "pi_abc",
		AmountTotal:   2500,
		CustomerEmail: order.CustomerEmail,
		OrderID:       order.ID,
	})

	result, err := svc.ReconcileSession("cs_123")
	assert.NoError(t, err)
	assert.True(t, result.Completed)
	assert.False(t, result.AlreadyProcessed)
	assert.Equal(t, "pi_abc", result.TransactionID)
	assert.Equal(t, order.ID, result.OrderID)

	payment, err := paymentRepo.GetByTransactionID("pi_abc")
	assert.NoError(t, err)
	assert.Equal(t, 25.00, payment.Price)
	assert.Equal(t, order.BookName, payment.BookName)
	assert.Equal(t, order.CustomerEmail, payment.CustomerEmail)

	updated, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)
	assert.Equal(t, 2, updated.Quantity)
}

func TestPaymentService_ReconcileIsIdempotent(t *testing.T) {
	svc, orderRepo, paymentRepo, provider, order := setupReconcileFixture(t)

	provider.Seed(&checkout.Session{
		ID:            "cs_123",
		PaymentStatus: checkout.PaymentStatusPaid,
		TransactionID: "pi_abc",
		AmountTotal:   2500,
		CustomerEmail: order.CustomerEmail,
		OrderID:       order.ID,
	})

	first, err := svc.ReconcileSession("cs_123")
	assert.NoError(t, err)
	assert.False(t, first.AlreadyProcessed)

	// The customer refreshing the success page retries the call.
	second, err := svc.ReconcileSession("cs_123")
	assert.NoError(t, err)
	assert.True(t, second.Completed)
	assert.True(t, second.AlreadyProcessed)
	assert.Equal(t, first.TransactionID, second.TransactionID)

	payments, err := paymentRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, payments, 1)

	// Quantity is decremented exactly once regardless of retries.
	updated, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)
}

func TestPaymentService_ReconcileUnpaidSessionHasNoSideEffects(t *testing.T) {
	svc, orderRepo, paymentRepo, provider, order := setupReconcileFixture(t)

	provider.Seed(&checkout.Session{
		ID:            "cs_unpaid",
		PaymentStatus: "unpaid",
		AmountTotal:   2500,
		CustomerEmail: order.CustomerEmail,
		OrderID:       order.ID,
	})

	result, err := svc.ReconcileSession("cs_unpaid")
	assert.NoError(t, err)
	assert.False(t, result.Completed)

	payments, err := paymentRepo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, payments)

	updated, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, updated.PaymentStatus)
	assert.Equal(t, 3, updated.Quantity)
}

func TestPaymentService_ReconcileMalformedSession(t *testing.T) {
	svc, _, _, provider, _ := setupReconcileFixture(t)

	// Session without an order reference in its metadata.
	provider.Seed(&checkout.Session{
		ID:            "cs_bad",
		PaymentStatus: checkout.PaymentStatusPaid,
		TransactionID: "pi_bad",
		AmountTotal:   2500,
	})

	_, err := svc.ReconcileSession("cs_bad")
	assert.ErrorIs(t, err, services.ErrMalformedSession)
}

func TestPaymentService_ReconcileOrderNotFound(t *testing.T) {
	svc, _, _, provider, _ := setupReconcileFixture(t)

	provider.Seed(&checkout.Session{
		ID:            "cs_orphan",
		PaymentStatus: checkout.PaymentStatusPaid,
		TransactionID: "pi_orphan",
		AmountTotal:   2500,
		OrderID:       "no-such-order",
	})

	_, err := svc.ReconcileSession("cs_orphan")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPaymentService_ReconcileSessionNotFound(t *testing.T) {
	svc, _, _, _, _ := setupReconcileFixture(t)

	_, err := svc.ReconcileSession("cs_unknown")
	assert.ErrorIs(t, err, checkout.ErrSessionNotFound)
}

func TestPaymentService_ReconcileProviderUnavailable(t *testing.T) {
	svc, _, _, provider, _ := setupReconcileFixture(t)

	provider.Unavailable = true
	_, err := svc.ReconcileSession("cs_123")
	assert.ErrorIs(t, err, checkout.ErrProviderUnavailable)
}

func TestPaymentService_ReconcileLostInsertRace(t *testing.T) {
	// A concurrent reconciliation can pass the existence check and then
	// lose the insert to the unique index. That must fold into the
	// already-processed result, not surface as an error.
	orderRepo := repositories.NewMockOrderRepository()
	provider := checkout.NewMockProvider()

	order := &models.Order{
		ID:            "o1",
		BookName:      "Compilers",
		CustomerEmail: "reader@example.com",
		Quantity:      1,
		Price:         50.00,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	assert.NoError(t, orderRepo.Create(order))

	provider.Seed(&checkout.Session{
		ID:            "cs_race",
		PaymentStatus: checkout.PaymentStatusPaid,
		TransactionID: "pi_race",
		AmountTotal:   5000,
		CustomerEmail: order.CustomerEmail,
		OrderID:       order.ID,
	})

	paymentStore := new(MockPaymentStore)
	paymentStore.On("GetByTransactionID", "pi_race").
		Return(nil, fmt.Errorf("payment for transaction pi_race: %w", repositories.ErrNotFound)).Once()
	paymentStore.On("Create", mock.AnythingOfType("*models.Payment")).
		Return(fmt.Errorf("payment for transaction pi_race: %w", repositories.ErrDuplicate)).Once()

	svc := services.NewPaymentService(paymentStore, orderRepo, provider, nil,
		"https://example.com/success", "https://example.com/cancel")

	result, err := svc.ReconcileSession("cs_race")
	assert.NoError(t, err)
	assert.True(t, result.Completed)
	assert.True(t, result.AlreadyProcessed)
	assert.Equal(t, "pi_race", result.TransactionID)
	paymentStore.AssertExpectations(t)

	// The losing call must not touch the order; the winner already did.
	updated, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusUnpaid, updated.PaymentStatus)
	assert.Equal(t, 1, updated.Quantity)
}

func TestPaymentService_ReconcilePublishesEvent(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	paymentRepo := repositories.NewMockPaymentRepository()
	provider := checkout.NewMockProvider()

	order := &models.Order{
		ID:            "o1",
		BookName:      "SICP",
		CustomerEmail: "reader@example.com",
		Quantity:      2,
		Price:         30.00,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	assert.NoError(t, orderRepo.Create(order))

	provider.Seed(&checkout.Session{
		ID:            "cs_evt",
		PaymentStatus: checkout.PaymentStatusPaid,
		TransactionID: "pi_evt",
		AmountTotal:   3000,
		CustomerEmail: order.CustomerEmail,
		OrderID:       order.ID,
	})

	events := new(MockPublisher)
	events.On("Publish", "payment.recorded", mock.Anything).Return(nil).Once()

	svc := services.NewPaymentService(paymentRepo, orderRepo, provider, events,
		"https://example.com/success", "https://example.com/cancel")

	_, err := svc.ReconcileSession("cs_evt")
	assert.NoError(t, err)
	events.AssertExpectations(t)
}

func TestPaymentService_CreateCheckoutSession(t *testing.T) {
	svc, _, _, provider, order := setupReconcileFixture(t)

	url, err := svc.CreateCheckoutSession(order.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, url)

	// The session carries the order reference reconciliation depends on.
	sessionID := url[strings.LastIndex(url, "/")+1:]
	sess, err := provider.RetrieveSession(sessionID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, sess.OrderID)
	assert.Equal(t, int64(2500), sess.AmountTotal)

	// Unknown order fails before the provider is involved.
	_, err = svc.CreateCheckoutSession("no-such-order")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
