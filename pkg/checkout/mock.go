package checkout

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockProvider is an in-memory Provider for tests. Sessions start unpaid;
// tests call MarkPaid to simulate the customer completing checkout.
type MockProvider struct {
	sessions map[string]*Session
	mu       sync.Mutex

	// Unavailable makes every call fail with ErrProviderUnavailable.
	Unavailable bool
}

// NewMockProvider creates an empty mock provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{sessions: make(map[string]*Session)}
}

// CreateSession records a new unpaid session.
func (m *MockProvider) CreateSession(req CreateSessionRequest) (*Session, error) {
	if m.Unavailable {
		return nil, ErrProviderUnavailable
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	id := "cs_" + uuid.New().String()[:8]
	sess := &Session{
		ID:            id,
		URL:           "https://checkout.example.com/pay/" + id,
		PaymentStatus: "unpaid",
		AmountTotal:   req.AmountMinor,
		CustomerEmail: req.CustomerEmail,
		OrderID:       req.OrderID,
	}
	m.sessions[id] = sess
	return sess, nil
}

// RetrieveSession returns a previously created session.
func (m *MockProvider) RetrieveSession(sessionID string) (*Session, error) {
	if m.Unavailable {
		return nil, ErrProviderUnavailable
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	copied := *sess
	return &copied, nil
}

// Seed installs a session verbatim, for tests that need full control over
// its fields.
func (m *MockProvider) Seed(sess *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
}

// MarkPaid flips a session to paid and assigns it a transaction ID.
func (m *MockProvider) MarkPaid(sessionID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[sessionID]
	if !ok {
		return ""
	}
	sess.PaymentStatus = PaymentStatusPaid
	if sess.TransactionID == "" {
		sess.TransactionID = "pi_" + uuid.New().String()[:8]
	}
	return sess.TransactionID
}
