// Package mocks provides a scripted ledger service for testing screens.
package mocks

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

// LedgerAPI defines the remote operations the screens depend on.
// The interface lives here to avoid an import cycle between app and mocks.
type LedgerAPI interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req api.RegisterRequest) error
	Logout() error
	Me(ctx context.Context) (models.User, error)
	Deposit(ctx context.Context, amount decimal.Decimal) (models.DepositReceipt, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	Subscriptions(ctx context.Context) ([]models.Subscription, error)
	Funds(ctx context.Context) ([]models.Fund, error)
	Subscribe(ctx context.Context, fundID string, amount decimal.Decimal) (api.SubscribeReceipt, error)
	CancelSubscription(ctx context.Context, subscriptionID string) (string, error)
	Health(ctx context.Context) (string, error)
}

// SubscribeCall records a Subscribe invocation.
type SubscribeCall struct {
	FundID string
	Amount decimal.Decimal
}

// DepositCall records a Deposit invocation.
type DepositCall struct {
	Amount decimal.Decimal
}

// MockLedger simulates the remote ledger service for tests.
type MockLedger struct {
	mu sync.Mutex

	// Scripted state returned by the read operations.
	User             models.User
	FundList         []models.Fund
	TransactionList  []models.Transaction
	SubscriptionList []models.Subscription
	DepositReceipt   models.DepositReceipt
	SubscribeResult  api.SubscribeReceipt
	CancelMessage    string
	HealthStatus     string

	// Error injection, one per operation.
	LoginErr         error
	RegisterErr      error
	MeErr            error
	DepositErr       error
	TransactionsErr  error
	SubscriptionsErr error
	FundsErr         error
	SubscribeErr     error
	CancelErr        error

	// Recorded calls.
	LoginCalls      []string
	RegisterCalls   []api.RegisterRequest
	DepositCalls    []DepositCall
	SubscribeCalls  []SubscribeCall
	CancelCalls     []string
	MeCallCount     int
	LogoutCallCount int
}

var _ LedgerAPI = (*MockLedger)(nil)

// NewMockLedger creates an empty mock.
func NewMockLedger() *MockLedger {
	return &MockLedger{HealthStatus: "healthy"}
}

// Login records the attempt and returns the scripted error, if any.
func (m *MockLedger) Login(_ context.Context, email, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginCalls = append(m.LoginCalls, email)
	return m.LoginErr
}

// Register records the request and returns the scripted error, if any.
func (m *MockLedger) Register(_ context.Context, req api.RegisterRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = append(m.RegisterCalls, req)
	return m.RegisterErr
}

// Logout counts the call.
func (m *MockLedger) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LogoutCallCount++
	return nil
}

// Me returns the scripted user.
func (m *MockLedger) Me(_ context.Context) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MeCallCount++
	if m.MeErr != nil {
		return models.User{}, m.MeErr
	}
	return m.User, nil
}

// Deposit records the call and returns the scripted receipt.
func (m *MockLedger) Deposit(_ context.Context, amount decimal.Decimal) (models.DepositReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DepositCalls = append(m.DepositCalls, DepositCall{Amount: amount})
	if m.DepositErr != nil {
		return models.DepositReceipt{}, m.DepositErr
	}
	return m.DepositReceipt, nil
}

// Transactions returns the scripted list.
func (m *MockLedger) Transactions(_ context.Context) ([]models.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TransactionsErr != nil {
		return nil, m.TransactionsErr
	}
	return m.TransactionList, nil
}

// Subscriptions returns the scripted list.
func (m *MockLedger) Subscriptions(_ context.Context) ([]models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SubscriptionsErr != nil {
		return nil, m.SubscriptionsErr
	}
	return m.SubscriptionList, nil
}

// Funds returns the scripted catalog.
func (m *MockLedger) Funds(_ context.Context) ([]models.Fund, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FundsErr != nil {
		return nil, m.FundsErr
	}
	return m.FundList, nil
}

// Subscribe records the call and returns the scripted receipt.
func (m *MockLedger) Subscribe(_ context.Context, fundID string, amount decimal.Decimal) (api.SubscribeReceipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubscribeCalls = append(m.SubscribeCalls, SubscribeCall{FundID: fundID, Amount: amount})
	if m.SubscribeErr != nil {
		return api.SubscribeReceipt{}, m.SubscribeErr
	}
	return m.SubscribeResult, nil
}

// CancelSubscription records the call and returns the scripted message.
func (m *MockLedger) CancelSubscription(_ context.Context, subscriptionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CancelCalls = append(m.CancelCalls, subscriptionID)
	if m.CancelErr != nil {
		return "", m.CancelErr
	}
	return m.CancelMessage, nil
}

// Health returns the scripted status.
func (m *MockLedger) Health(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.HealthStatus, nil
}
