package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memTokens is a minimal in-memory TokenStore for exercising the client.
type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, m.token != ""
}

func (m *memTokens) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func TestLogin(t *testing.T) {
	t.Parallel()

	t.Run("persists the returned token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/auth/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, "ana@example.com", body["email"])
			require.Equal(t, "secreto", body["password"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token": "tok-123", "token_type": "bearer"}`))
		}))
		defer server.Close()

		tokens := &memTokens{}
		client := New(server.URL, 5*time.Second, tokens)

		err := client.Login(context.Background(), "ana@example.com", "secreto")
		require.NoError(t, err)

		token, ok := tokens.Token()
		require.True(t, ok)
		assert.Equal(t, "tok-123", token)
	})

	t.Run("rejects a response without a token", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"token_type": "bearer"}`))
		}))
		defer server.Close()

		tokens := &memTokens{}
		client := New(server.URL, 5*time.Second, tokens)

		err := client.Login(context.Background(), "ana@example.com", "secreto")
		require.Error(t, err)

		_, ok := tokens.Token()
		assert.False(t, ok)
	})

	t.Run("surfaces the server's rejection message", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail": "Credenciales inválidas"}`))
		}))
		defer server.Close()

		client := New(server.URL, 5*time.Second, &memTokens{})

		err := client.Login(context.Background(), "ana@example.com", "mala")
		require.Error(t, err)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Credenciales inválidas", apiErr.Message)
	})
}

func TestBearerAttachment(t *testing.T) {
	t.Parallel()

	t.Run("attaches the stored token", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"user_id": "u-1", "email": "ana@example.com", "balance": "150000"}`))
		}))
		defer server.Close()

		tokens := &memTokens{token: "tok-123"}
		client := New(server.URL, 5*time.Second, tokens)

		user, err := client.Me(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer tok-123", gotAuth)
		assert.Equal(t, "u-1", user.UserID)
		assert.True(t, decimal.NewFromInt(150_000).Equal(user.Balance))
	})

	t.Run("sends no header without a token", func(t *testing.T) {
		t.Parallel()

		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"status": "healthy"}`))
		}))
		defer server.Close()

		client := New(server.URL, 5*time.Second, &memTokens{})

		status, err := client.Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "healthy", status)
		assert.Empty(t, gotAuth)
	})
}

func TestSessionExpiry(t *testing.T) {
	t.Parallel()

	t.Run("401 evicts the token and notifies once", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail": "Not authenticated"}`))
		}))
		defer server.Close()

		tokens := &memTokens{token: "stale"}
		client := New(server.URL, 5*time.Second, tokens)

		var notified int
		client.OnSessionExpired(func() { notified++ })

		_, err := client.Me(context.Background())
		require.ErrorIs(t, err, ErrSessionExpired)

		_, ok := tokens.Token()
		assert.False(t, ok, "token should be evicted after a 401")
		assert.Equal(t, 1, notified)
	})

	t.Run("401 without a subscriber still evicts", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		tokens := &memTokens{token: "stale"}
		client := New(server.URL, 5*time.Second, tokens)

		_, err := client.Transactions(context.Background())
		require.ErrorIs(t, err, ErrSessionExpired)

		_, ok := tokens.Token()
		assert.False(t, ok)
	})
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/me/deposit", r.URL.Path)

		var body map[string]decimal.Decimal
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.True(t, decimal.NewFromInt(50_000).Equal(body["amount"]))

		_, _ = w.Write([]byte(`{
			"message": "Depósito exitoso",
			"transaction_id": "tx-9",
			"amount_deposited": "50000",
			"previous_balance": "100000",
			"new_balance": "150000",
			"timestamp": "2026-08-30T10:15:00Z"
		}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, &memTokens{token: "tok"})

	receipt, err := client.Deposit(context.Background(), decimal.NewFromInt(50_000))
	require.NoError(t, err)
	assert.Equal(t, "tx-9", receipt.TransactionID)
	assert.True(t, decimal.NewFromInt(50_000).Equal(receipt.AmountDeposited))
	assert.True(t, decimal.NewFromInt(150_000).Equal(receipt.NewBalance))
	assert.Equal(t, 2026, receipt.Timestamp.Year())
}

func TestSubscribe(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/funds/subscribe", r.URL.Path)

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Contains(t, body, "fund_id")
		require.Contains(t, body, "amount")

		_, _ = w.Write([]byte(`{"message": "Suscripción exitosa", "transaction_id": "tx-11"}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, &memTokens{token: "tok"})

	receipt, err := client.Subscribe(context.Background(), "f-1", decimal.NewFromInt(75_000))
	require.NoError(t, err)
	assert.Equal(t, "tx-11", receipt.TransactionID)
}

func TestCancelSubscription(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/funds/subscriptions/sub-7", r.URL.Path)
		_, _ = w.Write([]byte(`{"message": "Suscripción cancelada"}`))
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, &memTokens{token: "tok"})

	msg, err := client.CancelSubscription(context.Background(), "sub-7")
	require.NoError(t, err)
	assert.Equal(t, "Suscripción cancelada", msg)
}

func TestContextCancellation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := New(server.URL, 5*time.Second, &memTokens{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Funds(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{
			name:     "server message wins",
			err:      &APIError{StatusCode: 400, Message: "Saldo insuficiente"},
			fallback: "Error al procesar",
			want:     "Saldo insuficiente",
		},
		{
			name:     "empty server message falls back",
			err:      &APIError{StatusCode: 500},
			fallback: "Error al procesar",
			want:     "Error al procesar",
		},
		{
			name:     "non-API error falls back",
			err:      context.DeadlineExceeded,
			fallback: "Error de conexión",
			want:     "Error de conexión",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ErrorMessage(tt.err, tt.fallback))
		})
	}
}
