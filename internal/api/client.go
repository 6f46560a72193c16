// Package api wraps the remote fund ledger service. It is the single
// chokepoint for all remote calls: it attaches the bearer token to every
// request, evicts the token on an authentication failure, and normalizes the
// response shapes the service has been observed to return.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

// TokenStore holds the bearer credential between requests. The client never
// interprets the token, only stores, attaches, and discards it.
type TokenStore interface {
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// Client is a typed client for the fund ledger service.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	tokens           TokenStore
	onSessionExpired func()
}

// New creates a ledger service client.
func New(baseURL string, timeout time.Duration, tokens TokenStore) *Client {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: trimmed,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokens,
	}
}

// OnSessionExpired registers the single subscriber notified when any call
// fails with an authentication error. The token is already discarded when the
// handler runs; the handler is responsible for navigation, nothing else.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// RegisterRequest carries the registration form fields.
type RegisterRequest struct {
	Email                  string                        `json:"email"`
	Password               string                        `json:"password"`
	Phone                  string                        `json:"phone"`
	NotificationPreference models.NotificationPreference `json:"notification_preference"`
}

// SubscribeReceipt is the server's answer to a fund subscription.
type SubscribeReceipt struct {
	Message       string `json:"message"`
	TransactionID string `json:"transaction_id"`
}

// InitFundsResult is the server's answer to the catalog seeding helper.
type InitFundsResult struct {
	Message      string
	FundsCreated []models.Fund
}

// Login exchanges credentials for a bearer token and persists it.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var auth authResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &auth)
	if err != nil {
		return err
	}
	return c.saveToken(auth.AccessToken)
}

// Register creates an account, receiving and persisting a bearer token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	var auth authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", req, &auth); err != nil {
		return err
	}
	return c.saveToken(auth.AccessToken)
}

// Logout discards the stored token. Purely local; the token simply expires
// server-side.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// Me fetches the current user profile.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var payload userPayload
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &payload); err != nil {
		return models.User{}, err
	}
	return payload.toModel(), nil
}

// Deposit adds money to the user's available balance.
func (c *Client) Deposit(ctx context.Context, amount decimal.Decimal) (models.DepositReceipt, error) {
	var payload depositPayload
	err := c.do(ctx, http.MethodPost, "/users/me/deposit", map[string]decimal.Decimal{
		"amount": amount,
	}, &payload)
	if err != nil {
		return models.DepositReceipt{}, err
	}
	return payload.toModel(), nil
}

// Transactions lists the user's ledger entries, newest first as reported by
// the server. Malformed or absent payloads normalize to an empty list.
func (c *Client) Transactions(ctx context.Context) ([]models.Transaction, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/users/me/transactions")
	if err != nil {
		return nil, err
	}
	return normalizeTransactions(raw), nil
}

// Subscriptions lists the user's fund subscriptions. Malformed or absent
// payloads normalize to an empty list.
func (c *Client) Subscriptions(ctx context.Context) ([]models.Subscription, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/users/me/subscriptions")
	if err != nil {
		return nil, err
	}
	return normalizeSubscriptions(raw), nil
}

// Funds lists the fund catalog, active or not. Malformed or absent payloads
// normalize to an empty list.
func (c *Client) Funds(ctx context.Context) ([]models.Fund, error) {
	raw, err := c.raw(ctx, http.MethodGet, "/funds")
	if err != nil {
		return nil, err
	}
	return normalizeFunds(raw), nil
}

// Subscribe opens a position in a fund.
func (c *Client) Subscribe(ctx context.Context, fundID string, amount decimal.Decimal) (SubscribeReceipt, error) {
	var receipt SubscribeReceipt
	err := c.do(ctx, http.MethodPost, "/funds/subscribe", map[string]any{
		"fund_id": fundID,
		"amount":  amount,
	}, &receipt)
	return receipt, err
}

// CancelSubscription terminates a subscription. The server transitions its
// status; nothing is deleted.
func (c *Client) CancelSubscription(ctx context.Context, subscriptionID string) (string, error) {
	var payload struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodDelete, "/funds/subscriptions/"+subscriptionID, nil, &payload)
	return payload.Message, err
}

// Health checks service availability.
func (c *Client) Health(ctx context.Context) (string, error) {
	var payload struct {
		Status string `json:"status"`
	}
	err := c.do(ctx, http.MethodGet, "/health", nil, &payload)
	return payload.Status, err
}

// Info fetches service metadata.
func (c *Client) Info(ctx context.Context) (map[string]any, error) {
	var payload map[string]any
	err := c.do(ctx, http.MethodGet, "/info", nil, &payload)
	return payload, err
}

// InitFunds seeds the fund catalog. Operator helper, not reachable from the
// regular screens.
func (c *Client) InitFunds(ctx context.Context) (InitFundsResult, error) {
	var payload struct {
		Message      string        `json:"message"`
		FundsCreated []fundPayload `json:"funds_created"`
	}
	if err := c.do(ctx, http.MethodPost, "/init-funds", nil, &payload); err != nil {
		return InitFundsResult{}, err
	}
	result := InitFundsResult{Message: payload.Message}
	for _, f := range payload.FundsCreated {
		result.FundsCreated = append(result.FundsCreated, f.toModel())
	}
	return result, nil
}

func (c *Client) saveToken(token string) error {
	if token == "" {
		return &APIError{StatusCode: http.StatusOK, Message: "la respuesta de autenticación no incluyó un token"}
	}
	if err := c.tokens.Save(token); err != nil {
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	return nil
}

// do executes a request and decodes a 2xx JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

// raw executes a request and returns the body bytes for the shape-tolerant
// list decoders.
func (c *Client) raw(ctx context.Context, method, path string) ([]byte, error) {
	return c.request(ctx, method, path, nil)
}

func (c *Client) request(ctx context.Context, method, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.expireSession(method, path)
		return nil, ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: serverMessage(raw)}
	}

	return raw, nil
}

// expireSession evicts the token and notifies the subscriber. Eviction is
// idempotent, so concurrent 401s racing each other are safe.
func (c *Client) expireSession(method, path string) {
	logger.Log.Warn().
		Str("method", method).
		Str("path", path).
		Msg("Authentication failure, discarding session token")

	if err := c.tokens.Clear(); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to clear session token")
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// serverMessage extracts the error text the service embeds in failure bodies.
func serverMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	switch {
	case payload.Message != "":
		return payload.Message
	case payload.Error != "":
		return payload.Error
	default:
		return payload.Detail
	}
}
