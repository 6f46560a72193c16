package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

// The service's list shapes have drifted across deployments: bare arrays vs
// envelope objects, "type" vs "transaction_type", "status" strings vs
// "is_active" booleans, "amount" vs "invested_amount". Each decoder in this
// file accepts every shape observed so far and normalizes to the domain
// model. A payload that matches none of them yields an empty list, never an
// error; screens render empty states instead of crashing.

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userPayload struct {
	UserID                 string          `json:"user_id"`
	Email                  string          `json:"email"`
	Phone                  string          `json:"phone"`
	NotificationPreference string          `json:"notification_preference"`
	CreatedAt              string          `json:"created_at"`
	Balance                decimal.Decimal `json:"balance"`
}

func (p userPayload) toModel() models.User {
	return models.User{
		UserID:                 p.UserID,
		Email:                  p.Email,
		Phone:                  p.Phone,
		NotificationPreference: models.NotificationPreference(p.NotificationPreference),
		CreatedAt:              parseTimestamp(p.CreatedAt),
		Balance:                p.Balance,
	}
}

type depositPayload struct {
	Message         string          `json:"message"`
	TransactionID   string          `json:"transaction_id"`
	AmountDeposited decimal.Decimal `json:"amount_deposited"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Timestamp       string          `json:"timestamp"`
}

func (p depositPayload) toModel() models.DepositReceipt {
	return models.DepositReceipt{
		Message:         p.Message,
		TransactionID:   p.TransactionID,
		AmountDeposited: p.AmountDeposited,
		PreviousBalance: p.PreviousBalance,
		NewBalance:      p.NewBalance,
		Timestamp:       parseTimestamp(p.Timestamp),
	}
}

type fundPayload struct {
	FundID        string          `json:"fund_id"`
	Name          string          `json:"name"`
	MinimumAmount decimal.Decimal `json:"minimum_amount"`
	Category      string          `json:"category"`
	IsActive      bool            `json:"is_active"`
}

func (p fundPayload) toModel() models.Fund {
	return models.Fund{
		FundID:        p.FundID,
		Name:          p.Name,
		MinimumAmount: p.MinimumAmount,
		Category:      models.FundCategory(p.Category),
		IsActive:      p.IsActive,
	}
}

type transactionPayload struct {
	TransactionID   string          `json:"transaction_id"`
	Type            string          `json:"type"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	FundID          string          `json:"fund_id"`
	FundName        string          `json:"fund_name"`
	Timestamp       string          `json:"timestamp"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
}

func (p transactionPayload) toModel() models.Transaction {
	rawType := p.TransactionType
	if rawType == "" {
		rawType = p.Type
	}
	txType := models.ParseTransactionType(rawType)

	description := p.Description
	if description == "" {
		description = fallbackDescription(txType, p.FundID)
	}

	return models.Transaction{
		TransactionID: p.TransactionID,
		Type:          txType,
		Amount:        p.Amount,
		FundID:        p.FundID,
		FundName:      p.FundName,
		Timestamp:     parseTimestamp(p.Timestamp),
		Status:        p.Status,
		Description:   description,
	}
}

// fallbackDescription synthesizes the human description older deployments
// omitted, using the same wording the platform uses elsewhere.
func fallbackDescription(t models.TransactionType, fundID string) string {
	switch t {
	case models.TransactionSubscription:
		return fmt.Sprintf("Inversión en fondo %s", fundID)
	case models.TransactionCancellation:
		return fmt.Sprintf("Cancelación de inversión en fondo %s", fundID)
	case models.TransactionDeposit:
		return "Depósito de dinero"
	default:
		return "Transacción"
	}
}

type subscriptionPayload struct {
	SubscriptionID   string           `json:"subscription_id"`
	FundID           string           `json:"fund_id"`
	FundName         string           `json:"fund_name"`
	Amount           *decimal.Decimal `json:"amount"`
	InvestedAmount   *decimal.Decimal `json:"invested_amount"`
	SubscriptionDate string           `json:"subscription_date"`
	Status           string           `json:"status"`
	IsActive         *bool            `json:"is_active"`
}

func (p subscriptionPayload) toModel() models.Subscription {
	amount := decimal.Zero
	switch {
	case p.Amount != nil:
		amount = *p.Amount
	case p.InvestedAmount != nil:
		amount = *p.InvestedAmount
	}

	status := models.SubscriptionStatus(strings.ToUpper(strings.TrimSpace(p.Status)))
	if p.Status == "" {
		// Older deployments report a boolean instead of a status string.
		// Entries under "active_subscriptions" with neither are active.
		if p.IsActive != nil && !*p.IsActive {
			status = models.SubscriptionCancelled
		} else {
			status = models.SubscriptionActive
		}
	}

	return models.Subscription{
		SubscriptionID:   p.SubscriptionID,
		FundID:           p.FundID,
		FundName:         p.FundName,
		Amount:           amount,
		SubscriptionDate: parseTimestamp(p.SubscriptionDate),
		Status:           status,
	}
}

func normalizeTransactions(raw []byte) []models.Transaction {
	var payloads []transactionPayload
	if !decodeList(raw, "transactions", &payloads) {
		return []models.Transaction{}
	}
	transactions := make([]models.Transaction, 0, len(payloads))
	for _, p := range payloads {
		transactions = append(transactions, p.toModel())
	}
	return transactions
}

func normalizeSubscriptions(raw []byte) []models.Subscription {
	var payloads []subscriptionPayload
	if !decodeList(raw, "active_subscriptions", &payloads) {
		return []models.Subscription{}
	}
	subscriptions := make([]models.Subscription, 0, len(payloads))
	for _, p := range payloads {
		subscriptions = append(subscriptions, p.toModel())
	}
	return subscriptions
}

func normalizeFunds(raw []byte) []models.Fund {
	var payloads []fundPayload
	if !decodeList(raw, "funds", &payloads) {
		return []models.Fund{}
	}
	funds := make([]models.Fund, 0, len(payloads))
	for _, p := range payloads {
		funds = append(funds, p.toModel())
	}
	return funds
}

// decodeList accepts either a bare JSON array or an envelope object wrapping
// the array under envelopeKey. Returns false when neither shape matches.
func decodeList(raw []byte, envelopeKey string, out any) bool {
	if len(raw) == 0 {
		return false
	}

	if err := json.Unmarshal(raw, out); err == nil {
		return true
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		logger.Log.Warn().
			Str("envelope_key", envelopeKey).
			Msg("Unrecognized list payload shape, treating as empty")
		return false
	}
	inner, ok := envelope[envelopeKey]
	if !ok {
		return false
	}
	if err := json.Unmarshal(inner, out); err != nil {
		logger.Log.Warn().
			Str("envelope_key", envelopeKey).
			Err(err).
			Msg("Malformed enveloped list payload, treating as empty")
		return false
	}
	return true
}

// timestampLayouts covers the formats the service has emitted.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}
