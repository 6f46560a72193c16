// Package models defines the domain entities of the fund platform as
// consumed by the client. Authoritative definitions live server-side.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Deposit band enforced by the server and mirrored client-side, in COP.
var (
	MinDeposit = decimal.NewFromInt(10_000)
	MaxDeposit = decimal.NewFromInt(10_000_000)
)

// NotificationPreference selects how the platform notifies the user.
type NotificationPreference string

// Supported notification preferences.
const (
	NotifyEmail NotificationPreference = "EMAIL"
	NotifySMS   NotificationPreference = "SMS"
)

// User is the account profile as reported by the server. Balance is never
// mutated locally; it is replaced wholesale on every profile fetch.
type User struct {
	UserID                 string
	Email                  string
	Phone                  string
	NotificationPreference NotificationPreference
	CreatedAt              time.Time
	Balance                decimal.Decimal
}

// FundCategory classifies a fund. Display text only, no behavioral difference.
type FundCategory string

// Known fund categories.
const (
	CategoryFPV FundCategory = "FPV"
	CategoryFIC FundCategory = "FIC"
)

// DisplayName returns the human-readable category name.
func (c FundCategory) DisplayName() string {
	switch c {
	case CategoryFPV:
		return "Fondo de Pensiones Voluntarias"
	case CategoryFIC:
		return "Fondo de Inversión Colectiva"
	default:
		return string(c)
	}
}

// Fund is a read-only catalog entry.
type Fund struct {
	FundID        string
	Name          string
	MinimumAmount decimal.Decimal
	Category      FundCategory
	IsActive      bool
}

// SubscriptionStatus is the lifecycle state of a subscription.
type SubscriptionStatus string

// Subscription states. Cancellation is a status transition, not a deletion.
const (
	SubscriptionActive    SubscriptionStatus = "ACTIVE"
	SubscriptionCancelled SubscriptionStatus = "CANCELLED"
)

// Subscription is a user's position in a fund.
type Subscription struct {
	SubscriptionID   string
	FundID           string
	FundName         string
	Amount           decimal.Decimal
	SubscriptionDate time.Time
	Status           SubscriptionStatus
}

// TransactionType tags a ledger entry. The set is closed; unknown tags
// received from the server keep their literal value and render with the
// neutral defaults below.
type TransactionType string

// Known transaction types.
const (
	TransactionDeposit      TransactionType = "DEPOSIT"
	TransactionSubscription TransactionType = "SUBSCRIPTION"
	TransactionCancellation TransactionType = "CANCELLATION"
)

// ParseTransactionType normalizes a server-provided tag, case-insensitively.
func ParseTransactionType(raw string) TransactionType {
	return TransactionType(strings.ToUpper(strings.TrimSpace(raw)))
}

// Icon returns the display glyph for the type.
func (t TransactionType) Icon() string {
	switch t {
	case TransactionDeposit:
		return "💰"
	case TransactionSubscription:
		return "📈"
	case TransactionCancellation:
		return "📉"
	default:
		return "💳"
	}
}

// Sign returns "+" for money entering the available balance and "-" otherwise.
func (t TransactionType) Sign() string {
	if t == TransactionDeposit {
		return "+"
	}
	return "-"
}

// Transaction is an append-only ledger entry; the client only reads them.
type Transaction struct {
	TransactionID string
	Type          TransactionType
	Amount        decimal.Decimal
	FundID        string
	FundName      string
	Timestamp     time.Time
	Status        string
	Description   string
}

// DepositReceipt is the server's answer to a deposit.
type DepositReceipt struct {
	Message         string
	TransactionID   string
	AmountDeposited decimal.Decimal
	PreviousBalance decimal.Decimal
	NewBalance      decimal.Decimal
	Timestamp       time.Time
}
