package app

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

// capLen truncates a preview list to at most n entries.
func capLen[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func activeSubscriptions(subscriptions []models.Subscription) []models.Subscription {
	active := make([]models.Subscription, 0, len(subscriptions))
	for _, sub := range subscriptions {
		if sub.Status == models.SubscriptionActive {
			active = append(active, sub)
		}
	}
	return active
}

// totalInvested sums active subscription amounts. Advisory display value
// only; the server's balance remains authoritative.
func totalInvested(subscriptions []models.Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, sub := range subscriptions {
		if sub.Status == models.SubscriptionActive {
			total = total.Add(sub.Amount)
		}
	}
	return total
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// formatDate renders a timestamp for display, tolerating the zero value the
// normalizer produces for unparseable server timestamps.
func formatDate(ts time.Time) string {
	if ts.IsZero() {
		return "—"
	}
	return ts.Format("02/01/2006 15:04")
}
