package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

func TestCapLen(t *testing.T) {
	t.Parallel()

	assert.Len(t, capLen([]int{1, 2, 3, 4, 5}, 3), 3)
	assert.Len(t, capLen([]int{1, 2}, 3), 2)
	assert.Empty(t, capLen([]int{}, 3))
}

func TestTotalInvested(t *testing.T) {
	t.Parallel()

	subscriptions := []models.Subscription{
		{Amount: decimal.NewFromInt(75_000), Status: models.SubscriptionActive},
		{Amount: decimal.NewFromInt(125_000), Status: models.SubscriptionActive},
		{Amount: decimal.NewFromInt(999_000), Status: models.SubscriptionCancelled},
	}

	assert.True(t, decimal.NewFromInt(200_000).Equal(totalInvested(subscriptions)))
	assert.True(t, decimal.Zero.Equal(totalInvested(nil)))
}

func TestEmailLocalPart(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ana", emailLocalPart("ana@example.com"))
	assert.Equal(t, "sin-arroba", emailLocalPart("sin-arroba"))
}

func TestFormatDate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "30/08/2026 10:15", formatDate(time.Date(2026, 8, 30, 10, 15, 0, 0, time.UTC)))
	assert.Equal(t, "—", formatDate(time.Time{}))
}
