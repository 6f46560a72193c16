package validate

import (
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

func TestDepositAmount_BandProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.Int64Range(0, 20_000_000).Draw(t, "amount")
		amount := decimal.NewFromInt(raw)

		err := DepositAmount(amount)
		inBand := !amount.LessThan(models.MinDeposit) && !amount.GreaterThan(models.MaxDeposit)
		if inBand && err != nil {
			t.Fatalf("amount %s inside band rejected: %v", amount, err)
		}
		if !inBand && err == nil {
			t.Fatalf("amount %s outside band accepted", amount)
		}
	})
}

func TestSubscriptionAmount_BoundsProperty(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		minimum := decimal.NewFromInt(rapid.Int64Range(1, 1_000_000).Draw(t, "minimum"))
		balance := decimal.NewFromInt(rapid.Int64Range(0, 20_000_000).Draw(t, "balance"))
		amount := decimal.NewFromInt(rapid.Int64Range(0, 20_000_000).Draw(t, "amount"))

		err := SubscriptionAmount(amount, minimum, balance)
		valid := !amount.LessThan(minimum) && !amount.GreaterThan(balance)
		if valid && err != nil {
			t.Fatalf("amount %s with minimum %s balance %s rejected: %v", amount, minimum, balance, err)
		}
		if !valid && err == nil {
			t.Fatalf("amount %s with minimum %s balance %s accepted", amount, minimum, balance)
		}
	})
}
