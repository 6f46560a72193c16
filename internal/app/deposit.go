package app

import (
	"context"

	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
	"gitlab.com/yelinaung/invierte-cli/internal/validate"
)

// quickAmounts are the suggested deposit amounts, in COP.
var quickAmounts = []int64{50_000, 100_000, 250_000, 500_000, 1_000_000}

func (a *App) depositScreen(ctx context.Context) screen {
	user, _ := a.sessions.CurrentUser()

	a.printf("\n💳 Depositar Dinero\n")
	a.printf("💰 Saldo actual: $%s COP\n", models.FormatCOP(user.Balance))
	a.printf("Mínimo: $%s — Máximo: $%s\n", models.FormatCOP(models.MinDeposit), models.FormatCOP(models.MaxDeposit))
	a.printf("💡 Sugeridos: ")
	for i, quick := range quickAmounts {
		if i > 0 {
			a.printf("  ")
		}
		a.printf("$%s", models.FormatCOP(decimal.NewFromInt(quick)))
	}
	a.printf("\n")

	input, ok := a.prompt("Monto a depositar (v para volver): $")
	if !ok {
		return screenQuit
	}
	if input == "v" || input == "" {
		return screenDashboard
	}

	amount, parsed := models.ParseAmount(input)
	if !parsed {
		a.printf("⚠️  Ingresa un monto válido\n")
		return screenDeposit
	}
	if err := validate.DepositAmount(amount); err != nil {
		a.printf("⚠️  %s\n", err)
		return screenDeposit
	}

	receipt, err := a.ledger.Deposit(ctx, amount)
	if err != nil {
		a.printf("⚠️  %s\n", api.ErrorMessage(err, "Error al procesar el depósito. Inténtalo de nuevo."))
		if a.confirm("¿Reintentar?") {
			return screenDeposit
		}
		return screenDashboard
	}

	a.printf("✅ ¡Depósito exitoso! Se han agregado $%s COP a tu cuenta.\n",
		models.FormatCOP(receipt.AmountDeposited))

	if err := a.sessions.RefreshProfile(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Profile refresh failed after deposit")
	}

	a.printf("Redirigiendo al dashboard en 3 segundos...\n")
	a.sleep(redirectDelay)
	return screenDashboard
}
