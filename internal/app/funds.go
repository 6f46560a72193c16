package app

import (
	"context"
	"strconv"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
	"gitlab.com/yelinaung/invierte-cli/internal/validate"
)

func (a *App) fundsScreen(ctx context.Context) screen {
	catalog, err := a.ledger.Funds(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Fund catalog load failed")
		a.printf("\n⚠️  Error al cargar los fondos\n")
		if a.confirm("¿Reintentar?") {
			return screenFunds
		}
		return a.navPrompt(screenFunds)
	}

	// Only active funds are offered.
	funds := make([]models.Fund, 0, len(catalog))
	for _, fund := range catalog {
		if fund.IsActive {
			funds = append(funds, fund)
		}
	}

	user, _ := a.sessions.CurrentUser()
	a.printf("\n📊 Fondos de Inversión\n")
	a.printf("💰 Saldo disponible: $%s COP\n\n", models.FormatCOP(user.Balance))

	if len(funds) == 0 {
		a.printf("⚠️  No hay fondos disponibles. Actualmente no hay fondos activos para invertir.\n")
		if a.confirm("¿Recargar?") {
			return screenFunds
		}
		return a.navPrompt(screenFunds)
	}

	for i, fund := range funds {
		a.printf("[%d] %s — %s\n    Inversión mínima: $%s COP\n",
			i+1, fund.Name, fund.Category.DisplayName(), models.FormatCOP(fund.MinimumAmount))
	}

	choice, ok := a.prompt("\nNúmero del fondo para invertir (v para volver): ")
	if !ok {
		return screenQuit
	}
	if choice == "v" || choice == "" {
		return a.navPrompt(screenFunds)
	}

	index, err := strconv.Atoi(choice)
	if err != nil || index < 1 || index > len(funds) {
		a.printf("⚠️  Opción no válida\n")
		return screenFunds
	}

	a.subscribeTo(ctx, funds[index-1], user)
	return screenFunds
}

// subscribeTo runs the per-fund subscription form: the entered amount
// overrides the fund minimum, and submission is blocked locally below the
// minimum or above the available balance.
func (a *App) subscribeTo(ctx context.Context, fund models.Fund, user models.User) {
	label := "Monto a invertir (enter = mínimo $" + models.FormatCOP(fund.MinimumAmount) + "): $"
	input, ok := a.prompt(label)
	if !ok {
		return
	}

	amount := fund.MinimumAmount
	if input != "" {
		parsed, valid := models.ParseAmount(input)
		if !valid {
			a.printf("⚠️  Ingresa un monto válido\n")
			return
		}
		amount = parsed
	}

	if err := validate.SubscriptionAmount(amount, fund.MinimumAmount, user.Balance); err != nil {
		a.printf("⚠️  %s\n", err)
		return
	}

	receipt, err := a.ledger.Subscribe(ctx, fund.FundID, amount)
	if err != nil {
		a.printf("⚠️  %s\n", api.ErrorMessage(err, "Error al suscribirse al fondo"))
		return
	}

	a.printf("✅ ¡Suscripción exitosa a %s!\n", fund.Name)
	if receipt.Message != "" {
		logger.Log.Debug().Str("transaction_id", receipt.TransactionID).Msg(receipt.Message)
	}

	if err := a.sessions.RefreshProfile(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Profile refresh failed after subscription")
	}
}
