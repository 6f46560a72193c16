package app

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

type portfolioData struct {
	subscriptions []models.Subscription
	transactions  []models.Transaction
}

// loadPortfolio fetches subscriptions and transactions concurrently,
// all-or-nothing like the dashboard batch.
func (a *App) loadPortfolio(ctx context.Context) (portfolioData, error) {
	var data portfolioData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		subscriptions, err := a.ledger.Subscriptions(ctx)
		data.subscriptions = subscriptions
		return err
	})
	g.Go(func() error {
		transactions, err := a.ledger.Transactions(ctx)
		data.transactions = transactions
		return err
	})

	if err := g.Wait(); err != nil {
		return portfolioData{}, err
	}
	return data, nil
}

func (a *App) portfolioScreen(ctx context.Context) screen {
	data, err := a.loadPortfolio(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Portfolio load failed")
		a.printf("\n⚠️  %s\n", api.ErrorMessage(err, "Error al cargar la información del portafolio"))
		if a.confirm("¿Reintentar?") {
			return screenPortfolio
		}
		return a.navPrompt(screenPortfolio)
	}

	user, _ := a.sessions.CurrentUser()
	active := activeSubscriptions(data.subscriptions)

	a.printf("\n📊 Mi Portafolio\n")
	a.printf("  💰 Saldo disponible: $%s COP\n", models.FormatCOP(user.Balance))
	a.printf("  📈 Total invertido:  $%s COP\n", models.FormatCOP(totalInvested(data.subscriptions)))
	a.printf("  🎯 Fondos activos:   %d\n", len(active))

	tab := "subscriptions"
	for {
		switch tab {
		case "subscriptions":
			a.renderSubscriptionsTab(data.subscriptions)
		case "transactions":
			a.renderTransactionsTab(data.transactions)
		}

		answer, ok := a.prompt("\n[i]nversiones [h]istorial [c N]ancelar [g]ráfico [r]ecargar [v]olver > ")
		if !ok {
			return screenQuit
		}
		fields := strings.Fields(strings.ToLower(answer))
		command := ""
		if len(fields) > 0 {
			command = fields[0]
		}

		switch command {
		case "i", "inversiones":
			tab = "subscriptions"
		case "h", "historial":
			tab = "transactions"
		case "r", "recargar":
			return screenPortfolio
		case "v", "volver", "":
			return a.navPrompt(screenPortfolio)
		case "g", "grafico", "gráfico":
			a.renderPortfolioChart(data.subscriptions)
		case "c", "cancelar":
			if len(fields) < 2 {
				a.printf("⚠️  Indica el número de la inversión: c 1\n")
				continue
			}
			if a.cancelSubscription(ctx, active, fields[1]) {
				// Reload both lists from the server instead of patching
				// local state.
				return screenPortfolio
			}
		default:
			a.printf("⚠️  Opción no válida\n")
		}
	}
}

func (a *App) renderSubscriptionsTab(subscriptions []models.Subscription) {
	a.printf("\n📈 Mis Inversiones (%d)\n", len(subscriptions))
	if len(subscriptions) == 0 {
		a.printf("  No tienes inversiones activas. Comienza a invertir en nuestros fondos disponibles.\n")
		return
	}
	index := 0
	for _, sub := range subscriptions {
		badge := "❌ Cancelada"
		position := "   "
		if sub.Status == models.SubscriptionActive {
			badge = "✅ Activa"
			index++
			position = "[" + strconv.Itoa(index) + "]"
		}
		a.printf("  %s %s — %s\n      💰 $%s COP — 📅 %s\n",
			position, sub.FundName, badge, models.FormatCOP(sub.Amount), formatDate(sub.SubscriptionDate))
	}
}

func (a *App) renderTransactionsTab(transactions []models.Transaction) {
	a.printf("\n📋 Historial (%d)\n", len(transactions))
	if len(transactions) == 0 {
		a.printf("  No tienes transacciones registradas. Realiza tu primer depósito o inversión.\n")
		return
	}
	for _, tx := range transactions {
		a.printf("  %s %s — %s$%s COP — %s\n",
			tx.Type.Icon(), tx.Description, tx.Type.Sign(), models.FormatCOP(tx.Amount), formatDate(tx.Timestamp))
	}
}

// cancelSubscription requires an explicit confirmation; declining leaves
// server and local state untouched. Returns true when a reload is needed.
func (a *App) cancelSubscription(ctx context.Context, active []models.Subscription, rawIndex string) bool {
	index, err := strconv.Atoi(rawIndex)
	if err != nil || index < 1 || index > len(active) {
		a.printf("⚠️  Inversión no encontrada\n")
		return false
	}
	target := active[index-1]

	if !a.confirm("¿Estás seguro de que deseas cancelar la suscripción a " + target.FundName + "?") {
		a.printf("Cancelación abortada.\n")
		return false
	}

	message, err := a.ledger.CancelSubscription(ctx, target.SubscriptionID)
	if err != nil {
		a.printf("⚠️  %s\n", api.ErrorMessage(err, "Error al cancelar la suscripción"))
		return false
	}

	if message == "" {
		message = "Suscripción cancelada"
	}
	a.printf("✅ %s\n", message)

	if err := a.sessions.RefreshProfile(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Profile refresh failed after cancellation")
	}
	return true
}
