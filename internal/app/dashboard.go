package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

// Preview caps on the dashboard.
const (
	dashboardFundLimit         = 3
	dashboardTransactionLimit  = 5
	dashboardSubscriptionLimit = 3
)

type dashboardData struct {
	funds         []models.Fund
	transactions  []models.Transaction
	subscriptions []models.Subscription
}

// loadDashboard fetches the three dashboard collections concurrently.
// All-or-nothing: a single failure fails the whole batch so the screen never
// renders a partial subset.
func (a *App) loadDashboard(ctx context.Context) (dashboardData, error) {
	var data dashboardData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		funds, err := a.ledger.Funds(ctx)
		data.funds = funds
		return err
	})
	g.Go(func() error {
		transactions, err := a.ledger.Transactions(ctx)
		data.transactions = transactions
		return err
	})
	g.Go(func() error {
		subscriptions, err := a.ledger.Subscriptions(ctx)
		data.subscriptions = subscriptions
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboardData{}, err
	}
	return data, nil
}

func (a *App) dashboardScreen(ctx context.Context) screen {
	data, err := a.loadDashboard(ctx)
	if err != nil {
		logger.Log.Error().Err(err).Msg("Dashboard load failed")
		a.printf("\n⚠️  Error al cargar los datos del dashboard\n")
		if a.confirm("¿Reintentar?") {
			return screenDashboard
		}
		return a.navPrompt(screenDashboard)
	}

	// The profile is re-fetched after the batch so the rendered balance is
	// the server's latest word, never a locally derived value.
	if err := a.sessions.RefreshProfile(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Profile refresh failed after dashboard load")
	}

	user, _ := a.sessions.CurrentUser()
	active := activeSubscriptions(data.subscriptions)

	a.printf("\n¡Bienvenido, %s! 👋\n", emailLocalPart(user.Email))
	a.printf("\n💰 Resumen Financiero\n")
	a.printf("  Saldo disponible:  $%s COP\n", models.FormatCOP(user.Balance))
	a.printf("  Total invertido:   $%s COP\n", models.FormatCOP(totalInvested(data.subscriptions)))
	a.printf("  Fondos activos:    %d\n", len(active))

	a.printf("\n📈 Fondos Destacados\n")
	if len(data.funds) == 0 {
		a.printf("  No hay fondos disponibles\n")
	}
	for _, fund := range capLen(data.funds, dashboardFundLimit) {
		a.printf("  %s [%s] — mín. $%s COP\n", fund.Name, fund.Category, models.FormatCOP(fund.MinimumAmount))
	}

	a.printf("\n📋 Transacciones Recientes\n")
	if len(data.transactions) == 0 {
		a.printf("  No hay transacciones recientes\n")
	}
	for _, tx := range capLen(data.transactions, dashboardTransactionLimit) {
		a.printf("  %s %s %s$%s COP\n", tx.Type.Icon(), tx.Type, tx.Type.Sign(), models.FormatCOP(tx.Amount))
	}

	a.printf("\n🎯 Mis Suscripciones\n")
	if len(active) == 0 {
		a.printf("  No tienes suscripciones activas\n")
	}
	for _, sub := range capLen(active, dashboardSubscriptionLimit) {
		a.printf("  %s — $%s COP\n", sub.FundName, models.FormatCOP(sub.Amount))
	}

	return a.navPrompt(screenDashboard)
}
