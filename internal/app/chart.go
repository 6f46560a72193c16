package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-analyze/charts"
	"github.com/shopspring/decimal"

	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

var errNoActiveSubscriptions = errors.New("no active subscriptions to chart")

// GeneratePortfolioChart creates a pie chart of invested amount per fund for
// the active subscriptions. Returns PNG image as bytes.
func GeneratePortfolioChart(subscriptions []models.Subscription) ([]byte, error) {
	totals := aggregateByFund(subscriptions)
	if len(totals) == 0 {
		return nil, errNoActiveSubscriptions
	}

	var values []float64
	var fundNames []string
	for name, total := range totals {
		fundNames = append(fundNames, name)
		values = append(values, total.InexactFloat64())
	}

	p, err := charts.PieRender(
		values,
		charts.TitleOptionFunc(charts.TitleOption{
			Text: "Distribución del Portafolio",
		}),
		charts.LegendLabelsOptionFunc(fundNames),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	buf, err := p.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf, nil
}

// aggregateByFund sums active subscription amounts per fund name.
func aggregateByFund(subscriptions []models.Subscription) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, sub := range subscriptions {
		if sub.Status != models.SubscriptionActive {
			continue
		}
		name := sub.FundName
		if name == "" {
			name = sub.FundID
		}
		totals[name] = totals[name].Add(sub.Amount)
	}
	return totals
}

// renderPortfolioChart writes the chart PNG next to the configured output
// directory and tells the user where it landed.
func (a *App) renderPortfolioChart(subscriptions []models.Subscription) {
	data, err := GeneratePortfolioChart(subscriptions)
	if err != nil {
		if errors.Is(err, errNoActiveSubscriptions) {
			a.printf("⚠️  No tienes inversiones activas para graficar\n")
			return
		}
		logger.Log.Error().Err(err).Msg("Chart generation failed")
		a.printf("⚠️  Error al generar el gráfico\n")
		return
	}

	filename := filepath.Join(a.chartDir, fmt.Sprintf("portafolio_%s.png", time.Now().Format("2006-01-02")))
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to write chart file")
		a.printf("⚠️  Error al guardar el gráfico\n")
		return
	}
	a.printf("✅ Gráfico guardado en %s\n", filename)
}
