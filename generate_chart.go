//go:build ignore
// +build ignore

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/invierte-cli/internal/app"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

func main() {
	subscriptions := []models.Subscription{
		{FundName: "FPV_BTG_PACTUAL_RECAUDADORA", Amount: decimal.NewFromInt(75_000), Status: models.SubscriptionActive, SubscriptionDate: time.Now()},
		{FundName: "FPV_BTG_PACTUAL_ECOPETROL", Amount: decimal.NewFromInt(125_000), Status: models.SubscriptionActive, SubscriptionDate: time.Now()},
		{FundName: "DEUDAPRIVADA", Amount: decimal.NewFromInt(50_000), Status: models.SubscriptionActive, SubscriptionDate: time.Now()},
		{FundName: "FDO-ACCIONES", Amount: decimal.NewFromInt(250_000), Status: models.SubscriptionActive, SubscriptionDate: time.Now()},
		{FundName: "FPV_BTG_PACTUAL_DINAMICA", Amount: decimal.NewFromInt(100_000), Status: models.SubscriptionCancelled, SubscriptionDate: time.Now()},
	}

	chartData, err := app.GeneratePortfolioChart(subscriptions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile("portafolio.png", chartData, 0600); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Created portafolio.png - Example portfolio breakdown chart")
}
