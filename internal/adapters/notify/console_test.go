package notify_test

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/alejandrodnm/dealscan/internal/adapters/notify"
	"github.com/alejandrodnm/dealscan/internal/domain"
	"github.com/alejandrodnm/dealscan/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeReport(address string, cashFlow float64) ports.DealReport {
	return ports.DealReport{
		Inputs: domain.DealInputs{Address: address, PurchasePrice: 450000, RentMonthly: 3200},
		Metrics: domain.DealMetrics{
			LoanAmount:           360000,
			MonthlyDebtService:   2395.09,
			MonthlyCashFlow:      cashFlow,
			AnnualCashFlow:       cashFlow * 12,
			CapRatePct:           6.2,
			CashOnCashPct:        8.4,
			PricePerSqft:         204.55,
			BreakevenRentMonthly: 2950,
		},
		Tier: domain.TierGreen,
	}
}

func TestConsole_ShowDeal(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	err := c.ShowDeal(context.Background(), makeReport("123 Main St", 310))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "GREEN")
	assert.Contains(t, out, "123 Main St")
	assert.Contains(t, out, "2395.09")
	assert.Contains(t, out, "$2950/mo")
	assert.Contains(t, out, "204.55")
}

func TestConsole_ShowDeal_InfeasibleBreakeven(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	r := makeReport("123 Main St", -50)
	r.Tier = domain.TierRed
	r.Metrics.BreakevenRentMonthly = math.NaN()

	require.NoError(t, c.ShowDeal(context.Background(), r))

	// el breakeven infeasible se marca, nunca se imprime como número
	out := buf.String()
	assert.Contains(t, out, "INFEASIBLE")
	assert.NotContains(t, out, "NaN")
}

func TestConsole_ShowDeal_NoSqft(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	r := makeReport("123 Main St", 310)
	r.Metrics.PricePerSqft = math.NaN()

	require.NoError(t, c.ShowDeal(context.Background(), r))
	assert.Contains(t, buf.String(), "—")
	assert.NotContains(t, buf.String(), "NaN")
}

func TestConsole_ShowDeal_SavedID(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	r := makeReport("123 Main St", 310)
	r.ID = "a1b2c3"

	require.NoError(t, c.ShowDeal(context.Background(), r))
	assert.Contains(t, buf.String(), "saved deal id: a1b2c3")
}

func TestConsole_ShowComparison(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	reports := []ports.DealReport{
		makeReport("123 Main St", 310),
		makeReport("456 Oak Ave", -120),
	}
	reports[1].Tier = domain.TierRed

	require.NoError(t, c.ShowComparison(context.Background(), reports))

	out := buf.String()
	assert.Contains(t, out, "123 Main St")
	assert.Contains(t, out, "456 Oak Ave")
	assert.Contains(t, out, "[G]")
	assert.Contains(t, out, "[R]")
}

func TestConsole_ShowComparison_Empty(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	require.NoError(t, c.ShowComparison(context.Background(), nil))
	assert.Contains(t, buf.String(), "nothing to compare")
}

func TestConsole_ShowSaved(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	deals := []ports.SavedDeal{
		{
			ID:        "deal-1",
			Label:     "evergreen",
			Inputs:    domain.DealInputs{Address: "742 Evergreen Terrace", PurchasePrice: 450000, RentMonthly: 3200},
			CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		},
	}

	require.NoError(t, c.ShowSaved(context.Background(), deals))

	out := buf.String()
	assert.Contains(t, out, "deal-1")
	assert.Contains(t, out, "evergreen")
	assert.Contains(t, out, "2026-03-14")
}

func TestConsole_ShowSaved_Empty(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf)

	require.NoError(t, c.ShowSaved(context.Background(), nil))
	assert.Contains(t, buf.String(), "no saved deals yet")
}
