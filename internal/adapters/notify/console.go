package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/dealscan/internal/domain"
	"github.com/alejandrodnm/dealscan/internal/ports"
)

// Console implementa ports.Presenter escribiendo a stdout.
type Console struct {
	out io.Writer
}

// NewConsole crea un presenter que escribe a stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter crea un presenter para tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// ShowDeal imprime el badge del tier y la tabla de métricas de un deal.
// El breakeven infeasible se muestra como INFEASIBLE y el precio/sqft
// ausente como "—" — nunca como 0, que sería un número engañoso.
func (c *Console) ShowDeal(_ context.Context, r ports.DealReport) error {
	fmt.Fprintf(c.out, "\n%s %s", r.Tier.Icon(), r.Tier)
	if r.Inputs.Address != "" {
		fmt.Fprintf(c.out, " — %s", r.Inputs.Address)
	}
	fmt.Fprintln(c.out)
	if r.ID != "" {
		fmt.Fprintf(c.out, "saved deal id: %s\n", r.ID)
	}

	m := r.Metrics
	table := tablewriter.NewWriter(c.out)
	table.Header("Metric", "Value")

	table.Append("Loan amount", money(m.LoanAmount))
	table.Append("Mortgage P&I (monthly)", money(m.MonthlyDebtService))
	table.Append("Gross rent (annual)", money(m.GrossAnnualRent))
	table.Append("Effective gross (annual)", money(m.EffectiveGrossAnnualRent))
	table.Append("Operating expenses (annual)", money(m.AnnualOperatingExpenses))
	table.Append("NOI (annual)", money(m.AnnualNOI))
	table.Append("Debt service (annual)", money(m.AnnualDebtService))
	table.Append("Cash flow (monthly)", money(m.MonthlyCashFlow))
	table.Append("Cash flow (annual)", money(m.AnnualCashFlow))
	table.Append("Total cash invested", money(m.TotalCashInvested))
	table.Append("Cap rate", pct(m.CapRatePct))
	table.Append("Cash-on-cash return", pct(m.CashOnCashPct))
	table.Append("Price per sqft", pricePerSqftLabel(m))
	table.Append("Breakeven rent (monthly)", breakevenLabel(m))

	table.Render()
	return nil
}

// ShowComparison imprime una fila por deal con sus métricas clave.
func (c *Console) ShowComparison(_ context.Context, reports []ports.DealReport) error {
	if len(reports) == 0 {
		fmt.Fprintln(c.out, "nothing to compare")
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Tier", "Label", "Address", "Price", "Rent/mo", "CF/mo", "CoC", "Cap", "Breakeven")

	for _, r := range reports {
		table.Append(
			r.Tier.Icon(),
			r.Label,
			truncate(r.Inputs.Address, 40),
			money(r.Inputs.PurchasePrice),
			money(r.Inputs.RentMonthly),
			money(r.Metrics.MonthlyCashFlow),
			pct(r.Metrics.CashOnCashPct),
			pct(r.Metrics.CapRatePct),
			breakevenLabel(r.Metrics),
		)
	}

	table.Render()
	return nil
}

// ShowSaved imprime el listado de deals guardados.
func (c *Console) ShowSaved(_ context.Context, deals []ports.SavedDeal) error {
	if len(deals) == 0 {
		fmt.Fprintln(c.out, "no saved deals yet")
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("ID", "Label", "Address", "Price", "Rent/mo", "Saved")

	for _, d := range deals {
		table.Append(
			d.ID,
			d.Label,
			truncate(d.Inputs.Address, 40),
			money(d.Inputs.PurchasePrice),
			money(d.Inputs.RentMonthly),
			d.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	table.Render()
	return nil
}

// --- formato ---

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func pct(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func breakevenLabel(m domain.DealMetrics) string {
	if !m.BreakevenFeasible() {
		return "INFEASIBLE"
	}
	return fmt.Sprintf("$%.0f/mo", m.BreakevenRentMonthly)
}

func pricePerSqftLabel(m domain.DealMetrics) string {
	if !m.HasPricePerSqft() {
		return "—"
	}
	return money(m.PricePerSqft)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
