package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// deal base: 900k, renta 6k/mes, 20% entrada, 7% a 30 años,
// vacancia 5%, gestión 8%, opex 35%, cierre 2%, puntos 1%.
func makeDeal() DealInputs {
	return DealInputs{
		Address:         "123 Main St, Springfield",
		PurchasePrice:   900000,
		RentMonthly:     6000,
		DownPaymentPct:  0.20,
		InterestRate:    0.07,
		TermYears:       30,
		VacancyPct:      0.05,
		ManagementPct:   0.08,
		OpexPct:         0.35,
		ClosingCostPct:  0.02,
		LenderPointsPct: 0.01,
	}
}

// --- MonthlyPayment ---

func TestMonthlyPayment_Standard(t *testing.T) {
	// 720k al 7% a 30 años → $4790.18/mes (100k al 7%/30y = $665.30)
	pmt := MonthlyPayment(720000, 0.07, 30)
	assert.InDelta(t, 4790.18, pmt, 0.5)
}

func TestMonthlyPayment_ZeroRate(t *testing.T) {
	// Sin interés la cuota es amortización lineal exacta, no división por cero
	assert.Equal(t, 360000.0/360.0, MonthlyPayment(360000, 0, 30))
	assert.Equal(t, 100.0/12.0, MonthlyPayment(100, 0, 1))
}

func TestMonthlyPayment_ZeroOrNegativePrincipal(t *testing.T) {
	assert.Equal(t, 0.0, MonthlyPayment(0, 0.07, 30))
	assert.Equal(t, 0.0, MonthlyPayment(-50000, 0.07, 30))
}

func TestMonthlyPayment_OneYearTerm(t *testing.T) {
	// 12k al 12% a 1 año → r=1%, cuota ≈ $1066.19
	pmt := MonthlyPayment(12000, 0.12, 1)
	assert.InDelta(t, 1066.19, pmt, 0.05)
}

// --- Underwrite ---

func TestUnderwrite_FinancedDeal(t *testing.T) {
	m := Underwrite(makeDeal())

	assert.Equal(t, 720000.0, m.LoanAmount)
	assert.InDelta(t, 4790.18, m.MonthlyDebtService, 0.5)

	assert.Equal(t, 72000.0, m.GrossAnnualRent)
	assert.Equal(t, 68400.0, m.EffectiveGrossAnnualRent) // 72000 × 0.95

	// opex = 68400 × (0.08 + 0.35) = 29412
	assert.InDelta(t, 29412.0, m.AnnualOperatingExpenses, 0.001)
	assert.InDelta(t, 38988.0, m.AnnualNOI, 0.001)

	// cash invertido = 180000 entrada + 18000 cierre + 7200 puntos
	assert.InDelta(t, 205200.0, m.TotalCashInvested, 0.001)

	// cap = 38988 / 900000 × 100
	assert.InDelta(t, 4.332, m.CapRatePct, 0.001)

	// el deal no llega ni de lejos a cash flow positivo con estos números
	assert.Less(t, m.MonthlyCashFlow, 0.0)
	assert.False(t, math.IsNaN(m.CashOnCashPct))
	assert.True(t, m.BreakevenFeasible())
}

func TestUnderwrite_Deterministic(t *testing.T) {
	d := makeDeal()
	d.Sqft = 2400
	d.Fixed = FixedMonthlyCosts{Taxes: 450, Insurance: 120, Reserves: 150, CapEx: 150}

	assert.Equal(t, Underwrite(d), Underwrite(d))
}

func TestUnderwrite_ZeroPrice(t *testing.T) {
	d := makeDeal()
	d.PurchasePrice = 0

	m := Underwrite(d)
	assert.Equal(t, 0.0, m.LoanAmount)
	assert.Equal(t, 0.0, m.MonthlyDebtService)
	assert.Equal(t, 0.0, m.CapRatePct) // nunca división por cero
}

func TestUnderwrite_AllCash(t *testing.T) {
	d := makeDeal()
	d.DownPaymentPct = 1.0

	m := Underwrite(d)
	assert.Equal(t, 0.0, m.LoanAmount)
	assert.Equal(t, 0.0, m.MonthlyDebtService)
	assert.Equal(t, 0.0, m.AnnualDebtService)

	// cash invertido = precio + cierre (los puntos son 0 con préstamo 0)
	assert.InDelta(t, 918000.0, m.TotalCashInvested, 0.001)
	assert.InDelta(t, m.AnnualCashFlow/918000.0*100, m.CashOnCashPct, 1e-9)
}

func TestUnderwrite_ZeroCashInvested(t *testing.T) {
	// precio 0 y sin entrada → cash invertido 0 → CoC definido como 0
	m := Underwrite(DealInputs{RentMonthly: 1000, TermYears: 30})
	assert.Equal(t, 0.0, m.TotalCashInvested)
	assert.Equal(t, 0.0, m.CashOnCashPct)
}

func TestUnderwrite_PricePerSqft(t *testing.T) {
	d := makeDeal()
	d.Sqft = 3000

	m := Underwrite(d)
	require.True(t, m.HasPricePerSqft())
	assert.Equal(t, 300.0, m.PricePerSqft)
}

func TestUnderwrite_PricePerSqft_Unknown(t *testing.T) {
	// sin superficie el precio/sqft es NaN, no 0 — el 0 sería engañoso
	m := Underwrite(makeDeal())
	assert.False(t, m.HasPricePerSqft())
	assert.True(t, math.IsNaN(m.PricePerSqft))
}

func TestUnderwrite_FixedCostsAnnualized(t *testing.T) {
	d := makeDeal()
	d.Fixed = FixedMonthlyCosts{Taxes: 400, Insurance: 100, HOA: 50, Maintenance: 75, Other: 25, Reserves: 150, CapEx: 150}

	base := Underwrite(makeDeal())
	m := Underwrite(d)

	// 950/mes en fijos = 11400/año más de gastos, mismo resto
	assert.InDelta(t, base.AnnualOperatingExpenses+11400, m.AnnualOperatingExpenses, 0.001)
	assert.InDelta(t, base.AnnualNOI-11400, m.AnnualNOI, 0.001)
}

// --- Breakeven ---

func TestBreakeven_PlugBackYieldsZeroCashFlow(t *testing.T) {
	d := makeDeal()
	d.Fixed = FixedMonthlyCosts{Taxes: 450, Insurance: 120, Reserves: 150}

	m := Underwrite(d)
	require.True(t, m.BreakevenFeasible())

	// Con la renta al breakeven el cash flow anual queda en 0
	d.RentMonthly = m.BreakevenRentMonthly
	again := Underwrite(d)
	assert.InDelta(t, 0.0, again.AnnualCashFlow, 1e-6)
}

func TestBreakeven_InfeasibleCostStructure(t *testing.T) {
	// gestión + opex = 100% de la renta efectiva → denominador 0 → NaN
	d := makeDeal()
	d.ManagementPct = 0.65
	d.OpexPct = 0.35

	m := Underwrite(d)
	assert.False(t, m.BreakevenFeasible())
	assert.True(t, math.IsNaN(m.BreakevenRentMonthly))
}

func TestBreakeven_FullVacancy(t *testing.T) {
	d := makeDeal()
	d.VacancyPct = 1.0

	m := Underwrite(d)
	assert.False(t, m.BreakevenFeasible())
}

// --- Validate ---

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, makeDeal().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]func(*DealInputs){
		"negative price":    func(d *DealInputs) { d.PurchasePrice = -1 },
		"negative rent":     func(d *DealInputs) { d.RentMonthly = -100 },
		"down over 1":       func(d *DealInputs) { d.DownPaymentPct = 1.2 },
		"negative rate":     func(d *DealInputs) { d.InterestRate = -0.01 },
		"zero term":         func(d *DealInputs) { d.TermYears = 0 },
		"vacancy over 1":    func(d *DealInputs) { d.VacancyPct = 1.5 },
		"opex at 1":         func(d *DealInputs) { d.OpexPct = 1.0 },
		"negative taxes":    func(d *DealInputs) { d.Fixed.Taxes = -10 },
		"negative closing":  func(d *DealInputs) { d.ClosingCostPct = -0.02 },
		"negative points":   func(d *DealInputs) { d.LenderPointsPct = -0.01 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := makeDeal()
			mutate(&d)
			assert.Error(t, d.Validate())
		})
	}
}
