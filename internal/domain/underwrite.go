package domain

import "math"

// DealMetrics es el resultado del underwriting. Función pura de los inputs:
// inputs idénticos producen siempre métricas bit a bit idénticas.
type DealMetrics struct {
	LoanAmount         float64
	MonthlyDebtService float64 // cuota mensual P&I del préstamo

	GrossAnnualRent          float64
	EffectiveGrossAnnualRent float64 // bruta menos pérdida por vacancia
	AnnualOperatingExpenses  float64 // gestión + opex base + fijos anualizados
	AnnualNOI                float64
	AnnualDebtService        float64

	MonthlyCashFlow float64
	AnnualCashFlow  float64

	TotalCashInvested float64 // entrada + costes de cierre + puntos

	CapRatePct    float64 // NOI / precio × 100; 0 si precio = 0
	CashOnCashPct float64 // cash flow anual / cash invertido × 100; 0 si cash = 0

	// PricePerSqft es NaN cuando la superficie es desconocida o <= 0.
	// El caller debe mostrarlo como "no aplicable", nunca como 0.
	PricePerSqft float64

	// BreakevenRentMonthly es la renta mensual con la que el cash flow anual
	// es exactamente 0. NaN cuando vacancia + costes porcentuales consumen
	// el 100%+ de la renta (ninguna renta finita llega al breakeven).
	BreakevenRentMonthly float64
}

// HasPricePerSqft devuelve true si el precio por sqft está definido.
func (m DealMetrics) HasPricePerSqft() bool {
	return !math.IsNaN(m.PricePerSqft)
}

// BreakevenFeasible devuelve true si existe una renta finita de breakeven.
func (m DealMetrics) BreakevenFeasible() bool {
	return !math.IsNaN(m.BreakevenRentMonthly)
}

// MonthlyPayment calcula la cuota mensual fija (principal + intereses) de un
// préstamo amortizable.
//
// Fórmula: P × r × (1+r)^n / ((1+r)^n − 1)
//   - r: tasa mensual (anual / 12)
//   - n: número de cuotas (años × 12)
//
// Casos degenerados: principal <= 0 devuelve 0; tasa 0 devuelve amortización
// lineal P/n (sin dividir por cero).
func MonthlyPayment(principal, annualRate float64, termYears int) float64 {
	if principal <= 0 {
		return 0
	}
	r := annualRate / 12
	n := float64(termYears * 12)
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// Underwrite transforma los inputs de un deal en sus métricas de inversión.
// Pura y total: nunca falla para inputs que pasan Validate. Sin redondeos
// internos — el redondeo es cosa de la presentación.
func Underwrite(d DealInputs) DealMetrics {
	loan := d.PurchasePrice * (1 - d.DownPaymentPct)
	pmt := MonthlyPayment(loan, d.InterestRate, d.TermYears)

	grossAnnual := d.RentMonthly * 12
	effectiveGross := grossAnnual - grossAnnual*d.VacancyPct

	// Gestión y opex base se aplican sobre la renta efectiva (post-vacancia),
	// no sobre la bruta.
	pctCosts := effectiveGross * (d.ManagementPct + d.OpexPct)
	fixedAnnual := 12 * d.Fixed.Total()
	opexTotal := pctCosts + fixedAnnual

	noi := effectiveGross - opexTotal

	debtAnnual := pmt * 12
	cashFlowAnnual := noi - debtAnnual

	downPayment := d.PurchasePrice * d.DownPaymentPct
	closingCosts := d.PurchasePrice * d.ClosingCostPct
	pointsCost := loan * d.LenderPointsPct
	cashInvested := downPayment + closingCosts + pointsCost

	capRate := 0.0
	if d.PurchasePrice > 0 {
		capRate = noi / d.PurchasePrice * 100
	}
	coc := 0.0
	if cashInvested > 0 {
		coc = cashFlowAnnual / cashInvested * 100
	}

	ppsf := math.NaN()
	if d.HasSqft() {
		ppsf = d.PurchasePrice / d.Sqft
	}

	return DealMetrics{
		LoanAmount:               loan,
		MonthlyDebtService:       pmt,
		GrossAnnualRent:          grossAnnual,
		EffectiveGrossAnnualRent: effectiveGross,
		AnnualOperatingExpenses:  opexTotal,
		AnnualNOI:                noi,
		AnnualDebtService:        debtAnnual,
		MonthlyCashFlow:          cashFlowAnnual / 12,
		AnnualCashFlow:           cashFlowAnnual,
		TotalCashInvested:        cashInvested,
		CapRatePct:               capRate,
		CashOnCashPct:            coc,
		PricePerSqft:             ppsf,
		BreakevenRentMonthly:     breakevenRent(d, fixedAnnual, debtAnnual),
	}
}

// breakevenRent resuelve la ecuación de cash flow anual = 0 para la renta
// mensual, manteniendo fijas el resto de fracciones:
//
//	breakeven = (fijos anuales + servicio de deuda anual) /
//	            (12 × (1 − vacancia) × (1 − (gestión + opex)))
//
// Si el denominador es <= 0 los costes porcentuales consumen toda la renta
// y no existe breakeven finito: se devuelve NaN, nunca un 0 engañoso.
func breakevenRent(d DealInputs, fixedAnnual, debtAnnual float64) float64 {
	denom := 12 * (1 - d.VacancyPct) * (1 - (d.ManagementPct + d.OpexPct))
	if denom <= 0 {
		return math.NaN()
	}
	return (fixedAnnual + debtAnnual) / denom
}
