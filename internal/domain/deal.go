package domain

import "fmt"

// FixedMonthlyCosts son los costes recurrentes mensuales que no dependen
// del nivel de renta: impuestos, seguro, HOA, mantenimiento, reservas, etc.
type FixedMonthlyCosts struct {
	Taxes       float64
	Insurance   float64
	HOA         float64
	Maintenance float64
	Other       float64
	Reserves    float64
	CapEx       float64 // reserva para gastos de capital (techo, caldera...)
}

// Total devuelve la suma de todos los costes fijos mensuales.
func (f FixedMonthlyCosts) Total() float64 {
	return f.Taxes + f.Insurance + f.HOA + f.Maintenance + f.Other + f.Reserves + f.CapEx
}

// DealInputs son los parámetros de entrada de un análisis. Valor inmutable:
// se construye por evaluación (formulario, registro guardado o test) y se
// descarta tras producir las métricas.
type DealInputs struct {
	Address string
	Sqft    float64 // 0 = desconocido; el precio/sqft no se calcula

	PurchasePrice float64
	RentMonthly   float64

	// --- Financiación ---
	DownPaymentPct float64 // fracción [0,1] del precio
	InterestRate   float64 // tasa anual nominal, compuesta mensualmente
	TermYears      int

	// --- Costes porcentuales (fracciones sobre la renta efectiva) ---
	VacancyPct    float64 // fracción [0,1] de pérdida por vacancia
	ManagementPct float64 // fracción [0,1] de gestión de la propiedad
	OpexPct       float64 // fracción [0,1) de gastos operativos base

	Fixed FixedMonthlyCosts

	// --- Costes de cierre ---
	ClosingCostPct  float64 // fracción del precio de compra
	LenderPointsPct float64 // fracción del importe del préstamo
}

// Validate comprueba las restricciones de los inputs. Devuelve un error
// descriptivo en la primera violación; no hace clamping silencioso.
func (d DealInputs) Validate() error {
	if d.PurchasePrice < 0 {
		return fmt.Errorf("domain.Validate: purchase price must be >= 0, got %.2f", d.PurchasePrice)
	}
	if d.RentMonthly < 0 {
		return fmt.Errorf("domain.Validate: monthly rent must be >= 0, got %.2f", d.RentMonthly)
	}
	if d.Sqft < 0 {
		return fmt.Errorf("domain.Validate: sqft must be >= 0, got %.2f", d.Sqft)
	}
	if d.DownPaymentPct < 0 || d.DownPaymentPct > 1 {
		return fmt.Errorf("domain.Validate: down payment fraction must be in [0,1], got %.4f", d.DownPaymentPct)
	}
	if d.InterestRate < 0 {
		return fmt.Errorf("domain.Validate: interest rate must be >= 0, got %.4f", d.InterestRate)
	}
	if d.TermYears < 1 {
		return fmt.Errorf("domain.Validate: loan term must be >= 1 year, got %d", d.TermYears)
	}
	if d.VacancyPct < 0 || d.VacancyPct > 1 {
		return fmt.Errorf("domain.Validate: vacancy fraction must be in [0,1], got %.4f", d.VacancyPct)
	}
	if d.ManagementPct < 0 || d.ManagementPct > 1 {
		return fmt.Errorf("domain.Validate: management fraction must be in [0,1], got %.4f", d.ManagementPct)
	}
	if d.OpexPct < 0 || d.OpexPct >= 1 {
		return fmt.Errorf("domain.Validate: opex fraction must be in [0,1), got %.4f", d.OpexPct)
	}
	if d.ClosingCostPct < 0 {
		return fmt.Errorf("domain.Validate: closing cost fraction must be >= 0, got %.4f", d.ClosingCostPct)
	}
	if d.LenderPointsPct < 0 {
		return fmt.Errorf("domain.Validate: lender points fraction must be >= 0, got %.4f", d.LenderPointsPct)
	}
	for _, c := range []struct {
		name string
		v    float64
	}{
		{"taxes", d.Fixed.Taxes},
		{"insurance", d.Fixed.Insurance},
		{"hoa", d.Fixed.HOA},
		{"maintenance", d.Fixed.Maintenance},
		{"other", d.Fixed.Other},
		{"reserves", d.Fixed.Reserves},
		{"capex", d.Fixed.CapEx},
	} {
		if c.v < 0 {
			return fmt.Errorf("domain.Validate: monthly %s must be >= 0, got %.2f", c.name, c.v)
		}
	}
	return nil
}

// HasSqft devuelve true si el deal tiene superficie conocida (> 0).
func (d DealInputs) HasSqft() bool {
	return d.Sqft > 0
}
