package domain

// DealTier clasifica un deal en un nivel grueso de calidad según sus métricas.
type DealTier int

const (
	TierGreen  DealTier = iota // cash flow fuerte y retornos por encima de objetivo
	TierYellow                 // cash flow no negativo, retornos aceptables
	TierRed                    // no cumple ni los mínimos amarillos
)

func (t DealTier) String() string {
	switch t {
	case TierGreen:
		return "GREEN"
	case TierYellow:
		return "YELLOW"
	default:
		return "RED"
	}
}

func (t DealTier) Icon() string {
	switch t {
	case TierGreen:
		return "[G]"
	case TierYellow:
		return "[Y]"
	default:
		return "[R]"
	}
}

// Thresholds son los umbrales de clasificación. Configuración del caller,
// nunca estado global: el mismo motor sirve para distintos apetitos de riesgo.
type Thresholds struct {
	GreenCashFlowMin  float64 // $/mes
	GreenCoCMin       float64 // %
	GreenCapMin       float64 // %
	YellowCashFlowMin float64 // $/mes
	YellowCoCMin      float64 // %
	YellowCapMin      float64 // %
}

// DefaultThresholds devuelve los umbrales de referencia:
// green = CF >= $250/mes, CoC >= 8%, cap >= 6%;
// yellow = CF >= $0/mes, CoC >= 4%, cap >= 4.5%.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GreenCashFlowMin:  250,
		GreenCoCMin:       8,
		GreenCapMin:       6,
		YellowCashFlowMin: 0,
		YellowCoCMin:      4,
		YellowCapMin:      4.5,
	}
}

// Classify evalúa las reglas en orden, primera que cumpla gana:
//
//	Green  = las tres métricas superan los umbrales green
//	Yellow = las tres métricas superan los umbrales yellow
//	Red    = el resto
//
// Clasificación pura, sin efectos. Los tres umbrales de un nivel deben
// cumplirse a la vez — un cash flow alto no compensa un cap rate pobre.
func Classify(monthlyCashFlow, cocPct, capPct float64, th Thresholds) DealTier {
	if monthlyCashFlow >= th.GreenCashFlowMin && cocPct >= th.GreenCoCMin && capPct >= th.GreenCapMin {
		return TierGreen
	}
	if monthlyCashFlow >= th.YellowCashFlowMin && cocPct >= th.YellowCoCMin && capPct >= th.YellowCapMin {
		return TierYellow
	}
	return TierRed
}

// ClassifyMetrics es el atajo para clasificar unas métricas ya calculadas.
func ClassifyMetrics(m DealMetrics, th Thresholds) DealTier {
	return Classify(m.MonthlyCashFlow, m.CashOnCashPct, m.CapRatePct, th)
}
