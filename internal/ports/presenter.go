package ports

import (
	"context"

	"github.com/alejandrodnm/dealscan/internal/domain"
)

// DealReport es un deal analizado listo para presentar.
type DealReport struct {
	Inputs  domain.DealInputs
	Metrics domain.DealMetrics
	Tier    domain.DealTier
	ID      string // vacío si el deal no se guardó
	Label   string
}

// Presenter renderiza los resultados del análisis. Debe tratar el breakeven
// infeasible (NaN) y el precio/sqft ausente como distintos de cero.
type Presenter interface {
	// ShowDeal imprime el informe completo de un deal.
	ShowDeal(ctx context.Context, report DealReport) error

	// ShowComparison imprime la tabla comparativa de varios deals.
	ShowComparison(ctx context.Context, reports []DealReport) error

	// ShowSaved imprime el listado de deals guardados.
	ShowSaved(ctx context.Context, deals []SavedDeal) error
}
