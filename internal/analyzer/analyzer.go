package analyzer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/dealscan/internal/domain"
	"github.com/alejandrodnm/dealscan/internal/ports"
)

// QuickCheckRequest es una petición de análisis de un deal.
type QuickCheckRequest struct {
	Inputs domain.DealInputs
	Lookup bool // consultar el proveedor de facts antes de analizar
	Save   bool // persistir el deal tras analizarlo
	Label  string
	Notes  string
}

// Analyzer orquesta el flujo lookup → underwrite → classify → save → present.
// El motor de underwriting es puro; todo el I/O vive en los ports inyectados.
type Analyzer struct {
	thresholds domain.Thresholds
	provider   ports.PropertyProvider
	store      ports.DealStore
	presenter  ports.Presenter
}

// New crea un Analyzer con todas las dependencias inyectadas.
// provider y store pueden ser nil: sin provider no hay lookup, sin store
// no se puede guardar ni comparar.
func New(th domain.Thresholds, provider ports.PropertyProvider, store ports.DealStore, presenter ports.Presenter) *Analyzer {
	return &Analyzer{
		thresholds: th,
		provider:   provider,
		store:      store,
		presenter:  presenter,
	}
}

// QuickCheck analiza un deal y lo presenta. Si el lookup externo falla se
// degrada a "superficie desconocida" con un warn — un proveedor caído nunca
// bloquea el underwriting.
func (a *Analyzer) QuickCheck(ctx context.Context, req QuickCheckRequest) (ports.DealReport, error) {
	inputs := req.Inputs
	var facts ports.PropertyFacts

	if req.Lookup && a.provider != nil && inputs.Address != "" {
		found, err := a.provider.LookupByAddress(ctx, inputs.Address)
		switch {
		case err != nil:
			slog.Warn("property lookup failed, continuing without facts", "err", err, "address", inputs.Address)
		case found == nil:
			slog.Info("no property facts found for address", "address", inputs.Address)
		default:
			facts = *found
			inputs.Address = found.Address
			if inputs.Sqft <= 0 && found.Sqft > 0 {
				inputs.Sqft = found.Sqft
			}
			slog.Debug("property facts applied", "address", found.Address, "sqft", found.Sqft)
		}
	}

	if err := inputs.Validate(); err != nil {
		return ports.DealReport{}, fmt.Errorf("analyzer.QuickCheck: %w", err)
	}

	metrics := domain.Underwrite(inputs)
	report := ports.DealReport{
		Inputs:  inputs,
		Metrics: metrics,
		Tier:    domain.ClassifyMetrics(metrics, a.thresholds),
		Label:   req.Label,
	}

	if req.Save {
		if a.store == nil {
			return ports.DealReport{}, fmt.Errorf("analyzer.QuickCheck: no store configured, cannot save")
		}
		id, err := a.store.SaveDeal(ctx, facts, inputs, req.Label, req.Notes)
		if err != nil {
			return ports.DealReport{}, fmt.Errorf("analyzer.QuickCheck: save deal: %w", err)
		}
		report.ID = id
	}

	if err := a.presenter.ShowDeal(ctx, report); err != nil {
		return report, fmt.Errorf("analyzer.QuickCheck: present: %w", err)
	}
	return report, nil
}

// Compare carga los deals guardados con los ids dados, los re-analiza con
// sus propios inputs almacenados y presenta la tabla comparativa.
func (a *Analyzer) Compare(ctx context.Context, ids []string) error {
	if a.store == nil {
		return fmt.Errorf("analyzer.Compare: no store configured")
	}
	if len(ids) < 2 {
		return fmt.Errorf("analyzer.Compare: need at least 2 deal ids, got %d", len(ids))
	}

	var reports []ports.DealReport
	for _, id := range ids {
		deal, err := a.store.GetDeal(ctx, id)
		if err != nil {
			return fmt.Errorf("analyzer.Compare: load deal %s: %w", id, err)
		}
		if deal == nil {
			return fmt.Errorf("analyzer.Compare: deal %s not found", id)
		}

		metrics := domain.Underwrite(deal.Inputs)
		reports = append(reports, ports.DealReport{
			Inputs:  deal.Inputs,
			Metrics: metrics,
			Tier:    domain.ClassifyMetrics(metrics, a.thresholds),
			ID:      deal.ID,
			Label:   deal.Label,
		})
	}

	return a.presenter.ShowComparison(ctx, reports)
}

// ListSaved presenta el listado de deals guardados.
func (a *Analyzer) ListSaved(ctx context.Context, limit int) error {
	if a.store == nil {
		return fmt.Errorf("analyzer.ListSaved: no store configured")
	}
	deals, err := a.store.ListDeals(ctx, limit)
	if err != nil {
		return fmt.Errorf("analyzer.ListSaved: %w", err)
	}
	return a.presenter.ShowSaved(ctx, deals)
}

// Suggest devuelve sugerencias de dirección del proveedor externo.
func (a *Analyzer) Suggest(ctx context.Context, query string) ([]string, error) {
	if a.provider == nil {
		return nil, nil
	}
	return a.provider.Suggest(ctx, query)
}
