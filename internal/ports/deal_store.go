package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/dealscan/internal/domain"
)

// SavedDeal es un deal persistido con su identificador opaco y metadatos.
// Las métricas no se guardan: el motor es determinista, así que los inputs
// almacenados son la fuente de verdad y se re-calculan al leer.
type SavedDeal struct {
	ID        string // uuid
	Label     string
	Notes     string
	Inputs    domain.DealInputs
	CreatedAt time.Time
}

// DealStore persiste inputs de deals para su comparación posterior.
type DealStore interface {
	// SaveDeal guarda los facts de la propiedad y los inputs del deal.
	// Devuelve el identificador opaco del deal guardado.
	SaveDeal(ctx context.Context, facts PropertyFacts, inputs domain.DealInputs, label, notes string) (string, error)

	// ListDeals devuelve los deals guardados, los más recientes primero.
	ListDeals(ctx context.Context, limit int) ([]SavedDeal, error)

	// GetDeal devuelve el deal con el id dado, o (nil, nil) si no existe.
	GetDeal(ctx context.Context, id string) (*SavedDeal, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
