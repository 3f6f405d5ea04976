package ports

import "context"

// PropertyFacts son los datos de una propiedad obtenidos de un lookup externo.
type PropertyFacts struct {
	Address string  // dirección canónica en una línea
	Sqft    float64 // superficie habitable; 0 = desconocida
	RawJSON string  // payload crudo del proveedor, para auditoría
}

// PropertyProvider busca datos de una propiedad a partir de una dirección.
type PropertyProvider interface {
	// LookupByAddress devuelve los facts de la propiedad, o (nil, nil) si
	// el proveedor no encuentra nada para esa dirección. El caller debe
	// degradar a "superficie desconocida", nunca abortar el análisis.
	LookupByAddress(ctx context.Context, address string) (*PropertyFacts, error)

	// Suggest devuelve sugerencias de autocompletado para una dirección
	// parcial. Consultas de menos de 4 caracteres devuelven nil.
	Suggest(ctx context.Context, query string) ([]string, error)
}
