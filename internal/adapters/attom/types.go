package attom

// basicProfileResponse es la respuesta del endpoint /property/basicprofile.
// Solo se mapean los campos que usamos; el payload completo se conserva
// crudo para auditoría.
type basicProfileResponse struct {
	Property []property `json:"property"`
}

type property struct {
	Address  propertyAddress  `json:"address"`
	Building propertyBuilding `json:"building"`
}

type propertyAddress struct {
	OneLine string `json:"oneLine"`
}

type propertyBuilding struct {
	Size buildingSize `json:"size"`
}

// buildingSize trae varias medidas de superficie; el orden de preferencia
// es livingsize → bldgsize → grosssize, igual que en el dashboard.
type buildingSize struct {
	LivingSize float64 `json:"livingsize"`
	BldgSize   float64 `json:"bldgsize"`
	GrossSize  float64 `json:"grosssize"`
}

// sqft devuelve la primera medida de superficie disponible, o 0.
func (s buildingSize) sqft() float64 {
	switch {
	case s.LivingSize > 0:
		return s.LivingSize
	case s.BldgSize > 0:
		return s.BldgSize
	case s.GrossSize > 0:
		return s.GrossSize
	default:
		return 0
	}
}

// nominatimResult es un item de la respuesta de búsqueda de Nominatim.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
}
