package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/dealscan/internal/domain"
)

// Config es la configuración completa del analizador.
type Config struct {
	Assumptions AssumptionsConfig `yaml:"assumptions"`
	Thresholds  ThresholdsConfig  `yaml:"thresholds"`
	API         APIConfig         `yaml:"api"`
	Storage     StorageConfig     `yaml:"storage"`
	Log         LogConfig         `yaml:"log"`
}

// AssumptionsConfig son los supuestos de underwriting por defecto. El CLI
// los usa cuando el usuario no pasa el flag correspondiente, y la
// comparación de deals guardados los aplica a todos por igual.
//
// Los campos son punteros para distinguir "no especificado" (nil → default)
// de un 0 explícito en el YAML: vacancia 0 o reservas 0 son supuestos
// perfectamente válidos. Tras Load todos los punteros son no-nil.
type AssumptionsConfig struct {
	DownPaymentPct  *float64 `yaml:"down_payment_pct"` // fracción [0,1]
	InterestRate    *float64 `yaml:"interest_rate"`    // anual nominal
	TermYears       *int     `yaml:"term_years"`
	VacancyPct      *float64 `yaml:"vacancy_pct"`
	ManagementPct   *float64 `yaml:"management_pct"`
	OpexPct         *float64 `yaml:"opex_pct"`
	ReservesMonthly *float64 `yaml:"reserves_monthly"` // $/mes
	CapExMonthly    *float64 `yaml:"capex_monthly"`    // $/mes
	ClosingCostPct  *float64 `yaml:"closing_cost_pct"`
	LenderPointsPct *float64 `yaml:"lender_points_pct"`
}

// ThresholdsConfig son los umbrales de clasificación del deal.
type ThresholdsConfig struct {
	GreenCashFlowMin  float64 `yaml:"green_cash_flow_min"`
	GreenCoCMin       float64 `yaml:"green_coc_min"`
	GreenCapMin       float64 `yaml:"green_cap_min"`
	YellowCashFlowMin float64 `yaml:"yellow_cash_flow_min"`
	YellowCoCMin      float64 `yaml:"yellow_coc_min"`
	YellowCapMin      float64 `yaml:"yellow_cap_min"`
}

// APIConfig contiene los base URLs de los proveedores externos.
// La API key de ATTOM viene de la variable de entorno ATTOM_API_KEY
// (o del .env), nunca del YAML.
type APIConfig struct {
	AttomBase     string `yaml:"attom_base"`
	NominatimBase string `yaml:"nominatim_base"`
}

// StorageConfig controla dónde se persisten los deals.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Si el YAML no existe se usan los defaults — el CLI funciona sin
// archivo de configuración.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// sin archivo: defaults
	case err != nil:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// AttomAPIKey devuelve la API key de ATTOM del entorno, o "" si no hay.
func (c *Config) AttomAPIKey() string {
	return os.Getenv("ATTOM_API_KEY")
}

// DomainThresholds convierte la configuración en los umbrales del dominio.
func (c *Config) DomainThresholds() domain.Thresholds {
	return domain.Thresholds{
		GreenCashFlowMin:  c.Thresholds.GreenCashFlowMin,
		GreenCoCMin:       c.Thresholds.GreenCoCMin,
		GreenCapMin:       c.Thresholds.GreenCapMin,
		YellowCashFlowMin: c.Thresholds.YellowCashFlowMin,
		YellowCoCMin:      c.Thresholds.YellowCoCMin,
		YellowCapMin:      c.Thresholds.YellowCapMin,
	}
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("DEALSCAN_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
// Para los supuestos solo se rellena lo ausente (nil) — un 0 explícito
// del YAML se respeta.
func setDefaults(cfg *Config) {
	a := &cfg.Assumptions
	if a.DownPaymentPct == nil {
		a.DownPaymentPct = fptr(0.20)
	}
	if a.InterestRate == nil {
		a.InterestRate = fptr(0.07)
	}
	if a.TermYears == nil {
		a.TermYears = iptr(30)
	}
	if a.VacancyPct == nil {
		a.VacancyPct = fptr(0.05)
	}
	if a.ManagementPct == nil {
		a.ManagementPct = fptr(0.08)
	}
	if a.OpexPct == nil {
		a.OpexPct = fptr(0.35)
	}
	if a.ReservesMonthly == nil {
		a.ReservesMonthly = fptr(150)
	}
	if a.CapExMonthly == nil {
		a.CapExMonthly = fptr(150)
	}
	if a.ClosingCostPct == nil {
		a.ClosingCostPct = fptr(0.02)
	}
	if a.LenderPointsPct == nil {
		a.LenderPointsPct = fptr(0.01)
	}

	th := &cfg.Thresholds
	if th.GreenCashFlowMin == 0 && th.GreenCoCMin == 0 && th.GreenCapMin == 0 &&
		th.YellowCashFlowMin == 0 && th.YellowCoCMin == 0 && th.YellowCapMin == 0 {
		def := domain.DefaultThresholds()
		th.GreenCashFlowMin = def.GreenCashFlowMin
		th.GreenCoCMin = def.GreenCoCMin
		th.GreenCapMin = def.GreenCapMin
		th.YellowCashFlowMin = def.YellowCashFlowMin
		th.YellowCoCMin = def.YellowCoCMin
		th.YellowCapMin = def.YellowCapMin
	}

	if cfg.API.AttomBase == "" {
		cfg.API.AttomBase = "https://api.gateway.attomdata.com/propertyapi/v1.0.0"
	}
	if cfg.API.NominatimBase == "" {
		cfg.API.NominatimBase = "https://nominatim.openstreetmap.org"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "realestate.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func fptr(v float64) *float64 { return &v }

func iptr(v int) *int { return &v }
