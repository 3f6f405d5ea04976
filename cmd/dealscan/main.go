package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alejandrodnm/dealscan/config"
	"github.com/alejandrodnm/dealscan/internal/adapters/attom"
	"github.com/alejandrodnm/dealscan/internal/adapters/notify"
	"github.com/alejandrodnm/dealscan/internal/adapters/storage"
	"github.com/alejandrodnm/dealscan/internal/analyzer"
	"github.com/alejandrodnm/dealscan/internal/domain"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")

	// --- modos ---
	list := flag.Bool("list", false, "list saved deals and exit")
	compare := flag.String("compare", "", "comma-separated deal ids to compare")
	suggest := flag.String("suggest", "", "print address suggestions for a partial query and exit")

	// --- deal ---
	address := flag.String("address", "", "property address (enables ATTOM lookup)")
	price := flag.Float64("price", 0, "purchase price ($)")
	rent := flag.Float64("rent", 0, "estimated rent ($/month)")
	sqft := flag.Float64("sqft", 0, "sqft override (0 = use lookup result)")
	noLookup := flag.Bool("no-lookup", false, "skip the property facts lookup")
	save := flag.Bool("save", false, "save the deal after analyzing")
	label := flag.String("label", "", "label for the saved deal")
	notes := flag.String("notes", "", "notes for the saved deal")

	// --- supuestos (−1 = usar el valor de la configuración) ---
	down := flag.Float64("down", -1, "down payment fraction [0,1]")
	rate := flag.Float64("rate", -1, "annual interest rate (e.g. 0.07)")
	term := flag.Int("term", -1, "loan term in years")
	vacancy := flag.Float64("vacancy", -1, "vacancy fraction [0,1]")
	mgmt := flag.Float64("mgmt", -1, "management fee fraction [0,1]")
	opex := flag.Float64("opex", -1, "base opex fraction [0,1)")
	closing := flag.Float64("closing", -1, "closing cost fraction of price")
	points := flag.Float64("points", -1, "lender points fraction of loan")
	reserves := flag.Float64("reserves", -1, "reserves ($/month)")
	capex := flag.Float64("capex", -1, "capex estimate ($/month)")

	// --- costes fijos mensuales ---
	taxes := flag.Float64("taxes", 0, "property taxes ($/month)")
	insurance := flag.Float64("insurance", 0, "insurance ($/month)")
	hoa := flag.Float64("hoa", 0, "HOA dues ($/month)")
	maintenance := flag.Float64("maintenance", 0, "maintenance ($/month)")
	other := flag.Float64("other", 0, "other fixed costs ($/month)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	provider := attom.NewClient(cfg.API.AttomBase, cfg.API.NominatimBase, cfg.AttomAPIKey())
	presenter := notify.NewConsole()

	if *suggest != "" {
		suggestions, err := provider.Suggest(ctx, *suggest)
		if err != nil {
			slog.Error("address suggestion failed", "err", err)
			os.Exit(1)
		}
		for _, s := range suggestions {
			fmt.Println(s)
		}
		return
	}

	// el store solo se abre en los modos que lo necesitan, para no crear
	// el archivo de la DB en un quickcheck suelto
	needStore := *list || *compare != "" || *save

	var store *storage.SQLiteStore
	if needStore {
		store, err = storage.NewSQLiteStore(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer store.Close()
	}

	a := newAnalyzer(cfg, provider, store, presenter)

	switch {
	case *list:
		if err := a.ListSaved(ctx, 100); err != nil {
			slog.Error("list failed", "err", err)
			os.Exit(1)
		}

	case *compare != "":
		ids := splitIDs(*compare)
		if err := a.Compare(ctx, ids); err != nil {
			slog.Error("compare failed", "err", err)
			os.Exit(1)
		}

	default:
		if *price <= 0 || *rent <= 0 {
			fmt.Fprintln(os.Stderr, "usage: dealscan -price N -rent N [-address ...] [flags]")
			flag.PrintDefaults()
			os.Exit(2)
		}

		inputs := buildInputs(cfg.Assumptions, inputFlags{
			address: *address, price: *price, rent: *rent, sqft: *sqft,
			down: *down, rate: *rate, term: *term,
			vacancy: *vacancy, mgmt: *mgmt, opex: *opex,
			closing: *closing, points: *points,
			taxes: *taxes, insurance: *insurance, hoa: *hoa,
			maintenance: *maintenance, other: *other,
			reserves: *reserves, capex: *capex,
		})

		_, err := a.QuickCheck(ctx, analyzer.QuickCheckRequest{
			Inputs: inputs,
			Lookup: !*noLookup && *address != "",
			Save:   *save,
			Label:  *label,
			Notes:  *notes,
		})
		if err != nil {
			slog.Error("quickcheck failed", "err", err)
			os.Exit(1)
		}
	}
}

func newAnalyzer(cfg *config.Config, provider *attom.Client, store *storage.SQLiteStore, presenter *notify.Console) *analyzer.Analyzer {
	if store == nil {
		// interfaz nil tipada, no *SQLiteStore nil envuelto
		return analyzer.New(cfg.DomainThresholds(), provider, nil, presenter)
	}
	return analyzer.New(cfg.DomainThresholds(), provider, store, presenter)
}

// inputFlags agrupa los valores crudos de los flags del deal.
type inputFlags struct {
	address                          string
	price, rent, sqft                float64
	down, rate                       float64
	term                             int
	vacancy, mgmt, opex              float64
	closing, points                  float64
	taxes, insurance, hoa            float64
	maintenance, other               float64
	reserves, capex                  float64
}

// buildInputs combina flags explícitos con los supuestos de configuración:
// cualquier supuesto en -1 toma el valor del config. Tras config.Load los
// punteros de los supuestos siempre son no-nil.
func buildInputs(a config.AssumptionsConfig, f inputFlags) domain.DealInputs {
	return domain.DealInputs{
		Address:        f.address,
		Sqft:           f.sqft,
		PurchasePrice:  f.price,
		RentMonthly:    f.rent,
		DownPaymentPct: pickF(f.down, *a.DownPaymentPct),
		InterestRate:   pickF(f.rate, *a.InterestRate),
		TermYears:      pickI(f.term, *a.TermYears),
		VacancyPct:     pickF(f.vacancy, *a.VacancyPct),
		ManagementPct:  pickF(f.mgmt, *a.ManagementPct),
		OpexPct:        pickF(f.opex, *a.OpexPct),
		Fixed: domain.FixedMonthlyCosts{
			Taxes:       f.taxes,
			Insurance:   f.insurance,
			HOA:         f.hoa,
			Maintenance: f.maintenance,
			Other:       f.other,
			Reserves:    pickF(f.reserves, *a.ReservesMonthly),
			CapEx:       pickF(f.capex, *a.CapExMonthly),
		},
		ClosingCostPct:  pickF(f.closing, *a.ClosingCostPct),
		LenderPointsPct: pickF(f.points, *a.LenderPointsPct),
	}
}

func pickF(flagVal, cfgVal float64) float64 {
	if flagVal < 0 {
		return cfgVal
	}
	return flagVal
}

func pickI(flagVal, cfgVal int) int {
	if flagVal < 0 {
		return cfgVal
	}
	return flagVal
}

func splitIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}
