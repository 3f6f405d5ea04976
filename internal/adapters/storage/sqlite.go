package storage

// sqlite.go — persistencia de deals para comparación posterior.
//
// Estrategia:
//   - `property_facts`: una fila por lookup, con el JSON crudo del
//     proveedor. Se conserva el histórico — los facts de una propiedad
//     cambian con el tiempo y queremos poder auditar qué se usó.
//   - `deals`: una fila por deal guardado, con TODOS los inputs del
//     underwriting. Las métricas NO se guardan: el motor es determinista,
//     así que se recalculan al leer y nunca quedan desfasadas de la fórmula.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/alejandrodnm/dealscan/internal/domain"
	"github.com/alejandrodnm/dealscan/internal/ports"
)

const schema = `
-- Facts de la propiedad por lookup (histórico, no upsert)
CREATE TABLE IF NOT EXISTS property_facts (
    id         TEXT PRIMARY KEY,
    address    TEXT,
    sqft       REAL,
    json_raw   TEXT,
    created_at DATETIME NOT NULL
);

-- Inputs completos de cada deal guardado
CREATE TABLE IF NOT EXISTS deals (
    id                  TEXT PRIMARY KEY,
    property_fact_id    TEXT NOT NULL REFERENCES property_facts(id),
    purchase_price      REAL NOT NULL,
    rent_monthly        REAL NOT NULL,
    down_payment_pct    REAL NOT NULL,
    interest_rate       REAL NOT NULL,
    term_years          INTEGER NOT NULL,
    vacancy_pct         REAL NOT NULL DEFAULT 0,
    management_pct      REAL NOT NULL DEFAULT 0,
    opex_pct            REAL NOT NULL DEFAULT 0,
    monthly_taxes       REAL NOT NULL DEFAULT 0,
    monthly_insurance   REAL NOT NULL DEFAULT 0,
    monthly_hoa         REAL NOT NULL DEFAULT 0,
    monthly_maintenance REAL NOT NULL DEFAULT 0,
    monthly_other       REAL NOT NULL DEFAULT 0,
    monthly_reserves    REAL NOT NULL DEFAULT 0,
    monthly_capex       REAL NOT NULL DEFAULT 0,
    closing_cost_pct    REAL NOT NULL DEFAULT 0,
    lender_points_pct   REAL NOT NULL DEFAULT 0,
    label               TEXT NOT NULL DEFAULT '',
    notes               TEXT NOT NULL DEFAULT '',
    created_at          DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deals_created ON deals(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_facts_address ON property_facts(address);
`

// SQLiteStore implementa ports.DealStore usando SQLite (pure Go, sin CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada y aplica
// el schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveDeal inserta los facts de la propiedad y el deal en una transacción.
// Devuelve el id opaco del deal.
func (s *SQLiteStore) SaveDeal(ctx context.Context, facts ports.PropertyFacts, in domain.DealInputs, label, notes string) (string, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	factID := uuid.New().String()
	dealID := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("storage.SaveDeal: begin tx: %w", err)
	}
	defer tx.Rollback()

	address := facts.Address
	if address == "" {
		address = in.Address
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO property_facts (id, address, sqft, json_raw, created_at) VALUES (?, ?, ?, ?, ?)`,
		factID, address, in.Sqft, facts.RawJSON, now,
	); err != nil {
		return "", fmt.Errorf("storage.SaveDeal: insert property facts: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO deals
			(id, property_fact_id, purchase_price, rent_monthly,
			 down_payment_pct, interest_rate, term_years,
			 vacancy_pct, management_pct, opex_pct,
			 monthly_taxes, monthly_insurance, monthly_hoa, monthly_maintenance,
			 monthly_other, monthly_reserves, monthly_capex,
			 closing_cost_pct, lender_points_pct, label, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		dealID, factID, in.PurchasePrice, in.RentMonthly,
		in.DownPaymentPct, in.InterestRate, in.TermYears,
		in.VacancyPct, in.ManagementPct, in.OpexPct,
		in.Fixed.Taxes, in.Fixed.Insurance, in.Fixed.HOA, in.Fixed.Maintenance,
		in.Fixed.Other, in.Fixed.Reserves, in.Fixed.CapEx,
		in.ClosingCostPct, in.LenderPointsPct, label, notes, now,
	); err != nil {
		return "", fmt.Errorf("storage.SaveDeal: insert deal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage.SaveDeal: commit: %w", err)
	}
	return dealID, nil
}

const dealColumns = `
	d.id, COALESCE(pf.address, ''), COALESCE(pf.sqft, 0),
	d.purchase_price, d.rent_monthly,
	d.down_payment_pct, d.interest_rate, d.term_years,
	d.vacancy_pct, d.management_pct, d.opex_pct,
	d.monthly_taxes, d.monthly_insurance, d.monthly_hoa, d.monthly_maintenance,
	d.monthly_other, d.monthly_reserves, d.monthly_capex,
	d.closing_cost_pct, d.lender_points_pct, d.label, d.notes, d.created_at`

// ListDeals devuelve los deals guardados, los más recientes primero.
func (s *SQLiteStore) ListDeals(ctx context.Context, limit int) ([]ports.SavedDeal, error) {
	if limit <= 0 {
		limit = 25
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+dealColumns+`
		FROM deals d
		JOIN property_facts pf ON pf.id = d.property_fact_id
		ORDER BY d.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.ListDeals: query: %w", err)
	}
	defer rows.Close()

	var deals []ports.SavedDeal
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("storage.ListDeals: scan row: %w", err)
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

// GetDeal devuelve el deal con el id dado, o (nil, nil) si no existe.
func (s *SQLiteStore) GetDeal(ctx context.Context, id string) (*ports.SavedDeal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+dealColumns+`
		FROM deals d
		JOIN property_facts pf ON pf.id = d.property_fact_id
		WHERE d.id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("storage.GetDeal: query: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	deal, err := scanDeal(rows)
	if err != nil {
		return nil, fmt.Errorf("storage.GetDeal: scan row: %w", err)
	}
	return &deal, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanDeal mapea una fila del join deals × property_facts a SavedDeal.
func scanDeal(rows *sql.Rows) (ports.SavedDeal, error) {
	var deal ports.SavedDeal
	var in domain.DealInputs
	var createdAt string

	if err := rows.Scan(
		&deal.ID, &in.Address, &in.Sqft,
		&in.PurchasePrice, &in.RentMonthly,
		&in.DownPaymentPct, &in.InterestRate, &in.TermYears,
		&in.VacancyPct, &in.ManagementPct, &in.OpexPct,
		&in.Fixed.Taxes, &in.Fixed.Insurance, &in.Fixed.HOA, &in.Fixed.Maintenance,
		&in.Fixed.Other, &in.Fixed.Reserves, &in.Fixed.CapEx,
		&in.ClosingCostPct, &in.LenderPointsPct, &deal.Label, &deal.Notes, &createdAt,
	); err != nil {
		return ports.SavedDeal{}, err
	}

	deal.Inputs = in
	deal.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return deal, nil
}
