// Package inventory implements the read-only vehicle inventory collaborator
// over Postgres.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	contractx "github.com/carpickhq/carpick-agent/agent/contract"
)

const defaultSearchLimit = 100

type Config struct {
	DSN          string        `envconfig:"DSN" split_words:"true" required:"true"`
	MaxOpenConns int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"8"`
	QueryTimeout time.Duration `envconfig:"QUERY_TIMEOUT" split_words:"true" default:"5s"`
}

// vehicleRow is the listings table shape. Prices are stored in 만원 to match
// the engine's budget unit.
type vehicleRow struct {
	bun.BaseModel `bun:"table:vehicle_listings,alias:v"`

	ID           string    `bun:"id,pk"`
	Manufacturer string    `bun:"manufacturer"`
	Model        string    `bun:"model"`
	Year         int       `bun:"model_year"`
	Price        int       `bun:"price"`
	Mileage      int       `bun:"mileage"`
	FuelType     string    `bun:"fuel_type"`
	Options      []string  `bun:"options,array"`
	Location     string    `bun:"location"`
	SourceURL    string    `bun:"source_url"`
	ListedAt     time.Time `bun:"listed_at"`
}

// PostgresSearcher implements contract.InventorySearcher over a listings
// table.
type PostgresSearcher struct {
	db      *bun.DB
	timeout time.Duration
}

func NewPostgresSearcher(cfg Config) (*PostgresSearcher, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &PostgresSearcher{
		db:      bun.NewDB(sqldb, pgdialect.New()),
		timeout: timeout,
	}, nil
}

// Search returns listings inside the budget range, optionally narrowed by the
// free-text query. Ordering is newest-first; the caller re-ranks anyway.
func (p *PostgresSearcher) Search(ctx context.Context, q contractx.SearchQuery) ([]contractx.VehicleCandidate, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var rows []vehicleRow
	query := p.db.NewSelect().Model(&rows).
		Where("v.price >= ?", q.Budget.Min).
		Where("v.price <= ?", q.Budget.Max).
		OrderExpr("v.listed_at DESC").
		Limit(limit)

	if term := searchTerm(q.QueryText); term != "" {
		query = query.WhereGroup(" AND ", func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.
				Where("v.manufacturer ILIKE ?", term).
				WhereOr("v.model ILIKE ?", term)
		})
	}

	if err := query.Scan(ctx); err != nil {
		return nil, fmt.Errorf("%w: search listings: %v", contractx.ErrInventory, err)
	}

	out := make([]contractx.VehicleCandidate, 0, len(rows))
	for _, r := range rows {
		out = append(out, contractx.VehicleCandidate{
			ID:           r.ID,
			Manufacturer: r.Manufacturer,
			Model:        r.Model,
			Year:         r.Year,
			Price:        r.Price,
			Mileage:      r.Mileage,
			FuelType:     r.FuelType,
			Options:      r.Options,
			Location:     r.Location,
			SourceURL:    r.SourceURL,
		})
	}
	return out, nil
}

func (p *PostgresSearcher) Close() error {
	return p.db.Close()
}

// searchTerm turns the free text into one ILIKE pattern on the longest token.
// Short noise tokens only widen the scan.
func searchTerm(text string) string {
	var longest string
	for _, tok := range strings.Fields(strings.TrimSpace(text)) {
		if len([]rune(tok)) >= 2 && len(tok) > len(longest) {
			longest = tok
		}
	}
	if longest == "" {
		return ""
	}
	return "%" + strings.ReplaceAll(strings.ReplaceAll(longest, "%", ""), "_", "") + "%"
}
