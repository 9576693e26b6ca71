package repository

import (
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/eliezer-r/storefront-platform/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

// Repositories bundles the per-aggregate repositories around one explicitly
// constructed connection pool. There is no global handle; everything that
// needs the database receives its repository by injection.
type Repositories struct {
	DB    *sql.DB
	User  UserRepository
	Cart  CartRepository
	Order OrderRepository
}

func New(cfg *config.Config) (*Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		DB:    db,
		User:  NewUserRepo(db),
		Cart:  NewCartRepo(db),
		Order: NewOrderRepo(db),
	}, nil
}

func (r *Repositories) Close() error {
	return r.DB.Close()
}
