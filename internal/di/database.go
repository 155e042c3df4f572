package di

import (
	"database/sql"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
)

// WithSQLDB wraps a raw database handle in bun, choosing the dialect from
// Storage.Provider, and binds it the same way WithBunDB does. Hosts that
// already hold a *bun.DB should prefer WithBunDB.
func WithSQLDB(db *sql.DB) Option {
	return func(c *Container) {
		c.bunDB = bun.NewDB(db, dialectFor(c.Config.Storage.Provider))
	}
}

func dialectFor(provider string) schema.Dialect {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "postgres", "postgresql", "pg":
		return pgdialect.New()
	default:
		return sqlitedialect.New()
	}
}
