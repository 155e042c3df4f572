package testsupport

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-blog/posts"
)

func NewSQLiteMemoryDB() (*sql.DB, error) {
	return sql.Open("sqlite3", "file::memory:?cache=shared")
}

// NewBunDB opens an in-memory SQLite database wrapped in bun, registers the
// blog models, and creates the posts, terms, and post_terms tables. The
// handle is closed when the test finishes.
func NewBunDB(tb testing.TB) *bun.DB {
	tb.Helper()

	sqlDB, err := NewSQLiteMemoryDB()
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)
	db.RegisterModel((*posts.PostTerm)(nil))

	tb.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	models := []any{
		(*posts.Post)(nil),
		(*posts.Term)(nil),
		(*posts.PostTerm)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			tb.Fatalf("create table for %T: %v", model, err)
		}
	}

	return db
}
