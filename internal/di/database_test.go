package di

import (
	"testing"

	"github.com/uptrace/bun/dialect"

	intposts "github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

func TestDialectForProvider(t *testing.T) {
	cases := []struct {
		provider string
		want     dialect.Name
	}{
		{"postgres", dialect.PG},
		{"PostgreSQL", dialect.PG},
		{"pg", dialect.PG},
		{"bun", dialect.SQLite},
		{"sqlite", dialect.SQLite},
		{"", dialect.SQLite},
	}

	for _, tc := range cases {
		if got := dialectFor(tc.provider).Name(); got != tc.want {
			t.Fatalf("dialectFor(%q) = %v, want %v", tc.provider, got, tc.want)
		}
	}
}

func TestWithSQLDBBindsBunRepositories(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	cfg := runtimeconfig.DefaultConfig()
	c := NewContainer(cfg, WithSQLDB(sqlDB))

	if _, ok := c.PostRepository().(*intposts.BunPostRepository); !ok {
		t.Fatalf("expected bun-backed post repository, got %T", c.PostRepository())
	}
	if _, ok := c.TermRepository().(*intposts.BunTermRepository); !ok {
		t.Fatalf("expected bun-backed term repository, got %T", c.TermRepository())
	}
}
