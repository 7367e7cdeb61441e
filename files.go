package roster

import (
	"context"
	"embed"
	"io/fs"
	"sort"

	"github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

//go:embed data/sql/migrations
var migrationsFS embed.FS

// GetMigrationsFS returns the migration files for this package
func GetMigrationsFS() embed.FS {
	return migrationsFS
}

// RunMigrations executes the embedded migration files in name order.
// Statements are idempotent so running on every boot is safe.
func RunMigrations(ctx context.Context, db *bun.DB) error {
	entries, err := fs.ReadDir(migrationsFS, "data/sql/migrations")
	if err != nil {
		return errors.Wrap(err, errors.CategoryOperation, "failed to read embedded migrations")
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		content, err := fs.ReadFile(migrationsFS, "data/sql/migrations/"+name)
		if err != nil {
			return errors.Wrap(err, errors.CategoryOperation, "failed to read migration "+name)
		}

		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return errors.Wrap(err, errors.CategoryOperation, "failed to run migration "+name)
		}
	}

	return nil
}
