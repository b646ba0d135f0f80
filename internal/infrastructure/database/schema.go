package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	pkgdb "library-catalog/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

// EnsureSchema applies every embedded migration in file-name order inside one transaction.
// All statements are idempotent (IF NOT EXISTS), so running it on every start is fine.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	return pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
		for _, name := range files {
			body, err := migrations.ReadFile(name)
			if err != nil {
				return fmt.Errorf("read %s: %w", name, err)
			}
			if _, err := tx.Exec(ctx, string(body)); err != nil {
				return fmt.Errorf("apply %s: %w", name, err)
			}
			log.Info().Str("migration", name).Msg("[DATABASE] Applied")
		}
		return nil
	})
}
