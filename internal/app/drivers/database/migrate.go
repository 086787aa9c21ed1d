package database

import (
	"database/sql"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

// Migrate applies the sql-migrate files found in dir. A negative max applies
// every pending migration.
func Migrate(db *sql.DB, dir string, direction migrate.MigrationDirection, max int, logger *zap.Logger) (int, error) {
	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	var (
		applied int
		err     error
	)
	if max < 0 {
		applied, err = migrate.Exec(db, "postgres", migrations, direction)
	} else {
		applied, err = migrate.ExecMax(db, "postgres", migrations, direction, max)
	}
	if err != nil {
		return applied, err
	}

	logger.Info("Applied postgres migrations",
		zap.String("dir", dir),
		zap.Int("count", applied),
	)
	return applied, nil
}
