// Package sqlite implementa el store de clientes sobre SQLite con bun.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	"github.com/jhoicas/clientes-api/pkg/config"
)

// foldFunc función SQL equivalente a search.Fold. El LOWER nativo de SQLite
// solo convierte ASCII.
const foldFunc = "unicode_lower"

// Open abre la base SQLite indicada en cfg.SQLitePath. Con cfg.Debug registra
// el hook de bundebug que imprime cada consulta.
func Open(cfg config.DBConfig) (*bun.DB, error) {
	sqldb, err := sql.Open(driverName, cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Una sola conexión: SQLite serializa escrituras y una base en memoria vive
	// mientras su conexión siga abierta.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(
			bundebug.WithVerbose(true),
			bundebug.FromEnv("BUNDEBUG"),
		))
	}
	return db, nil
}

// CreateSchema crea la tabla customers si no existe.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*customerModel)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("crear tabla customers: %w", err)
	}
	return nil
}
