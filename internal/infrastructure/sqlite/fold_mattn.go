//go:build cgo && (cgosqlite || !((darwin && amd64) || (darwin && arm64) || (linux && 386) || (linux && amd64) || (linux && arm) || (linux && arm64) || (windows && amd64)))

package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"

	"github.com/jhoicas/clientes-api/internal/domain/search"
)

const driverName = "sqlite3_clientes"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(foldFunc, search.Fold, true)
		},
	})
}
