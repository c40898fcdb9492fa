//go:build !cgo && (cgosqlite || !((darwin && amd64) || (darwin && arm64) || (linux && 386) || (linux && amd64) || (linux && arm) || (linux && arm64) || (windows && amd64)))

package sqlite

import "github.com/uptrace/bun/driver/sqliteshim"

// Sin driver disponible: sqliteshim devuelve UnsupportedError al abrir.
const driverName = sqliteshim.ShimName
