//go:build !cgosqlite && ((darwin && amd64) || (darwin && arm64) || (linux && 386) || (linux && amd64) || (linux && arm) || (linux && arm64) || (windows && amd64))

package sqlite

import (
	"database/sql/driver"
	"fmt"

	"github.com/uptrace/bun/driver/sqliteshim"
	msqlite "modernc.org/sqlite"

	"github.com/jhoicas/clientes-api/internal/domain/search"
)

// Con modernc las funciones se registran en el driver global ("sqlite"), no en
// la instancia que sqliteshim registra bajo su propio nombre.
var driverName = sqliteshim.DriverName()

func init() {
	if err := msqlite.RegisterDeterministicScalarFunction(foldFunc, 1, foldValue); err != nil {
		panic(fmt.Sprintf("registrar %s: %v", foldFunc, err))
	}
}

func foldValue(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return search.Fold(v), nil
	case []byte:
		return search.Fold(string(v)), nil
	default:
		return search.Fold(fmt.Sprint(v)), nil
	}
}
