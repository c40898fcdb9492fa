// Package search construye el filtro por palabra clave sobre clientes.
// El mismo valor se evalúa en memoria (Match) o se traduce a SQL (LikePattern).
package search

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/clientes-api/internal/domain/entity"
)

// Propiedades de Customer sobre las que se busca la palabra clave.
var searchFields = []string{"firstName", "lastName", "email"}

// CustomerPredicate filtro "contiene, sin distinguir mayúsculas" sobre
// firstName, lastName y email. El valor cero no filtra.
type CustomerPredicate struct {
	needle string
}

// ContainsKeyword construye el predicado. Una palabra vacía o solo con espacios
// produce un predicado incondicional (equivalente a WHERE 1 = 1).
func ContainsKeyword(keyword string) CustomerPredicate {
	if strings.TrimSpace(keyword) == "" {
		return CustomerPredicate{}
	}
	return CustomerPredicate{needle: Fold(keyword)}
}

// Unconditional indica que el predicado acepta cualquier registro.
func (p CustomerPredicate) Unconditional() bool {
	return p.needle == ""
}

// Fields devuelve las propiedades comparadas, en orden.
func (p CustomerPredicate) Fields() []string {
	out := make([]string, len(searchFields))
	copy(out, searchFields)
	return out
}

// Match evalúa el predicado sobre un registro.
func (p CustomerPredicate) Match(c *entity.Customer) bool {
	if p.Unconditional() {
		return true
	}
	if c == nil {
		return false
	}
	return strings.Contains(Fold(c.FirstName), p.needle) ||
		strings.Contains(Fold(c.LastName), p.needle) ||
		strings.Contains(Fold(c.Email), p.needle)
}

// LikePattern devuelve el patrón para `LOWER(col) LIKE ? ESCAPE '\'`
// (o la función equivalente a Fold del store).
// Los comodines de LIKE presentes en la palabra se escapan para que la
// comparación sea un "contains" literal, igual que Match.
func (p CustomerPredicate) LikePattern() string {
	if p.Unconditional() {
		return "%"
	}
	return "%" + likeEscaper.Replace(p.needle) + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Fold pasa s a minúsculas con las reglas Unicode. Los stores SQL que no
// tienen un LOWER equivalente registran esta función para comparar igual que Match.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
