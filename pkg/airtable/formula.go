package airtable

import (
	"fmt"
	"strings"
)

var formulaEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Eq builds `{field} = "value"` with value quoted for the formula language.
func Eq(field, value string) string {
	return fmt.Sprintf(`{%s} = "%s"`, field, formulaEscaper.Replace(value))
}

// IsTrue builds `{field} = 1`, the checkbox test.
func IsTrue(field string) string {
	return fmt.Sprintf("{%s} = 1", field)
}

// Or joins formulas with OR(); a single formula is returned as-is.
func Or(formulas ...string) string {
	switch len(formulas) {
	case 0:
		return ""
	case 1:
		return formulas[0]
	}
	return "OR(" + strings.Join(formulas, ", ") + ")"
}
