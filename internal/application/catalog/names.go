package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// normalizeName recorta y pasa a NFC: "Seau métallique" debe compararse igual venga como venga
// codificada la é.
func normalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
