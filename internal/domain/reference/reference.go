// Package reference contiene la derivación de la referencia de producto a partir de la
// jerarquía Gama → Familia → Embalaje.
//
// Formato: {letra de gama}{índice de familia}{código de embalaje}01
//
//	Batiment / 2ª familia (orden alfabético) / Seau métallique → "B2101"
//	Batiment / 2ª familia / Carton                              → "B2201"
package reference

import (
	"sort"
	"strconv"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MetalBucket es el único embalaje con código "1".
const MetalBucket = "Seau métallique"

// ReferenceSuffix sufijo fijo de lote. Siempre "01" por ahora.
const ReferenceSuffix = "01"

var rangeLetters = map[string]string{
	"Batiment":    "B",
	"Aviation":    "A",
	"Carrosserie": "C",
	"Vernis":      "V",
	"Industrie":   "I",
}

// RangeLetter devuelve la letra de la gama o "" si no está mapeada.
func RangeLetter(rangeName string) string {
	return rangeLetters[rangeName]
}

// PackagingCode devuelve "1" solo para el seau métallique y "2" para cualquier otro nombre.
func PackagingCode(packagingName string) string {
	if packagingName == MetalBucket {
		return "1"
	}
	return "2"
}

// FamilyIndex devuelve la posición (base 1) del nombre de target entre las familias de la gama
// ordenadas por nombre ascendente. Con nombres repetidos gana la primera aparición.
// Si target no está entre siblings o pertenece a otra gama devuelve ErrFamilleNotInGamme.
func FamilyIndex(rangeID string, siblings []*entity.Family, target *entity.Family) (int, error) {
	if target == nil || target.RangeID != rangeID {
		return 0, domain.FieldErr("family_id", domain.ErrFamilleNotInGamme)
	}
	names := make([]string, 0, len(siblings))
	found := false
	for _, f := range siblings {
		if f.RangeID != rangeID {
			continue
		}
		if f.ID == target.ID {
			found = true
		}
		names = append(names, f.Name)
	}
	if !found {
		return 0, domain.FieldErr("family_id", domain.ErrFamilleNotInGamme)
	}
	SortNames(names)
	for i, n := range names {
		if n == target.Name {
			return i + 1, nil
		}
	}
	return 0, domain.FieldErr("family_id", domain.ErrFamilleNotInGamme)
}

// SortNames ordena nombres con colación francesa (acentos y mayúsculas no rompen el orden).
func SortNames(names []string) {
	c := collate.New(language.French)
	sort.SliceStable(names, func(i, j int) bool {
		return c.CompareString(names[i], names[j]) < 0
	})
}

// SortFamilies devuelve una copia de fams ordenada por nombre con la colación de FamilyIndex.
func SortFamilies(fams []*entity.Family) []*entity.Family {
	out := append([]*entity.Family(nil), fams...)
	c := collate.New(language.French)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// Build compone la referencia a partir de sus partes.
func Build(rangeName string, familyIndex int, packagingName string) string {
	return RangeLetter(rangeName) + strconv.Itoa(familyIndex) + PackagingCode(packagingName) + ReferenceSuffix
}

// Derive calcula la referencia esperada para la combinación dada.
func Derive(r *entity.Range, siblings []*entity.Family, f *entity.Family, p *entity.Packaging) (string, error) {
	idx, err := FamilyIndex(r.ID, siblings, f)
	if err != nil {
		return "", err
	}
	return Build(r.Name, idx, p.Name), nil
}

// Validate compara submitted con la referencia derivada (igualdad exacta).
func Validate(r *entity.Range, siblings []*entity.Family, f *entity.Family, p *entity.Packaging, submitted string) error {
	expected, err := Derive(r, siblings, f, p)
	if err != nil {
		return err
	}
	if submitted != expected {
		return domain.FieldErr("reference", domain.ErrReferenceMismatch)
	}
	return nil
}
