package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo. Reference se deriva de (Range, Family, Packaging) y es única;
// Family debe pertenecer a la misma Range.
type Product struct {
	ID              string
	Reference       string
	Name            string
	Description     string
	RangeID         string
	FamilyID        string
	PackagingID     string
	Quantity        int
	PackagingWeight decimal.Decimal
	Colors          []string
	ManufactureDate time.Time
	ExpirationDate  time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsExpired informa si el producto venció antes de ref (comparación por día).
func (p *Product) IsExpired(ref time.Time) bool {
	y, m, d := ref.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, p.ExpirationDate.Location())
	return p.ExpirationDate.Before(day)
}
