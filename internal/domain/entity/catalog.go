package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Range (gamme) raíz de la jerarquía del catálogo. Name es la clave de presentación única.
type Range struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Family (famille) subcategoría de exactamente una Range.
type Family struct {
	ID        string
	Name      string
	RangeID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Packaging (emballage) contenedor del producto. Code es único; Capacity > 0.
type Packaging struct {
	ID        string
	Name      string
	Code      string
	Capacity  decimal.Decimal
	Unit      string // kg, L, etc.
	CreatedAt time.Time
	UpdatedAt time.Time
}
