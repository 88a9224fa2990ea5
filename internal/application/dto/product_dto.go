package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o reemplazar un producto. Reference debe coincidir con la
// derivada de (gama, familia, embalaje).
type ProductRequest struct {
	Reference       string          `json:"reference" validate:"required"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	Description     string          `json:"description"`
	RangeID         string          `json:"range_id" validate:"required,uuid"`
	FamilyID        string          `json:"family_id" validate:"required,uuid"`
	PackagingID     string          `json:"packaging_id" validate:"required,uuid"`
	Quantity        int             `json:"quantity" validate:"min=0"`
	PackagingWeight decimal.Decimal `json:"packaging_weight"`
	Colors          []string        `json:"colors"`
	ManufactureDate Date            `json:"manufacture_date"`
	ExpirationDate  Date            `json:"expiration_date"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID              string          `json:"id"`
	Reference       string          `json:"reference"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	RangeID         string          `json:"range_id"`
	FamilyID        string          `json:"family_id"`
	PackagingID     string          `json:"packaging_id"`
	Quantity        int             `json:"quantity"`
	PackagingWeight decimal.Decimal `json:"packaging_weight"`
	Colors          []string        `json:"colors"`
	ManufactureDate Date            `json:"manufacture_date"`
	ExpirationDate  Date            `json:"expiration_date"`
	Expired         bool            `json:"expired"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ReferencePreviewResponse referencia derivada para una combinación gama/familia/embalaje.
type ReferencePreviewResponse struct {
	Reference string `json:"reference"`
}

// ReferenceValidationRequest referencia propuesta para una combinación gama/familia/embalaje.
type ReferenceValidationRequest struct {
	RangeID     string `json:"range_id"`
	FamilyID    string `json:"family_id"`
	PackagingID string `json:"packaging_id"`
	Reference   string `json:"reference"`
}

// ReferenceValidationResponse resultado de la comprobación.
type ReferenceValidationResponse struct {
	Valid bool `json:"valid"`
}
