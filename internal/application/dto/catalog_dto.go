package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas de catálogo en la API.
const DateLayout = "2006-01-02"

// Date fecha sin hora serializada como "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate trunca t al día (UTC).
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate interpreta s con DateLayout.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("fecha inválida %q: se espera %s", s, DateLayout)
	}
	return Date{t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// RangeRequest entrada para crear o actualizar una gama.
type RangeRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// RangeResponse salida de una gama con sus familias.
type RangeResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Families    []FamilyResponse `json:"families"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// FamilyRequest entrada para crear o actualizar una familia.
type FamilyRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	RangeID string `json:"range_id" validate:"required,uuid"`
}

// FamilyResponse salida de una familia.
type FamilyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RangeID   string    `json:"range_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PackagingRequest entrada para crear o actualizar un embalaje.
type PackagingRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=100"`
	Code     string          `json:"code" validate:"required,max=20"`
	Capacity decimal.Decimal `json:"capacity"`
	Unit     string          `json:"unit" validate:"required,max=10"`
}

// PackagingResponse salida de un embalaje.
type PackagingResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Capacity  decimal.Decimal `json:"capacity"`
	Unit      string          `json:"unit"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
