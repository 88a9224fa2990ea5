package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Stockify-api/internal/application/catalog"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSheet() catalog.ProductSheet {
	return catalog.ProductSheet{
		Product: &entity.Product{
			Reference:       "B2101",
			Name:            "Enduit de lissage",
			Description:     "Enduit prêt à l'emploi.",
			Quantity:        12,
			PackagingWeight: decimal.RequireFromString("21.5"),
			Colors:          []string{"blanc", "gris"},
			ManufactureDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			ExpirationDate:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		Range:     &entity.Range{Name: "Batiment"},
		Family:    &entity.Family{Name: "Enduit"},
		Packaging: &entity.Packaging{Name: "Seau métallique", Code: "SM", Capacity: decimal.NewFromInt(20), Unit: "L"},
	}
}

func TestGenerateProductSheet(t *testing.T) {
	g := NewProductSheetGenerator("Stockify")
	out, err := g.GenerateProductSheet(context.Background(), sampleSheet())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateProductSheet_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewProductSheetGenerator("Stockify").GenerateProductSheet(ctx, sampleSheet())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSheetAttributes(t *testing.T) {
	s := sampleSheet()
	s.Product.Colors = nil
	attrs := sheetAttributes(s)
	byLabel := map[string]string{}
	for _, a := range attrs {
		byLabel[a.label] = a.value
	}
	assert.Equal(t, "—", byLabel["Couleurs"])
	assert.Equal(t, "21.5 kg", byLabel["Poids emballage"])
	assert.Equal(t, "10/01/2026", byLabel["Date d'expiration"])
}
