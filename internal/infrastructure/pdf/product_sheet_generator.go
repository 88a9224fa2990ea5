// Package pdf genera la ficha técnica (fiche technique) de un producto del catálogo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del producto  │  Referencia + fecha emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  JERARQUÍA: Gama / Familia / Embalaje                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Característica | Valor                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia + leyenda                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Stockify-api/internal/application/catalog"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ catalog.SheetGenerator = (*ProductSheetGenerator)(nil)

// ProductSheetGenerator implementa catalog.SheetGenerator usando Maroto v2.
type ProductSheetGenerator struct {
	company string
	now     func() time.Time
}

// NewProductSheetGenerator construye el generador; company aparece como autor del documento.
func NewProductSheetGenerator(company string) *ProductSheetGenerator {
	return &ProductSheetGenerator{company: company, now: time.Now}
}

// GenerateProductSheet genera el PDF y devuelve sus bytes.
func (g *ProductSheetGenerator) GenerateProductSheet(ctx context.Context, s catalog.ProductSheet) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Fiche technique "+s.Product.Reference, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(hierarchyRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("CARACTÉRISTIQUES"))
	for _, r := range attributeRows(sheetAttributes(s)) {
		m.AddRows(r)
	}

	if d := strings.TrimSpace(s.Product.Description); d != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitle("DESCRIPTION"))
		m.AddRows(row.New(20).Add(col.New(12).Add(
			text.New(d, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(s))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ficha: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del producto (izq) y referencia + fecha de emisión (der).
func headerRow(s catalog.ProductSheet, issued time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(s.Product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("FICHE TECHNIQUE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(s.Product.Reference, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Émise le "+issued.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// hierarchyRow: gama, familia y embalaje en tres columnas.
func hierarchyRow(s catalog.ProductSheet) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(value, props.Text{Size: 10, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("GAMME", s.Range.Name),
		cell("FAMILLE", s.Family.Name),
		cell("EMBALLAGE", fmt.Sprintf("%s (%s %s)", s.Packaging.Name, s.Packaging.Capacity.String(), s.Packaging.Unit)),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))
}

// attribute par característica/valor de la tabla.
type attribute struct {
	label, value string
}

func sheetAttributes(s catalog.ProductSheet) []attribute {
	p := s.Product
	return []attribute{
		{"Référence", p.Reference},
		{"Code emballage", s.Packaging.Code},
		{"Quantité en stock", fmt.Sprintf("%d", p.Quantity)},
		{"Poids emballage", p.PackagingWeight.String() + " kg"},
		{"Couleurs", nonEmpty(strings.Join(p.Colors, ", "), "—")},
		{"Date de fabrication", p.ManufactureDate.Format("02/01/2006")},
		{"Date d'expiration", p.ExpirationDate.Format("02/01/2006")},
	}
}

// attributeRows: una fila por característica.
func attributeRows(attrs []attribute) []core.Row {
	result := make([]core.Row, 0, len(attrs))
	for _, a := range attrs {
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(a.label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1})),
			col.New(8).Add(text.New(a.value, props.Text{Size: 8, Top: 1})),
		))
	}
	return result
}

// footerRow: QR con la referencia y leyenda.
func footerRow(s catalog.ProductSheet) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(s.Product.Reference, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Référence dérivée de la gamme, de la famille et de l'emballage.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Document généré automatiquement, sans valeur contractuelle.", props.Text{
				Size: 7, Top: 12, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
