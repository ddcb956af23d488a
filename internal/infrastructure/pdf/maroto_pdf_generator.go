// Package pdf implementa la generación del recibo de compra en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: FARD Stationery  │  N° Recibo + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DISTRIBUIDOR: Nombre + Estado de la compra                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | Costo Unit. | Total línea          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuesto / TOTAL                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
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

	"github.com/fardsis/fsis-api/internal/application/billing"
	"github.com/fardsis/fsis-api/pkg/money"
)

const businessName = "FARD Stationery"

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	formatter *money.Formatter
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(formatter *money.Formatter) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{formatter: formatter}
}

// GenerateReceiptPDF genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateReceiptPDF(_ context.Context, receipt *billing.Receipt) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de Compra", true).
		WithAuthor(businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.distributorRow(receipt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range g.tableLineRows(receipt.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range g.totalsRows(receipt) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del negocio (izq) y N° de recibo + fecha (der).
func (g *MarotoPDFGenerator) headerRow(receipt *billing.Receipt) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Sistema de Inventario de Papelería", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RECIBO DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(receipt.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+receipt.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// distributorRow: distribuidor y estado de la compra.
func (g *MarotoPDFGenerator) distributorRow(receipt *billing.Receipt) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DISTRIBUIDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(receipt.DistributorName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Estado: "+receipt.Status, props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Artículo", 5, align.Left),
		h("Costo Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableLineRows: una fila por línea del recibo.
func (g *MarotoPDFGenerator) tableLineRows(lines []billing.ReceiptLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, ln := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				ln.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				ln.ItemName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				g.formatter.Format(ln.UnitCost),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				g.formatter.Format(ln.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRows(receipt *billing.Receipt) []core.Row {
	totalRow := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 9.0
		if bold {
			style = fontstyle.Bold
			size = 11
		}
		return row.New(6).Add(
			col.New(9).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Right: 1,
			})),
		)
	}
	result := []core.Row{
		totalRow("Subtotal:", g.formatter.Format(receipt.Subtotal), false),
		totalRow("Impuesto:", g.formatter.Format(receipt.Tax), false),
	}
	// Envío y descuento solo cuando aplican; el recibo base queda limpio.
	if !receipt.DeliveryFee.IsZero() {
		result = append(result, totalRow("Envío:", g.formatter.Format(receipt.DeliveryFee), false))
	}
	if !receipt.Discount.IsZero() {
		result = append(result, totalRow("Descuento:", "-"+g.formatter.Format(receipt.Discount), false))
	}
	return append(result, totalRow("TOTAL:", g.formatter.Format(receipt.Total), true))
}
