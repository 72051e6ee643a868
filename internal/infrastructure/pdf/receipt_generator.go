// Package pdf genera el recibo imprimible de una venta con Maroto v2.
//
// Layout A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda   │  N° Factura + Fecha        │
//	│  CLIENTE: nombre (o venta anónima)                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total línea              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / TOTAL  + forma de pago     │
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

	appsales "github.com/tu-usuario/congelados-pos/internal/application/sales"
	"github.com/tu-usuario/congelados-pos/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 140}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appsales.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa sales.ReceiptPDFGenerator con Maroto v2.
type MarotoReceiptGenerator struct {
	shopName string
}

// NewMarotoReceiptGenerator construye el generador con el nombre de la
// tienda que encabeza el recibo.
func NewMarotoReceiptGenerator(shopName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{shopName: shopName}
}

// GenerateReceiptPDF genera el PDF del recibo y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceiptPDF(_ context.Context, sale *entity.Sale) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de venta "+sale.InvoiceNumber, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, item := range sale.Items {
		m.AddRows(itemRow(item))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(sale) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoReceiptGenerator) headerRow(sale *entity.Sale) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(sale.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func clientRow(sale *entity.Sale) core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New("Cliente: "+sale.ClientName, props.Text{Size: 9, Top: 1}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(8).Add(
		col.New(2).Add(text.New("Cant.", header)),
		col.New(6).Add(text.New("Producto", header)),
		col.New(2).Add(text.New("P. Unit", propsRight(header))),
		col.New(2).Add(text.New("Total", propsRight(header))),
	)
}

func itemRow(item entity.SaleItem) core.Row {
	cell := props.Text{Size: 9, Top: 1}
	return row.New(7).Add(
		col.New(2).Add(text.New(item.Quantity.String(), cell)),
		col.New(6).Add(text.New(item.ProductName, cell)),
		col.New(2).Add(text.New(item.UnitPrice.StringFixed(2), propsRight(cell))),
		col.New(2).Add(text.New(item.TotalPrice.StringFixed(2), propsRight(cell))),
	)
}

func totalsRows(sale *entity.Sale) []core.Row {
	label := props.Text{Size: 9, Align: align.Right, Top: 1, Color: colorGray}
	value := props.Text{Size: 9, Align: align.Right, Top: 1}
	totalLabel := props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1, Color: colorPrimary}

	rows := []core.Row{
		row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New("Subtotal", label)),
			col.New(2).Add(text.New(sale.Subtotal.StringFixed(2), value)),
		),
	}
	if !sale.Discount.IsZero() {
		rows = append(rows, row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New("Descuento", label)),
			col.New(2).Add(text.New("-"+sale.Discount.StringFixed(2), value)),
		))
	}
	rows = append(rows,
		row.New(9).Add(
			col.New(8),
			col.New(2).Add(text.New("TOTAL", totalLabel)),
			col.New(2).Add(text.New(sale.Total.StringFixed(2), totalLabel)),
		),
		row.New(6).Add(
			col.New(12).Add(text.New("Forma de pago: "+paymentLabel(sale.PaymentMethod), props.Text{
				Size: 8, Color: colorGray, Top: 1,
			})),
		),
	)
	return rows
}

func propsRight(p props.Text) props.Text {
	p.Align = align.Right
	return p
}

func paymentLabel(p entity.PaymentMethod) string {
	switch p {
	case entity.PaymentCash:
		return "efectivo"
	case entity.PaymentCard:
		return "tarjeta"
	case entity.PaymentCredit:
		return "crédito"
	}
	return string(p)
}
