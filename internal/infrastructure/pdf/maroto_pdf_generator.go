// Package pdf genera el recibo imprimible de un pedido con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda              │  Pedido N° + Fecha + Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + email                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con id + total del pedido                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/storefront-admin/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[entity.OrderStatus]string{
	entity.OrderPending:    "Pendiente",
	entity.OrderProcessing: "En preparación",
	entity.OrderShipped:    "Enviado",
	entity.OrderDelivered:  "Entregado",
	entity.OrderCancelled:  "Cancelado",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator genera recibos de pedido con Maroto v2.
type ReceiptGenerator struct {
	storeName string
}

// NewReceiptGenerator construye el generador. storeName aparece en el encabezado.
func NewReceiptGenerator(storeName string) *ReceiptGenerator {
	return &ReceiptGenerator{storeName: storeName}
}

// OrderReceipt genera el PDF del pedido y devuelve sus bytes. customer es opcional
// (el cliente pudo haber sido eliminado; se usa el nombre copiado en el pedido).
func (g *ReceiptGenerator) OrderReceipt(_ context.Context, order entity.Order, customer *entity.User) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Recibo de pedido "+order.ID, true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.storeName, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(order, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(order.Products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar recibo: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y N° de pedido + fecha + estado (der).
func headerRow(storeName string, order entity.Order) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(storeName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Recibo de pedido", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PEDIDO N° "+order.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+nonEmpty(statusLabels[order.Status], string(order.Status)), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// customerRow: datos del comprador.
func customerRow(order entity.Order, customer *entity.User) core.Row {
	name, email := order.UserName, ""
	if customer != nil {
		name = nonEmpty(customer.Name, name)
		email = customer.Email
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Id: %s   |   Email: %s", order.UserID, nonEmpty(email, "—")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea del pedido.
func tableDetailRows(lines []entity.OrderLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(l.Price.StringFixed(0))+" ₫",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(l.Subtotal().StringFixed(0))+" ₫",
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: total del pedido alineado a la derecha.
func totalRow(order entity.Order) core.Row {
	units := 0
	for _, l := range order.Products {
		units += l.Quantity
	}
	return row.New(14).Add(
		col.New(6).Add(text.New(fmt.Sprintf("%d artículos", units), props.Text{
			Size: 8, Top: 3, Color: colorGray,
		})),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(order.Total.StringFixed(0))+" ₫", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRow: QR con la referencia del pedido y leyenda.
func footerRow(order entity.Order) core.Row {
	ref := strings.Join([]string{"order", order.ID, order.Total.StringFixed(0)}, ":")
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(ref, props.Rect{
			Percent: 95,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Presente este código al recibir el pedido.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Gracias por su compra", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 16,
				Left: 3, Color: colorPrimary,
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

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
