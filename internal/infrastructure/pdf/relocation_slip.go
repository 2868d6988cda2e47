// Package pdf genera el comprobante de una reubicación de stock, pensado para
// acompañar la mercancía durante el traslado.
//
// Layout de la página A5:
//
//	┌───────────────────────────────────────────────┐
//	│  REUBICACIÓN DE STOCK      │  ID + Fecha + Estado │
//	│  ───────────────────────────────────────────  │
//	│  Bodega / Empleado                              │
//	│  Origen → Destino                               │
//	│  ───────────────────────────────────────────  │
//	│  Producto | Cantidad | Unidad                   │
//	│  ───────────────────────────────────────────  │
//	│  QR (ID) + firmas                               │
//	└───────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ relocation.SlipGenerator = (*MarotoSlipGenerator)(nil)

// MarotoSlipGenerator implementa relocation.SlipGenerator usando Maroto v2.
type MarotoSlipGenerator struct{}

// NewMarotoSlipGenerator construye el generador.
func NewMarotoSlipGenerator() *MarotoSlipGenerator { return &MarotoSlipGenerator{} }

// GenerateSlip genera el PDF y devuelve sus bytes.
func (g *MarotoSlipGenerator) GenerateSlip(_ context.Context, l relocation.ReportLine) ([]byte, error) {
	if l.Relocation == nil {
		return nil, fmt.Errorf("pdf: reubicación vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A5).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reubicación de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(l.Relocation))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(infoRow("BODEGA", l.WarehouseName, "RESPONSABLE", l.EmployeeName))
	m.AddRows(infoRow("ORIGEN", l.FromName, "DESTINO", l.ToName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(tableHeaderRow())
	m.AddRows(productRow(l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(l.Relocation))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) e identificación del documento (der).
func headerRow(r *entity.Relocation) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("REUBICACIÓN DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(6).Add(
			text.New(r.ID, props.Text{
				Size: 6.5, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Fecha: "+r.PlannedDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 6,
			}),
			text.New("Estado: "+stateLabel(r.State), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 11,
			}),
		),
	)
}

// infoRow: dos pares etiqueta/valor en columnas iguales.
func infoRow(leftLabel, leftValue, rightLabel, rightValue string) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(6).Add(
			text.New(label, props.Text{
				Style: fontstyle.Bold, Size: 7, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(value, "-"), props.Text{Size: 9, Top: 5}),
		)
	}
	return row.New(12).Add(cell(leftLabel, leftValue), cell(rightLabel, rightValue))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 7, align.Left),
		h("Cantidad", 3, align.Right),
		h("Unidad", 2, align.Center),
	)
}

func productRow(l relocation.ReportLine) core.Row {
	r := l.Relocation
	return row.New(8).Add(
		col.New(7).Add(text.New(l.ProductName, props.Text{Size: 9, Top: 1, Left: 1})),
		col.New(3).Add(text.New(r.Quantity.StringFixed(r.UnitDigits), props.Text{
			Size: 9, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New(l.UomSymbol, props.Text{Size: 9, Align: align.Center, Top: 1})),
	)
}

// footerRow: QR con el ID (para escanear en bodega) y espacio para firmas.
func footerRow(r *entity.Relocation) core.Row {
	signature := func(label string, top float64) core.Component {
		return text.New("______________________  "+label, props.Text{
			Size: 7, Top: top, Left: 3, Color: colorGray,
		})
	}
	right := []core.Component{
		signature("Entrega", 8),
		signature("Recibe", 22),
	}
	if r.MoveID != "" {
		right = append(right, text.New("Movimiento: "+r.MoveID, props.Text{
			Size: 6.5, Top: 32, Left: 3, Color: colorGray,
		}))
	}
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(r.ID, props.Rect{Percent: 90, Center: true})),
		col.New(8).Add(right...),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stateLabel(state string) string {
	switch state {
	case entity.RelocationStateDraft:
		return "BORRADOR"
	case entity.RelocationStateDone:
		return "REALIZADA"
	default:
		return state
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
