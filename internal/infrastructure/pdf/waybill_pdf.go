// Package pdf genera la nota de despacho (yuk xati) imprimible de un lote.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Remitente            │  YUK XATI N° + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DESTINATARIO + tipo de operación                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Unidad | Cantidad | Sublote           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FIRMAS: Entregó / Recibió      │  QR con el número         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

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

	"github.com/jhoicas/navbahor-erp/internal/application/warehouse"
	"github.com/jhoicas/navbahor-erp/internal/domain"
	"github.com/jhoicas/navbahor-erp/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 100, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var typeLabels = map[entity.TransactionType]string{
	entity.TransactionIN:       "Kirim",
	entity.TransactionOUT:      "Chiqim",
	entity.TransactionTRANSFER: "Brigadirga o'tkazma",
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// WaybillRenderer nota de despacho con Maroto v2.
type WaybillRenderer struct{}

// NewWaybillRenderer construye el renderer.
func NewWaybillRenderer() *WaybillRenderer { return &WaybillRenderer{} }

// RenderWaybill devuelve los bytes del PDF. El lote sin nota (consumo en campo) no se imprime.
func (g *WaybillRenderer) RenderWaybill(_ context.Context, doc *warehouse.Document) ([]byte, error) {
	if doc == nil || doc.Waybill == nil {
		return nil, fmt.Errorf("%w: el lote no tiene nota de despacho", domain.ErrNotFound)
	}
	wb := doc.Waybill

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Yuk xati "+wb.Number, true).
		WithAuthor(wb.ShipperName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(wb))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receiverRow(wb, doc.Transaction))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(doc.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(line.NewRow(6))
	m.AddRows(signatureRow(wb))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(wb *entity.Waybill) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(wb.ShipperName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Jo'natuvchi", props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("YUK XATI", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("N° "+wb.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Sana: "+wb.CreatedAt.Format("02.01.2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func receiverRow(wb *entity.Waybill, t *entity.TransactionDetail) core.Row {
	detail := typeLabels[wb.Type]
	if t != nil && t.Description != nil && *t.Description != "" {
		detail += "   |   " + *t.Description
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("QABUL QILUVCHI", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(wb.ReceiverName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(detail, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Mahsulot", 5, align.Left),
		h("O'lchov", 2, align.Center),
		h("Miqdor", 2, align.Right),
		h("Partiya", 2, align.Left),
	)
}

// tableRows una fila por asiento del lote.
func tableRows(items []*entity.TransactionDetail) []core.Row {
	out := make([]core.Row, 0, len(items))
	for i, it := range items {
		batch := "-"
		if it.BatchNumber != nil && *it.BatchNumber != "" {
			batch = *it.BatchNumber
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(string(it.ProductUnit), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(it.Amount.String(), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(batch, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return out
}

func signatureRow(wb *entity.Waybill) core.Row {
	sign := func(label string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 2}),
			text.New("_____________________", props.Text{Size: 8, Top: 16}),
			text.New("(imzo)", props.Text{Size: 7, Top: 21, Color: colorGray}),
		)
	}
	return row.New(30).Add(
		sign("Topshirdi"),
		sign("Qabul qildi"),
		col.New(4).Add(code.NewQr(wb.Number, props.Rect{Percent: 80, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
