// Package xlsx exporta listados de reubicaciones a Excel.
package xlsx

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jhoicas/stock-relocation/internal/application/relocation"
	"github.com/xuri/excelize/v2"
)

var _ relocation.SheetExporter = (*RelocationExporter)(nil)

const sheetName = "Reubicaciones"

var header = []interface{}{
	"ID",
	"Fecha planificada",
	"Estado",
	"Bodega",
	"Origen",
	"Destino",
	"Producto",
	"Cantidad",
	"Unidad",
	"Empleado",
	"Movimiento",
}

// RelocationExporter implementa relocation.SheetExporter con excelize.
type RelocationExporter struct{}

// NewRelocationExporter construye el exportador.
func NewRelocationExporter() *RelocationExporter { return &RelocationExporter{} }

// ExportRelocations escribe una fila por reubicación bajo una cabecera fija y devuelve el XLSX.
func (e *RelocationExporter) ExportRelocations(_ context.Context, lines []relocation.ReportLine) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetName); err != nil {
		return nil, fmt.Errorf("xlsx: hoja: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, l := range lines {
		r := l.Relocation
		qty, _ := r.Quantity.Round(r.UnitDigits).Float64()
		row := []interface{}{
			r.ID,
			r.PlannedDate.Format("2006-01-02"),
			r.State,
			l.WarehouseName,
			l.FromName,
			l.ToName,
			l.ProductName,
			qty,
			l.UomSymbol,
			l.EmployeeName,
			r.MoveID,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
