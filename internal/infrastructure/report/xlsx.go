package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetStock    = "Stock"
	sheetOutbound = "Salidas"
)

// XLSXExporter exporta el reporte como libro Excel con dos hojas: Stock y Salidas.
type XLSXExporter struct{}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

// Export devuelve los bytes del libro.
func (x *XLSXExporter) Export(r StockReport) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheetStock); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if _, err := f.NewSheet(sheetOutbound); err != nil {
		return nil, fmt.Errorf("xlsx: crear hoja: %w", err)
	}

	stockRows := make([][]interface{}, 0, len(r.Stock))
	for _, e := range r.Stock {
		low := ""
		if r.isLow(e) {
			low = "SI"
		}
		stockRows = append(stockRows, []interface{}{
			e.DisplayName,
			string(e.Unit),
			e.Quantity.InexactFloat64(),
			low,
		})
	}
	if err := writeSheet(f, sheetStock, []interface{}{"Producto", "Unidad", "Cantidad", "Bajo"}, stockRows); err != nil {
		return nil, err
	}

	outRows := make([][]interface{}, 0, len(r.Outbound))
	for _, e := range r.Outbound {
		outRows = append(outRows, []interface{}{
			e.Date.Format(time.DateOnly),
			e.ProductName,
			string(e.Unit),
			e.Quantity.InexactFloat64(),
		})
	}
	if err := writeSheet(f, sheetOutbound, []interface{}{"Fecha", "Producto", "Unidad", "Cantidad"}, outRows); err != nil {
		return nil, err
	}

	_ = f.SetColWidth(sheetStock, "A", "A", 32)
	_ = f.SetColWidth(sheetOutbound, "B", "B", 32)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: celda: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+2, sheet, err)
		}
	}
	return nil
}
