// stock_report recalcula el stock desde PostgreSQL y lo imprime o exporta.
//
// Uso: go run ./cmd/stock_report [salida.xlsx | salida.pdf]
// Sin argumento escribe el stock y el registro de salidas en stdout.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-cocina/internal/application/inventory"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-cocina/internal/infrastructure/report"
	"github.com/jhoicas/inventario-cocina/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	threshold, err := decimal.NewFromString(cfg.Store.LowStockThreshold)
	if err != nil {
		fmt.Fprintf(os.Stderr, "LOW_STOCK_THRESHOLD inválido: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewEventStore(pool)
	uc := inventory.NewStockUseCase(store, inventory.NewDirectRunner(store), nil, zerolog.Nop())

	snap, err := uc.GetSnapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calcular stock: %v\n", err)
		os.Exit(1)
	}
	outbound, err := uc.GetDailyOutboundLog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Registro de salidas: %v\n", err)
		os.Exit(1)
	}
	r := report.StockReport{
		GeneratedAt:  time.Now(),
		Stock:        snap.Entries(),
		Outbound:     outbound,
		LowThreshold: threshold,
	}

	if len(os.Args) < 2 {
		printText(r)
		return
	}

	outPath := os.Args[1]
	var data []byte
	switch strings.ToLower(filepath.Ext(outPath)) {
	case ".xlsx":
		data, err = report.NewXLSXExporter().Export(r)
	case ".pdf":
		var g *report.PDFGenerator
		g, err = report.NewPDFGenerator(report.PDFFonts{Regular: cfg.Report.PDFFontRegular, Bold: cfg.Report.PDFFontBold})
		if err == nil {
			data, err = g.Generate(r)
		}
	default:
		fmt.Fprintf(os.Stderr, "Extensión no soportada: %s (use .xlsx o .pdf)\n", outPath)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar reporte: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s (%d líneas de stock, %d días de salidas)\n", outPath, len(r.Stock), len(r.Outbound))
}

func printText(r report.StockReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCTO\tUNIDAD\tCANTIDAD\t")
	for _, e := range r.Stock {
		mark := ""
		if e.Quantity.LessThanOrEqual(r.LowThreshold) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.DisplayName, e.Unit, e.Quantity.String(), mark)
	}
	fmt.Fprintln(w, "\t\t\t")
	fmt.Fprintln(w, "FECHA\tPRODUCTO\tUNIDAD\tSALIDA")
	for _, e := range r.Outbound {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Date.Format(time.DateOnly), e.ProductName, e.Unit, e.Quantity.String())
	}
	_ = w.Flush()
}
