package report

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontfamily"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/johnfercher/maroto/v2/pkg/repository"
	"golang.org/x/text/encoding/charmap"
)

const unicodeFamily = "unicode"

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// PDFFonts rutas a fuentes TrueType con soporte UTF-8 (p. ej. DejaVuSans.ttf).
// Sin Regular se usa Helvetica, que solo cubre cp1252: İ, ı, Ş, ş, Ğ y ğ se transliteran.
type PDFFonts struct {
	Regular string
	Bold    string // vacío = Regular
}

// PDFGenerator genera el reporte imprimible de stock usando Maroto v2.
type PDFGenerator struct {
	family string
	fonts  []*entity.CustomFont
	fold   bool
}

// NewPDFGenerator construye el generador. Falla si una fuente configurada no se puede leer.
func NewPDFGenerator(fonts PDFFonts) (*PDFGenerator, error) {
	if fonts.Regular == "" {
		return &PDFGenerator{family: fontfamily.Helvetica, fold: true}, nil
	}
	bold := fonts.Bold
	if bold == "" {
		bold = fonts.Regular
	}
	custom, err := repository.New().
		AddUTF8Font(unicodeFamily, fontstyle.Normal, fonts.Regular).
		AddUTF8Font(unicodeFamily, fontstyle.Bold, bold).
		Load()
	if err != nil {
		return nil, fmt.Errorf("pdf: cargar fuentes: %w", err)
	}
	return &PDFGenerator{family: unicodeFamily, fonts: custom}, nil
}

// Generate genera el PDF y devuelve sus bytes.
func (g *PDFGenerator) Generate(r StockReport) ([]byte, error) {
	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithTitle(g.s(r.title()), true)
	if len(g.fonts) > 0 {
		b = b.WithCustomFonts(g.fonts)
	}
	cfg := b.WithDefaultFont(&props.Font{Family: g.family, Size: 9}).Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(g.sectionRow("STOCK ACTUAL"))
	m.AddRows(g.headerCols([]string{"Producto", "Unidad", "Cantidad"}, []int{7, 2, 3}, []align.Type{align.Left, align.Center, align.Right}))
	for _, e := range r.Stock {
		var color *props.Color
		if r.isLow(e) {
			color = colorAlert
		}
		m.AddRows(g.stockRow(color, e.DisplayName, string(e.Unit), e.Quantity.String()))
	}
	if len(r.Stock) == 0 {
		m.AddRows(g.emptyRow("Sin entradas recibidas."))
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(g.sectionRow("SALIDAS DIARIAS"))
	m.AddRows(g.headerCols([]string{"Fecha", "Producto", "Unidad", "Cantidad"}, []int{2, 6, 2, 2}, []align.Type{align.Left, align.Left, align.Center, align.Right}))
	for _, e := range r.Outbound {
		m.AddRows(g.outboundRow(e.Date, e.ProductName, string(e.Unit), e.Quantity.String()))
	}
	if len(r.Outbound) == 0 {
		m.AddRows(g.emptyRow("Sin salidas registradas."))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// s adapta el texto a la fuente en uso.
func (g *PDFGenerator) s(v string) string {
	if g.fold {
		return foldForCoreFont(v)
	}
	return v
}

func (g *PDFGenerator) headerRow(r StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(g.s(r.title()), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Umbral de stock bajo: %s", r.LowThreshold.String()), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func (g *PDFGenerator) sectionRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(g.s(title), props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func (g *PDFGenerator) headerCols(labels []string, sizes []int, aligns []align.Type) core.Row {
	cols := make([]core.Col, 0, len(labels))
	for i, label := range labels {
		cols = append(cols, col.New(sizes[i]).Add(text.New(g.s(label), props.Text{
			Style: fontstyle.Bold, Size: 8, Align: aligns[i], Top: 1, Left: 1, Right: 1,
		})))
	}
	return row.New(6).Add(cols...)
}

func (g *PDFGenerator) stockRow(color *props.Color, name, unit, qty string) core.Row {
	return row.New(6).Add(
		col.New(7).Add(text.New(g.s(name), props.Text{Size: 8, Top: 1, Left: 1, Color: color})),
		col.New(2).Add(text.New(g.s(unit), props.Text{Size: 8, Align: align.Center, Top: 1, Color: color})),
		col.New(3).Add(text.New(qty, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1, Color: color})),
	)
}

func (g *PDFGenerator) outboundRow(date time.Time, name, unit, qty string) core.Row {
	return row.New(6).Add(
		col.New(2).Add(text.New(date.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(6).Add(text.New(g.s(name), props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(2).Add(text.New(g.s(unit), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(qty, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func (g *PDFGenerator) emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(g.s(msg), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

var turkishFold = strings.NewReplacer(
	"İ", "I", "ı", "i",
	"Ş", "S", "ş", "s",
	"Ğ", "G", "ğ", "g",
)

// foldForCoreFont deja solo runas representables en cp1252 (las fuentes base del PDF).
// Las letras turcas ausentes se transliteran; el resto se reemplaza por '?'.
func foldForCoreFont(v string) string {
	v = turkishFold.Replace(v)
	return strings.Map(func(r rune) rune {
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			return r
		}
		return '?'
	}, v)
}
