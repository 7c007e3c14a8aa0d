package export

import (
	"strconv"
	"time"

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

	"github.com/jhoicas/Directorio-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// RosterPDFGenerator genera el listado imprimible del directorio con Maroto v2.
type RosterPDFGenerator struct{}

// NewRosterPDFGenerator construye el generador.
func NewRosterPDFGenerator() *RosterPDFGenerator { return &RosterPDFGenerator{} }

// Generate genera el PDF del roster y devuelve sus bytes.
func (g *RosterPDFGenerator) Generate(roster []entity.RosterEntity, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Directorio de cuentas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(roster), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(roster)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func headerRow(total int, generatedAt time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Directorio de cuentas", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary,
			}),
			text.New(strconv.Itoa(total)+" entidades", props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(generatedAt.Format("2006-01-02 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	r := row.New(8).Add(
		h("Nombre", 4, align.Left),
		h("Email", 3, align.Left),
		h("Rol", 2, align.Left),
		h("Estado", 2, align.Left),
		h("Pub.", 1, align.Right),
	)
	r.WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	return r
}

// tableDetailRows: una fila por entidad del roster.
func tableDetailRows(roster []entity.RosterEntity) []core.Row {
	result := make([]core.Row, 0, len(roster))
	for _, e := range roster {
		pubs := strconv.Itoa(e.PublicationCount)
		if e.IsPrivileged {
			// Las cuentas privilegiadas no exponen su conteo en el listado.
			pubs = "—"
		}
		result = append(result, row.New(6).Add(
			col.New(4).Add(text.New(
				e.DisplayName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				e.Email,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				string(e.Role),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				e.State.String(),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				pubs,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}
