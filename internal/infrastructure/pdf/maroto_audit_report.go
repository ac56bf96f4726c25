// Package pdf genera la versión imprimible de la bitácora con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Generado por  │  Fecha de generación      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Ingreso | Salida | Usuario | Acción | Tabla | Desc. │
//	│         (contexto del cliente bajo cada LOGIN)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de entradas y sesiones abiertas              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/jhoicas/reservas-canchas/internal/application/audit"
	"github.com/jhoicas/reservas-canchas/internal/domain/entity"
)

var _ audit.ReportGenerator = (*AuditReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOpen    = &props.Color{Red: 0, Green: 128, Blue: 64}
)

const timeLayout = "02/01/2006 15:04"

// ── Generator ─────────────────────────────────────────────────────────────────

// AuditReportGenerator implementa audit.ReportGenerator usando Maroto v2.
type AuditReportGenerator struct {
	loc *time.Location
}

// NewAuditReportGenerator construye el generador. loc nil imprime las horas en UTC.
func NewAuditReportGenerator(loc *time.Location) *AuditReportGenerator {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditReportGenerator{loc: loc}
}

// GenerateAuditPDF genera el PDF y devuelve sus bytes.
func (g *AuditReportGenerator) GenerateAuditPDF(
	_ context.Context,
	entries []*entity.AuditEntry,
	generatedAt time.Time,
	generatedBy string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Bitácora del sistema", true).
		WithAuthor(generatedBy, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt, generatedBy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, e := range entries {
		m.AddRows(g.entryRows(e)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(entries))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar bitácora: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *AuditReportGenerator) headerRow(generatedAt time.Time, generatedBy string) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("BITÁCORA DE SESIONES Y ACCIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado por: "+nonEmpty(generatedBy, entity.UnknownValue), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(generatedAt.In(g.loc).Format(timeLayout), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Ingreso", 2),
		h("Salida", 2),
		h("Usuario", 2),
		h("Acción", 1),
		h("Tabla", 2),
		h("Descripción", 3),
	)
}

// entryRows una fila por entrada; las entradas LOGIN agregan una segunda con el contexto del cliente.
func (g *AuditReportGenerator) entryRows(e *entity.AuditEntry) []core.Row {
	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Top: 1, Left: 1}))
	}

	exit := cell("-", 2)
	if e.ActionKind == entity.ActionLogin {
		if e.ExitTime != nil {
			exit = cell(e.ExitTime.In(g.loc).Format(timeLayout), 2)
		} else {
			exit = col.New(2).Add(text.New("sesión abierta", props.Text{
				Size: 7.5, Top: 1, Left: 1, Style: fontstyle.Italic, Color: colorOpen,
			}))
		}
	}
	table := "-"
	if e.TableAffected != nil {
		table = *e.TableAffected
	}

	rows := []core.Row{row.New(6).Add(
		cell(e.EntryTime.In(g.loc).Format(timeLayout), 2),
		exit,
		cell(e.UserName, 2),
		cell(e.ActionKind, 1),
		cell(table, 2),
		cell(e.Description, 3),
	)}
	if e.ActionKind == entity.ActionLogin {
		rows = append(rows, row.New(4).Add(col.New(12).Add(text.New(
			fmt.Sprintf("IP: %s   |   Navegador: %s   |   Máquina: %s",
				nonEmpty(e.ClientIP, entity.UnknownValue),
				nonEmpty(e.Browser, entity.UnknownValue),
				nonEmpty(e.MachineName, entity.UnknownValue),
			),
			props.Text{Size: 6.5, Color: colorGray, Left: 4},
		))))
	}
	return rows
}

func summaryRow(entries []*entity.AuditEntry) core.Row {
	open := 0
	for _, e := range entries {
		if e.IsOpen() {
			open++
		}
	}
	return row.New(8).Add(col.New(12).Add(text.New(
		fmt.Sprintf("Entradas: %d   |   Sesiones abiertas: %d", len(entries), open),
		props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2},
	)))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
