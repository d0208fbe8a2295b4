package report

import (
	"fmt"
	"io"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// pdfColumns drops Work Type and Notes so the table fits a landscape page.
var pdfColumns = []string{"Date", "Employee", "Code", "Start", "End", "Break", "Hours", "Base", "OT", "Status"}

var pdfGrid = []uint{1, 2, 1, 1, 1, 1, 1, 1, 1, 2}

// PDFExporter renders rows as a landscape A4 table with a totals footer.
type PDFExporter struct{}

func (PDFExporter) Name() string      { return "pdf" }
func (PDFExporter) Extension() string { return ".pdf" }

func (PDFExporter) Export(w io.Writer, doc Document) error {
	m := pdf.NewMaroto(consts.Landscape, consts.A4)
	m.SetPageMargins(10, 10, 10)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(doc.Title, props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		if doc.Subtitle != "" {
			m.Row(8, func() {
				m.Col(12, func() {
					m.Text(doc.Subtitle, props.Text{
						Top:   2,
						Align: consts.Center,
						Size:  11,
					})
				})
			})
		}
	})

	rows := make([][]string, 0, len(doc.Rows))
	for _, r := range doc.Rows {
		rows = append(rows, []string{
			r.Date, r.Employee, r.ProjectCode, r.Start, r.End,
			fmt.Sprintf("%d", r.BreakMinutes),
			formatHours(r.Hours), formatHours(r.Base), formatHours(r.OT),
			r.Status,
		})
	}

	if len(rows) > 0 {
		m.TableList(pdfColumns, rows, props.TableList{
			HeaderProp: props.TableListContent{
				Size:      9,
				GridSizes: pdfGrid,
			},
			ContentProp: props.TableListContent{
				Size:      9,
				GridSizes: pdfGrid,
			},
			Align:                consts.Center,
			AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
			HeaderContentSpace:   1,
			Line:                 false,
		})
	} else {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("No entries.", props.Text{Top: 3, Align: consts.Center, Size: 10})
			})
		})
	}

	m.Row(15, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total: %s h  (base %s h, OT %s h, %d entries)",
				formatHours(doc.Totals.Hours), formatHours(doc.Totals.Base),
				formatHours(doc.Totals.OT), doc.Totals.EntryCount), props.Text{
				Top:   8,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  11,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return err
	}
	_, err = buf.WriteTo(w)
	return err
}
