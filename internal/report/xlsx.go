package report

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Entries"

// XLSXExporter writes rows to a single-sheet workbook with a totals line.
type XLSXExporter struct{}

func (XLSXExporter) Name() string      { return "xlsx" }
func (XLSXExporter) Extension() string { return ".xlsx" }

func (XLSXExporter) Export(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return err
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(xlsxSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, r := range doc.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.Date, r.Employee, r.ProjectCode, r.ProjectName, r.WorkType,
			r.Start, r.End, r.BreakMinutes, r.Hours, r.Base, r.OT, r.Status, r.Notes,
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return err
		}
	}

	totalRow := len(doc.Rows) + 2
	cell, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return err
	}
	totals := []interface{}{"Total", "", "", "", "", "", "", "", doc.Totals.Hours, doc.Totals.Base, doc.Totals.OT}
	if err := f.SetSheetRow(xlsxSheet, cell, &totals); err != nil {
		return err
	}
	if err := f.SetRowStyle(xlsxSheet, totalRow, totalRow, bold); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
