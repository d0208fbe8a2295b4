package report

import (
	"encoding/csv"
	"io"
)

// CSVExporter writes rows as RFC 4180 CSV with a header line.
type CSVExporter struct{}

func (CSVExporter) Name() string      { return "csv" }
func (CSVExporter) Extension() string { return ".csv" }

// Export writes the header and one line per row. Totals are not written so
// the output stays a plain table.
func (CSVExporter) Export(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range doc.Rows {
		if err := cw.Write(r.Strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
