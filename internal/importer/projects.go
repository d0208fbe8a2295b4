package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrImportHeader is returned when the header row lacks a code or name column
var ErrImportHeader = errors.New("header must contain \"code\" and \"name\" columns")

// ProjectRow is one accepted row of a project sheet.
type ProjectRow struct {
	Code string
	Name string
}

// ProjectImport summarises a parsed project sheet.
type ProjectImport struct {
	Rows       []ProjectRow
	Skipped    int // rows that were malformed or missing code or name
	Duplicates int // rows whose code already exists or repeats an earlier row
}

// ParseProjects reads a project sheet. The header row must contain "code" and
// "name" columns in any order and case; other columns are ignored.
// exists reports whether a code is already taken, and may be nil.
func ParseProjects(r io.Reader, exists func(code string) bool) (ProjectImport, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ProjectImport{}, fmt.Errorf("%w: file is empty", ErrImportHeader)
		}
		return ProjectImport{}, fmt.Errorf("%w: %v", ErrImportHeader, err)
	}

	codeCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "code":
			codeCol = i
		case "name":
			nameCol = i
		}
	}
	if codeCol < 0 || nameCol < 0 {
		return ProjectImport{}, ErrImportHeader
	}

	var res ProjectImport
	seen := make(map[string]bool)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Skipped++
				continue
			}
			return res, err
		}

		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if codeCol >= len(record) || nameCol >= len(record) {
			res.Skipped++
			continue
		}

		code := strings.TrimSpace(record[codeCol])
		name := strings.TrimSpace(record[nameCol])
		if code == "" || name == "" {
			res.Skipped++
			continue
		}

		key := strings.ToLower(code)
		if seen[key] || (exists != nil && exists(code)) {
			res.Duplicates++
			continue
		}
		seen[key] = true
		res.Rows = append(res.Rows, ProjectRow{Code: code, Name: name})
	}

	return res, nil
}
