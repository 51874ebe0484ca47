// Package spreadsheet parses uploaded quote spreadsheets into project tasks.
//
// Two container formats are accepted: XLSX workbooks (first sheet only) and
// delimited text with comma or semicolon separators. The first row is the
// header row; recognized French/English header synonyms map columns onto the
// task fields.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/terramatch-studio/terramatch-engine/pkg/models"
)

var (
	// ErrEmptyFile means the file parsed but contained no rows at all.
	ErrEmptyFile = errors.New("file contains no rows")

	// ErrNoRowsMatched means rows were present but none carried a value in
	// any recognized column. Distinct from ErrEmptyFile so the operator can
	// fix the headers rather than the file.
	ErrNoRowsMatched = errors.New("no rows matched the expected headers")
)

// Header synonyms per logical field. The first column whose trimmed,
// lower-cased header appears in a set resolves that field.
var (
	referenceHeaders   = []string{"référence", "reference", "ref", "réf"}
	nameHeaders        = []string{"désignation", "designation", "nom", "produit", "name"}
	locationHeaders    = []string{"lieu", "localisation", "location", "emplacement"}
	descriptionHeaders = []string{"description", "détails", "details", "quantité", "qté"}
	textureHeaders     = []string{"texture", "visuel", "image"}
)

// xlsxSignature is the ZIP local file header every XLSX workbook starts with.
var xlsxSignature = []byte{'P', 'K', 0x03, 0x04}

// Import parses the uploaded file content and converts its rows to tasks.
func Import(r io.Reader) ([]models.ProjectTask, error) {
	rows, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return ImportRows(rows)
}

// Parse reads the file into header-indexed rows. XLSX is detected by file
// signature; everything else is treated as delimited text. Unreadable
// content is a recoverable error for the caller.
func Parse(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if bytes.HasPrefix(data, xlsxSignature) {
		return parseWorkbook(data)
	}
	return parseDelimited(data)
}

func parseWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func parseDelimited(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited file: %w", err)
	}
	return rows, nil
}

// sniffDelimiter picks semicolons over commas when the first line favors
// them. French spreadsheet exports commonly use semicolons.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// ImportRows maps header-indexed rows onto task candidates. Every data row
// becomes one task unless all four of reference/name/location/description
// end up empty; texture-only or fully blank rows never produce stray tasks.
func ImportRows(rows [][]string) ([]models.ProjectTask, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	idxRef := findColumn(headers, referenceHeaders)
	idxName := findColumn(headers, nameHeaders)
	idxLoc := findColumn(headers, locationHeaders)
	idxDesc := findColumn(headers, descriptionHeaders)
	idxTex := findColumn(headers, textureHeaders)

	tasks := make([]models.ProjectTask, 0, len(rows)-1)
	for _, row := range rows[1:] {
		candidate := models.TaskCandidate{
			Reference:   cell(row, idxRef),
			Name:        cell(row, idxName),
			Location:    cell(row, idxLoc),
			Description: cell(row, idxDesc),
		}

		if texture := cell(row, idxTex); texture != "" {
			if candidate.Description != "" {
				candidate.Description += " | "
			}
			candidate.Description += "Texture: " + texture
		}

		// The texture cell alone never justifies a task; the drop check uses
		// the four primary fields as read from the row.
		if cell(row, idxRef) == "" && cell(row, idxName) == "" &&
			cell(row, idxLoc) == "" && cell(row, idxDesc) == "" {
			continue
		}

		tasks = append(tasks, models.ProjectTask{
			ID:          uuid.NewString(),
			Reference:   candidate.Reference,
			Name:        candidate.Name,
			Location:    candidate.Location,
			Description: candidate.Description,
		})
	}

	if len(tasks) == 0 {
		return nil, ErrNoRowsMatched
	}
	return tasks, nil
}

// findColumn returns the index of the first header matching any synonym,
// or -1 when the field has no column.
func findColumn(headers []string, synonyms []string) int {
	for i, h := range headers {
		for _, s := range synonyms {
			if h == s {
				return i
			}
		}
	}
	return -1
}

// cell returns the trimmed value at column idx, or "" when the column is
// unresolved or the row is short.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
