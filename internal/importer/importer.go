// Package importer reads cut lists from CSV and Excel files. It detects the
// CSV delimiter, maps columns by header aliases case-insensitively, and
// collects per-row errors instead of aborting on the first bad line.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cortesys/cutplan/internal/model"
)

// Result holds the parts parsed from a file plus everything that went wrong
// along the way. Errors are per-row and non-fatal; the good rows survive.
type Result struct {
	Parts    []model.Part
	Errors   []string
	Warnings []string
}

// columns maps semantic roles to column indices; -1 means absent.
type columns struct {
	Name     int
	Length   int
	Width    int
	Quantity int
	Edges    int
	Grain    int
}

// headerAliases maps each column role to its accepted header spellings,
// all lowercase.
var headerAliases = map[string][]string{
	"name":     {"name", "label", "part", "part name", "description", "desc", "piece", "item"},
	"length":   {"length", "len", "l", "x"},
	"width":    {"width", "w", "depth", "y"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"edges":    {"edges", "edge", "banding", "edgeband", "edge banding", "band"},
	"grain":    {"grain", "grain lock", "lock", "locked", "orientation"},
}

// DetectDelimiter picks the most likely CSV delimiter out of comma,
// semicolon, tab and pipe. The candidate producing the most consistent
// multi-column row shape wins.
func DetectDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	best := ','
	bestScore := 0

	for _, delim := range candidates {
		r := csv.NewReader(bytes.NewReader(data))
		r.Comma = delim
		r.LazyQuotes = true
		r.FieldsPerRecord = -1

		records, err := r.ReadAll()
		if err != nil || len(records) == 0 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}
		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			best = delim
		}
	}
	return best
}

// detectColumns maps a header row to column roles. When no alias matches,
// the positional fallback name/length/width/quantity/edges/grain applies and
// the bool is false.
func detectColumns(row []string) (columns, bool) {
	cols := columns{Name: -1, Length: -1, Width: -1, Quantity: -1, Edges: -1, Grain: -1}

	found := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				found = true
				switch role {
				case "name":
					if cols.Name == -1 {
						cols.Name = i
					}
				case "length":
					if cols.Length == -1 {
						cols.Length = i
					}
				case "width":
					if cols.Width == -1 {
						cols.Width = i
					}
				case "quantity":
					if cols.Quantity == -1 {
						cols.Quantity = i
					}
				case "edges":
					if cols.Edges == -1 {
						cols.Edges = i
					}
				case "grain":
					if cols.Grain == -1 {
						cols.Grain = i
					}
				}
			}
		}
	}

	if !found {
		return columns{Name: 0, Length: 1, Width: 2, Quantity: 3, Edges: 4, Grain: 5}, false
	}
	return cols, true
}

// applyEdgeTokens sets the banding flags from a token list like "l1,l2,w1"
// or the shorthands "all" and "4". Unknown tokens are reported.
func applyEdgeTokens(p *model.Part, s string) (unknown []string) {
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '+'
	}) {
		switch strings.ToLower(tok) {
		case "l1", "la", "length1":
			p.BandLengthA = true
		case "l2", "lb", "length2":
			p.BandLengthB = true
		case "w1", "wa", "width1":
			p.BandWidthA = true
		case "w2", "wb", "width2":
			p.BandWidthB = true
		case "all", "4":
			p.BandLengthA, p.BandLengthB = true, true
			p.BandWidthA, p.BandWidthB = true, true
		case "none", "0", "-":
		default:
			unknown = append(unknown, tok)
		}
	}
	return unknown
}

// parseGrainLock recognizes the usual yes/no spellings for a grain lock
// cell. The bool result is the lock value; ok is false on unknown input.
func parseGrainLock(s string) (locked, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "locked", "lock", "true", "1":
		return true, true
	case "", "no", "n", "none", "false", "0", "-":
		return false, true
	default:
		return false, false
	}
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseRow extracts one part from a data row. The error and warning strings
// are empty when unused.
func parseRow(row []string, cols columns, rowLabel string, partCount int) (model.Part, string, string) {
	name := cell(row, cols.Name)
	if name == "" {
		name = fmt.Sprintf("Part %d", partCount+1)
	}

	lengthStr := cell(row, cols.Length)
	if lengthStr == "" {
		return model.Part{}, fmt.Sprintf("%s: missing length", rowLabel), ""
	}
	length, err := strconv.ParseFloat(lengthStr, 64)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: invalid length %q", rowLabel, lengthStr), ""
	}

	widthStr := cell(row, cols.Width)
	if widthStr == "" {
		return model.Part{}, fmt.Sprintf("%s: missing width", rowLabel), ""
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: invalid width %q", rowLabel, widthStr), ""
	}

	qtyStr := cell(row, cols.Quantity)
	if qtyStr == "" {
		return model.Part{}, fmt.Sprintf("%s: missing quantity", rowLabel), ""
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.Part{}, fmt.Sprintf("%s: invalid quantity %q", rowLabel, qtyStr), ""
	}

	if length <= 0 || width <= 0 || qty <= 0 {
		return model.Part{}, fmt.Sprintf("%s: length, width and quantity must be positive", rowLabel), ""
	}

	part := model.Part{Name: name, Length: length, Width: width, Quantity: qty}

	var warnings []string
	if edges := cell(row, cols.Edges); edges != "" {
		if unknown := applyEdgeTokens(&part, edges); len(unknown) > 0 {
			warnings = append(warnings, fmt.Sprintf("%s: unknown edge tokens %q ignored", rowLabel, strings.Join(unknown, ",")))
		}
	}
	if grain := cell(row, cols.Grain); grain != "" {
		locked, ok := parseGrainLock(grain)
		if ok {
			part.GrainLock = locked
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: unknown grain value %q, part stays rotatable", rowLabel, grain))
		}
	}

	return part, "", strings.Join(warnings, "; ")
}

// ImportCSV reads a cut list from a CSV file, detecting the delimiter.
func ImportCSV(path string) Result {
	var res Result

	data, err := os.ReadFile(path)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot open file: %v", err))
		return res
	}
	if len(bytes.TrimSpace(data)) == 0 {
		res.Errors = append(res.Errors, "file is empty")
		return res
	}

	delim := DetectDelimiter(data)
	if delim != ',' {
		name := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delim]
		res.Warnings = append(res.Warnings, fmt.Sprintf("detected %s delimiter", name))
	}

	return importRows(readCSV(bytes.NewReader(data), delim, &res), "line", res)
}

// ImportCSVFromReader reads a cut list with a known delimiter.
func ImportCSVFromReader(r io.Reader, delim rune) Result {
	var res Result
	return importRows(readCSV(r, delim, &res), "line", res)
}

func readCSV(r io.Reader, delim rune, res *Result) [][]string {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot read CSV: %v", err))
		return nil
	}
	return records
}

// ImportExcel reads a cut list from the first sheet of an xlsx workbook.
func ImportExcel(path string) Result {
	var res Result

	f, err := excelize.OpenFile(path)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot open workbook: %v", err))
		return res
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		res.Errors = append(res.Errors, "workbook has no sheets")
		return res
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("cannot read sheet: %v", err))
		return res
	}
	return importRows(rows, "row", res)
}

// importRows is the shared parse loop for CSV and Excel input.
func importRows(rows [][]string, rowPrefix string, res Result) Result {
	if len(res.Errors) > 0 {
		return res
	}
	if len(rows) == 0 {
		res.Errors = append(res.Errors, "no data rows found")
		return res
	}

	cols, hasHeader := detectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1

		var missing []string
		if cols.Length == -1 {
			missing = append(missing, "length")
		}
		if cols.Width == -1 {
			missing = append(missing, "width")
		}
		if cols.Quantity == -1 {
			missing = append(missing, "quantity")
		}
		if len(missing) > 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("required columns not found in header: %s", strings.Join(missing, ", ")))
			return res
		}
	} else if len(rows[0]) >= 3 {
		// Unrecognized header: first data column not numeric means the row
		// is labels, so skip it and keep the positional mapping.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			start = 1
			res.Warnings = append(res.Warnings, "skipping unrecognized header row")
		}
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		part, errMsg, warning := parseRow(row, cols, rowLabel, len(res.Parts))
		if errMsg != "" {
			res.Errors = append(res.Errors, errMsg)
			continue
		}
		if warning != "" {
			res.Warnings = append(res.Warnings, warning)
		}
		res.Parts = append(res.Parts, part)
	}
	return res
}
