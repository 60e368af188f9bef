package spreadsheet

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/palpiteria/bolao/internal/normalize"
)

// scheduleHeaderFields maps folded header cells to schedule fields.
var scheduleHeaderFields = map[string]string{
	"rodada":    "round",
	"data":      "date",
	"hora":      "time",
	"horario":   "time",
	"mandante":  "home",
	"casa":      "home",
	"visitante": "away",
	"fora":      "away",
	"local":     "venue",
	"estadio":   "venue",
}

// ScheduleRow is one schedule line lifted from a worksheet. Cells stay
// raw strings; date and kick-off parsing happens at import time.
type ScheduleRow struct {
	Line  int
	Round int
	Date  string
	Time  string
	Home  string
	Away  string
	Venue string
}

// SkippedRow records a data row the reader dropped and why.
type SkippedRow struct {
	Line   int
	Reason string
}

type ScheduleSheet struct {
	Rows    []ScheduleRow
	Skipped []SkippedRow
}

// Reader extracts schedule rows and participant columns from xlsx
// workbooks. Only the first worksheet is read.
type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// ReadSchedule locates the header row by its mandante/visitante columns
// (synonyms and accents tolerated) and returns the data rows below it.
// Rows missing teams or a date are reported in Skipped, blank rows are
// dropped silently.
func (r *Reader) ReadSchedule(path string) (*ScheduleSheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := firstSheetRows(f)
	if err != nil {
		return nil, err
	}

	headerIndex, columns := findScheduleHeader(rows)
	if columns == nil {
		return nil, crerr.Newf("no header row with mandante/visitante columns in %s", path)
	}

	sheet := &ScheduleSheet{}
	for i := headerIndex + 1; i < len(rows); i++ {
		row := rows[i]
		if blankRow(row) {
			continue
		}

		line := i + 1
		entry := ScheduleRow{
			Line:  line,
			Round: parseRoundCell(cellAt(row, columns["round"])),
			Date:  strings.TrimSpace(cellAt(row, columns["date"])),
			Time:  strings.TrimSpace(cellAt(row, columns["time"])),
			Home:  strings.TrimSpace(cellAt(row, columns["home"])),
			Away:  strings.TrimSpace(cellAt(row, columns["away"])),
			Venue: strings.TrimSpace(cellAt(row, columns["venue"])),
		}
		switch {
		case entry.Home == "" || entry.Away == "":
			sheet.Skipped = append(sheet.Skipped, SkippedRow{Line: line, Reason: "missing teams"})
		case entry.Date == "":
			sheet.Skipped = append(sheet.Skipped, SkippedRow{Line: line, Reason: "missing date"})
		default:
			sheet.Rows = append(sheet.Rows, entry)
		}
	}
	return sheet, nil
}

// ReadColumn returns the non-empty values under the named column header,
// top to bottom. The header is matched accent- and case-insensitively on
// the first non-blank row.
func (r *Reader) ReadColumn(path, column string) ([]string, error) {
	want := normalize.Team(column)
	if want == "" {
		return nil, crerr.New("column name is required")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open %s", path)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := firstSheetRows(f)
	if err != nil {
		return nil, err
	}

	headerIndex, columnIndex := -1, -1
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		for j, cell := range row {
			if normalize.Team(cell) == want {
				headerIndex, columnIndex = i, j
			}
		}
		break
	}
	if columnIndex < 0 {
		return nil, crerr.Newf("column %q not found in %s (available: %s)",
			column, path, strings.Join(headerCells(rows), ", "))
	}

	var values []string
	for i := headerIndex + 1; i < len(rows); i++ {
		if value := strings.TrimSpace(cellAt(rows[i], columnIndex)); value != "" {
			values = append(values, value)
		}
	}
	return values, nil
}

func firstSheetRows(f *excelize.File) ([][]string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, crerr.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, crerr.Wrapf(err, "read sheet %q", sheets[0])
	}
	if len(rows) == 0 {
		return nil, crerr.Newf("sheet %q is empty", sheets[0])
	}
	return rows, nil
}

func findScheduleHeader(rows [][]string) (int, map[string]int) {
	for i, row := range rows {
		columns := map[string]int{"round": -1, "date": -1, "time": -1, "home": -1, "away": -1, "venue": -1}
		for j, cell := range row {
			field, ok := scheduleHeaderFields[normalize.Team(cell)]
			if !ok {
				continue
			}
			if columns[field] < 0 {
				columns[field] = j
			}
		}
		if columns["home"] >= 0 && columns["away"] >= 0 {
			return i, columns
		}
	}
	return -1, nil
}

func headerCells(rows [][]string) []string {
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		var cells []string
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				cells = append(cells, strings.TrimSpace(cell))
			}
		}
		return cells
	}
	return nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// parseRoundCell reads a round ordinal, tolerating 3ª style suffixes.
// Anything unparseable means the row carries no explicit round.
func parseRoundCell(value string) int {
	value = strings.TrimSpace(value)
	value = strings.TrimSpace(strings.TrimRight(value, "ªº°"))
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
