// Package roster reads attendee lists from CSV and Excel files.
package roster

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"course-giveaway/internal/logger"
	"course-giveaway/internal/models"

	"github.com/xuri/excelize/v2"
)

// Columns names the header cells to read. Contact may be empty.
type Columns struct {
	Name    string
	Contact string
}

// Options controls how a file is read. Sheet only applies to workbooks;
// empty means the first sheet.
type Options struct {
	Columns Columns
	Sheet   string
}

type Loader struct {
	logger logger.Logger
}

func NewLoader(log logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{logger: log}
}

// Load reads the attendee file at path. A missing file, or one without any
// named rows, yields ErrNoAttendees.
func (l *Loader) Load(ctx context.Context, path string, opts Options) (*models.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	l.logger.Debug("RosterLoader", "loading attendees", map[string]interface{}{
		"path":      path,
		"extension": ext,
	})

	var (
		rows []record
		err  error
	)
	switch ext {
	case ".csv", ".txt":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path, opts.Sheet)
	default:
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}
	if errors.Is(err, fs.ErrNotExist) {
		l.logger.Warning("RosterLoader", "attendee file not found", map[string]interface{}{"path": path})
		return nil, ErrNoAttendees
	}
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	attendees, err := parseRows(rows, opts.Columns)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	roster := models.NewRoster(path, attendees)
	if roster.IsEmpty() {
		return nil, ErrNoAttendees
	}

	l.logger.Info("RosterLoader", "attendees loaded", map[string]interface{}{
		"path":      path,
		"attendees": roster.Len(),
	})
	return roster, nil
}

// record is one table row and its 1-based position in the source: the line
// a CSV record starts on, or the worksheet row number. Blank CSV lines and
// empty worksheet rows both take up a position, so the same table read from
// either format numbers its rows the same way.
type record struct {
	pos    int
	fields []string
}

func readCSV(path string) ([]record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readRecords(f)
}

// readRecords reads every record from r. Rows may have differing field
// counts; a leading UTF-8 byte order mark is ignored.
func readRecords(r io.Reader) ([]record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, record{pos: line, fields: fields})
	}
	if len(records) > 0 && len(records[0].fields) > 0 {
		records[0].fields[0] = strings.TrimPrefix(records[0].fields[0], "\ufeff")
	}
	return records, nil
}

func readWorkbook(path, sheet string) ([]record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	records := make([]record, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 && len(records) == 0 {
			continue
		}
		records = append(records, record{pos: i + 1, fields: row})
	}
	return records, nil
}

// parseRows maps a header plus data rows onto attendees. An empty table has
// no attendees rather than a missing column. Row is counted from the header:
// the first position below it is row 1.
func parseRows(rows []record, cols Columns) ([]models.Attendee, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	nameIdx := columnIndex(header.fields, cols.Name)
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, cols.Name)
	}
	contactIdx := -1
	if cols.Contact != "" {
		contactIdx = columnIndex(header.fields, cols.Contact)
	}

	attendees := make([]models.Attendee, 0, len(rows)-1)
	for _, row := range rows[1:] {
		a := models.Attendee{Name: cell(row.fields, nameIdx), Row: row.pos - header.pos}
		if contactIdx >= 0 {
			a.Contact = cell(row.fields, contactIdx)
		}
		attendees = append(attendees, a)
	}
	return attendees, nil
}

func columnIndex(header []string, name string) int {
	want := strings.TrimSpace(name)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
