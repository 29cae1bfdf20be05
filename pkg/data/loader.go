package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"electviz/pkg/table"
)

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtXLS  = ".xls"
	ExtXLSX = ".xlsx"
)

var (
	ErrUnsupportedFormat = errors.New("data: unsupported file format")
	ErrParse             = errors.New("data: failed to parse file")
)

// ParseError wraps the cause of a failed parse. It matches ErrParse.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("data: failed to parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Load reads the file at path into a Table, choosing the parser from the
// file extension.
func Load(path string) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !Supported(ext) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f, ext)
}

// Supported reports whether ext (with leading dot) can be loaded.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ExtCSV, ExtXLS, ExtXLSX:
		return true
	}
	return false
}

// Read parses r according to ext (".csv", ".xls" or ".xlsx").
func Read(r io.ReadSeeker, ext string) (*table.Table, error) {
	var (
		records [][]string
		err     error
	)
	ext = strings.ToLower(ext)
	switch ext {
	case ExtCSV:
		records, err = readCSV(r)
	case ExtXLSX:
		records, err = readXLSX(r)
	case ExtXLS:
		records, err = readXLS(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, &ParseError{Format: strings.TrimPrefix(ext, "."), Err: err}
	}
	t, err := FromRecords(records)
	if err != nil {
		return nil, &ParseError{Format: strings.TrimPrefix(ext, "."), Err: err}
	}
	return t, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	// Short rows are padded by FromRecords.
	reader.FieldsPerRecord = -1
	var records [][]string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	// Raw values keep number formats such as "#,##0" out of the cell text.
	return f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
}

func readXLS(r io.ReadSeeker) (records [][]string, err error) {
	// The BIFF reader panics on some malformed workbooks.
	defer func() {
		if p := recover(); p != nil {
			records, err = nil, fmt.Errorf("malformed workbook: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, errors.New("cannot read first sheet")
	}

	width := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheetRow(sheet, i)
		if row == nil {
			records = append(records, nil)
			continue
		}
		n := max(row.LastCol(), width)
		if i == 0 {
			width = n
		}
		rec := make([]string, n)
		for j := range rec {
			rec[j] = xlsCell(row.Col(j))
		}
		// Formatted but empty cells can extend a row past the header.
		for len(rec) > width && rec[len(rec)-1] == "" {
			rec = rec[:len(rec)-1]
		}
		records = append(records, rec)
	}
	return records, nil
}

// sheetRow returns row i of s, or nil when the sheet has no such row.
func sheetRow(s *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return s.Row(i)
}

// xlsEpoch is day zero of the 1900 date system.
var xlsEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// xlsCell undoes the timestamp rendering the BIFF reader applies to numbers
// stored with a user-defined number format, returning the serial value.
func xlsCell(s string) string {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(ts.Sub(xlsEpoch).Hours()/24, 'f', -1, 64)
}
