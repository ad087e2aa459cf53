package record

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	errUnsupportedSheet = errors.New("unsupported match sheet type")
	errEmptySheet       = errors.New("match sheet has no header row")
	errNoWorksheet      = errors.New("workbook contains no sheets")
)

// MatchSheet is one match file: the header row describing the contest followed by one row per
// player who took part.
type MatchSheet struct {
	Header []string
	Rows   [][]string
}

// SheetParser turns raw match file contents into a MatchSheet.
type SheetParser interface {
	Parse(data []byte) (MatchSheet, error)
}

// ParserFor picks a parser using the file extension. Names without an extension are treated
// as csv.
func ParserFor(fileName string) (SheetParser, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt", "":
		return CSVParser{}, nil
	case ".xlsx":
		return XLSXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedSheet, fileName)
	}
}

// IsSheet reports whether a file name has an extension ParserFor understands.
func IsSheet(fileName string) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt", ".xlsx":
		return true
	default:
		return false
	}
}

// CSVParser reads plain comma separated match files.
type CSVParser struct{}

func (CSVParser) Parse(data []byte) (MatchSheet, error) {
	rows, err := ReadRows(bytes.NewReader(data))
	if err != nil {
		return MatchSheet{}, err
	}

	return newSheet(rows)
}

// XLSXParser reads the first worksheet of a workbook using the same row layout as the csv form.
type XLSXParser struct{}

func (XLSXParser) Parse(data []byte) (MatchSheet, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return MatchSheet{}, errors.Join(err, errReadRows)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return MatchSheet{}, errors.Join(errNoWorksheet, ErrMalformedRecord)
	}

	rows, errRows := workbook.GetRows(sheets[0])
	if errRows != nil {
		return MatchSheet{}, errors.Join(errRows, errReadRows)
	}

	// Spreadsheets often carry blank trailing rows.
	filtered := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 || strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}
		filtered = append(filtered, row)
	}

	return newSheet(filtered)
}

func newSheet(rows [][]string) (MatchSheet, error) {
	if len(rows) == 0 {
		return MatchSheet{}, errors.Join(errEmptySheet, ErrMalformedRecord)
	}

	return MatchSheet{Header: rows[0], Rows: rows[1:]}, nil
}
