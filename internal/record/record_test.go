package record_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leighmacdonald/team-tracker/internal/record"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadRows(t *testing.T) {
	const data = `LeBron James,39,10,0,player,23,27.1,7.4,7.5,0.0,0.0,0.0,0.0,0.0
Nick Nurse,56,10,0,coach,60.0,0.0
Short,row
`
	rows, err := record.ReadRows(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Len(t, rows[0], 14)
	require.Equal(t, "coach", rows[1][4])
	require.Equal(t, []string{"Short", "row"}, rows[2])
}

func TestWriteRowsRoundTrip(t *testing.T) {
	rows := [][]string{
		{"Pascal Siakam", "30", "2", "1", "player", "43", "24.5", "6.0", "8.1", "20.0", "5.0", "9.0", "48.2", "33.3"},
		{"Name, With Comma", "44", "0", "0", "coach", "0.0", "0.0"},
	}

	var buf bytes.Buffer
	require.NoError(t, record.WriteRows(&buf, rows))

	read, err := record.ReadRows(&buf)
	require.NoError(t, err)
	require.Equal(t, rows, read)
}

func TestParseNumbers(t *testing.T) {
	value, err := record.ParseInt(" 42 ")
	require.NoError(t, err)
	require.Equal(t, 42, value)

	_, errBad := record.ParseInt("forty")
	require.ErrorIs(t, errBad, record.ErrMalformedRecord)

	values, errFloats := record.ParseFloats([]string{"1.5", " 2", "3.25"})
	require.NoError(t, errFloats)
	require.Equal(t, []float64{1.5, 2, 3.25}, values)

	_, errFloat := record.ParseFloats([]string{"1.5", "x"})
	require.ErrorIs(t, errFloat, record.ErrMalformedRecord)

	for _, field := range []string{"NaN", "Inf", "+Inf", "-inf", " nan "} {
		_, errNotFinite := record.ParseFloat(field)
		require.ErrorIs(t, errNotFinite, record.ErrMalformedRecord, field)
	}

	require.Equal(t, "12.0", record.FormatFloat(12))
	require.Equal(t, "66.7", record.FormatFloat(66.66))
}

func TestParserFor(t *testing.T) {
	for _, name := range []string{"game1.csv", "game1.CSV", "game1.txt", "game1"} {
		parser, err := record.ParserFor(name)
		require.NoError(t, err, name)
		require.IsType(t, record.CSVParser{}, parser)
	}

	parser, err := record.ParserFor("game1.xlsx")
	require.NoError(t, err)
	require.IsType(t, record.XLSXParser{}, parser)

	_, errUnsupported := record.ParserFor("game1.pdf")
	require.Error(t, errUnsupported)

	require.True(t, record.IsSheet("game.xlsx"))
	require.False(t, record.IsSheet("notes.md"))
	require.False(t, record.IsSheet("no-extension"))
}

func TestCSVParser(t *testing.T) {
	const data = `playoff,Boston Celtics,101,99,Conference Finals
Scottie Barnes,22,8,9,50.0,33.3
`
	sheet, err := record.CSVParser{}.Parse([]byte(data))
	require.NoError(t, err)
	require.Equal(t, []string{"playoff", "Boston Celtics", "101", "99", "Conference Finals"}, sheet.Header)
	require.Len(t, sheet.Rows, 1)

	_, errEmpty := record.CSVParser{}.Parse(nil)
	require.ErrorIs(t, errEmpty, record.ErrMalformedRecord)
}

func TestXLSXParser(t *testing.T) {
	workbook := excelize.NewFile()
	defer func() {
		require.NoError(t, workbook.Close())
	}()

	sheetName := workbook.GetSheetName(0)
	require.NoError(t, workbook.SetSheetRow(sheetName, "A1", &[]any{"regular", "Chicago Bulls", "110", "96"}))
	require.NoError(t, workbook.SetSheetRow(sheetName, "A2", &[]any{"Scottie Barnes", "20", "7", "11"}))
	require.NoError(t, workbook.SetSheetRow(sheetName, "A4", &[]any{"RJ Barrett", "18", "4", "5"}))

	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)

	sheet, errParse := record.XLSXParser{}.Parse(buf.Bytes())
	require.NoError(t, errParse)
	require.Equal(t, []string{"regular", "Chicago Bulls", "110", "96"}, sheet.Header)
	require.Equal(t, [][]string{
		{"Scottie Barnes", "20", "7", "11"},
		{"RJ Barrett", "18", "4", "5"},
	}, sheet.Rows)
}
