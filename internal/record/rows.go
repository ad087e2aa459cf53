package record

import (
	"encoding/csv"
	"errors"
	"io"
)

// ReadRows reads every non empty line of r as a comma separated row. Rows may have differing
// field counts; validating them is left to the caller.
func ReadRows(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.Join(err, errReadRows)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// WriteRows writes rows as comma separated lines.
func WriteRows(w io.Writer, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		return errors.Join(err, errWriteRows)
	}

	return nil
}
