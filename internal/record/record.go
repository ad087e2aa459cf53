// Package record implements the comma separated row format shared by roster files and match sheets.
package record

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMalformedRecord is returned for rows with a bad field count, an unparsable number or an
	// unrecognized discriminator.
	ErrMalformedRecord = errors.New("malformed record")
	errReadRows        = errors.New("failed to read rows")
	errNotFinite       = errors.New("value is not a finite number")
	errWriteRows       = errors.New("failed to write rows")
)

// Source is a named, readable record source such as a single roster row file or a match sheet.
type Source interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// ParseInt parses a whole number field.
func ParseInt(field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(field))
	if err != nil {
		return 0, errors.Join(err, ErrMalformedRecord)
	}

	return value, nil
}

// ParseFloat parses a decimal statistic field. NaN and infinities are rejected.
func ParseFloat(field string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, errors.Join(err, ErrMalformedRecord)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.Join(fmt.Errorf("%w: %q", errNotFinite, field), ErrMalformedRecord)
	}

	return value, nil
}

// ParseFloats parses every field, failing on the first bad one.
func ParseFloats(fields []string) ([]float64, error) {
	values := make([]float64, len(fields))
	for idx, field := range fields {
		value, err := ParseFloat(field)
		if err != nil {
			return nil, err
		}
		values[idx] = value
	}

	return values, nil
}

// FormatFloat writes a statistic with exactly one decimal place.
func FormatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 1, 64)
}

// FormatInt writes a whole number field.
func FormatInt(value int) string {
	return strconv.Itoa(value)
}
