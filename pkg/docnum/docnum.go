// Package docnum parses and formats human-readable document numbers of the
// form <SERIES>-<yyyymmdd>-<seq>, e.g. "QUO-20250531-1" or "INV-20250531-1".
package docnum

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Series prefixes used by the document types in the system.
const (
	SeriesQuotation = "QUO"
	SeriesInvoice   = "INV"
)

const dateLayout = "20060102"

// Number is a decomposed document number.
type Number struct {
	Series   string
	Date     time.Time
	Sequence int
}

// Parse decomposes a document number string. The series token is kept verbatim,
// the date must be a valid yyyymmdd and the sequence a positive integer.
func Parse(s string) (Number, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return Number{}, fmt.Errorf("malformed document number %q: want <series>-<yyyymmdd>-<seq>", s)
	}

	series := parts[0]
	if series == "" {
		return Number{}, fmt.Errorf("malformed document number %q: empty series", s)
	}

	date, err := time.Parse(dateLayout, parts[1])
	if err != nil {
		return Number{}, fmt.Errorf("malformed document number %q: bad date: %w", s, err)
	}

	seq, err := strconv.Atoi(parts[2])
	if err != nil || seq < 1 {
		return Number{}, fmt.Errorf("malformed document number %q: bad sequence", s)
	}

	return Number{Series: series, Date: date, Sequence: seq}, nil
}

// String formats the number back into its canonical external form.
func (n Number) String() string {
	return fmt.Sprintf("%s-%s-%d", n.Series, n.Date.Format(dateLayout), n.Sequence)
}

// WithSeries returns a copy of the number under a different series prefix,
// preserving date and sequence verbatim.
func (n Number) WithSeries(series string) Number {
	n.Series = series
	return n
}

// Format builds a document number from its parts.
func Format(series string, date time.Time, sequence int) string {
	return Number{Series: series, Date: date, Sequence: sequence}.String()
}
