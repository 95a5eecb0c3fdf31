package docnum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("parses a quotation number", func(t *testing.T) {
		n, err := Parse("QUO-20250531-1")
		require.NoError(t, err)

		assert.Equal(t, SeriesQuotation, n.Series)
		assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), n.Date)
		assert.Equal(t, 1, n.Sequence)
	})

	t.Run("round-trips through String", func(t *testing.T) {
		for _, s := range []string{"QUO-20250531-1", "INV-20240101-42", "QUO-19991231-999"} {
			n, err := Parse(s)
			require.NoError(t, err)
			assert.Equal(t, s, n.String())
		}
	})

	t.Run("rejects malformed numbers", func(t *testing.T) {
		for _, s := range []string{
			"",
			"QUO-20250531",
			"QUO-20250531-1-2",
			"-20250531-1",
			"QUO-2025053-1",
			"QUO-20251332-1",
			"QUO-20250531-0",
			"QUO-20250531-x",
		} {
			_, err := Parse(s)
			assert.Error(t, err, "input %q", s)
		}
	})
}

func TestWithSeries(t *testing.T) {
	n, err := Parse("QUO-20250531-1")
	require.NoError(t, err)

	// Derivation preserves date and sequence verbatim
	assert.Equal(t, "INV-20250531-1", n.WithSeries(SeriesInvoice).String())
	assert.Equal(t, "QUO-20250531-1", n.String())
}

func TestFormat(t *testing.T) {
	date := time.Date(2025, 5, 31, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "INV-20250531-7", Format(SeriesInvoice, date, 7))
}
