package zatca

import (
	"encoding/base64"
	"testing"

	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, p Payload) []byte {
	t.Helper()
	encoded, err := EncodeTLV(p)
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	return raw
}

func TestEncodeTLV(t *testing.T) {
	t.Run("produces byte-exact TLV records in tag order", func(t *testing.T) {
		raw := encode(t, Payload{
			SellerName:  "ACME",
			VATNumber:   "399999999900003",
			Timestamp:   "2025-05-31T10:00:00Z",
			TotalAmount: "115.00",
			VATAmount:   "15.00",
		})

		want := []byte{0x01, 0x04}
		want = append(want, []byte("ACME")...)
		want = append(want, 0x02, 0x0F)
		want = append(want, []byte("399999999900003")...)
		want = append(want, 0x03, 0x14)
		want = append(want, []byte("2025-05-31T10:00:00Z")...)
		want = append(want, 0x04, 0x06)
		want = append(want, []byte("115.00")...)
		want = append(want, 0x05, 0x05)
		want = append(want, []byte("15.00")...)

		assert.Equal(t, want, raw)
	})

	t.Run("round-trips through DecodeTLV", func(t *testing.T) {
		encoded, err := EncodeTLV(Payload{
			SellerName:  "Gulf Supplies Co.",
			VATNumber:   "310122393500003",
			Timestamp:   "2025-05-31T10:00:00Z",
			TotalAmount: "1,254.5",
			VATAmount:   "163.63",
		})
		require.NoError(t, err)

		fields, err := DecodeTLV(encoded)
		require.NoError(t, err)
		require.Len(t, fields, 5)

		assert.Equal(t, Field{TagSellerName, "Gulf Supplies Co."}, fields[0])
		assert.Equal(t, Field{TagVATNumber, "310122393500003"}, fields[1])
		assert.Equal(t, Field{TagTimestamp, "2025-05-31T10:00:00Z"}, fields[2])
		assert.Equal(t, Field{TagInvoiceTotal, "1254.50"}, fields[3])
		assert.Equal(t, Field{TagVATTotal, "163.63"}, fields[4])
	})

	t.Run("length byte counts UTF-8 bytes, not characters", func(t *testing.T) {
		// Arabic seller name: 4 characters, 8 bytes
		name := "شركة"
		require.Len(t, name, 8)

		raw := encode(t, Payload{
			SellerName:  name,
			VATNumber:   "399999999900003",
			Timestamp:   "2025-05-31T10:00:00Z",
			TotalAmount: "115",
			VATAmount:   "15",
		})

		assert.Equal(t, byte(TagSellerName), raw[0])
		assert.Equal(t, byte(8), raw[1])
		assert.Equal(t, name, string(raw[2:10]))
	})

	t.Run("amounts are fixed to two decimals", func(t *testing.T) {
		fields, err := DecodeTLV(mustEncode(t, Payload{
			Timestamp:   "2025-05-31T10:00:00Z",
			TotalAmount: "115",
			VATAmount:   "15.5",
		}))
		require.NoError(t, err)

		assert.Equal(t, "115.00", fields[3].Value)
		assert.Equal(t, "15.50", fields[4].Value)
	})

	t.Run("falls back to default seller identity", func(t *testing.T) {
		fields, err := DecodeTLV(mustEncode(t, Payload{
			Timestamp:   "2025-05-31T10:00:00Z",
			TotalAmount: "115.00",
			VATAmount:   "15.00",
		}))
		require.NoError(t, err)

		assert.Equal(t, DefaultSellerName, fields[0].Value)
		assert.Equal(t, DefaultVATNumber, fields[1].Value)
	})

	t.Run("rejects unparseable timestamps", func(t *testing.T) {
		_, err := EncodeTLV(Payload{
			Timestamp:   "31/05/2025",
			TotalAmount: "115.00",
			VATAmount:   "15.00",
		})
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("rejects non-numeric amounts", func(t *testing.T) {
		for _, amount := range []string{"", "abc", "12.3.4", "-1.00"} {
			_, err := EncodeTLV(Payload{
				Timestamp:   "2025-05-31T10:00:00Z",
				TotalAmount: amount,
				VATAmount:   "15.00",
			})
			assert.True(t, apperror.IsValidation(err), "amount %q", amount)
		}
	})

	t.Run("rejects fields longer than 255 bytes", func(t *testing.T) {
		long := make([]byte, 256)
		for i := range long {
			long[i] = 'a'
		}
		_, err := EncodeTLV(Payload{
			SellerName:  string(long),
			Timestamp:   "2025-05-31T10:00:00Z",
			TotalAmount: "115.00",
			VATAmount:   "15.00",
		})
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestGenerateQR(t *testing.T) {
	t.Run("produces a PNG image", func(t *testing.T) {
		png, err := GenerateQR(Payload{
			SellerName:  "ACME",
			VATNumber:   "399999999900003",
			Timestamp:   "2025-05-31T10:00:00Z",
			TotalAmount: "115.00",
			VATAmount:   "15.00",
		})
		require.NoError(t, err)
		require.NotEmpty(t, png)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
	})

	t.Run("propagates encoder validation errors", func(t *testing.T) {
		_, err := GenerateQR(Payload{Timestamp: "not-a-time", TotalAmount: "1", VATAmount: "0"})
		assert.True(t, apperror.IsValidation(err))
	})
}

func mustEncode(t *testing.T, p Payload) string {
	t.Helper()
	encoded, err := EncodeTLV(p)
	require.NoError(t, err)
	return encoded
}
