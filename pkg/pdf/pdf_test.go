package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnasr/invoicing-api/pkg/zatca"
)

func testDocument() *Document {
	return &Document{
		Title:        "Tax Invoice",
		Number:       "INV-20250531-1",
		CustomerName: "ACME Contracting",
		IssueDate:    "2025-06-15",
		DueDate:      "2025-07-15",
		Currency:     "SAR",
		Lines: []Line{
			{Description: "Concrete block", Quantity: 10, UnitPrice: 10, VATAmount: 15, Total: 115},
		},
		TotalAmount: 115,
		VATAmount:   15,
	}
}

func TestRender(t *testing.T) {
	r := NewRenderer(Seller{Name: "Al Nasr Trading Est.", VATNumber: "300000000000003"})

	out, err := r.Render(testDocument())

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderWithQR(t *testing.T) {
	qr, err := zatca.GenerateQR(zatca.Payload{
		SellerName:  "Al Nasr Trading Est.",
		VATNumber:   "300000000000003",
		Timestamp:   "2025-06-15T00:00:00Z",
		TotalAmount: "115.00",
		VATAmount:   "15.00",
	})
	require.NoError(t, err)

	doc := testDocument()
	doc.QRImage = qr

	r := NewRenderer(Seller{Name: "Al Nasr Trading Est.", VATNumber: "300000000000003"})
	out, err := r.Render(doc)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
