// Package zatca implements the ZATCA Phase-1 e-invoicing QR payload: five
// Tag-Length-Value records (seller, VAT registration, timestamp, totals)
// concatenated and base64 encoded for embedding in a scannable QR code.
package zatca

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// TLV tags in the order mandated by the Phase-1 specification.
const (
	TagSellerName   byte = 1
	TagVATNumber    byte = 2
	TagTimestamp    byte = 3
	TagInvoiceTotal byte = 4
	TagVATTotal     byte = 5
)

// Defaults used when seller identity fields are absent.
const (
	DefaultSellerName = "Al Nasr Trading Est."
	DefaultVATNumber  = "300000000000003"
)

// maxFieldLen is the largest value a single-byte TLV length can describe.
const maxFieldLen = 255

// Payload carries the raw invoice fields to be encoded. Amounts are decimal
// strings; thousands separators are tolerated and stripped.
type Payload struct {
	SellerName  string
	VATNumber   string
	Timestamp   string
	TotalAmount string
	VATAmount   string
}

// timestampLayouts are accepted input formats, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// EncodeTLV encodes the payload into the base64 form embedded in the QR code.
// The decoded byte sequence is five [tag:1][length:1][value:length] records in
// tag order, no separators or padding; lengths count UTF-8 bytes.
func EncodeTLV(p Payload) (string, error) {
	sellerName := strings.TrimSpace(p.SellerName)
	if sellerName == "" {
		sellerName = DefaultSellerName
	}
	vatNumber := strings.TrimSpace(p.VATNumber)
	if vatNumber == "" {
		vatNumber = DefaultVATNumber
	}

	issuedAt, err := parseTimestamp(p.Timestamp)
	if err != nil {
		return "", err
	}

	total, err := normalizeAmount("total amount", p.TotalAmount)
	if err != nil {
		return "", err
	}
	vat, err := normalizeAmount("VAT amount", p.VATAmount)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fields := []struct {
		tag   byte
		value string
	}{
		{TagSellerName, sellerName},
		{TagVATNumber, vatNumber},
		{TagTimestamp, issuedAt.Format(time.RFC3339)},
		{TagInvoiceTotal, total.StringFixed(2)},
		{TagVATTotal, vat.StringFixed(2)},
	}
	for _, f := range fields {
		if err := appendTLV(&buf, f.tag, f.value); err != nil {
			return "", err
		}
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Field is one decoded TLV record.
type Field struct {
	Tag   byte
	Value string
}

// DecodeTLV parses a base64 payload back into its TLV records.
func DecodeTLV(encoded string) ([]Field, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, apperror.NewValidationError("QR payload is not valid base64")
	}

	var fields []Field
	for i := 0; i < len(raw); {
		if len(raw)-i < 2 {
			return nil, apperror.NewValidationError("truncated TLV record")
		}
		tag := raw[i]
		length := int(raw[i+1])
		i += 2
		if len(raw)-i < length {
			return nil, apperror.NewValidationError("truncated TLV value")
		}
		fields = append(fields, Field{Tag: tag, Value: string(raw[i : i+length])})
		i += length
	}
	return fields, nil
}

func appendTLV(buf *bytes.Buffer, tag byte, value string) error {
	if len(value) > maxFieldLen {
		return apperror.NewValidationError(
			fmt.Sprintf("QR field %d exceeds %d bytes", tag, maxFieldLen))
	}
	buf.WriteByte(tag)
	buf.WriteByte(byte(len(value)))
	buf.WriteString(value)
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperror.NewValidationError(fmt.Sprintf("unparseable issue timestamp %q", s))
}

// normalizeAmount strips thousands separators and parses the remainder as a
// non-negative decimal. Non-numeric input is rejected rather than coerced to
// zero so a wrong tax amount can never be silently encoded.
func normalizeAmount(name, s string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return decimal.Zero, apperror.NewValidationError(name + " is required")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, apperror.NewValidationError(fmt.Sprintf("%s %q is not numeric", name, s))
	}
	if d.IsNegative() {
		return decimal.Zero, apperror.NewValidationError(name + " must not be negative")
	}
	return d, nil
}
