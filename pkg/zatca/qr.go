package zatca

import (
	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the pixel width of generated QR images, matching the square
// reserved for the code on rendered documents.
const qrSize = 256

// GenerateQR encodes the payload and rasterizes it into a PNG suitable for
// embedding in a rendered invoice.
func GenerateQR(p Payload) ([]byte, error) {
	encoded, err := EncodeTLV(p)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(encoded, qrcode.Medium, qrSize)
}
