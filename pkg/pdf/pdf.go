package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Seller identifies the issuing party printed on every document header.
type Seller struct {
	Name      string
	VATNumber string
	Address   string
}

// Line is a single table row on a rendered document.
type Line struct {
	Description string
	Code        string
	Quantity    float64
	UnitPrice   float64
	VATAmount   float64
	Total       float64
}

// Document carries everything a rendered quotation or invoice needs. QRImage
// is an optional PNG; when present it is embedded in the top-right corner.
type Document struct {
	Title        string
	Number       string
	CustomerName string
	ProjectName  string
	IssueDate    string
	DueDate      string
	Currency     string
	Lines        []Line
	TotalAmount  float64
	VATAmount    float64
	Notes        string
	Terms        string
	QRImage      []byte
}

// Renderer renders documents as A4 PDFs for a fixed seller.
type Renderer struct {
	seller Seller
}

// NewRenderer creates a new PDF renderer
func NewRenderer(seller Seller) *Renderer {
	return &Renderer{seller: seller}
}

// Render produces the PDF bytes for a document
func (r *Renderer) Render(doc *Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(120, 8, r.seller.Name)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(120, 5, "VAT No: "+r.seller.VATNumber)
	pdf.Ln(5)
	if r.seller.Address != "" {
		pdf.Cell(120, 5, r.seller.Address)
		pdf.Ln(5)
	}

	if len(doc.QRImage) > 0 {
		imageName := "qr-" + doc.Number
		pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(doc.QRImage))
		pdf.ImageOptions(imageName, 160, 10, 35, 35, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	pdf.Ln(10)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(100, 8, fmt.Sprintf("%s %s", doc.Title, doc.Number))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	if doc.CustomerName != "" {
		pdf.Cell(100, 5, "Customer: "+doc.CustomerName)
		pdf.Ln(5)
	}
	if doc.ProjectName != "" {
		pdf.Cell(100, 5, "Project: "+doc.ProjectName)
		pdf.Ln(5)
	}
	pdf.Cell(100, 5, "Date: "+doc.IssueDate)
	pdf.Ln(5)
	if doc.DueDate != "" {
		pdf.Cell(100, 5, "Due: "+doc.DueDate)
		pdf.Ln(5)
	}
	pdf.Ln(5)

	// Line item table
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(70, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Code", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 7, "VAT", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Total", "1", 0, "R", true, 0, "")
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 9)
	for _, line := range doc.Lines {
		pdf.CellFormat(70, 6, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, line.Code, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%.2f", line.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", line.VATAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", line.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	// Totals
	pdf.Ln(2)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(160, 6, "VAT Total ("+doc.Currency+")", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", doc.VATAmount), "1", 0, "R", false, 0, "")
	pdf.Ln(6)
	pdf.CellFormat(160, 6, "Grand Total ("+doc.Currency+")", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", doc.TotalAmount), "1", 0, "R", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 9)
	if doc.Notes != "" {
		pdf.MultiCell(190, 5, "Notes: "+doc.Notes, "", "L", false)
		pdf.Ln(2)
	}
	if doc.Terms != "" {
		pdf.MultiCell(190, 5, "Terms: "+doc.Terms, "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
