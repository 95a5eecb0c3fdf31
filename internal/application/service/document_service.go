package service

import (
	"context"

	"github.com/alnasr/invoicing-api/internal/domain/entity"
	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/alnasr/invoicing-api/pkg/pdf"
	"github.com/alnasr/invoicing-api/pkg/zatca"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// DocumentService renders invoices and quotations as PDFs. Invoice documents
// carry the seller QR code; quotation documents do not.
type DocumentService struct {
	invoiceService   *InvoiceService
	quotationService *QuotationService
	renderer         *pdf.Renderer
	currency         string
}

// NewDocumentService creates a new document service
func NewDocumentService(
	invoiceService *InvoiceService,
	quotationService *QuotationService,
	renderer *pdf.Renderer,
	currency string,
) *DocumentService {
	return &DocumentService{
		invoiceService:   invoiceService,
		quotationService: quotationService,
		renderer:         renderer,
		currency:         currency,
	}
}

// InvoicePDF renders an invoice owned by the given user as a PDF
func (s *DocumentService) InvoicePDF(ctx context.Context, userID, id uuid.UUID) ([]byte, string, error) {
	invoice, err := s.invoiceService.GetInvoice(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	qrPNG, err := zatca.GenerateQR(s.invoiceService.QRPayload(invoice))
	if err != nil {
		return nil, "", err
	}

	lines := make([]pdf.Line, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, pdf.Line{
			Description: item.Description,
			Code:        item.Code,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VATAmount:   item.VATAmount,
			Total:       item.Total,
		})
	}

	doc := &pdf.Document{
		Title:        "Tax Invoice",
		Number:       invoice.Number,
		CustomerName: customerName(invoice.Customer),
		ProjectName:  invoice.ProjectName,
		IssueDate:    invoice.IssueDate.Format(dateLayout),
		DueDate:      invoice.DueDate.Format(dateLayout),
		Currency:     s.currency,
		Lines:        lines,
		TotalAmount:  invoice.TotalAmount,
		VATAmount:    invoice.VATAmount,
		Notes:        derefOrEmpty(invoice.Notes),
		Terms:        derefOrEmpty(invoice.Terms),
		QRImage:      qrPNG,
	}

	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, "", apperror.NewInternalError(err)
	}
	return out, invoice.Number + ".pdf", nil
}

// QuotationPDF renders a quotation owned by the given user as a PDF
func (s *DocumentService) QuotationPDF(ctx context.Context, userID, id uuid.UUID) ([]byte, string, error) {
	quotation, err := s.quotationService.GetQuotation(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	lines := make([]pdf.Line, 0, len(quotation.Items))
	for _, item := range quotation.Items {
		lines = append(lines, pdf.Line{
			Description: item.Description,
			Code:        derefOrEmpty(item.Code),
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			VATAmount:   item.VATAmount,
			Total:       item.Total,
		})
	}

	var projectName string
	if quotation.Project != nil {
		projectName = quotation.Project.Name
	}

	doc := &pdf.Document{
		Title:        "Quotation",
		Number:       quotation.Number,
		CustomerName: customerName(quotation.Customer),
		ProjectName:  projectName,
		IssueDate:    quotation.Date.Format(dateLayout),
		Currency:     s.currency,
		Lines:        lines,
		TotalAmount:  quotation.TotalAmount,
		VATAmount:    quotation.VATAmount,
		Notes:        derefOrEmpty(quotation.Notes),
		Terms:        derefOrEmpty(quotation.Terms),
	}

	out, err := s.renderer.Render(doc)
	if err != nil {
		return nil, "", apperror.NewInternalError(err)
	}
	return out, quotation.Number + ".pdf", nil
}

func customerName(c *entity.Customer) string {
	if c == nil {
		return ""
	}
	return c.Name
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
