package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alnasr/invoicing-api/internal/config"
	"github.com/alnasr/invoicing-api/internal/domain/entity"
	"github.com/alnasr/invoicing-api/internal/domain/enum"
	"github.com/alnasr/invoicing-api/internal/domain/repository"
	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/alnasr/invoicing-api/pkg/docnum"
	"github.com/alnasr/invoicing-api/pkg/pagination"
	"github.com/alnasr/invoicing-api/pkg/zatca"
	"github.com/google/uuid"
)

// InvoiceService handles invoice creation and retrieval. Invoices are only
// ever created by converting a quotation.
type InvoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	quotationRepo repository.QuotationRepository
	seller        config.SellerConfig
	dueDays       int
	now           func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	quotationRepo repository.QuotationRepository,
	seller config.SellerConfig,
	dueDays int,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		seller:        seller,
		dueDays:       dueDays,
		now:           time.Now,
	}
}

// ConvertQuotation materializes a quotation into a tax invoice. The invoice
// number is derived from the quotation number, so converting the same
// quotation twice fails with a conflict. The invoice and all of its items are
// written in a single transaction; the quotation itself is never modified.
func (s *InvoiceService) ConvertQuotation(ctx context.Context, userID, quotationID uuid.UUID) (*entity.Invoice, error) {
	quotation, err := s.quotationRepo.GetByIDForUser(ctx, quotationID, userID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}

	num, err := docnum.Parse(quotation.Number)
	if err != nil {
		return nil, apperror.NewValidationError(
			fmt.Sprintf("Quotation number %q cannot be converted to an invoice number", quotation.Number))
	}
	invoiceNumber := num.WithSeries(docnum.SeriesInvoice).String()

	// Cheap pre-check for the common case. The unique index on the invoice
	// number still decides the winner when two conversions race.
	exists, err := s.invoiceRepo.ExistsByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("Quotation %s has already been converted to invoice %s", quotation.Number, invoiceNumber))
	}

	// Midnight in the clock's own zone, so the business day does not flip
	// at UTC midnight.
	nowAt := s.now()
	y, m, d := nowAt.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, nowAt.Location())
	var projectName string
	if quotation.Project != nil {
		projectName = quotation.Project.Name
	}

	invoice := &entity.Invoice{
		UserID:       quotation.UserID,
		CustomerID:   quotation.CustomerID,
		Number:       invoiceNumber,
		ExternalID:   uuid.New(),
		ProjectName:  projectName,
		IssueDate:    today,
		SupplyDate:   today,
		DueDate:      today.AddDate(0, 0, s.dueDays),
		Status:       enum.InvoiceStatusDraft,
		TypeCode:     entity.InvoiceTypeCode,
		TypeSubCode:  entity.InvoiceTransactionCode,
		TotalAmount:  quotation.TotalAmount,
		VATAmount:    quotation.VATAmount,
		DiscountRate: derefOrZero(quotation.DiscountRate),
		InterestRate: derefOrZero(quotation.InterestRate),
		Notes:        quotation.Notes,
		Terms:        quotation.Terms,
		Items:        convertItems(quotation.Items),
	}

	if err := s.invoiceRepo.CreateWithItems(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// convertItems copies quotation line items onto an invoice, filling the
// nullable source fields with their documented fallbacks.
func convertItems(items []entity.QuotationItem) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, 0, len(items))
	for _, qi := range items {
		ii := entity.InvoiceItem{
			Description:    qi.Description,
			Quantity:       qi.Quantity,
			UnitPrice:      qi.UnitPrice,
			BaseUnitPrice:  qi.UnitPrice,
			VATRate:        qi.VATRate,
			VATAmount:      qi.VATAmount,
			TotalVATAmount: qi.VATAmount,
			PriceAfterTax:  qi.UnitPrice + qi.VATAmount,
			DiscountRate:   derefOrZero(qi.DiscountRate),
			InterestRate:   derefOrZero(qi.InterestRate),
			Total:          qi.Total,
		}
		if qi.Code != nil {
			ii.Code = *qi.Code
		}
		if qi.BaseUnitPrice != nil {
			ii.BaseUnitPrice = *qi.BaseUnitPrice
		}
		if qi.TotalVATAmount != nil {
			ii.TotalVATAmount = *qi.TotalVATAmount
		}
		if qi.PriceAfterTax != nil {
			ii.PriceAfterTax = *qi.PriceAfterTax
		}
		out = append(out, ii)
	}
	return out
}

func derefOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// GetInvoice retrieves an invoice owned by the given user, with items
func (s *InvoiceService) GetInvoice(ctx context.Context, userID, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	UserID     uuid.UUID
	Pagination *pagination.PaginationParams
	Search     string
	CustomerID *uuid.UUID
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		CustomerID: input.CustomerID,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, input.UserID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// QRCode renders the QR code PNG for an invoice owned by the given user
func (s *InvoiceService) QRCode(ctx context.Context, userID, id uuid.UUID) ([]byte, error) {
	invoice, err := s.GetInvoice(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return zatca.GenerateQR(s.QRPayload(invoice))
}

// QRPayload builds the seller-side QR payload for an invoice
func (s *InvoiceService) QRPayload(invoice *entity.Invoice) zatca.Payload {
	return zatca.Payload{
		SellerName:  s.seller.Name,
		VATNumber:   s.seller.VATNumber,
		Timestamp:   invoice.IssueDate.Format(time.RFC3339),
		TotalAmount: fmt.Sprintf("%.2f", invoice.TotalAmount),
		VATAmount:   fmt.Sprintf("%.2f", invoice.VATAmount),
	}
}
