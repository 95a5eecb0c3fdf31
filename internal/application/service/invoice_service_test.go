package service

import (
	"context"
	"testing"
	"time"

	"github.com/alnasr/invoicing-api/internal/config"
	"github.com/alnasr/invoicing-api/internal/domain/entity"
	"github.com/alnasr/invoicing-api/internal/domain/enum"
	"github.com/alnasr/invoicing-api/internal/domain/repository"
	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQuotationRepo struct {
	repository.QuotationRepository
	quotations map[uuid.UUID]*entity.Quotation
}

func (s *stubQuotationRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Quotation, error) {
	q, ok := s.quotations[id]
	if !ok || q.UserID != userID {
		return nil, nil
	}
	return q, nil
}

type stubInvoiceRepo struct {
	repository.InvoiceRepository
	existing  map[string]bool
	created   *entity.Invoice
	createErr error
}

func (s *stubInvoiceRepo) CreateWithItems(ctx context.Context, invoice *entity.Invoice) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = invoice
	return nil
}

func (s *stubInvoiceRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	return s.existing[number], nil
}

func ptr[T any](v T) *T { return &v }

func newTestInvoiceService(quotations map[uuid.UUID]*entity.Quotation, invoices *stubInvoiceRepo, now time.Time) *InvoiceService {
	svc := NewInvoiceService(
		invoices,
		&stubQuotationRepo{quotations: quotations},
		config.SellerConfig{Name: "Al Nasr Trading Est.", VATNumber: "300000000000003"},
		30,
	)
	svc.now = func() time.Time { return now }
	return svc
}

func TestConvertQuotation(t *testing.T) {
	userID := uuid.New()
	quotationID := uuid.New()
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

	baseQuotation := func() *entity.Quotation {
		return &entity.Quotation{
			ID:          quotationID,
			UserID:      userID,
			Number:      "QUO-20250531-1",
			Date:        time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			TotalAmount: 115.00,
			VATAmount:   15.00,
			Notes:       ptr("payment on delivery"),
			Project:     &entity.Project{Name: "Warehouse Extension"},
			Items: []entity.QuotationItem{
				{
					Description: "Concrete block",
					Quantity:    10,
					UnitPrice:   10,
					VATRate:     15,
					VATAmount:   15,
					Total:       115,
				},
				{
					Description:    "Steel beam",
					Code:           ptr("SB-100"),
					Quantity:       2,
					UnitPrice:      50,
					BaseUnitPrice:  ptr(45.0),
					VATRate:        15,
					VATAmount:      15,
					TotalVATAmount: ptr(30.0),
					PriceAfterTax:  ptr(57.5),
					DiscountRate:   ptr(5.0),
					Total:          115,
				},
			},
		}
	}

	t.Run("creates an invoice with a derived number", func(t *testing.T) {
		invoices := &stubInvoiceRepo{existing: map[string]bool{}}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{quotationID: baseQuotation()}, invoices, now)

		invoice, err := svc.ConvertQuotation(context.Background(), userID, quotationID)

		require.NoError(t, err)
		require.NotNil(t, invoices.created)
		assert.Equal(t, "INV-20250531-1", invoice.Number)
		assert.Equal(t, userID, invoice.UserID)
		assert.NotEqual(t, uuid.Nil, invoice.ExternalID)
		assert.Equal(t, enum.InvoiceStatusDraft, invoice.Status)
		assert.Equal(t, entity.InvoiceTypeCode, invoice.TypeCode)
		assert.Equal(t, entity.InvoiceTransactionCode, invoice.TypeSubCode)
		assert.Equal(t, "Warehouse Extension", invoice.ProjectName)
		assert.Equal(t, 115.00, invoice.TotalAmount)
		assert.Equal(t, 15.00, invoice.VATAmount)
		assert.Len(t, invoice.Items, 2)
	})

	t.Run("stamps issue, supply and due dates", func(t *testing.T) {
		invoices := &stubInvoiceRepo{existing: map[string]bool{}}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{quotationID: baseQuotation()}, invoices, now)

		invoice, err := svc.ConvertQuotation(context.Background(), userID, quotationID)

		require.NoError(t, err)
		assert.Equal(t, invoice.IssueDate, invoice.SupplyDate)
		assert.Equal(t, invoice.IssueDate.AddDate(0, 0, 30), invoice.DueDate)
		assert.Equal(t, now.Year(), invoice.IssueDate.Year())
		assert.Equal(t, now.Month(), invoice.IssueDate.Month())
		assert.Equal(t, now.Day(), invoice.IssueDate.Day())
	})

	t.Run("keeps the business day in the clock's zone", func(t *testing.T) {
		riyadh := time.FixedZone("AST", 3*60*60)
		// 01:30 local is still the previous day in UTC.
		localNow := time.Date(2025, 6, 15, 1, 30, 0, 0, riyadh)

		invoices := &stubInvoiceRepo{existing: map[string]bool{}}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{quotationID: baseQuotation()}, invoices, localNow)

		invoice, err := svc.ConvertQuotation(context.Background(), userID, quotationID)

		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, riyadh), invoice.IssueDate)
	})

	t.Run("fills missing item fields from their fallbacks", func(t *testing.T) {
		invoices := &stubInvoiceRepo{existing: map[string]bool{}}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{quotationID: baseQuotation()}, invoices, now)

		invoice, err := svc.ConvertQuotation(context.Background(), userID, quotationID)
		require.NoError(t, err)

		sparse := invoice.Items[0]
		assert.Equal(t, "", sparse.Code)
		assert.Equal(t, 10.0, sparse.BaseUnitPrice)
		assert.Equal(t, 15.0, sparse.TotalVATAmount)
		assert.Equal(t, 25.0, sparse.PriceAfterTax)
		assert.Equal(t, 0.0, sparse.DiscountRate)
		assert.Equal(t, 0.0, sparse.InterestRate)

		full := invoice.Items[1]
		assert.Equal(t, "SB-100", full.Code)
		assert.Equal(t, 45.0, full.BaseUnitPrice)
		assert.Equal(t, 30.0, full.TotalVATAmount)
		assert.Equal(t, 57.5, full.PriceAfterTax)
		assert.Equal(t, 5.0, full.DiscountRate)
	})

	t.Run("rejects an unknown quotation", func(t *testing.T) {
		invoices := &stubInvoiceRepo{existing: map[string]bool{}}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{}, invoices, now)

		_, err := svc.ConvertQuotation(context.Background(), userID, quotationID)

		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("rejects another user's quotation as not found", func(t *testing.T) {
		invoices := &stubInvoiceRepo{existing: map[string]bool{}}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{quotationID: baseQuotation()}, invoices, now)

		_, err := svc.ConvertQuotation(context.Background(), uuid.New(), quotationID)

		require.Error(t, err)
		assert.True(t, apperror.IsNotFound(err))
		assert.Nil(t, invoices.created)
	})

	t.Run("rejects a malformed quotation number", func(t *testing.T) {
		q := baseQuotation()
		q.Number = "DRAFT-31-05"
		invoices := &stubInvoiceRepo{existing: map[string]bool{}}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{quotationID: q}, invoices, now)

		_, err := svc.ConvertQuotation(context.Background(), userID, quotationID)

		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Nil(t, invoices.created)
	})

	t.Run("rejects a second conversion of the same quotation", func(t *testing.T) {
		invoices := &stubInvoiceRepo{existing: map[string]bool{"INV-20250531-1": true}}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{quotationID: baseQuotation()}, invoices, now)

		_, err := svc.ConvertQuotation(context.Background(), userID, quotationID)

		require.Error(t, err)
		assert.True(t, apperror.IsConflict(err))
		assert.Nil(t, invoices.created)
	})

	t.Run("surfaces a storage conflict from a racing conversion", func(t *testing.T) {
		invoices := &stubInvoiceRepo{
			existing:  map[string]bool{},
			createErr: apperror.NewConflictError("invoice number INV-20250531-1 already exists"),
		}
		svc := newTestInvoiceService(map[uuid.UUID]*entity.Quotation{quotationID: baseQuotation()}, invoices, now)

		_, err := svc.ConvertQuotation(context.Background(), userID, quotationID)

		require.Error(t, err)
		assert.True(t, apperror.IsConflict(err))
	})
}

func TestQRPayload(t *testing.T) {
	svc := newTestInvoiceService(nil, &stubInvoiceRepo{}, time.Now())

	payload := svc.QRPayload(&entity.Invoice{
		IssueDate:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		TotalAmount: 115,
		VATAmount:   15,
	})

	assert.Equal(t, "Al Nasr Trading Est.", payload.SellerName)
	assert.Equal(t, "300000000000003", payload.VATNumber)
	assert.Equal(t, "115.00", payload.TotalAmount)
	assert.Equal(t, "15.00", payload.VATAmount)
	assert.Equal(t, "2025-06-15T00:00:00Z", payload.Timestamp)
}
