package service

import (
	"context"
	"testing"
	"time"

	"github.com/alnasr/invoicing-api/internal/domain/entity"
	"github.com/alnasr/invoicing-api/internal/domain/repository"
	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuotationRepo struct {
	repository.QuotationRepository
	nextSeq int
	saved   *entity.Quotation
}

func (f *fakeQuotationRepo) NextSequence(ctx context.Context, date time.Time) (int, error) {
	return f.nextSeq, nil
}

func (f *fakeQuotationRepo) Create(ctx context.Context, q *entity.Quotation) error {
	q.ID = uuid.New()
	f.saved = q
	return nil
}

func (f *fakeQuotationRepo) Update(ctx context.Context, q *entity.Quotation) error {
	f.saved = q
	return nil
}

func (f *fakeQuotationRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	return f.saved, nil
}

type fakeQuotationItemRepo struct {
	repository.QuotationItemRepository
	created []entity.QuotationItem
}

func (f *fakeQuotationItemRepo) CreateBatch(ctx context.Context, items []entity.QuotationItem) error {
	f.created = items
	return nil
}

func TestCreateQuotation(t *testing.T) {
	userID := uuid.New()
	date := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)

	input := func() *CreateQuotationInput {
		return &CreateQuotationInput{
			UserID: userID,
			Date:   date,
			Items: []QuotationItemInput{
				{Description: "Concrete block", Quantity: 10, UnitPrice: 10, VATRate: 15},
				{Description: "Gravel", Quantity: 3, UnitPrice: 20, VATRate: 15},
			},
		}
	}

	t.Run("allocates a per-day sequential number", func(t *testing.T) {
		repo := &fakeQuotationRepo{nextSeq: 4}
		svc := NewQuotationService(repo, &fakeQuotationItemRepo{}, nil, nil)

		quotation, err := svc.CreateQuotation(context.Background(), input())

		require.NoError(t, err)
		assert.Equal(t, "QUO-20250531-4", quotation.Number)
	})

	t.Run("computes line and document totals", func(t *testing.T) {
		repo := &fakeQuotationRepo{nextSeq: 1}
		items := &fakeQuotationItemRepo{}
		svc := NewQuotationService(repo, items, nil, nil)

		quotation, err := svc.CreateQuotation(context.Background(), input())

		require.NoError(t, err)
		require.Len(t, items.created, 2)

		// 10 * 10 = 100 net, 15 VAT; 3 * 20 = 60 net, 9 VAT
		assert.Equal(t, 15.0, items.created[0].VATAmount)
		assert.Equal(t, 115.0, items.created[0].Total)
		assert.Equal(t, 9.0, items.created[1].VATAmount)
		assert.Equal(t, 69.0, items.created[1].Total)

		assert.Equal(t, 184.0, quotation.TotalAmount)
		assert.Equal(t, 24.0, quotation.VATAmount)
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		svc := NewQuotationService(&fakeQuotationRepo{nextSeq: 1}, &fakeQuotationItemRepo{}, nil, nil)

		in := input()
		in.Items = nil
		_, err := svc.CreateQuotation(context.Background(), in)

		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})
}
