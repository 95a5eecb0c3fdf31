package repository

import (
	"context"
	"time"

	"github.com/alnasr/invoicing-api/internal/domain/entity"
	"github.com/alnasr/invoicing-api/internal/domain/enum"
	"github.com/alnasr/invoicing-api/pkg/pagination"
	"github.com/google/uuid"
)

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	// GetByIDForUser looks up a quotation by id scoped to its owner, with items
	// and the related project preloaded. A quotation owned by someone else is
	// indistinguishable from a missing one: both return nil.
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Quotation, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	Update(ctx context.Context, quotation *entity.Quotation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *QuotationFilterParams) ([]entity.Quotation, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error
	// NextSequence returns the next per-day sequence for number allocation.
	NextSequence(ctx context.Context, date time.Time) (int, error)
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	CustomerID *uuid.UUID
}

// QuotationItemRepository defines the interface for quotation line item operations
type QuotationItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.QuotationItem) error
	GetByQuotationID(ctx context.Context, quotationID uuid.UUID) ([]entity.QuotationItem, error)
	DeleteByQuotationID(ctx context.Context, quotationID uuid.UUID) error
}
