package repository

import (
	"context"

	"github.com/alnasr/invoicing-api/internal/domain/entity"
	"github.com/alnasr/invoicing-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice data operations. The
// write side is insert-only: an invoice and its items are persisted together
// exactly once and never updated by the conversion core.
type InvoiceRepository interface {
	// CreateWithItems persists the invoice and every attached item inside one
	// transaction. A duplicate invoice number surfaces as a conflict error so
	// that concurrent conversions of the same quotation cannot both win.
	CreateWithItems(ctx context.Context, invoice *entity.Invoice) error
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, userID uuid.UUID, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	CustomerID *uuid.UUID
}
