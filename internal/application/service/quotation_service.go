package service

import (
	"context"
	"math"
	"time"

	"github.com/alnasr/invoicing-api/internal/domain/entity"
	"github.com/alnasr/invoicing-api/internal/domain/enum"
	"github.com/alnasr/invoicing-api/internal/domain/repository"
	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/alnasr/invoicing-api/pkg/docnum"
	"github.com/alnasr/invoicing-api/pkg/pagination"
	"github.com/google/uuid"
)

// QuotationService handles quotation-related operations
type QuotationService struct {
	quotationRepo     repository.QuotationRepository
	quotationItemRepo repository.QuotationItemRepository
	customerRepo      repository.CustomerRepository
	projectRepo       repository.ProjectRepository
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	quotationItemRepo repository.QuotationItemRepository,
	customerRepo repository.CustomerRepository,
	projectRepo repository.ProjectRepository,
) *QuotationService {
	return &QuotationService{
		quotationRepo:     quotationRepo,
		quotationItemRepo: quotationItemRepo,
		customerRepo:      customerRepo,
		projectRepo:       projectRepo,
	}
}

// QuotationItemInput represents a line item input
type QuotationItemInput struct {
	Description   string
	Code          *string
	Quantity      float64
	UnitPrice     float64
	BaseUnitPrice *float64
	VATRate       float64
	DiscountRate  *float64
	InterestRate  *float64
}

// CreateQuotationInput represents the input for creating a quotation
type CreateQuotationInput struct {
	UserID       uuid.UUID
	CustomerID   *uuid.UUID
	ProjectID    *uuid.UUID
	Date         time.Time
	DiscountRate *float64
	InterestRate *float64
	Notes        *string
	Terms        *string
	Items        []QuotationItemInput
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func buildQuotationItems(quotationID uuid.UUID, inputs []QuotationItemInput) ([]entity.QuotationItem, float64, float64) {
	var totalAmount, vatTotal float64
	items := make([]entity.QuotationItem, 0, len(inputs))

	for _, in := range inputs {
		lineNet := round2(in.Quantity * in.UnitPrice)
		lineVAT := round2(lineNet * in.VATRate / 100)
		lineTotal := round2(lineNet + lineVAT)

		items = append(items, entity.QuotationItem{
			QuotationID:   quotationID,
			Description:   in.Description,
			Code:          in.Code,
			Quantity:      in.Quantity,
			UnitPrice:     in.UnitPrice,
			BaseUnitPrice: in.BaseUnitPrice,
			VATRate:       in.VATRate,
			VATAmount:     lineVAT,
			DiscountRate:  in.DiscountRate,
			InterestRate:  in.InterestRate,
			Total:         lineTotal,
		})

		totalAmount += lineTotal
		vatTotal += lineVAT
	}

	return items, round2(totalAmount), round2(vatTotal)
}

// CreateQuotation creates a new quotation with a per-day sequential number
func (s *QuotationService) CreateQuotation(ctx context.Context, input *CreateQuotationInput) (*entity.Quotation, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Quotation must have at least one item")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UserID != input.UserID {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	if input.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil || project.UserID != input.UserID {
			return nil, apperror.NewNotFoundError("Project")
		}
	}

	seq, err := s.quotationRepo.NextSequence(ctx, input.Date)
	if err != nil {
		return nil, err
	}
	number := docnum.Format(docnum.SeriesQuotation, input.Date, seq)

	quotation := &entity.Quotation{
		UserID:       input.UserID,
		CustomerID:   input.CustomerID,
		ProjectID:    input.ProjectID,
		Number:       number,
		Date:         input.Date,
		DiscountRate: input.DiscountRate,
		InterestRate: input.InterestRate,
		Notes:        input.Notes,
		Terms:        input.Terms,
		Status:       enum.QuotationStatusPending,
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, err
	}

	items, totalAmount, vatAmount := buildQuotationItems(quotation.ID, input.Items)
	if err := s.quotationItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	quotation.TotalAmount = totalAmount
	quotation.VATAmount = vatAmount
	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}

	return s.quotationRepo.GetWithItems(ctx, quotation.ID)
}

// GetQuotation retrieves a quotation owned by the given user
func (s *QuotationService) GetQuotation(ctx context.Context, userID, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// ListQuotationsInput represents the input for listing quotations
type ListQuotationsInput struct {
	UserID     uuid.UUID
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	CustomerID *uuid.UUID
}

// ListQuotations lists quotations with filtering
func (s *QuotationService) ListQuotations(ctx context.Context, input *ListQuotationsInput) (*pagination.PaginatedResult[entity.Quotation], error) {
	params := &repository.QuotationFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		CustomerID: input.CustomerID,
	}

	quotations, total, err := s.quotationRepo.List(ctx, input.UserID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotations, pag), nil
}

// UpdateQuotationInput represents the input for updating a quotation
type UpdateQuotationInput struct {
	UserID       uuid.UUID
	ID           uuid.UUID
	CustomerID   *uuid.UUID
	ProjectID    *uuid.UUID
	Date         time.Time
	DiscountRate *float64
	InterestRate *float64
	Notes        *string
	Terms        *string
	Status       enum.QuotationStatus
	Items        []QuotationItemInput
}

// UpdateQuotation updates an existing quotation and replaces its items
func (s *QuotationService) UpdateQuotation(ctx context.Context, input *UpdateQuotationInput) (*entity.Quotation, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Quotation must have at least one item")
	}

	quotation, err := s.quotationRepo.GetByIDForUser(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}

	if input.ProjectID != nil {
		project, err := s.projectRepo.GetByID(ctx, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil || project.UserID != input.UserID {
			return nil, apperror.NewNotFoundError("Project")
		}
	}

	// The number keeps its original date even when the quotation date changes.
	quotation.CustomerID = input.CustomerID
	quotation.ProjectID = input.ProjectID
	quotation.Date = input.Date
	quotation.DiscountRate = input.DiscountRate
	quotation.InterestRate = input.InterestRate
	quotation.Notes = input.Notes
	quotation.Terms = input.Terms
	quotation.Status = input.Status

	if err := s.quotationItemRepo.DeleteByQuotationID(ctx, quotation.ID); err != nil {
		return nil, err
	}

	items, totalAmount, vatAmount := buildQuotationItems(quotation.ID, input.Items)
	if err := s.quotationItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}

	quotation.TotalAmount = totalAmount
	quotation.VATAmount = vatAmount
	quotation.Items = nil
	if err := s.quotationRepo.Update(ctx, quotation); err != nil {
		return nil, err
	}

	return s.quotationRepo.GetWithItems(ctx, quotation.ID)
}

// DeleteQuotation deletes a quotation and its items
func (s *QuotationService) DeleteQuotation(ctx context.Context, userID, id uuid.UUID) error {
	quotation, err := s.quotationRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if quotation == nil {
		return apperror.NewNotFoundError("Quotation")
	}

	if err := s.quotationItemRepo.DeleteByQuotationID(ctx, id); err != nil {
		return err
	}

	return s.quotationRepo.Delete(ctx, id)
}

// UpdateQuotationStatus updates the status of a quotation
func (s *QuotationService) UpdateQuotationStatus(ctx context.Context, userID, id uuid.UUID, status enum.QuotationStatus) error {
	quotation, err := s.quotationRepo.GetByIDForUser(ctx, id, userID)
	if err != nil {
		return err
	}
	if quotation == nil {
		return apperror.NewNotFoundError("Quotation")
	}

	return s.quotationRepo.UpdateStatus(ctx, id, status)
}
