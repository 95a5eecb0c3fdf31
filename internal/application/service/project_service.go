package service

import (
	"context"

	"github.com/alnasr/invoicing-api/internal/domain/entity"
	"github.com/alnasr/invoicing-api/internal/domain/repository"
	"github.com/alnasr/invoicing-api/pkg/apperror"
	"github.com/alnasr/invoicing-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProjectService handles project-related operations
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	customerRepo repository.CustomerRepository
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo repository.ProjectRepository, customerRepo repository.CustomerRepository) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		customerRepo: customerRepo,
	}
}

// CreateProjectInput represents the input for creating a project
type CreateProjectInput struct {
	UserID     uuid.UUID
	CustomerID *uuid.UUID
	Name       string
}

// CreateProject creates a new project
func (s *ProjectService) CreateProject(ctx context.Context, input *CreateProjectInput) (*entity.Project, error) {
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil || customer.UserID != input.UserID {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	project := &entity.Project{
		UserID:     input.UserID,
		CustomerID: input.CustomerID,
		Name:       input.Name,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// GetProject retrieves a project owned by the given user
func (s *ProjectService) GetProject(ctx context.Context, userID, id uuid.UUID) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil || project.UserID != userID {
		return nil, apperror.NewNotFoundError("Project")
	}
	return project, nil
}

// DeleteProject deletes a project owned by the given user
func (s *ProjectService) DeleteProject(ctx context.Context, userID, id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil || project.UserID != userID {
		return apperror.NewNotFoundError("Project")
	}
	return s.projectRepo.Delete(ctx, id)
}

// ListProjects lists the user's projects with optional search
func (s *ProjectService) ListProjects(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Project], error) {
	projects, total, err := s.projectRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(projects, pag), nil
}
