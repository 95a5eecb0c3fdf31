package handler

import (
	"time"

	"github.com/alnasr/invoicing-api/internal/application/service"
	"github.com/alnasr/invoicing-api/internal/domain/enum"
	"github.com/alnasr/invoicing-api/internal/presentation/http/dto/response"
	"github.com/alnasr/invoicing-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// QuotationHandler handles quotation-related HTTP requests
type QuotationHandler struct {
	quotationService *service.QuotationService
	documentService  *service.DocumentService
}

// NewQuotationHandler creates a new quotation handler
func NewQuotationHandler(quotationService *service.QuotationService, documentService *service.DocumentService) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		documentService:  documentService,
	}
}

// QuotationItemRequest represents a line item in the request
type QuotationItemRequest struct {
	Description   string   `json:"description" binding:"required"`
	Code          *string  `json:"code"`
	Quantity      float64  `json:"quantity" binding:"required,gt=0"`
	UnitPrice     float64  `json:"unit_price" binding:"required,gte=0"`
	BaseUnitPrice *float64 `json:"base_unit_price"`
	VATRate       float64  `json:"vat_rate" binding:"gte=0"`
	DiscountRate  *float64 `json:"discount_rate"`
	InterestRate  *float64 `json:"interest_rate"`
}

// QuotationRequest represents the create or update quotation request body
type QuotationRequest struct {
	CustomerID   *string                `json:"customer_id"`
	ProjectID    *string                `json:"project_id"`
	Date         string                 `json:"date" binding:"required"`
	DiscountRate *float64               `json:"discount_rate"`
	InterestRate *float64               `json:"interest_rate"`
	Notes        *string                `json:"notes"`
	Terms        *string                `json:"terms"`
	Status       int                    `json:"status"`
	Items        []QuotationItemRequest `json:"items" binding:"required,min=1"`
}

func (r *QuotationRequest) parse() (*service.CreateQuotationInput, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, err
	}

	var customerID, projectID *uuid.UUID
	if r.CustomerID != nil {
		id, err := uuid.Parse(*r.CustomerID)
		if err != nil {
			return nil, err
		}
		customerID = &id
	}
	if r.ProjectID != nil {
		id, err := uuid.Parse(*r.ProjectID)
		if err != nil {
			return nil, err
		}
		projectID = &id
	}

	items := make([]service.QuotationItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.QuotationItemInput{
			Description:   item.Description,
			Code:          item.Code,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			BaseUnitPrice: item.BaseUnitPrice,
			VATRate:       item.VATRate,
			DiscountRate:  item.DiscountRate,
			InterestRate:  item.InterestRate,
		})
	}

	return &service.CreateQuotationInput{
		CustomerID:   customerID,
		ProjectID:    projectID,
		Date:         date,
		DiscountRate: r.DiscountRate,
		InterestRate: r.InterestRate,
		Notes:        r.Notes,
		Terms:        r.Terms,
		Items:        items,
	}, nil
}

// Create handles creating a quotation
// @Summary Create Quotation
// @Description Create a new quotation with line items
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body QuotationRequest true "Quotation details"
// @Success 201 {object} response.APIResponse
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.parse()
	if err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	input.UserID = *userID

	quotation, err := h.quotationService.CreateQuotation(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation created successfully", quotation)
}

// Get handles getting a single quotation
// @Summary Get Quotation
// @Description Get a quotation by ID with line items
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [get]
func (h *QuotationHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	quotation, err := h.quotationService.GetQuotation(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation retrieved successfully", quotation)
}

// List handles listing quotations
// @Summary List Quotations
// @Description Get all quotations with pagination and filtering
// @Tags quotations
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query int false "Status filter"
// @Param customer_id query string false "Customer filter"
// @Success 200 {object} response.APIResponse
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, perPage := paginationFromQuery(c)

	var status *enum.QuotationStatus
	if s := c.Query("status"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			st := enum.QuotationStatus(parsed)
			status = &st
		}
	}

	var customerID *uuid.UUID
	if cid := c.Query("customer_id"); cid != "" {
		if parsed, err := uuid.Parse(cid); err == nil {
			customerID = &parsed
		}
	}

	result, err := h.quotationService.ListQuotations(c.Request.Context(), &service.ListQuotationsInput{
		UserID: *userID,
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:     c.Query("search"),
		Status:     status,
		CustomerID: customerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Quotations retrieved successfully", result)
}

// Update handles updating a quotation
// @Summary Update Quotation
// @Description Update an existing quotation and replace its line items
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body QuotationRequest true "Quotation details"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id} [put]
func (h *QuotationHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input, err := req.parse()
	if err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	quotation, err := h.quotationService.UpdateQuotation(c.Request.Context(), &service.UpdateQuotationInput{
		UserID:       *userID,
		ID:           id,
		CustomerID:   input.CustomerID,
		ProjectID:    input.ProjectID,
		Date:         input.Date,
		DiscountRate: input.DiscountRate,
		InterestRate: input.InterestRate,
		Notes:        input.Notes,
		Terms:        input.Terms,
		Status:       enum.QuotationStatus(req.Status),
		Items:        input.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation updated successfully", quotation)
}

// Delete handles deleting a quotation
// @Summary Delete Quotation
// @Description Delete a quotation and its line items
// @Tags quotations
// @Security BearerAuth
// @Param id path string true "Quotation ID"
// @Success 204
// @Router /quotations/{id} [delete]
func (h *QuotationHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	if err := h.quotationService.DeleteQuotation(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateStatusRequest represents the status update request body
type UpdateStatusRequest struct {
	Status int `json:"status" binding:"gte=0"`
}

// UpdateStatus handles updating a quotation's status
// @Summary Update Quotation Status
// @Description Update the status of a quotation
// @Tags quotations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.quotationService.UpdateQuotationStatus(c.Request.Context(), *userID, id, enum.QuotationStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Quotation status updated successfully", nil)
}

// DownloadPDF handles rendering a quotation as a PDF
// @Summary Download Quotation PDF
// @Description Render a quotation as a PDF document
// @Tags quotations
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Quotation ID"
// @Success 200 {file} binary
// @Router /quotations/{id}/pdf [get]
func (h *QuotationHandler) DownloadPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	data, filename, err := h.documentService.QuotationPDF(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", data)
}
