package handler

import (
	"github.com/alnasr/invoicing-api/internal/application/service"
	"github.com/alnasr/invoicing-api/internal/presentation/http/dto/response"
	"github.com/alnasr/invoicing-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService  *service.InvoiceService
	documentService *service.DocumentService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService, documentService *service.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService:  invoiceService,
		documentService: documentService,
	}
}

// ConvertQuotation handles converting a quotation into a tax invoice
// @Summary Convert Quotation
// @Description Convert a quotation into a tax invoice. Each quotation can be converted once.
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Quotation ID"
// @Success 201 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /quotations/{id}/convert [post]
func (h *InvoiceHandler) ConvertQuotation(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	quotationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid quotation ID")
		return
	}

	invoice, err := h.invoiceService.ConvertQuotation(c.Request.Context(), *userID, quotationID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Quotation converted successfully", gin.H{
		"invoice_id":     invoice.ID,
		"invoice_number": invoice.Number,
		"uuid":           invoice.ExternalID,
	})
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Description Get an invoice by ID with line items
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// List handles listing invoices
// @Summary List Invoices
// @Description Get all invoices with pagination and filtering
// @Tags invoices
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param customer_id query string false "Customer filter"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page, perPage := paginationFromQuery(c)

	var customerID *uuid.UUID
	if cid := c.Query("customer_id"); cid != "" {
		if parsed, err := uuid.Parse(cid); err == nil {
			customerID = &parsed
		}
	}

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), &service.ListInvoicesInput{
		UserID: *userID,
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:     c.Query("search"),
		CustomerID: customerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// DownloadPDF handles rendering an invoice as a PDF with its QR code
// @Summary Download Invoice PDF
// @Description Render an invoice as a PDF document including the seller QR code
// @Tags invoices
// @Security BearerAuth
// @Produce application/pdf
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Router /invoices/{id}/pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	data, filename, err := h.documentService.InvoicePDF(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/pdf", data)
}

// QR handles returning an invoice's QR code as a PNG
// @Summary Get Invoice QR
// @Description Get the invoice's TLV QR code as a PNG image
// @Tags invoices
// @Security BearerAuth
// @Produce image/png
// @Param id path string true "Invoice ID"
// @Success 200 {file} binary
// @Router /invoices/{id}/qr [get]
func (h *InvoiceHandler) QR(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	png, err := h.invoiceService.QRCode(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, "image/png", png)
}
