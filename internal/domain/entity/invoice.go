package entity

import (
	"time"

	"github.com/alnasr/invoicing-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ZATCA Phase-1 classification codes stamped on every converted invoice:
// 388 is a standard tax invoice, 0100000 its transaction subtype.
const (
	InvoiceTypeCode        = "388"
	InvoiceTransactionCode = "0100000"
)

// Invoice represents a tax invoice materialized from a quotation. Rows are
// insert-only; the conversion never updates them afterwards.
type Invoice struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID   *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Number       string             `gorm:"size:100;uniqueIndex;not null" json:"number"`
	ExternalID   uuid.UUID          `gorm:"type:uuid;uniqueIndex;not null" json:"external_id"`
	ProjectName  string             `gorm:"size:255;default:''" json:"project_name"`
	IssueDate    time.Time          `gorm:"type:date;not null" json:"issue_date"`
	SupplyDate   time.Time          `gorm:"type:date;not null" json:"supply_date"`
	DueDate      time.Time          `gorm:"type:date;not null" json:"due_date"`
	Status       enum.InvoiceStatus `gorm:"default:0" json:"status"`
	TypeCode     string             `gorm:"size:10;not null" json:"type_code"`
	TypeSubCode  string             `gorm:"size:10;not null" json:"type_sub_code"`
	TotalAmount  float64            `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	VATAmount    float64            `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	DiscountRate float64            `gorm:"type:decimal(5,2);default:0" json:"discount_rate"`
	InterestRate float64            `gorm:"type:decimal(5,2);default:0" json:"interest_rate"`
	Notes        *string            `gorm:"type:text" json:"notes,omitempty"`
	Terms        *string            `gorm:"type:text" json:"terms,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents a line item copied from a quotation item. All fields
// are concrete; nullable source fields are fallback-filled during conversion.
type InvoiceItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description    string         `gorm:"size:500;not null" json:"description"`
	Code           string         `gorm:"size:100;default:''" json:"code"`
	Quantity       float64        `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice      float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	BaseUnitPrice  float64        `gorm:"type:decimal(15,2);not null" json:"base_unit_price"`
	VATRate        float64        `gorm:"type:decimal(5,2);default:0" json:"vat_rate"`
	VATAmount      float64        `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	TotalVATAmount float64        `gorm:"type:decimal(15,2);default:0" json:"total_vat_amount"`
	PriceAfterTax  float64        `gorm:"type:decimal(15,2);default:0" json:"price_after_tax"`
	DiscountRate   float64        `gorm:"type:decimal(5,2);default:0" json:"discount_rate"`
	InterestRate   float64        `gorm:"type:decimal(5,2);default:0" json:"interest_rate"`
	Total          float64        `gorm:"type:decimal(15,2);not null" json:"total"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
