package entity

import (
	"time"

	"github.com/alnasr/invoicing-api/internal/domain/enum"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quotation represents a priced pre-sale offer. It is the read-only source of
// an invoice conversion and is never mutated by it.
type Quotation struct {
	ID           uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID   *uuid.UUID           `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	ProjectID    *uuid.UUID           `gorm:"type:uuid;index" json:"project_id,omitempty"`
	Number       string               `gorm:"size:100;uniqueIndex;not null" json:"number"`
	Date         time.Time            `gorm:"type:date;not null" json:"date"`
	TotalAmount  float64              `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	VATAmount    float64              `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	DiscountRate *float64             `gorm:"type:decimal(5,2)" json:"discount_rate,omitempty"`
	InterestRate *float64             `gorm:"type:decimal(5,2)" json:"interest_rate,omitempty"`
	Notes        *string              `gorm:"type:text" json:"notes,omitempty"`
	Terms        *string              `gorm:"type:text" json:"terms,omitempty"`
	Status       enum.QuotationStatus `gorm:"default:0" json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
	DeletedAt    gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	User     User            `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Project  *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Items    []QuotationItem `gorm:"foreignKey:QuotationID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quotation
func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quotation model
func (Quotation) TableName() string {
	return "quotations"
}

// QuotationItem represents a line item in a quotation. Several fields are
// nullable and are fallback-filled when the item is copied onto an invoice.
type QuotationItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	QuotationID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"quotation_id"`
	Description    string         `gorm:"size:500;not null" json:"description"`
	Code           *string        `gorm:"size:100" json:"code,omitempty"`
	Quantity       float64        `gorm:"type:decimal(15,3);not null" json:"quantity"`
	UnitPrice      float64        `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	BaseUnitPrice  *float64       `gorm:"type:decimal(15,2)" json:"base_unit_price,omitempty"`
	VATRate        float64        `gorm:"type:decimal(5,2);default:0" json:"vat_rate"`
	VATAmount      float64        `gorm:"type:decimal(15,2);default:0" json:"vat_amount"`
	TotalVATAmount *float64       `gorm:"type:decimal(15,2)" json:"total_vat_amount,omitempty"`
	PriceAfterTax  *float64       `gorm:"type:decimal(15,2)" json:"price_after_tax,omitempty"`
	DiscountRate   *float64       `gorm:"type:decimal(5,2)" json:"discount_rate,omitempty"`
	InterestRate   *float64       `gorm:"type:decimal(5,2)" json:"interest_rate,omitempty"`
	Total          float64        `gorm:"type:decimal(15,2);not null" json:"total"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Quotation Quotation `gorm:"foreignKey:QuotationID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new quotation item
func (qi *QuotationItem) BeforeCreate(tx *gorm.DB) error {
	if qi.ID == uuid.Nil {
		qi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuotationItem model
func (QuotationItem) TableName() string {
	return "quotation_items"
}
