package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the lifecycle status of an invoice. Invoices are
// created as Draft; later transitions happen outside the conversion core.
type InvoiceStatus int

const (
	InvoiceStatusDraft    InvoiceStatus = 0
	InvoiceStatusIssued   InvoiceStatus = 1
	InvoiceStatusPaid     InvoiceStatus = 2
	InvoiceStatusCanceled InvoiceStatus = 3
)

func (s InvoiceStatus) String() string {
	return [...]string{"Draft", "Issued", "Paid", "Canceled"}[s]
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = InvoiceStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = InvoiceStatusDraft
	case "Issued":
		*s = InvoiceStatusIssued
	case "Paid":
		*s = InvoiceStatusPaid
	case "Canceled":
		*s = InvoiceStatusCanceled
	}
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = InvoiceStatus(v)
	case int:
		*s = InvoiceStatus(v)
	}
	return nil
}
