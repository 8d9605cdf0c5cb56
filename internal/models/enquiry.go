package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enquiry statuses. Pending and under_process are open; the rest are
// terminal dispositions.
const (
	EnquiryStatusPending      = "pending"
	EnquiryStatusUnderProcess = "under_process"
	EnquiryStatusApproved     = "approved"
	EnquiryStatusRejected     = "rejected"
	EnquiryStatusClosed       = "closed"
)

// EnquiryStatuses lists every valid enquiry status.
var EnquiryStatuses = []string{
	EnquiryStatusPending,
	EnquiryStatusUnderProcess,
	EnquiryStatusApproved,
	EnquiryStatusRejected,
	EnquiryStatusClosed,
}

// IsValidEnquiryStatus reports whether s is a known enquiry status.
func IsValidEnquiryStatus(s string) bool {
	for _, status := range EnquiryStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// OpenEnquiryStatuses are the states a disposition may start from.
var OpenEnquiryStatuses = []string{EnquiryStatusPending, EnquiryStatusUnderProcess}

// Enquiry is one dealer's order request for a product. Dealer contact
// fields are snapshotted at creation time so admin views do not depend on
// later edits to the dealer record.
type Enquiry struct {
	BaseModel
	DealerID     uuid.UUID `gorm:"type:uuid;index:idx_enquiries_dealer_status" json:"dealer_id"`
	Dealer       *Dealer   `json:"dealer,omitempty"`
	ProductID    uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Product      *Product  `json:"product,omitempty"`
	ProductCode  string    `json:"product_code"`
	ProductName  string    `json:"product_name"`
	ProductColor string    `json:"product_color"`
	Quantity     int       `json:"quantity"`
	Price        float64   `json:"price"`
	TotalAmount  float64   `json:"total_amount"`
	Remarks      string    `json:"remarks"`
	Status       string    `gorm:"index:idx_enquiries_dealer_status;index;default:pending" json:"status"`

	DealerCompanyName       string `json:"dealer_company_name"`
	DealerContactPersonName string `json:"dealer_contact_person_name"`
	DealerMobile            string `json:"dealer_mobile"`
	DealerEmail             string `json:"dealer_email"`
	DealerAddress           string `json:"dealer_address"`
	DealerGST               string `gorm:"column:dealer_gst" json:"dealer_gst"`

	AdminNotes    string     `json:"admin_notes,omitempty"`
	ProcessedByID *uuid.UUID `gorm:"type:uuid" json:"processed_by_id"`
	ProcessedAt   *time.Time `json:"processed_at"`
	EmailSent     bool       `json:"email_sent"`
	EmailSentAt   *time.Time `json:"email_sent_at"`
}

// BeforeSave keeps total_amount derived from quantity and price. The total
// is never independently settable.
func (e *Enquiry) BeforeSave(tx *gorm.DB) error {
	if e.Quantity > 0 && e.Price >= 0 {
		e.TotalAmount = float64(e.Quantity) * e.Price
	}
	return nil
}
