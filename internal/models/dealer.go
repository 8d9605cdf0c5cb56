package models

import (
	"time"

	"github.com/google/uuid"
)

// Dealer account statuses.
const (
	DealerStatusPending  = "pending"
	DealerStatusApproved = "approved"
	DealerStatusRejected = "rejected"
)

// DealerStatuses lists every valid dealer account status.
var DealerStatuses = []string{
	DealerStatusPending,
	DealerStatusApproved,
	DealerStatusRejected,
}

// IsValidDealerStatus reports whether s is a known dealer account status.
func IsValidDealerStatus(s string) bool {
	for _, status := range DealerStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Dealer represents a wholesale account holder. Accounts start out pending
// and must be approved by an admin before the dealer can log in or place
// enquiries.
type Dealer struct {
	BaseModel
	CompanyName       string     `json:"company_name"`
	ContactPersonName string     `json:"contact_person_name"`
	Mobile            string     `gorm:"uniqueIndex" json:"mobile"`
	Email             string     `gorm:"uniqueIndex" json:"email"`
	Address           string     `json:"address"`
	PinCode           string     `json:"pin_code"`
	GST               string     `gorm:"column:gst;uniqueIndex" json:"gst"`
	PasswordHash      string     `json:"-"`
	Status            string     `gorm:"index;default:pending" json:"status"`
	IsActive          bool       `gorm:"default:true" json:"is_active"`
	IsFirstTimeUser   bool       `gorm:"default:true" json:"is_first_time_user"`
	IsMobileVerified  bool       `gorm:"default:false" json:"is_mobile_verified"`
	IsEmailVerified   bool       `gorm:"default:false" json:"is_email_verified"`
	ApprovedByID      *uuid.UUID `gorm:"type:uuid" json:"approved_by_id"`
	ApprovedAt        *time.Time `json:"approved_at"`
	RejectionReason   string     `json:"rejection_reason,omitempty"`
	Enquiries         []Enquiry  `json:"enquiries,omitempty"`
}

// Public returns the outward-facing representation of the dealer. The
// password hash is excluded by the json tag already; this keeps response
// shapes explicit the way handlers expect them.
func (d *Dealer) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":                  d.ID,
		"company_name":        d.CompanyName,
		"contact_person_name": d.ContactPersonName,
		"mobile":              d.Mobile,
		"email":               d.Email,
		"address":             d.Address,
		"pin_code":            d.PinCode,
		"gst":                 d.GST,
		"status":              d.Status,
		"is_active":           d.IsActive,
		"is_first_time_user":  d.IsFirstTimeUser,
		"is_mobile_verified":  d.IsMobileVerified,
		"is_email_verified":   d.IsEmailVerified,
		"created_at":          d.CreatedAt,
		"updated_at":          d.UpdatedAt,
	}
}
