package models

import (
	"time"

	"github.com/google/uuid"
)

// OTP purposes. Each (owner, purpose) pair has at most one live code;
// issuing a new one supersedes the previous.
const (
	OTPPurposeMobileVerify  = "mobile_verify"
	OTPPurposeEmailVerify   = "email_verify"
	OTPPurposePasswordReset = "password_reset"
	OTPPurposeEmailChange   = "email_change"
)

// OTP is a short-lived numeric verification code tied to one owner and
// purpose. Rows are deleted on successful verification and swept once
// expired.
type OTP struct {
	BaseModel
	OwnerID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_otps_owner_purpose" json:"owner_id"`
	Purpose     string    `gorm:"uniqueIndex:idx_otps_owner_purpose" json:"purpose"`
	Destination string    `json:"destination"`
	Code        string    `json:"-"`
	ExpiresAt   time.Time `gorm:"index" json:"expires_at"`
}

// PasswordResetToken is a single-use reset credential with its own expiry
// window, separate from the OTP codes.
type PasswordResetToken struct {
	BaseModel
	DealerID  uuid.UUID  `gorm:"type:uuid;index" json:"dealer_id"`
	Token     string     `gorm:"uniqueIndex" json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
}
