package services

import (
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/furnistore/internal/apperr"
	"github.com/example/furnistore/internal/config"
	"github.com/example/furnistore/internal/database"
	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/utils"
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// DealerService owns the dealer lifecycle: registration, OTP verification,
// admin approval, login gating, and password management.
type DealerService struct {
	db    *gorm.DB
	cfg   *config.Config
	otp   *OTPService
	email *EmailService
	sms   *SMSService
}

// NewDealerService constructs a DealerService.
func NewDealerService(db *gorm.DB, cfg *config.Config, otp *OTPService, email *EmailService, sms *SMSService) *DealerService {
	return &DealerService{db: db, cfg: cfg, otp: otp, email: email, sms: sms}
}

// RegisterInput is a validated dealer registration request.
type RegisterInput struct {
	CompanyName       string
	ContactPersonName string
	Mobile            string
	Email             string
	Address           string
	PinCode           string
	GST               string
	Password          string
}

func (in *RegisterInput) normalize() {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactPersonName = strings.TrimSpace(in.ContactPersonName)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Address = strings.TrimSpace(in.Address)
	in.PinCode = strings.TrimSpace(in.PinCode)
	in.GST = strings.ToUpper(strings.TrimSpace(in.GST))
}

func (in *RegisterInput) validate() error {
	switch {
	case in.CompanyName == "":
		return apperr.Validation("company name is required")
	case in.ContactPersonName == "":
		return apperr.Validation("contact person name is required")
	case !mobilePattern.MatchString(in.Mobile):
		return apperr.Validation("mobile must be a 10-digit number")
	case !emailPattern.MatchString(in.Email):
		return apperr.Validation("a valid email is required")
	case in.Address == "":
		return apperr.Validation("address is required")
	case in.GST == "":
		return apperr.Validation("gst number is required")
	case len(in.Password) < 6:
		return apperr.Validation("password must be at least 6 characters")
	}
	return nil
}

// Register creates a pending dealer and dispatches mobile and email OTPs.
// Uniqueness of mobile, email, and gst is enforced by the database indexes,
// never by check-then-insert. If either OTP cannot be delivered the dealer
// row is removed again, so registration is all-or-nothing.
func (s *DealerService) Register(in RegisterInput) (*models.Dealer, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	dealer := models.Dealer{
		CompanyName:       in.CompanyName,
		ContactPersonName: in.ContactPersonName,
		Mobile:            in.Mobile,
		Email:             in.Email,
		Address:           in.Address,
		PinCode:           in.PinCode,
		GST:               in.GST,
		PasswordHash:      hash,
		Status:            models.DealerStatusPending,
		IsActive:          true,
		IsFirstTimeUser:   true,
	}

	if err := s.db.Create(&dealer).Error; err != nil {
		if field, ok := database.UniqueViolationField(err); ok {
			return nil, apperr.Duplicate(field)
		}
		return nil, err
	}

	if err := s.dispatchRegistrationOTPs(&dealer); err != nil {
		s.rollbackRegistration(dealer.ID)
		return nil, err
	}

	return &dealer, nil
}

func (s *DealerService) dispatchRegistrationOTPs(dealer *models.Dealer) error {
	mobileCode, err := s.otp.Issue(dealer.ID, models.OTPPurposeMobileVerify, dealer.Mobile)
	if err != nil {
		return err
	}
	emailCode, err := s.otp.Issue(dealer.ID, models.OTPPurposeEmailVerify, dealer.Email)
	if err != nil {
		return err
	}

	if err := s.sms.SendOTP(dealer.Mobile, mobileCode); err != nil {
		return apperr.ErrDeliveryFailed
	}
	if err := s.email.SendOTP(dealer.Email, emailCode, dealer.CompanyName); err != nil {
		return apperr.ErrDeliveryFailed
	}

	return nil
}

func (s *DealerService) rollbackRegistration(dealerID uuid.UUID) {
	if err := s.db.Where("owner_id = ?", dealerID).Delete(&models.OTP{}).Error; err != nil {
		log.Printf("[Dealer] rollback: failed to delete otps for %s: %v", dealerID, err)
	}
	if err := s.db.Delete(&models.Dealer{}, "id = ?", dealerID).Error; err != nil {
		log.Printf("[Dealer] rollback: failed to delete dealer %s: %v", dealerID, err)
	}
}

// VerifyMobile consumes the mobile OTP and marks the mobile verified.
func (s *DealerService) VerifyMobile(dealerID uuid.UUID, code string) error {
	return s.verifyChannel(dealerID, models.OTPPurposeMobileVerify, code, "is_mobile_verified")
}

// VerifyEmail consumes the email OTP and marks the email verified.
func (s *DealerService) VerifyEmail(dealerID uuid.UUID, code string) error {
	return s.verifyChannel(dealerID, models.OTPPurposeEmailVerify, code, "is_email_verified")
}

func (s *DealerService) verifyChannel(dealerID uuid.UUID, purpose, code, flagColumn string) error {
	var dealer models.Dealer
	if err := s.db.First(&dealer, "id = ?", dealerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.ErrNotFound
		}
		return err
	}

	if err := s.otp.Verify(dealerID, purpose, code); err != nil {
		return err
	}

	return s.db.Model(&models.Dealer{}).
		Where("id = ?", dealerID).
		Update(flagColumn, true).Error
}

// ResendOTP reissues the verification code for one channel, superseding the
// previous code.
func (s *DealerService) ResendOTP(dealerID uuid.UUID, channel string) error {
	var dealer models.Dealer
	if err := s.db.First(&dealer, "id = ?", dealerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.ErrNotFound
		}
		return err
	}

	switch channel {
	case "mobile":
		if dealer.IsMobileVerified {
			return apperr.ErrAlreadyInState
		}
		code, err := s.otp.Issue(dealer.ID, models.OTPPurposeMobileVerify, dealer.Mobile)
		if err != nil {
			return err
		}
		if err := s.sms.SendOTP(dealer.Mobile, code); err != nil {
			return apperr.ErrDeliveryFailed
		}
	case "email":
		if dealer.IsEmailVerified {
			return apperr.ErrAlreadyInState
		}
		code, err := s.otp.Issue(dealer.ID, models.OTPPurposeEmailVerify, dealer.Email)
		if err != nil {
			return err
		}
		if err := s.email.SendOTP(dealer.Email, code, dealer.CompanyName); err != nil {
			return apperr.ErrDeliveryFailed
		}
	default:
		return apperr.Validation("channel must be mobile or email")
	}

	return nil
}

// CanLogin is the dealer login gate: active account, admin approval, and
// both verification flags are all required.
func CanLogin(d *models.Dealer) error {
	if !d.IsActive {
		return apperr.ErrAccountDisabled
	}
	if d.Status != models.DealerStatusApproved {
		return apperr.ErrNotApproved
	}
	if !d.IsMobileVerified || !d.IsEmailVerified {
		return apperr.ErrNotVerified
	}
	return nil
}

// Login authenticates a dealer by GST number. Unknown GST and wrong
// password yield the same invalid-credentials error.
func (s *DealerService) Login(gst, password string) (string, *models.Dealer, error) {
	gst = strings.ToUpper(strings.TrimSpace(gst))

	var dealer models.Dealer
	if err := s.db.Where("gst = ?", gst).First(&dealer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperr.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !utils.CheckPassword(dealer.PasswordHash, password) {
		return "", nil, apperr.ErrInvalidCredentials
	}

	if err := CanLogin(&dealer); err != nil {
		return "", nil, err
	}

	if dealer.IsFirstTimeUser {
		if err := s.db.Model(&models.Dealer{}).
			Where("id = ?", dealer.ID).
			Update("is_first_time_user", false).Error; err != nil {
			return "", nil, err
		}
		dealer.IsFirstTimeUser = false
	}

	token, err := utils.GenerateToken(s.cfg.JWTSecret, dealer.ID, models.RoleDealer, s.cfg.TokenExpires)
	if err != nil {
		return "", nil, err
	}

	return token, &dealer, nil
}

// Approve moves a dealer to approved and clears any rejection reason.
// Re-approving an approved dealer reports already-in-state; a rejected
// dealer may still be reassigned to approved.
func (s *DealerService) Approve(dealerID, adminID uuid.UUID) (*models.Dealer, error) {
	dealer, err := s.transition(dealerID, adminID, models.DealerStatusApproved, "")
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.email.SendDealerApproval(dealer.Email, dealer.CompanyName); err != nil {
			log.Printf("[Dealer] approval email to %s failed: %v", dealer.Email, err)
		}
	}()

	return dealer, nil
}

// Reject moves a dealer to rejected and records the reason.
func (s *DealerService) Reject(dealerID, adminID uuid.UUID, reason string) (*models.Dealer, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperr.Validation("rejection reason is required")
	}

	dealer, err := s.transition(dealerID, adminID, models.DealerStatusRejected, reason)
	if err != nil {
		return nil, err
	}

	go func() {
		if err := s.email.SendDealerRejection(dealer.Email, dealer.CompanyName, reason); err != nil {
			log.Printf("[Dealer] rejection email to %s failed: %v", dealer.Email, err)
		}
	}()

	return dealer, nil
}

// transition moves a dealer between statuses. The update is guarded on the
// status this caller observed, so of two concurrent dispositions exactly one
// applies; the loser sees stale-state, a repeat sees already-in-state.
func (s *DealerService) transition(dealerID, adminID uuid.UUID, target, reason string) (*models.Dealer, error) {
	dealer, err := s.findDealer(dealerID)
	if err != nil {
		return nil, err
	}
	if dealer.Status == target {
		return nil, apperr.ErrAlreadyInState
	}

	now := time.Now()
	res := s.db.Model(&models.Dealer{}).
		Where("id = ? AND status = ?", dealerID, dealer.Status).
		Updates(map[string]interface{}{
			"status":           target,
			"approved_by_id":   adminID,
			"approved_at":      now,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	updated, err := s.findDealer(dealerID)
	if err != nil {
		return nil, err
	}
	if err := resolveTransition(res.RowsAffected, updated.Status, target); err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateStatus is the permissive admin reassignment of status and isActive.
func (s *DealerService) UpdateStatus(dealerID, adminID uuid.UUID, status *string, isActive *bool) (*models.Dealer, error) {
	updates := map[string]interface{}{}

	if status != nil {
		if !models.IsValidDealerStatus(*status) {
			return nil, apperr.Validation("unknown dealer status")
		}
		updates["status"] = *status
		updates["approved_by_id"] = adminID
		updates["approved_at"] = time.Now()
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("nothing to update")
	}

	res := s.db.Model(&models.Dealer{}).Where("id = ?", dealerID).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}

	return s.findDealer(dealerID)
}

// UpdateProfile edits the dealer-owned contact fields.
func (s *DealerService) UpdateProfile(dealerID uuid.UUID, companyName, contactPersonName, mobile, address string) (*models.Dealer, error) {
	updates := map[string]interface{}{}

	if v := strings.TrimSpace(companyName); v != "" {
		updates["company_name"] = v
	}
	if v := strings.TrimSpace(contactPersonName); v != "" {
		updates["contact_person_name"] = v
	}
	if v := strings.TrimSpace(mobile); v != "" {
		if !mobilePattern.MatchString(v) {
			return nil, apperr.Validation("mobile must be a 10-digit number")
		}
		updates["mobile"] = v
	}
	if v := strings.TrimSpace(address); v != "" {
		updates["address"] = v
	}
	if len(updates) == 0 {
		return nil, apperr.Validation("nothing to update")
	}

	res := s.db.Model(&models.Dealer{}).Where("id = ?", dealerID).Updates(updates)
	if res.Error != nil {
		if field, ok := database.UniqueViolationField(res.Error); ok {
			return nil, apperr.Duplicate(field)
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}

	return s.findDealer(dealerID)
}

// validateEmailChange normalizes the requested address and checks it
// against the current one.
func validateEmailChange(current, next string) (string, error) {
	next = strings.ToLower(strings.TrimSpace(next))
	if !emailPattern.MatchString(next) {
		return "", apperr.Validation("a valid email is required")
	}
	if next == current {
		return "", apperr.Validation("new email matches the current one")
	}
	return next, nil
}

// RequestEmailChange issues a verification code to the requested address.
// The current email stays in place until the code is confirmed.
func (s *DealerService) RequestEmailChange(dealerID uuid.UUID, newEmail string) error {
	dealer, err := s.findDealer(dealerID)
	if err != nil {
		return err
	}

	next, err := validateEmailChange(dealer.Email, newEmail)
	if err != nil {
		return err
	}

	code, err := s.otp.Issue(dealer.ID, models.OTPPurposeEmailChange, next)
	if err != nil {
		return err
	}

	if err := s.email.SendOTP(next, code, dealer.CompanyName); err != nil {
		if err := s.otp.Invalidate(dealer.ID, models.OTPPurposeEmailChange); err != nil {
			log.Printf("[Dealer] failed to invalidate email-change code for %s: %v", dealer.ID, err)
		}
		return apperr.ErrDeliveryFailed
	}

	return nil
}

// ConfirmEmailChange consumes the email-change code and moves the account to
// the address the code was sent to. The new address counts as verified.
func (s *DealerService) ConfirmEmailChange(dealerID uuid.UUID, code string) (*models.Dealer, error) {
	if _, err := s.findDealer(dealerID); err != nil {
		return nil, err
	}

	otp, err := s.otp.Consume(dealerID, models.OTPPurposeEmailChange, code)
	if err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Dealer{}).
		Where("id = ?", dealerID).
		Updates(map[string]interface{}{
			"email":             otp.Destination,
			"is_email_verified": true,
		})
	if res.Error != nil {
		if field, ok := database.UniqueViolationField(res.Error); ok {
			return nil, apperr.Duplicate(field)
		}
		return nil, res.Error
	}

	return s.findDealer(dealerID)
}

// ChangePassword rotates the password after verifying the current one.
func (s *DealerService) ChangePassword(dealerID uuid.UUID, current, next string) error {
	dealer, err := s.findDealer(dealerID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(dealer.PasswordHash, current) {
		return apperr.ErrInvalidCredentials
	}
	if len(next) < 6 {
		return apperr.Validation("password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return err
	}

	return s.db.Model(&models.Dealer{}).
		Where("id = ?", dealerID).
		Update("password_hash", hash).Error
}

// RequestPasswordReset issues a single-use reset token, independent of
// approval or verification state, and emails it to the dealer.
func (s *DealerService) RequestPasswordReset(gst string) error {
	gst = strings.ToUpper(strings.TrimSpace(gst))

	var dealer models.Dealer
	if err := s.db.Where("gst = ?", gst).First(&dealer).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.ErrNotFound
		}
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}

	// Supersede previous unused tokens for this dealer.
	if err := s.db.Model(&models.PasswordResetToken{}).
		Where("dealer_id = ? AND used_at IS NULL", dealer.ID).
		Update("expires_at", time.Now()).Error; err != nil {
		return err
	}

	record := models.PasswordResetToken{
		DealerID:  dealer.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.cfg.ResetTokenTTL),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}

	if err := s.email.SendPasswordReset(dealer.Email, dealer.CompanyName, token); err != nil {
		s.db.Delete(&models.PasswordResetToken{}, "id = ?", record.ID)
		return apperr.ErrDeliveryFailed
	}

	return nil
}

// ResetPassword redeems a reset token. The used_at mark is conditional so
// the token is single-use even under concurrent redemption.
func (s *DealerService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return apperr.Validation("password must be at least 6 characters")
	}

	var record models.PasswordResetToken
	if err := s.db.Where("token = ?", token).First(&record).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.ErrInvalidCode
		}
		return err
	}

	if record.UsedAt != nil {
		return apperr.ErrInvalidCode
	}
	if record.ExpiresAt.Before(time.Now()) {
		return apperr.ErrExpiredCode
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND used_at IS NULL", record.ID).
			Update("used_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.ErrInvalidCode
		}

		return tx.Model(&models.Dealer{}).
			Where("id = ?", record.DealerID).
			Update("password_hash", hash).Error
	})
}

func (s *DealerService) findDealer(dealerID uuid.UUID) (*models.Dealer, error) {
	var dealer models.Dealer
	if err := s.db.First(&dealer, "id = ?", dealerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &dealer, nil
}
