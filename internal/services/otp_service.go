package services

import (
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/furnistore/internal/apperr"
	"github.com/example/furnistore/internal/config"
	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/utils"
)

const defaultOTPTTL = 10 * time.Minute

// OTPService issues and verifies one-time codes. Each (owner, purpose) pair
// holds at most one live code; issuing again supersedes the previous one.
type OTPService struct {
	db   *gorm.DB
	ttls map[string]time.Duration
}

// NewOTPService creates an OTPService with per-purpose TTL policy from config.
func NewOTPService(db *gorm.DB, cfg *config.Config) *OTPService {
	return &OTPService{
		db: db,
		ttls: map[string]time.Duration{
			models.OTPPurposeMobileVerify:  cfg.MobileOTPTTL,
			models.OTPPurposeEmailVerify:   cfg.EmailOTPTTL,
			models.OTPPurposePasswordReset: cfg.ResetOTPTTL,
			models.OTPPurposeEmailChange:   cfg.EmailOTPTTL,
		},
	}
}

// TTL returns the configured lifetime for a purpose.
func (s *OTPService) TTL(purpose string) time.Duration {
	if ttl, ok := s.ttls[purpose]; ok && ttl > 0 {
		return ttl
	}
	return defaultOTPTTL
}

// Issue generates a fresh 6-digit code for the owner and purpose, replacing
// any previous code via upsert on the (owner_id, purpose) unique index.
// Dispatch to the owner's channel is the caller's job so registration can
// roll back on delivery failure.
func (s *OTPService) Issue(ownerID uuid.UUID, purpose, destination string) (string, error) {
	code, err := utils.GenerateOTPCode()
	if err != nil {
		return "", err
	}

	now := time.Now()
	otp := models.OTP{
		OwnerID:     ownerID,
		Purpose:     purpose,
		Destination: destination,
		Code:        code,
		ExpiresAt:   now.Add(s.TTL(purpose)),
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}, {Name: "purpose"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"code":        otp.Code,
			"destination": otp.Destination,
			"expires_at":  otp.ExpiresAt,
			"updated_at":  now,
		}),
	}).Create(&otp).Error
	if err != nil {
		return "", err
	}

	return code, nil
}

// EvaluateOTP is the verification decision on a stored code. Expiry is
// checked before the code comparison, so a correct-but-late candidate
// reports expired, never consumed.
func EvaluateOTP(stored string, expiresAt time.Time, candidate string, now time.Time) error {
	if now.After(expiresAt) {
		return apperr.ErrExpiredCode
	}
	if candidate == "" || stored != candidate {
		return apperr.ErrInvalidCode
	}
	return nil
}

// Consume checks the candidate against the live code for (owner, purpose)
// and deletes it on success, returning the stored row so callers can act on
// its destination. A missing record reports an invalid code, not a distinct
// not-found, so callers cannot learn whether a code was ever issued.
func (s *OTPService) Consume(ownerID uuid.UUID, purpose, candidate string) (*models.OTP, error) {
	var otp models.OTP
	err := s.db.Where("owner_id = ? AND purpose = ?", ownerID, purpose).First(&otp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrInvalidCode
		}
		return nil, err
	}

	if err := EvaluateOTP(otp.Code, otp.ExpiresAt, candidate, time.Now()); err != nil {
		return nil, err
	}

	// Consume exactly once: the delete is conditional on the code still
	// matching, so a racing verify of the same code wins at most once.
	res := s.db.Where("id = ? AND code = ?", otp.ID, candidate).Delete(&models.OTP{})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrInvalidCode
	}

	return &otp, nil
}

// Verify consumes the live code for (owner, purpose) without returning it.
func (s *OTPService) Verify(ownerID uuid.UUID, purpose, candidate string) error {
	_, err := s.Consume(ownerID, purpose, candidate)
	return err
}

// Invalidate drops any live code for (owner, purpose).
func (s *OTPService) Invalidate(ownerID uuid.UUID, purpose string) error {
	return s.db.Where("owner_id = ? AND purpose = ?", ownerID, purpose).Delete(&models.OTP{}).Error
}

// StartSweeper launches a background tick deleting expired OTP rows and
// stale reset tokens. Deletion is bounded to rows already past expiry, so a
// concurrent verify never changes outcome because of the sweep.
func (s *OTPService) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			res := s.db.Where("expires_at < ?", now).Delete(&models.OTP{})
			if res.Error != nil {
				log.Printf("[OTP] sweep failed: %v", res.Error)
				continue
			}
			if res.RowsAffected > 0 {
				log.Printf("[OTP] swept %d expired codes", res.RowsAffected)
			}

			if err := s.db.Where("expires_at < ? AND used_at IS NULL", now).
				Delete(&models.PasswordResetToken{}).Error; err != nil {
				log.Printf("[OTP] reset-token sweep failed: %v", err)
			}
		}
	}()
}
