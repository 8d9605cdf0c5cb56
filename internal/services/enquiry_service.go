package services

import (
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/furnistore/internal/apperr"
	"github.com/example/furnistore/internal/models"
)

// EnquiryService owns the enquiry lifecycle: creation by approved dealers
// and admin dispositions.
type EnquiryService struct {
	db    *gorm.DB
	email *EmailService
}

// NewEnquiryService constructs an EnquiryService.
func NewEnquiryService(db *gorm.DB, email *EmailService) *EnquiryService {
	return &EnquiryService{db: db, email: email}
}

// CanCreateEnquiry is the ordering gate: only active, approved dealers may
// place enquiries.
func CanCreateEnquiry(d *models.Dealer) error {
	if !d.IsActive {
		return apperr.ErrAccountDisabled
	}
	if d.Status != models.DealerStatusApproved {
		return apperr.ErrNotApproved
	}
	return nil
}

// CreateEnquiryInput is a validated enquiry request.
type CreateEnquiryInput struct {
	ProductID    uuid.UUID
	ProductColor string
	Quantity     int
	Price        float64
	Remarks      string
}

func (in *CreateEnquiryInput) validate() error {
	switch {
	case in.ProductID == uuid.Nil:
		return apperr.Validation("product id is required")
	case in.Quantity <= 0:
		return apperr.Validation("quantity must be a positive integer")
	case in.Price < 0:
		return apperr.Validation("price must be non-negative")
	case strings.TrimSpace(in.ProductColor) == "":
		return apperr.Validation("product color is required")
	}
	return nil
}

// Create opens a pending enquiry for an approved dealer against an active
// product. Dealer contact fields are snapshotted so later profile edits do
// not change what admins see on the enquiry.
func (s *EnquiryService) Create(dealerID uuid.UUID, in CreateEnquiryInput) (*models.Enquiry, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var dealer models.Dealer
	if err := s.db.First(&dealer, "id = ?", dealerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if err := CanCreateEnquiry(&dealer); err != nil {
		return nil, err
	}

	var product models.Product
	if err := s.db.First(&product, "id = ? AND is_active = ?", in.ProductID, true).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	enquiry := models.Enquiry{
		DealerID:     dealer.ID,
		ProductID:    product.ID,
		ProductCode:  product.Code,
		ProductName:  product.Name,
		ProductColor: strings.TrimSpace(in.ProductColor),
		Quantity:     in.Quantity,
		Price:        in.Price,
		Remarks:      strings.TrimSpace(in.Remarks),
		Status:       models.EnquiryStatusPending,

		DealerCompanyName:       dealer.CompanyName,
		DealerContactPersonName: dealer.ContactPersonName,
		DealerMobile:            dealer.Mobile,
		DealerEmail:             dealer.Email,
		DealerAddress:           dealer.Address,
		DealerGST:               dealer.GST,
	}

	if err := s.db.Create(&enquiry).Error; err != nil {
		return nil, err
	}

	go s.sendConfirmation(enquiry)

	return &enquiry, nil
}

func (s *EnquiryService) sendConfirmation(enquiry models.Enquiry) {
	err := s.email.SendEnquiryConfirmation(
		enquiry.DealerEmail,
		enquiry.DealerCompanyName,
		enquiry.ProductName,
		enquiry.Quantity,
		enquiry.TotalAmount,
	)
	if err != nil {
		log.Printf("[Enquiry] confirmation email for %s failed: %v", enquiry.ID, err)
		return
	}

	now := time.Now()
	if err := s.db.Model(&models.Enquiry{}).
		Where("id = ?", enquiry.ID).
		Updates(map[string]interface{}{"email_sent": true, "email_sent_at": now}).Error; err != nil {
		log.Printf("[Enquiry] failed to record email sent for %s: %v", enquiry.ID, err)
	}
}

// SetStatus is the permissive admin reassignment to any valid status.
func (s *EnquiryService) SetStatus(enquiryID, adminID uuid.UUID, status, notes string) (*models.Enquiry, error) {
	if !models.IsValidEnquiryStatus(status) {
		return nil, apperr.Validation("unknown enquiry status")
	}

	now := time.Now()
	res := s.db.Model(&models.Enquiry{}).
		Where("id = ?", enquiryID).
		Updates(map[string]interface{}{
			"status":          status,
			"admin_notes":     notes,
			"processed_by_id": adminID,
			"processed_at":    now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.ErrNotFound
	}

	return s.findEnquiry(enquiryID)
}

// Approve moves an open enquiry to approved.
func (s *EnquiryService) Approve(enquiryID, adminID uuid.UUID, notes string) (*models.Enquiry, error) {
	return s.dispose(enquiryID, adminID, models.EnquiryStatusApproved, notes)
}

// Reject moves an open enquiry to rejected with a reason.
func (s *EnquiryService) Reject(enquiryID, adminID uuid.UUID, reason string) (*models.Enquiry, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("rejection reason is required")
	}
	return s.dispose(enquiryID, adminID, models.EnquiryStatusRejected, reason)
}

// Close moves an open enquiry to closed.
func (s *EnquiryService) Close(enquiryID, adminID uuid.UUID, notes string) (*models.Enquiry, error) {
	return s.dispose(enquiryID, adminID, models.EnquiryStatusClosed, notes)
}

// dispose applies a terminal disposition conditionally: the update matches
// only while the enquiry is still open, so concurrent dispositions cannot
// both win. Zero rows matched is resolved against the current row to report
// not-found, already-in-state, or a concurrent state change.
func (s *EnquiryService) dispose(enquiryID, adminID uuid.UUID, target, notes string) (*models.Enquiry, error) {
	now := time.Now()
	res := s.db.Model(&models.Enquiry{}).
		Where("id = ? AND status IN ?", enquiryID, models.OpenEnquiryStatuses).
		Updates(map[string]interface{}{
			"status":          target,
			"admin_notes":     notes,
			"processed_by_id": adminID,
			"processed_at":    now,
		})
	if res.Error != nil {
		return nil, res.Error
	}

	enquiry, err := s.findEnquiry(enquiryID)
	if err != nil {
		return nil, err
	}
	if err := resolveTransition(res.RowsAffected, enquiry.Status, target); err != nil {
		return nil, err
	}

	return enquiry, nil
}

func (s *EnquiryService) findEnquiry(enquiryID uuid.UUID) (*models.Enquiry, error) {
	var enquiry models.Enquiry
	if err := s.db.First(&enquiry, "id = ?", enquiryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &enquiry, nil
}

// EnquiryStatistics are the admin aggregates over a date range.
type EnquiryStatistics struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByCategory map[string]int64 `json:"by_category"`
}

// Statistics aggregates enquiry counts by status and by product category,
// optionally bounded by creation date.
func (s *EnquiryService) Statistics(dateFrom, dateTo *time.Time) (*EnquiryStatistics, error) {
	base := s.db.Model(&models.Enquiry{})
	if dateFrom != nil {
		base = base.Where("enquiries.created_at >= ?", *dateFrom)
	}
	if dateTo != nil {
		base = base.Where("enquiries.created_at <= ?", *dateTo)
	}

	stats := &EnquiryStatistics{
		ByStatus:   make(map[string]int64),
		ByCategory: make(map[string]int64),
	}

	if err := base.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byStatus []bucket
	if err := base.Session(&gorm.Session{}).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		stats.ByStatus[b.Key] = b.Count
	}

	var byCategory []bucket
	if err := base.Session(&gorm.Session{}).
		Joins("JOIN products ON products.id = enquiries.product_id").
		Select("products.category as key, count(*) as count").
		Group("products.category").
		Scan(&byCategory).Error; err != nil {
		return nil, err
	}
	for _, b := range byCategory {
		stats.ByCategory[b.Key] = b.Count
	}

	return stats, nil
}

// DealerCounts returns one dealer's enquiry counts by status for the
// dealer dashboard.
func (s *EnquiryService) DealerCounts(dealerID uuid.UUID) (map[string]int64, error) {
	type bucket struct {
		Key   string
		Count int64
	}

	var buckets []bucket
	if err := s.db.Model(&models.Enquiry{}).
		Where("dealer_id = ?", dealerID).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&buckets).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(models.EnquiryStatuses))
	for _, status := range models.EnquiryStatuses {
		counts[status] = 0
	}
	for _, b := range buckets {
		counts[b.Key] = b.Count
	}
	return counts, nil
}
