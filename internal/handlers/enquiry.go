package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/furnistore/internal/middleware"
	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/services"
	"github.com/example/furnistore/internal/utils"
)

// EnquiryHandler manages enquiry endpoints for dealers and admins.
type EnquiryHandler struct {
	db        *gorm.DB
	enquiries *services.EnquiryService
}

// NewEnquiryHandler constructs an EnquiryHandler.
func NewEnquiryHandler(db *gorm.DB, enquiries *services.EnquiryService) *EnquiryHandler {
	return &EnquiryHandler{db: db, enquiries: enquiries}
}

type createEnquiryRequest struct {
	ProductID    string  `json:"product_id"`
	ProductColor string  `json:"product_color"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Remarks      string  `json:"remarks"`
}

// Create opens a new enquiry for the authenticated dealer.
func (h *EnquiryHandler) Create(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid product id")
	}

	enquiry, err := h.enquiries.Create(dealerID, services.CreateEnquiryInput{
		ProductID:    productID,
		ProductColor: req.ProductColor,
		Quantity:     req.Quantity,
		Price:        req.Price,
		Remarks:      req.Remarks,
	})
	if err != nil {
		return httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Enquiry submitted successfully",
		"data":    enquiry,
	})
}

// ListForDealer returns the authenticated dealer's enquiries.
func (h *EnquiryHandler) ListForDealer(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Enquiry{}).Where("dealer_id = ?", dealerID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var enquiries []models.Enquiry
	if err := query.Preload("Product").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&enquiries).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    enquiries,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetForDealer returns one of the authenticated dealer's enquiries.
func (h *EnquiryHandler) GetForDealer(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var enquiry models.Enquiry
	if err := h.db.Preload("Product").
		First(&enquiry, "id = ? AND dealer_id = ?", id, dealerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "enquiry not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": enquiry})
}

// ListForAdmin returns all enquiries with status, dealer, and date filters.
func (h *EnquiryHandler) ListForAdmin(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Enquiry{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if dealerID := c.Query("dealer_id"); dealerID != "" {
		if id, err := uuid.Parse(dealerID); err == nil {
			query = query.Where("dealer_id = ?", id)
		}
	}
	if from, ok := parseDateQuery(c, "date_from"); ok {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := parseDateQuery(c, "date_to"); ok {
		query = query.Where("created_at <= ?", to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var enquiries []models.Enquiry
	if err := query.Preload("Product").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&enquiries).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    enquiries,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetForAdmin returns one enquiry with its product.
func (h *EnquiryHandler) GetForAdmin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var enquiry models.Enquiry
	if err := h.db.Preload("Product").First(&enquiry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "enquiry not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": enquiry})
}

type setEnquiryStatusRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes"`
}

// SetStatus reassigns an enquiry to any valid status.
func (h *EnquiryHandler) SetStatus(c *fiber.Ctx) error {
	adminID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req setEnquiryStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	enquiry, err := h.enquiries.SetStatus(id, adminID, req.Status, req.AdminNotes)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": enquiry})
}

type disposeEnquiryRequest struct {
	AdminNotes string `json:"admin_notes"`
	Reason     string `json:"reason"`
}

// Approve moves an open enquiry to approved.
func (h *EnquiryHandler) Approve(c *fiber.Ctx) error {
	return h.dispose(c, func(id, adminID uuid.UUID, req disposeEnquiryRequest) (*models.Enquiry, error) {
		return h.enquiries.Approve(id, adminID, req.AdminNotes)
	})
}

// Reject moves an open enquiry to rejected.
func (h *EnquiryHandler) Reject(c *fiber.Ctx) error {
	return h.dispose(c, func(id, adminID uuid.UUID, req disposeEnquiryRequest) (*models.Enquiry, error) {
		reason := req.Reason
		if reason == "" {
			reason = req.AdminNotes
		}
		return h.enquiries.Reject(id, adminID, reason)
	})
}

// Close moves an open enquiry to closed.
func (h *EnquiryHandler) Close(c *fiber.Ctx) error {
	return h.dispose(c, func(id, adminID uuid.UUID, req disposeEnquiryRequest) (*models.Enquiry, error) {
		return h.enquiries.Close(id, adminID, req.AdminNotes)
	})
}

func (h *EnquiryHandler) dispose(c *fiber.Ctx, apply func(id, adminID uuid.UUID, req disposeEnquiryRequest) (*models.Enquiry, error)) error {
	adminID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req disposeEnquiryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
	}

	enquiry, err := apply(id, adminID, req)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": enquiry})
}

// Statistics returns enquiry aggregates for the admin dashboard.
func (h *EnquiryHandler) Statistics(c *fiber.Ctx) error {
	var from, to *time.Time
	if v, ok := parseDateQuery(c, "date_from"); ok {
		from = &v
	}
	if v, ok := parseDateQuery(c, "date_to"); ok {
		to = &v
	}

	stats, err := h.enquiries.Statistics(from, to)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": stats})
}

func parseDateQuery(c *fiber.Ctx, key string) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
