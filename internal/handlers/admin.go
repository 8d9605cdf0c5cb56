package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/furnistore/internal/middleware"
	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/services"
	"github.com/example/furnistore/internal/utils"
)

// AdminHandler manages admin-only dealer and account endpoints.
type AdminHandler struct {
	db      *gorm.DB
	admins  *services.AdminService
	dealers *services.DealerService
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB, admins *services.AdminService, dealers *services.DealerService) *AdminHandler {
	return &AdminHandler{db: db, admins: admins, dealers: dealers}
}

// Dashboard returns dealer, product, and enquiry counters plus recent activity.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	dealerCounts, err := h.countByColumn(&models.Dealer{}, "status", models.DealerStatuses)
	if err != nil {
		return err
	}

	enquiryCounts, err := h.countByColumn(&models.Enquiry{}, "status", models.EnquiryStatuses)
	if err != nil {
		return err
	}

	var totalDealers, totalEnquiries, totalProducts, activeProducts int64
	if err := h.db.Model(&models.Dealer{}).Count(&totalDealers).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Enquiry{}).Count(&totalEnquiries).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&activeProducts).Error; err != nil {
		return err
	}

	var recentDealers []models.Dealer
	if err := h.db.Select("id, company_name, contact_person_name, email, status, created_at").
		Order("created_at desc").Limit(5).Find(&recentDealers).Error; err != nil {
		return err
	}

	var recentEnquiries []models.Enquiry
	if err := h.db.Select("id, product_code, product_name, quantity, status, created_at").
		Order("created_at desc").Limit(5).Find(&recentEnquiries).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"dealers": fiber.Map{
				"total":     totalDealers,
				"by_status": dealerCounts,
			},
			"products": fiber.Map{
				"total":    totalProducts,
				"active":   activeProducts,
				"inactive": totalProducts - activeProducts,
			},
			"enquiries": fiber.Map{
				"total":     totalEnquiries,
				"by_status": enquiryCounts,
			},
			"recent_dealers":   recentDealers,
			"recent_enquiries": recentEnquiries,
		},
	})
}

func (h *AdminHandler) countByColumn(model interface{}, column string, keys []string) (map[string]int64, error) {
	type bucket struct {
		Key   string
		Count int64
	}

	var buckets []bucket
	if err := h.db.Model(model).
		Select(column + " as key, count(*) as count").
		Group(column).
		Scan(&buckets).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(keys))
	for _, key := range keys {
		counts[key] = 0
	}
	for _, b := range buckets {
		counts[b.Key] = b.Count
	}
	return counts, nil
}

// ListDealers returns dealers with status filter, search, sort, and pagination.
func (h *AdminHandler) ListDealers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Dealer{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"company_name ILIKE ? OR contact_person_name ILIKE ? OR email ILIKE ? OR mobile ILIKE ?",
			like, like, like, like,
		)
	}

	sortBy := c.Query("sort_by", "created_at")
	switch sortBy {
	case "created_at", "company_name", "status":
	default:
		sortBy = "created_at"
	}
	order := "desc"
	if c.Query("sort_order") == "asc" {
		order = "asc"
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var dealers []models.Dealer
	if err := query.Order(sortBy + " " + order).
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&dealers).Error; err != nil {
		return err
	}

	data := make([]map[string]interface{}, len(dealers))
	for i := range dealers {
		data[i] = dealers[i].Public()
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetDealer returns one dealer with their recent enquiries.
func (h *AdminHandler) GetDealer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var dealer models.Dealer
	if err := h.db.First(&dealer, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "dealer not found")
		}
		return err
	}

	var enquiries []models.Enquiry
	if err := h.db.Where("dealer_id = ?", id).
		Order("created_at desc").Limit(10).
		Find(&enquiries).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"dealer":    dealer.Public(),
			"enquiries": enquiries,
		},
	})
}

// ApproveDealer approves a pending or rejected dealer.
func (h *AdminHandler) ApproveDealer(c *fiber.Ctx) error {
	adminID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	dealer, err := h.dealers.Approve(id, adminID)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Dealer approved successfully",
		"data":    dealer.Public(),
	})
}

type rejectDealerRequest struct {
	Reason string `json:"reason"`
}

// RejectDealer rejects a dealer with a reason.
func (h *AdminHandler) RejectDealer(c *fiber.Ctx) error {
	adminID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req rejectDealerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	dealer, err := h.dealers.Reject(id, adminID, req.Reason)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Dealer rejected",
		"data":    dealer.Public(),
	})
}

type updateDealerStatusRequest struct {
	Status   *string `json:"status"`
	IsActive *bool   `json:"is_active"`
}

// UpdateDealerStatus is the permissive status/isActive reassignment.
func (h *AdminHandler) UpdateDealerStatus(c *fiber.Ctx) error {
	adminID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateDealerStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	dealer, err := h.dealers.UpdateStatus(id, adminID, req.Status, req.IsActive)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": dealer.Public()})
}

// DealerStatistics returns dealer totals by status and registrations by month.
func (h *AdminHandler) DealerStatistics(c *fiber.Ctx) error {
	query := h.db.Model(&models.Dealer{})
	if from, ok := parseDateQuery(c, "date_from"); ok {
		query = query.Where("created_at >= ?", from)
	}
	if to, ok := parseDateQuery(c, "date_to"); ok {
		query = query.Where("created_at <= ?", to)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return err
	}

	type bucket struct {
		Key   string
		Count int64
	}
	var byStatus []bucket
	if err := query.Session(&gorm.Session{}).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return err
	}

	statusCounts := make(map[string]int64, len(models.DealerStatuses))
	for _, s := range models.DealerStatuses {
		statusCounts[s] = 0
	}
	for _, b := range byStatus {
		statusCounts[b.Key] = b.Count
	}

	type monthBucket struct {
		Month string `json:"month"`
		Count int64  `json:"count"`
	}
	var byMonth []monthBucket
	if err := query.Session(&gorm.Session{}).
		Select("to_char(date_trunc('month', created_at), 'YYYY-MM') as month, count(*) as count").
		Group("month").
		Order("month asc").
		Scan(&byMonth).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total":     total,
			"by_status": statusCounts,
			"by_month":  byMonth,
		},
	})
}

type createAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// CreateAdmin adds an operator account. Super admin only.
func (h *AdminHandler) CreateAdmin(c *fiber.Ctx) error {
	role, ok := middleware.CurrentRole(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req createAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	admin, err := h.admins.Create(role, services.CreateAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": admin.Public()})
}

// ListAdmins returns all operator accounts. Super admin only.
func (h *AdminHandler) ListAdmins(c *fiber.Ctx) error {
	role, ok := middleware.CurrentRole(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	admins, err := h.admins.List(role)
	if err != nil {
		return httpError(err)
	}

	data := make([]map[string]interface{}, len(admins))
	for i := range admins {
		data[i] = admins[i].Public()
	}

	return c.JSON(fiber.Map{"success": true, "data": data})
}

type changeAdminPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the authenticated operator's own password.
func (h *AdminHandler) ChangePassword(c *fiber.Ctx) error {
	adminID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req changeAdminPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.admins.ChangePassword(adminID, req.CurrentPassword, req.NewPassword); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "password changed"})
}

type updateAdminRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
}

// UpdateAdmin edits an operator account. Super admin only.
func (h *AdminHandler) UpdateAdmin(c *fiber.Ctx) error {
	role, ok := middleware.CurrentRole(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	admin, err := h.admins.Update(role, id, services.UpdateAdminInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": admin.Public()})
}

type setAdminActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// SetAdminActive toggles an operator account. Super admin only.
func (h *AdminHandler) SetAdminActive(c *fiber.Ctx) error {
	role, ok := middleware.CurrentRole(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req setAdminActiveRequest
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return fiber.NewError(fiber.StatusBadRequest, "is_active is required")
	}

	admin, err := h.admins.SetActive(role, id, *req.IsActive)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": admin.Public()})
}
