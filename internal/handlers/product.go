package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/furnistore/internal/database"
	"github.com/example/furnistore/internal/middleware"
	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/utils"
)

// ProductHandler manages the product catalogue.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type productRequest struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	Colors        []string `json:"colors"`
	Images        []string `json:"images"`
	Warranty      string   `json:"warranty"`
	StockQuantity *int     `json:"stock_quantity"`
}

// Create adds a catalogue product.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	adminID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)

	if req.Code == "" || req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code and name are required")
	}
	if !models.IsValidProductCategory(req.Category) {
		return fiber.NewError(fiber.StatusBadRequest, "unknown product category")
	}
	if req.Price == nil || *req.Price < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price must be non-negative")
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "stock quantity cannot be negative")
	}

	product := models.Product{
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       *req.Price,
		Colors:      pq.StringArray(req.Colors),
		Images:      pq.StringArray(req.Images),
		Warranty:    req.Warranty,
		IsActive:    true,
		CreatedByID: &adminID,
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if product.Warranty == "" {
		product.Warranty = "3 Year Warranty"
	}

	if err := h.db.Create(&product).Error; err != nil {
		if _, ok := database.UniqueViolationField(err); ok {
			return fiber.NewError(fiber.StatusConflict, "product code already exists")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": product})
}

// Update edits a catalogue product.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if v := strings.TrimSpace(req.Name); v != "" {
		updates["name"] = v
	}
	if req.Category != "" {
		if !models.IsValidProductCategory(req.Category) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown product category")
		}
		updates["category"] = req.Category
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price must be non-negative")
		}
		updates["price"] = *req.Price
	}
	if req.Colors != nil {
		updates["colors"] = pq.StringArray(req.Colors)
	}
	if req.Images != nil {
		updates["images"] = pq.StringArray(req.Images)
	}
	if req.Warranty != "" {
		updates["warranty"] = req.Warranty
	}
	if req.StockQuantity != nil {
		if *req.StockQuantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "stock quantity cannot be negative")
		}
		updates["stock_quantity"] = *req.StockQuantity
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}

	res := h.db.Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

type setProductActiveRequest struct {
	IsActive *bool `json:"is_active"`
}

// SetActive toggles product visibility. Products are never hard-deleted.
func (h *ProductHandler) SetActive(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req setProductActiveRequest
	if err := c.BodyParser(&req); err != nil || req.IsActive == nil {
		return fiber.NewError(fiber.StatusBadRequest, "is_active is required")
	}

	res := h.db.Model(&models.Product{}).Where("id = ?", id).Update("is_active", *req.IsActive)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "product not found")
	}

	return c.JSON(fiber.Map{"success": true})
}

// List returns catalogue products. Dealers see only active products; the
// full catalogue is admin-only.
func (h *ProductHandler) List(activeOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		pg := utils.ParsePagination(c)
		query := h.db.Model(&models.Product{})

		if activeOnly {
			query = query.Where("is_active = ?", true)
		} else if v := c.Query("is_active"); v != "" {
			query = query.Where("is_active = ?", v == "true")
		}

		if category := c.Query("category"); category != "" {
			query = query.Where("category = ?", category)
		}
		if search := c.Query("search"); search != "" {
			query = query.Where("code ILIKE ? OR name ILIKE ?", "%"+search+"%", "%"+search+"%")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			return err
		}

		var products []models.Product
		if err := query.Order("created_at desc").
			Limit(pg.Limit).Offset(pg.Offset).
			Find(&products).Error; err != nil {
			return err
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    products,
			"pagination": fiber.Map{
				"current_page":   pg.Page,
				"items_per_page": pg.Limit,
				"total_items":    total,
			},
		})
	}
}

// Get returns a single product by id.
func (h *ProductHandler) Get(activeOnly bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid id")
		}

		query := h.db.Model(&models.Product{})
		if activeOnly {
			query = query.Where("is_active = ?", true)
		}

		var product models.Product
		if err := query.First(&product, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "product not found")
			}
			return err
		}

		return c.JSON(fiber.Map{"success": true, "data": product})
	}
}

// Stats returns catalogue counters for the admin dashboard.
func (h *ProductHandler) Stats(c *fiber.Ctx) error {
	var total, active int64
	if err := h.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return err
	}
	if err := h.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return err
	}

	type bucket struct {
		Key   string
		Count int64
	}
	var buckets []bucket
	if err := h.db.Model(&models.Product{}).
		Select("category as key, count(*) as count").
		Group("category").
		Scan(&buckets).Error; err != nil {
		return err
	}

	byCategory := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		byCategory[b.Key] = b.Count
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total":       total,
			"active":      active,
			"inactive":    total - active,
			"by_category": byCategory,
		},
	})
}
