package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/furnistore/internal/middleware"
	"github.com/example/furnistore/internal/models"
	"github.com/example/furnistore/internal/services"
)

// DealerHandler manages dealer self-service endpoints.
type DealerHandler struct {
	db        *gorm.DB
	dealers   *services.DealerService
	enquiries *services.EnquiryService
}

// NewDealerHandler constructs a DealerHandler.
func NewDealerHandler(db *gorm.DB, dealers *services.DealerService, enquiries *services.EnquiryService) *DealerHandler {
	return &DealerHandler{db: db, dealers: dealers, enquiries: enquiries}
}

// GetProfile returns the authenticated dealer's profile.
func (h *DealerHandler) GetProfile(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var dealer models.Dealer
	if err := h.db.First(&dealer, "id = ?", dealerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "dealer not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": dealer.Public()})
}

type updateDealerProfileRequest struct {
	CompanyName       string `json:"company_name"`
	ContactPersonName string `json:"contact_person_name"`
	Mobile            string `json:"mobile"`
	Address           string `json:"address"`
}

// UpdateProfile edits the dealer's own contact fields.
func (h *DealerHandler) UpdateProfile(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateDealerProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	dealer, err := h.dealers.UpdateProfile(dealerID, req.CompanyName, req.ContactPersonName, req.Mobile, req.Address)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": dealer.Public()})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the dealer's password.
func (h *DealerHandler) ChangePassword(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.dealers.ChangePassword(dealerID, req.CurrentPassword, req.NewPassword); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "password changed"})
}

type requestEmailChangeRequest struct {
	NewEmail string `json:"new_email"`
}

// RequestEmailChange sends a verification code to the requested address.
func (h *DealerHandler) RequestEmailChange(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req requestEmailChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.dealers.RequestEmailChange(dealerID, req.NewEmail); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "verification code sent to the new address",
	})
}

type confirmEmailChangeRequest struct {
	Code string `json:"code"`
}

// ConfirmEmailChange redeems the code and switches the account email.
func (h *DealerHandler) ConfirmEmailChange(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req confirmEmailChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	dealer, err := h.dealers.ConfirmEmailChange(dealerID, req.Code)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": dealer.Public()})
}

// Dashboard returns the dealer's enquiry counts and account state.
func (h *DealerHandler) Dashboard(c *fiber.Ctx) error {
	dealerID, ok := middleware.CurrentPrincipalID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var dealer models.Dealer
	if err := h.db.First(&dealer, "id = ?", dealerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "dealer not found")
		}
		return err
	}

	counts, err := h.enquiries.DealerCounts(dealerID)
	if err != nil {
		return err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"account_status":      dealer.Status,
			"is_first_time_user":  dealer.IsFirstTimeUser,
			"total_enquiries":     total,
			"enquiries_by_status": counts,
		},
	})
}
