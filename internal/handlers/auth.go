package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/furnistore/internal/services"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	dealers *services.DealerService
	admins  *services.AdminService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(dealers *services.DealerService, admins *services.AdminService) *AuthHandler {
	return &AuthHandler{dealers: dealers, admins: admins}
}

type registerDealerRequest struct {
	CompanyName       string `json:"company_name"`
	ContactPersonName string `json:"contact_person_name"`
	Mobile            string `json:"mobile"`
	Email             string `json:"email"`
	Address           string `json:"address"`
	PinCode           string `json:"pin_code"`
	GST               string `json:"gst"`
	Password          string `json:"password"`
}

// RegisterDealer creates a pending dealer account and sends both OTPs.
func (h *AuthHandler) RegisterDealer(c *fiber.Ctx) error {
	var req registerDealerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	dealer, err := h.dealers.Register(services.RegisterInput{
		CompanyName:       req.CompanyName,
		ContactPersonName: req.ContactPersonName,
		Mobile:            req.Mobile,
		Email:             req.Email,
		Address:           req.Address,
		PinCode:           req.PinCode,
		GST:               req.GST,
		Password:          req.Password,
	})
	if err != nil {
		return httpError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Registration submitted. Verify your mobile and email, then wait for admin approval.",
		"data":    dealer.Public(),
	})
}

type dealerLoginRequest struct {
	GST      string `json:"gst"`
	Password string `json:"password"`
}

// DealerLogin authenticates a dealer by GST number.
func (h *AuthHandler) DealerLogin(c *fiber.Ctx) error {
	var req dealerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	token, dealer, err := h.dealers.Login(req.GST, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data":    dealer.Public(),
	})
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminLogin authenticates an operator account by username.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	token, admin, err := h.admins.Login(req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data":    admin.Public(),
	})
}

type verifyOTPRequest struct {
	DealerID string `json:"dealer_id"`
	Channel  string `json:"channel"`
	Code     string `json:"code"`
}

// VerifyOTP validates a mobile or email verification code for a dealer.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	dealerID, err := uuid.Parse(req.DealerID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dealer id")
	}

	switch req.Channel {
	case "mobile":
		err = h.dealers.VerifyMobile(dealerID, req.Code)
	case "email":
		err = h.dealers.VerifyEmail(dealerID, req.Code)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "channel must be mobile or email")
	}
	if err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"verified": true,
	})
}

type resendOTPRequest struct {
	DealerID string `json:"dealer_id"`
	Channel  string `json:"channel"`
}

// ResendOTP reissues a verification code for one channel.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req resendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	dealerID, err := uuid.Parse(req.DealerID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid dealer id")
	}

	if err := h.dealers.ResendOTP(dealerID, req.Channel); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "verification code resent",
	})
}
