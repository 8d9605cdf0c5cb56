package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/furnistore/internal/services"
)

// PasswordResetHandler manages forgot-password endpoints.
type PasswordResetHandler struct {
	dealers *services.DealerService
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(dealers *services.DealerService) *PasswordResetHandler {
	return &PasswordResetHandler{dealers: dealers}
}

type forgotPasswordRequest struct {
	GST string `json:"gst"`
}

// ForgotPassword issues a single-use reset token and emails it to the
// dealer's registered address.
func (h *PasswordResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.GST == "" {
		return fiber.NewError(fiber.StatusBadRequest, "gst is required")
	}

	if err := h.dealers.RequestPasswordReset(req.GST); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "password reset email sent to your registered address",
	})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword redeems a reset token and stores the new password.
func (h *PasswordResetHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Token == "" || req.NewPassword == "" {
		return fiber.NewError(fiber.StatusBadRequest, "token and new_password are required")
	}

	if err := h.dealers.ResetPassword(req.Token, req.NewPassword); err != nil {
		return httpError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "password updated successfully",
	})
}
