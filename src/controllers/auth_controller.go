package controllers

import (
	"errors"
	"strings"
	"time"

	"Backend-ShiftFilter/src/services/users"
	"Backend-ShiftFilter/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	Users *users.Service
}

func NewAuthController(svc *users.Service) *AuthController {
	return &AuthController{Users: svc}
}

// CredentialsRequest body ของ signup/login
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email" example:"clerk@example.com"`
	Password string `json:"password" validate:"required" example:"secret"`
}

// Signup godoc
// @Summary      Create an account
// @Description  The first account becomes an approved admin. Later accounts wait for admin approval.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      CredentialsRequest  true  "Credentials"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  models.ErrorResponse
// @Failure      409   {object}  models.ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthController) Signup(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.Users.Signup(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, users.ErrEmailTaken) {
		return utils.HandleError(c, fiber.StatusConflict, "Email address already exists.")
	}
	if err != nil {
		zap.L().Error("signup failed", zap.Error(err))
		return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot create account")
	}

	message := "Account created! An admin must approve your account before you can log in."
	if user.IsAdmin {
		message = "Account created! You are the first user (Admin) and automatically approved. Please log in."
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
		"user":    user,
	})
}

// Login godoc
// @Summary      Log in
// @Description  Returns a bearer token. Accounts still pending approval are refused.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      CredentialsRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  models.ErrorResponse
// @Failure      401   {object}  models.ErrorResponse
// @Failure      403   {object}  models.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.Users.Authenticate(c.UserContext(), req.Email, req.Password)
	switch {
	case errors.Is(err, users.ErrInvalidCredentials):
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, users.ErrNotApproved):
		return utils.HandleError(c, fiber.StatusForbidden, "Your account has not yet been approved by an admin.")
	case err != nil:
		zap.L().Error("login failed", zap.Error(err))
		return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot log in")
	}

	token, claims, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Token generation failed")
	}

	c.Set("X-Frame-Options", "DENY")
	c.Set("X-Content-Type-Options", "nosniff")

	return c.JSON(fiber.Map{
		"token":     token,
		"expiresIn": int(time.Until(claims.ExpiresAt.Time).Seconds()),
		"user": fiber.Map{
			"id":      user.ID.Hex(),
			"email":   user.Email,
			"isAdmin": user.IsAdmin,
		},
		"message": "Login successful",
	})
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the current bearer token until it expires.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthController) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*utils.JWTClaims)
	if !ok || claims == nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "User not authenticated")
	}

	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if err := utils.BlacklistToken(claims.ID, ttl); err != nil {
		zap.L().Error("blacklist failed", zap.Error(err))
		return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot log out")
	}

	zap.L().Info("user logged out", zap.String("email", strings.ToLower(claims.Email)))
	return c.JSON(fiber.Map{
		"message": "Logout successful",
		"success": true,
	})
}
