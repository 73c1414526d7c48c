package middleware

import (
	"context"
	"errors"
	"strings"

	"Backend-ShiftFilter/src/models"
	"Backend-ShiftFilter/src/services/users"
	"Backend-ShiftFilter/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthJWT ตรวจ Bearer token และเก็บข้อมูลผู้ใช้ไว้ใน c.Locals
func AuthJWT(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Missing or invalid Authorization header")
	}

	tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
	claims, err := utils.ParseJWT(tokenStr)
	if err != nil {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	listed, err := utils.IsTokenBlacklisted(claims.ID)
	if err != nil {
		zap.L().Error("blacklist lookup failed", zap.Error(err))
		return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot verify token")
	}
	if listed {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Token has been revoked")
	}

	c.Locals("userId", claims.UserID)
	c.Locals("email", claims.Email)
	c.Locals("role", claims.Role)
	c.Locals("claims", claims)

	return c.Next()
}

// UserLookup โหลดผู้ใช้จาก id (hex) ตัวจริงคือ *users.Service
type UserLookup interface {
	Get(ctx context.Context, id string) (*models.User, error)
}

// ActiveUser reloads the account named by the token on every request, so a
// deleted or unapproved account loses access before its token expires. The
// role in Locals is replaced by the stored one. Use after AuthJWT.
func ActiveUser(lookup UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userId").(string)
		user, err := lookup.Get(c.UserContext(), userID)
		switch {
		case errors.Is(err, users.ErrUserNotFound), errors.Is(err, users.ErrInvalidID):
			return utils.HandleError(c, fiber.StatusUnauthorized, "Account no longer exists")
		case err != nil:
			zap.L().Error("user lookup failed", zap.String("userId", userID), zap.Error(err))
			return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot verify account")
		case !user.IsApproved:
			return utils.HandleError(c, fiber.StatusForbidden, "Your account has not yet been approved by an admin.")
		}

		c.Locals("email", user.Email)
		c.Locals("role", user.Role())
		return c.Next()
	}
}

// RequireAdmin ต้องใช้หลัง AuthJWT (และ ActiveUser)
func RequireAdmin(c *fiber.Ctx) error {
	if role, _ := c.Locals("role").(string); role != models.RoleAdmin {
		return utils.HandleError(c, fiber.StatusForbidden, "You do not have permission to access this page.")
	}
	return c.Next()
}
