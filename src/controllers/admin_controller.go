package controllers

import (
	"errors"

	"Backend-ShiftFilter/src/services/uploads"
	"Backend-ShiftFilter/src/services/users"
	"Backend-ShiftFilter/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AdminController struct {
	Users *users.Service
}

func NewAdminController(svc *users.Service) *AdminController {
	return &AdminController{Users: svc}
}

// ListUsers godoc
// @Summary      List accounts
// @Description  Pending accounts (non-admin) and approved accounts.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.UserList
// @Failure      403  {object}  models.ErrorResponse
// @Router       /admin/users [get]
func (h *AdminController) ListUsers(c *fiber.Ctx) error {
	list, err := h.Users.List(c.UserContext())
	if err != nil {
		zap.L().Error("list users failed", zap.Error(err))
		return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot load users")
	}
	return c.JSON(list)
}

// ApproveUser godoc
// @Summary      Approve an account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/users/{id}/approve [post]
func (h *AdminController) ApproveUser(c *fiber.Ctx) error {
	user, err := h.Users.Approve(c.UserContext(), c.Params("id"))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User " + user.Email + " has been approved.", "user": user})
}

// DeleteUser godoc
// @Summary      Delete an account
// @Description  Admins cannot delete their own account.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /admin/users/{id} [delete]
func (h *AdminController) DeleteUser(c *fiber.Ctx) error {
	actorID, _ := c.Locals("userId").(string)
	user, err := h.Users.Delete(c.UserContext(), actorID, c.Params("id"))
	if err != nil {
		return userError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User " + user.Email + " has been deleted."})
}

// ListUploads godoc
// @Summary      Recent upload audits
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max records"  default(50)
// @Success      200    {array}   models.UploadAudit
// @Router       /admin/uploads [get]
func (h *AdminController) ListUploads(c *fiber.Ctx) error {
	audits, err := uploads.ListRecentAudits(c.UserContext(), int64(c.QueryInt("limit", 50)))
	if err != nil {
		zap.L().Error("list upload audits failed", zap.Error(err))
		return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot load upload history")
	}
	return c.JSON(audits)
}

func userError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, users.ErrInvalidID):
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrUserNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, users.ErrCannotDeleteSelf):
		return utils.HandleError(c, fiber.StatusBadRequest, "You cannot delete your own admin account.")
	}
	zap.L().Error("user admin action failed", zap.Error(err))
	return utils.HandleError(c, fiber.StatusInternalServerError, "Cannot update user")
}
