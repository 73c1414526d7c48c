package routes

import (
	"Backend-ShiftFilter/src/controllers"
	"Backend-ShiftFilter/src/jobs"
	"Backend-ShiftFilter/src/middleware"
	"Backend-ShiftFilter/src/services/timeclock"
	"Backend-ShiftFilter/src/services/users"

	"github.com/gofiber/fiber/v2"
)

// Deps ของที่ route ต้องใช้ สร้างใน main
type Deps struct {
	Users          *users.Service
	Timeclock      timeclock.Options
	OutputFilename string
	Audit          jobs.Enqueuer
}

func InitRoutes(app *fiber.App, deps Deps) {
	authRoutes(app, controllers.NewAuthController(deps.Users))
	active := middleware.ActiveUser(deps.Users)
	adminRoutes(app, controllers.NewAdminController(deps.Users), active)
	shiftRoutes(app, controllers.NewShiftController(deps.Timeclock, deps.OutputFilename, deps.Audit), active)

	// Route เช็คว่า API ทำงานอยู่
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("✅ API is running...")
	})
}

// authRoutes login/logout/signup
func authRoutes(app *fiber.App, h *controllers.AuthController) {
	auth := app.Group("/auth")
	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login) // 🔐 login
	auth.Post("/logout", middleware.AuthJWT, h.Logout)
}

func adminRoutes(app *fiber.App, h *controllers.AdminController, active fiber.Handler) {
	admin := app.Group("/admin", middleware.AuthJWT, active, middleware.RequireAdmin)
	admin.Get("/users", h.ListUsers)
	admin.Post("/users/:id/approve", h.ApproveUser)
	admin.Delete("/users/:id", h.DeleteUser)
	admin.Get("/uploads", h.ListUploads)
}

func shiftRoutes(app *fiber.App, h *controllers.ShiftController, active fiber.Handler) {
	shifts := app.Group("/shifts", middleware.AuthJWT, active)
	shifts.Post("/filter", h.FilterShifts)
}
