package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authcontroller "syndicapp_backend/internals/features/users/auth/controller"
	"syndicapp_backend/internals/middlewares"
	authmw "syndicapp_backend/internals/middlewares/auth"
)

// AuthRoutes mounts login and profile endpoints.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authcontroller.NewAuthController(db)

	auth := app.Group("/api/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	auth.Post("/syndic/login", middlewares.LoginRateLimiter(), ctl.SyndicLogin)
	auth.Post("/proprietaire/login", middlewares.LoginRateLimiter(), ctl.ProprietaireLogin)

	auth.Get("/profil", authmw.AuthMiddleware(), ctl.GetProfile)
}
