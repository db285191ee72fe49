package routes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"syndicapp_backend/internals/configs"
	details "syndicapp_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes wires every route group onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()
	v := validator.New()

	configs.Log.Info("montage des routes de base")
	BaseRoutes(app, db)

	configs.Log.Info("montage des routes d'authentification")
	details.AuthRoutes(app, db)

	configs.Log.Info("montage des routes syndic")
	details.SyndicRoutes(app, db, v)

	configs.Log.Info("montage des routes propriétaire")
	details.ProprietaireRoutes(app, db, v)

	configs.Log.Info("montage des routes partagées")
	details.SharedRoutes(app, db, v)
}
