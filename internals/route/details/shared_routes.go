package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	paymentcontroller "syndicapp_backend/internals/features/finance/payments/controller"
	notifcontroller "syndicapp_backend/internals/features/home/notifications/controller"
	proprietairecontroller "syndicapp_backend/internals/features/users/proprietaires/controller"
	authmw "syndicapp_backend/internals/middlewares/auth"
)

// SharedRoutes mounts endpoints available to any authenticated user,
// syndic or propriétaire.
func SharedRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	notifCtl := notifcontroller.NewNotificationController(db)
	paymentCtl := paymentcontroller.NewPaymentController(db, v)
	userCtl := proprietairecontroller.NewProprietaireController(db, v)

	api := app.Group("/api", authmw.AuthMiddleware())

	api.Get("/notifications", notifCtl.Mine)
	api.Patch("/notifications/toutes-lues", notifCtl.MarkAllRead)
	api.Patch("/notifications/:id/lue", notifCtl.MarkRead)
	api.Delete("/notifications/:id", notifCtl.Delete)
	api.Delete("/notifications", notifCtl.DeleteAll)

	api.Get("/payments/:id/recu", paymentCtl.Receipt)

	api.Put("/user/profil", userCtl.UpdateProfile)
	api.Patch("/user/mot-de-passe", userCtl.ChangePassword)
}
