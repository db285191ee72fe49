package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	chargecontroller "syndicapp_backend/internals/features/finance/charges/controller"
	paymentcontroller "syndicapp_backend/internals/features/finance/payments/controller"
	reunioncontroller "syndicapp_backend/internals/features/meetings/reunions/controller"
	appartementcontroller "syndicapp_backend/internals/features/property/appartements/controller"
	usermodel "syndicapp_backend/internals/features/users/auth/model"
	authmw "syndicapp_backend/internals/middlewares/auth"
)

const proprietaireOnlyMsg = "Accès réservé aux propriétaires"

// ProprietaireRoutes mounts the owner-facing endpoints.
func ProprietaireRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	appartementCtl := appartementcontroller.NewAppartementController(db, v)
	chargeCtl := chargecontroller.NewChargeController(db, v)
	paymentCtl := paymentcontroller.NewPaymentController(db, v)
	reunionCtl := reunioncontroller.NewReunionController(db, v)

	owner := app.Group("/api/proprietaire",
		authmw.AuthMiddleware(),
		authmw.OnlyRoles(proprietaireOnlyMsg, usermodel.RoleProprietaire),
	)

	owner.Get("/appartements", appartementCtl.MyAppartements)
	owner.Get("/charges", chargeCtl.MyCharges)

	owner.Post("/payments", paymentCtl.Create)
	owner.Get("/payments", paymentCtl.MyPayments)
	owner.Get("/payments/historique", paymentCtl.History)

	owner.Get("/reunions", reunionCtl.MyInvitations)
	owner.Patch("/invitations/:id", reunionCtl.RSVP)
}
