package details

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	chargecontroller "syndicapp_backend/internals/features/finance/charges/controller"
	paymentcontroller "syndicapp_backend/internals/features/finance/payments/controller"
	statscontroller "syndicapp_backend/internals/features/finance/stats/controller"
	reunioncontroller "syndicapp_backend/internals/features/meetings/reunions/controller"
	appartementcontroller "syndicapp_backend/internals/features/property/appartements/controller"
	immeublecontroller "syndicapp_backend/internals/features/property/immeubles/controller"
	usermodel "syndicapp_backend/internals/features/users/auth/model"
	proprietairecontroller "syndicapp_backend/internals/features/users/proprietaires/controller"
	authmw "syndicapp_backend/internals/middlewares/auth"
)

const syndicOnlyMsg = "Accès réservé au syndic"

// SyndicRoutes mounts every endpoint reserved to the syndic role.
func SyndicRoutes(app *fiber.App, db *gorm.DB, v *validator.Validate) {
	immeubleCtl := immeublecontroller.NewImmeubleController(db, v)
	appartementCtl := appartementcontroller.NewAppartementController(db, v)
	proprietaireCtl := proprietairecontroller.NewProprietaireController(db, v)
	chargeCtl := chargecontroller.NewChargeController(db, v)
	paymentCtl := paymentcontroller.NewPaymentController(db, v)
	reunionCtl := reunioncontroller.NewReunionController(db, v)
	statsCtl := statscontroller.NewStatsController(db)

	syndic := app.Group("/api/syndic",
		authmw.AuthMiddleware(),
		authmw.OnlyRoles(syndicOnlyMsg, usermodel.RoleSyndic),
	)

	// immeubles
	syndic.Post("/immeubles", immeubleCtl.Create)
	syndic.Get("/immeubles", immeubleCtl.List)
	syndic.Get("/immeubles/:id", immeubleCtl.GetByID)
	syndic.Put("/immeubles/:id", immeubleCtl.Update)
	syndic.Delete("/immeubles/:id", immeubleCtl.Delete)
	syndic.Get("/immeubles/:id/appartements", appartementCtl.ListByImmeuble)

	// appartements
	syndic.Post("/appartements", appartementCtl.Create)
	syndic.Get("/appartements/:id", appartementCtl.GetByID)
	syndic.Put("/appartements/:id", appartementCtl.Update)
	syndic.Patch("/appartements/:id/proprietaire", appartementCtl.AssignProprietaire)
	syndic.Delete("/appartements/:id", appartementCtl.Delete)
	syndic.Get("/appartements/:id/charges", chargeCtl.ListByAppartement)

	// propriétaires
	syndic.Post("/proprietaires", proprietaireCtl.Create)
	syndic.Get("/proprietaires", proprietaireCtl.List)
	syndic.Get("/proprietaires/:id", proprietaireCtl.GetByID)
	syndic.Put("/proprietaires/:id", proprietaireCtl.Update)
	syndic.Delete("/proprietaires/:id", proprietaireCtl.Delete)

	// charges
	syndic.Post("/charges", chargeCtl.Create)
	syndic.Get("/charges", chargeCtl.List)
	syndic.Get("/charges/:id", chargeCtl.GetByID)
	syndic.Put("/charges/:id", chargeCtl.Update)
	syndic.Delete("/charges/:id", chargeCtl.Delete)
	syndic.Post("/charges/:id/rappel", paymentCtl.Remind)

	// paiements
	syndic.Post("/payments", paymentCtl.Create)
	syndic.Get("/payments", paymentCtl.List)
	syndic.Get("/payments/en-attente", paymentCtl.Pending)
	syndic.Get("/payments/:id", paymentCtl.GetByID)
	syndic.Patch("/payments/:id/confirmer", paymentCtl.Confirm)
	syndic.Patch("/payments/:id/rejeter", paymentCtl.Reject)
	syndic.Delete("/payments/:id", paymentCtl.Delete)

	// réunions
	syndic.Post("/reunions", reunionCtl.Create)
	syndic.Get("/reunions", reunionCtl.List)
	syndic.Get("/reunions/:id", reunionCtl.GetByID)
	syndic.Put("/reunions/:id", reunionCtl.Update)
	syndic.Patch("/reunions/:id/annuler", reunionCtl.Cancel)
	syndic.Patch("/reunions/:id/terminer", reunionCtl.Complete)
	syndic.Patch("/reunions/:id/presences", reunionCtl.Attendance)
	syndic.Post("/reunions/:id/inviter", reunionCtl.Invite)
	syndic.Delete("/reunions/:id", reunionCtl.Delete)

	// statistiques
	syndic.Get("/stats/dashboard", statsCtl.Dashboard)
	syndic.Get("/stats/charges", statsCtl.ChargeStats)
	syndic.Get("/stats/paiements", statsCtl.PaymentStats)
	syndic.Get("/stats/proprietaires", statsCtl.ProprietaireStats)
	syndic.Get("/stats/appartements", statsCtl.AppartementStats)
}
