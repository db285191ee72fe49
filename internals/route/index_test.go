package routes

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// Registration only touches the DB handle at request time, so a nil
// *gorm.DB is enough to assert the route table.
func TestSetupRoutes_RegistersExpectedEndpoints(t *testing.T) {
	app := fiber.New()
	SetupRoutes(app, nil)

	registered := map[string]bool{}
	for _, r := range app.GetRoutes() {
		registered[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"GET /health",
		"POST /api/auth/login",
		"POST /api/auth/syndic/login",
		"POST /api/auth/proprietaire/login",
		"GET /api/auth/profil",
		"POST /api/syndic/charges",
		"POST /api/syndic/charges/:id/rappel",
		"POST /api/syndic/payments",
		"GET /api/syndic/payments/en-attente",
		"GET /api/syndic/payments/:id",
		"PATCH /api/syndic/payments/:id/confirmer",
		"PATCH /api/syndic/payments/:id/rejeter",
		"GET /api/syndic/stats/dashboard",
		"GET /api/syndic/stats/charges",
		"GET /api/syndic/stats/paiements",
		"GET /api/syndic/stats/proprietaires",
		"GET /api/syndic/stats/appartements",
		"GET /api/proprietaire/charges",
		"GET /api/proprietaire/payments/historique",
		"GET /api/payments/:id/recu",
		"PUT /api/user/profil",
		"PATCH /api/user/mot-de-passe",
	}
	for _, want := range expected {
		assert.Truef(t, registered[want], "route manquante: %s", want)
	}
}
