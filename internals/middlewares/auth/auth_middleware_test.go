package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndicapp_backend/internals/configs"
)

const testSecret = "secret-de-test"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func testApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals("user_id"),
			"role":    c.Locals("userRole"),
		})
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	configs.JWTSecret = testSecret
	userID := uuid.New()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name: "valid token",
			authHeader: "Bearer " + signToken(t, jwt.MapClaims{
				"id":   userID.String(),
				"role": "syndic",
				"exp":  time.Now().Add(time.Hour).Unix(),
				"iat":  time.Now().Unix(),
			}),
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			authHeader: "Bearer not-a-jwt",
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name: "expired token",
			authHeader: "Bearer " + signToken(t, jwt.MapClaims{
				"id":   userID.String(),
				"role": "syndic",
				"exp":  time.Now().Add(-time.Hour).Unix(),
				"iat":  time.Now().Add(-2 * time.Hour).Unix(),
			}),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name: "token without user id",
			authHeader: "Bearer " + signToken(t, jwt.MapClaims{
				"role": "syndic",
				"exp":  time.Now().Add(time.Hour).Unix(),
			}),
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	app := testApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodGet, "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestOnlyRoles(t *testing.T) {
	configs.JWTSecret = testSecret

	app := fiber.New()
	app.Get("/syndic-only", AuthMiddleware(), OnlyRoles("réservé au syndic", "syndic"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	token := func(role string) string {
		return "Bearer " + signToken(t, jwt.MapClaims{
			"id":   uuid.NewString(),
			"role": role,
			"exp":  time.Now().Add(time.Hour).Unix(),
		})
	}

	req := httptest.NewRequest(fiber.MethodGet, "/syndic-only", nil)
	req.Header.Set(fiber.HeaderAuthorization, token("syndic"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(fiber.MethodGet, "/syndic-only", nil)
	req.Header.Set(fiber.HeaderAuthorization, token("proprietaire"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
