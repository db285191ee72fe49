package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"syndicapp_backend/internals/configs"
	dto "syndicapp_backend/internals/features/users/auth/dto"
	model "syndicapp_backend/internals/features/users/auth/model"
	helper "syndicapp_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db, Validator: validator.New()}
}

// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	return h.login(c, "")
}

// POST /api/auth/syndic/login
func (h *AuthController) SyndicLogin(c *fiber.Ctx) error {
	return h.login(c, model.RoleSyndic)
}

// POST /api/auth/proprietaire/login
func (h *AuthController) ProprietaireLogin(c *fiber.Ctx) error {
	return h.login(c, model.RoleProprietaire)
}

func (h *AuthController) login(c *fiber.Ctx, requiredRole string) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json: "+err.Error())
	}
	if err := h.Validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var user model.UserModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&user, "user_email = ?", req.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if requiredRole != "" && user.Role != requiredRole {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Compte désactivé")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Email ou mot de passe incorrect")
	}

	token, err := IssueToken(&user)
	if err != nil {
		configs.Log.Errorf("token sign failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "token generation failed")
	}

	return helper.JsonOK(c, "Connexion réussie", dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(&user),
	})
}

// GET /api/auth/profile
func (h *AuthController) GetProfile(c *fiber.Ctx) error {
	userID, err := helper.GetUserUUID(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := h.DB.WithContext(c.UserContext()).
		First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Utilisateur non trouvé")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonOK(c, "ok", dto.ToUserResponse(&user))
}

// IssueToken signs the access JWT carrying id + role claims.
func IssueToken(user *model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"id":        user.ID.String(),
		"role":      user.Role,
		"user_name": user.FullName(),
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
