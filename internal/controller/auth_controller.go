package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/plan"
	"doceria_backend/pkg/utils/jwt"
)

type RegisterInput struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	BusinessName string `json:"business_name" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OnboardingInput struct {
	Phone string `json:"phone"`
	City  string `json:"city"`
}

// Register creates the tenant account. Every new confectioner starts
// on the free plan; only the billing state machine moves them off it.
func Register(c *fiber.Ctx) error {
	input := new(RegisterInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if input.Name == "" || input.Email == "" || len(input.Password) < 6 || input.BusinessName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name, email, business name and a password of at least 6 characters are required",
		})
	}

	var existing model.Confectioner
	if err := database.GetDB().Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email already exists",
		})
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not hash password",
		})
	}

	confectioner := model.Confectioner{
		Name:         input.Name,
		Email:        input.Email,
		Password:     string(hashedPassword),
		BusinessName: input.BusinessName,
		Plan:         string(plan.Free),
	}

	if err := database.GetDB().Create(&confectioner).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create account",
		})
	}

	token, err := jwt.GenerateToken(confectioner.ID, confectioner.Email, confectioner.BusinessName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"token":   token,
		"user":    confectioner.GetPublicProfile(),
	})
}

func Login(c *fiber.Ctx) error {
	input := new(LoginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	var confectioner model.Confectioner
	if err := database.GetDB().Where("email = ?", input.Email).First(&confectioner).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(confectioner.Password), []byte(input.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := jwt.GenerateToken(confectioner.ID, confectioner.Email, confectioner.BusinessName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not generate token",
		})
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  confectioner.GetPublicProfile(),
	})
}

func GetMe(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var confectioner model.Confectioner
	if err := database.GetDB().First(&confectioner, claims.ConfectionerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Account not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch account",
		})
	}

	def := plan.Get(confectioner.PlanID())
	return c.JSON(fiber.Map{
		"user": confectioner.GetPublicProfile(),
		"plan": def,
	})
}

// CompleteOnboarding stores the optional profile fields collected by
// the onboarding wizard.
func CompleteOnboarding(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(OnboardingInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	updates := map[string]interface{}{
		"phone":               input.Phone,
		"city":                input.City,
		"onboarding_complete": true,
	}
	if err := database.GetDB().Model(&model.Confectioner{}).
		Where("id = ?", claims.ConfectionerID).
		Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Onboarding complete",
	})
}
