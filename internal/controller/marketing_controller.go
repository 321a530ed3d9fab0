package controller

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/marketing"
	"doceria_backend/pkg/utils/jwt"
)

var marketingGenerator *marketing.Generator

func InitMarketingController(generator *marketing.Generator) {
	marketingGenerator = generator
}

type GenerateScheduleInput struct {
	BusinessType   string `json:"business_type" validate:"required"`
	TargetAudience string `json:"target_audience" validate:"required"`
	PeriodDays     int    `json:"period_days" validate:"required,min=7,max=30"`
	Focus          string `json:"focus" validate:"required"`
	Month          int    `json:"month" validate:"omitempty,min=1,max=12"`
	Year           int    `json:"year" validate:"omitempty,min=2024"`
}

func ListSchedules(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var schedules []model.MarketingSchedule
	if err := database.GetDB().
		Where("confectioner_id = ?", claims.ConfectionerID).
		Order("year DESC, month DESC").
		Limit(24).
		Find(&schedules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch schedules",
		})
	}

	return c.JSON(schedules)
}

// GenerateSchedule runs behind middleware.CheckGenerationLimit (plan
// feature switch + daily cap). One schedule per tenant/month/year;
// regenerating replaces the stored content.
func GenerateSchedule(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(GenerateScheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.BusinessType == "" || input.TargetAudience == "" || input.Focus == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Business type, target audience and focus are required",
		})
	}
	if input.PeriodDays < 7 || input.PeriodDays > 30 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Period must be between 7 and 30 days",
		})
	}

	now := time.Now()
	month := input.Month
	if month == 0 {
		month = int(now.Month())
	}
	year := input.Year
	if year == 0 {
		year = now.Year()
	}

	var confectioner model.Confectioner
	if err := database.GetDB().First(&confectioner, claims.ConfectionerID).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch account",
		})
	}

	posts, err := marketingGenerator.GenerateSchedule(c.Context(), marketing.ScheduleInput{
		BusinessType:   input.BusinessType,
		BusinessName:   confectioner.BusinessName,
		TargetAudience: input.TargetAudience,
		PeriodDays:     input.PeriodDays,
		Focus:          input.Focus,
	})
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Could not generate schedule, please try again",
		})
	}

	content, err := json.Marshal(posts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not encode schedule",
		})
	}

	schedule := model.MarketingSchedule{
		ConfectionerID: claims.ConfectionerID,
		Month:          month,
		Year:           year,
		Content:        datatypes.JSON(content),
	}

	if err := database.GetDB().Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "confectioner_id"},
			{Name: "month"},
			{Name: "year"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&schedule).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save schedule",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func DeleteSchedule(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	result := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		Delete(&model.MarketingSchedule{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete schedule",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Schedule not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Schedule deleted",
	})
}
