package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/plan"
	"doceria_backend/pkg/utils/jwt"
)

// monthBounds returns the calendar-month window containing now.
func monthBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 1, 0)
}

// dayStart returns midnight of the current day.
func dayStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// loadPlan reads the tenant's current plan. The usage count is always
// recomputed alongside it at decision time; neither is cached.
func loadPlan(confectionerID uint) (plan.Definition, error) {
	var c model.Confectioner
	if err := database.GetDB().First(&c, confectionerID).Error; err != nil {
		return plan.Definition{}, err
	}
	return plan.Get(c.PlanID()), nil
}

// CheckOrderLimit refuses order creation once the plan's monthly order
// quota is used up. A persistence failure denies conservatively with a
// retryable status, never allows.
func CheckOrderLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		def, err := loadPlan(claims.ConfectionerID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Could not verify subscription, please retry",
			})
		}

		periodStart, periodEnd := monthBounds(time.Now())
		var ordersThisMonth int64
		if err := database.GetDB().Model(&model.Order{}).
			Where("confectioner_id = ? AND created_at >= ? AND created_at < ?",
				claims.ConfectionerID, periodStart, periodEnd).
			Count(&ordersThisMonth).Error; err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Could not verify order quota, please retry",
			})
		}

		if !plan.CanCreateOrder(def, int(ordersThisMonth)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":         "Monthly order limit reached. Upgrade your plan for unlimited orders.",
				"current_count": ordersThisMonth,
				"max_limit":     def.MonthlyOrderLimit,
			})
		}

		return c.Next()
	}
}

// CheckGenerationLimit gates AI schedule generation: the plan must
// include the feature and the fixed daily cap must not be hit yet.
func CheckGenerationLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		def, err := loadPlan(claims.ConfectionerID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Could not verify subscription, please retry",
			})
		}

		if def.MonthlyGenerationLimit <= 0 {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "AI marketing schedules require the Starter plan or higher",
			})
		}

		var generationsToday int64
		if err := database.GetDB().Model(&model.MarketingSchedule{}).
			Where("confectioner_id = ? AND created_at >= ?", claims.ConfectionerID, dayStart(time.Now())).
			Count(&generationsToday).Error; err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Could not verify generation quota, please retry",
			})
		}

		if !plan.CanGenerateContent(def, int(generationsToday)) {
			tomorrow := dayStart(time.Now()).AddDate(0, 0, 1)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":    "Daily limit of 5 schedules reached. Try again tomorrow.",
				"retry_at": tomorrow.Format(time.RFC3339),
			})
		}

		return c.Next()
	}
}

// CheckAdvancedReports restricts advanced report endpoints to plans
// carrying the flag.
func CheckAdvancedReports() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals("user").(*jwt.Claims)

		def, err := loadPlan(claims.ConfectionerID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Could not verify subscription, please retry",
			})
		}

		if !plan.CanViewAdvancedReports(def) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Advanced reports require the Pro plan",
			})
		}

		return c.Next()
	}
}
