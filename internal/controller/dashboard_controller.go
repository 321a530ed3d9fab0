package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/utils/jwt"
)

// GetDashboardMetrics returns the month-to-date numbers the dashboard
// widgets show.
func GetDashboardMetrics(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)
	db := database.GetDB()

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var totalOrders, pendingOrders, inProductionOrders int64

	if err := db.Model(&model.Order{}).
		Where("confectioner_id = ? AND created_at >= ?", claims.ConfectionerID, monthStart).
		Count(&totalOrders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch metrics",
		})
	}

	db.Model(&model.Order{}).
		Where("confectioner_id = ? AND status IN ?", claims.ConfectionerID,
			[]string{string(model.OrderNew), string(model.OrderConfirmed)}).
		Count(&pendingOrders)

	db.Model(&model.Order{}).
		Where("confectioner_id = ? AND status = ?", claims.ConfectionerID, string(model.OrderInProgress)).
		Count(&inProductionOrders)

	var monthIncome, monthExpenses float64
	db.Model(&model.Transaction{}).
		Where("confectioner_id = ? AND type = ? AND date >= ?",
			claims.ConfectionerID, string(model.TransactionIncome), monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&monthIncome)
	db.Model(&model.Transaction{}).
		Where("confectioner_id = ? AND type = ? AND date >= ?",
			claims.ConfectionerID, string(model.TransactionExpense), monthStart).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&monthExpenses)

	var recentOrders []model.Order
	db.Where("confectioner_id = ?", claims.ConfectionerID).
		Order("created_at DESC").
		Limit(5).
		Find(&recentOrders)

	return c.JSON(fiber.Map{
		"total_orders":         totalOrders,
		"pending_orders":       pendingOrders,
		"orders_in_production": inProductionOrders,
		"month_income":         monthIncome,
		"month_expenses":       monthExpenses,
		"month_profit":         monthIncome - monthExpenses,
		"recent_orders":        recentOrders,
	})
}
