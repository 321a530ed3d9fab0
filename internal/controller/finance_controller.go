package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/utils/jwt"
)

type TransactionInput struct {
	Type        string  `json:"type" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Date        string  `json:"date"` // YYYY-MM-DD, defaults to today
}

func ListTransactions(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	query := database.GetDB().
		Where("confectioner_id = ?", claims.ConfectionerID).
		Order("date DESC, created_at DESC")

	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
	}

	var transactions []model.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch transactions",
		})
	}

	return c.JSON(transactions)
}

func CreateTransaction(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(TransactionInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	txType := model.TransactionType(input.Type)
	if txType != model.TransactionIncome && txType != model.TransactionExpense {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Type must be receita or despesa",
		})
	}
	if input.Category == "" || input.Amount <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Category and a positive amount are required",
		})
	}

	date := time.Now()
	if input.Date != "" {
		parsed, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Date must be YYYY-MM-DD",
			})
		}
		date = parsed
	}

	tx := model.Transaction{
		ConfectionerID: claims.ConfectionerID,
		Type:           string(txType),
		Category:       input.Category,
		Description:    input.Description,
		Amount:         input.Amount,
		Date:           date,
	}

	if err := database.GetDB().Create(&tx).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create transaction",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

func DeleteTransaction(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	result := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		Delete(&model.Transaction{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete transaction",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Transaction not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Transaction deleted",
	})
}

// GetFinancialSummary aggregates the ledger over a period (current
// month by default). Protected by middleware.CheckAdvancedReports when
// mounted under /reports.
func GetFinancialSummary(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	now := time.Now()
	periodStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	periodEnd := periodStart.AddDate(0, 1, 0)

	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "from must be YYYY-MM-DD",
			})
		}
		periodStart = parsed
	}
	if to := c.Query("to"); to != "" {
		parsed, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "to must be YYYY-MM-DD",
			})
		}
		periodEnd = parsed.AddDate(0, 0, 1)
	}

	db := database.GetDB()
	var summary model.FinancialSummary

	if err := db.Model(&model.Transaction{}).
		Where("confectioner_id = ? AND type = ? AND date >= ? AND date < ?",
			claims.ConfectionerID, string(model.TransactionIncome), periodStart, periodEnd).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalIncome).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not compute summary",
		})
	}

	if err := db.Model(&model.Transaction{}).
		Where("confectioner_id = ? AND type = ? AND date >= ? AND date < ?",
			claims.ConfectionerID, string(model.TransactionExpense), periodStart, periodEnd).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.TotalExpenses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not compute summary",
		})
	}

	if err := db.Model(&model.Transaction{}).
		Where("confectioner_id = ? AND type = ? AND order_id IS NOT NULL AND date >= ? AND date < ?",
			claims.ConfectionerID, string(model.TransactionIncome), periodStart, periodEnd).
		Count(&summary.PaidOrdersCount).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not compute summary",
		})
	}

	summary.NetProfit = summary.TotalIncome - summary.TotalExpenses
	if summary.PaidOrdersCount > 0 {
		summary.AverageTicket = summary.TotalIncome / float64(summary.PaidOrdersCount)
	}

	return c.JSON(summary)
}
