package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/utils/jwt"
)

type BatchInput struct {
	ProductID       *uint  `json:"product_id"`
	ProductName     string `json:"product_name" validate:"required"`
	PlannedQuantity int    `json:"planned_quantity" validate:"required,gt=0"`
	ProductionDate  string `json:"production_date" validate:"required"` // YYYY-MM-DD
	Notes           string `json:"notes"`
}

type CompleteBatchInput struct {
	ProducedQuantity int     `json:"produced_quantity" validate:"required,gte=0"`
	TotalCost        float64 `json:"total_cost" validate:"gte=0"`
}

func ListBatches(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	query := database.GetDB().
		Where("confectioner_id = ?", claims.ConfectionerID).
		Order("production_date ASC")

	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Date must be YYYY-MM-DD",
			})
		}
		query = query.Where("production_date = ?", day)
	}

	var batches []model.ProductionBatch
	if err := query.Find(&batches).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch production batches",
		})
	}

	return c.JSON(batches)
}

func CreateBatch(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(BatchInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.ProductName == "" || input.PlannedQuantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Product name and a positive planned quantity are required",
		})
	}

	productionDate, err := time.Parse("2006-01-02", input.ProductionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Production date must be YYYY-MM-DD",
		})
	}

	// When the batch references a product, its cost estimate comes from
	// the ingredient list.
	var totalCost float64
	if input.ProductID != nil {
		var product model.Product
		if err := database.GetDB().
			Where("id = ? AND confectioner_id = ?", *input.ProductID, claims.ConfectionerID).
			First(&product).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		if unitCost, err := product.IngredientCost(); err == nil {
			totalCost = unitCost * float64(input.PlannedQuantity)
		}
	}

	batch := model.ProductionBatch{
		ConfectionerID:  claims.ConfectionerID,
		ProductID:       input.ProductID,
		ProductName:     input.ProductName,
		PlannedQuantity: input.PlannedQuantity,
		ProductionDate:  productionDate,
		TotalCost:       totalCost,
		Status:          string(model.BatchPlanned),
		Notes:           input.Notes,
	}

	if err := database.GetDB().Create(&batch).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create production batch",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(batch)
}

func StartBatch(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var batch model.ProductionBatch
	if err := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		First(&batch).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	if batch.Status != string(model.BatchPlanned) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Only planned batches can be started",
		})
	}

	if err := database.GetDB().Model(&batch).
		Update("status", string(model.BatchInProgress)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not start batch",
		})
	}

	return c.JSON(batch)
}

// CompleteBatch records what actually came out of the oven and the
// real cost of the run.
func CompleteBatch(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(CompleteBatchInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.ProducedQuantity < 0 || input.TotalCost < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Produced quantity and total cost cannot be negative",
		})
	}

	var batch model.ProductionBatch
	if err := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		First(&batch).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	if batch.Status == string(model.BatchDone) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Batch already completed",
		})
	}

	updates := map[string]interface{}{
		"status":            string(model.BatchDone),
		"produced_quantity": input.ProducedQuantity,
	}
	if input.TotalCost > 0 {
		updates["total_cost"] = input.TotalCost
	}

	if err := database.GetDB().Model(&batch).Updates(updates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not complete batch",
		})
	}

	return c.JSON(batch)
}

func DeleteBatch(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	result := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		Delete(&model.ProductionBatch{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete batch",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Batch not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Batch deleted",
	})
}
