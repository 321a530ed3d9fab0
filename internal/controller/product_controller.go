package controller

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/utils/jwt"
)

type ProductInput struct {
	Name        string             `json:"name" validate:"required"`
	Description string             `json:"description"`
	Price       float64            `json:"price" validate:"required,gte=0"`
	Category    string             `json:"category"`
	Active      *bool              `json:"active"`
	Ingredients []model.Ingredient `json:"ingredients"`
}

func productResponse(p *model.Product) fiber.Map {
	return fiber.Map{
		"product":        p,
		"margin_percent": p.MarginPercent(),
	}
}

// applyProductInput merges a partial update payload into the product.
// Absent fields keep their stored values; a present ingredient list
// also refreshes the stored cost.
func applyProductInput(product *model.Product, input *ProductInput) error {
	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Price > 0 {
		product.Price = input.Price
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.Ingredients != nil {
		raw, err := json.Marshal(input.Ingredients)
		if err != nil {
			return err
		}
		product.Ingredients = datatypes.JSON(raw)
		if cost, err := product.IngredientCost(); err == nil {
			product.Cost = cost
		}
	}
	return nil
}

func ListMyProducts(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var products []model.Product
	if err := database.GetDB().
		Where("confectioner_id = ?", claims.ConfectionerID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch products",
		})
	}

	return c.JSON(products)
}

func GetProduct(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var product model.Product
	if err := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(productResponse(&product))
}

func CreateProduct(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(ProductInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.Name == "" || input.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name and a non-negative price are required",
		})
	}

	product := model.Product{
		ConfectionerID: claims.ConfectionerID,
		Name:           input.Name,
		Description:    input.Description,
		Price:          input.Price,
		Category:       input.Category,
		Active:         true,
	}
	if input.Active != nil {
		product.Active = *input.Active
	}

	if len(input.Ingredients) > 0 {
		raw, err := json.Marshal(input.Ingredients)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid ingredient list",
			})
		}
		product.Ingredients = datatypes.JSON(raw)
	}

	// The stored cost follows the ingredient list.
	if cost, err := product.IngredientCost(); err == nil {
		product.Cost = cost
	}

	if err := database.GetDB().Create(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(productResponse(&product))
}

func UpdateProduct(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var product model.Product
	if err := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	input := new(ProductInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	if err := applyProductInput(&product, input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid ingredient list",
		})
	}

	if err := database.GetDB().Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update product",
		})
	}

	return c.JSON(productResponse(&product))
}

func DeleteProduct(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	result := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		Delete(&model.Product{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete product",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted",
	})
}
