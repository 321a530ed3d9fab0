package controller

import (
	"github.com/gofiber/fiber/v2"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	imageutil "doceria_backend/pkg/utils/image"
	"doceria_backend/pkg/utils/jwt"
	"doceria_backend/pkg/utils/storage"
	"doceria_backend/pkg/utils/validation"
)

// UploadProductPhoto validates, re-encodes and stores a product photo,
// then points the product row at it.
func UploadProductPhoto(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var product model.Product
	if err := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("product_id"), claims.ConfectionerID).
		First(&product).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No photo provided",
		})
	}

	if err := validation.ValidateImage(file); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	processed, contentType, err := imageutil.ProcessImage(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not process image",
		})
	}

	url, err := storage.UploadProductPhoto(processed, contentType, claims.BusinessName, product.Name, file.Filename)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not upload photo",
		})
	}

	// A replaced photo is removed from storage on a best-effort basis.
	oldURL := product.PhotoURL
	if err := database.GetDB().Model(&product).Update("photo_url", url).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save photo URL",
		})
	}
	if oldURL != "" {
		storage.DeletePhoto(oldURL)
	}

	return c.JSON(fiber.Map{
		"photo_url": url,
	})
}
