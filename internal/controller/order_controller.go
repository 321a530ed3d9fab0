package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"doceria_backend/internal/model"
	"doceria_backend/pkg/database"
	"doceria_backend/pkg/utils/jwt"
)

type OrderItemInput struct {
	ProductID   *uint   `json:"product_id"`
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"required,gte=0"`
}

type OrderInput struct {
	CustomerName  string           `json:"customer_name" validate:"required"`
	CustomerPhone string           `json:"customer_phone"`
	Channel       string           `json:"channel"`
	DeliveryDate  *time.Time       `json:"delivery_date"`
	Notes         string           `json:"notes"`
	Items         []OrderItemInput `json:"items"`
}

type OrderStatusInput struct {
	Status string `json:"status" validate:"required"`
}

func ListMyOrders(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	query := database.GetDB().
		Where("confectioner_id = ?", claims.ConfectionerID).
		Preload("Items").
		Order("created_at DESC")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not fetch orders",
		})
	}

	return c.JSON(orders)
}

func GetOrder(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var order model.Order
	if err := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		Preload("Items").
		First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	return c.JSON(order)
}

// CreateOrder runs behind middleware.CheckOrderLimit, which already
// verified the monthly quota for the tenant's plan.
func CreateOrder(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(OrderInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}
	if input.CustomerName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Customer name is required",
		})
	}

	channel := input.Channel
	if channel == "" {
		channel = string(model.ChannelWhatsApp)
	}

	order := model.Order{
		ConfectionerID: claims.ConfectionerID,
		CustomerName:   input.CustomerName,
		CustomerPhone:  input.CustomerPhone,
		Status:         string(model.OrderNew),
		Channel:        channel,
		DeliveryDate:   input.DeliveryDate,
		Notes:          input.Notes,
	}

	var total float64
	for _, item := range input.Items {
		if item.Quantity <= 0 || item.UnitPrice < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Items need a positive quantity and a non-negative unit price",
			})
		}
		order.Items = append(order.Items, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
		total += float64(item.Quantity) * item.UnitPrice
	}
	order.TotalAmount = total

	if err := database.GetDB().Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not create order",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// UpdateOrderStatus moves an order along the production workflow.
// Delivering an order writes the matching income line into the ledger.
func UpdateOrderStatus(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(OrderStatusInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid input",
		})
	}

	newStatus := model.OrderStatus(input.Status)
	if !model.ValidOrderStatus(newStatus) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown order status",
		})
	}

	var order model.Order
	if err := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if !model.CanTransition(model.OrderStatus(order.Status), newStatus) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Order cannot move from " + order.Status + " to " + input.Status,
		})
	}

	if err := database.GetDB().Model(&order).Update("status", string(newStatus)).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not update order status",
		})
	}

	if newStatus == model.OrderDelivered && order.TotalAmount > 0 {
		orderID := order.ID
		tx := model.Transaction{
			ConfectionerID: claims.ConfectionerID,
			Type:           string(model.TransactionIncome),
			Category:       "vendas",
			Description:    "Pedido de " + order.CustomerName,
			Amount:         order.TotalAmount,
			Date:           time.Now(),
			OrderID:        &orderID,
		}
		if err := database.GetDB().Create(&tx).Error; err != nil {
			// The status change already committed; the ledger line can
			// be re-entered by hand.
			c.Status(fiber.StatusOK)
			return c.JSON(fiber.Map{
				"order":   order,
				"warning": "Order delivered but the income entry failed to save",
			})
		}
	}

	return c.JSON(order)
}

func DeleteOrder(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	var order model.Order
	if err := database.GetDB().
		Where("id = ? AND confectioner_id = ?", c.Params("id"), claims.ConfectionerID).
		First(&order).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Order not found",
		})
	}

	if err := database.GetDB().Select("Items").Delete(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not delete order",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order deleted",
	})
}
