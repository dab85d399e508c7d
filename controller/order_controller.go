package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"store-service/middleware"
	"store-service/service"
)

type OrderController struct {
	orders *service.OrderService
}

func NewOrderController(orders *service.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

type BulkOrderRequest struct {
	Orders []service.OrderLine `json:"orders"`
}

func (oc *OrderController) CreateOrder(c *fiber.Ctx) error {
	var body service.OrderLine
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payload"})
	}

	if _, err := oc.orders.PlaceOrder(c.UserContext(), middleware.UserID(c), body); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Order created successfully"})
}

func (oc *OrderController) ListOrders(c *fiber.Ctx) error {
	orders, err := oc.orders.ListOrders(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"orders": orders})
}

func (oc *OrderController) ProcessBulkOrders(c *fiber.Ctx) error {
	var body BulkOrderRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid payload"})
	}

	result, err := oc.orders.ProcessBulkOrders(c.UserContext(), middleware.UserID(c), body.Orders)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"processed_orders": result.ProcessedOrders,
		"total_revenue":    result.TotalRevenue,
		"message":          fmt.Sprintf("Processed %d orders.", len(result.ProcessedOrders)),
	})
}
