package controller

import (
	"github.com/gofiber/fiber/v2"

	"store-service/service"
)

type ProductController struct {
	catalog           *service.Catalog
	lowStockThreshold int
}

func NewProductController(catalog *service.Catalog, lowStockThreshold int) *ProductController {
	return &ProductController{catalog: catalog, lowStockThreshold: lowStockThreshold}
}

func (pc *ProductController) ListProducts(c *fiber.Ctx) error {
	products, err := pc.catalog.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

func (pc *ProductController) GetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.ErrNotFound
	}

	product, err := pc.catalog.Get(c.UserContext(), uint(id))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"product": product})
}

// InventoryReport accepts ?threshold= to override the low-stock cut-off.
func (pc *ProductController) InventoryReport(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", pc.lowStockThreshold)
	if threshold < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "threshold must not be negative"})
	}

	report, err := pc.catalog.InventoryReport(c.UserContext(), threshold)
	if err != nil {
		return err
	}
	return c.JSON(report)
}
