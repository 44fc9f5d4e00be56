package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"easyshop/internal/domain"
	"easyshop/internal/log"
	"easyshop/internal/services"
	"easyshop/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// searchFilter reads the optional query parameters. Absent or empty
// parameters leave their dimension unset; unparsable numbers are a 400.
func searchFilter(c *fiber.Ctx) (domain.ProductFilter, error) {
	var f domain.ProductFilter
	bad := func(field string) error {
		log.Security(c, "validation.fail", map[string]any{"field": field, "value": c.Query(field)})
		return fiber.NewError(fiber.StatusBadRequest, "Invalid "+field)
	}

	if raw := c.Query("categoryId"); raw != "" {
		id, ok := validate.Int(raw)
		if !ok {
			return f, bad("categoryId")
		}
		f.CategoryID = &id
	}
	if raw := c.Query("minPrice"); raw != "" {
		d, ok := validate.Decimal(raw)
		if !ok {
			return f, bad("minPrice")
		}
		f.MinPrice = &d
	}
	if raw := c.Query("maxPrice"); raw != "" {
		d, ok := validate.Decimal(raw)
		if !ok {
			return f, bad("maxPrice")
		}
		f.MaxPrice = &d
	}
	if color := c.Query("color"); color != "" {
		f.Color = &color
	}
	if name := c.Query("name"); name != "" {
		f.Name = &name
	}
	return f, nil
}

// GET /products
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	f, err := searchFilter(c)
	if err != nil {
		return err
	}
	prods, err := h.Catalog.Search(c.UserContext(), f)
	if err != nil {
		return storeFailure(c, "product.search.error", err)
	}
	return c.JSON(prods)
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.Catalog.GetProduct(c.UserContext(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	}
	if err != nil {
		return storeFailure(c, "product.get.error", err)
	}
	return c.JSON(p)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in domain.Product
	if err := parseBody(c, &in); err != nil {
		return err
	}
	p, err := h.Catalog.CreateProduct(c.UserContext(), in)
	if errors.Is(err, domain.ErrPriceRange) {
		return fiber.NewError(fiber.StatusBadRequest, "Price out of range")
	}
	if err != nil {
		return storeFailure(c, "product.create.error", err)
	}
	log.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in domain.Product
	if err := parseBody(c, &in); err != nil {
		return err
	}
	err = h.Catalog.UpdateProduct(c.UserContext(), id, in)
	if errors.Is(err, domain.ErrPriceRange) {
		return fiber.NewError(fiber.StatusBadRequest, "Price out of range")
	}
	if err != nil {
		return storeFailure(c, "product.update.error", err)
	}
	log.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.Status(fiber.StatusOK).Send(nil)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteProduct(c.UserContext(), id); err != nil {
		return storeFailure(c, "product.delete.error", err)
	}
	log.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
