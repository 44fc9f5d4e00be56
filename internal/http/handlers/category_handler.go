package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"easyshop/internal/domain"
	"easyshop/internal/log"
	"easyshop/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(c.UserContext())
	if err != nil {
		return storeFailure(c, "category.list.error", err)
	}
	return c.JSON(cats)
}

// GET /categories/:id
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cat, err := h.Catalog.GetCategory(c.UserContext(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Category not found")
	}
	if err != nil {
		return storeFailure(c, "category.get.error", err)
	}
	return c.JSON(cat)
}

// GET /categories/:id/products
func (h *CategoryHandler) Products(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	prods, err := h.Catalog.ListProductsByCategory(c.UserContext(), id)
	if err != nil {
		return storeFailure(c, "category.products.error", err)
	}
	return c.JSON(prods)
}

// POST /categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in domain.Category
	if err := parseBody(c, &in); err != nil {
		return err
	}
	cat, err := h.Catalog.CreateCategory(c.UserContext(), in)
	if err != nil {
		return storeFailure(c, "category.create.error", err)
	}
	log.Audit(c, "category.create", map[string]any{"category_id": cat.ID})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PUT /categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var in domain.Category
	if err := parseBody(c, &in); err != nil {
		return err
	}
	if err := h.Catalog.UpdateCategory(c.UserContext(), id, in); err != nil {
		return storeFailure(c, "category.update.error", err)
	}
	log.Audit(c, "category.update", map[string]any{"category_id": id})
	return c.Status(fiber.StatusOK).Send(nil)
}

// DELETE /categories/:id
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.Catalog.DeleteCategory(c.UserContext(), id); err != nil {
		return storeFailure(c, "category.delete.error", err)
	}
	log.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
