package handlers

import (
	"errors"
	"strconv"

	"spendbook/internal/dto"
	"spendbook/internal/service"
	"spendbook/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
	logger          *zap.Logger
}

func NewCategoryHandler(categoryService *service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

func parseCategoryID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// List godoc
// @Summary List categories
// @Description Get all categories for the authenticated user, ordered by name
// @Tags categories
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.CategoryListResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	categories, err := h.categoryService.List(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch categories",
		})
	}

	resp := dto.CategoryListResponse{
		Categories: dto.FromCategories(categories),
		Count:      len(categories),
	}
	return c.JSON(resp)
}

// Get godoc
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Security Bearer
// @Success 200 {object} dto.CategoryEnvelope
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id} [get]
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseCategoryID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	cat, err := h.categoryService.Get(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		h.logger.Error("Failed to fetch category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch category",
		})
	}

	return c.JSON(dto.CategoryEnvelope{Category: dto.FromCategory(cat)})
}

// Create godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Security Bearer
// @Success 201 {object} dto.CategoryEnvelope
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON in request body")
	}
	if req.Name == nil {
		return badRequest(c, validation.ErrNameRequired.Error())
	}
	if err := validation.CategoryName(*req.Name); err != nil {
		return badRequest(c, err.Error())
	}

	cat, err := h.categoryService.Create(c.Context(), userID, *req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateCategory) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A category with this name already exists",
			})
		}
		h.logger.Error("Failed to create category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CategoryEnvelope{
		Message:  "Category created successfully",
		Category: dto.FromCategory(cat),
	})
}

// Update godoc
// @Summary Rename a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Category"
// @Security Bearer
// @Success 200 {object} dto.CategoryEnvelope
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/v1/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseCategoryID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON in request body")
	}
	if req.Name == nil {
		return badRequest(c, validation.ErrNameRequired.Error())
	}
	if err := validation.CategoryName(*req.Name); err != nil {
		return badRequest(c, err.Error())
	}

	cat, err := h.categoryService.Update(c.Context(), userID, id, *req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		case errors.Is(err, service.ErrDuplicateCategory):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A category with this name already exists",
			})
		}
		h.logger.Error("Failed to update category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update category",
		})
	}

	return c.JSON(dto.CategoryEnvelope{
		Message:  "Category updated successfully",
		Category: dto.FromCategory(cat),
	})
}

// Delete godoc
// @Summary Delete a category
// @Description Delete a category that has no expenses referencing it
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseCategoryID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	if err := h.categoryService.Delete(c.Context(), userID, id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		case errors.Is(err, service.ErrCategoryInUse):
			return badRequest(c, "Cannot delete category that has associated expenses")
		}
		h.logger.Error("Failed to delete category", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete category",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}

// Spending godoc
// @Summary Category spending for a period
// @Description Sum of the category's expenses since the period start
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Param period query string false "Period: month or year" default(month)
// @Security Bearer
// @Success 200 {object} dto.SpendingResponse
// @Failure 404 {object} map[string]string
// @Router /api/v1/categories/{id}/spending [get]
func (h *CategoryHandler) Spending(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := parseCategoryID(c)
	if err != nil {
		return badRequest(c, "Invalid category ID")
	}

	period := c.Query("period", "month")

	total, err := h.categoryService.Spending(c.Context(), userID, id, period)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		h.logger.Error("Failed to fetch category spending", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch spending",
		})
	}

	return c.JSON(dto.SpendingResponse{TotalSpending: total})
}
