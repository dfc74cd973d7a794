package handlers

import (
	"errors"
	"strconv"
	"time"

	"spendbook/internal/dto"
	"spendbook/internal/models"
	"spendbook/internal/service"
	"spendbook/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpenseHandler struct {
	expenseService *service.ExpenseService
	logger         *zap.Logger
}

func NewExpenseHandler(expenseService *service.ExpenseService, logger *zap.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
		logger:         logger,
	}
}

// List godoc
// @Summary List expenses
// @Description Page through expenses with optional category and date filters
// @Tags expenses
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param category_id query int false "Category filter"
// @Param start_date query string false "Inclusive lower creation-date bound (RFC 3339 or YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper creation-date bound"
// @Param sort_by query string false "Sort field: created_at, amount or note" default(created_at)
// @Param sort_order query string false "asc or desc" default(desc)
// @Security Bearer
// @Success 200 {object} dto.ExpenseListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	filter := &models.ExpenseFilter{
		Page:      c.QueryInt("page", 1),
		Limit:     c.QueryInt("limit", 20),
		SortBy:    c.Query("sort_by", "created_at"),
		SortOrder: c.Query("sort_order", "desc"),
	}

	if err := validation.Pagination(filter.Page, filter.Limit); err != nil {
		return badRequest(c, err.Error())
	}
	if err := validation.SortField(filter.SortBy); err != nil {
		return badRequest(c, err.Error())
	}
	if err := validation.SortOrder(filter.SortOrder); err != nil {
		return badRequest(c, err.Error())
	}

	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(c, "Invalid category ID")
		}
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return badRequest(c, "Invalid start date")
		}
		filter.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return badRequest(c, "Invalid end date")
		}
		filter.EndDate = &t
	}

	expenses, total, err := h.expenseService.List(c.Context(), userID, filter)
	if err != nil {
		h.logger.Error("Failed to list expenses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch expenses",
		})
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return c.JSON(dto.ExpenseListResponse{
		Expenses: dto.FromExpenses(expenses),
		Pagination: dto.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    int64(filter.Page)*int64(filter.Limit) < total,
			HasPrev:    filter.Page > 1,
		},
	})
}

// Get godoc
// @Summary Get an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 200 {object} dto.ExpenseEnvelope
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id} [get]
func (h *ExpenseHandler) Get(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid expense ID")
	}

	expense, err := h.expenseService.Get(c.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Expense not found",
			})
		}
		h.logger.Error("Failed to fetch expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch expense",
		})
	}

	return c.JSON(dto.ExpenseEnvelope{Expense: dto.FromExpense(expense)})
}

// Create godoc
// @Summary Create an expense
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body dto.CreateExpenseRequest true "Expense"
// @Security Bearer
// @Success 201 {object} dto.ExpenseEnvelope
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON in request body")
	}

	if req.Amount == nil {
		return badRequest(c, validation.ErrAmountRequired.Error())
	}
	if err := validation.Amount(*req.Amount); err != nil {
		return badRequest(c, err.Error())
	}
	if req.Note != nil {
		if err := validation.Note(*req.Note); err != nil {
			return badRequest(c, err.Error())
		}
	}

	expense, err := h.expenseService.Create(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		h.logger.Error("Failed to create expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create expense",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ExpenseEnvelope{
		Message: "Expense created successfully",
		Expense: dto.FromExpense(expense),
	})
}

// Update godoc
// @Summary Update an expense
// @Description Partial update: only the provided fields change
// @Tags expenses
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body dto.UpdateExpenseRequest true "Fields to change"
// @Security Bearer
// @Success 200 {object} dto.ExpenseEnvelope
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id} [put]
func (h *ExpenseHandler) Update(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid expense ID")
	}

	var req dto.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid JSON in request body")
	}

	if req.Amount != nil {
		if err := validation.Amount(*req.Amount); err != nil {
			return badRequest(c, err.Error())
		}
	}
	if req.Note != nil {
		if err := validation.Note(*req.Note); err != nil {
			return badRequest(c, err.Error())
		}
	}

	expense, err := h.expenseService.Update(c.Context(), userID, id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Expense not found",
			})
		case errors.Is(err, service.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Category not found",
			})
		}
		h.logger.Error("Failed to update expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update expense",
		})
	}

	return c.JSON(dto.ExpenseEnvelope{
		Message: "Expense updated successfully",
		Expense: dto.FromExpense(expense),
	})
}

// Delete godoc
// @Summary Delete an expense
// @Tags expenses
// @Produce json
// @Param id path string true "Expense ID"
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid expense ID")
	}

	if err := h.expenseService.Delete(c.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Expense not found",
			})
		}
		h.logger.Error("Failed to delete expense", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete expense",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Expense deleted successfully",
	})
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
