package handler

import (
	"errors"
	"net/http"

	"restaurant-orders/internal/dto"
	"restaurant-orders/internal/model"
	"restaurant-orders/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type MenuHandler struct {
	menuService service.MenuService
}

func NewMenuHandler(menuService service.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
	}
}

func (h *MenuHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.menuService.ListMenu(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *MenuHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	item, err := h.menuService.GetMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	item := &model.MenuItem{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price.Mul(decimal.NewFromInt(100)).IntPart(),
		Recipe:   req.Recipe,
	}
	if err := h.menuService.CreateMenuItem(ctx, item); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	var req dto.UpdateMenuItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Category != "" {
		fields["category"] = req.Category
	}
	if req.Recipe != "" {
		fields["recipe"] = req.Recipe
	}
	if req.Price != nil {
		fields["price"] = req.Price.Mul(decimal.NewFromInt(100)).IntPart()
	}
	if len(fields) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	if err := h.menuService.UpdateMenuItem(ctx, id, fields); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"modifiedCount": 1})
}

func (h *MenuHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	if err := h.menuService.DeleteMenuItem(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "menu item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"deletedCount": 1})
}

func (h *MenuHandler) ListReviews(c echo.Context) error {
	ctx := c.Request().Context()

	reviews, err := h.menuService.ListReviews(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, reviews)
}

func (h *MenuHandler) AddReview(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	review := &model.Review{
		Email:   req.Email,
		Rating:  req.Rating,
		Details: req.Details,
	}
	if err := h.menuService.AddReview(ctx, review); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, review)
}
