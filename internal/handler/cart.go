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

type CartHandler struct {
	cartService service.CartService
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

func (h *CartHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	items, err := h.cartService.ListByEmail(ctx, email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CartHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.AddCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	item := &model.CartItem{
		Email:      req.Email,
		MenuItemID: req.MenuItemID,
		Price:      req.Price.Mul(decimal.NewFromInt(100)).IntPart(),
	}
	if err := h.cartService.Add(ctx, item); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, item)
}

func (h *CartHandler) Remove(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	if err := h.cartService.Remove(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"deletedCount": 1})
}
