package handler

import (
	"errors"
	"net/http"
	"strconv"

	"restaurant-orders/internal/dto"
	"restaurant-orders/internal/middleware"
	"restaurant-orders/internal/model"
	"restaurant-orders/internal/service"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService  service.UserService
	tokenService service.TokenService
}

func NewUserHandler(userService service.UserService, tokenService service.TokenService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		tokenService: tokenService,
	}
}

func idFromPath(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func (h *UserHandler) IssueToken(c echo.Context) error {
	var req dto.TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	token, err := h.tokenService.Issue(req.Email, req.Name)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.TokenResponse{Token: token})
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	user, created, err := h.userService.Register(ctx, req.Email, req.Name)
	if err != nil {
		return err
	}

	if !created {
		return c.JSON(http.StatusOK, &dto.RegisterResponse{
			Message:    "user already exists",
			InsertedID: nil,
		})
	}

	return c.JSON(http.StatusOK, &dto.RegisterResponse{
		InsertedID: &user.ID,
	})
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	users, err := h.userService.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, users)
}

func (h *UserHandler) CheckAdmin(c echo.Context) error {
	ctx := c.Request().Context()

	// the email param has already been matched against the authenticated
	// identity by the self gate
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}

	admin, err := h.userService.IsAdmin(ctx, identity.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.AdminCheckResponse{Admin: admin})
}

func (h *UserHandler) Promote(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	if err := h.userService.Promote(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"modifiedCount": 1})
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := idFromPath(c)
	if err != nil {
		return err
	}

	if err := h.userService.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"deletedCount": 1})
}
