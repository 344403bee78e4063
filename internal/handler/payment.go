package handler

import (
	"errors"
	"net/http"

	"restaurant-orders/internal/dto"
	"restaurant-orders/internal/middleware"
	"restaurant-orders/internal/model"
	"restaurant-orders/internal/service"

	"github.com/labstack/echo/v4"
)

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) CreateChargeIntent(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.ChargeIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	clientSecret, err := h.paymentService.CreateIntent(ctx, req.Price, req.Currency)
	if err != nil {
		if errors.Is(err, model.ErrInvalidAmount) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
		}
		return err
	}

	return c.JSON(http.StatusOK, &dto.ChargeIntentResponse{
		ClientSecret: clientSecret,
	})
}

func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.SettleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}
	if req.Email == "" || req.TransactionID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and transactionId are required")
	}

	// settlement may only touch the caller's own cart
	identity := middleware.IdentityFrom(c)
	if identity == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing credentials")
	}
	if req.Email != identity.Email {
		return echo.NewHTTPError(http.StatusForbidden, "forbidden access")
	}

	result, err := h.paymentService.Settle(ctx, &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidAmount) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
		}
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	ctx := c.Request().Context()

	payments, err := h.paymentService.ListByEmail(ctx, c.Param("email"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, payments)
}
