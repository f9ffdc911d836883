package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/domain"
	"github.com/shishir1337/maneelclub-sub001/internal/repository"
	"github.com/shishir1337/maneelclub-sub001/internal/service"
)

type OrderHandler struct {
	orders  *service.OrderService
	coupons *service.CouponService
	logger  *zap.Logger
}

func NewOrderHandler(orders *service.OrderService, coupons *service.CouponService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, coupons: coupons, logger: logger}
}

// userFacing are the checkout failures whose messages are safe to show
// verbatim.
func userFacing(err error) bool {
	switch {
	case errors.Is(err, service.ErrOrderBlocked),
		errors.Is(err, service.ErrProductGone),
		errors.Is(err, service.ErrStockShort),
		errors.Is(err, service.ErrTrxIDRequired),
		errors.Is(err, service.ErrCouponInvalid),
		errors.Is(err, service.ErrCouponInactive),
		errors.Is(err, service.ErrCouponExhausted),
		errors.Is(err, service.ErrCouponLookup):
		return true
	}
	var minErr *service.MinOrderError
	return errors.As(err, &minErr)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid order request")
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		if userFacing(err) {
			respondErr(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("create order failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err))
		respondErr(c, http.StatusInternalServerError, "Failed to place order")
		return
	}
	respondOK(c, http.StatusCreated, order)
}

func (h *OrderHandler) GetByNumber(c *gin.Context) {
	order, err := h.orders.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondErr(c, http.StatusNotFound, "Order not found")
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to load order")
		return
	}
	respondOK(c, http.StatusOK, order)
}

func (h *OrderHandler) ValidateCoupon(c *gin.Context) {
	var req domain.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid coupon request")
		return
	}

	applied, err := h.coupons.Validate(c.Request.Context(), req.Code, req.Subtotal)
	if err != nil {
		respondErr(c, http.StatusOK, err.Error())
		return
	}
	respondOK(c, http.StatusOK, applied)
}
