package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/courier"
	"github.com/shishir1337/maneelclub-sub001/internal/domain"
	"github.com/shishir1337/maneelclub-sub001/internal/repository"
	"github.com/shishir1337/maneelclub-sub001/internal/service"
)

// AdminHandler is the back-office surface: coupon/city/product CRUD, the IP
// ban list, settings and order management, plus the courier fraud check.
type AdminHandler struct {
	coupons  *service.CouponService
	cities   *service.CityService
	banlist  *service.BanlistService
	products *service.ProductService
	orders   *service.OrderService
	settings *service.SettingsService
	courier  *courier.Client
	logger   *zap.Logger
}

func NewAdminHandler(
	coupons *service.CouponService,
	cities *service.CityService,
	banlist *service.BanlistService,
	products *service.ProductService,
	orders *service.OrderService,
	settings *service.SettingsService,
	courierClient *courier.Client,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		coupons:  coupons,
		cities:   cities,
		banlist:  banlist,
		products: products,
		orders:   orders,
		settings: settings,
		courier:  courierClient,
		logger:   logger,
	}
}

// --- coupons ---

func (h *AdminHandler) ListCoupons(c *gin.Context) {
	coupons, err := h.coupons.List(c.Request.Context())
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to load coupons")
		return
	}
	respondOK(c, http.StatusOK, coupons)
}

func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var req domain.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid coupon payload")
		return
	}
	coupon, err := h.coupons.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(c, http.StatusCreated, coupon)
}

func (h *AdminHandler) UpdateCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid coupon id")
		return
	}
	var req domain.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid coupon payload")
		return
	}
	coupon, err := h.coupons.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "Coupon not found")
			return
		}
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(c, http.StatusOK, coupon)
}

func (h *AdminHandler) DeleteCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid coupon id")
		return
	}
	if err := h.coupons.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "Coupon not found")
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

// --- cities ---

func (h *AdminHandler) CreateCity(c *gin.Context) {
	var req domain.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid city payload")
		return
	}
	city, err := h.cities.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(c, http.StatusCreated, city)
}

func (h *AdminHandler) UpdateCity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid city id")
		return
	}
	var req domain.CreateCityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid city payload")
		return
	}
	city, err := h.cities.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(c, http.StatusOK, city)
}

func (h *AdminHandler) DeleteCity(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid city id")
		return
	}
	if err := h.cities.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "City not found")
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to delete city")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

// --- banned IPs ---

func (h *AdminHandler) ListBans(c *gin.Context) {
	bans, err := h.banlist.List(c.Request.Context())
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to load banned IPs")
		return
	}
	respondOK(c, http.StatusOK, bans)
}

func (h *AdminHandler) BanIP(c *gin.Context) {
	var req domain.BanIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid ban payload")
		return
	}
	ban, err := h.banlist.Ban(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidIP) {
			respondErr(c, http.StatusBadRequest, err.Error())
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to ban IP")
		return
	}
	respondOK(c, http.StatusCreated, ban)
}

func (h *AdminHandler) UnbanIP(c *gin.Context) {
	if err := h.banlist.Unban(c.Request.Context(), c.Param("ip")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "IP is not banned")
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to unban IP")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

// --- products ---

func (h *AdminHandler) ListAllProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context())
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to load products")
		return
	}
	respondOK(c, http.StatusOK, products)
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid product payload")
		return
	}
	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(c, http.StatusCreated, product)
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid product id")
		return
	}
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid product payload")
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "Product not found")
			return
		}
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}
	respondOK(c, http.StatusOK, product)
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid product id")
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "Product not found")
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *AdminHandler) LowStock(c *gin.Context) {
	products, err := h.products.LowStock(c.Request.Context())
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to load low-stock products")
		return
	}
	respondOK(c, http.StatusOK, products)
}

// --- orders ---

func (h *AdminHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	orders, err := h.orders.List(c.Request.Context(), limit)
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	respondOK(c, http.StatusOK, orders)
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
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

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req domain.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid status payload")
		return
	}
	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("number"), req); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondErr(c, http.StatusNotFound, "Order not found")
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to update order")
		return
	}
	respondOK(c, http.StatusOK, gin.H{"updated": true})
}

// --- settings ---

func (h *AdminHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetAll(c.Request.Context())
	if err != nil {
		respondErr(c, http.StatusInternalServerError, "Failed to load settings")
		return
	}
	respondOK(c, http.StatusOK, settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var req domain.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Invalid settings payload")
		return
	}
	ctx := c.Request.Context()
	for key, value := range req.Settings {
		if err := h.settings.Set(ctx, key, value); err != nil {
			h.logger.Error("settings update failed", zap.String("key", key), zap.Error(err))
			respondErr(c, http.StatusInternalServerError, "Failed to update settings")
			return
		}
	}
	h.settings.Invalidate()
	respondOK(c, http.StatusOK, gin.H{"updated": true})
}

// --- courier fraud check ---

func (h *AdminHandler) CourierCheck(c *gin.Context) {
	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, "Phone number is required")
		return
	}

	result, err := h.courier.Check(c.Request.Context(), req.Phone)
	if err != nil {
		respondErr(c, http.StatusOK, err.Error())
		return
	}
	respondOK(c, http.StatusOK, result)
}
