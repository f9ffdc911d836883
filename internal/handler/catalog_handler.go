package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shishir1337/maneelclub-sub001/internal/repository"
	"github.com/shishir1337/maneelclub-sub001/internal/service"
)

// CatalogHandler serves the public storefront reads: products, cities and
// the settings the frontend renders (merchant numbers, announcement bar,
// analytics ids).
type CatalogHandler struct {
	products *service.ProductService
	cities   *service.CityService
	settings *service.SettingsService
	logger   *zap.Logger
}

func NewCatalogHandler(products *service.ProductService, cities *service.CityService, settings *service.SettingsService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{products: products, cities: cities, settings: settings, logger: logger}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.products.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		respondErr(c, http.StatusInternalServerError, "Failed to load products")
		return
	}
	respondOK(c, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondErr(c, http.StatusNotFound, "Product not found")
			return
		}
		respondErr(c, http.StatusInternalServerError, "Failed to load product")
		return
	}
	respondOK(c, http.StatusOK, product)
}

func (h *CatalogHandler) ListCities(c *gin.Context) {
	cities, err := h.cities.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list cities failed", zap.Error(err))
		respondErr(c, http.StatusInternalServerError, "Failed to load cities")
		return
	}
	respondOK(c, http.StatusOK, cities)
}

// publicSettingKeys are safe to expose to the storefront. The CAPI access
// token stays server-side.
var publicSettingKeys = []string{
	service.SettingShippingDhaka,
	service.SettingShippingOutside,
	service.SettingFreeShippingMinimum,
	service.SettingBkashNumber,
	service.SettingNagadNumber,
	service.SettingRocketNumber,
	service.SettingMetaPixelID,
	service.SettingMetaPixelEnabled,
	service.SettingGTMContainerID,
	service.SettingAnnouncementEnabled,
	service.SettingAnnouncementMessage,
	service.SettingAnnouncementLink,
	service.SettingAnnouncementLinkText,
}

func (h *CatalogHandler) PublicSettings(c *gin.Context) {
	ctx := c.Request.Context()
	out := make(map[string]string, len(publicSettingKeys))
	for _, key := range publicSettingKeys {
		out[key] = h.settings.Get(ctx, key)
	}
	respondOK(c, http.StatusOK, out)
}
