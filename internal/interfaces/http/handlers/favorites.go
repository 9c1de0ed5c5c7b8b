// internal/interfaces/http/handlers/favorites.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/favorites"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// FavoritesHandler handles favorites endpoints
type FavoritesHandler struct {
	redisClient *redis.Client
	catalog     product.Catalog
	config      *config.Config
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(redisClient *redis.Client, catalog product.Catalog, cfg *config.Config) *FavoritesHandler {
	return &FavoritesHandler{
		redisClient: redisClient,
		catalog:     catalog,
		config:      cfg,
	}
}

func (h *FavoritesHandler) storeFor(c *gin.Context) *favorites.Store {
	key := favorites.FavoritesKey + ":" + middleware.SessionID(c)
	persistence := favorites.NewRedisPersistence(h.redisClient, key, h.config.Security.SessionTTL)
	return favorites.NewStore(persistence)
}

// ListFavorites handles GET /favorites
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	ids, err := h.storeFor(c).List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve favorites",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorites retrieved successfully",
		"data":    ids,
	})
}

// AddFavorite handles PUT /favorites/:id
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if _, err := h.catalog.GetProduct(uint(productID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	if err := h.storeFor(c).Add(c.Request.Context(), uint(productID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to add favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to favorites",
	})
}

// ClearFavorites handles DELETE /favorites
func (h *FavoritesHandler) ClearFavorites(c *gin.Context) {
	if err := h.storeFor(c).Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear favorites",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Favorites cleared successfully",
	})
}

// RemoveFavorite handles DELETE /favorites/:id
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	if err := h.storeFor(c).Remove(c.Request.Context(), uint(productID)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from favorites",
	})
}
