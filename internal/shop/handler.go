package shop

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mastercodercat/coffee-swap-protocol/internal/token"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidParam):
		return http.StatusBadRequest
	case errors.Is(err, ErrShopNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrShopExists):
		return http.StatusConflict
	case errors.Is(err, ErrNotEnoughIngredients):
		return http.StatusConflict
	case errors.Is(err, token.ErrInsufficientFunds), errors.Is(err, token.ErrNoAllowance):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func caller(c *gin.Context) string {
	return c.GetString("address")
}

// --------------------------------------------------
// Instantiate a shop
// --------------------------------------------------
func (h *Handler) CreateShop(c *gin.Context) {
	var req struct {
		Key     string         `json:"key"`
		Menu    []CoffeeCup    `json:"menu"`
		Recipes []CoffeeRecipe `json:"recipes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	state, err := h.service.CreateShop(c.Request.Context(), caller(c), req.Key, req.Menu, req.Recipes)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key":   req.Key,
		"owner": state.Owner,
		"menu":  state.Menu,
	})
}

// --------------------------------------------------
// Queries
// --------------------------------------------------
func (h *Handler) Owner(c *gin.Context) {
	owner, err := h.service.Owner(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"owner": owner})
}

func (h *Handler) Menu(c *gin.Context) {
	menu, err := h.service.Menu(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menu})
}

func (h *Handler) Recipes(c *gin.Context) {
	recipes, err := h.service.Recipes(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Handler) Ingredients(c *gin.Context) {
	portions, err := h.service.Ingredients(c.Request.Context(), c.Param("key"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": portions})
}

func (h *Handler) Price(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	price, err := h.service.Price(c.Request.Context(), c.Param("key"), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"price": price})
}

func (h *Handler) Balance(c *gin.Context) {
	balance, err := h.service.Balance(c.Request.Context(), c.Param("address"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// --------------------------------------------------
// Owner mutations
// --------------------------------------------------
func (h *Handler) SetPrice(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req struct {
		Price uint64 `json:"price"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.service.SetPrice(c.Request.Context(), caller(c), c.Param("key"), id, req.Price); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) LoadIngredients(c *gin.Context) {
	var req struct {
		Portions []IngredientPortion `json:"portions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if err := h.service.LoadIngredients(c.Request.Context(), caller(c), c.Param("key"), req.Portions); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------------------------------------------------
// Purchase
// --------------------------------------------------
func (h *Handler) BuyCoffee(c *gin.Context) {
	var req struct {
		ProductID uint64 `json:"product_id"`
		Cups      uint64 `json:"cups"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	receipt, err := h.service.BuyCoffee(c.Request.Context(), caller(c), c.Param("key"), req.ProductID, req.Cups)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"receipt": receipt})
}
