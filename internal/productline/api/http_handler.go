package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gestock/inventory-backend/internal/auth"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/productline/domain"
	"github.com/gestock/inventory-backend/internal/productline/repository"
	"github.com/gestock/inventory-backend/internal/productline/service"
)

type ProductLineHandler struct {
	lineService service.ProductLineService
}

func NewProductLineHandler(ls service.ProductLineService) *ProductLineHandler {
	return &ProductLineHandler{lineService: ls}
}

func (h *ProductLineHandler) RegisterRoutes(router *gin.RouterGroup) {
	lineRoutes := router.Group("/product-lines", auth.Middleware())
	{
		lineRoutes.GET("", h.ListProductLines)
		lineRoutes.GET("/:id", h.GetProductLine)
		lineRoutes.POST("", h.CreateProductLine)
		lineRoutes.PUT("/:id", h.UpdateProductLine)
		lineRoutes.DELETE("/:id", h.DeleteProductLine)
	}
}

func (h *ProductLineHandler) ListProductLines(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	lines, err := h.lineService.ListProductLines(c.Request.Context(), caller.UserID)
	if err != nil {
		logger.Error("ListProductLines: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product lines"})
		return
	}
	c.JSON(http.StatusOK, lines)
}

func (h *ProductLineHandler) GetProductLine(c *gin.Context) {
	line, err := h.lineService.GetProductLine(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeLineError(c, "GetProductLine", err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h *ProductLineHandler) CreateProductLine(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	var req domain.CreateProductLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product line name is required"})
		return
	}

	line, err := h.lineService.CreateProductLine(c.Request.Context(), caller.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrNameAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeLineError(c, "CreateProductLine", err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

func (h *ProductLineHandler) UpdateProductLine(c *gin.Context) {
	var req domain.UpdateProductLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product line name is required"})
		return
	}

	line, err := h.lineService.UpdateProductLine(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeLineError(c, "UpdateProductLine", err)
		return
	}
	c.JSON(http.StatusOK, line)
}

func (h *ProductLineHandler) DeleteProductLine(c *gin.Context) {
	if err := h.lineService.DeleteProductLine(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrLineHasProducts) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeLineError(c, "DeleteProductLine", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product line successfully deleted"})
}

func (h *ProductLineHandler) writeLineError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProductLineID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrProductLineNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product line not found"})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
