package api

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gestock/inventory-backend/internal/auth"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/product/domain"
	"github.com/gestock/inventory-backend/internal/product/repository"
	"github.com/gestock/inventory-backend/internal/product/service"
)

type ProductHandler struct {
	productService service.ProductService
	uploadDir      string
}

func NewProductHandler(ps service.ProductService, uploadDir string) *ProductHandler {
	return &ProductHandler{productService: ps, uploadDir: uploadDir}
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	productRoutes := router.Group("/products", auth.Middleware())
	{
		productRoutes.GET("", h.ListProducts)
		productRoutes.GET("/:id", h.GetProduct)
		productRoutes.POST("", h.CreateProduct)
		productRoutes.PUT("/:id", h.UpdateProduct)
		productRoutes.DELETE("/:id", h.DeleteProduct)

		productRoutes.PUT("/batch-position", h.BatchUpdatePositions)
		productRoutes.PUT("/batch-stock", h.BatchUpdateStocks)
		productRoutes.PUT("/batch-breakage", h.BatchUpdateStocksForBreakage)
		productRoutes.POST("/stock-csv", h.UploadStockCSV)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	products, err := h.productService.ListProducts(c.Request.Context(), caller.UserID)
	if err != nil {
		logger.Error("ListProducts: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeProductError(c, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	var req domain.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), caller.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrBarcodeAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeProductError(c, "CreateProduct", err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req domain.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrBarcodeAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.writeProductError(c, "UpdateProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productService.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.writeProductError(c, "DeleteProduct", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product successfully deleted"})
}

func (h *ProductHandler) BatchUpdatePositions(c *gin.Context) {
	var items []domain.PositionUpdate
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	updatedCount, err := h.productService.ApplyPositionBatch(c.Request.Context(), items)
	if err != nil {
		logger.Error("BatchUpdatePositions: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product positions"})
		return
	}
	c.JSON(http.StatusOK, domain.BatchResult{
		Message:      "Products updated successfully",
		UpdatedCount: updatedCount,
	})
}

func (h *ProductHandler) BatchUpdateStocks(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	var items []domain.StockUpdate
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.productService.ApplyStockBatch(c.Request.Context(), caller.UserID, items)
	if err != nil {
		logger.Error("BatchUpdateStocks: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stocks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Stocks updated successfully",
		"updatedCount":  result.UpdatedCount,
		"modifications": result.Modifications,
	})
}

func (h *ProductHandler) BatchUpdateStocksForBreakage(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	var items []domain.StockUpdate
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	result, err := h.productService.ApplyBreakageBatch(c.Request.Context(), caller.UserID, items)
	if err != nil {
		logger.Error("BatchUpdateStocksForBreakage: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update stocks for breakage"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Stocks updated for breakage successfully",
		"updatedCount":  result.UpdatedCount,
		"modifications": result.Modifications,
	})
}

// UploadStockCSV materializes the uploaded file under the upload dir and
// hands its path to the reconciliation pipeline, which owns deletion.
func (h *ProductHandler) UploadStockCSV(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		logger.Error("UploadStockCSV: failed to create upload dir", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}
	path := filepath.Join(h.uploadDir, uuid.NewString()+"-"+filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, path); err != nil {
		logger.Error("UploadStockCSV: failed to save uploaded file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file"})
		return
	}

	updates, err := h.productService.ProcessSalesCSV(c.Request.Context(), caller.UserID, path)
	if err != nil {
		if errors.Is(err, service.ErrMissingCSVColumns) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("UploadStockCSV: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing CSV file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stocks updated successfully",
		"updates": updates,
	})
}

func (h *ProductHandler) writeProductError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidProductID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
