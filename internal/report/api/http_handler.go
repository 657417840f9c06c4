package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gestock/inventory-backend/internal/auth"
	lRepo "github.com/gestock/inventory-backend/internal/ledger/repository"
	"github.com/gestock/inventory-backend/internal/platform/logger"
	"github.com/gestock/inventory-backend/internal/report/service"
)

type ReportHandler struct {
	reportService service.ReportService
}

func NewReportHandler(rs service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	reportRoutes := router.Group("/reports", auth.Middleware())
	{
		reportRoutes.GET("", h.ListRecords)
		reportRoutes.POST("", h.CreateRecord)
		reportRoutes.GET("/most-changed", h.MostChanged)
		reportRoutes.GET("/least-changed", h.LeastChanged)
		reportRoutes.GET("/breakage-extremes", h.BreakageExtremes)
		reportRoutes.GET("/sales-extremes", h.SalesExtremes)
		reportRoutes.GET("/:id", h.GetRecord)
		reportRoutes.DELETE("/:id", h.DeleteRecord)
	}
}

func (h *ReportHandler) ListRecords(c *gin.Context) {
	records, err := h.reportService.ListRecords(c.Request.Context())
	if err != nil {
		logger.Error("ListRecords: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports"})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ReportHandler) CreateRecord(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	var req service.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	record, err := h.reportService.CreateRecord(c.Request.Context(), caller.UserID, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRecordID) || errors.Is(err, service.ErrInvalidType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("CreateRecord: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *ReportHandler) GetRecord(c *gin.Context) {
	record, err := h.reportService.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeRecordError(c, "GetRecord", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *ReportHandler) DeleteRecord(c *gin.Context) {
	if err := h.reportService.DeleteRecord(c.Request.Context(), c.Param("id")); err != nil {
		h.writeRecordError(c, "DeleteRecord", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReportHandler) MostChanged(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	summaries, err := h.reportService.MostChangedProducts(c.Request.Context(), caller.UserID, limitQuery(c))
	if err != nil {
		h.writeReportError(c, "MostChanged", err, "No products found")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *ReportHandler) LeastChanged(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	summaries, err := h.reportService.LeastChangedProducts(c.Request.Context(), caller.UserID, limitQuery(c))
	if err != nil {
		h.writeReportError(c, "LeastChanged", err, "No products found")
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *ReportHandler) BreakageExtremes(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	report, err := h.reportService.BreakageExtremes(c.Request.Context(), caller.UserID)
	if err != nil {
		h.writeReportError(c, "BreakageExtremes", err, "No broken products found")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) SalesExtremes(c *gin.Context) {
	caller, _ := auth.CallerFrom(c)
	facets, err := h.reportService.SalesExtremes(c.Request.Context(), caller.UserID)
	if err != nil {
		h.writeReportError(c, "SalesExtremes", err, "No sales data found")
		return
	}
	c.JSON(http.StatusOK, facets)
}

// limitQuery reads an optional ?limit= override; anything non-positive or
// unparseable defers to the service-configured limit.
func limitQuery(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		return 0
	}
	return limit
}

func (h *ReportHandler) writeReportError(c *gin.Context, op string, err error, notFoundMsg string) {
	if errors.Is(err, service.ErrNoReportData) {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMsg})
		return
	}
	logger.Error(op+": service error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
}

func (h *ReportHandler) writeRecordError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidRecordID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, lRepo.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
	default:
		logger.Error(op+": service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
