package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/l9kyuu/gamepanel-api/internal/models"
	"github.com/l9kyuu/gamepanel-api/internal/services"
)

type ReportHandler struct {
	reportSvc *services.ReportService
	exportSvc *services.ExportService
}

func NewReportHandler(reportSvc *services.ReportService, exportSvc *services.ExportService) *ReportHandler {
	return &ReportHandler{
		reportSvc: reportSvc,
		exportSvc: exportSvc,
	}
}

// @Summary Get Games Report
// @Description Computes the requested report over the game catalog. With the export param set, streams a downloadable document instead of JSON.
// @Tags Reports
// @Produce json
// @Param report query string false "Report type (overview, sales, inventory, popularity)" default(overview)
// @Param start_date query string false "Start Date (YYYY-MM-DD, defaults to first of current month)"
// @Param end_date query string false "End Date (YYYY-MM-DD, defaults to today)"
// @Param export query string false "Export format (excel, csv, xlsx, html, pdf)"
// @Security BearerAuth
// @Router /reports [get]
func (h *ReportHandler) Show(c *gin.Context) {
	params := services.ResolveParams(
		c.Query("report"),
		c.Query("start_date"),
		c.Query("end_date"),
		time.Now(),
	)

	result, err := h.reportSvc.Generate(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if format := c.Query("export"); format != "" {
		h.stream(c, format, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Export Games Report
// @Description Generates and downloads a games report document
// @Tags Reports
// @Produce application/octet-stream
// @Param type query string false "Report type (overview, sales, inventory, popularity)" default(overview)
// @Param start_date query string false "Start Date (YYYY-MM-DD)"
// @Param end_date query string false "End Date (YYYY-MM-DD)"
// @Param export query string false "Export format (excel, csv, xlsx, html, pdf)" default(excel)
// @Security BearerAuth
// @Router /reports/export [get]
func (h *ReportHandler) Export(c *gin.Context) {
	params := services.ResolveParams(
		c.Query("type"),
		c.Query("start_date"),
		c.Query("end_date"),
		time.Now(),
	)

	result, err := h.reportSvc.Generate(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.stream(c, c.DefaultQuery("export", services.FormatExcel), result)
}

func (h *ReportHandler) stream(c *gin.Context, format string, result *models.ReportResult) {
	data, filename, contentType, err := h.exportSvc.Export(format, result)
	if err != nil {
		if errors.Is(err, services.ErrUnknownExportFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format (excel, csv, xlsx, html, pdf)"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate %s: %v", format, err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Cache-Control", "max-age=0")
	c.Data(http.StatusOK, contentType, data)
}
