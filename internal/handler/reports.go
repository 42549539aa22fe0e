package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/Michelteixeiradev/sistema-loja/internal/apierror"
	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/infra"
	"github.com/Michelteixeiradev/sistema-loja/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	svc         service.ReportService
	storagePath string
}

func NewReportsHandler(svc service.ReportService, storagePath string) *ReportsHandler {
	return &ReportsHandler{svc: svc, storagePath: storagePath}
}

// SalesReport godoc
// @Summary      Sales report for a period
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from query string true "Date YYYY-MM-DD"
// @Param        to   query string true "Date YYYY-MM-DD"
// @Success      200  {object} dto.SalesReportResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/reports/sales [get]
func (h *ReportsHandler) SalesReport(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.SalesReport(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) TopProducts(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.TopProducts(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportSales renders the period report as a downloadable file.
// ?format=pdf (default) or ?format=xlsx.
func (h *ReportsHandler) ExportSales(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	report, err := h.svc.SalesReport(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	format := c.DefaultQuery("format", "pdf")
	var path string
	switch format {
	case "pdf":
		path, err = infra.GenerateSalesReportPDF(report, h.storagePath)
	case "xlsx":
		path, err = infra.GenerateSalesReportXLSX(report, h.storagePath)
	default:
		c.JSON(http.StatusBadRequest, apierror.New(fmt.Sprintf("Unknown export format %q", format)))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
