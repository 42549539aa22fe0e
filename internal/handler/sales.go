package handler

import (
	"net/http"

	"github.com/Michelteixeiradev/sistema-loja/internal/dto"
	"github.com/Michelteixeiradev/sistema-loja/internal/infra"
	"github.com/Michelteixeiradev/sistema-loja/internal/middleware"
	"github.com/Michelteixeiradev/sistema-loja/internal/repository"
	"github.com/Michelteixeiradev/sistema-loja/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	svc         service.SaleService
	repo        repository.SaleRepository
	storagePath string
}

func NewSalesHandler(svc service.SaleService, repo repository.SaleRepository, storagePath string) *SalesHandler {
	return &SalesHandler{svc: svc, repo: repo, storagePath: storagePath}
}

// RegisterSale godoc
// @Summary      Register a new sale
// @Description  Creates the sale, decrements stock and appends ledger movements in one transaction. Nothing is persisted on failure.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegisterSaleRequest true "Sale detail"
// @Success      201  {object} dto.SaleResponse
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/sales [post]
func (h *SalesHandler) RegisterSale(c *gin.Context) {
	var req dto.RegisterSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegisterSale(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List sales
// @Description  Paginated sales for a date range, newest first.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        from  query string false "Date YYYY-MM-DD"
// @Param        to    query string false "Date YYYY-MM-DD (default: today)"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Rows per page (default 50)"
// @Success      200   {object} dto.SaleListResponse
// @Failure      422   {object} apierror.APIError
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt renders the sale's ticket as a PDF and streams it back.
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	sale, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, service.ErrNotFound)
		return
	}
	path, err := infra.GenerateReceiptPDF(sale, h.storagePath)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.FileAttachment(path, "receipt_"+id.String()+".pdf")
}
