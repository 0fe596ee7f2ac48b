package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/handlers/dto"
	"github.com/lesecondbaraka-ctrl/CongoMuv-sub002/internal/services"
)

// ReportHandler expõe os relatórios do operador
type ReportHandler struct {
	reportService *services.ReportService
	exposeErrors  bool
}

// NewReportHandler cria um novo ReportHandler. Com exposeErrors o 500 leva a mensagem do banco (fora de produção).
func NewReportHandler(reportService *services.ReportService, exposeErrors bool) *ReportHandler {
	return &ReportHandler{reportService: reportService, exposeErrors: exposeErrors}
}

// Revenue retorna a receita agrupada pelo período
// @Summary      Relatório de receita
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        period  query  string  false  "day, month ou year"
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.RevenueBucketResponse}
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/operator/reports/revenue [get]
func (h *ReportHandler) Revenue(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	buckets, _, err := h.reportService.Revenue(c.Request.Context(), orgScope, c.Query("period"))
	if err != nil {
		dto.Abort(c, dto.ReportErrorResponseI18n(c, err, h.exposeErrors))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Data: dto.ToRevenueResponses(buckets)})
}

// Performance retorna as linhas com maior receita
// @Summary      Desempenho por linha
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.SuccessResponse{data=[]dto.LinePerformanceResponse}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/operator/reports/performance [get]
func (h *ReportHandler) Performance(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	lines, err := h.reportService.Performance(c.Request.Context(), orgScope)
	if err != nil {
		dto.Abort(c, dto.ReportErrorResponseI18n(c, err, h.exposeErrors))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Data: dto.ToPerformanceResponses(lines)})
}

// Dashboard retorna os indicadores do dia
// @Summary      Painel do operador
// @Tags         operator
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/operator/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	orgScope, ok := scope(c)
	if !ok {
		return
	}

	summary, err := h.reportService.Dashboard(c.Request.Context(), orgScope)
	if err != nil {
		dto.Abort(c, dto.ReportErrorResponseI18n(c, err, h.exposeErrors))
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardResponse(summary))
}
