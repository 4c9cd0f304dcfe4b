package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naimp074/stock1/internal/service"
)

type ReportesHandler struct{ svc service.ReporteService }

func NewReportesHandler(svc service.ReporteService) *ReportesHandler {
	return &ReportesHandler{svc: svc}
}

// Resumen returns the full dashboard snapshot: period totals net of
// credit notes, the 7-day series, top products, yearly and monthly
// revenue and the low stock list.
func (h *ReportesHandler) Resumen(c *gin.Context) {
	resp, err := h.svc.Resumen(c.Request.Context())
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al generar el reporte")
		return
	}
	c.JSON(http.StatusOK, resp)
}
