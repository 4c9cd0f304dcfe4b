package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/middleware"
	"github.com/naimp074/stock1/internal/service"
)

type VentasHandler struct{ svc service.VentaService }

func NewVentasHandler(svc service.VentaService) *VentasHandler {
	return &VentasHandler{svc: svc}
}

func (h *VentasHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) Listar(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	resp, err := h.svc.ListVentas(c.Request.Context(), filter)
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al listar ventas")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), id)
	if err != nil {
		fallar(c, http.StatusNotFound, "Venta no encontrada")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// FacturaPDF streams the sale's invoice as a PDF download.
func (h *VentasHandler) FacturaPDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pdf, err := h.svc.GenerarFacturaPDF(c.Request.Context(), id)
	if err != nil {
		fallar(c, http.StatusNotFound, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="factura_%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
