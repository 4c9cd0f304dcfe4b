package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/middleware"
	"github.com/naimp074/stock1/internal/service"
)

type NotasCreditoHandler struct{ svc service.NotaCreditoService }

func NewNotasCreditoHandler(svc service.NotaCreditoService) *NotasCreditoHandler {
	return &NotasCreditoHandler{svc: svc}
}

func (h *NotasCreditoHandler) Crear(c *gin.Context) {
	var req dto.CrearNotaCreditoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *NotasCreditoHandler) Listar(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.Listar(c.Request.Context(), limit)
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al listar notas de credito")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotasCreditoHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fallar(c, http.StatusNotFound, "Nota de credito no encontrada")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotasCreditoHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarNotaCreditoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotasCreditoHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

// VentasDisponibles lists sales without an associated credit note.
func (h *NotasCreditoHandler) VentasDisponibles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	resp, err := h.svc.VentasDisponibles(c.Request.Context(), limit)
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al listar ventas disponibles")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NotasCreditoHandler) Estadisticas(c *gin.Context) {
	resp, err := h.svc.Estadisticas(c.Request.Context())
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al calcular estadisticas")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF streams the credit note document as a download.
func (h *NotasCreditoHandler) PDF(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	pdf, err := h.svc.GenerarPDF(c.Request.Context(), id)
	if err != nil {
		fallar(c, http.StatusNotFound, err.Error())
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="nota_credito_%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
