package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/middleware"
	"github.com/naimp074/stock1/internal/service"
)

type CuentasHandler struct{ svc service.CuentaService }

func NewCuentasHandler(svc service.CuentaService) *CuentasHandler {
	return &CuentasHandler{svc: svc}
}

func (h *CuentasHandler) Crear(c *gin.Context) {
	var req dto.CrearCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCuenta(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar returns every account with its derived balance.
func (h *CuentasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.ListarCuentas(c.Request.Context())
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al listar cuentas")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	resp, err := h.svc.ObtenerCuenta(c.Request.Context(), id, limit)
	if err != nil {
		fallar(c, http.StatusNotFound, "Cuenta no encontrada")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarCuentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarCuenta(c.Request.Context(), id, req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) RegistrarMovimiento(c *gin.Context) {
	var req dto.RegistrarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarMovimiento(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CuentasHandler) ActualizarMovimiento(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarMovimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarMovimiento(c.Request.Context(), id, req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuentasHandler) EliminarMovimiento(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.EliminarMovimiento(c.Request.Context(), id); err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}
