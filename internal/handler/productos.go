package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/middleware"
	"github.com/naimp074/stock1/internal/service"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

func (h *ProductosHandler) Crear(c *gin.Context) {
	var req dto.CrearProductoRequest
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

func (h *ProductosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al listar productos")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Obtener(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		fallar(c, http.StatusNotFound, "Producto no encontrado")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.ActualizarProductoRequest
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

func (h *ProductosHandler) Eliminar(c *gin.Context) {
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

func (h *ProductosHandler) AjustarStock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ImportarMasivo inserts a JSON batch of products in one transaction.
func (h *ProductosHandler) ImportarMasivo(c *gin.Context) {
	var req dto.ImportarProductosRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ImportarMasivo(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ImportarExcel accepts a multipart upload with an "archivo" .xlsx file.
func (h *ProductosHandler) ImportarExcel(c *gin.Context) {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		fallar(c, http.StatusBadRequest, "Archivo no recibido")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		fallar(c, http.StatusBadRequest, "No se pudo abrir el archivo")
		return
	}
	defer file.Close()

	resp, err := h.svc.ImportarExcel(c.Request.Context(), middleware.UserID(c), file)
	if err != nil {
		fallar(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// StockPDF streams the catalog listing as a PDF download.
func (h *ProductosHandler) StockPDF(c *gin.Context) {
	pdf, err := h.svc.GenerarStockPDF(c.Request.Context())
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al generar el PDF")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="stock.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// MovimientosStock lists the stock audit trail, optionally filtered by
// producto_id.
func (h *ProductosHandler) MovimientosStock(c *gin.Context) {
	var productoID *uuid.UUID
	if raw := c.Query("producto_id"); raw != "" {
		pid, err := uuid.Parse(raw)
		if err != nil {
			fallar(c, http.StatusBadRequest, "producto_id invalido")
			return
		}
		productoID = &pid
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	movs, err := h.svc.ListarMovimientosStock(c.Request.Context(), productoID, limit)
	if err != nil {
		fallar(c, http.StatusInternalServerError, "Error al listar movimientos")
		return
	}
	c.JSON(http.StatusOK, movs)
}
