package dto

import "github.com/shopspring/decimal"

// Requests

type ItemVentaRequest struct {
	ProductoID string          `json:"id"           validate:"required,uuid"`
	Cantidad   int             `json:"cantidad"     validate:"required,min=1"`
	// El precio que manda el cliente no se usa: el servidor congela el
	// precio de catálogo al registrar la venta.
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"min=0"`
}

type RegistrarVentaRequest struct {
	Cliente *string            `json:"cliente"`
	Items   []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
	// Si viene cliente_email, el worker manda el PDF de la factura ahí.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
}

type VentaFilter struct {
	Limit int `form:"limit,default=50" validate:"min=1,max=500"`
}

// Responses

type ItemVentaResponse struct {
	ProductoID  string          `json:"id"`
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Cantidad    int             `json:"cantidad"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	Cliente       *string             `json:"cliente"`
	Items         []ItemVentaResponse `json:"items"`
	Total         decimal.Decimal     `json:"total"`
	NumeroFactura *int64              `json:"numero_factura"`
	Fecha         string              `json:"fecha"`
}
