package dto

import "github.com/shopspring/decimal"

// Requests

type ItemNotaRequest struct {
	ProductoID  string          `json:"id"           validate:"required"`
	Nombre      string          `json:"nombre"       validate:"required"`
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"min=0"`
	Cantidad    int             `json:"cantidad"     validate:"required,min=1"`
}

type CrearNotaCreditoRequest struct {
	Cliente               string            `json:"cliente"`
	Motivo                string            `json:"motivo" validate:"required,min=3"`
	Items                 []ItemNotaRequest `json:"items"  validate:"omitempty,dive"`
	Total                 decimal.Decimal   `json:"total"  validate:"required"`
	NumeroFacturaOriginal *int64            `json:"numero_factura_original"`
	VentaOriginalID       *string           `json:"venta_original_id" validate:"omitempty,uuid"`
	Observaciones         *string           `json:"observaciones"`
}

type ActualizarNotaCreditoRequest struct {
	Cliente       *string `json:"cliente"`
	Motivo        *string `json:"motivo" validate:"omitempty,min=3"`
	Observaciones *string `json:"observaciones"`
}

// Responses

type NotaCreditoResponse struct {
	ID                    string              `json:"id"`
	Cliente               string              `json:"cliente"`
	Motivo                string              `json:"motivo"`
	Items                 []ItemVentaResponse `json:"items"`
	Total                 decimal.Decimal     `json:"total"`
	NumeroNota            int64               `json:"numero_nota"`
	NumeroFacturaOriginal *int64              `json:"numero_factura_original"`
	VentaOriginalID       *string             `json:"venta_original_id"`
	Observaciones         *string             `json:"observaciones"`
	Fecha                 string              `json:"fecha"`
}
