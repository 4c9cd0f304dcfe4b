package dto

import "github.com/shopspring/decimal"

// Requests

type CrearProductoRequest struct {
	Nombre       string          `json:"nombre"        validate:"required,min=1,max=120"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"  validate:"min=0"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"min=0"`
	Cantidad     int             `json:"cantidad"      validate:"min=0"`
	UnidadMedida string          `json:"unidad_medida" validate:"omitempty,oneof=unidad kg litro caja pack"`
	Proveedor    *string         `json:"proveedor"`
	Telefono     *string         `json:"telefono"`
	Imagen       *string         `json:"imagen"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=1,max=120"`
	PrecioCosto  *decimal.Decimal `json:"precio_costo"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"`
	Cantidad     *int             `json:"cantidad"      validate:"omitempty,min=0"`
	UnidadMedida *string          `json:"unidad_medida" validate:"omitempty,oneof=unidad kg litro caja pack"`
	Proveedor    *string          `json:"proveedor"`
	Telefono     *string          `json:"telefono"`
	Imagen       *string          `json:"imagen"`
}

type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ImportarProductosRequest lleva las filas del alta masiva.
type ImportarProductosRequest struct {
	Productos []CrearProductoRequest `json:"productos" validate:"required,min=1,dive"`
}

// Responses

type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	PrecioCosto  decimal.Decimal `json:"precio_costo"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Cantidad     int             `json:"cantidad"`
	UnidadMedida string          `json:"unidad_medida"`
	Proveedor    *string         `json:"proveedor"`
	Telefono     *string         `json:"telefono"`
	Imagen       *string         `json:"imagen"`
	CreatedAt    string          `json:"created_at"`
}

type ImportarProductosResponse struct {
	Insertados int `json:"insertados"`
}
