package dto

import "github.com/shopspring/decimal"

// Requests

type CrearCuentaRequest struct {
	Cliente string `json:"cliente" validate:"required,min=1,max=120"`
}

type ActualizarCuentaRequest struct {
	Cliente string `json:"cliente" validate:"required,min=1,max=120"`
}

type RegistrarMovimientoRequest struct {
	CuentaID string          `json:"cuenta_id" validate:"required,uuid"`
	Tipo     string          `json:"tipo"      validate:"required,oneof=cargo pago"`
	Monto    decimal.Decimal `json:"monto"     validate:"required"`
	// Descuento is a percentage, only meaningful on pagos.
	Descuento decimal.Decimal `json:"descuento" validate:"min=0,max=100"`
	Concepto  *string         `json:"concepto"`
	Factura   *string         `json:"factura"`
}

type ActualizarMovimientoRequest struct {
	Monto     *decimal.Decimal `json:"monto"`
	Descuento *decimal.Decimal `json:"descuento" validate:"omitempty,min=0,max=100"`
	Concepto  *string          `json:"concepto"`
	Factura   *string          `json:"factura"`
}

// Responses

type CuentaResponse struct {
	ID        string          `json:"id"`
	Cliente   string          `json:"cliente"`
	Saldo     decimal.Decimal `json:"saldo"`
	CreatedAt string          `json:"created_at"`
}

type MovimientoResponse struct {
	ID            string          `json:"id"`
	CuentaID      string          `json:"cuenta_id"`
	Tipo          string          `json:"tipo"`
	Monto         decimal.Decimal `json:"monto"`
	Descuento     decimal.Decimal `json:"descuento"`
	MontoEfectivo decimal.Decimal `json:"monto_efectivo"`
	Concepto      *string         `json:"concepto"`
	Factura       *string         `json:"factura"`
	Fecha         string          `json:"fecha"`
}

type CuentaDetalleResponse struct {
	Cuenta      CuentaResponse       `json:"cuenta"`
	Movimientos []MovimientoResponse `json:"movimientos"`
}
