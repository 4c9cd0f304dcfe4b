package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CuentaCorriente is a running customer account. The balance is never
// stored: it is always recomputed from the account's movements.
type CuentaCorriente struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Cliente   string    `gorm:"not null" json:"cliente"`
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CuentaCorriente) TableName() string { return "cuentas_corrientes" }

// Movement kinds. A cargo increases what the customer owes, a pago
// decreases it.
const (
	TipoCargo = "cargo"
	TipoPago  = "pago"
)

// MovimientoCuenta is one charge or payment against a CuentaCorriente.
// Descuento is a percentage and only meaningful for payments; the
// effective amount is Monto − Monto·Descuento/100.
type MovimientoCuenta struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	CuentaID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"cuenta_id"`
	Tipo      string          `gorm:"type:varchar(10);not null" json:"tipo"` // cargo | pago
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"monto"`
	Descuento decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"descuento"`
	Concepto  *string         `json:"concepto"`
	Factura   *string         `json:"factura"`
	Fecha     time.Time       `gorm:"index;not null;default:now()" json:"fecha"`
	UserID    uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName keeps the original schema's name for this table.
func (MovimientoCuenta) TableName() string { return "pagos_corrientes" }
