package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto represents one catalog entry with its current stock on hand.
// Stock changes on every sale (decrement, floored at 0), credit note
// (increment) and manual adjustment. Last write wins — no version column.
type Producto struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Nombre       string          `gorm:"index;not null" json:"nombre"`
	PrecioCosto  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"precio_costo"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"precio_venta"`
	Cantidad     int             `gorm:"not null;default:0" json:"cantidad"`
	UnidadMedida string          `gorm:"not null;default:'unidad'" json:"unidad_medida"`
	Proveedor    *string         `json:"proveedor"`
	Telefono     *string         `json:"telefono"`
	Imagen       *string         `json:"imagen"`
	// UserID stamps the owning user at creation (row-level scoping).
	UserID    uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Producto) TableName() string { return "productos" }
