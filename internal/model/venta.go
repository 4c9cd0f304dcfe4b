package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemVenta is a line-item snapshot taken at sale time. ProductoID is a
// string, not a uuid: payments collected on customer accounts are mirrored
// into ventas with the pseudo-id "cuenta-corriente".
type ItemVenta struct {
	ProductoID  string          `json:"id"`
	Nombre      string          `json:"nombre"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	Cantidad    int             `json:"cantidad"`
}

// ItemsVenta stores the line-item snapshots as a JSONB column.
type ItemsVenta []ItemVenta

func (i ItemsVenta) Value() (driver.Value, error) {
	return json.Marshal(i)
}

func (i *ItemsVenta) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, i)
	case string:
		return json.Unmarshal([]byte(v), i)
	case nil:
		*i = nil
		return nil
	default:
		return errors.New("items_venta: unsupported scan source")
	}
}

// Venta is a completed sale. Items carry name/price snapshots so later
// product edits never rewrite history. Total = Σ precio_venta × cantidad.
type Venta struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Cliente       *string         `json:"cliente"`
	Items         ItemsVenta      `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	NumeroFactura *int64          `gorm:"index" json:"numero_factura"`
	Fecha         time.Time       `gorm:"index;not null;default:now()" json:"fecha"`
	UserID        uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (Venta) TableName() string { return "ventas" }
