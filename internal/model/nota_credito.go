package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotaCredito reverses part of a prior sale: its items return stock and
// its total is subtracted from every report bucket containing its fecha.
// NumeroNota is sequential (max existing + 1, with a timestamp-derived
// fallback when the lookup fails).
type NotaCredito struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Cliente               string          `gorm:"not null;default:'Consumidor Final'" json:"cliente"`
	Motivo                string          `gorm:"not null" json:"motivo"`
	Items                 ItemsVenta      `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	Total                 decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	NumeroNota            int64           `gorm:"index;not null" json:"numero_nota"`
	NumeroFacturaOriginal *int64          `json:"numero_factura_original"`
	VentaOriginalID       *uuid.UUID      `gorm:"type:uuid;index" json:"venta_original_id"`
	Observaciones         *string         `json:"observaciones"`
	Fecha                 time.Time       `gorm:"index;not null;default:now()" json:"fecha"`
	UserID                uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt             time.Time       `json:"created_at"`
}

func (NotaCredito) TableName() string { return "notas_credito" }
