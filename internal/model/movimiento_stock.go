package model

import (
	"time"

	"github.com/google/uuid"
)

// MovimientoStock is an audit record for each stock change: sale
// decrements, credit-note returns, manual adjustments and bulk imports.
type MovimientoStock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductoID uuid.UUID `gorm:"type:uuid;not null;index" json:"producto_id"`
	Tipo       string    `gorm:"not null" json:"tipo"` // "venta" | "nota_credito" | "ajuste_manual" | "importacion"
	Cantidad   int       `gorm:"not null" json:"cantidad"` // positive = entrada, negative = salida
	StockNuevo int       `gorm:"not null" json:"stock_nuevo"`
	Motivo     string    `json:"motivo"`
	// ReferenciaID links to the originating venta or nota de crédito.
	ReferenciaID *uuid.UUID `gorm:"type:uuid" json:"referencia_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }
