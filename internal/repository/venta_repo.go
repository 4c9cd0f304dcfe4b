package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/model"
)

// VentaRepository persiste las ventas. Create recibe el tx porque la venta
// siempre se inserta junto con los descuentos de stock y sus movimientos de
// auditoría, en la misma transacción.
type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, limit int) ([]model.Venta, error)
	DB() *gorm.DB
}

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db} }

type ventaRepo struct{ db *gorm.DB }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// List devuelve las ventas más recientes primero, hasta limit filas.
func (r *ventaRepo) List(ctx context.Context, limit int) ([]model.Venta, error) {
	var ventas []model.Venta
	err := r.db.WithContext(ctx).Order("fecha DESC").Limit(limit).Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
