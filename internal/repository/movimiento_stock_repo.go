package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/model"
)

type MovimientoStockRepository interface {
	CreateTx(tx *gorm.DB, m *model.MovimientoStock) error
	List(ctx context.Context, productoID *uuid.UUID, limit int) ([]model.MovimientoStock, error)
}

type movimientoStockRepo struct{ db *gorm.DB }

func NewMovimientoStockRepository(db *gorm.DB) MovimientoStockRepository {
	return &movimientoStockRepo{db: db}
}

func (r *movimientoStockRepo) CreateTx(tx *gorm.DB, m *model.MovimientoStock) error {
	return tx.Create(m).Error
}

func (r *movimientoStockRepo) List(ctx context.Context, productoID *uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoStock{})
	if productoID != nil {
		q = q.Where("producto_id = ?", *productoID)
	}
	var movs []model.MovimientoStock
	err := q.Order("created_at DESC").Limit(limit).Find(&movs).Error
	return movs, err
}
