package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/model"
)

type NotaCreditoRepository interface {
	Create(ctx context.Context, tx *gorm.DB, n *model.NotaCredito) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.NotaCredito, error)
	List(ctx context.Context, limit int) ([]model.NotaCredito, error)
	Update(ctx context.Context, n *model.NotaCredito) error
	Delete(ctx context.Context, id uuid.UUID) error

	// MaxNumeroNota returns the highest issued note number, 0 when none exist.
	MaxNumeroNota(ctx context.Context) (int64, error)
	// ListVentasConNota returns the ids of sales already referenced by a note.
	ListVentasConNota(ctx context.Context) ([]uuid.UUID, error)

	DB() *gorm.DB
}

type notaCreditoRepo struct{ db *gorm.DB }

func NewNotaCreditoRepository(db *gorm.DB) NotaCreditoRepository {
	return &notaCreditoRepo{db: db}
}

func (r *notaCreditoRepo) Create(ctx context.Context, tx *gorm.DB, n *model.NotaCredito) error {
	return tx.WithContext(ctx).Create(n).Error
}

func (r *notaCreditoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.NotaCredito, error) {
	var n model.NotaCredito
	err := r.db.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *notaCreditoRepo) List(ctx context.Context, limit int) ([]model.NotaCredito, error) {
	var notas []model.NotaCredito
	err := r.db.WithContext(ctx).Order("fecha DESC").Limit(limit).Find(&notas).Error
	return notas, err
}

func (r *notaCreditoRepo) Update(ctx context.Context, n *model.NotaCredito) error {
	return r.db.WithContext(ctx).Save(n).Error
}

func (r *notaCreditoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.NotaCredito{}, id).Error
}

func (r *notaCreditoRepo) MaxNumeroNota(ctx context.Context) (int64, error) {
	var max *int64
	err := r.db.WithContext(ctx).Model(&model.NotaCredito{}).
		Select("MAX(numero_nota)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *notaCreditoRepo) ListVentasConNota(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&model.NotaCredito{}).
		Where("venta_original_id IS NOT NULL").
		Pluck("venta_original_id", &ids).Error
	return ids, err
}

func (r *notaCreditoRepo) DB() *gorm.DB { return r.db }
