package repository

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/naimp074/stock1/internal/model"
)

// ConfiguracionRepository stores clave/valor settings, including the
// global invoice counter.
type ConfiguracionRepository interface {
	Get(ctx context.Context, clave string) (string, error)
	Set(ctx context.Context, clave, valor string) error
	// NextNumeroFactura advances the invoice counter atomically
	// (read + 1 → update inside one transaction) and returns the new number.
	NextNumeroFactura(ctx context.Context) (int64, error)
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) Get(ctx context.Context, clave string) (string, error) {
	var cfg model.Configuracion
	err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&cfg).Error
	return cfg.Valor, err
}

func (r *configuracionRepo) Set(ctx context.Context, clave, valor string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clave"}},
			DoUpdates: clause.AssignmentColumns([]string{"valor"}),
		}).
		Create(&model.Configuracion{Clave: clave, Valor: valor}).Error
}

func (r *configuracionRepo) NextNumeroFactura(ctx context.Context) (int64, error) {
	var nuevo int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cfg model.Configuracion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("clave = ?", model.ClaveUltimaFactura).
			First(&cfg).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			nuevo = 1
			return tx.Create(&model.Configuracion{
				Clave: model.ClaveUltimaFactura,
				Valor: "1",
			}).Error
		case err != nil:
			return err
		}

		ultimo, _ := strconv.ParseInt(cfg.Valor, 10, 64)
		nuevo = ultimo + 1
		return tx.Model(&model.Configuracion{}).
			Where("clave = ?", model.ClaveUltimaFactura).
			Update("valor", strconv.FormatInt(nuevo, 10)).Error
	})
	return nuevo, err
}
