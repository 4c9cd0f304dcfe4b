package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/model"
)

// CuentaRepository covers customer accounts and their movement ledger.
type CuentaRepository interface {
	Create(ctx context.Context, c *model.CuentaCorriente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaCorriente, error)
	List(ctx context.Context) ([]model.CuentaCorriente, error)
	UpdateNombre(ctx context.Context, id uuid.UUID, cliente string) error

	CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuenta) error
	FindMovimientoByID(ctx context.Context, id uuid.UUID) (*model.MovimientoCuenta, error)
	ListMovimientos(ctx context.Context, cuentaID uuid.UUID, limit int) ([]model.MovimientoCuenta, error)
	ListMovimientosTodos(ctx context.Context) ([]model.MovimientoCuenta, error)
	UpdateMovimiento(ctx context.Context, m *model.MovimientoCuenta) error
	DeleteMovimiento(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type cuentaRepo struct{ db *gorm.DB }

func NewCuentaRepository(db *gorm.DB) CuentaRepository { return &cuentaRepo{db: db} }

func (r *cuentaRepo) Create(ctx context.Context, c *model.CuentaCorriente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuentaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CuentaCorriente, error) {
	var c model.CuentaCorriente
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cuentaRepo) List(ctx context.Context) ([]model.CuentaCorriente, error) {
	var cuentas []model.CuentaCorriente
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&cuentas).Error
	return cuentas, err
}

func (r *cuentaRepo) UpdateNombre(ctx context.Context, id uuid.UUID, cliente string) error {
	return r.db.WithContext(ctx).Model(&model.CuentaCorriente{}).
		Where("id = ?", id).Update("cliente", cliente).Error
}

func (r *cuentaRepo) CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCuenta) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cuentaRepo) FindMovimientoByID(ctx context.Context, id uuid.UUID) (*model.MovimientoCuenta, error) {
	var m model.MovimientoCuenta
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *cuentaRepo) ListMovimientos(ctx context.Context, cuentaID uuid.UUID, limit int) ([]model.MovimientoCuenta, error) {
	var movs []model.MovimientoCuenta
	err := r.db.WithContext(ctx).
		Where("cuenta_id = ?", cuentaID).
		Order("fecha DESC").
		Limit(limit).
		Find(&movs).Error
	return movs, err
}

// ListMovimientosTodos returns every movement of every account, for the
// summary balance list.
func (r *cuentaRepo) ListMovimientosTodos(ctx context.Context) ([]model.MovimientoCuenta, error) {
	var movs []model.MovimientoCuenta
	err := r.db.WithContext(ctx).Find(&movs).Error
	return movs, err
}

func (r *cuentaRepo) UpdateMovimiento(ctx context.Context, m *model.MovimientoCuenta) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *cuentaRepo) DeleteMovimiento(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MovimientoCuenta{}, id).Error
}

func (r *cuentaRepo) DB() *gorm.DB { return r.db }
