package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/model"
)

// UsuarioRepository maneja las cuentas del sistema. Los usuarios nunca se
// borran, se desactivan, así el user_id estampado en ventas y movimientos
// sigue resolviendo.
type UsuarioRepository interface {
	Create(ctx context.Context, u *model.Usuario) error
	FindByUsername(ctx context.Context, username string) (*model.Usuario, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error)
	List(ctx context.Context) ([]model.Usuario, error)
	Update(ctx context.Context, u *model.Usuario) error
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

func NewUsuarioRepository(db *gorm.DB) UsuarioRepository { return &usuarioRepo{db} }

type usuarioRepo struct{ db *gorm.DB }

func (r *usuarioRepo) Create(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// FindByUsername resuelve el login: acepta username exacto o email sin
// distinguir mayúsculas, y solo considera cuentas activas.
func (r *usuarioRepo) FindByUsername(ctx context.Context, username string) (*model.Usuario, error) {
	var u model.Usuario
	err := r.db.WithContext(ctx).
		Where("(username = ? OR LOWER(email::text) = LOWER(?)) AND activo = true", username, username).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Usuario, error) {
	var u model.Usuario
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *usuarioRepo) List(ctx context.Context) ([]model.Usuario, error) {
	var usuarios []model.Usuario
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&usuarios).Error
	return usuarios, err
}

func (r *usuarioRepo) Update(ctx context.Context, u *model.Usuario) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usuarioRepo) Desactivar(ctx context.Context, id uuid.UUID) error {
	return r.cambiarActivo(ctx, id, false)
}

func (r *usuarioRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.cambiarActivo(ctx, id, true)
}

func (r *usuarioRepo) cambiarActivo(ctx context.Context, id uuid.UUID, activo bool) error {
	return r.db.WithContext(ctx).
		Model(&model.Usuario{}).
		Where("id = ?", id).
		Update("activo", activo).Error
}
