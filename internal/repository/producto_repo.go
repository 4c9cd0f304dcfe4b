package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/model"
)

// ProductoRepository es el contrato de acceso al catálogo. Los servicios
// dependen de la interfaz y los tests la reemplazan por stubs en memoria.
//
// Los métodos *Tx operan dentro de una transacción abierta por el servicio
// (venta, nota de crédito, importación); reciben el tx en lugar de usar la
// conexión propia.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error)
	UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad int) error
	BulkInsertTx(tx *gorm.DB, productos []model.Producto) error

	// DB expone la conexión para que el servicio abra la transacción.
	DB() *gorm.DB
}

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db} }

type productoRepo struct{ db *gorm.DB }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List trae el catálogo completo, lo más nuevo primero. Las pantallas
// trabajan sobre el snapshot entero, igual que el sistema original.
func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, id).Error
}

func (r *productoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	if err := tx.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productoRepo) UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad int) error {
	return tx.Model(&model.Producto{}).
		Where("id = ?", id).
		Update("cantidad", cantidad).Error
}

// BulkInsertTx inserta el lote en un solo statement; gorm escribe los ids
// generados de vuelta en el slice.
func (r *productoRepo) BulkInsertTx(tx *gorm.DB, productos []model.Producto) error {
	if len(productos) == 0 {
		return nil
	}
	return tx.Create(&productos).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
