package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/infra"
	"github.com/naimp074/stock1/internal/model"
	"github.com/naimp074/stock1/internal/repository"
)

type ProductoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	ImportarMasivo(ctx context.Context, usuarioID uuid.UUID, req dto.ImportarProductosRequest) (*dto.ImportarProductosResponse, error)
	ImportarExcel(ctx context.Context, usuarioID uuid.UUID, r io.Reader) (*dto.ImportarProductosResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	ListarMovimientosStock(ctx context.Context, productoID *uuid.UUID, limit int) ([]model.MovimientoStock, error)
	GenerarStockPDF(ctx context.Context) ([]byte, error)
}

type productoService struct {
	repo          repository.ProductoRepository
	movStockRepo  repository.MovimientoStockRepository
	nombreNegocio string
}

func NewProductoService(
	repo repository.ProductoRepository,
	movStockRepo repository.MovimientoStockRepository,
	nombreNegocio string,
) ProductoService {
	return &productoService{repo: repo, movStockRepo: movStockRepo, nombreNegocio: nombreNegocio}
}

func (s *productoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	p := &model.Producto{
		Nombre:       req.Nombre,
		PrecioCosto:  req.PrecioCosto,
		PrecioVenta:  req.PrecioVenta,
		Cantidad:     req.Cantidad,
		UnidadMedida: req.UnidadMedida,
		Proveedor:    req.Proveedor,
		Telefono:     req.Telefono,
		Imagen:       req.Imagen,
		UserID:       usuarioID,
	}
	if p.UnidadMedida == "" {
		p.UnidadMedida = "unidad"
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("producto no encontrado")
	}
	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.PrecioCosto != nil {
		p.PrecioCosto = *req.PrecioCosto
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.Cantidad != nil {
		p.Cantidad = *req.Cantidad
	}
	if req.UnidadMedida != nil {
		p.UnidadMedida = *req.UnidadMedida
	}
	if req.Proveedor != nil {
		p.Proveedor = req.Proveedor
	}
	if req.Telefono != nil {
		p.Telefono = req.Telefono
	}
	if req.Imagen != nil {
		p.Imagen = req.Imagen
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("producto no encontrado")
	}
	return s.repo.Delete(ctx, id)
}

// ImportarMasivo inserts a batch of products atomically and records one
// "importacion" stock movement per row with initial quantity.
func (s *productoService) ImportarMasivo(ctx context.Context, usuarioID uuid.UUID, req dto.ImportarProductosRequest) (*dto.ImportarProductosResponse, error) {
	productos := make([]model.Producto, 0, len(req.Productos))
	for _, row := range req.Productos {
		p := model.Producto{
			Nombre:       row.Nombre,
			PrecioCosto:  row.PrecioCosto,
			PrecioVenta:  row.PrecioVenta,
			Cantidad:     row.Cantidad,
			UnidadMedida: row.UnidadMedida,
			Proveedor:    row.Proveedor,
			Telefono:     row.Telefono,
			Imagen:       row.Imagen,
			UserID:       usuarioID,
		}
		if p.UnidadMedida == "" {
			p.UnidadMedida = "unidad"
		}
		productos = append(productos, p)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.BulkInsertTx(tx, productos); err != nil {
			return err
		}
		for i := range productos {
			if productos[i].Cantidad == 0 {
				continue
			}
			mov := &model.MovimientoStock{
				ProductoID: productos[i].ID,
				Tipo:       "importacion",
				Cantidad:   productos[i].Cantidad,
				StockNuevo: productos[i].Cantidad,
				Motivo:     "Carga masiva de productos",
			}
			if err := s.movStockRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &dto.ImportarProductosResponse{Insertados: len(productos)}, nil
}

// ImportarExcel parses an uploaded .xlsx catalog and delegates to
// ImportarMasivo, so both paths share the same transactional insert.
func (s *productoService) ImportarExcel(ctx context.Context, usuarioID uuid.UUID, r io.Reader) (*dto.ImportarProductosResponse, error) {
	filas, err := infra.ParseProductosExcel(r)
	if err != nil {
		return nil, err
	}
	if len(filas) == 0 {
		return nil, errors.New("el archivo no contiene filas de productos")
	}

	req := dto.ImportarProductosRequest{Productos: make([]dto.CrearProductoRequest, 0, len(filas))}
	for _, f := range filas {
		req.Productos = append(req.Productos, dto.CrearProductoRequest{
			Nombre:       f.Nombre,
			PrecioCosto:  f.PrecioCosto,
			PrecioVenta:  f.PrecioVenta,
			Cantidad:     f.Cantidad,
			UnidadMedida: f.UnidadMedida,
			Proveedor:    f.Proveedor,
			Telefono:     f.Telefono,
		})
	}
	return s.ImportarMasivo(ctx, usuarioID, req)
}

// AjustarStock applies a manual delta to a product's quantity. Negative
// adjustments floor at zero, matching the sale decrement rule.
func (s *productoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	var ajustado *model.Producto
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return errors.New("producto no encontrado")
		}
		nueva := p.Cantidad + req.Delta
		if nueva < 0 {
			nueva = 0
		}
		if err := s.repo.UpdateCantidadTx(tx, id, nueva); err != nil {
			return err
		}
		mov := &model.MovimientoStock{
			ProductoID: id,
			Tipo:       "ajuste_manual",
			Cantidad:   nueva - p.Cantidad,
			StockNuevo: nueva,
			Motivo:     req.Motivo,
		}
		if err := s.movStockRepo.CreateTx(tx, mov); err != nil {
			return err
		}
		p.Cantidad = nueva
		ajustado = p
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	resp := productoToResponse(ajustado)
	return &resp, nil
}

func (s *productoService) ListarMovimientosStock(ctx context.Context, productoID *uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	if limit < 1 {
		limit = 100
	}
	return s.movStockRepo.List(ctx, productoID, limit)
}

func (s *productoService) GenerarStockPDF(ctx context.Context) ([]byte, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	pdf, err := infra.GenerateStockPDF(s.nombreNegocio, productos)
	if err != nil {
		return nil, fmt.Errorf("generar pdf de stock: %w", err)
	}
	return pdf, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:           p.ID.String(),
		Nombre:       p.Nombre,
		PrecioCosto:  p.PrecioCosto,
		PrecioVenta:  p.PrecioVenta,
		Cantidad:     p.Cantidad,
		UnidadMedida: p.UnidadMedida,
		Proveedor:    p.Proveedor,
		Telefono:     p.Telefono,
		Imagen:       p.Imagen,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
