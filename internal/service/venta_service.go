package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/infra"
	"github.com/naimp074/stock1/internal/model"
	"github.com/naimp074/stock1/internal/repository"
	"github.com/naimp074/stock1/internal/worker"
)

// Numerador entrega números de factura consecutivos. En producción es el
// contador de la tabla configuracion; los tests inyectan uno falso.
type Numerador interface {
	NextNumeroFactura(ctx context.Context) (int64, error)
}

// VentaService registra ventas y sirve sus comprobantes. Una venta congela
// nombre y precio de cada producto al momento de venderse; el catálogo puede
// cambiar después sin tocar el histórico.
type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) ([]dto.VentaResponse, error)
	GenerarFacturaPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

const limiteVentasDefault = 50

type ventaService struct {
	repo          repository.VentaRepository
	productoRepo  repository.ProductoRepository
	movStockRepo  repository.MovimientoStockRepository
	numerador     Numerador
	dispatcher    *worker.Dispatcher
	nombreNegocio string
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	movStockRepo repository.MovimientoStockRepository,
	numerador Numerador,
	dispatcher *worker.Dispatcher,
	nombreNegocio string,
) VentaService {
	return &ventaService{
		repo:          repo,
		productoRepo:  productoRepo,
		movStockRepo:  movStockRepo,
		numerador:     numerador,
		dispatcher:    dispatcher,
		nombreNegocio: nombreNegocio,
	}
}

// runTx corre fn dentro de una transacción gorm. Con db en nil (stubs de
// test) ejecuta fn(nil) directo, sin transacción.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// lineaVenta es un item ya resuelto contra el catálogo: el snapshot que se
// guarda más el id para descontar stock.
type lineaVenta struct {
	productoID uuid.UUID
	snapshot   model.ItemVenta
}

// RegistrarVenta hace la escritura completa en una sola transacción: inserta
// la venta, baja el stock de cada línea (con piso en cero) y deja un
// movimiento de auditoría por descuento. La resolución de items y el número
// de factura pasan antes de abrir la transacción; el PDF se encola después,
// fuera de ella.
func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	lineas, total, err := s.resolverLineas(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	numeroFactura := s.proximoNumero(ctx)

	venta := model.Venta{
		Cliente:       req.Cliente,
		Total:         total,
		NumeroFactura: numeroFactura,
		Fecha:         time.Now(),
		UserID:        usuarioID,
	}
	for _, l := range lineas {
		venta.Items = append(venta.Items, l.snapshot)
	}

	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}
		for _, l := range lineas {
			if err := s.descontarStock(tx, &venta, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.encolarFactura(ctx, &venta, req.ClienteEmail)

	resp := ventaToResponse(&venta)
	return &resp, nil
}

// resolverLineas valida cada item contra el catálogo y congela nombre y
// precio vigentes. El precio que manda el cliente se ignora.
func (s *ventaService) resolverLineas(ctx context.Context, items []dto.ItemVentaRequest) ([]lineaVenta, decimal.Decimal, error) {
	lineas := make([]lineaVenta, 0, len(items))
	total := decimal.Zero

	for _, item := range items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("producto_id inválido: %w", err)
		}
		producto, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("producto %s no encontrado", item.ProductoID)
		}

		snap := model.ItemVenta{
			ProductoID:  producto.ID.String(),
			Nombre:      producto.Nombre,
			PrecioVenta: producto.PrecioVenta,
			Cantidad:    item.Cantidad,
		}
		total = total.Add(snap.PrecioVenta.Mul(decimal.NewFromInt(int64(snap.Cantidad))))
		lineas = append(lineas, lineaVenta{productoID: pid, snapshot: snap})
	}
	return lineas, total, nil
}

// proximoNumero pide el siguiente número de factura. Es best-effort: si el
// contador falla, la venta sale sin número en vez de rechazarse.
func (s *ventaService) proximoNumero(ctx context.Context) *int64 {
	if s.numerador == nil {
		return nil
	}
	n, err := s.numerador.NextNumeroFactura(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("venta: no se pudo obtener número de factura")
		return nil
	}
	return &n
}

// descontarStock baja la cantidad del producto sin dejarla negativa y
// registra el movimiento con el delta realmente aplicado (que puede ser
// menor al vendido si no había stock suficiente).
func (s *ventaService) descontarStock(tx *gorm.DB, venta *model.Venta, l lineaVenta) error {
	producto, err := s.productoRepo.FindByIDTx(tx, l.productoID)
	if err != nil {
		return fmt.Errorf("producto %s no encontrado", l.productoID)
	}

	nueva := producto.Cantidad - l.snapshot.Cantidad
	if nueva < 0 {
		nueva = 0
	}
	if err := s.productoRepo.UpdateCantidadTx(tx, l.productoID, nueva); err != nil {
		return fmt.Errorf("error descontando stock de %s: %w", l.snapshot.Nombre, err)
	}

	motivo := "Venta"
	if venta.NumeroFactura != nil {
		motivo = fmt.Sprintf("Venta #%d", *venta.NumeroFactura)
	}
	ventaRef := venta.ID
	return s.movStockRepo.CreateTx(tx, &model.MovimientoStock{
		ProductoID:   l.productoID,
		Tipo:         "venta",
		Cantidad:     nueva - producto.Cantidad,
		StockNuevo:   nueva,
		Motivo:       motivo,
		ReferenciaID: &ventaRef,
	})
}

// encolarFactura despacha el job del PDF. Si Redis no está, la venta ya
// quedó confirmada; solo se pierde el comprobante automático.
func (s *ventaService) encolarFactura(ctx context.Context, venta *model.Venta, email *string) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.FacturaJobPayload{VentaID: venta.ID.String()}
	if email != nil && *email != "" {
		payload.ClienteEmail = email
	}
	if err := s.dispatcher.EnqueueFactura(ctx, payload); err != nil {
		log.Warn().Err(err).Str("venta_id", venta.ID.String()).Msg("venta: no se pudo encolar la factura")
	}
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	resp := ventaToResponse(venta)
	return &resp, nil
}

func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) ([]dto.VentaResponse, error) {
	if filter.Limit < 1 {
		filter.Limit = limiteVentasDefault
	}
	ventas, err := s.repo.List(ctx, filter.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		out[i] = ventaToResponse(&ventas[i])
	}
	return out, nil
}

func (s *ventaService) GenerarFacturaPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("venta no encontrada")
	}
	return infra.GenerateFacturaPDF(s.nombreNegocio, venta)
}

func ventaToResponse(v *model.Venta) dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			ProductoID:  item.ProductoID,
			Nombre:      item.Nombre,
			PrecioVenta: item.PrecioVenta,
			Cantidad:    item.Cantidad,
			Subtotal:    item.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad))),
		})
	}
	return dto.VentaResponse{
		ID:            v.ID.String(),
		Cliente:       v.Cliente,
		Items:         items,
		Total:         v.Total,
		NumeroFactura: v.NumeroFactura,
		Fecha:         v.Fecha.Format(time.RFC3339),
	}
}
