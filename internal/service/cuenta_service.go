package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/model"
	"github.com/naimp074/stock1/internal/report"
	"github.com/naimp074/stock1/internal/repository"
)

// CuentaItemID is the pseudo product id used when a collected payment is
// mirrored into ventas as a revenue row.
const CuentaItemID = "cuenta-corriente"

type CuentaService interface {
	CrearCuenta(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error)
	ListarCuentas(ctx context.Context) ([]dto.CuentaResponse, error)
	ObtenerCuenta(ctx context.Context, id uuid.UUID, limit int) (*dto.CuentaDetalleResponse, error)
	ActualizarCuenta(ctx context.Context, id uuid.UUID, req dto.ActualizarCuentaRequest) (*dto.CuentaResponse, error)

	RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error)
	ActualizarMovimiento(ctx context.Context, id uuid.UUID, req dto.ActualizarMovimientoRequest) (*dto.MovimientoResponse, error)
	EliminarMovimiento(ctx context.Context, id uuid.UUID) error
}

type cuentaService struct {
	repo      repository.CuentaRepository
	ventaRepo repository.VentaRepository
}

func NewCuentaService(repo repository.CuentaRepository, ventaRepo repository.VentaRepository) CuentaService {
	return &cuentaService{repo: repo, ventaRepo: ventaRepo}
}

func (s *cuentaService) CrearCuenta(ctx context.Context, usuarioID uuid.UUID, req dto.CrearCuentaRequest) (*dto.CuentaResponse, error) {
	cuenta := &model.CuentaCorriente{Cliente: req.Cliente, UserID: usuarioID}
	if err := s.repo.Create(ctx, cuenta); err != nil {
		return nil, err
	}
	resp := cuentaToResponse(cuenta, decimal.Zero)
	return &resp, nil
}

// ListarCuentas returns every account with its balance derived from the
// complete movement ledger in one pass.
func (s *cuentaService) ListarCuentas(ctx context.Context) ([]dto.CuentaResponse, error) {
	cuentas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := s.repo.ListMovimientosTodos(ctx)
	if err != nil {
		return nil, err
	}
	conSaldo := report.SaldosPorCuenta(cuentas, movs)
	resp := make([]dto.CuentaResponse, len(conSaldo))
	for i, c := range conSaldo {
		resp[i] = cuentaToResponse(&conSaldo[i].CuentaCorriente, c.Saldo)
	}
	return resp, nil
}

func (s *cuentaService) ObtenerCuenta(ctx context.Context, id uuid.UUID, limit int) (*dto.CuentaDetalleResponse, error) {
	cuenta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuenta no encontrada")
	}
	if limit < 1 {
		limit = 200
	}
	movs, err := s.repo.ListMovimientos(ctx, id, limit)
	if err != nil {
		return nil, err
	}

	detalle := &dto.CuentaDetalleResponse{
		Cuenta:      cuentaToResponse(cuenta, report.Saldo(movs)),
		Movimientos: make([]dto.MovimientoResponse, len(movs)),
	}
	for i := range movs {
		detalle.Movimientos[i] = movimientoToResponse(&movs[i])
	}
	return detalle, nil
}

func (s *cuentaService) ActualizarCuenta(ctx context.Context, id uuid.UUID, req dto.ActualizarCuentaRequest) (*dto.CuentaResponse, error) {
	if err := s.repo.UpdateNombre(ctx, id, req.Cliente); err != nil {
		return nil, err
	}
	cuenta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("cuenta no encontrada")
	}
	movs, err := s.repo.ListMovimientos(ctx, id, 200)
	if err != nil {
		movs = nil
	}
	resp := cuentaToResponse(cuenta, report.Saldo(movs))
	return &resp, nil
}

// ── RegistrarMovimiento ───────────────────────────────────────────────────────
// One transaction: insert the movement and, when it is a pago, mirror the
// collected amount into ventas as a derived revenue row so the dashboard
// counts account collections as income.

func (s *cuentaService) RegistrarMovimiento(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarMovimientoRequest) (*dto.MovimientoResponse, error) {
	cuentaID, err := uuid.Parse(req.CuentaID)
	if err != nil {
		return nil, fmt.Errorf("cuenta_id inválido: %w", err)
	}
	cuenta, err := s.repo.FindByID(ctx, cuentaID)
	if err != nil {
		return nil, errors.New("cuenta no encontrada")
	}
	if req.Tipo != model.TipoCargo && req.Tipo != model.TipoPago {
		return nil, errors.New("tipo de movimiento inválido")
	}
	if !req.Monto.IsPositive() {
		return nil, errors.New("el monto debe ser mayor a cero")
	}

	mov := &model.MovimientoCuenta{
		CuentaID:  cuentaID,
		Tipo:      req.Tipo,
		Monto:     req.Monto,
		Descuento: req.Descuento,
		Concepto:  req.Concepto,
		Factura:   req.Factura,
		Fecha:     time.Now(),
		UserID:    usuarioID,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateMovimiento(ctx, tx, mov); err != nil {
			return err
		}
		if mov.Tipo != model.TipoPago {
			return nil
		}

		// Derived revenue row: the effective amount enters ventas under the
		// pseudo product "cuenta-corriente".
		efectivo := report.MontoEfectivo(*mov)
		cliente := cuenta.Cliente
		venta := &model.Venta{
			Cliente: &cliente,
			Items: model.ItemsVenta{{
				ProductoID:  CuentaItemID,
				Nombre:      "Pago cuenta corriente - " + cuenta.Cliente,
				PrecioVenta: efectivo,
				Cantidad:    1,
			}},
			Total:  efectivo,
			Fecha:  mov.Fecha,
			UserID: usuarioID,
		}
		return s.ventaRepo.Create(ctx, tx, venta)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := movimientoToResponse(mov)
	return &resp, nil
}

func (s *cuentaService) ActualizarMovimiento(ctx context.Context, id uuid.UUID, req dto.ActualizarMovimientoRequest) (*dto.MovimientoResponse, error) {
	mov, err := s.repo.FindMovimientoByID(ctx, id)
	if err != nil {
		return nil, errors.New("movimiento no encontrado")
	}
	if req.Monto != nil {
		if !req.Monto.IsPositive() {
			return nil, errors.New("el monto debe ser mayor a cero")
		}
		mov.Monto = *req.Monto
	}
	if req.Descuento != nil {
		mov.Descuento = *req.Descuento
	}
	if req.Concepto != nil {
		mov.Concepto = req.Concepto
	}
	if req.Factura != nil {
		mov.Factura = req.Factura
	}
	if err := s.repo.UpdateMovimiento(ctx, mov); err != nil {
		return nil, err
	}
	resp := movimientoToResponse(mov)
	return &resp, nil
}

func (s *cuentaService) EliminarMovimiento(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindMovimientoByID(ctx, id); err != nil {
		return errors.New("movimiento no encontrado")
	}
	return s.repo.DeleteMovimiento(ctx, id)
}

func cuentaToResponse(c *model.CuentaCorriente, saldo decimal.Decimal) dto.CuentaResponse {
	return dto.CuentaResponse{
		ID:        c.ID.String(),
		Cliente:   c.Cliente,
		Saldo:     saldo,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}

func movimientoToResponse(m *model.MovimientoCuenta) dto.MovimientoResponse {
	return dto.MovimientoResponse{
		ID:            m.ID.String(),
		CuentaID:      m.CuentaID.String(),
		Tipo:          m.Tipo,
		Monto:         m.Monto,
		Descuento:     m.Descuento,
		MontoEfectivo: report.MontoEfectivo(*m),
		Concepto:      m.Concepto,
		Factura:       m.Factura,
		Fecha:         m.Fecha.Format(time.RFC3339),
	}
}
