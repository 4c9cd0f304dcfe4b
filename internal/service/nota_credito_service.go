package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/infra"
	"github.com/naimp074/stock1/internal/model"
	"github.com/naimp074/stock1/internal/report"
	"github.com/naimp074/stock1/internal/repository"
)

type NotaCreditoService interface {
	Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearNotaCreditoRequest) (*dto.NotaCreditoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.NotaCreditoResponse, error)
	Listar(ctx context.Context, limit int) ([]dto.NotaCreditoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarNotaCreditoRequest) (*dto.NotaCreditoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// VentasDisponibles lists sales not yet referenced by any credit note.
	VentasDisponibles(ctx context.Context, limit int) ([]dto.VentaResponse, error)
	Estadisticas(ctx context.Context) (*report.EstadisticasNotas, error)
	GenerarPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type notaCreditoService struct {
	repo          repository.NotaCreditoRepository
	ventaRepo     repository.VentaRepository
	productoRepo  repository.ProductoRepository
	movStockRepo  repository.MovimientoStockRepository
	nombreNegocio string
}

func NewNotaCreditoService(
	repo repository.NotaCreditoRepository,
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	movStockRepo repository.MovimientoStockRepository,
	nombreNegocio string,
) NotaCreditoService {
	return &notaCreditoService{
		repo:          repo,
		ventaRepo:     ventaRepo,
		productoRepo:  productoRepo,
		movStockRepo:  movStockRepo,
		nombreNegocio: nombreNegocio,
	}
}

// ── Crear ─────────────────────────────────────────────────────────────────────
// One transaction: insert the note and return each item's quantity to
// stock, with one "nota_credito" movement per restock. The note number is
// max existing + 1; when the lookup fails a timestamp-derived number keeps
// the note issuable.

func (s *notaCreditoService) Crear(ctx context.Context, usuarioID uuid.UUID, req dto.CrearNotaCreditoRequest) (*dto.NotaCreditoResponse, error) {
	if req.VentaOriginalID != nil {
		vid, err := uuid.Parse(*req.VentaOriginalID)
		if err != nil {
			return nil, fmt.Errorf("venta_original_id inválido: %w", err)
		}
		if _, err := s.ventaRepo.FindByID(ctx, vid); err != nil {
			return nil, errors.New("venta original no encontrada")
		}
		// Each sale admits at most one credit note.
		conNota, err := s.repo.ListVentasConNota(ctx)
		if err == nil {
			for _, id := range conNota {
				if id == vid {
					return nil, errors.New("la venta ya tiene una nota de crédito asociada")
				}
			}
		}
	}

	var numero int64
	if max, err := s.repo.MaxNumeroNota(ctx); err == nil {
		numero = max + 1
	} else {
		numero = time.Now().UnixMilli()
		log.Warn().Err(err).Int64("numero", numero).Msg("nota_credito: fallback de numeración")
	}

	nota := model.NotaCredito{
		Cliente:               req.Cliente,
		Motivo:                req.Motivo,
		Total:                 req.Total,
		NumeroNota:            numero,
		NumeroFacturaOriginal: req.NumeroFacturaOriginal,
		Observaciones:         req.Observaciones,
		Fecha:                 time.Now(),
		UserID:                usuarioID,
	}
	if nota.Cliente == "" {
		nota.Cliente = "Consumidor Final"
	}
	if req.VentaOriginalID != nil {
		vid, _ := uuid.Parse(*req.VentaOriginalID)
		nota.VentaOriginalID = &vid
	}
	nota.Items = make(model.ItemsVenta, 0, len(req.Items))
	for _, item := range req.Items {
		nota.Items = append(nota.Items, model.ItemVenta{
			ProductoID:  item.ProductoID,
			Nombre:      item.Nombre,
			PrecioVenta: item.PrecioVenta,
			Cantidad:    item.Cantidad,
		})
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &nota); err != nil {
			return err
		}

		for _, item := range nota.Items {
			// Pseudo items (account payments) have no catalog row to restock.
			pid, err := uuid.Parse(item.ProductoID)
			if err != nil {
				continue
			}
			p, err := s.productoRepo.FindByIDTx(tx, pid)
			if err != nil {
				continue
			}
			nueva := p.Cantidad + item.Cantidad
			if err := s.productoRepo.UpdateCantidadTx(tx, pid, nueva); err != nil {
				return fmt.Errorf("error devolviendo stock de %s: %w", item.Nombre, err)
			}
			notaRef := nota.ID
			mov := &model.MovimientoStock{
				ProductoID:   pid,
				Tipo:         "nota_credito",
				Cantidad:     item.Cantidad,
				StockNuevo:   nueva,
				Motivo:       fmt.Sprintf("Nota de crédito #%d", nota.NumeroNota),
				ReferenciaID: &notaRef,
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

	resp := notaToResponse(&nota)
	return &resp, nil
}

func (s *notaCreditoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.NotaCreditoResponse, error) {
	nota, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("nota de crédito no encontrada")
	}
	resp := notaToResponse(nota)
	return &resp, nil
}

func (s *notaCreditoService) Listar(ctx context.Context, limit int) ([]dto.NotaCreditoResponse, error) {
	if limit < 1 {
		limit = 100
	}
	notas, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.NotaCreditoResponse, len(notas))
	for i := range notas {
		resp[i] = notaToResponse(&notas[i])
	}
	return resp, nil
}

func (s *notaCreditoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarNotaCreditoRequest) (*dto.NotaCreditoResponse, error) {
	nota, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("nota de crédito no encontrada")
	}
	if req.Cliente != nil {
		nota.Cliente = *req.Cliente
	}
	if req.Motivo != nil {
		nota.Motivo = *req.Motivo
	}
	if req.Observaciones != nil {
		nota.Observaciones = req.Observaciones
	}
	if err := s.repo.Update(ctx, nota); err != nil {
		return nil, err
	}
	resp := notaToResponse(nota)
	return &resp, nil
}

func (s *notaCreditoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("nota de crédito no encontrada")
	}
	return s.repo.Delete(ctx, id)
}

func (s *notaCreditoService) VentasDisponibles(ctx context.Context, limit int) ([]dto.VentaResponse, error) {
	if limit < 1 {
		limit = 100
	}
	ventas, err := s.ventaRepo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	conNota, err := s.repo.ListVentasConNota(ctx)
	if err != nil {
		return nil, err
	}
	usadas := make(map[uuid.UUID]struct{}, len(conNota))
	for _, id := range conNota {
		usadas[id] = struct{}{}
	}

	resp := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		if _, ok := usadas[ventas[i].ID]; ok {
			continue
		}
		resp = append(resp, ventaToResponse(&ventas[i]))
	}
	return resp, nil
}

func (s *notaCreditoService) Estadisticas(ctx context.Context) (*report.EstadisticasNotas, error) {
	notas, err := s.repo.List(ctx, maxFilasReporte)
	if err != nil {
		return nil, err
	}
	est := report.ResumirNotas(notas, time.Now())
	return &est, nil
}

func (s *notaCreditoService) GenerarPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	nota, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("nota de crédito no encontrada")
	}
	return infra.GenerateNotaCreditoPDF(s.nombreNegocio, nota)
}

func notaToResponse(n *model.NotaCredito) dto.NotaCreditoResponse {
	items := make([]dto.ItemVentaResponse, 0, len(n.Items))
	for _, item := range n.Items {
		items = append(items, dto.ItemVentaResponse{
			ProductoID:  item.ProductoID,
			Nombre:      item.Nombre,
			PrecioVenta: item.PrecioVenta,
			Cantidad:    item.Cantidad,
			Subtotal:    item.PrecioVenta.Mul(decimalFromInt(item.Cantidad)),
		})
	}
	var ventaID *string
	if n.VentaOriginalID != nil {
		s := n.VentaOriginalID.String()
		ventaID = &s
	}
	return dto.NotaCreditoResponse{
		ID:                    n.ID.String(),
		Cliente:               n.Cliente,
		Motivo:                n.Motivo,
		Items:                 items,
		Total:                 n.Total,
		NumeroNota:            n.NumeroNota,
		NumeroFacturaOriginal: n.NumeroFacturaOriginal,
		VentaOriginalID:       ventaID,
		Observaciones:         n.Observaciones,
		Fecha:                 n.Fecha.Format(time.RFC3339),
	}
}
