package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/naimp074/stock1/internal/report"
	"github.com/naimp074/stock1/internal/repository"
)

// maxFilasReporte caps how many rows the dashboard pulls per table.
const maxFilasReporte = 5000

func decimalFromInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

type ReporteService interface {
	Resumen(ctx context.Context) (*report.Snapshot, error)
}

type reporteService struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	notaRepo     repository.NotaCreditoRepository
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	notaRepo repository.NotaCreditoRepository,
) ReporteService {
	return &reporteService{ventaRepo: ventaRepo, productoRepo: productoRepo, notaRepo: notaRepo}
}

// Resumen fetches the raw tables and hands them to the pure aggregation
// core. All period math happens relative to the server's local time.
func (s *reporteService) Resumen(ctx context.Context) (*report.Snapshot, error) {
	ventas, err := s.ventaRepo.List(ctx, maxFilasReporte)
	if err != nil {
		return nil, err
	}
	productos, err := s.productoRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	notas, err := s.notaRepo.List(ctx, maxFilasReporte)
	if err != nil {
		return nil, err
	}

	snap := report.Build(ventas, productos, notas, time.Now())
	return &snap, nil
}
