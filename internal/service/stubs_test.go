package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/naimp074/stock1/internal/model"
)

// In-memory stubs for the repository interfaces. DB() returns nil on all of
// them, so runTx executes the callback directly without a real transaction.

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ─── ProductoRepository ──────────────────────────────────────────────────────

type stockUpdate struct {
	ID       uuid.UUID
	Cantidad int
}

type productoRepoStub struct {
	byID    map[uuid.UUID]model.Producto
	updates []stockUpdate
}

func newProductoRepoStub(productos ...model.Producto) *productoRepoStub {
	s := &productoRepoStub{byID: make(map[uuid.UUID]model.Producto)}
	for _, p := range productos {
		s.byID[p.ID] = p
	}
	return s
}

func (s *productoRepoStub) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.byID[p.ID] = *p
	return nil
}

func (s *productoRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := p
	return &cp, nil
}

func (s *productoRepoStub) List(_ context.Context) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, p)
	}
	return out, nil
}

func (s *productoRepoStub) Update(_ context.Context, p *model.Producto) error {
	s.byID[p.ID] = *p
	return nil
}

func (s *productoRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.byID, id)
	return nil
}

func (s *productoRepoStub) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Producto, error) {
	return s.FindByID(context.Background(), id)
}

func (s *productoRepoStub) UpdateCantidadTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := s.byID[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Cantidad = cantidad
	s.byID[id] = p
	s.updates = append(s.updates, stockUpdate{ID: id, Cantidad: cantidad})
	return nil
}

func (s *productoRepoStub) BulkInsertTx(_ *gorm.DB, productos []model.Producto) error {
	for i := range productos {
		if productos[i].ID == uuid.Nil {
			productos[i].ID = uuid.New()
		}
		s.byID[productos[i].ID] = productos[i]
	}
	return nil
}

func (s *productoRepoStub) DB() *gorm.DB { return nil }

// ─── VentaRepository ─────────────────────────────────────────────────────────

type ventaRepoStub struct {
	ventas    []model.Venta
	created   []model.Venta
	createErr error
	lastLimit int
}

func (s *ventaRepoStub) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if s.createErr != nil {
		return s.createErr
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.created = append(s.created, *v)
	return nil
}

func (s *ventaRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	for i := range s.ventas {
		if s.ventas[i].ID == id {
			cp := s.ventas[i]
			return &cp, nil
		}
	}
	for i := range s.created {
		if s.created[i].ID == id {
			cp := s.created[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *ventaRepoStub) List(_ context.Context, limit int) ([]model.Venta, error) {
	s.lastLimit = limit
	if limit > len(s.ventas) {
		limit = len(s.ventas)
	}
	return s.ventas[:limit], nil
}

func (s *ventaRepoStub) DB() *gorm.DB { return nil }

// ─── MovimientoStockRepository ───────────────────────────────────────────────

type movStockRepoStub struct {
	movimientos []model.MovimientoStock
}

func (s *movStockRepoStub) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.movimientos = append(s.movimientos, *m)
	return nil
}

func (s *movStockRepoStub) List(_ context.Context, productoID *uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range s.movimientos {
		if productoID != nil && m.ProductoID != *productoID {
			continue
		}
		out = append(out, m)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ─── Numerador ───────────────────────────────────────────────────────────────

type numeradorStub struct {
	siguiente int64
	err       error
}

func (n *numeradorStub) NextNumeroFactura(context.Context) (int64, error) {
	if n.err != nil {
		return 0, n.err
	}
	return n.siguiente, nil
}

// ─── CuentaRepository ────────────────────────────────────────────────────────

type cuentaRepoStub struct {
	cuentas     map[uuid.UUID]model.CuentaCorriente
	movimientos []model.MovimientoCuenta
}

func newCuentaRepoStub(cuentas ...model.CuentaCorriente) *cuentaRepoStub {
	s := &cuentaRepoStub{cuentas: make(map[uuid.UUID]model.CuentaCorriente)}
	for _, c := range cuentas {
		s.cuentas[c.ID] = c
	}
	return s
}

func (s *cuentaRepoStub) Create(_ context.Context, c *model.CuentaCorriente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	s.cuentas[c.ID] = *c
	return nil
}

func (s *cuentaRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.CuentaCorriente, error) {
	c, ok := s.cuentas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := c
	return &cp, nil
}

func (s *cuentaRepoStub) List(_ context.Context) ([]model.CuentaCorriente, error) {
	out := make([]model.CuentaCorriente, 0, len(s.cuentas))
	for _, c := range s.cuentas {
		out = append(out, c)
	}
	return out, nil
}

func (s *cuentaRepoStub) UpdateNombre(_ context.Context, id uuid.UUID, cliente string) error {
	c, ok := s.cuentas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Cliente = cliente
	s.cuentas[id] = c
	return nil
}

func (s *cuentaRepoStub) CreateMovimiento(_ context.Context, _ *gorm.DB, m *model.MovimientoCuenta) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	s.movimientos = append(s.movimientos, *m)
	return nil
}

func (s *cuentaRepoStub) FindMovimientoByID(_ context.Context, id uuid.UUID) (*model.MovimientoCuenta, error) {
	for i := range s.movimientos {
		if s.movimientos[i].ID == id {
			cp := s.movimientos[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *cuentaRepoStub) ListMovimientos(_ context.Context, cuentaID uuid.UUID, limit int) ([]model.MovimientoCuenta, error) {
	var out []model.MovimientoCuenta
	for _, m := range s.movimientos {
		if m.CuentaID == cuentaID {
			out = append(out, m)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *cuentaRepoStub) ListMovimientosTodos(_ context.Context) ([]model.MovimientoCuenta, error) {
	return append([]model.MovimientoCuenta(nil), s.movimientos...), nil
}

func (s *cuentaRepoStub) UpdateMovimiento(_ context.Context, m *model.MovimientoCuenta) error {
	for i := range s.movimientos {
		if s.movimientos[i].ID == m.ID {
			s.movimientos[i] = *m
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *cuentaRepoStub) DeleteMovimiento(_ context.Context, id uuid.UUID) error {
	for i := range s.movimientos {
		if s.movimientos[i].ID == id {
			s.movimientos = append(s.movimientos[:i], s.movimientos[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *cuentaRepoStub) DB() *gorm.DB { return nil }

// ─── NotaCreditoRepository ───────────────────────────────────────────────────

type notaRepoStub struct {
	notas   []model.NotaCredito
	max     int64
	maxErr  error
	conNota []uuid.UUID
}

func (s *notaRepoStub) Create(_ context.Context, _ *gorm.DB, n *model.NotaCredito) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	s.notas = append(s.notas, *n)
	return nil
}

func (s *notaRepoStub) FindByID(_ context.Context, id uuid.UUID) (*model.NotaCredito, error) {
	for i := range s.notas {
		if s.notas[i].ID == id {
			cp := s.notas[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *notaRepoStub) List(_ context.Context, limit int) ([]model.NotaCredito, error) {
	out := append([]model.NotaCredito(nil), s.notas...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *notaRepoStub) Update(_ context.Context, n *model.NotaCredito) error {
	for i := range s.notas {
		if s.notas[i].ID == n.ID {
			s.notas[i] = *n
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *notaRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	for i := range s.notas {
		if s.notas[i].ID == id {
			s.notas = append(s.notas[:i], s.notas[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *notaRepoStub) MaxNumeroNota(context.Context) (int64, error) {
	if s.maxErr != nil {
		return 0, s.maxErr
	}
	return s.max, nil
}

func (s *notaRepoStub) ListVentasConNota(context.Context) ([]uuid.UUID, error) {
	return append([]uuid.UUID(nil), s.conNota...), nil
}

func (s *notaRepoStub) DB() *gorm.DB { return nil }

var errStub = errors.New("stub failure")
