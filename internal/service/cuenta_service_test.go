package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/model"
)

func TestRegistrarMovimientoCargo(t *testing.T) {
	cuenta := model.CuentaCorriente{ID: uuid.New(), Cliente: "Don Mario"}
	repo := newCuentaRepoStub(cuenta)
	ventas := &ventaRepoStub{}
	svc := NewCuentaService(repo, ventas)

	resp, err := svc.RegistrarMovimiento(context.Background(), uuid.New(), dto.RegistrarMovimientoRequest{
		CuentaID: cuenta.ID.String(),
		Tipo:     model.TipoCargo,
		Monto:    dec("1500"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.TipoCargo, resp.Tipo)
	assert.True(t, dec("1500").Equal(resp.MontoEfectivo))
	require.Len(t, repo.movimientos, 1)
	assert.Empty(t, ventas.created, "un cargo no genera ingreso en ventas")
}

func TestRegistrarMovimientoPagoGeneraVentaDerivada(t *testing.T) {
	cuenta := model.CuentaCorriente{ID: uuid.New(), Cliente: "Don Mario"}
	repo := newCuentaRepoStub(cuenta)
	ventas := &ventaRepoStub{}
	svc := NewCuentaService(repo, ventas)

	resp, err := svc.RegistrarMovimiento(context.Background(), uuid.New(), dto.RegistrarMovimientoRequest{
		CuentaID:  cuenta.ID.String(),
		Tipo:      model.TipoPago,
		Monto:     dec("200"),
		Descuento: dec("10"),
	})
	require.NoError(t, err)

	assert.True(t, dec("180").Equal(resp.MontoEfectivo), "200 menos 10%")

	// El cobro se espeja en ventas con el producto pseudo de cuenta corriente.
	require.Len(t, ventas.created, 1)
	venta := ventas.created[0]
	assert.True(t, dec("180").Equal(venta.Total))
	require.NotNil(t, venta.Cliente)
	assert.Equal(t, "Don Mario", *venta.Cliente)
	require.Len(t, venta.Items, 1)
	assert.Equal(t, CuentaItemID, venta.Items[0].ProductoID)
	assert.Equal(t, "Pago cuenta corriente - Don Mario", venta.Items[0].Nombre)
	assert.Equal(t, 1, venta.Items[0].Cantidad)
	assert.True(t, dec("180").Equal(venta.Items[0].PrecioVenta))
}

func TestRegistrarMovimientoValidaciones(t *testing.T) {
	cuenta := model.CuentaCorriente{ID: uuid.New(), Cliente: "Ana"}
	svc := NewCuentaService(newCuentaRepoStub(cuenta), &ventaRepoStub{})
	ctx := context.Background()
	uid := uuid.New()

	t.Run("cuenta_id malformado", func(t *testing.T) {
		_, err := svc.RegistrarMovimiento(ctx, uid, dto.RegistrarMovimientoRequest{
			CuentaID: "xxx", Tipo: model.TipoCargo, Monto: dec("10"),
		})
		require.Error(t, err)
	})

	t.Run("cuenta inexistente", func(t *testing.T) {
		_, err := svc.RegistrarMovimiento(ctx, uid, dto.RegistrarMovimientoRequest{
			CuentaID: uuid.NewString(), Tipo: model.TipoCargo, Monto: dec("10"),
		})
		require.EqualError(t, err, "cuenta no encontrada")
	})

	t.Run("tipo desconocido", func(t *testing.T) {
		_, err := svc.RegistrarMovimiento(ctx, uid, dto.RegistrarMovimientoRequest{
			CuentaID: cuenta.ID.String(), Tipo: "ajuste", Monto: dec("10"),
		})
		require.EqualError(t, err, "tipo de movimiento inválido")
	})

	t.Run("monto cero", func(t *testing.T) {
		_, err := svc.RegistrarMovimiento(ctx, uid, dto.RegistrarMovimientoRequest{
			CuentaID: cuenta.ID.String(), Tipo: model.TipoCargo, Monto: dec("0"),
		})
		require.EqualError(t, err, "el monto debe ser mayor a cero")
	})
}

func TestObtenerCuentaConSaldoYMovimientos(t *testing.T) {
	cuenta := model.CuentaCorriente{ID: uuid.New(), Cliente: "Bruno"}
	repo := newCuentaRepoStub(cuenta)
	repo.movimientos = []model.MovimientoCuenta{
		{ID: uuid.New(), CuentaID: cuenta.ID, Tipo: model.TipoCargo, Monto: dec("500")},
		{ID: uuid.New(), CuentaID: cuenta.ID, Tipo: model.TipoPago, Monto: dec("200"), Descuento: dec("10")},
		{ID: uuid.New(), CuentaID: uuid.New(), Tipo: model.TipoCargo, Monto: dec("9999")}, // otra cuenta
	}
	svc := NewCuentaService(repo, &ventaRepoStub{})

	detalle, err := svc.ObtenerCuenta(context.Background(), cuenta.ID, 0)
	require.NoError(t, err)

	assert.Equal(t, "Bruno", detalle.Cuenta.Cliente)
	assert.True(t, dec("320").Equal(detalle.Cuenta.Saldo), "500 - (200 - 10%)")
	require.Len(t, detalle.Movimientos, 2, "solo movimientos de la cuenta pedida")
	assert.True(t, dec("180").Equal(detalle.Movimientos[1].MontoEfectivo))
}

func TestListarCuentasIncluyeSaldos(t *testing.T) {
	a := model.CuentaCorriente{ID: uuid.New(), Cliente: "Ana"}
	b := model.CuentaCorriente{ID: uuid.New(), Cliente: "Bruno"}
	repo := newCuentaRepoStub(a, b)
	repo.movimientos = []model.MovimientoCuenta{
		{ID: uuid.New(), CuentaID: a.ID, Tipo: model.TipoCargo, Monto: dec("300")},
		{ID: uuid.New(), CuentaID: a.ID, Tipo: model.TipoPago, Monto: dec("100")},
	}
	svc := NewCuentaService(repo, &ventaRepoStub{})

	cuentas, err := svc.ListarCuentas(context.Background())
	require.NoError(t, err)
	require.Len(t, cuentas, 2)

	porCliente := make(map[string]dto.CuentaResponse, len(cuentas))
	for _, c := range cuentas {
		porCliente[c.Cliente] = c
	}
	assert.True(t, dec("200").Equal(porCliente["Ana"].Saldo))
	assert.True(t, porCliente["Bruno"].Saldo.IsZero())
}

func TestObtenerCuentaFechaConZonaHoraria(t *testing.T) {
	bsas := time.FixedZone("-03", -3*60*60)
	cuenta := model.CuentaCorriente{
		ID:        uuid.New(),
		Cliente:   "Delia",
		CreatedAt: time.Date(2026, 3, 15, 10, 0, 0, 0, bsas),
	}
	repo := newCuentaRepoStub(cuenta)
	svc := NewCuentaService(repo, &ventaRepoStub{})

	detalle, err := svc.ObtenerCuenta(context.Background(), cuenta.ID, 0)
	require.NoError(t, err)

	// La fecha conserva el offset real, no un sufijo Z engañoso.
	assert.Equal(t, "2026-03-15T10:00:00-03:00", detalle.Cuenta.CreatedAt)
}

func TestActualizarMovimientoParcial(t *testing.T) {
	cuenta := model.CuentaCorriente{ID: uuid.New(), Cliente: "Carla"}
	repo := newCuentaRepoStub(cuenta)
	movID := uuid.New()
	concepto := "fiado"
	repo.movimientos = []model.MovimientoCuenta{
		{ID: movID, CuentaID: cuenta.ID, Tipo: model.TipoCargo, Monto: dec("100"), Concepto: &concepto},
	}
	svc := NewCuentaService(repo, &ventaRepoStub{})

	nuevo := "fiado de marzo"
	resp, err := svc.ActualizarMovimiento(context.Background(), movID, dto.ActualizarMovimientoRequest{
		Concepto: &nuevo,
	})
	require.NoError(t, err)

	assert.True(t, dec("100").Equal(resp.Monto), "el monto no tocado se conserva")
	require.NotNil(t, resp.Concepto)
	assert.Equal(t, "fiado de marzo", *resp.Concepto)

	montoMalo := dec("-5")
	_, err = svc.ActualizarMovimiento(context.Background(), movID, dto.ActualizarMovimientoRequest{
		Monto: &montoMalo,
	})
	require.EqualError(t, err, "el monto debe ser mayor a cero")
}

func TestEliminarMovimientoInexistente(t *testing.T) {
	svc := NewCuentaService(newCuentaRepoStub(), &ventaRepoStub{})
	err := svc.EliminarMovimiento(context.Background(), uuid.New())
	require.EqualError(t, err, "movimiento no encontrado")
}

func TestCrearCuentaArrancaEnCero(t *testing.T) {
	repo := newCuentaRepoStub()
	svc := NewCuentaService(repo, &ventaRepoStub{})

	resp, err := svc.CrearCuenta(context.Background(), uuid.New(), dto.CrearCuentaRequest{Cliente: "Nuevo"})
	require.NoError(t, err)
	assert.Equal(t, "Nuevo", resp.Cliente)
	assert.True(t, resp.Saldo.IsZero())
	assert.Len(t, repo.cuentas, 1)
}
