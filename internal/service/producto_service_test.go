package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naimp074/stock1/internal/dto"
	"github.com/naimp074/stock1/internal/model"
)

func TestCrearProductoUnidadPorDefecto(t *testing.T) {
	repo := newProductoRepoStub()
	svc := NewProductoService(repo, &movStockRepoStub{}, "Almacén Test")

	resp, err := svc.Crear(context.Background(), uuid.New(), dto.CrearProductoRequest{
		Nombre:      "Café molido",
		PrecioCosto: dec("2000"),
		PrecioVenta: dec("3500"),
		Cantidad:    8,
	})
	require.NoError(t, err)
	assert.Equal(t, "unidad", resp.UnidadMedida)
	assert.Equal(t, 8, resp.Cantidad)
}

func TestAjustarStockPositivo(t *testing.T) {
	p := model.Producto{ID: uuid.New(), Nombre: "Galletitas", Cantidad: 4}
	repo := newProductoRepoStub(p)
	movs := &movStockRepoStub{}
	svc := NewProductoService(repo, movs, "Almacén Test")

	resp, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta:  6,
		Motivo: "reposición proveedor",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, resp.Cantidad)
	require.Len(t, movs.movimientos, 1)
	assert.Equal(t, "ajuste_manual", movs.movimientos[0].Tipo)
	assert.Equal(t, 6, movs.movimientos[0].Cantidad)
	assert.Equal(t, 10, movs.movimientos[0].StockNuevo)
	assert.Equal(t, "reposición proveedor", movs.movimientos[0].Motivo)
}

func TestAjustarStockNegativoConPiso(t *testing.T) {
	p := model.Producto{ID: uuid.New(), Nombre: "Galletitas", Cantidad: 3}
	repo := newProductoRepoStub(p)
	movs := &movStockRepoStub{}
	svc := NewProductoService(repo, movs, "Almacén Test")

	resp, err := svc.AjustarStock(context.Background(), p.ID, dto.AjustarStockRequest{
		Delta:  -10,
		Motivo: "merma",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Cantidad)
	require.Len(t, movs.movimientos, 1)
	assert.Equal(t, -3, movs.movimientos[0].Cantidad, "el movimiento registra lo realmente descontado")
	assert.Equal(t, 0, movs.movimientos[0].StockNuevo)
}

func TestAjustarStockProductoInexistente(t *testing.T) {
	svc := NewProductoService(newProductoRepoStub(), &movStockRepoStub{}, "Almacén Test")

	_, err := svc.AjustarStock(context.Background(), uuid.New(), dto.AjustarStockRequest{Delta: 1, Motivo: "x"})
	require.EqualError(t, err, "producto no encontrado")
}

func TestImportarMasivoRegistraMovimientos(t *testing.T) {
	repo := newProductoRepoStub()
	movs := &movStockRepoStub{}
	svc := NewProductoService(repo, movs, "Almacén Test")

	resp, err := svc.ImportarMasivo(context.Background(), uuid.New(), dto.ImportarProductosRequest{
		Productos: []dto.CrearProductoRequest{
			{Nombre: "Arroz", PrecioCosto: dec("900"), PrecioVenta: dec("1500"), Cantidad: 10},
			{Nombre: "Lentejas", PrecioCosto: dec("700"), PrecioVenta: dec("1200"), Cantidad: 0},
			{Nombre: "Porotos", PrecioCosto: dec("650"), PrecioVenta: dec("1100"), Cantidad: 5},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Insertados)
	assert.Len(t, repo.byID, 3)
	// Solo las filas con stock inicial generan movimiento de importación.
	require.Len(t, movs.movimientos, 2)
	for _, m := range movs.movimientos {
		assert.Equal(t, "importacion", m.Tipo)
		assert.Equal(t, m.Cantidad, m.StockNuevo)
		assert.NotEqual(t, uuid.Nil, m.ProductoID, "el id generado en el insert llega al movimiento")
	}
}

func TestActualizarProductoParcial(t *testing.T) {
	prov := "Distribuidora Sur"
	p := model.Producto{
		ID: uuid.New(), Nombre: "Queso", PrecioCosto: dec("4000"),
		PrecioVenta: dec("6000"), Cantidad: 2, UnidadMedida: "kg", Proveedor: &prov,
	}
	repo := newProductoRepoStub(p)
	svc := NewProductoService(repo, &movStockRepoStub{}, "Almacén Test")

	nuevoPrecio := dec("6500")
	resp, err := svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{
		PrecioVenta: &nuevoPrecio,
	})
	require.NoError(t, err)

	assert.True(t, dec("6500").Equal(resp.PrecioVenta))
	assert.Equal(t, "Queso", resp.Nombre, "los campos no enviados no cambian")
	assert.Equal(t, "kg", resp.UnidadMedida)
	require.NotNil(t, resp.Proveedor)
	assert.Equal(t, "Distribuidora Sur", *resp.Proveedor)
}

func TestEliminarProductoInexistente(t *testing.T) {
	svc := NewProductoService(newProductoRepoStub(), &movStockRepoStub{}, "Almacén Test")
	err := svc.Eliminar(context.Background(), uuid.New())
	require.EqualError(t, err, "producto no encontrado")
}

func TestListarMovimientosStockLimitPorDefecto(t *testing.T) {
	movs := &movStockRepoStub{}
	for i := 0; i < 3; i++ {
		movs.movimientos = append(movs.movimientos, model.MovimientoStock{ID: uuid.New(), ProductoID: uuid.New()})
	}
	svc := NewProductoService(newProductoRepoStub(), movs, "Almacén Test")

	out, err := svc.ListarMovimientosStock(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Len(t, out, 3)

	pid := movs.movimientos[0].ProductoID
	out, err = svc.ListarMovimientosStock(context.Background(), &pid, 10)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, pid, out[0].ProductoID)
}
