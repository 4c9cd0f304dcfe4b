package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naimp074/stock1/internal/model"
)

// ahora is fixed mid-day so boundary checks are unambiguous.
var ahora = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func venta(fecha time.Time, total string, items ...model.ItemVenta) model.Venta {
	return model.Venta{ID: uuid.New(), Items: items, Total: dec(total), Fecha: fecha}
}

func nota(fecha time.Time, total string, items ...model.ItemVenta) model.NotaCredito {
	return model.NotaCredito{ID: uuid.New(), Items: items, Total: dec(total), Fecha: fecha}
}

func item(id, nombre string, cantidad int) model.ItemVenta {
	return model.ItemVenta{ProductoID: id, Nombre: nombre, Cantidad: cantidad}
}

func TestBuildVacio(t *testing.T) {
	snap := Build(nil, nil, nil, ahora)

	assert.True(t, snap.TotalHoy.IsZero())
	assert.True(t, snap.TotalSemana.IsZero())
	assert.True(t, snap.TotalMes.IsZero())
	assert.True(t, snap.TotalHistorico.IsZero())
	assert.Empty(t, snap.TopProductos)
	assert.Empty(t, snap.StockBajo)

	// 7 pre-seeded slots, oldest first, ending today.
	require.Len(t, snap.Serie7Dias, 7)
	assert.Equal(t, "2026-03-09", snap.Serie7Dias[0].Fecha)
	assert.Equal(t, "2026-03-15", snap.Serie7Dias[6].Fecha)
	for _, p := range snap.Serie7Dias {
		assert.True(t, p.Total.IsZero())
	}
}

func TestBuildPeriodos(t *testing.T) {
	hoy := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	hace6 := time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)  // inside 7-day window
	hace7 := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)  // outside window, same month
	mesPasado := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	anioPasado := time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC)

	ventas := []model.Venta{
		venta(hoy, "100"),
		venta(hace6, "50"),
		venta(hace7, "30"),
		venta(mesPasado, "200"),
		venta(anioPasado, "1000"),
	}

	snap := Build(ventas, nil, nil, ahora)

	assert.True(t, dec("100").Equal(snap.TotalHoy))
	assert.True(t, dec("150").Equal(snap.TotalSemana), "hoy + hace 6 días")
	assert.True(t, dec("180").Equal(snap.TotalMes), "todo marzo")
	assert.True(t, dec("1380").Equal(snap.TotalHistorico))

	// Serie: slot 0 = 2026-03-09, slot 6 = hoy.
	assert.True(t, dec("50").Equal(snap.Serie7Dias[0].Total))
	assert.True(t, dec("100").Equal(snap.Serie7Dias[6].Total))

	// Yearly table newest first.
	require.Len(t, snap.IngresosPorAnio, 2)
	assert.Equal(t, 2026, snap.IngresosPorAnio[0].Anio)
	assert.True(t, dec("380").Equal(snap.IngresosPorAnio[0].Total))
	assert.Equal(t, 2025, snap.IngresosPorAnio[1].Anio)

	// Monthly table newest first with share of the historical total.
	require.Len(t, snap.IngresosPorMes, 3)
	assert.Equal(t, 3, snap.IngresosPorMes[0].Mes)
	assert.True(t, dec("180").Equal(snap.IngresosPorMes[0].Total))
	assert.True(t, dec("13.04").Equal(snap.IngresosPorMes[0].Porcentaje), "180/1380 del total histórico")
}

func TestBuildLimiteDelDia(t *testing.T) {
	medianoche := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	unTickAntes := medianoche.Add(-time.Nanosecond)

	ventas := []model.Venta{
		venta(medianoche, "100"),
		venta(unTickAntes, "40"),
	}

	snap := Build(ventas, nil, nil, ahora)

	// La medianoche exacta ya es "hoy"; un instante antes pertenece al 14.
	assert.True(t, dec("100").Equal(snap.TotalHoy))
	assert.True(t, dec("140").Equal(snap.TotalSemana), "el 14 sigue dentro de la ventana de 7 días")
	assert.True(t, dec("100").Equal(snap.Serie7Dias[6].Total))
	assert.True(t, dec("40").Equal(snap.Serie7Dias[5].Total))
}

func TestBuildMesesMasRecientes(t *testing.T) {
	// 13 meses consecutivos con ventas: de marzo 2025 a marzo 2026.
	var ventas []model.Venta
	for i := 0; i < 13; i++ {
		fecha := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		ventas = append(ventas, venta(fecha, "10"))
	}

	snap := Build(ventas, nil, nil, ahora)

	assert.True(t, dec("130").Equal(snap.TotalHistorico))

	// La tabla mensual conserva solo los 12 más recientes; el mes 13
	// (marzo 2025) queda afuera.
	require.Len(t, snap.IngresosPorMes, 12)
	assert.Equal(t, 2026, snap.IngresosPorMes[0].Anio)
	assert.Equal(t, 3, snap.IngresosPorMes[0].Mes)
	assert.Equal(t, 2025, snap.IngresosPorMes[11].Anio)
	assert.Equal(t, 4, snap.IngresosPorMes[11].Mes)
	for _, m := range snap.IngresosPorMes {
		assert.False(t, m.Anio == 2025 && m.Mes == 3, "marzo 2025 no debe figurar")
	}
}

func TestBuildNotasRestan(t *testing.T) {
	hoy := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	ventas := []model.Venta{venta(hoy, "100", item("p1", "Yerba", 2))}
	notas := []model.NotaCredito{nota(hoy, "30", item("p1", "Yerba", 1))}

	snap := Build(ventas, nil, notas, ahora)

	assert.True(t, dec("70").Equal(snap.TotalHoy))
	assert.True(t, dec("70").Equal(snap.TotalSemana))
	assert.True(t, dec("70").Equal(snap.TotalMes))
	assert.True(t, dec("70").Equal(snap.Serie7Dias[6].Total))
	assert.True(t, dec("70").Equal(snap.TotalHistorico))

	require.Len(t, snap.TopProductos, 1)
	assert.Equal(t, 1, snap.TopProductos[0].Cantidad, "2 vendidas - 1 devuelta")
}

func TestBuildClampeaNegativos(t *testing.T) {
	hoy := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	ventas := []model.Venta{venta(hoy, "50", item("p1", "Azúcar", 1))}
	notas := []model.NotaCredito{nota(hoy, "80", item("p1", "Azúcar", 3))}

	snap := Build(ventas, nil, notas, ahora)

	// The daily series never shows negatives.
	assert.True(t, snap.Serie7Dias[6].Total.IsZero())
	// Products whose net count drops to zero or below leave the ranking.
	assert.Empty(t, snap.TopProductos)
}

func TestBuildTopProductos(t *testing.T) {
	hoy := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	var ventas []model.Venta
	// 9 products, product i sells i+1 units.
	nombres := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	for i, n := range nombres {
		ventas = append(ventas, venta(hoy, "10", item(n, n, i+1)))
	}

	snap := Build(ventas, nil, nil, ahora)

	require.Len(t, snap.TopProductos, 7, "ranking capped at 7")
	assert.Equal(t, "i", snap.TopProductos[0].ProductoID)
	assert.Equal(t, 9, snap.TopProductos[0].Cantidad)
	assert.Equal(t, "c", snap.TopProductos[6].ProductoID)
}

func TestBuildStockBajo(t *testing.T) {
	productos := []model.Producto{
		{ID: uuid.New(), Nombre: "Harina", Cantidad: 12},
		{ID: uuid.New(), Nombre: "Sal", Cantidad: 5},
		{ID: uuid.New(), Nombre: "Aceite", Cantidad: 0},
		{ID: uuid.New(), Nombre: "Arroz", Cantidad: 3},
	}

	snap := Build(nil, productos, nil, ahora)

	require.Len(t, snap.StockBajo, 3)
	assert.Equal(t, "Aceite", snap.StockBajo[0].Nombre)
	assert.Equal(t, "Arroz", snap.StockBajo[1].Nombre)
	assert.Equal(t, "Sal", snap.StockBajo[2].Nombre)
}

func TestBuildIgnoraFechasVacias(t *testing.T) {
	ventas := []model.Venta{
		{ID: uuid.New(), Total: dec("100")}, // zero Fecha
		venta(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC), "40"),
	}

	snap := Build(ventas, nil, nil, ahora)
	assert.True(t, dec("40").Equal(snap.TotalHoy))
	assert.True(t, dec("40").Equal(snap.TotalHistorico))
}

func TestBuildEsDeterminista(t *testing.T) {
	hoy := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	ventas := []model.Venta{
		venta(hoy, "100", item("p1", "Yerba", 2), item("p2", "Mate", 2)),
		venta(hoy.AddDate(0, 0, -3), "60", item("p2", "Mate", 1)),
		venta(hoy.AddDate(0, -1, 0), "500", item("p3", "Termo", 4)),
	}
	notas := []model.NotaCredito{nota(hoy, "20", item("p1", "Yerba", 1))}
	productos := []model.Producto{{ID: uuid.New(), Nombre: "Sal", Cantidad: 2}}

	a := Build(ventas, productos, notas, ahora)
	b := Build(ventas, productos, notas, ahora)
	assert.Equal(t, a, b, "same rows, same snapshot")
}

func TestResumirNotas(t *testing.T) {
	notas := []model.NotaCredito{
		nota(time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC), "100"), // hoy
		nota(time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), "50"),  // semana y mes
		nota(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), "30"),   // solo mes
		nota(time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC), "500"), // histórico
		{ID: uuid.New(), Total: dec("999")},                       // sin fecha, ignorada
	}

	est := ResumirNotas(notas, ahora)

	assert.Equal(t, 4, est.Cantidad)
	assert.True(t, dec("100").Equal(est.TotalHoy))
	assert.True(t, dec("150").Equal(est.TotalSemana))
	assert.True(t, dec("180").Equal(est.TotalMes))
	assert.True(t, dec("680").Equal(est.TotalGeneral))
}
