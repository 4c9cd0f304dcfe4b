package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/naimp074/stock1/internal/model"
)

// UmbralStockBajo is the on-hand quantity at or below which a product is
// flagged on the dashboard.
const UmbralStockBajo = 5

const fechaDia = "2006-01-02"

// PuntoDia is one slot of the 7-day sales series.
type PuntoDia struct {
	Fecha string          `json:"fecha"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

// ProductoTop is one entry of the units-sold ranking.
type ProductoTop struct {
	ProductoID string `json:"id"`
	Nombre     string `json:"nombre"`
	Cantidad   int    `json:"cantidad"`
}

// IngresoAnual is net revenue for one calendar year.
type IngresoAnual struct {
	Anio  int             `json:"anio"`
	Total decimal.Decimal `json:"total"`
}

// IngresoMensual is revenue for one calendar month plus its share of the
// historical total.
type IngresoMensual struct {
	Anio       int             `json:"anio"`
	Mes        int             `json:"mes"`
	Total      decimal.Decimal `json:"total"`
	Porcentaje decimal.Decimal `json:"porcentaje"`
}

// Snapshot is the full dashboard payload: period totals net of credit
// notes, the 7-day series, the top-products ranking, yearly and monthly
// revenue tables and the low-stock list.
type Snapshot struct {
	TotalHoy        decimal.Decimal  `json:"total_hoy"`
	TotalSemana     decimal.Decimal  `json:"total_semana"`
	TotalMes        decimal.Decimal  `json:"total_mes"`
	Serie7Dias      []PuntoDia       `json:"serie_7_dias"`
	TopProductos    []ProductoTop    `json:"top_productos"`
	IngresosPorAnio []IngresoAnual   `json:"ingresos_por_anio"`
	IngresosPorMes  []IngresoMensual `json:"ingresos_por_mes"`
	TotalHistorico  decimal.Decimal  `json:"total_historico"`
	StockBajo       []model.Producto `json:"stock_bajo"`
}

// Build reconciles sales and credit notes into a Snapshot relative to
// ahora (local calendar time). It never mutates its inputs and calling it
// twice with the same rows yields identical output. Any panic during the
// pass degrades to an empty snapshot: a malformed record must not blank
// out the whole dashboard.
func Build(ventas []model.Venta, productos []model.Producto, notas []model.NotaCredito, ahora time.Time) (snap Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			snap = vacio(ahora)
		}
	}()

	loc := ahora.Location()
	inicioDia := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, loc)
	inicioSemana := inicioDia.AddDate(0, 0, -6)
	inicioMes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, loc)

	snap = vacio(ahora)
	serieIdx := make(map[string]int, len(snap.Serie7Dias))
	for i, p := range snap.Serie7Dias {
		serieIdx[p.Fecha] = i
	}

	type contadorProducto struct {
		nombre   string
		cantidad int
	}
	contador := make(map[string]*contadorProducto)
	var ordenProductos []string // first-seen order, for deterministic ties

	type claveMes struct{ anio, mes int }
	porAnio := make(map[int]decimal.Decimal)
	porMes := make(map[claveMes]decimal.Decimal)

	// Pass 1 — sales add into every bucket containing their fecha.
	for _, v := range ventas {
		if v.Fecha.IsZero() {
			continue
		}
		f := v.Fecha.In(loc)
		t := v.Total

		if !f.Before(inicioDia) {
			snap.TotalHoy = snap.TotalHoy.Add(t)
		}
		if !f.Before(inicioSemana) {
			snap.TotalSemana = snap.TotalSemana.Add(t)
		}
		if !f.Before(inicioMes) {
			snap.TotalMes = snap.TotalMes.Add(t)
		}
		if i, ok := serieIdx[f.Format(fechaDia)]; ok {
			snap.Serie7Dias[i].Total = snap.Serie7Dias[i].Total.Add(t)
		}

		porAnio[f.Year()] = porAnio[f.Year()].Add(t)
		k := claveMes{f.Year(), int(f.Month())}
		porMes[k] = porMes[k].Add(t)

		for _, it := range v.Items {
			c, ok := contador[it.ProductoID]
			if !ok {
				c = &contadorProducto{nombre: it.Nombre}
				contador[it.ProductoID] = c
				ordenProductos = append(ordenProductos, it.ProductoID)
			}
			c.cantidad += it.Cantidad
		}
	}

	// Pass 2 — credit notes subtract from each bucket independently: a
	// note dated today reduces hoy, semana and mes at once.
	for _, n := range notas {
		if n.Fecha.IsZero() {
			continue
		}
		f := n.Fecha.In(loc)
		t := n.Total

		if !f.Before(inicioDia) {
			snap.TotalHoy = snap.TotalHoy.Sub(t)
		}
		if !f.Before(inicioSemana) {
			snap.TotalSemana = snap.TotalSemana.Sub(t)
		}
		if !f.Before(inicioMes) {
			snap.TotalMes = snap.TotalMes.Sub(t)
		}
		if i, ok := serieIdx[f.Format(fechaDia)]; ok {
			snap.Serie7Dias[i].Total = snap.Serie7Dias[i].Total.Sub(t)
		}

		porAnio[f.Year()] = porAnio[f.Year()].Sub(t)

		for _, it := range n.Items {
			if c, ok := contador[it.ProductoID]; ok {
				c.cantidad -= it.Cantidad
			}
		}
	}

	// Over-subtraction from inconsistent data is clamped to zero for
	// display, never reported as negative.
	for i := range snap.Serie7Dias {
		if snap.Serie7Dias[i].Total.IsNegative() {
			snap.Serie7Dias[i].Total = decimal.Zero
		}
	}

	for _, id := range ordenProductos {
		c := contador[id]
		if c.cantidad <= 0 {
			continue
		}
		snap.TopProductos = append(snap.TopProductos, ProductoTop{
			ProductoID: id,
			Nombre:     c.nombre,
			Cantidad:   c.cantidad,
		})
	}
	sort.SliceStable(snap.TopProductos, func(i, j int) bool {
		return snap.TopProductos[i].Cantidad > snap.TopProductos[j].Cantidad
	})
	if len(snap.TopProductos) > 7 {
		snap.TopProductos = snap.TopProductos[:7]
	}

	for anio, total := range porAnio {
		snap.IngresosPorAnio = append(snap.IngresosPorAnio, IngresoAnual{Anio: anio, Total: total})
		snap.TotalHistorico = snap.TotalHistorico.Add(total)
	}
	sort.Slice(snap.IngresosPorAnio, func(i, j int) bool {
		return snap.IngresosPorAnio[i].Anio > snap.IngresosPorAnio[j].Anio
	})

	for k, total := range porMes {
		snap.IngresosPorMes = append(snap.IngresosPorMes, IngresoMensual{Anio: k.anio, Mes: k.mes, Total: total})
	}
	sort.Slice(snap.IngresosPorMes, func(i, j int) bool {
		a, b := snap.IngresosPorMes[i], snap.IngresosPorMes[j]
		if a.Anio != b.Anio {
			return a.Anio > b.Anio
		}
		return a.Mes > b.Mes
	})
	if len(snap.IngresosPorMes) > 12 {
		snap.IngresosPorMes = snap.IngresosPorMes[:12]
	}
	for i := range snap.IngresosPorMes {
		if !snap.TotalHistorico.IsZero() {
			snap.IngresosPorMes[i].Porcentaje = snap.IngresosPorMes[i].Total.
				Mul(cien).DivRound(snap.TotalHistorico, 2)
		}
	}

	for _, p := range productos {
		if p.Cantidad <= UmbralStockBajo {
			snap.StockBajo = append(snap.StockBajo, p)
		}
	}
	sort.SliceStable(snap.StockBajo, func(i, j int) bool {
		return snap.StockBajo[i].Cantidad < snap.StockBajo[j].Cantidad
	})

	return snap
}

// vacio returns an all-zero snapshot with the 7-day series pre-seeded so
// charts always have their slots.
func vacio(ahora time.Time) Snapshot {
	loc := ahora.Location()
	inicioDia := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, loc)

	serie := make([]PuntoDia, 0, 7)
	for i := 6; i >= 0; i-- {
		serie = append(serie, PuntoDia{
			Fecha: inicioDia.AddDate(0, 0, -i).Format(fechaDia),
			Total: decimal.Zero,
		})
	}
	return Snapshot{
		TotalHoy:        decimal.Zero,
		TotalSemana:     decimal.Zero,
		TotalMes:        decimal.Zero,
		Serie7Dias:      serie,
		TopProductos:    []ProductoTop{},
		IngresosPorAnio: []IngresoAnual{},
		IngresosPorMes:  []IngresoMensual{},
		TotalHistorico:  decimal.Zero,
		StockBajo:       []model.Producto{},
	}
}

// EstadisticasNotas summarises credit-note totals per period for the
// credit-note screen's header cards.
type EstadisticasNotas struct {
	TotalHoy     decimal.Decimal `json:"total_hoy"`
	TotalSemana  decimal.Decimal `json:"total_semana"`
	TotalMes     decimal.Decimal `json:"total_mes"`
	TotalGeneral decimal.Decimal `json:"total_general"`
	Cantidad     int             `json:"cantidad"`
}

// ResumirNotas aggregates credit notes into per-period totals relative to
// ahora. Notes without a usable fecha are skipped.
func ResumirNotas(notas []model.NotaCredito, ahora time.Time) EstadisticasNotas {
	loc := ahora.Location()
	hoy := ahora.In(loc).Format(fechaDia)
	hace7 := ahora.AddDate(0, 0, -7)
	inicioMes := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, loc)

	est := EstadisticasNotas{
		TotalHoy:     decimal.Zero,
		TotalSemana:  decimal.Zero,
		TotalMes:     decimal.Zero,
		TotalGeneral: decimal.Zero,
	}
	for _, n := range notas {
		if n.Fecha.IsZero() {
			continue
		}
		f := n.Fecha.In(loc)
		est.TotalGeneral = est.TotalGeneral.Add(n.Total)
		est.Cantidad++

		if f.Format(fechaDia) == hoy {
			est.TotalHoy = est.TotalHoy.Add(n.Total)
		}
		if !f.Before(hace7) {
			est.TotalSemana = est.TotalSemana.Add(n.Total)
		}
		if !f.Before(inicioMes) {
			est.TotalMes = est.TotalMes.Add(n.Total)
		}
	}
	return est
}
