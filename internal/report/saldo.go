// Package report holds the pure aggregation core: account balances from
// movement ledgers and the dashboard snapshot reconciling sales against
// credit notes. Nothing here touches the database — callers fetch rows and
// pass them in, so every function is deterministic over its inputs.
package report

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/naimp074/stock1/internal/model"
)

var cien = decimal.NewFromInt(100)

// MontoEfectivo returns the effective amount of one movement:
// monto − monto·descuento/100 when a discount is present, else monto.
// Rounding happens only at display time, never here.
func MontoEfectivo(m model.MovimientoCuenta) decimal.Decimal {
	if m.Descuento.IsPositive() {
		return m.Monto.Sub(m.Monto.Mul(m.Descuento).Div(cien))
	}
	return m.Monto
}

// Saldo computes the balance of one account from its movements: cargos add
// the effective amount, pagos subtract it. The result is a pure total, so
// input order is irrelevant.
func Saldo(movs []model.MovimientoCuenta) decimal.Decimal {
	saldo := decimal.Zero
	for _, m := range movs {
		efectivo := MontoEfectivo(m)
		if m.Tipo == model.TipoPago {
			saldo = saldo.Sub(efectivo)
		} else {
			saldo = saldo.Add(efectivo)
		}
	}
	return saldo
}

// CuentaConSaldo is a CuentaCorriente enriched with its derived balance,
// used by the account summary list.
type CuentaConSaldo struct {
	model.CuentaCorriente
	Saldo decimal.Decimal `json:"saldo"`
}

// SaldosPorCuenta computes the balance of every account from a flat list
// of movements, grouping by cuenta_id. Accounts without movements get
// saldo 0. The input account order is preserved, and each balance agrees
// with Saldo applied to that account's movements alone.
func SaldosPorCuenta(cuentas []model.CuentaCorriente, movs []model.MovimientoCuenta) []CuentaConSaldo {
	porCuenta := make(map[uuid.UUID]decimal.Decimal, len(cuentas))
	for _, m := range movs {
		efectivo := MontoEfectivo(m)
		if m.Tipo == model.TipoPago {
			efectivo = efectivo.Neg()
		}
		porCuenta[m.CuentaID] = porCuenta[m.CuentaID].Add(efectivo)
	}

	out := make([]CuentaConSaldo, 0, len(cuentas))
	for _, c := range cuentas {
		out = append(out, CuentaConSaldo{CuentaCorriente: c, Saldo: porCuenta[c.ID]})
	}
	return out
}
