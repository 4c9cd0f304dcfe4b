package infra

// excel.go — catalog import from .xlsx files using excelize.
// Expected layout: first sheet, header row, columns
//   Nombre | Precio Costo | Precio Venta | Cantidad | Unidad | Proveedor | Teléfono
// Extra columns are ignored. Rows with an empty name are skipped.

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// FilaProducto is one parsed catalog row.
type FilaProducto struct {
	Nombre       string
	PrecioCosto  decimal.Decimal
	PrecioVenta  decimal.Decimal
	Cantidad     int
	UnidadMedida string
	Proveedor    *string
	Telefono     *string
}

// ParseProductosExcel reads the first sheet of an xlsx file into catalog
// rows. The header row is detected by the "nombre" cell and skipped.
func ParseProductosExcel(r io.Reader) ([]FilaProducto, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excel: abrir archivo: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel: el archivo no tiene hojas")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("excel: leer filas: %w", err)
	}

	var filas []FilaProducto
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		nombre := strings.TrimSpace(celda(row, 0))
		if nombre == "" {
			continue
		}
		if i == 0 && strings.EqualFold(nombre, "nombre") {
			continue
		}

		fila := FilaProducto{
			Nombre:       nombre,
			PrecioCosto:  parseDecimal(celda(row, 1)),
			PrecioVenta:  parseDecimal(celda(row, 2)),
			Cantidad:     parseEntero(celda(row, 3)),
			UnidadMedida: strings.TrimSpace(celda(row, 4)),
		}
		if fila.UnidadMedida == "" {
			fila.UnidadMedida = "unidad"
		}
		if prov := strings.TrimSpace(celda(row, 5)); prov != "" {
			fila.Proveedor = &prov
		}
		if tel := strings.TrimSpace(celda(row, 6)); tel != "" {
			fila.Telefono = &tel
		}
		filas = append(filas, fila)
	}
	return filas, nil
}

func celda(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// parseDecimal tolerates "$ 1.234,56" style input and empty cells.
func parseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") && strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseEntero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}
