package infra

// pdf.go — document generation using go-pdf/fpdf.
// Three documents share the same A4 layout language: the sale invoice,
// the credit note and the stock listing. All of them render to a byte
// slice so handlers can stream the result and the worker can persist it.

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/naimp074/stock1/internal/model"
)

const fechaFactura = "02/01/2006"

// GenerateFacturaPDF renders the invoice for a completed sale.
// Layout: header with business name, FACTURA title, invoice number, issue
// and due dates (due = issue + 7 days), customer block, item table, total
// and a "Pagado" stamp.
func GenerateFacturaPDF(nombreNegocio string, venta *model.Venta) ([]byte, error) {
	pdf := newA4()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(nombreNegocio), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "FACTURA", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	numero := "Sin número"
	if venta.NumeroFactura != nil {
		numero = fmt.Sprintf("N° %d", *venta.NumeroFactura)
	}
	pdf.CellFormat(0, 6, tr(numero), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Fecha: "+venta.Fecha.Format(fechaFactura), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Vencimiento: "+venta.Fecha.AddDate(0, 0, 7).Format(fechaFactura), "", 1, "L", false, 0, "")

	cliente := "Consumidor Final"
	if venta.Cliente != nil && *venta.Cliente != "" {
		cliente = *venta.Cliente
	}
	pdf.CellFormat(0, 6, tr("Cliente: "+cliente), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeItemTable(pdf, tr, venta.Items)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "$"+venta.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetTextColor(0, 128, 0)
	pdf.CellFormat(0, 8, "Pagado", "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	return output(pdf)
}

// GenerateNotaCreditoPDF renders a credit note document.
func GenerateNotaCreditoPDF(nombreNegocio string, nota *model.NotaCredito) ([]byte, error) {
	pdf := newA4()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(nombreNegocio), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, tr("NOTA DE CRÉDITO"), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("N° %d", nota.NumeroNota), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Fecha: "+nota.Fecha.Format(fechaFactura), "", 1, "L", false, 0, "")
	if nota.NumeroFacturaOriginal != nil {
		pdf.CellFormat(0, 6, fmt.Sprintf("Factura original: N° %d", *nota.NumeroFacturaOriginal), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, tr("Cliente: "+nota.Cliente), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Motivo: "+nota.Motivo), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(nota.Items) > 0 {
		writeItemTable(pdf, tr, nota.Items)
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "TOTAL ACREDITADO:", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "$"+nota.Total.StringFixed(2), "", 1, "R", false, 0, "")

	if nota.Observaciones != nil && *nota.Observaciones != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr("Observaciones: "+*nota.Observaciones), "", "L", false)
	}

	return output(pdf)
}

// GenerateStockPDF renders the current catalog with stock on hand,
// flagging low-stock rows.
func GenerateStockPDF(nombreNegocio string, productos []model.Producto) ([]byte, error) {
	pdf := newA4()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr(nombreNegocio), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "LISTADO DE STOCK", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generado: "+time.Now().Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(80, 7, "Producto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Cantidad", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Unidad", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "P. Costo", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "P. Venta", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, p := range productos {
		if p.Cantidad <= 5 {
			pdf.SetTextColor(200, 0, 0)
		}
		pdf.CellFormat(80, 6, tr(recortar(p.Nombre, 45)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", p.Cantidad), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, tr(p.UnidadMedida), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, "$"+p.PrecioCosto.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, "$"+p.PrecioVenta.StringFixed(2), "1", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total de productos: %d", len(productos)), "", 1, "L", false, 0, "")

	return output(pdf)
}

func newA4() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()
	return pdf
}

func writeItemTable(pdf *fpdf.Fpdf, tr func(string) string, items model.ItemsVenta) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 7, "Producto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 7, "Cant.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Precio", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		subtotal := item.PrecioVenta.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		pdf.CellFormat(90, 6, tr(recortar(item.Nombre, 50)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("x%d", item.Cantidad), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, "$"+item.PrecioVenta.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, "$"+subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	}
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render: %w", err)
	}
	return buf.Bytes(), nil
}

func recortar(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
