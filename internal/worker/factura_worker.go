package worker

// factura_worker.go
// Processes invoice jobs from QueueFactura: renders the sale's invoice
// PDF, persists it under the storage path and, when the customer left an
// email, enqueues the delivery job.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/naimp074/stock1/internal/infra"
	"github.com/naimp074/stock1/internal/repository"
)

// FacturaJobPayload is the job envelope sent to QueueFactura.
type FacturaJobPayload struct {
	VentaID      string  `json:"venta_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

type FacturaWorker struct {
	ventaRepo      repository.VentaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	nombreNegocio  string
}

func NewFacturaWorker(
	ventaRepo repository.VentaRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	nombreNegocio string,
) *FacturaWorker {
	return &FacturaWorker{
		ventaRepo:      ventaRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		nombreNegocio:  nombreNegocio,
	}
}

// Process handles a single invoice job. A malformed payload is dropped;
// any failure after that is returned so the job lands in the DLQ.
func (w *FacturaWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload FacturaJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("factura_worker: invalid payload")
		return nil
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("factura_worker: invalid venta_id")
		return nil
	}

	venta, err := w.ventaRepo.FindByID(ctx, ventaID)
	if err != nil {
		return fmt.Errorf("factura_worker: venta %s not found: %w", payload.VentaID, err)
	}

	pdfBytes, err := infra.GenerateFacturaPDF(w.nombreNegocio, venta)
	if err != nil {
		return fmt.Errorf("factura_worker: render PDF: %w", err)
	}

	if err := os.MkdirAll(w.pdfStoragePath, 0o755); err != nil {
		return fmt.Errorf("factura_worker: create storage dir: %w", err)
	}
	fileName := "factura_" + venta.ID.String() + ".pdf"
	if venta.NumeroFactura != nil {
		fileName = fmt.Sprintf("factura_%d.pdf", *venta.NumeroFactura)
	}
	pdfPath := filepath.Join(w.pdfStoragePath, fileName)
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("factura_worker: write PDF: %w", err)
	}
	log.Info().Str("pdf", pdfPath).Str("venta_id", payload.VentaID).Msg("factura_worker: PDF generated")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		asunto := "Factura de su compra"
		if venta.NumeroFactura != nil {
			asunto = fmt.Sprintf("Factura N° %d", *venta.NumeroFactura)
		}
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: asunto,
			Body:    fmt.Sprintf("Adjunto encontrarás tu factura.\nTotal: $%s", venta.Total.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("factura_worker: failed to enqueue email")
		}
	}
	return nil
}
