package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/naimp074/stock1/internal/infra"
)

// EmailJobPayload describe un correo pendiente: destinatario, texto y la
// ruta del PDF ya generado por el worker de facturas.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker consume QueueEmail y manda facturas por SMTP. Los fallos
// transitorios se reintentan acá mismo; si aun así no sale, el job va a la
// DLQ.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

const intentosSMTP = 3

func (w *EmailWorker) Process(ctx context.Context, crudo json.RawMessage) error {
	var job EmailJobPayload
	if err := json.Unmarshal(crudo, &job); err != nil {
		log.Error().Err(err).Msg("email_worker: payload ilegible, descartado")
		return nil
	}
	if job.ToEmail == "" {
		log.Warn().Msg("email_worker: sin destinatario, nada que enviar")
		return nil
	}

	err := reintentar(ctx, intentosSMTP, func(intento int) error {
		errEnvio := w.mailer.SendFactura(job.ToEmail, job.Subject, job.Body, job.PDFPath)
		if errEnvio != nil {
			log.Warn().Err(errEnvio).
				Int("intento", intento+1).
				Str("to", job.ToEmail).
				Msg("email_worker: envío fallido")
		}
		return errEnvio
	})
	if err != nil {
		return fmt.Errorf("email_worker: enviar a %s: %w", job.ToEmail, err)
	}

	log.Info().Str("to", job.ToEmail).Msg("email_worker: factura enviada")
	return nil
}

// reintentar ejecuta fn hasta maxIntentos veces con backoff exponencial
// (inmediato, 1s, 2s, ...). Corta antes si el contexto se cancela.
func reintentar(ctx context.Context, maxIntentos int, fn func(intento int) error) error {
	var ultimo error
	for i := 0; i < maxIntentos; i++ {
		if i > 0 {
			espera := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(espera):
			}
		}
		if ultimo = fn(i); ultimo == nil {
			return nil
		}
	}
	return ultimo
}
