package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Los jobs que agotan sus reintentos terminan en una lista Redis aparte,
// dlq:{cola}, para poder mirarlos y reinyectarlos a mano. No hay reproceso
// automático desde la DLQ.

const DLQPrefix = "dlq:"

// DLQEntry conserva el payload original más el contexto de la falla.
type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      string          `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// SendToDLQ guarda el job fallido. Es best-effort: si Redis también falla
// solo queda el log, no hay dónde más dejarlo.
func SendToDLQ(ctx context.Context, rdb *redis.Client, cola, tipo string, payload json.RawMessage, motivo string, intentos int) {
	entrada, err := json.Marshal(DLQEntry{
		OriginalQueue: cola,
		JobType:       tipo,
		Payload:       payload,
		Reason:        motivo,
		FailedAt:      time.Now().UTC().Format(time.RFC3339),
		Attempts:      intentos,
	})
	if err != nil {
		log.Error().Err(err).Str("queue", cola).Msg("dlq: no se pudo serializar la entrada")
		return
	}

	clave := DLQPrefix + cola
	if err := rdb.LPush(ctx, clave, entrada).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", clave).Msg("dlq: no se pudo encolar")
		return
	}

	log.Warn().
		Str("queue", cola).
		Str("job_type", tipo).
		Str("reason", motivo).
		Int("attempts", intentos).
		Msg("dlq: job apartado para revisión manual")
}

// DLQLength informa el tamaño de una DLQ, pensado para monitoreo.
func DLQLength(ctx context.Context, rdb *redis.Client, cola string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+cola).Result()
}
