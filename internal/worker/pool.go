// Package worker implementa el procesamiento asíncrono sobre listas de
// Redis: el dispatcher encola, un pool de goroutines consume con BRPOP y los
// jobs que fallan terminan en la DLQ.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueFactura = "jobs:factura"
	QueueEmail   = "jobs:email"
)

// Job es el sobre común de todos los trabajos encolados.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher encola jobs. Los servicios lo reciben ya construido y solo
// conocen los métodos Enqueue.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueFactura pide la generación (y envío) de la factura de una venta.
func (d *Dispatcher) EnqueueFactura(ctx context.Context, payload interface{}) error {
	return d.encolar(ctx, QueueFactura, "factura", payload)
}

// EnqueueEmail pide el envío de un correo con adjunto ya generado.
func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload interface{}) error {
	return d.encolar(ctx, QueueEmail, "email", payload)
}

func (d *Dispatcher) encolar(ctx context.Context, cola, tipo string, payload interface{}) error {
	cuerpo, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	sobre, err := json.Marshal(Job{Type: tipo, Payload: cuerpo})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, cola, sobre).Err()
}

// Handlers asocia cada cola con su procesador. Un handler en nil deja la
// cola sin consumir, útil en tests y herramientas.
type Handlers struct {
	Factura *FacturaWorker
	Email   *EmailWorker
}

// StartWorkerPool arranca n consumidores. Cada uno bloquea en BRPOP, así
// que el pool no quema CPU cuando no hay trabajo.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, n int, handlers Handlers) {
	for i := 0; i < n; i++ {
		go consumir(ctx, rdb, i, handlers)
	}
	log.Info().Int("workers", n).Msg("pool de workers arrancado")
}

func consumir(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	colas := []string{QueueFactura, QueueEmail}
	for {
		if ctx.Err() != nil {
			log.Info().Int("worker", id).Msg("worker detenido")
			return
		}

		// El timeout de 5s corta el BRPOP para volver a mirar el contexto.
		res, err := rdb.BRPop(ctx, 5*time.Second, colas...).Result()
		if err != nil || len(res) < 2 {
			continue
		}
		despachar(ctx, rdb, handlers, res[0], res[1])
	}
}

// despachar rutea el job crudo a su handler. Un error del handler manda el
// job a la DLQ; un sobre ilegible solo se loguea, reintentar no lo
// arreglaría.
func despachar(ctx context.Context, rdb *redis.Client, handlers Handlers, cola, crudo string) {
	var job Job
	if err := json.Unmarshal([]byte(crudo), &job); err != nil {
		log.Error().Str("queue", cola).Err(err).Msg("job ilegible, descartado")
		return
	}

	var err error
	switch cola {
	case QueueFactura:
		if handlers.Factura == nil {
			log.Warn().Str("queue", cola).Msg("cola sin handler")
			return
		}
		err = handlers.Factura.Process(ctx, job.Payload)
	case QueueEmail:
		if handlers.Email == nil {
			log.Warn().Str("queue", cola).Msg("cola sin handler")
			return
		}
		err = handlers.Email.Process(ctx, job.Payload)
	default:
		log.Warn().Str("queue", cola).Msg("cola desconocida")
		return
	}

	if err != nil {
		SendToDLQ(ctx, rdb, cola, job.Type, job.Payload, err.Error(), 1)
	}
}
