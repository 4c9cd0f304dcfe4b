package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis abre el cliente de Redis (colas de trabajo) y verifica que el
// servidor responda antes de devolverlo. Mejor fallar en el arranque que
// descubrir la cola caída con la primera factura.
func NewRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}

	cliente := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cliente.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return cliente, nil
}
