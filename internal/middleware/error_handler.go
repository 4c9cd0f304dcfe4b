package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/naimp074/stock1/internal/apierror"
)

const mensajeErrorInterno = "Error interno del servidor"

// ErrorHandler traduce los errores que los handlers dejaron en c.Errors a un
// 500 genérico. El detalle real solo va al log; el cliente nunca ve errores
// de gorm ni stack traces.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		ultimo := c.Errors.Last()
		log.Error().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Err(ultimo.Err).
			Msg("error sin manejar en el handler")

		c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(mensajeErrorInterno))
	}
}

// Recovery convierte un panic en 500 en lugar de tumbar el proceso.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recuperado")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(mensajeErrorInterno))
			}
		}()
		c.Next()
	}
}

// Logger escribe una línea estructurada por request, correlacionada por
// request_id con los errores de arriba.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		inicio := time.Now()
		c.Next()

		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(inicio)).
			Msg("request")
	}
}
