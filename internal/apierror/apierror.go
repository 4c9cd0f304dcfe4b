// Package apierror define los sobres de error que viajan al cliente. Nada
// sale de la API por fuera de estas estructuras: los errores internos (gorm,
// redis, panics) se traducen antes a un mensaje apto para el usuario.
package apierror

// APIError es la respuesta de error estándar para cualquier 4xx/5xx.
type APIError struct {
	Detail string `json:"detail"`
}

// New arma un sobre con el mensaje dado, ya en castellano y sin detalles
// internos.
func New(mensaje string) *APIError {
	return &APIError{Detail: mensaje}
}

// ValidationError agrega el detalle por campo cuando falla la validación del
// body. El frontend lo usa para marcar inputs individuales.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(campos map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: campos}
}
