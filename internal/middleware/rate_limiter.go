package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/naimp074/stock1/internal/apierror"
)

// contadorIP keeps per-client request counts over fixed windows. The window
// restarts lazily on the first hit after it expires, so there is no timer per
// IP; a background sweep drops clients that stopped sending requests.
type contadorIP struct {
	mu       sync.Mutex
	ventanas map[string]*ventana
}

type ventana struct {
	hits  int
	hasta time.Time
}

func nuevoContadorIP() *contadorIP {
	return &contadorIP{ventanas: make(map[string]*ventana)}
}

// registrar cuenta un hit para ip y devuelve si quedó dentro del límite,
// junto con el fin de la ventana vigente (para Retry-After).
func (ct *contadorIP) registrar(ip string, limite int, duracion time.Duration) (bool, time.Time) {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	ahora := time.Now()
	v := ct.ventanas[ip]
	if v == nil || ahora.After(v.hasta) {
		v = &ventana{hasta: ahora.Add(duracion)}
		ct.ventanas[ip] = v
	}
	v.hits++
	return v.hits <= limite, v.hasta
}

// barrer elimina las ventanas ya vencidas y devuelve cuántas quitó.
func (ct *contadorIP) barrer(ahora time.Time) int {
	ct.mu.Lock()
	defer ct.mu.Unlock()

	quitadas := 0
	for ip, v := range ct.ventanas {
		if ahora.After(v.hasta) {
			delete(ct.ventanas, ip)
			quitadas++
		}
	}
	return quitadas
}

func (ct *contadorIP) tam() int {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	return len(ct.ventanas)
}

var (
	contadorLogin = nuevoContadorIP()
	contadorAPI   = nuevoContadorIP()
)

const (
	loginMaxIntentos = 20
	loginVentana     = time.Minute
	barridoCada      = 5 * time.Minute
)

// LoginRateLimiter corta los intentos de login a 20 por minuto por IP.
// Protege el endpoint de credenciales contra fuerza bruta sin tocar Redis.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, _ := contadorLogin.registrar(c.ClientIP(), loginMaxIntentos, loginVentana)
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter limita el tráfico general de la API por IP. El límite y la
// ventana los fija el router según el entorno.
func RateLimiter(limite int, duracion time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, hasta := contadorAPI.registrar(c.ClientIP(), limite, duracion)
		if !ok {
			c.Header("Retry-After", hasta.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

func init() {
	go barridoPeriodico()
}

// barridoPeriodico evita que los mapas crezcan sin techo con IPs que nunca
// vuelven (scanners, clientes detrás de NAT rotativo).
func barridoPeriodico() {
	ticker := time.NewTicker(barridoCada)
	defer ticker.Stop()

	for range ticker.C {
		ahora := time.Now()
		login := contadorLogin.barrer(ahora)
		api := contadorAPI.barrer(ahora)
		if login > 0 || api > 0 {
			log.Debug().
				Int("login_quitadas", login).
				Int("api_quitadas", api).
				Int("login_activas", contadorLogin.tam()).
				Int("api_activas", contadorAPI.tam()).
				Msg("ventanas de rate limit barridas")
		}
	}
}
