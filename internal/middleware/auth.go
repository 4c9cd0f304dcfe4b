package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/naimp074/stock1/internal/apierror"
)

const ClaimsKey = "claims"

// JWTClaims viaja dentro de cada token firmado por el servicio de auth.
// user_id se estampa después en ventas, movimientos y notas.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Rol      string `json:"rol"`
	jwt.RegisteredClaims
}

// JWTAuth exige un Bearer token firmado con nuestro secreto y deja los
// claims tipados en el contexto para el resto de la cadena.
func JWTAuth(secreto string) gin.HandlerFunc {
	return func(c *gin.Context) {
		crudo, ok := extraerBearer(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(crudo, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secreto), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func extraerBearer(header string) (string, bool) {
	token, encontrado := strings.CutPrefix(header, "Bearer ")
	if !encontrado || token == "" {
		return "", false
	}
	return token, true
}

// RequireRole corta con 403 cuando el rol del token no está en la lista.
// Corre siempre detrás de JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	permitidos := make(map[string]bool, len(roles))
	for _, rol := range roles {
		permitidos[rol] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !permitidos[claims.Rol] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permisos insuficientes"))
			return
		}
		c.Next()
	}
}

// GetClaims devuelve los claims tipados del contexto.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.MustGet(ClaimsKey).(*JWTClaims)
	return claims
}

// UserID devuelve el id del usuario autenticado, o uuid.Nil si la ruta no
// pasó por JWTAuth o el claim no parsea.
func UserID(c *gin.Context) uuid.UUID {
	valor, ok := c.Get(ClaimsKey)
	if !ok {
		return uuid.Nil
	}
	claims, ok := valor.(*JWTClaims)
	if !ok {
		return uuid.Nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil
	}
	return id
}
