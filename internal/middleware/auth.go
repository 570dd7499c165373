package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/kikaxxz/El-Puestito-Desktop/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const DestinoKey = "destino"

// APIKeyAuth protects the mobile/desktop API with the shared X-API-KEY.
func APIKeyAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-API-KEY")
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		c.Next()
	}
}

// kdsClaims are the claims of a station token issued by the PIN exchange.
type kdsClaims struct {
	Destino string `json:"destino"`
	jwt.RegisteredClaims
}

// KDSAuth validates the Bearer token on the browser station routes and
// stores the station it was issued for.
func KDSAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &kdsClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalido o expirado"))
			return
		}

		c.Set(DestinoKey, claims.Destino)
		c.Next()
	}
}

// GetDestino returns the station the validated token belongs to.
func GetDestino(c *gin.Context) string {
	return c.GetString(DestinoKey)
}
