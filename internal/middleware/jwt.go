package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/farellandr/encuentro/internal/helpers"
	"github.com/farellandr/encuentro/internal/models"
	"github.com/farellandr/encuentro/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// GenerateToken signs a bearer token for the scanner API.
func GenerateToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret not configured")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    user.ID.String(),
		"is_special": user.IsSpecial,
		"exp":        time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// JWTAuthMiddleware authenticates API calls from a bearer token and loads
// the user it names, so a revoked staff flag applies immediately.
func JWTAuthMiddleware(secret string, users UserLoader, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenString) == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Authorization header missing or malformed.")
			return
		}

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimSpace(tokenString), claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		userID, err := helpers.ParseUserID(claims["user_id"])
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if errors.Is(err, service.ErrUserNotFound) {
			helpers.RespondWithError(c, http.StatusUnauthorized, "User no longer exists.")
			return
		}
		if err != nil {
			log.Error("load token user failed", zap.String("user_id", userID.String()), zap.Error(err))
			helpers.RespondWithError(c, http.StatusInternalServerError, helpers.GenericErrorMessage)
			return
		}

		SetCurrentUser(c, user)
		c.Next()
	}
}
