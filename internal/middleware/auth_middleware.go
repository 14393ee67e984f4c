package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/businessregulatoryreviewagency/brra/internal/shared/apperror"
	"github.com/businessregulatoryreviewagency/brra/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var (
	errInvalidToken = apperror.New(apperror.CodeUnauthorized, "invalid or malformed token", http.StatusUnauthorized)
	errTokenExpired = apperror.New(apperror.CodeUnauthorized, "token has expired", http.StatusUnauthorized)
)

// AuthMiddleware validates the portal's access token and loads the actor's
// identity and role flags into the gin context. The role string is derived
// from the flags, highest privilege wins, and feeds the policy check.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := errInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = errTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		actorID, ok := claims["actor_id"].(string)
		if !ok || actorID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Actor ID not found in token", nil)
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		isSupervisor, _ := claims["is_supervisor"].(bool)
		isHR, _ := claims["is_hr"].(bool)
		isED, _ := claims["is_ed"].(bool)
		isAdmin, _ := claims["is_admin"].(bool)

		c.Set("actor_id", actorID)
		c.Set("email", email)
		c.Set("is_supervisor", isSupervisor)
		c.Set("is_hr", isHR)
		c.Set("is_ed", isED)
		c.Set("is_admin", isAdmin)
		c.Set("role", deriveRole(isSupervisor, isHR, isED, isAdmin))

		c.Next()
	}
}

func deriveRole(isSupervisor, isHR, isED, isAdmin bool) string {
	switch {
	case isAdmin:
		return "admin"
	case isED:
		return "ed"
	case isHR:
		return "hr"
	case isSupervisor:
		return "supervisor"
	default:
		return "staff"
	}
}
