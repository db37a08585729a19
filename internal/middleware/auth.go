package middleware

import (
	"strconv"
	"strings"

	"ripple/internal/config"
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Token claim constants shared by issuance (server package) and validation.
const (
	TokenIssuer   = "ripple-api"
	TokenAudience = "ripple-client"

	// SessionCookie is the cookie carrying the signed token for browser clients.
	SessionCookie = "jwt"
)

var cfg *config.Config

// InitMiddleware initializes authentication middleware with the given config.
func InitMiddleware(c *config.Config) {
	cfg = c
}

// AuthRequired is a middleware that enforces authentication for protected
// routes. The token is accepted from the Authorization header
// ("Bearer <token>") or from the session cookie.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := extractToken(c)
	if tokenString == "" {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Authorization required"))
	}

	userID, err := ParseUserID(tokenString)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthenticatedError("Invalid or expired token"))
	}

	c.Locals("userID", userID)
	return c.Next()
}

// extractToken pulls the raw token from the Authorization header or the
// session cookie, in that order.
func extractToken(c *fiber.Ctx) string {
	if authHeader := c.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}
	return c.Cookies(SessionCookie)
}

// ParseUserID validates a signed token and returns the user ID from its
// subject claim. Issuer and audience must match the values this API issues.
func ParseUserID(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	},
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(TokenAudience),
	)
	if err != nil || !token.Valid {
		return 0, models.NewUnauthenticatedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, models.NewUnauthenticatedError("Invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, models.NewUnauthenticatedError("Invalid subject claim")
	}

	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, models.NewUnauthenticatedError("Invalid user ID in token")
	}

	return uint(userID), nil
}
