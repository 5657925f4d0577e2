package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
)

const userIDLocal = "userID"

// bearerToken extracts the token from an Authorization header value.
func bearerToken(auth string) (string, bool) {
	if auth == "" {
		return "", false
	}
	return strings.CutPrefix(auth, "Bearer ")
}

// parseToken verifies a bearer token and returns the subject (user ID) claim.
// Empty on any failure: bad signature, unexpected signing method, expired
// token, or a missing sub claim.
func parseToken(tokenStr string, secret []byte) string {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return ""
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

func parseBearer(c fiber.Ctx, secret []byte) string {
	tokenStr, ok := bearerToken(c.Get("Authorization"))
	if !ok {
		return ""
	}
	return parseToken(tokenStr, secret)
}

// RequireAuth rejects requests without a valid bearer identity. Used on
// mutating routes: voting requires an authenticated user.
func RequireAuth(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c fiber.Ctx) error {
		userID := parseBearer(c, key)
		if userID == "" {
			return ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and lets anonymous requests through. Read paths report voted=false for
// anonymous callers instead of failing.
func OptionalAuth(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c fiber.Ctx) error {
		if userID := parseBearer(c, key); userID != "" {
			c.Locals(userIDLocal, userID)
		}
		return c.Next()
	}
}

// UserID returns the authenticated user ID for the request, or "" for
// anonymous callers.
func UserID(c fiber.Ctx) string {
	if v, ok := c.Locals(userIDLocal).(string); ok {
		return v
	}
	return ""
}
