package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"wishlist-service/internal/services"
)

// Identity is what the token verifier extracts from a valid bearer token.
type Identity struct {
	Subject     string
	Email       string
	DisplayName string
}

// TokenVerifier validates a bearer token and returns the caller's identity.
// Token issuance lives in the external identity provider; this service only
// verifies, so the verifier is injected rather than baked into the
// middleware.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// HMACVerifier validates HS256 tokens issued by the identity provider with
// a shared secret.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier creates a verifier for the given shared secret.
func NewHMACVerifier(secret string) *HMACVerifier {
	return &HMACVerifier{secret: []byte(secret)}
}

type providerClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Verify parses and validates the token signature and expiry.
func (v *HMACVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	var claims providerClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return &Identity{
		Subject:     claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}

// AuthMiddleware validates the Authorization header with the injected
// verifier and resolves the caller to a local user row, provisioning one on
// first contact. Handlers read the resolved id via c.Get("user_id").
func AuthMiddleware(verifier TokenVerifier, users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		user, err := users.EnsureUser(c.Request.Context(), identity.Subject, identity.Email, identity.DisplayName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID.String())
		c.Set("user_email", user.Email)
		c.Next()
	}
}
