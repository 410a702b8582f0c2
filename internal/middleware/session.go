package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"ticketportal/internal/domain"
)

const sessionContextKey = "portalSession"

// SessionMiddleware turns the Authorization bearer token into a domain.Session
// stored on the request. When secret is set the token signature is checked
// and a valid token yields a verified session. Any other token is kept with
// its claims read unverified; it is still forwarded to the backend, which
// rejects it there.
func SessionMiddleware(secret string) gin.HandlerFunc {
	parser := jwt.NewParser()
	verifier := jwt.NewParser(jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	key := []byte(secret)
	keyFunc := func(*jwt.Token) (any, error) { return key, nil }

	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		session := domain.Session{Token: token}

		claims := jwt.MapClaims{}
		if secret != "" {
			if _, err := verifier.ParseWithClaims(token, claims, keyFunc); err == nil {
				session.Verified = true
			} else {
				claims = jwt.MapClaims{}
			}
		}
		if !session.Verified {
			if _, _, err := parser.ParseUnverified(token, claims); err != nil {
				claims = jwt.MapClaims{}
			}
		}
		applyClaims(&session, claims)

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func applyClaims(session *domain.Session, claims jwt.MapClaims) {
	if sub, err := claims.GetSubject(); err == nil {
		session.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		session.ExpiresAt = exp.Time
	}
	if role, ok := claims["role"].(string); ok {
		session.Role = role
	}
}

// RequireSession rejects requests without a usable session.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := SessionFrom(c)
		if !ok || !session.Valid(time.Now()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireRole admits only verified sessions carrying role. Unverified or
// expired sessions get 401, verified sessions with another role get 403.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := SessionFrom(c)
		now := time.Now()
		if !session.Verified || !session.Valid(now) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if !session.HasRole(role, now) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session attached by SessionMiddleware.
func SessionFrom(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return domain.Session{}, false
	}
	session, ok := v.(domain.Session)
	return session, ok
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
