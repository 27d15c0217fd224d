package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	adapter "github.com/gwatts/gin-adapter"
)

// EnsureValidToken validates the bearer token against the Auth0 tenant's
// JWKS and rejects unauthenticated requests with a 401.
func EnsureValidToken(domain, audience string) (gin.HandlerFunc, error) {
	issuerURL, err := url.Parse("https://" + domain + "/")
	if err != nil {
		return nil, err
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{audience},
	)
	if err != nil {
		return nil, err
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("token validation failed: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"code":    "UNAUTHORIZED",
			"message": "Authentication required",
		})
	}

	mw := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return adapter.Wrap(mw.CheckJWT), nil
}

// Auth0IDKey is the gin context key the subject claim is stored under.
// Test setups inject a fake auth middleware that sets the same key.
const Auth0IDKey = "auth0_id"

// Identity copies the validated token's subject into the gin context so
// handlers don't need to know about the JWT middleware's context key.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := c.Request.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
		if ok {
			c.Set(Auth0IDKey, claims.RegisteredClaims.Subject)
		}
		c.Next()
	}
}

// GetAuth0ID extracts the user ID (sub claim) for the current request.
func GetAuth0ID(c *gin.Context) (string, bool) {
	if v, exists := c.Get(Auth0IDKey); exists {
		if id, ok := v.(string); ok && id != "" {
			return id, true
		}
	}

	// Fall back to the raw JWT middleware context for routes that skip
	// Identity.
	claims, exists := c.Request.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)
	if !exists {
		log.Printf("No user claims found in context")
		return "", false
	}

	return claims.RegisteredClaims.Subject, true
}
