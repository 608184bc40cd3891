package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akarpov/bookcrud/internal/apperrors"
	"github.com/akarpov/bookcrud/internal/entities"
)

// ContextKeyReader is the gin context key holding the authenticated reader.
const ContextKeyReader = "auth_reader"

// BasicAuthMiddleware resolves HTTP Basic credentials through the verifier
// and stores the authenticated reader in the request context. Requests
// without credentials are rejected with a Basic challenge.
func BasicAuthMiddleware(verifier *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="reader"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		reader, err := verifier.Verify(username, password)
		if err != nil {
			switch {
			case apperrors.IsNotFound(err):
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case apperrors.IsForbidden(err):
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
			default:
				log.Printf("Basic auth failed for %q: %v", username, err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed check password"})
			}
			return
		}

		c.Set(ContextKeyReader, reader)
		c.Next()
	}
}

// ReaderFromContext returns the authenticated reader stored by
// BasicAuthMiddleware, or nil when the request is unauthenticated.
func ReaderFromContext(c *gin.Context) *entities.Reader {
	value, exists := c.Get(ContextKeyReader)
	if !exists {
		return nil
	}
	reader, ok := value.(*entities.Reader)
	if !ok {
		return nil
	}
	return reader
}
