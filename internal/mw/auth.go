package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"parking-api/internal/model"
)

// SubjectKey is the gin context key holding the authenticated subject.
const SubjectKey = "subject"

// TokenVerifier validates a bearer token and returns its subject.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// RequireBearer rejects requests without a valid "Authorization: Bearer" token.
func RequireBearer(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Error: "missing bearer token"})
			return
		}

		subject, err := verifier.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Error: "invalid token"})
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}
