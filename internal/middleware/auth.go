package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/token"
	"github.com/gin-gonic/gin"
)

const memberContextKey = "member"

// MemberResolver resolves a member identifier to its current view. The auth
// middleware re-resolves every token against the store so a token referencing
// a member that no longer exists is rejected, not trusted for profile data.
type MemberResolver interface {
	GetByMemberID(ctx context.Context, memberID string) (*models.MemberView, error)
}

// AuthMiddleware guards the protected route groups. Checks run in order:
// header present, signature/structure, expiry, member still exists. The
// first failure short-circuits with 401; only a store failure yields 500.
func AuthMiddleware(tokens *token.Service, members MemberResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			RespondWithError(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			RespondWithError(c, http.StatusUnauthorized, "Access token required")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, token.ErrExpired) {
				RespondWithError(c, http.StatusUnauthorized, "Token expired")
			} else {
				RespondWithError(c, http.StatusUnauthorized, "Invalid token")
			}
			c.Abort()
			return
		}

		view, err := members.GetByMemberID(c.Request.Context(), claims.MemberID)
		if err != nil {
			if err.Error() == "member not found" {
				RespondWithError(c, http.StatusUnauthorized, "Invalid token - member not found")
			} else {
				log.Printf("Auth middleware: failed to resolve member %s: %v", claims.MemberID, err)
				RespondWithError(c, http.StatusInternalServerError, "Authentication failed")
			}
			c.Abort()
			return
		}

		c.Set(memberContextKey, view)
		c.Next()
	}
}

// GetMember returns the member view attached by AuthMiddleware.
func GetMember(c *gin.Context) (*models.MemberView, bool) {
	v, exists := c.Get(memberContextKey)
	if !exists {
		return nil, false
	}
	view, ok := v.(*models.MemberView)
	return view, ok
}
