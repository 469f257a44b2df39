package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/token"
	"github.com/gin-gonic/gin"
)

// ---- mock implementation ----

type mockMemberResolver struct {
	getFn func(ctx context.Context, memberID string) (*models.MemberView, error)
}

func (m *mockMemberResolver) GetByMemberID(ctx context.Context, memberID string) (*models.MemberView, error) {
	if m.getFn != nil {
		return m.getFn(ctx, memberID)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func resolveM001(ctx context.Context, memberID string) (*models.MemberView, error) {
	if memberID != "M001" {
		return nil, fmt.Errorf("member not found")
	}
	return &models.MemberView{
		MemberID:  "M001",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
	}, nil
}

func newAuthGateRouter(tokens *token.Service, resolver MemberResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(tokens, resolver), func(c *gin.Context) {
		member, ok := GetMember(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "member missing from context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"memberId": member.MemberID})
	})
	return r
}

func doProtectedRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestAuthMiddleware(t *testing.T) {
	tokens := token.NewService("test-secret", 24*time.Hour)
	expiredTokens := token.NewService("test-secret", -time.Minute)
	otherTokens := token.NewService("other-secret", 24*time.Hour)

	validToken, err := tokens.Issue("M001", "john.doe@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	expiredToken, err := expiredTokens.Issue("M001", "john.doe@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	foreignToken, err := otherTokens.Issue("M001", "john.doe@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	deletedMemberToken, err := tokens.Issue("M999", "gone@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := []struct {
		name            string
		authHeader      string
		getFn           func(ctx context.Context, memberID string) (*models.MemberView, error)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:           "success - valid token, member resolved",
			authHeader:     "Bearer " + validToken,
			getFn:          resolveM001,
			expectedStatus: http.StatusOK,
		},
		{
			name:            "unauthorised - missing header",
			authHeader:      "",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Access token required",
		},
		{
			name:            "unauthorised - not a bearer header",
			authHeader:      "Basic dXNlcjpwYXNz",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Access token required",
		},
		{
			name:            "unauthorised - malformed token",
			authHeader:      "Bearer not-a-token",
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:            "unauthorised - wrong signing secret",
			authHeader:      "Bearer " + foreignToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token",
		},
		{
			name:            "unauthorised - expired token",
			authHeader:      "Bearer " + expiredToken,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Token expired",
		},
		{
			name:            "unauthorised - member no longer exists",
			authHeader:      "Bearer " + deletedMemberToken,
			getFn:           resolveM001,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid token - member not found",
		},
		{
			name:       "internal error - store unavailable",
			authHeader: "Bearer " + validToken,
			getFn: func(ctx context.Context, memberID string) (*models.MemberView, error) {
				return nil, fmt.Errorf("failed to get member: connection refused")
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Authentication failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthGateRouter(tokens, &mockMemberResolver{getFn: tt.getFn})
			w := doProtectedRequest(router, tt.authHeader)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedMessage != "" && !strings.Contains(w.Body.String(), tt.expectedMessage) {
				t.Errorf("[%s] expected message %q in body: %s", tt.name, tt.expectedMessage, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareAttachesMember(t *testing.T) {
	tokens := token.NewService("test-secret", 24*time.Hour)
	validToken, err := tokens.Issue("M001", "john.doe@example.com")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	router := newAuthGateRouter(tokens, &mockMemberResolver{getFn: resolveM001})
	w := doProtectedRequest(router, "Bearer "+validToken)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"memberId":"M001"`) {
		t.Errorf("expected resolved member in handler context, body: %s", w.Body.String())
	}
}
