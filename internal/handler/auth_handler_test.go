package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/cqrs"
	"github.com/BrightAntie/CMFUND-INVESTMENT-APP/internal/models"
	"github.com/gin-gonic/gin"
)

// ---- mock implementations ----

type mockAuthQuerier struct {
	loginFn func(cqrs.LoginCommand) (string, *models.MemberView, error)
}

func (m *mockAuthQuerier) Login(cmd cqrs.LoginCommand) (string, *models.MemberView, error) {
	if m.loginFn != nil {
		return m.loginFn(cmd)
	}
	return "", nil, fmt.Errorf("not configured")
}

type mockMemberCommander struct {
	registerFn func(cqrs.RegisterMemberCommand) (*models.Member, error)
}

func (m *mockMemberCommander) RegisterMember(cmd cqrs.RegisterMemberCommand) (*models.Member, error) {
	if m.registerFn != nil {
		return m.registerFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- helpers ----

func memberM001View() *models.MemberView {
	return &models.MemberView{
		MemberID:  "M001",
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john.doe@example.com",
	}
}

func fakeAuthMember(view *models.MemberView) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("member", view)
		c.Next()
	}
}

func newAuthTestRouter(qrys AuthQuerier, cmds MemberCommander) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuthHandler(qrys, cmds)
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.GET("/verify", fakeAuthMember(memberM001View()), h.Verify)
	}
	return r
}

func doRequest(router *gin.Engine, method, url string, body interface{}) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	if body != nil {
		b, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, url, strings.NewReader(string(b)))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestLogin(t *testing.T) {
	tests := []struct {
		name            string
		body            interface{}
		loginFn         func(cqrs.LoginCommand) (string, *models.MemberView, error)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "success - member ID identifier",
			body: map[string]string{"identifier": "M001", "password": "password123"},
			loginFn: func(cmd cqrs.LoginCommand) (string, *models.MemberView, error) {
				return "mock.jwt.token", memberM001View(), nil
			},
			expectedStatus:  http.StatusOK,
			expectedMessage: "Login successful",
		},
		{
			name: "success - email identifier",
			body: map[string]string{"identifier": "john.doe@example.com", "password": "password123"},
			loginFn: func(cmd cqrs.LoginCommand) (string, *models.MemberView, error) {
				if cmd.Identifier != "john.doe@example.com" {
					return "", nil, fmt.Errorf("invalid credentials")
				}
				return "mock.jwt.token", memberM001View(), nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unauthorised - invalid credentials",
			body: map[string]string{"identifier": "M001", "password": "wrongpass"},
			loginFn: func(cmd cqrs.LoginCommand) (string, *models.MemberView, error) {
				return "", nil, fmt.Errorf("invalid credentials")
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid credentials",
		},
		{
			name:            "bad request - missing password",
			body:            map[string]string{"identifier": "M001"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name:            "bad request - missing identifier",
			body:            map[string]string{"password": "password123"},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockAuthQuerier{loginFn: tt.loginFn}, &mockMemberCommander{})
			w := doRequest(router, http.MethodPost, "/auth/login", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedMessage != "" && !strings.Contains(w.Body.String(), tt.expectedMessage) {
				t.Errorf("[%s] expected message %q in body: %s", tt.name, tt.expectedMessage, w.Body.String())
			}
		})
	}
}

func TestLoginResponseShape(t *testing.T) {
	router := newAuthTestRouter(&mockAuthQuerier{
		loginFn: func(cmd cqrs.LoginCommand) (string, *models.MemberView, error) {
			return "mock.jwt.token", memberM001View(), nil
		},
	}, &mockMemberCommander{})

	w := doRequest(router, http.MethodPost, "/auth/login", map[string]string{
		"identifier": "M001", "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Token  string `json:"token"`
			Member struct {
				MemberID string `json:"csm_memberID"`
				Email    string `json:"email"`
			} `json:"member"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success true")
	}
	if resp.Data.Token != "mock.jwt.token" {
		t.Errorf("expected token in data, got %q", resp.Data.Token)
	}
	if resp.Data.Member.MemberID != "M001" {
		t.Errorf("expected member M001, got %q", resp.Data.Member.MemberID)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("credential material must never appear in a response: %s", w.Body.String())
	}
}

func TestRegister(t *testing.T) {
	validBody := map[string]string{
		"csm_memberID": "M006",
		"firstName":    "Efua",
		"lastName":     "Mensah",
		"email":        "efua.mensah@example.com",
		"telephone":    "+233201112223",
		"password":     "secret6",
	}

	tests := []struct {
		name            string
		body            interface{}
		registerFn      func(cqrs.RegisterMemberCommand) (*models.Member, error)
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "created - valid registration",
			body: validBody,
			registerFn: func(cmd cqrs.RegisterMemberCommand) (*models.Member, error) {
				return &models.Member{
					ID:        6,
					MemberID:  cmd.MemberID,
					FirstName: cmd.FirstName,
					LastName:  cmd.LastName,
					Email:     cmd.Email,
				}, nil
			},
			expectedStatus:  http.StatusCreated,
			expectedMessage: "Member registered successfully",
		},
		{
			name: "bad request - duplicate member",
			body: validBody,
			registerFn: func(cmd cqrs.RegisterMemberCommand) (*models.Member, error) {
				return nil, fmt.Errorf("member already exists")
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Member already exists",
		},
		{
			name: "bad request - password below minimum length",
			body: map[string]string{
				"csm_memberID": "M006", "firstName": "Efua", "lastName": "Mensah",
				"email": "efua.mensah@example.com", "password": "short",
			},
			expectedStatus:  http.StatusBadRequest,
			expectedMessage: "Validation failed",
		},
		{
			name: "bad request - invalid email",
			body: map[string]string{
				"csm_memberID": "M006", "firstName": "Efua", "lastName": "Mensah",
				"email": "not-an-email", "password": "secret6",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad request - missing member ID",
			body: map[string]string{
				"firstName": "Efua", "lastName": "Mensah",
				"email": "efua.mensah@example.com", "password": "secret6",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "internal error - store failure",
			body: validBody,
			registerFn: func(cmd cqrs.RegisterMemberCommand) (*models.Member, error) {
				return nil, fmt.Errorf("failed to create member: connection refused")
			},
			expectedStatus:  http.StatusInternalServerError,
			expectedMessage: "Registration failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAuthTestRouter(&mockAuthQuerier{}, &mockMemberCommander{registerFn: tt.registerFn})
			w := doRequest(router, http.MethodPost, "/auth/register", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("[%s] expected %d got %d; body: %s", tt.name, tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedMessage != "" && !strings.Contains(w.Body.String(), tt.expectedMessage) {
				t.Errorf("[%s] expected message %q in body: %s", tt.name, tt.expectedMessage, w.Body.String())
			}
			if w.Code == http.StatusCreated && strings.Contains(w.Body.String(), "password") {
				t.Errorf("[%s] created member must not carry the credential: %s", tt.name, w.Body.String())
			}
		})
	}
}

func TestVerify(t *testing.T) {
	router := newAuthTestRouter(&mockAuthQuerier{}, &mockMemberCommander{})
	w := doRequest(router, http.MethodGet, "/auth/verify", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d; body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"csm_memberID":"M001"`) {
		t.Errorf("expected member in response: %s", w.Body.String())
	}
}
