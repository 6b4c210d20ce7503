package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "test-secret-key"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestAuthenticateValidToken(t *testing.T) {
	tokenString := signTestToken(t, jwt.MapClaims{
		"player_id": 42,
		"roles":     []string{"user", "admin"},
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	var gotID int
	var gotAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetPlayerIDFromContext(r.Context())
		if err != nil {
			t.Errorf("GetPlayerIDFromContext: %v", err)
		}
		gotID = id
		gotAdmin = IsAdminFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	Authenticate(testSecret)(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != 42 {
		t.Errorf("player id = %d, want 42", gotID)
	}
	if !gotAdmin {
		t.Error("admin role should be detected from claims")
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	expired := signTestToken(t, jwt.MapClaims{
		"player_id": 42,
		"exp":       time.Now().Add(-time.Hour).Unix(),
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc123"},
		{"garbage token", "Bearer not.a.token"},
		{"expired token", "Bearer " + expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler must not run for rejected tokens")
			})
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Authenticate(testSecret)(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	adminToken := signTestToken(t, jwt.MapClaims{
		"player_id": 1,
		"roles":     []string{"admin"},
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	userToken := signTestToken(t, jwt.MapClaims{
		"player_id": 2,
		"roles":     []string{"user"},
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	handler := Authenticate(testSecret)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodDelete, "/players/2", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/players/2", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("non-admin status = %d, want 403", rec.Code)
	}
}
