package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/callen/resume-analyzer/internal/config"
)

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		Secret:          "test-secret-at-least-32-chars-long",
		ExpirationHours: 24,
	}
}

// TestGenerateToken_RoundTrip tests minting and validating a token
func TestGenerateToken_RoundTrip(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	token, err := svc.GenerateToken("ci-deploy", 0)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.Subject != "ci-deploy" {
		t.Errorf("expected subject 'ci-deploy', got '%s'", claims.Subject)
	}

	// Zero ttl uses the configured expiration.
	wantExpiry := time.Now().Add(24 * time.Hour)
	gotExpiry := claims.ExpiresAt.Time
	if gotExpiry.Before(wantExpiry.Add(-time.Minute)) || gotExpiry.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expected expiry near %v, got %v", wantExpiry, gotExpiry)
	}
}

// TestGenerateToken_CustomTTL tests an explicit token lifetime
func TestGenerateToken_CustomTTL(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	token, err := svc.GenerateToken("short-lived", 30*time.Minute)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}

	wantExpiry := time.Now().Add(30 * time.Minute)
	gotExpiry := claims.ExpiresAt.Time
	if gotExpiry.Before(wantExpiry.Add(-time.Minute)) || gotExpiry.After(wantExpiry.Add(time.Minute)) {
		t.Errorf("expected expiry near %v, got %v", wantExpiry, gotExpiry)
	}
}

// TestGenerateToken_EmptySubject tests that a subject is required
func TestGenerateToken_EmptySubject(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	if _, err := svc.GenerateToken("", 0); err == nil {
		t.Error("expected an error for an empty subject")
	}
}

// TestValidateToken_Expired tests rejection of expired tokens
func TestValidateToken_Expired(t *testing.T) {
	cfg := testAuthConfig()
	svc := NewTokenService(cfg)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "expired",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if err == nil {
		t.Fatal("expected an error for an expired token")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Errorf("expected an expiry error, got: %v", err)
	}
}

// TestValidateToken_WrongSecret tests rejection of tokens signed elsewhere
func TestValidateToken_WrongSecret(t *testing.T) {
	minter := NewTokenService(&config.AuthConfig{Secret: "one-secret-for-minting-tokens!!", ExpirationHours: 24})
	verifier := NewTokenService(&config.AuthConfig{Secret: "a-different-secret-for-checking", ExpirationHours: 24})

	token, err := minter.GenerateToken("imposter", 0)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	_, err = verifier.ValidateToken(token)
	if err == nil {
		t.Fatal("expected an error for a token signed with another secret")
	}
	if !strings.Contains(err.Error(), "signature") {
		t.Errorf("expected a signature error, got: %v", err)
	}
}

// TestValidateToken_Malformed tests rejection of garbage tokens
func TestValidateToken_Malformed(t *testing.T) {
	svc := NewTokenService(testAuthConfig())

	for _, token := range []string{"not-a-token", "a.b", "....."} {
		if _, err := svc.ValidateToken(token); err == nil {
			t.Errorf("expected an error for token '%s'", token)
		}
	}

	if _, err := svc.ValidateToken(""); err == nil {
		t.Error("expected an error for an empty token")
	}
}

// TestRequireAuth_Disabled tests that handlers run open without a token service
func TestRequireAuth_Disabled(t *testing.T) {
	s := newTestServer() // no tokens configured

	handler := s.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 with auth disabled, got %d", w.Code)
	}
}

// TestRequireAuth tests bearer token enforcement
func TestRequireAuth(t *testing.T) {
	s := newTestServer()
	s.tokens = NewTokenService(testAuthConfig())

	token, err := s.tokens.GenerateToken("tester", 0)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	handler := s.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"invalid token", "Bearer not-a-real-token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

// TestRequireAuth_Routes tests which routes are protected
func TestRequireAuth_Routes(t *testing.T) {
	s := newTestServer()
	s.tokens = NewTokenService(testAuthConfig())

	// Mutating routes demand a token.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for unauthenticated create, got %d", w.Code)
	}

	// Reads stay open.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/resumes", nil)
	w = httptest.NewRecorder()
	s.routes().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for unauthenticated list, got %d", w.Code)
	}
}
