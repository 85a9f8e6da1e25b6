package middlewares_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/turkhealth/clinichub/internal/auth"
	"github.com/turkhealth/clinichub/internal/http/middlewares"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// fake verifier implementing middlewares.TokenVerifier

type fakeVerifier struct {
	verifyFn func(token string) (*auth.Claims, error)
}

func (f *fakeVerifier) Verify(token string) (*auth.Claims, error) {
	if f.verifyFn != nil {
		return f.verifyFn(token)
	}
	return nil, errors.New("no verifyFn")
}

func okClaims(id, email, role string) func(string) (*auth.Claims, error) {
	return func(string) (*auth.Claims, error) {
		return &auth.Claims{UserID: id, Email: email, Role: role}, nil
	}
}

func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return out
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifyFn   func(string) (*auth.Claims, error)
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Access token required",
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc123",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Access token required",
		},
		{
			name:       "bearer with empty token",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Access token required",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad-token",
			verifyFn: func(string) (*auth.Claims, error) {
				return nil, auth.ErrInvalidToken
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid or expired token",
		},
		{
			name:       "valid token",
			authHeader: "Bearer good-token",
			verifyFn:   okClaims("u-1", "staff@x.com", "admin"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mw := middlewares.NewAuthMiddleware(&fakeVerifier{verifyFn: tc.verifyFn})

			r := gin.New()
			r.GET("/guarded", mw.RequireAuth(), func(c *gin.Context) {
				id, _ := middlewares.UserIDFromContext(c)
				email, _ := middlewares.EmailFromContext(c)
				role, _ := middlewares.RoleFromContext(c)
				c.JSON(http.StatusOK, gin.H{"id": id, "email": email, "role": role})
			})

			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}

			body := decodeEnvelope(t, rec.Body.Bytes())

			if tc.wantError != "" {
				if body["success"] != false {
					t.Fatalf("success = %v, want false", body["success"])
				}
				if body["error"] != tc.wantError {
					t.Fatalf("error = %q, want %q", body["error"], tc.wantError)
				}
				return
			}

			// identity must be attached exactly as verified
			if body["id"] != "u-1" || body["email"] != "staff@x.com" || body["role"] != "admin" {
				t.Fatalf("unexpected identity: %v", body)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
		wantError  string
	}{
		{name: "admin passes", role: "admin", wantStatus: http.StatusOK},
		{name: "super_admin passes", role: "super_admin", wantStatus: http.StatusOK},
		{name: "plain user rejected", role: "user", wantStatus: http.StatusForbidden, wantError: "Admin access required"},
		{name: "empty role rejected", role: "", wantStatus: http.StatusUnauthorized, wantError: "Authentication required"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mw := middlewares.NewAuthMiddleware(&fakeVerifier{
				verifyFn: okClaims("u-1", "someone@x.com", tc.role),
			})

			r := gin.New()
			r.GET("/admin", mw.RequireAuth(), mw.RequireAdmin(), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer anything")

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.wantStatus, rec.Body.String())
			}

			if tc.wantError != "" {
				body := decodeEnvelope(t, rec.Body.Bytes())
				if body["error"] != tc.wantError {
					t.Fatalf("error = %q, want %q", body["error"], tc.wantError)
				}
			}
		})
	}
}

// The gate must hold even when the auth middleware never ran, e.g. a route
// wired with the chain in the wrong order.
func TestRequireAdminWithoutAuthMiddleware(t *testing.T) {
	mw := middlewares.NewAuthMiddleware(&fakeVerifier{})

	r := gin.New()
	r.GET("/misordered", mw.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/misordered", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	body := decodeEnvelope(t, rec.Body.Bytes())
	if body["error"] != "Authentication required" {
		t.Fatalf("error = %q, want %q", body["error"], "Authentication required")
	}
}
