package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fintrack/internal/shared/auth"
)

func TestAuth(t *testing.T) {
	codec := auth.NewJWT("test-secret")
	validToken, _ := codec.Issue(1, "test@example.com")

	tests := []struct {
		name           string
		setupRequest   func(r *http.Request)
		expectedStatus int
		expectedUser   bool
	}{
		{
			name: "Valid Token in Cookie",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: validToken})
			},
			expectedStatus: http.StatusOK,
			expectedUser:   true,
		},
		{
			name:           "No Token",
			setupRequest:   func(r *http.Request) {},
			expectedStatus: http.StatusFound,
			expectedUser:   false,
		},
		{
			name: "Invalid Token",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: "invalid"})
			},
			expectedStatus: http.StatusFound,
			expectedUser:   false,
		},
		{
			name: "Wrong Cookie Name",
			setupRequest: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: "session", Value: validToken})
			},
			expectedStatus: http.StatusFound,
			expectedUser:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				accountID, ok := AccountID(r.Context())
				if !ok && tt.expectedUser {
					t.Error("Expected account ID in context, got none")
				}
				if ok && !tt.expectedUser {
					t.Error("Unexpected account ID in context")
				}
				if ok && accountID != 1 {
					t.Errorf("Expected account ID 1, got %d", accountID)
				}
				w.WriteHeader(http.StatusOK)
			})

			handler := Auth(codec)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setupRequest(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
			if tt.expectedStatus == http.StatusFound {
				if loc := rr.Header().Get("Location"); loc != LoginPath {
					t.Errorf("redirect location = %q, want %q", loc, LoginPath)
				}
			}
		})
	}
}

func TestAuth_ExpiredTokenRedirects(t *testing.T) {
	issuer := auth.NewJWT("secret-a")
	verifier := auth.NewJWT("secret-b") // wrong secret mimics an untrusted token

	token, _ := issuer.Issue(7, "old@example.com")

	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("protected handler reached with invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/visualization-data", nil)
	req.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: token})
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusFound)
	}
}
