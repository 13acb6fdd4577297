package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMiddleware(t *testing.T) {
	secret := []byte("0123456789abcdef")
	valid, err := GenerateToken("u1", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	foreign, err := GenerateToken("u1", []byte("another-secret-key"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	handler := Middleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("handler reached without user id in context")
		}
		_, _ = w.Write([]byte(userID))
	}))

	tests := []struct {
		name       string
		prepare    func(*http.Request)
		wantStatus int
		wantBody   string
	}{
		{
			name: "valid session cookie",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookie, Value: valid})
			},
			wantStatus: http.StatusOK,
			wantBody:   "u1",
		},
		{
			name: "valid bearer token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+valid)
			},
			wantStatus: http.StatusOK,
			wantBody:   "u1",
		},
		{
			name:       "no credentials",
			prepare:    func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "token signed with wrong secret",
			prepare: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookie, Value: foreign})
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed bearer token",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer garbage")
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
			tt.prepare(req)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && rec.Body.String() != tt.wantBody {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want application/json", ct)
				}
			}
		})
	}
}
