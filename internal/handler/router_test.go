package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/service"
)

const testSecret = "test-secret"

type memoryRecorder struct {
	records []model.GenerationRecord
}

func (m *memoryRecorder) Create(_ context.Context, rec *model.GenerationRecord) error {
	rec.ID = int64(len(m.records) + 1)
	m.records = append(m.records, *rec)
	return nil
}

func (m *memoryRecorder) ListRecent(_ context.Context, limit int) ([]model.GenerationRecord, error) {
	var out []model.GenerationRecord
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func newTestRouter(t *testing.T, recorder service.Recorder) http.Handler {
	t.Helper()

	gen, err := service.NewGeneratorService("crypto", recorder)
	if err != nil {
		t.Fatalf("NewGeneratorService() unexpected error: %v", err)
	}
	hash, err := crypto.HashAPIKey("the-key")
	if err != nil {
		t.Fatalf("HashAPIKey() unexpected error: %v", err)
	}

	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	return NewRouter(RouterConfig{
		Generator:      gen,
		Auth:           service.NewAuthService(hash, "ci-runner", testSecret, time.Hour),
		JWTSecret:      testSecret,
		RateLimitRPS:   100,
		RateLimitBurst: 100,
		Done:           done,
	})
}

func do(t *testing.T, h http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestRouter(t, nil), http.MethodGet, "/health", "", nil)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("GET /health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandleGenerate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantLength int
	}{
		{name: "empty body uses defaults", body: "", wantStatus: http.StatusOK, wantLength: 16},
		{name: "explicit length", body: `{"length": 40}`, wantStatus: http.StatusOK, wantLength: 40},
		{name: "all classes off", body: `{"length": 12, "uppercase": false, "lowercase": false, "numbers": false, "symbols": false}`, wantStatus: http.StatusOK, wantLength: 12},
		{name: "too short", body: `{"length": 4}`, wantStatus: http.StatusBadRequest},
		{name: "too long", body: `{"length": 500}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"length":`, wantStatus: http.StatusBadRequest},
	}

	h := newTestRouter(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/v1/generate", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp model.GenerateResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if len(resp.Password) != tt.wantLength || resp.Length != tt.wantLength {
				t.Errorf("password length = %d/%d, want %d", len(resp.Password), resp.Length, tt.wantLength)
			}
			if resp.Strength == "" {
				t.Error("missing strength")
			}
		})
	}
}

func TestHandleGenerateBodyTooLarge(t *testing.T) {
	body := `{"length": 16, "pad": "` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := do(t, newTestRouter(t, nil), http.MethodPost, "/api/v1/generate", body, nil)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
}

func TestHandleStrength(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodPost, "/api/v1/strength", `{"password": "abcdefghiJ"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp model.StrengthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Strength != "Medium" || resp.Length != 10 || resp.Variety != 2 {
		t.Errorf("unexpected response %+v", resp)
	}

	if rec := do(t, h, http.MethodPost, "/api/v1/strength", "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestTokenAndHistory(t *testing.T) {
	recorder := &memoryRecorder{}
	h := newTestRouter(t, recorder)

	if rec := do(t, h, http.MethodPost, "/api/v1/generate", `{"length": 20}`, nil); rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d", rec.Code)
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/history", "", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("history without token status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	if rec := do(t, h, http.MethodPost, "/api/v1/auth/token", `{"api_key": "nope"}`, nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec := do(t, h, http.MethodPost, "/api/v1/auth/token", `{}`, nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing key status = %d, want %d", rec.Code, http.StatusBadRequest)
	}

	rec := do(t, h, http.MethodPost, "/api/v1/auth/token", `{"api_key": "the-key"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("token status = %d (%s)", rec.Code, rec.Body.String())
	}
	var token model.TokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&token); err != nil {
		t.Fatalf("decoding token: %v", err)
	}

	auth := map[string]string{"Authorization": "Bearer " + token.Token}

	rec = do(t, h, http.MethodGet, "/api/v1/history?limit=5", "", auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d (%s)", rec.Code, rec.Body.String())
	}
	var history model.HistoryResponse
	if err := json.NewDecoder(rec.Body).Decode(&history); err != nil {
		t.Fatalf("decoding history: %v", err)
	}
	if len(history.Records) != 1 || history.Records[0].Length != 20 || history.Records[0].Entropy != "crypto" {
		t.Errorf("unexpected history %+v", history.Records)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("history must not expose passwords")
	}

	if rec := do(t, h, http.MethodGet, "/api/v1/history?limit=ten", "", auth); rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestHistoryUnavailable(t *testing.T) {
	h := newTestRouter(t, nil)

	token, err := crypto.GenerateToken("ci-runner", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	rec := do(t, h, http.MethodGet, "/api/v1/history", "", map[string]string{"Authorization": "Bearer " + token})
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}
