package router

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prizelab/giveawayd/internal/config"
	pkgAuth "github.com/prizelab/giveawayd/internal/pkg/auth"
	"github.com/prizelab/giveawayd/internal/ratelimit"
	"github.com/prizelab/giveawayd/internal/server/http/dto"
	"github.com/prizelab/giveawayd/internal/server/http/handlers"
	testhelpers "github.com/prizelab/giveawayd/internal/test"
)

func newEngine(t *testing.T, strategy pkgAuth.Strategy) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := ratelimit.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	cfg := &config.Config{RateLimitPerMinute: 1000}
	return Setup(testhelpers.PlatformFacadeStub{}, strategy, store, cfg, logger)
}

func TestSetupPublicRoutes(t *testing.T) {
	engine := newEngine(t, testhelpers.StrategyStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/giveaways/1", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public giveaway summary, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/giveaways/1/winners", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for public winners, got %d", resp.Code)
	}

	body, _ := json.Marshal(dto.WebhookRequest{Reference: "pi-1", Status: "succeeded"})
	req = httptest.NewRequest(http.MethodPost, "/api/payments/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for webhook, got %d", resp.Code)
	}
}

func TestSetupAuthenticatedRoutes(t *testing.T) {
	engine := newEngine(t, testhelpers.StrategyStub{})

	req := httptest.NewRequest(http.MethodPost, "/api/giveaways/1/enter", nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/giveaways/1/enter", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for free entry, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/points/balance", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for balance, got %d", resp.Code)
	}
}

func TestSetupAdminRoutes(t *testing.T) {
	memberStrategy := testhelpers.StrategyStub{ParseFn: func(string) (*pkgAuth.Identity, error) {
		return &pkgAuth.Identity{UserID: 1, Role: pkgAuth.RoleMember}, nil
	}}
	engine := newEngine(t, memberStrategy)

	body, _ := json.Marshal(dto.DrawRequest{NumberOfWinners: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/giveaways/1/draw", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for member on admin route, got %d", resp.Code)
	}

	adminStrategy := testhelpers.StrategyStub{ParseFn: func(string) (*pkgAuth.Identity, error) {
		return &pkgAuth.Identity{UserID: 1, Role: pkgAuth.RoleAdmin}, nil
	}}
	engine = newEngine(t, adminStrategy)

	req = httptest.NewRequest(http.MethodPost, "/api/admin/giveaways/1/draw", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin draw, got %d", resp.Code)
	}
}

func TestSetupRateLimitKeyedByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := ratelimit.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	cfg := &config.Config{RateLimitPerMinute: 2}
	strategy := testhelpers.StrategyStub{ParseFn: func(token string) (*pkgAuth.Identity, error) {
		if token == "second" {
			return &pkgAuth.Identity{UserID: 8, Role: pkgAuth.RoleMember}, nil
		}
		return &pkgAuth.Identity{UserID: 7, Role: pkgAuth.RoleMember}, nil
	}}
	engine := Setup(testhelpers.PlatformFacadeStub{}, strategy, store, cfg, logger)

	balance := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/points/balance", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		engine.ServeHTTP(resp, req)
		return resp.Code
	}

	for i := 0; i < 2; i++ {
		if code := balance("first"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, code)
		}
	}
	if code := balance("first"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 once the user's budget is spent, got %d", code)
	}

	// Same client address, different user: a fresh budget.
	if code := balance("second"); code != http.StatusOK {
		t.Fatalf("expected 200 for second user, got %d", code)
	}
}

var _ handlers.PlatformFacade = testhelpers.PlatformFacadeStub{}
