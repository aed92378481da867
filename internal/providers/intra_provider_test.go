package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campus-hub/agora/internal/common"
	"campus-hub/agora/internal/constants"
	"campus-hub/agora/internal/models/entities"
)

type upstreamStub struct {
	tokenRequests int
	apiRequests   int

	tokenStatus int
	expiresIn   int

	handler http.HandlerFunc
}

// newUpstream builds an httptest server that serves both the token endpoint
// and the API surface, plus a provider wired against it.
func newUpstream(t *testing.T, stub *upstreamStub) (*IntraProvider, *httptest.Server) {
	t.Helper()

	if stub.tokenStatus == 0 {
		stub.tokenStatus = http.StatusOK
	}
	if stub.expiresIn == 0 {
		stub.expiresIn = 7200
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/oauth/token" {
			stub.tokenRequests++
			if stub.tokenStatus != http.StatusOK {
				w.WriteHeader(stub.tokenStatus)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"access_token": "tok-1",
				"token_type":   "bearer",
				"expires_in":   stub.expiresIn,
			})
			return
		}

		stub.apiRequests++
		if stub.handler != nil {
			stub.handler(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 1, "login": "zx"})
	}))
	t.Cleanup(server.Close)

	provider := &IntraProvider{
		BaseURL:      server.URL,
		TokenURL:     server.URL + "/oauth/token",
		ClientID:     "client",
		ClientSecret: "secret",
		Client:       server.Client(),
		cache:        common.NewMemoryCache(),
		now:          time.Now,
	}
	return provider, server
}

func TestTokenReusedAcrossRequests(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{}
	provider, _ := newUpstream(t, stub)

	for i := 0; i < 3; i++ {
		if _, _, err := provider.GetUserByLogin(ctx, "zx"); err != nil {
			t.Fatalf("GetUserByLogin: %v", err)
		}
	}

	if stub.tokenRequests != 1 {
		t.Errorf("expected 1 token exchange, got %d", stub.tokenRequests)
	}
	if stub.apiRequests != 3 {
		t.Errorf("expected 3 API requests, got %d", stub.apiRequests)
	}
}

func TestTokenRenewedInsideSafetyMargin(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{expiresIn: 300}
	provider, _ := newUpstream(t, stub)

	base := time.Now()
	provider.now = func() time.Time { return base }

	if _, _, err := provider.GetUserByLogin(ctx, "zx"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	// 250s in: 50s of declared lifetime left, inside the 60s margin
	provider.now = func() time.Time { return base.Add(250 * time.Second) }
	provider.cache.Clear(ctx)

	if _, _, err := provider.GetUserByLogin(ctx, "zx"); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if stub.tokenRequests != 2 {
		t.Errorf("expected a renewal inside the safety margin, got %d exchanges", stub.tokenRequests)
	}
}

func TestTokenStillValidOutsideSafetyMargin(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{expiresIn: 300}
	provider, _ := newUpstream(t, stub)

	base := time.Now()
	provider.now = func() time.Time { return base }

	if _, _, err := provider.GetUserByLogin(ctx, "zx"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	// 200s in: 100s left, comfortably outside the margin
	provider.now = func() time.Time { return base.Add(200 * time.Second) }

	if _, _, err := provider.GetUserByLogin(ctx, "zx"); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if stub.tokenRequests != 1 {
		t.Errorf("token should still be valid, got %d exchanges", stub.tokenRequests)
	}
}

func TestTokenAdoptedFromSharedCache(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{}
	provider, _ := newUpstream(t, stub)

	provider.cache.Set(ctx, constants.KeyOAuthToken, entities.CachedToken{
		AccessToken: "shared-tok",
		ExpiresAt:   time.Now().Add(time.Hour),
	}, time.Hour)

	if _, _, err := provider.GetUserByLogin(ctx, "zx"); err != nil {
		t.Fatalf("GetUserByLogin: %v", err)
	}

	if stub.tokenRequests != 0 {
		t.Errorf("a valid shared token must be adopted without an exchange, got %d", stub.tokenRequests)
	}
}

func TestMissingCredentialsIsConfigError(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{}
	provider, _ := newUpstream(t, stub)
	provider.ClientID = ""
	provider.ClientSecret = ""

	_, _, err := provider.GetUserByLogin(ctx, "zx")
	if err == nil {
		t.Fatal("expected error")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Code != constants.ErrCodeAuthConfig {
		t.Errorf("expected auth config error, got %v", err)
	}
	if stub.tokenRequests != 0 {
		t.Errorf("no exchange should be attempted without credentials, got %d", stub.tokenRequests)
	}
}

func TestRejectedCredentials(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{tokenStatus: http.StatusUnauthorized}
	provider, _ := newUpstream(t, stub)

	_, _, err := provider.GetUserByLogin(ctx, "zx")
	if err == nil {
		t.Fatal("expected error")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Code != constants.ErrCodeAuthenticationFailed {
		t.Errorf("expected authentication failure, got %v", err)
	}
}

func TestNotFoundMapsToResourceNotFound(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{
		handler: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		},
	}
	provider, _ := newUpstream(t, stub)

	_, status, err := provider.GetUserByLogin(ctx, "ghost")
	if err == nil {
		t.Fatal("expected error")
	}
	if status != http.StatusNotFound {
		t.Errorf("expected 404 status, got %d", status)
	}
	if !IsNotFound(err) {
		t.Errorf("expected a not-found provider error, got %v", err)
	}
}

func TestRateLimitMapsToRateLimited(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{
		handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		},
	}
	provider, _ := newUpstream(t, stub)

	_, _, err := provider.GetUserByLogin(ctx, "zx")
	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Code != constants.ErrCodeRateLimited {
		t.Errorf("expected rate-limited error, got %v", err)
	}
}

func TestEmptyLoginRejectedLocally(t *testing.T) {
	ctx := context.Background()
	stub := &upstreamStub{}
	provider, _ := newUpstream(t, stub)

	if _, _, err := provider.GetUserByLogin(ctx, ""); err == nil {
		t.Fatal("expected error for empty login")
	}
	if stub.apiRequests != 0 {
		t.Errorf("empty login must not reach the upstream, got %d requests", stub.apiRequests)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	ctx := context.Background()
	var gotAuth string
	stub := &upstreamStub{}
	stub.handler = func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": 1, "login": "zx"})
	}
	provider, _ := newUpstream(t, stub)

	if _, _, err := provider.GetUserByLogin(ctx, "zx"); err != nil {
		t.Fatalf("GetUserByLogin: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
}
