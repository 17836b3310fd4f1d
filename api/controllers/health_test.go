package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefrontlabs/storefront-api/pkg/config"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

func healthConfig() *config.Config {
	return &config.Config{App: config.AppConfig{Env: "development"}}
}

func TestHealthLive(t *testing.T) {
	handler := HealthLive(healthConfig())
	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if env := resp.Header().Get("X-Storefront-Env"); env != "development" {
		t.Fatalf("expected the env header, got %q", env)
	}
}

func TestHealthReadyWithStore(t *testing.T) {
	handler := HealthReady(healthConfig(), nil, stubPinger{})
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestHealthReadyWithoutStore(t *testing.T) {
	handler := HealthReady(healthConfig(), nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 when persistence runs disabled got %d", resp.Code)
	}
}

func TestHealthReadyStoreDown(t *testing.T) {
	handler := HealthReady(healthConfig(), nil, stubPinger{err: fmt.Errorf("connection refused")})
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 when the store fails got %d", resp.Code)
	}
}
