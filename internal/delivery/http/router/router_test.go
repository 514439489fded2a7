package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/delivery/http/handler"
	"github.com/user/threat-log-analyzer/internal/delivery/http/response"
	"github.com/user/threat-log-analyzer/internal/entity"
	"github.com/user/threat-log-analyzer/pkg/metrics"
)

func newTestServer(t *testing.T, threats entity.ThreatMapping) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	h := handler.NewHandler(threats, zap.NewNop())
	srv := httptest.NewServer(New(h, metrics.New(reg), reg, zap.NewNop()))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, string(body)
}

func TestThreatTablePage(t *testing.T) {
	srv := newTestServer(t, entity.ThreatMapping{"10.0.0.2": "scanner", "10.0.0.1": "<botnet>"})

	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "<tr><th>IP</th><th>Description</th></tr>") {
		t.Errorf("missing header row in %s", body)
	}
	first := strings.Index(body, "10.0.0.1")
	second := strings.Index(body, "10.0.0.2")
	if first == -1 || second == -1 || first > second {
		t.Errorf("rows missing or out of order in %s", body)
	}
	if !strings.Contains(body, "&lt;botnet&gt;") {
		t.Errorf("description was not escaped in %s", body)
	}
}

func TestListThreats(t *testing.T) {
	srv := newTestServer(t, entity.ThreatMapping{"10.0.0.1": "botnet"})

	resp, body := get(t, srv.URL+"/api/threats")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var list response.ThreatListResponse
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if list.Count != 1 || list.Threats[0].IP != "10.0.0.1" || list.Threats[0].Description != "botnet" {
		t.Errorf("unexpected listing %+v", list)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, entity.ThreatMapping{})

	if resp, _ := get(t, srv.URL+"/api/health"); resp.StatusCode != http.StatusOK {
		t.Errorf("health: expected 200, got %d", resp.StatusCode)
	}

	resp, body := get(t, srv.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, `http_requests_total{method="GET",path="/api/health",status="200"} 1`) {
		t.Errorf("request metric missing from %s", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, entity.ThreatMapping{})
	if resp, _ := get(t, srv.URL+"/nope"); resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
