package httpfeed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/delivery/http/handler"
	"github.com/user/threat-log-analyzer/internal/delivery/http/router"
	"github.com/user/threat-log-analyzer/internal/entity"
	"github.com/user/threat-log-analyzer/internal/repository"
	"github.com/user/threat-log-analyzer/pkg/metrics"
)

func TestFetchThreatsFromFeedServer(t *testing.T) {
	threats := entity.ThreatMapping{"10.0.0.1": "botnet", "198.51.100.4": "credential stuffing"}
	reg := prometheus.NewRegistry()
	srv := httptest.NewServer(router.New(handler.NewHandler(threats, zap.NewNop()), metrics.New(reg), reg, zap.NewNop()))
	defer srv.Close()

	got, err := NewFetcher(0, zap.NewNop()).FetchThreats(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("FetchThreats failed: %v", err)
	}
	if !reflect.DeepEqual(got, threats) {
		t.Errorf("got %v, want %v", got, threats)
	}
}

func TestFetchThreatsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFetcher(0, zap.NewNop()).FetchThreats(context.Background(), srv.URL)
	if !errors.Is(err, repository.ErrContentRestricted) {
		t.Fatalf("expected ErrContentRestricted, got %v", err)
	}
}

func TestFetchThreatsConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(0, zap.NewNop()).FetchThreats(context.Background(), url)
	if !errors.Is(err, repository.ErrNavigationFailed) {
		t.Fatalf("expected ErrNavigationFailed, got %v", err)
	}
}

func TestFetchThreatsTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewFetcher(50*time.Millisecond, zap.NewNop()).FetchThreats(context.Background(), srv.URL)
	if !errors.Is(err, repository.ErrFeedTimeout) {
		t.Fatalf("expected ErrFeedTimeout, got %v", err)
	}
}
