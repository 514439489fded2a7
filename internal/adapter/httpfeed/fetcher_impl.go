package httpfeed

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/adapter/threatpage"
	"github.com/user/threat-log-analyzer/internal/entity"
	"github.com/user/threat-log-analyzer/internal/repository"
)

// FetcherImpl retrieves the threat feed with a plain HTTP GET, for pages that
// do not need a browser to render their table.
type FetcherImpl struct {
	client *http.Client
	logger *zap.Logger
}

// NewFetcher creates an HTTP threat feed fetcher. A zero timeout leaves the
// request bounded only by its context.
func NewFetcher(timeout time.Duration, logger *zap.Logger) *FetcherImpl {
	return &FetcherImpl{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// FetchThreats downloads url and scrapes the first table of the response.
func (f *FetcherImpl) FetchThreats(ctx context.Context, url string) (entity.ThreatMapping, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrNavigationFailed, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", repository.ErrFeedTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrNavigationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: received status code %d", repository.ErrContentRestricted, resp.StatusCode)
	}

	threats, err := threatpage.ExtractThreatTable(resp.Body)
	if err != nil {
		return nil, err
	}

	f.logger.Info("threat feed fetched", zap.String("url", url), zap.Int("threats", len(threats)))
	return threats, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
