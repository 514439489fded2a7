package chromedp_scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/user/threat-log-analyzer/internal/adapter/threatpage"
	"github.com/user/threat-log-analyzer/internal/entity"
	"github.com/user/threat-log-analyzer/internal/repository"
)

// ChromedpScraper loads the threat feed in a headless browser.
type ChromedpScraper struct {
	allocatorOpts []chromedp.ExecAllocatorOption
	timeout       time.Duration
	logger        *zap.Logger
}

// NewChromedpScraper creates a threat feed fetcher backed by chromedp.
// A zero pageLoadTimeout leaves navigation bounded only by ctx.
func NewChromedpScraper(pageLoadTimeout time.Duration, logger *zap.Logger) *ChromedpScraper {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	return &ChromedpScraper{
		allocatorOpts: opts,
		timeout:       pageLoadTimeout,
		logger:        logger,
	}
}

// FetchThreats starts a browser, loads url and scrapes the first table on the page.
// The browser is shut down before returning on every path.
func (s *ChromedpScraper) FetchThreats(ctx context.Context, url string) (entity.ThreatMapping, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, s.allocatorOpts...)
	defer allocCancel()

	taskCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(s.logger.Sugar().Debugf))
	defer cancel()

	if s.timeout > 0 {
		var timeoutCancel context.CancelFunc
		taskCtx, timeoutCancel = context.WithTimeout(taskCtx, s.timeout)
		defer timeoutCancel()
	}

	resp, err := chromedp.RunResponse(taskCtx, chromedp.Navigate(url))
	if err != nil {
		return nil, classifyError(err)
	}
	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var htmlContent string
	if err := chromedp.Run(taskCtx, chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", repository.ErrFeedTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", repository.ErrExtractionFailed, err)
	}

	threats, err := threatpage.ExtractThreatTableFromHTML(htmlContent)
	if err != nil {
		return nil, err
	}

	s.logger.Info("threat feed scraped", zap.String("url", url), zap.Int("threats", len(threats)))
	return threats, nil
}

func classifyError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", repository.ErrFeedTimeout, err)
	}
	return fmt.Errorf("%w: %v", repository.ErrNavigationFailed, err)
}

// checkResponse rejects error statuses of the main document. A nil response
// happens for same-document navigations and is accepted.
func checkResponse(resp *network.Response) error {
	if resp == nil {
		return nil
	}
	if resp.Status >= 400 {
		return fmt.Errorf("%w: received status code %d", repository.ErrContentRestricted, resp.Status)
	}
	return nil
}
