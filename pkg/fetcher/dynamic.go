package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/mealforge/mealforge/internal/logger"
)

// DynamicConfig holds configuration for the dynamic fetcher.
type DynamicConfig struct {
	UserAgent string
	Timeout   time.Duration
}

// DynamicFetcher uses chromedp for JavaScript-rendered recipe pages.
type DynamicFetcher struct {
	config    DynamicConfig
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewDynamic creates a new dynamic fetcher backed by a headless browser.
func NewDynamic(cfg DynamicConfig) (*DynamicFetcher, error) {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	return &DynamicFetcher{
		config:    cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancelAlloc,
	}, nil
}

// Fetch retrieves page content using a headless browser.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("dynamic fetch starting", "url", targetURL)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx)
	defer cancelBrowser()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}

	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	var html string
	var title string

	actions := []chromedp.Action{
		chromedp.Navigate(targetURL),
	}

	if opts.WaitForSelector != "" {
		actions = append(actions, chromedp.WaitVisible(opts.WaitForSelector))
	} else {
		actions = append(actions, chromedp.WaitVisible("body"))
	}

	if opts.WaitDuration > 0 {
		actions = append(actions, chromedp.Sleep(opts.WaitDuration))
	}

	actions = append(actions,
		chromedp.OuterHTML("html", &html),
		chromedp.Title(&title),
	)

	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	result.HTML = html
	result.Title = title
	// chromedp doesn't easily expose status codes
	result.StatusCode = 200

	if err := parseContent(&result); err != nil {
		return result, fmt.Errorf("failed to parse content: %w", err)
	}
	logger.Debug("dynamic fetch complete",
		"title", result.Title,
		"text_size", len(result.Text))

	return result, nil
}

// Close shuts down the browser allocator.
func (f *DynamicFetcher) Close() error {
	if f.cancelCtx != nil {
		f.cancelCtx()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}
