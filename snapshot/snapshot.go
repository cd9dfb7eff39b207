package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"spacex-dashboard/config"
	"spacex-dashboard/models"
	"spacex-dashboard/utils"
)

// Target is one dashboard view to capture.
type Target struct {
	Site string
	URL  string
	File string
}

// Result records the outcome of capturing one target.
type Result struct {
	Target Target
	Bytes  int
	Err    error
}

// Capturer takes full-page screenshots of the dashboard with a headless
// browser, one per launch site.
type Capturer struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig

	mu      sync.Mutex
	results []Result
}

// New creates a ready-to-use Capturer.
func New(cfg *config.Config, logger *utils.Logger) *Capturer {
	return &Capturer{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.SnapshotConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// FetchSites reads the site selector options from the running dashboard's
// layout endpoint.
func FetchSites(ctx context.Context, client *http.Client, baseURL string) ([]string, error) {
	layoutURL, err := url.JoinPath(baseURL, "api", "layout")
	if err != nil {
		return nil, fmt.Errorf("invalid dashboard URL %q: %w", baseURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, layoutURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch layout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch layout: HTTP %d", resp.StatusCode)
	}

	var layout models.Layout
	if err := json.NewDecoder(resp.Body).Decode(&layout); err != nil {
		return nil, fmt.Errorf("decode layout: %w", err)
	}
	for _, ctl := range layout.Controls {
		if ctl.Kind == models.ControlDropdown && len(ctl.Options) > 0 {
			return ctl.Options, nil
		}
	}
	return nil, fmt.Errorf("layout has no site selector")
}

// Targets builds one target per site, with the payload range applied to
// every view. Duplicate sites are captured once.
func Targets(baseURL string, sites []string, rng models.PayloadRange) ([]Target, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid dashboard URL %q: %w", baseURL, err)
	}

	seen := utils.NewKeySet()
	targets := make([]Target, 0, len(sites))
	for _, site := range sites {
		if !seen.Add(site) {
			continue
		}

		u := *base
		q := u.Query()
		q.Set("site", site)
		q.Set("min", formatKg(rng.Min))
		q.Set("max", formatKg(rng.Max))
		u.RawQuery = q.Encode()

		targets = append(targets, Target{
			Site: site,
			URL:  u.String(),
			File: fileName(site),
		})
	}
	return targets, nil
}

// Capture screenshots every target into the snapshot directory. Targets
// are expected to be distinct, as built by Targets.
func (c *Capturer) Capture(ctx context.Context, targets []Target) ([]Result, error) {
	if err := os.MkdirAll(c.cfg.SnapshotDir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}

	chromeBin := c.cfg.ChromeBin
	if chromeBin == "" {
		chromeBin = findChromeBinary()
	}
	c.logger.Info("[snapshot] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1400, 1200),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	// Start the browser once so tabs share it.
	if err := chromedp.Run(browserCtx); err != nil {
		return nil, fmt.Errorf("start browser: %w", err)
	}

	for _, target := range targets {
		t := target
		c.pool.Submit(func() {
			n, err := c.captureOne(browserCtx, t)
			if err != nil {
				c.logger.Warn("[snapshot] %s failed: %v", t.Site, err)
			} else {
				c.logger.Info("[snapshot] %s -> %s (%d bytes)", t.Site, t.File, n)
			}

			c.mu.Lock()
			c.results = append(c.results, Result{Target: t, Bytes: n, Err: err})
			c.mu.Unlock()
		})
	}
	c.pool.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results, nil
}

func (c *Capturer) captureOne(browserCtx context.Context, t Target) (int, error) {
	var buf []byte

	err := c.retry.DoContext(browserCtx, "snapshot "+t.Site, func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, 60*time.Second)
		defer cancelTimeout()

		return chromedp.Run(ctx,
			chromedp.Navigate(t.URL),
			chromedp.WaitVisible("#success-payload-scatter-chart img", chromedp.ByQuery),
			chromedp.Sleep(time.Second),
			chromedp.FullScreenshot(&buf, 90),
		)
	})
	if err != nil {
		return 0, err
	}

	path := filepath.Join(c.cfg.SnapshotDir, t.File)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return len(buf), nil
}

// fileName turns a site name into a stable PNG file name.
func fileName(site string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(site) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	name := strings.Trim(b.String(), "-")
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	if name == "" {
		name = "site"
	}
	return name + ".png"
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// findChromeBinary returns a path to a Chrome/Chromium executable, or an
// empty string to let chromedp use its own lookup.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
