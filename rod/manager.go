package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPagesPerBrowser is the default number of pages a browser
// instance serves before it is replaced.
const DefaultMaxPagesPerBrowser = 75

// chromeSession is one launched Chrome process with its control connection.
type chromeSession struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// startChrome launches headless Chrome and connects to it. The no-sandbox
// and disable-dev-shm-usage flags keep Chrome working in containers; the
// throttling flags stop background tabs from stalling renders.
func startChrome() (*chromeSession, error) {
	l := launcher.New().
		Set("disable-gpu").
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &chromeSession{launcher: l, browser: browser}, nil
}

func (s *chromeSession) stop() error {
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// BrowserManager hands out a shared Chrome instance and replaces it after a
// fixed number of pages. Chrome's memory use grows steadily as pages are
// rendered and does not return to baseline when they are closed, so long
// crawls need a fresh process every so often.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	session  *chromeSession
	served   int64
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages a Chrome instance serves before it is
// replaced. Defaults to DefaultMaxPagesPerBrowser.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches headless Chrome and returns a manager for it.
// Close must be called when the manager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPagesPerBrowser}
	for _, opt := range opts {
		opt(bm)
	}

	session, err := startChrome()
	if err != nil {
		return nil, err
	}
	bm.session = session

	return bm, nil
}

// Acquire returns a browser to render one page with, counting the page
// toward the replacement threshold. When the threshold is reached a fresh
// Chrome is started first and the old one shut down; if the fresh launch
// fails the old instance keeps serving.
func (bm *BrowserManager) Acquire() (*rod.Browser, error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, fmt.Errorf("browser manager is closed")
	}

	if bm.served >= bm.maxPages {
		if next, err := startChrome(); err == nil {
			_ = bm.session.stop()
			bm.session = next
			bm.served = 0
		}
	}

	bm.served++
	return bm.session.browser, nil
}

// Close shuts down the current Chrome instance. Safe to call more than once.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	err := bm.session.stop()
	bm.session = nil
	return err
}

// LauncherPID returns the process ID of the running Chrome launcher, or
// zero after Close. Used by tests to verify process cleanup.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.session == nil {
		return 0
	}
	return bm.session.launcher.PID()
}
