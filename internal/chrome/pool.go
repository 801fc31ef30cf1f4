package chrome

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	u "exampdf/internal/utils"
)

// Tab is one leased browser tab. Callers must hand it back via Release.
type Tab struct {
	Ctx    context.Context
	cancel context.CancelFunc
}

// Pool keeps a single long-lived Chrome instance and bounds concurrent tab
// use with a semaphore. It is optional: pool size 0 in the config means
// every request launches its own disposable instance instead.
type Pool struct {
	mu  sync.Mutex
	cfg u.Config

	sem         chan struct{}
	allocCtx    context.Context
	allocStop   context.CancelFunc
	browserCtx  context.Context
	browserStop context.CancelFunc

	profileDir  string
	closed      bool
	restarts    int
	lastRestart time.Time
}

// PoolStats is a point-in-time snapshot for the stats endpoint.
type PoolStats struct {
	Enabled      bool
	Capacity     int
	Idle         int
	InUse        int
	PoolSizeConf int
	ProfileDir   string
	Restarts     int
	LastRestart  string
}

var errPoolClosed = errors.New("chrome pool is closed")

// createProfileDir makes a fresh profile directory under the configured
// base, or under the system temp dir when none is configured.
func createProfileDir(cfg u.Config) (string, error) {
	base := cfg.PDF.UserDataDir
	if base == "" {
		base = os.TempDir()
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	return os.MkdirTemp(base, "exampdf-pool-*")
}

// NewPool starts the shared browser. It fails when pooling is disabled in
// the config.
func NewPool(cfg u.Config) (*Pool, error) {
	size := cfg.PDF.ChromePoolSize
	if size <= 0 {
		return nil, errors.New("chrome pool disabled: pool size must be positive")
	}

	profileDir, err := createProfileDir(cfg)
	if err != nil {
		return nil, err
	}

	p := &Pool{
		cfg:        cfg,
		sem:        make(chan struct{}, size),
		profileDir: profileDir,
	}
	for i := 0; i < size; i++ {
		p.sem <- struct{}{}
	}
	p.startBrowser()
	return p, nil
}

// startBrowser (re)creates the allocator and browser contexts. Chrome
// itself launches lazily on first use. Caller holds no lease on any tab.
func (p *Pool) startBrowser() {
	p.allocCtx, p.allocStop = chromedp.NewExecAllocator(context.Background(), execOptions(p.cfg, p.profileDir)...)
	p.browserCtx, p.browserStop = chromedp.NewContext(p.allocCtx)
}

// Acquire leases a tab, waiting until one is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Tab, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, errPoolClosed
	}
	sem := p.sem
	browserCtx := p.browserCtx
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-sem:
	}

	tabCtx, tabCancel := chromedp.NewContext(browserCtx)
	return &Tab{Ctx: tabCtx, cancel: tabCancel}, nil
}

// Release closes the tab and returns its slot to the pool. Exactly one
// Release per successful Acquire, on success and failure paths alike.
func (p *Pool) Release(tab *Tab, renderErr error) {
	if tab == nil {
		return
	}
	if tab.cancel != nil {
		tab.cancel()
	}
	_ = renderErr // the caller decides whether to Restart

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.sem == nil {
		return
	}
	select {
	case p.sem <- struct{}{}:
	default:
	}
}

// Restart tears the browser down and brings up a fresh one with a new
// profile dir. Used after an interrupted session.
func (p *Pool) Restart() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errPoolClosed
	}

	if p.browserStop != nil {
		p.browserStop()
	}
	if p.allocStop != nil {
		p.allocStop()
	}
	if p.profileDir != "" {
		_ = os.RemoveAll(p.profileDir)
	}

	profileDir, err := createProfileDir(p.cfg)
	if err != nil {
		return err
	}
	p.profileDir = profileDir
	p.startBrowser()

	// Refill the semaphore; any leases outstanding during a restart belong
	// to the old browser and are dropped.
	for {
		select {
		case <-p.sem:
			continue
		default:
		}
		break
	}
	for i := 0; i < cap(p.sem); i++ {
		p.sem <- struct{}{}
	}

	p.restarts++
	p.lastRestart = time.Now()
	return nil
}

// Close shuts the browser down and removes the profile dir. Idempotent.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.closed = true

	if p.browserStop != nil {
		p.browserStop()
	}
	if p.allocStop != nil {
		p.allocStop()
	}
	if p.profileDir != "" {
		_ = os.RemoveAll(p.profileDir)
	}
}

// Stats reports capacity and usage for the stats endpoint.
func (p *Pool) Stats(timeoutSecs int) PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := PoolStats{
		PoolSizeConf: p.cfg.PDF.ChromePoolSize,
		ProfileDir:   p.profileDir,
		Restarts:     p.restarts,
	}
	if !p.lastRestart.IsZero() {
		st.LastRestart = p.lastRestart.Format(time.RFC3339)
	}
	if p.closed || p.sem == nil {
		return st
	}
	st.Enabled = true
	st.Capacity = cap(p.sem)
	st.Idle = len(p.sem)
	st.InUse = st.Capacity - st.Idle
	return st
}

// IsSessionInterrupted reports whether err looks like the browser went away
// underneath us, as opposed to a bad document or a validation problem.
func IsSessionInterrupted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	for _, needle := range []string{
		"target closed",
		"session closed",
		"browser closed",
		"context canceled",
		"websocket: close",
	} {
		if strings.Contains(msg, needle) {
			return true
		}
	}
	return false
}
