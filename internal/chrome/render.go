// Package chrome drives headless Chrome via chromedp: a disposable
// per-request renderer plus an optional long-lived tab pool.
package chrome

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	u "exampdf/internal/utils"
)

// execOptions builds the allocator options for a Chrome instance writing
// its profile into profileDir.
func execOptions(cfg u.Config, profileDir string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserDataDir(profileDir),
		// Force software rendering; minimal containers have no GPU and
		// Vulkan/ANGLE probing can hang the launch.
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-gpu-compositing", true),
		chromedp.Flag("disable-features", "Vulkan,UseSkiaRenderer"),
		chromedp.Flag("use-gl", "swiftshader"),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if cfg.PDF.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.PDF.ChromePath))
	}
	if cfg.PDF.ChromeNoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	return opts
}

// RenderHTML launches a disposable Chrome instance, loads the given
// self-contained HTML document and captures it as PDF bytes. The instance,
// its contexts and its temp profile dir are released on every exit path.
func RenderHTML(html string, paper u.PaperSize, cfg u.Config) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "exampdf-chrome-*")
	if err != nil {
		return nil, fmt.Errorf("cannot create temp profile dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), execOptions(cfg, tmpDir)...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	timeout := time.Duration(cfg.PDF.TimeoutSecs) * time.Second
	ctx, cancel := context.WithTimeout(browserCtx, timeout)
	defer cancel()

	return RenderHTMLInTab(ctx, html, paper)
}

// RenderHTMLInTab renders the HTML document to PDF inside an existing tab
// context. Pagination follows the @page directives in the document itself
// (PreferCSSPageSize), with the configured paper size as fallback and
// backgrounds included.
func RenderHTMLInTab(ctx context.Context, html string, paper u.PaperSize) ([]byte, error) {
	var pdfBuf []byte

	actions := []chromedp.Action{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frame, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frame.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Give layout a moment to settle before capture.
		chromedp.Sleep(200 * time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(paper.Width).
				WithPaperHeight(paper.Height).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	}

	if err := chromedp.Run(ctx, actions...); err != nil {
		return nil, err
	}
	return pdfBuf, nil
}
