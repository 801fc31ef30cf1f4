package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"exampdf/internal/bank"
	"exampdf/internal/chrome"
	"exampdf/internal/exam"
	u "exampdf/internal/utils"
)

// PDFService bundles configuration and dependencies for exam-paper
// rendering. One instance is shared by all routes so they use the same
// Chrome pool.
type PDFService struct {
	Config *u.Config
	Redis  *redis.Client

	poolMu  sync.Mutex
	pool    *chrome.Pool
	poolErr error

	// render is the final pipeline stage. Tests swap it for a stub to
	// observe the composed HTML without launching Chrome.
	render func(html string, paper u.PaperSize) ([]byte, error)
}

// NewPDFService creates a new PDFService instance.
func NewPDFService(cfg u.Config, rdb *redis.Client) *PDFService {
	svc := &PDFService{
		Config: &cfg,
		Redis:  rdb,
	}
	svc.render = svc.renderPDF
	return svc
}

func (svc *PDFService) getChromePool() (*chrome.Pool, error) {
	svc.poolMu.Lock()
	defer svc.poolMu.Unlock()

	if svc.Config.PDF.ChromePoolSize <= 0 {
		return nil, nil
	}
	if svc.pool != nil {
		return svc.pool, nil
	}
	pool, err := chrome.NewPool(*svc.Config)
	if err != nil {
		svc.poolErr = err
		return nil, err
	}
	svc.pool = pool
	return svc.pool, nil
}

// HandleExamPaperPDF renders a caller-supplied exam paper to PDF.
// Pipeline per request: validate, compose, render. No stage starts before
// the previous one succeeded, and nothing is shared across requests.
func (svc *PDFService) HandleExamPaperPDF(c *fiber.Ctx) error {
	paper, err := svc.parseExamPaper(c.Body())
	if err != nil {
		return err
	}
	return svc.generatePDF(c, paper)
}

// HandleSamplePaper assembles a paper from the built-in question bank and
// renders it through the same pipeline.
func (svc *PDFService) HandleSamplePaper(c *fiber.Ctx) error {
	subject := c.Query("subject")
	if subject == "" {
		return fiber.NewError(fiber.StatusBadRequest,
			"Missing subject: expected one of "+strings.Join(bank.Subjects(), ", "))
	}

	count := c.QueryInt("count", 5)
	if count < 1 || count > 50 {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid count: must be between 1 and 50")
	}

	paper, err := bank.BuildPaper(subject, c.Query("board"), count)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return svc.generatePDF(c, &paper)
}

// parseExamPaper deserialises and validates the request body. Unparseable
// bodies and wrong-shaped documents are distinct 400s: the former never
// produced a document at all.
func (svc *PDFService) parseExamPaper(body []byte) (*exam.Paper, error) {
	if len(body) > svc.Config.Limits.MaxBodyBytes {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge,
			fmt.Sprintf("Request body exceeds %d bytes", svc.Config.Limits.MaxBodyBytes))
	}

	var paper exam.Paper
	if err := json.Unmarshal(body, &paper); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// Parseable JSON with the wrong shape, e.g. a numeric title.
			return nil, fiber.NewError(fiber.StatusBadRequest, exam.ErrInvalidPaper.Error())
		}
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}

	if err := paper.Validate(); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return &paper, nil
}

// generatePDF runs compose and render, then writes the binary response.
// Either a complete PDF goes out or a structured error; never a partial
// body.
func (svc *PDFService) generatePDF(c *fiber.Ctx, paper *exam.Paper) error {
	html := exam.Compose(*paper)

	pdfBuf, err := svc.render(html, svc.paperSize())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			u.Error("PDF rendering timed out", "timeout_secs", svc.Config.PDF.TimeoutSecs, "error", err.Error())
			return fiber.NewError(fiber.StatusInternalServerError, "PDF rendering timed out")
		}
		if chrome.IsSessionInterrupted(err) {
			u.Error("Chrome session interrupted", "error", err.Error())
			return fiber.NewError(fiber.StatusServiceUnavailable, "Chrome session interrupted")
		}
		u.Error("PDF generation failed", "error", err.Error())
		return fiber.NewError(fiber.StatusInternalServerError, "PDF generation failed: "+err.Error())
	}

	if len(pdfBuf) > svc.Config.Limits.MaxPDFBytes {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "PDF exceeds allowed size")
	}

	svc.recordRender(c, paper.Subject)

	filename := exam.SafeFilename(paper.Title) + ".pdf"
	requestID := c.Get("X-Request-ID")
	u.Info("Exam paper rendered", "filename", filename, "questions", len(paper.Questions), "request_id", requestID)

	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	// Papers are regenerated on every request; the binary artifact is
	// never cached.
	c.Set("Cache-Control", "no-store")
	return c.Send(pdfBuf)
}

func (svc *PDFService) paperSize() u.PaperSize {
	if paper, ok := svc.Config.PDF.PaperSizes[svc.Config.PDF.DefaultPaper]; ok {
		return paper
	}
	return u.PaperSize{Width: 8.27, Height: 11.69} // A4
}

// renderPDF routes through the Chrome pool when one is configured, and
// otherwise launches a disposable instance for this request.
func (svc *PDFService) renderPDF(html string, paper u.PaperSize) ([]byte, error) {
	pool, err := svc.getChromePool()
	if err != nil {
		return nil, err
	}
	if pool == nil {
		return chrome.RenderHTML(html, paper, *svc.Config)
	}

	timeout := time.Duration(svc.Config.PDF.TimeoutSecs) * time.Second

	runOnce := func() ([]byte, error) {
		acquireCtx, acquireCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer acquireCancel()

		tab, err := pool.Acquire(acquireCtx)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(tab.Ctx, timeout)
		pdfBuf, renderErr := chrome.RenderHTMLInTab(ctx, html, paper)
		cancel()

		pool.Release(tab, renderErr)
		return pdfBuf, renderErr
	}

	pdfBuf, renderErr := runOnce()
	if renderErr != nil && chrome.IsSessionInterrupted(renderErr) {
		u.Warn("Chrome session interrupted; restarting pool and retrying once", "error", renderErr)
		_ = pool.Restart()
		return runOnce()
	}

	return pdfBuf, renderErr
}

// HandleChromeStats exposes basic observability for the Chrome pool.
func (svc *PDFService) HandleChromeStats(c *fiber.Ctx) error {
	pool, err := svc.getChromePool()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Chrome pool init failed: "+err.Error())
	}

	// Pool disabled: every request launches its own instance.
	if pool == nil {
		return c.JSON(fiber.Map{
			"enabled":        false,
			"capacity":       0,
			"idle":           0,
			"in_use":         0,
			"pool_size_conf": svc.Config.PDF.ChromePoolSize,
			"profile_dir":    "",
			"timeout_secs":   svc.Config.PDF.TimeoutSecs,
			"restarts":       0,
		})
	}

	s := pool.Stats(svc.Config.PDF.TimeoutSecs)
	return c.JSON(fiber.Map{
		"enabled":        s.Enabled,
		"capacity":       s.Capacity,
		"idle":           s.Idle,
		"in_use":         s.InUse,
		"pool_size_conf": s.PoolSizeConf,
		"profile_dir":    s.ProfileDir,
		"timeout_secs":   svc.Config.PDF.TimeoutSecs,
		"restarts":       s.Restarts,
		"last_restart":   s.LastRestart,
	})
}
