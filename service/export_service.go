package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// ExportService prints catalog pages to PDF with a headless browser
type ExportService struct {
	baseURL    string // Base URL the print page is loaded from (e.g., "http://localhost:8080")
	chromePath string
	timeout    time.Duration
}

// NewExportService creates a new ExportService
func NewExportService(baseURL, chromePath string, timeout time.Duration) *ExportService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExportService{baseURL: baseURL, chromePath: chromePath, timeout: timeout}
}

// chromeCandidates are the common installation paths checked after the configured one
var chromeCandidates = []string{
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/snap/bin/chromium",
}

// detectChromePath returns the first existing browser executable,
// starting with configured, or "" to let chromedp look it up
func detectChromePath(configured string, candidates []string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// PrintURL returns the URL of the print view of page
func (s *ExportService) PrintURL(pageNum int) string {
	return fmt.Sprintf("%s/catalog/print?page=%d", s.baseURL, pageNum)
}

// GeneratePDF prints the print view of a catalog page
func (s *ExportService) GeneratePDF(ctx context.Context, pageNum int) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(s.chromePath, chromeCandidates); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := s.PrintURL(pageNum)
	log.Ctx(ctx).Info().Str("url", renderURL).Msg("GeneratePDF: rendering")

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		// Wait for fonts and images to load
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Ctx(ctx).Info().Int("page", pageNum).Int("bytes", len(pdfBuf)).Msg("GeneratePDF: done")
	return pdfBuf, nil
}
