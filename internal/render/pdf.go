package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/goliatone/go-deck/internal/logging"
	"github.com/goliatone/go-deck/internal/tokens"
	"github.com/goliatone/go-deck/pkg/interfaces"
)

const (
	// DefaultPDFTimeout bounds a single rasterisation.
	DefaultPDFTimeout = 60 * time.Second

	pdfMagic      = "%PDF"
	pixelsPerInch = 96.0
)

var (
	ErrInvalidPDF     = errors.New("render: invalid pdf output")
	ErrRendererClosed = errors.New("render: pdf renderer closed")
)

// PDFOptions configures a PDFRenderer.
type PDFOptions struct {
	// RemoteURL is the DevTools WebSocket URL of an existing Chrome. Empty
	// launches a local headless instance on first use.
	RemoteURL string
	Timeout   time.Duration
	Logger    interfaces.Logger
}

// PDFRenderer prints HTML decks to PDF with headless Chrome.
type PDFRenderer struct {
	opts    PDFOptions
	logger  interfaces.Logger
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewPDFRenderer returns a renderer. The browser starts lazily.
func NewPDFRenderer(opts PDFOptions) *PDFRenderer {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultPDFTimeout
	}
	opts.RemoteURL = strings.TrimSpace(opts.RemoteURL)
	return &PDFRenderer{
		opts:   opts,
		logger: logging.Or(opts.Logger),
	}
}

// RenderPDF prints document at the slide size given by layout and validates
// the result.
func (r *PDFRenderer) RenderPDF(ctx context.Context, document []byte, layout tokens.LayoutSpec) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if layout.SlideWidth <= 0 || layout.SlideHeight <= 0 {
		layout = tokens.DefaultLayout()
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.opts.Timeout)
	defer cancel()

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("render: open page: %w", err)
	}
	defer func() {
		_ = page.Close()
	}()

	if err := page.SetDocumentContent(string(document)); err != nil {
		return nil, fmt.Errorf("render: load document: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("render: wait load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		PaperWidth:        inches(layout.SlideWidth),
		PaperHeight:       inches(layout.SlideHeight),
		MarginTop:         inches(0),
		MarginBottom:      inches(0),
		MarginLeft:        inches(0),
		MarginRight:       inches(0),
	})
	if err != nil {
		return nil, fmt.Errorf("render: print pdf: %w", err)
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("render: read pdf: %w", err)
	}

	pages, err := ValidatePDF(data)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("render.pdf.completed", "pages", pages, "bytes", len(data))
	return data, nil
}

// ValidatePDF checks the magic header and parses data with pdfcpu, returning
// the page count.
func ValidatePDF(data []byte) (int, error) {
	if !bytes.HasPrefix(data, []byte(pdfMagic)) {
		return 0, ErrInvalidPDF
	}
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPDF, err)
	}
	return ctx.PageCount, nil
}

// Close shuts the browser down. The renderer cannot be reused afterwards.
func (r *PDFRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return r.cleanupLocked()
}

func (r *PDFRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrRendererClosed
	}
	if r.browser != nil {
		return r.browser, nil
	}

	controlURL := r.opts.RemoteURL
	if controlURL == "" {
		l := launcher.New().Headless(true)
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("render: launch browser: %w", err)
		}
		controlURL = u
		r.lnch = l
		r.logger.Info("render.browser.launched")
	} else {
		r.logger.Info("render.browser.remote", "url", controlURL)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		_ = r.cleanupLocked()
		return nil, fmt.Errorf("render: connect browser: %w", err)
	}
	r.browser = b
	return b, nil
}

func (r *PDFRenderer) cleanupLocked() error {
	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.lnch != nil {
		r.lnch.Cleanup()
		r.lnch = nil
	}
	return err
}

func inches(px float64) *float64 {
	v := px / pixelsPerInch
	return &v
}
