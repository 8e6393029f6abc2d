package pdf

import (
	"context"
	"fmt"
	"io"

	"storybook-server/internal/config"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Rasterizer renders an HTML document into PDF bytes.
//
//go:generate mockery --name Rasterizer --output ../mocks --outpkg mocks --case=underscore
type Rasterizer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// A4 paper in inches and the print margins (20mm top/bottom, 15mm sides).
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
	marginVertInches  = 0.787
	marginHorizInches = 0.591
)

// ChromeRasterizer prints documents through a shared headless Chrome
// instance. Дешевле держать один браузер, чем запускать его на каждый PDF.
type ChromeRasterizer struct {
	browser *rod.Browser
	logger  *zap.Logger
}

var _ Rasterizer = (*ChromeRasterizer)(nil)

// NewChromeRasterizer запускает headless-браузер и подключается к нему.
// При пустом RasterizerBinPath go-rod использует управляемый Chromium.
func NewChromeRasterizer(cfg *config.Config, logger *zap.Logger) (*ChromeRasterizer, error) {
	l := launcher.New().Headless(true)
	if cfg.RasterizerBinPath != "" {
		l = l.Bin(cfg.RasterizerBinPath)
	}
	if cfg.RasterizerNoSandbox {
		l = l.NoSandbox(true)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	logger.Info("Headless browser started for PDF rendering",
		zap.String("bin", cfg.RasterizerBinPath),
		zap.Bool("noSandbox", cfg.RasterizerNoSandbox))

	return &ChromeRasterizer{
		browser: browser,
		logger:  logger.Named("ChromeRasterizer"),
	}, nil
}

// RenderPDF prints the given HTML document to A4 PDF bytes.
func (r *ChromeRasterizer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("failed to open browser page: %w", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			r.logger.Warn("Failed to close browser page", zap.Error(closeErr))
		}
	}()

	page = page.Context(ctx)

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to set page content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to wait for page load: %w", err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
		PaperWidth:      f64(paperWidthInches),
		PaperHeight:     f64(paperHeightInches),
		MarginTop:       f64(marginVertInches),
		MarginBottom:    f64(marginVertInches),
		MarginLeft:      f64(marginHorizInches),
		MarginRight:     f64(marginHorizInches),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print page to PDF: %w", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF stream: %w", err)
	}
	return data, nil
}

// Close останавливает браузер.
func (r *ChromeRasterizer) Close() error {
	return r.browser.Close()
}

func f64(v float64) *float64 { return &v }
