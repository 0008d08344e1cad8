package tex2png

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/image/draw"

	"github.com/eea/tex2png/internal/fileutil"
	"github.com/eea/tex2png/internal/process"
)

// Compile-time interface implementation check.
var _ Rasterizer = (*browserRasterizer)(nil)

// pageTemplate shows the SVG as an image sized to the exact target box.
const pageTemplate = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><style>
html, body { margin: 0; padding: 0; background: transparent; overflow: hidden; }
img { display: block; width: %dpx; height: %dpx; }
</style></head>
<body><img alt="" src="data:image/svg+xml;base64,%s"></body></html>
`

// browserRasterizer renders SVG with headless Chrome through go-rod.
// Rod downloads Chromium on first use when no browser is found.
// The browser is launched lazily and shared by concurrent calls.
type browserRasterizer struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

func newBrowserRasterizer(timeout time.Duration) *browserRasterizer {
	return &browserRasterizer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *browserRasterizer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New().Headless(true)

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		l.Cleanup()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser, r.launcher = b, l
	return b, nil
}

// Close shuts the browser down, kills any leftover child processes and
// removes the profile directory the launcher created.
func (r *browserRasterizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.browser, r.launcher = nil, nil
	return err
}

func (r *browserRasterizer) Rasterize(ctx context.Context, svg []byte, width int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Parsing up front validates the SVG and gives the target height.
	icon, err := parseSVG(svg)
	if err != nil {
		return nil, err
	}
	w, h, err := targetSize(icon, width)
	if err != nil {
		return nil, err
	}

	html := fmt.Sprintf(pageTemplate, w, h, base64.StdEncoding.EncodeToString(svg))
	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	p := page.Context(ctx).Timeout(timeout)
	if err := p.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             w,
		Height:            h,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	transparent := 0.0
	if err := (proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{A: &transparent},
	}).Call(p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := p.Navigate("file://" + path); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	shot, err := p.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			Width:  float64(w),
			Height: float64(h),
			Scale:  1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScreenshot, err)
	}
	return fitWidth(shot, w, h)
}

// fitWidth resamples a PNG to exactly w by h pixels. Browsers may round
// the captured area by a pixel, and the output width is a hard contract.
func fitWidth(data []byte, w, h int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding screenshot: %v", ErrScreenshot, err)
	}
	if b := src.Bounds(); b.Dx() == w && b.Dy() == h {
		return data, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return encodePNG(dst)
}
