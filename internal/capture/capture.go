// Package capture implements ScreenCapturer: pixel capture
// of a widget, a window, an arbitrary region, or the full screen, returned
// as base64-encoded PNG.
package capture

import (
	"encoding/base64"
	"fmt"

	"github.com/ssss2art/qtmcp/internal/fw"
)

// Result is the JSON shape returned to cu.capture* and qt.ui.screenshot
// callers.
type Result struct {
	ImageBase64 string `json:"imageBase64"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Physical    bool   `json:"physical"`
	DevicePixelRatio float64 `json:"devicePixelRatio,omitempty"`
}

// Capturer drives an fw.ScreenBackend.
type Capturer struct {
	backend fw.ScreenBackend
}

// New creates a Capturer.
func New(backend fw.ScreenBackend) *Capturer {
	return &Capturer{backend: backend}
}

func encode(png []byte, w, h int, physical bool, dpr float64) Result {
	return Result{
		ImageBase64:      base64.StdEncoding.EncodeToString(png),
		Width:            w,
		Height:           h,
		Physical:         physical,
		DevicePixelRatio: dpr,
	}
}

// Widget captures obj's rendered contents. physical selects device pixels
// (scaled by DevicePixelRatio) over logical pixels.
func (c *Capturer) Widget(obj fw.Object, physical bool) (Result, error) {
	if c.backend.GrabWidget == nil {
		return Result{}, fmt.Errorf("CaptureUnsupported: widget capture")
	}
	png, w, h, err := c.backend.GrabWidget(obj, physical)
	if err != nil {
		return Result{}, fmt.Errorf("CaptureFailed: %w", err)
	}
	return encode(png, w, h, physical, c.dpr(obj)), nil
}

// Window captures a top-level window including decorations.
func (c *Capturer) Window(window fw.Object, physical bool) (Result, error) {
	if c.backend.GrabWindow == nil {
		return Result{}, fmt.Errorf("CaptureUnsupported: window capture")
	}
	png, w, h, err := c.backend.GrabWindow(window, physical)
	if err != nil {
		return Result{}, fmt.Errorf("CaptureFailed: %w", err)
	}
	return encode(png, w, h, physical, c.dpr(window)), nil
}

// Region captures an arbitrary screen-absolute rectangle.
func (c *Capturer) Region(r fw.Rect, physical bool) (Result, error) {
	if r.W <= 0 || r.H <= 0 {
		return Result{}, fmt.Errorf("InvalidRegion: width and height must be positive")
	}
	if c.backend.GrabRegion == nil {
		return Result{}, fmt.Errorf("CaptureUnsupported: region capture")
	}
	png, w, h, err := c.backend.GrabRegion(r, physical)
	if err != nil {
		return Result{}, fmt.Errorf("CaptureFailed: %w", err)
	}
	return encode(png, w, h, physical, c.dpr(nil)), nil
}

// Screen captures the full primary display.
func (c *Capturer) Screen(physical bool) (Result, error) {
	if c.backend.GrabScreen == nil {
		return Result{}, fmt.Errorf("CaptureUnsupported: screen capture")
	}
	png, w, h, err := c.backend.GrabScreen(physical)
	if err != nil {
		return Result{}, fmt.Errorf("CaptureFailed: %w", err)
	}
	return encode(png, w, h, physical, c.dpr(nil)), nil
}

func (c *Capturer) dpr(obj fw.Object) float64 {
	if c.backend.DevicePixelRatio == nil {
		return 1
	}
	return c.backend.DevicePixelRatio(obj)
}
