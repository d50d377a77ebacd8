//go:build windows

package main

import (
	"log/slog"
	"time"

	"winhost/window"
)

// run opens a top-level window and logs every normalized event until the
// window is closed.
func run(cfg demoConfig) error {
	queue := &window.EventQueue{}
	win := window.New(queue)
	if err := win.Initialize(cfg.Title, cfg.Width, cfg.Height); err != nil {
		return err
	}
	defer win.Destroy()

	slog.Info("window created", "dpi", win.DPI(), "width", cfg.Width, "height", cfg.Height)

	for win.Poll() {
		for _, ev := range queue.Drain() {
			logEvent(ev)
		}
		time.Sleep(10 * time.Millisecond)
	}
	slog.Info("window closed")
	return nil
}

func logEvent(ev window.Event) {
	switch ev.Type {
	case window.EventDpiScale:
		slog.Info("dpi scale", "dpi", ev.DPI)
	case window.EventResize:
		slog.Info("resize", "width", ev.Width, "height", ev.Height)
	case window.EventFontChange:
		slog.Info("font change")
	case window.EventPointerMove:
		slog.Debug("pointer move", "x", ev.X, "y", ev.Y)
	case window.EventPointerLeave:
		slog.Info("pointer leave")
	case window.EventPointerDown:
		slog.Info("pointer down", "x", ev.X, "y", ev.Y, "button", ev.Button)
	case window.EventPointerUp:
		slog.Info("pointer up", "x", ev.X, "y", ev.Y, "button", ev.Button)
	case window.EventScroll:
		slog.Info("scroll", "dx", ev.ScrollX, "dy", ev.ScrollY)
	case window.EventChar:
		slog.Info("char", "code_point", ev.CodePoint, "text", string(rune(ev.CodePoint)))
	case window.EventKey:
		slog.Info("key",
			"key_code", ev.KeyCode,
			"scan_code", ev.ScanCode,
			"action", ev.Action,
			"code_point", ev.CodePoint)
	}
}
