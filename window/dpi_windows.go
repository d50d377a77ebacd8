//go:build windows

package window

import "golang.org/x/sys/windows"

// dpiForWindow returns the DPI for h, or the system DPI when h is 0.
// Per-monitor DPI needs Windows 10 1607+; older systems fall back to the
// primary display's device caps and finally the 96 baseline.
func dpiForWindow(h windows.HWND) int {
	if h != 0 && procGetDpiForWindow.Find() == nil {
		if dpi, _, _ := procGetDpiForWindow.Call(uintptr(h)); dpi > 0 {
			return int(dpi)
		}
	}
	if procGetDpiForSystem.Find() == nil {
		if dpi, _, _ := procGetDpiForSystem.Call(); dpi > 0 {
			return int(dpi)
		}
	}
	hdc, _, _ := procGetDC.Call(0)
	if hdc != 0 {
		defer procReleaseDC.Call(0, hdc)
		if dpi, _, _ := procGetDeviceCaps.Call(hdc, logPixelsX); dpi > 0 {
			return int(dpi)
		}
	}
	return defaultDPI
}
