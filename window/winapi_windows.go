//go:build windows

package window

import (
	"golang.org/x/sys/windows"
)

const (
	csHRedraw = 0x0002
	csVRedraw = 0x0001

	wsOverlappedWindow = 0x00CF0000
	wsChild            = 0x40000000
	wsVisible          = 0x10000000

	cwUseDefault = 0x80000000

	wmNCCreate = 0x0081
	wmDestroy  = 0x0002

	gwlpUserData = -21

	idcArrow = 32512

	tmeLeave = 0x00000002

	pmRemove = 0x0001

	logPixelsX = 88
)

// HWND_MESSAGE, the message-only parent sentinel ((HWND)-3).
var hwndMessage = ^uintptr(2)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClass    = user32.NewProc("RegisterClassW")
	procUnregisterClass  = user32.NewProc("UnregisterClassW")
	procCreateWindowEx   = user32.NewProc("CreateWindowExW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procDefWindowProc    = user32.NewProc("DefWindowProcW")
	procSetWindowLongPtr = user32.NewProc("SetWindowLongPtrW")
	procGetWindowLongPtr = user32.NewProc("GetWindowLongPtrW")
	procLoadCursor       = user32.NewProc("LoadCursorW")
	procSetCapture       = user32.NewProc("SetCapture")
	procReleaseCapture   = user32.NewProc("ReleaseCapture")
	procTrackMouseEvent  = user32.NewProc("TrackMouseEvent")
	procMapVirtualKey    = user32.NewProc("MapVirtualKeyW")
	procGetDpiForWindow  = user32.NewProc("GetDpiForWindow")
	procGetDpiForSystem  = user32.NewProc("GetDpiForSystem")
	procPeekMessage      = user32.NewProc("PeekMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessage  = user32.NewProc("DispatchMessageW")
	procGetDC            = user32.NewProc("GetDC")
	procReleaseDC        = user32.NewProc("ReleaseDC")

	procGetDeviceCaps = gdi32.NewProc("GetDeviceCaps")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
)

// Mirrors WNDCLASSW.
type wndClass struct {
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     windows.Handle
	hIcon         windows.Handle
	hCursor       windows.Handle
	hbrBackground windows.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
}

// Mirrors TRACKMOUSEEVENT.
type trackMouseEvent struct {
	cbSize      uint32
	dwFlags     uint32
	hwndTrack   windows.HWND
	dwHoverTime uint32
}

// Mirrors CREATESTRUCTW; only createParams is read.
type createStruct struct {
	createParams uintptr
	instance     windows.Handle
	menu         windows.Handle
	parent       windows.HWND
	cy, cx       int32
	y, x         int32
	style        int32
	name         *uint16
	className    *uint16
	exStyle      uint32
}

// Mirrors MSG.
type msg struct {
	hwnd     windows.HWND
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

type point struct {
	x int32
	y int32
}

func setWindowLongPtr(h windows.HWND, index int32, value uintptr) uintptr {
	ret, _, _ := procSetWindowLongPtr.Call(uintptr(h), uintptr(index), value)
	return ret
}

func getWindowLongPtr(h windows.HWND, index int32) uintptr {
	ret, _, _ := procGetWindowLongPtr.Call(uintptr(h), uintptr(index))
	return ret
}

func defWindowProc(h windows.HWND, message uint32, wparam, lparam uintptr) uintptr {
	ret, _, _ := procDefWindowProc.Call(uintptr(h), uintptr(message), wparam, lparam)
	return ret
}

func loadCursor(id uintptr) windows.Handle {
	ret, _, _ := procLoadCursor.Call(0, id)
	return windows.Handle(ret)
}

func moduleHandle() windows.Handle {
	h, _, _ := procGetModuleHandle.Call(0)
	return windows.Handle(h)
}
