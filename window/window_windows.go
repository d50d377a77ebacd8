//go:build windows

package window

import (
	"fmt"
	"log/slog"
	"runtime"
	"runtime/cgo"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Window owns one native window and feeds its message stream through the
// translator. One instance per native window. All methods must be called from
// the thread that runs the message loop; the adapter itself never locks
// because message dispatch is strictly sequential.
type Window struct {
	translator

	handle    windows.HWND
	className string

	// Opaque reference to this adapter, stored in the native window's
	// GWLP_USERDATA slot while the window lives. The dispatch callback uses
	// it to recover the owning adapter from a bare handle.
	self cgo.Handle
}

// New returns a Window delivering events to delegate. The DPI starts as a
// snapshot of the system DPI and is updated by per-monitor DPI change
// messages once a window is live.
func New(delegate Delegate) *Window {
	w := &Window{}
	w.translator = newTranslator(w, delegate)
	w.dpi = dpiForWindow(0)
	return w
}

var wndProcCB = windows.NewCallback(wndProc)

// wndProc is the package-level dispatch callback shared by every adapter
// window. It is stateless: during wmNCCreate it stores the adapter reference
// the creation call smuggled through CREATESTRUCT, and for every later
// message it recovers the adapter from the handle. Messages for handles with
// no association fall through to default processing.
func wndProc(hwnd, message, wparam, lparam uintptr) uintptr {
	h := windows.HWND(hwnd)
	if message == wmNCCreate {
		cs := (*createStruct)(unsafe.Pointer(lparam))
		if cs.createParams != 0 {
			setWindowLongPtr(h, gwlpUserData, cs.createParams)
			win := cs.window()
			win.handle = h
		}
	} else if win := lookupWindow(h); win != nil {
		return win.handleMessage(h, uint32(message), wparam, lparam)
	}
	return defWindowProc(h, uint32(message), wparam, lparam)
}

func (cs *createStruct) window() *Window {
	return cgo.Handle(cs.createParams).Value().(*Window)
}

// lookupWindow recovers the adapter associated with h during wmNCCreate, or
// nil for any handle that never went through association.
func lookupWindow(h windows.HWND) *Window {
	v := getWindowLongPtr(h, gwlpUserData)
	if v == 0 {
		return nil
	}
	win, _ := cgo.Handle(v).Value().(*Window)
	return win
}

func (w *Window) handleMessage(h windows.HWND, message uint32, wparam, lparam uintptr) uintptr {
	if message == wmDestroy {
		// Destruction can also originate outside Destroy (thread teardown);
		// drop the back-reference so queries report no live window.
		w.handle = 0
	} else if w.translate(message, wparam, lparam) {
		return 1
	}
	return defWindowProc(h, message, wparam, lparam)
}

// InitializeChild creates a visible child window parented to the message-only
// context, sized width x height at the default position. Any window this
// adapter already owns is destroyed first. On failure the adapter is left
// handle-less and the process continues; callers must check Handle before
// use.
func (w *Window) InitializeChild(title string, width, height int) error {
	return w.initialize(title, width, height, wsChild|wsVisible, hwndMessage)
}

// Initialize creates a visible top-level window with the same event plumbing
// as InitializeChild.
func (w *Window) Initialize(title string, width, height int) error {
	return w.initialize(title, width, height, wsOverlappedWindow|wsVisible, 0)
}

func (w *Window) initialize(title string, width, height int, style uint32, parent uintptr) error {
	w.Destroy()

	// The message loop is thread-affine.
	runtime.LockOSThread()

	titlePtr, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return fmt.Errorf("convert window title: %w", err)
	}

	w.className = title
	w.registerClass(titlePtr)

	w.self = cgo.NewHandle(w)
	hwnd, _, callErr := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(titlePtr)), // class name, scoped to the title
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(style),
		cwUseDefault,
		cwUseDefault,
		uintptr(width),
		uintptr(height),
		parent,
		0,
		uintptr(moduleHandle()),
		uintptr(w.self),
	)
	if hwnd == 0 {
		w.self.Delete()
		w.self = 0
		slog.Error("window creation failed", "title", title, "error", callErr)
		return fmt.Errorf("CreateWindowExW: %w", callErr)
	}
	// wndProc already set this during wmNCCreate; keep them in agreement.
	w.handle = windows.HWND(hwnd)
	return nil
}

// registerClass registers a window class named after the title. Best-effort:
// a second adapter created with the same title re-registers an identical
// class, which the OS reports as already existing.
func (w *Window) registerClass(name *uint16) {
	wc := wndClass{
		style:         csHRedraw | csVRedraw,
		lpfnWndProc:   wndProcCB,
		hInstance:     moduleHandle(),
		hCursor:       loadCursor(idcArrow),
		lpszClassName: name,
	}
	ret, _, err := procRegisterClass.Call(uintptr(unsafe.Pointer(&wc)))
	if ret == 0 {
		slog.Debug("window class registration failed", "class", w.className, "error", err)
	}
}

// Destroy tears down the native window and releases the handle association.
// Safe to call repeatedly: with no window held, only the best-effort class
// unregistration runs.
func (w *Window) Destroy() {
	if w.handle != 0 {
		procDestroyWindow.Call(uintptr(w.handle))
		w.handle = 0
	}
	if w.self != 0 {
		w.self.Delete()
		w.self = 0
	}
	if w.className != "" {
		// Fails harmlessly if registration never succeeded or the class is
		// still in use by another adapter.
		if namePtr, err := windows.UTF16PtrFromString(w.className); err == nil {
			procUnregisterClass.Call(uintptr(unsafe.Pointer(namePtr)), 0)
		}
	}
}

// Handle returns the native window handle, or 0 when no window is live.
func (w *Window) Handle() windows.HWND { return w.handle }

// Poll drains the calling thread's pending messages and dispatches them
// through the translator. TranslateMessage is what synthesizes the character
// messages the translator correlates with keydowns. Returns false once the
// window has been destroyed.
func (w *Window) Poll() bool {
	if w.handle == 0 {
		return false
	}
	var m msg
	for {
		ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if ret == 0 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
		if w.handle == 0 {
			return false
		}
	}
	return true
}

// sysops implementation backing the translator with live user32 calls.

func (w *Window) trackMouseLeave() {
	tme := trackMouseEvent{dwFlags: tmeLeave, hwndTrack: w.handle}
	tme.cbSize = uint32(unsafe.Sizeof(tme))
	procTrackMouseEvent.Call(uintptr(unsafe.Pointer(&tme)))
}

func (w *Window) setCapture() {
	procSetCapture.Call(uintptr(w.handle))
}

func (w *Window) releaseCapture() {
	procReleaseCapture.Call()
}

func (w *Window) mapVirtualKey(code, mapType uint32) uint32 {
	ret, _, _ := procMapVirtualKey.Call(uintptr(code), uintptr(mapType))
	return uint32(ret)
}

func (w *Window) windowDPI() int {
	return dpiForWindow(w.handle)
}
