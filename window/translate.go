package window

// Window messages and key constants the translator interprets. Kept portable
// so the state machine can be exercised on any platform.
const (
	wmSize                   = 0x0005
	wmFontChange             = 0x001D
	wmKeyDown                = 0x0100
	wmKeyUp                  = 0x0101
	wmChar                   = 0x0102
	wmDeadChar               = 0x0103
	wmSysKeyDown             = 0x0104
	wmSysKeyUp               = 0x0105
	wmSysChar                = 0x0106
	wmSysDeadChar            = 0x0107
	wmUniChar                = 0x0109
	wmMouseMove              = 0x0200
	wmLButtonDown            = 0x0201
	wmLButtonUp              = 0x0202
	wmRButtonDown            = 0x0204
	wmRButtonUp              = 0x0205
	wmMButtonDown            = 0x0207
	wmMButtonUp              = 0x0208
	wmMouseWheel             = 0x020A
	wmXButtonDown            = 0x020B
	wmXButtonUp              = 0x020C
	wmMouseLeave             = 0x02A3
	wmDpiChangedBeforeParent = 0x02E2

	// UNICODE_NOCHAR: a wmUniChar probe asking whether the window accepts
	// Unicode input rather than delivering a character.
	unicodeNoChar = 0xFFFF

	// One detent of a standard mouse wheel.
	wheelDelta = 120

	vkBack    = 0x08
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12 // Alt key

	// MapVirtualKeyW translation modes.
	mapvkVKToChar  = 2
	mapvkVSCToVKEx = 3

	defaultDPI = 96
)

// sysops is the narrow slice of OS calls the translator needs while decoding
// messages. The live window implements it; tests substitute a fake.
type sysops interface {
	trackMouseLeave()
	setCapture()
	releaseCapture()
	mapVirtualKey(code, mapType uint32) uint32
	windowDPI() int
}

// translator converts raw window messages into Delegate callbacks. It holds
// the per-window state needed to interpret a stateful, ordering-sensitive
// message stream: current DPI and size, whether one-shot mouse-leave tracking
// is armed, the keydown awaiting its character message, and a held lead
// surrogate awaiting its trail unit.
//
// One translator per live window. All of this state is instance state on
// purpose: sharing it across windows would cross-correlate their input.
type translator struct {
	sys      sysops
	delegate Delegate

	dpi           int
	width, height int

	trackingMouseLeave bool

	// Virtual key of a printable keydown whose key event is deferred until
	// the paired character message arrives. 0 = none pending.
	pendingKeycode uint32

	// Held high surrogate until the matching trail unit arrives or a new
	// lead overwrites it. 0 = none pending.
	leadSurrogate uint16
}

func newTranslator(sys sysops, delegate Delegate) translator {
	return translator{sys: sys, delegate: delegate, dpi: defaultDPI}
}

// DPI reports the window's current pixel density.
func (t *translator) DPI() int { return t.dpi }

// Width reports the last decoded client width.
func (t *translator) Width() int { return t.width }

// Height reports the last decoded client height.
func (t *translator) Height() int { return t.height }

// translate decodes one message, mutating translator state and invoking zero
// or more delegate callbacks. The return value reports whether the message was
// fully consumed; for every other branch the caller still hands the message to
// default OS processing.
func (t *translator) translate(message uint32, wparam, lparam uintptr) bool {
	if t.pendingKeycode != 0 && !isCharMessage(message) {
		// The character paired with the last keydown never arrived (focus
		// loss, or the OS consumed the key without producing text). Drop it
		// so it cannot attach to a later unrelated character.
		t.pendingKeycode = 0
	}

	switch message {
	case wmDpiChangedBeforeParent:
		// Precedes the matching wmSize, so consumers see the new scale
		// before the new size.
		t.dpi = t.sys.windowDPI()
		t.delegate.OnDpiScale(t.dpi)

	case wmSize:
		t.width = int(loword(lparam))
		t.height = int(hiword(lparam))
		t.delegate.OnResize(t.width, t.height)

	case wmFontChange:
		t.delegate.OnFontChange()

	case wmMouseMove:
		// TrackMouseEvent is one-shot: the OS disarms it when the leave
		// notification fires, so re-arm on the first move afterwards.
		if !t.trackingMouseLeave {
			t.sys.trackMouseLeave()
			t.trackingMouseLeave = true
		}
		t.delegate.OnPointerMove(mouseX(lparam), mouseY(lparam))

	case wmMouseLeave:
		t.delegate.OnPointerLeave()
		t.trackingMouseLeave = false

	case wmLButtonDown, wmRButtonDown, wmMButtonDown, wmXButtonDown:
		if message == wmLButtonDown {
			// Capture so a drag that leaves the client area keeps
			// delivering to this window until the button is released.
			t.sys.setCapture()
		}
		button, ok := decodeButton(message, wparam)
		if !ok {
			break
		}
		t.delegate.OnPointerDown(mouseX(lparam), mouseY(lparam), button)

	case wmLButtonUp, wmRButtonUp, wmMButtonUp, wmXButtonUp:
		if message == wmLButtonUp {
			t.sys.releaseCapture()
		}
		button, ok := decodeButton(message, wparam)
		if !ok {
			break
		}
		t.delegate.OnPointerUp(mouseX(lparam), mouseY(lparam), button)

	case wmMouseWheel:
		// Signed wheel delta, normalized to notches; positive = scroll down.
		delta := int16(hiword(wparam))
		t.delegate.OnScroll(0, -float64(delta)/wheelDelta)

	case wmUniChar:
		if wparam == unicodeNoChar {
			// Capability probe: reporting it handled advertises Unicode
			// support to the sender.
			return true
		}
		// Default processing redelivers the payload as wmChar.

	case wmDeadChar, wmSysDeadChar, wmChar, wmSysChar:
		t.translateChar(message, wparam, lparam)

	case wmKeyDown, wmSysKeyDown, wmKeyUp, wmSysKeyUp:
		t.translateKey(message, wparam, lparam)
	}

	return false
}

func (t *translator) translateChar(message uint32, wparam, lparam uintptr) {
	codePoint := uint32(wparam)

	if codePoint&0xFFFFFC00 == 0xD800 {
		// High surrogate: hold it until the trail unit arrives. A new lead
		// simply overwrites a stale one.
		t.leadSurrogate = uint16(codePoint)
		return
	}
	if t.leadSurrogate != 0 && codePoint&0xFFFFFC00 == 0xDC00 {
		codePoint = 0x10000 + uint32(t.leadSurrogate&0x3FF)<<10 + codePoint&0x3FF
		t.leadSurrogate = 0
	}
	// A trail unit with no held lead falls through with its raw value: the
	// stream is allowed to contain such sequences (IME, synthetic input).

	// Dead keys modify the next character instead of producing one, so they
	// are withheld from text input. The key event below still fires.
	if wparam != vkBack && message != wmDeadChar && message != wmSysDeadChar {
		t.delegate.OnChar(codePoint)
	}

	// Character messages do not carry the hardware key; the keycode was
	// stashed by the keydown that produced this character.
	if t.pendingKeycode != 0 {
		scancode := int(lparam>>16) & 0xFF
		t.delegate.OnKey(int(t.pendingKeycode), scancode, KeyDown, codePoint)
		t.pendingKeycode = 0
	}
}

func (t *translator) translateKey(message uint32, wparam, lparam uintptr) {
	down := message == wmKeyDown || message == wmSysKeyDown

	// Printable keydowns defer their key event to the paired character
	// message, which carries the composed character but not the key.
	if down && t.sys.mapVirtualKey(uint32(wparam), mapvkVKToChar) != 0 {
		t.pendingKeycode = uint32(wparam)
		return
	}

	keyCode := uint32(wparam)
	scancode := uint32(lparam>>16) & 0xFF

	// Raw modifier virtual keys are side-ambiguous; the scancode resolves
	// left from right.
	if keyCode == vkShift || keyCode == vkMenu || keyCode == vkControl {
		keyCode = t.sys.mapVirtualKey(scancode, mapvkVSCToVKEx)
	}

	action := KeyUp
	if down {
		action = KeyDown
	}
	t.delegate.OnKey(int(keyCode), int(scancode), action, 0)
}

func isCharMessage(message uint32) bool {
	switch message {
	case wmChar, wmDeadChar, wmSysChar, wmSysDeadChar:
		return true
	}
	return false
}

func decodeButton(message uint32, wparam uintptr) (Button, bool) {
	switch message {
	case wmLButtonDown, wmLButtonUp:
		return ButtonLeft, true
	case wmRButtonDown, wmRButtonUp:
		return ButtonRight, true
	case wmMButtonDown, wmMButtonUp:
		return ButtonMiddle, true
	default:
		// X buttons identify themselves in the high word of wparam.
		switch hiword(wparam) {
		case 1:
			return Button4, true
		case 2:
			return Button5, true
		}
		return 0, false
	}
}

func loword(v uintptr) uint16 { return uint16(v) }
func hiword(v uintptr) uint16 { return uint16(v >> 16) }

// Mouse coordinates are signed 16-bit client offsets; negative values occur
// while the pointer is captured outside the client area.
func mouseX(lparam uintptr) float64 { return float64(int16(loword(lparam))) }
func mouseY(lparam uintptr) float64 { return float64(int16(hiword(lparam))) }
