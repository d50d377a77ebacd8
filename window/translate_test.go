package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSys records the OS calls the translator makes and answers keyboard
// layout queries from fixed tables.
type fakeSys struct {
	trackCalls      int
	captureSet      int
	captureReleased int
	dpi             int

	// vkChar answers MAPVK_VK_TO_CHAR: virtual key -> produced character.
	vkChar map[uint32]uint32
	// scanVK answers MAPVK_VSC_TO_VK_EX: scancode -> side-specific key.
	scanVK map[uint32]uint32
}

func (f *fakeSys) trackMouseLeave() { f.trackCalls++ }
func (f *fakeSys) setCapture()      { f.captureSet++ }
func (f *fakeSys) releaseCapture()  { f.captureReleased++ }
func (f *fakeSys) windowDPI() int   { return f.dpi }

func (f *fakeSys) mapVirtualKey(code, mapType uint32) uint32 {
	switch mapType {
	case mapvkVKToChar:
		return f.vkChar[code]
	case mapvkVSCToVKEx:
		return f.scanVK[code]
	}
	return 0
}

func newTestTranslator() (*translator, *EventQueue, *fakeSys) {
	sys := &fakeSys{
		dpi: 144,
		vkChar: map[uint32]uint32{
			0x41: 'A',  // letter key
			0x45: 'E',  // letter key
			0xDE: '\'', // VK_OEM_7, dead key on intl layouts
			0x08: 8,    // VK_BACK produces the backspace control code
		},
		scanVK: map[uint32]uint32{
			0x2A: 0xA0, // left shift scancode -> VK_LSHIFT
			0x36: 0xA1, // right shift scancode -> VK_RSHIFT
			0x1D: 0xA2, // left control scancode -> VK_LCONTROL
		},
	}
	queue := &EventQueue{}
	tr := newTranslator(sys, queue)
	return &tr, queue, sys
}

func mouseLParam(x, y int16) uintptr {
	return uintptr(uint16(x)) | uintptr(uint16(y))<<16
}

func sizeLParam(width, height uint16) uintptr {
	return uintptr(width) | uintptr(height)<<16
}

func keyLParam(scancode uint32) uintptr { return uintptr(scancode) << 16 }

func wheelWParam(delta int16) uintptr { return uintptr(uint16(delta)) << 16 }

func xButtonWParam(id uint16) uintptr { return uintptr(id) << 16 }

func TestResizeUpdatesStateAndEmitsOnce(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	consumed := tr.translate(wmSize, 0, sizeLParam(800, 600))
	require.False(t, consumed)

	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventResize, events[0].Type)
	assert.Equal(t, 800, events[0].Width)
	assert.Equal(t, 600, events[0].Height)
	assert.Equal(t, 800, tr.Width())
	assert.Equal(t, 600, tr.Height())
}

func TestDpiChangePrecedesResize(t *testing.T) {
	tr, queue, sys := newTestTranslator()
	sys.dpi = 192

	tr.translate(wmDpiChangedBeforeParent, 0, 0)
	tr.translate(wmSize, 0, sizeLParam(1600, 1200))

	events := queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventDpiScale, events[0].Type)
	assert.Equal(t, 192, events[0].DPI)
	assert.Equal(t, EventResize, events[1].Type)
	assert.Equal(t, 192, tr.DPI())
}

func TestFontChange(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmFontChange, 0, 0)

	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventFontChange, events[0].Type)
}

func TestSurrogatePairCombines(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmChar, 0xD801, 0)
	tr.translate(wmChar, 0xDC37, 0)

	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventChar, events[0].Type)
	assert.Equal(t, uint32(0x10437), events[0].CodePoint)
}

func TestLeadSurrogateAbsorbedUntilTrail(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmChar, 0xD801, 0)

	assert.Zero(t, queue.Len(), "a bare lead unit must not surface as text")
}

func TestUnmatchedTrailSurrogatePassesThrough(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	// No held lead: the trail unit is legitimate stream content (IME,
	// synthetic injection) and passes through unchanged.
	tr.translate(wmChar, 0xDC37, 0)

	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, uint32(0xDC37), events[0].CodePoint)
}

func TestNewLeadOverwritesStaleLead(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmChar, 0xD801, 0)
	tr.translate(wmChar, 0xD802, 0)
	tr.translate(wmChar, 0xDC00, 0)

	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, uint32(0x10800), events[0].CodePoint)
}

func TestDeadKeySequence(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	// "'" then "e" on an ENG-INTL layout: the quote is a dead key. Its
	// character message is withheld from text input but still completes the
	// deferred key event.
	tr.translate(wmKeyDown, 0xDE, keyLParam(0x28))
	require.Zero(t, queue.Len(), "printable keydown defers until its char message")

	tr.translate(wmDeadChar, 0xB4, keyLParam(0x28))
	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventKey, events[0].Type)
	assert.Equal(t, 0xDE, events[0].KeyCode)
	assert.Equal(t, 0x28, events[0].ScanCode)
	assert.Equal(t, KeyDown, events[0].Action)
	assert.Equal(t, uint32(0xB4), events[0].CodePoint)

	// The base key then produces the composed character normally.
	tr.translate(wmKeyDown, 0x45, keyLParam(0x12))
	tr.translate(wmChar, 0xE9, keyLParam(0x12))
	events = queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventChar, events[0].Type)
	assert.Equal(t, uint32(0xE9), events[0].CodePoint)
	assert.Equal(t, EventKey, events[1].Type)
	assert.Equal(t, 0x45, events[1].KeyCode)
	assert.Equal(t, uint32(0xE9), events[1].CodePoint)
}

func TestBackspaceCharSuppressed(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmKeyDown, 0x08, keyLParam(0x0E))
	tr.translate(wmChar, 0x08, keyLParam(0x0E))

	events := queue.Drain()
	require.Len(t, events, 1, "backspace is a control code, not text")
	assert.Equal(t, EventKey, events[0].Type)
	assert.Equal(t, 0x08, events[0].KeyCode)
	assert.Equal(t, uint32(8), events[0].CodePoint)
}

func TestCharWithoutPendingKeycodeEmitsCharOnly(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmChar, 'x', keyLParam(0x2D))

	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventChar, events[0].Type)
	assert.Equal(t, uint32('x'), events[0].CodePoint)
}

// A keydown whose character message never arrives used to leave its keycode
// pending forever, attaching it to a later unrelated character. The pending
// keycode is now dropped by the first message that is not a character-class
// follow-up.
func TestStalePendingKeycodeCleared(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmKeyDown, 0x41, keyLParam(0x1E))
	require.Zero(t, queue.Len())

	// Anything but the paired char message invalidates the correlation.
	tr.translate(wmMouseMove, 0, mouseLParam(5, 5))
	queue.Drain()

	tr.translate(wmChar, 'b', keyLParam(0x30))
	events := queue.Drain()
	require.Len(t, events, 1, "stale keycode must not produce a key event")
	assert.Equal(t, EventChar, events[0].Type)
	assert.Equal(t, uint32('b'), events[0].CodePoint)
}

func TestNewKeydownReplacesPendingKeycode(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmKeyDown, 0x41, keyLParam(0x1E))
	tr.translate(wmKeyDown, 0x45, keyLParam(0x12))
	tr.translate(wmChar, 'e', keyLParam(0x12))

	events := queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, 0x45, events[1].KeyCode, "second keydown owns the character")
}

func TestNonPrintableKeyEmitsImmediately(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmKeyDown, 0x1B, keyLParam(0x01))
	tr.translate(wmKeyUp, 0x1B, keyLParam(0x01))

	events := queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventKey, events[0].Type)
	assert.Equal(t, 0x1B, events[0].KeyCode)
	assert.Equal(t, 0x01, events[0].ScanCode)
	assert.Equal(t, KeyDown, events[0].Action)
	assert.Equal(t, uint32(0), events[0].CodePoint)
	assert.Equal(t, KeyUp, events[1].Action)
}

func TestPrintableKeyUpNotDeferred(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	// Only keydowns defer; the release of a printable key reports at once.
	tr.translate(wmKeyUp, 0x41, keyLParam(0x1E))

	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, EventKey, events[0].Type)
	assert.Equal(t, 0x41, events[0].KeyCode)
	assert.Equal(t, KeyUp, events[0].Action)
}

func TestModifierSideResolution(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmKeyDown, vkShift, keyLParam(0x36))
	tr.translate(wmKeyUp, vkShift, keyLParam(0x2A))

	events := queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, 0xA1, events[0].KeyCode, "right shift from scancode 0x36")
	assert.Equal(t, 0xA0, events[1].KeyCode, "left shift from scancode 0x2A")
}

func TestSysKeyVariants(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmSysKeyDown, vkControl, keyLParam(0x1D))
	tr.translate(wmSysKeyUp, vkControl, keyLParam(0x1D))

	events := queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, 0xA2, events[0].KeyCode)
	assert.Equal(t, KeyDown, events[0].Action)
	assert.Equal(t, KeyUp, events[1].Action)
}

func TestMouseLeaveArmedOncePerEntry(t *testing.T) {
	tr, queue, sys := newTestTranslator()

	for i := 0; i < 3; i++ {
		tr.translate(wmMouseMove, 0, mouseLParam(int16(i), int16(i)))
	}
	assert.Equal(t, 1, sys.trackCalls, "tracking armed once per entry")

	tr.translate(wmMouseLeave, 0, 0)

	events := queue.Drain()
	require.Len(t, events, 4)
	for i := 0; i < 3; i++ {
		assert.Equal(t, EventPointerMove, events[i].Type)
		assert.Equal(t, float64(i), events[i].X)
	}
	assert.Equal(t, EventPointerLeave, events[3].Type)

	// The leave disarmed the one-shot request; the next move re-arms it.
	tr.translate(wmMouseMove, 0, mouseLParam(9, 9))
	assert.Equal(t, 2, sys.trackCalls)
	tr.translate(wmMouseLeave, 0, 0)

	events = queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventPointerLeave, events[1].Type)
}

func TestLeftButtonDragCapture(t *testing.T) {
	tr, queue, sys := newTestTranslator()

	tr.translate(wmLButtonDown, 0, mouseLParam(10, 20))
	tr.translate(wmLButtonUp, 0, mouseLParam(10, 20))

	assert.Equal(t, 1, sys.captureSet)
	assert.Equal(t, 1, sys.captureReleased)

	events := queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventPointerDown, events[0].Type)
	assert.Equal(t, ButtonLeft, events[0].Button)
	assert.Equal(t, 10.0, events[0].X)
	assert.Equal(t, 20.0, events[0].Y)
	assert.Equal(t, EventPointerUp, events[1].Type)
	assert.Equal(t, events[0].Button, events[1].Button)
	assert.Equal(t, events[0].X, events[1].X)
	assert.Equal(t, events[0].Y, events[1].Y)
}

func TestSecondaryButtonsDoNotCapture(t *testing.T) {
	tr, queue, sys := newTestTranslator()

	tr.translate(wmRButtonDown, 0, mouseLParam(1, 2))
	tr.translate(wmRButtonUp, 0, mouseLParam(1, 2))
	tr.translate(wmMButtonDown, 0, mouseLParam(3, 4))
	tr.translate(wmMButtonUp, 0, mouseLParam(3, 4))

	assert.Zero(t, sys.captureSet)
	assert.Zero(t, sys.captureReleased)

	events := queue.Drain()
	require.Len(t, events, 4)
	assert.Equal(t, ButtonRight, events[0].Button)
	assert.Equal(t, ButtonMiddle, events[2].Button)
}

func TestXButtonDecode(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmXButtonDown, xButtonWParam(1), mouseLParam(5, 6))
	tr.translate(wmXButtonUp, xButtonWParam(1), mouseLParam(5, 6))
	tr.translate(wmXButtonDown, xButtonWParam(2), mouseLParam(7, 8))

	events := queue.Drain()
	require.Len(t, events, 3)
	assert.Equal(t, Button4, events[0].Button)
	assert.Equal(t, Button4, events[1].Button)
	assert.Equal(t, Button5, events[2].Button)
}

func TestUnknownXButtonIgnored(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmXButtonDown, xButtonWParam(7), mouseLParam(0, 0))

	assert.Zero(t, queue.Len())
}

func TestNegativePointerCoordinates(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	// Captured drags report positions outside the client area as negative
	// signed offsets.
	tr.translate(wmMouseMove, 0, mouseLParam(-15, -3))

	events := queue.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, -15.0, events[0].X)
	assert.Equal(t, -3.0, events[0].Y)
}

func TestScrollNormalization(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	tr.translate(wmMouseWheel, wheelWParam(120), 0)
	tr.translate(wmMouseWheel, wheelWParam(-240), 0)

	events := queue.Drain()
	require.Len(t, events, 2)
	assert.Equal(t, EventScroll, events[0].Type)
	assert.Equal(t, 0.0, events[0].ScrollX)
	assert.Equal(t, -1.0, events[0].ScrollY)
	assert.Equal(t, 2.0, events[1].ScrollY)
}

func TestUnicharProbe(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	consumed := tr.translate(wmUniChar, unicodeNoChar, 0)
	assert.True(t, consumed, "capability probe is the only fully consumed message")
	assert.Zero(t, queue.Len())

	// A real payload passes through; default processing redelivers it as a
	// character message.
	consumed = tr.translate(wmUniChar, 'q', 0)
	assert.False(t, consumed)
	assert.Zero(t, queue.Len())
}

func TestUnknownMessagePassesThrough(t *testing.T) {
	tr, queue, _ := newTestTranslator()

	const wmNCHitTest = 0x0084
	consumed := tr.translate(wmNCHitTest, 0, 0)

	assert.False(t, consumed)
	assert.Zero(t, queue.Len())
}
