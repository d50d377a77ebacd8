// Package window owns a native window and translates its raw message stream
// into a small set of normalized UI events for a host engine.
//
// The translation state machine is portable and hermetically testable; only
// the thin native layer (window creation, the dispatch callback, the message
// pump) is platform specific.
package window

import "fmt"

// KeyAction distinguishes press and release in OnKey callbacks.
type KeyAction int

const (
	KeyDown KeyAction = iota
	KeyUp
)

func (a KeyAction) String() string {
	switch a {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	default:
		return fmt.Sprintf("KeyAction(%d)", int(a))
	}
}

// Button identifies a mouse button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	Button4 // Additional mouse button (often back button)
	Button5 // Additional mouse button (often forward button)
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	case Button4:
		return "Button4"
	case Button5:
		return "Button5"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// Delegate receives the normalized event stream for one window. It is
// implemented by the consuming engine; EventQueue is a ready-made
// implementation for engines that prefer to poll.
//
// Contract:
//   - Callbacks run synchronously on the thread dispatching window messages,
//     one message at a time. Implementations must not block.
//   - OnDpiScale for a monitor change arrives before the OnResize that
//     accompanies it.
//   - OnKey carries the produced code point for printable keys (correlated
//     from the paired character message) and 0 otherwise.
type Delegate interface {
	OnDpiScale(dpi int)
	OnResize(width, height int)
	OnFontChange()
	OnPointerMove(x, y float64)
	OnPointerLeave()
	OnPointerDown(x, y float64, button Button)
	OnPointerUp(x, y float64, button Button)
	OnScroll(dx, dy float64)
	OnChar(codePoint uint32)
	OnKey(keyCode, scanCode int, action KeyAction, codePoint uint32)
}
