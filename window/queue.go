package window

import "fmt"

// EventType describes the kind of a normalized event.
type EventType uint8

const (
	EventDpiScale EventType = iota
	EventResize
	EventFontChange
	EventPointerMove
	EventPointerLeave
	EventPointerDown
	EventPointerUp
	EventScroll
	EventChar
	EventKey
)

func (t EventType) String() string {
	switch t {
	case EventDpiScale:
		return "DpiScale"
	case EventResize:
		return "Resize"
	case EventFontChange:
		return "FontChange"
	case EventPointerMove:
		return "PointerMove"
	case EventPointerLeave:
		return "PointerLeave"
	case EventPointerDown:
		return "PointerDown"
	case EventPointerUp:
		return "PointerUp"
	case EventScroll:
		return "Scroll"
	case EventChar:
		return "Char"
	case EventKey:
		return "Key"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// Event is one normalized window event. Only the fields relevant to Type are
// meaningful.
type Event struct {
	Type EventType

	// DPI is meaningful for DpiScale.
	DPI int

	// Width/Height are meaningful for Resize.
	Width, Height int

	// X/Y are meaningful for PointerMove, PointerDown and PointerUp.
	X, Y float64

	// Button is meaningful for PointerDown and PointerUp.
	Button Button

	// ScrollX/ScrollY are meaningful for Scroll. Values are in wheel
	// notches; positive ScrollY scrolls down.
	ScrollX, ScrollY float64

	// CodePoint is meaningful for Char, and for Key events produced by a
	// printable keypress (0 otherwise).
	CodePoint uint32

	// KeyCode/ScanCode/Action are meaningful for Key.
	KeyCode, ScanCode int
	Action            KeyAction
}

// EventQueue is a Delegate that buffers events in arrival order for engines
// that prefer to poll. The zero value is ready to use.
//
// Contract:
// - Events accumulate as messages are dispatched.
// - Drain() returns them in order and clears the internal queue.
type EventQueue struct {
	events []Event
}

// Drain returns all buffered events and empties the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Len reports the number of buffered events.
func (q *EventQueue) Len() int { return len(q.events) }

func (q *EventQueue) OnDpiScale(dpi int) {
	q.events = append(q.events, Event{Type: EventDpiScale, DPI: dpi})
}

func (q *EventQueue) OnResize(width, height int) {
	q.events = append(q.events, Event{Type: EventResize, Width: width, Height: height})
}

func (q *EventQueue) OnFontChange() {
	q.events = append(q.events, Event{Type: EventFontChange})
}

func (q *EventQueue) OnPointerMove(x, y float64) {
	q.events = append(q.events, Event{Type: EventPointerMove, X: x, Y: y})
}

func (q *EventQueue) OnPointerLeave() {
	q.events = append(q.events, Event{Type: EventPointerLeave})
}

func (q *EventQueue) OnPointerDown(x, y float64, button Button) {
	q.events = append(q.events, Event{Type: EventPointerDown, X: x, Y: y, Button: button})
}

func (q *EventQueue) OnPointerUp(x, y float64, button Button) {
	q.events = append(q.events, Event{Type: EventPointerUp, X: x, Y: y, Button: button})
}

func (q *EventQueue) OnScroll(dx, dy float64) {
	q.events = append(q.events, Event{Type: EventScroll, ScrollX: dx, ScrollY: dy})
}

func (q *EventQueue) OnChar(codePoint uint32) {
	q.events = append(q.events, Event{Type: EventChar, CodePoint: codePoint})
}

func (q *EventQueue) OnKey(keyCode, scanCode int, action KeyAction, codePoint uint32) {
	q.events = append(q.events, Event{
		Type:      EventKey,
		KeyCode:   keyCode,
		ScanCode:  scanCode,
		Action:    action,
		CodePoint: codePoint,
	})
}

var _ Delegate = (*EventQueue)(nil)
