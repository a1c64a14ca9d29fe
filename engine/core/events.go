package core

// System internal event codes.
type EventCode uint8

const (
	// Keyboard key pressed.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. DX/DY carry the delta since the previous move.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Orientation reset requested by the user.
	EVENT_CODE_RESET EventCode = 0x09
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x0A
)

// InputEvent is a raw event from the host's input layer.
type InputEvent struct {
	Type   EventCode
	Key    KeyCode
	Button Button
	DX, DY float64
}

func KeyPressed(key KeyCode) InputEvent {
	return InputEvent{Type: EVENT_CODE_KEY_PRESSED, Key: key}
}

func KeyReleased(key KeyCode) InputEvent {
	return InputEvent{Type: EVENT_CODE_KEY_RELEASED, Key: key}
}

func ButtonPressed(button Button) InputEvent {
	return InputEvent{Type: EVENT_CODE_BUTTON_PRESSED, Button: button}
}

func ButtonReleased(button Button) InputEvent {
	return InputEvent{Type: EVENT_CODE_BUTTON_RELEASED, Button: button}
}

func MouseMoved(dx, dy float64) InputEvent {
	return InputEvent{Type: EVENT_CODE_MOUSE_MOVED, DX: dx, DY: dy}
}
