package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spaghettifunk/tesseract/engine/containers"
	"github.com/spaghettifunk/tesseract/engine/math"
)

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_SHIFT     KeyCode = 0x10
	KEY_CONTROL   KeyCode = 0x11
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_A         KeyCode = 0x41
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_Q         KeyCode = 0x51
	KEY_R         KeyCode = 0x52
	KEY_S         KeyCode = 0x53
	KEY_W         KeyCode = 0x57
	KEYS_MAX_KEYS KeyCode = 0x100
)

// Intent is one discrete movement request.
type Intent uint8

// Intents is the set of movement intents held during a frame.
type Intents uint8

const (
	MoveForward Intent = iota
	MoveBack
	StrafeLeft
	StrafeRight
	MoveAna
	MoveKata
	intentCount
)

var intentNames = [...]string{"forward", "back", "left", "right", "ana", "kata"}

func (i Intent) String() string {
	if i >= intentCount {
		return fmt.Sprintf("intent(%d)", uint8(i))
	}
	return intentNames[i]
}

// ParseIntent is the inverse of Intent.String.
func ParseIntent(s string) (Intent, error) {
	for i, n := range intentNames {
		if strings.EqualFold(n, s) {
			return Intent(i), nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", s)
}

func NewIntents(intents ...Intent) Intents {
	var set Intents
	for _, i := range intents {
		set = set.With(i)
	}
	return set
}

func (s Intents) Has(i Intent) bool {
	return s&(1<<i) != 0
}

func (s Intents) With(i Intent) Intents {
	return s | 1<<i
}

func (s Intents) Without(i Intent) Intents {
	return s &^ (1 << i)
}

// PlanePair selects which two rotation planes the horizontal and vertical
// input axes drive.
type PlanePair uint8

const (
	// Horizontal turns in XZ, vertical in YZ.
	PlanesSpatial PlanePair = iota
	// Horizontal turns in XW, vertical in YW.
	PlanesHyper
	// Horizontal turns in XY, vertical in ZW.
	PlanesDepth
)

// Planes returns the (horizontal, vertical) planes of the pair.
func (p PlanePair) Planes() (math.Plane, math.Plane) {
	switch p {
	case PlanesHyper:
		return math.PlaneXW, math.PlaneYW
	case PlanesDepth:
		return math.PlaneXY, math.PlaneZW
	default:
		return math.PlaneXZ, math.PlaneYZ
	}
}

// RotationInput carries the two scalar rotation axes of a frame.
type RotationInput struct {
	Horizontal float64
	Vertical   float64
	Planes     PlanePair
}

// FrameInput is everything the frame integrator consumes for one tick.
type FrameInput struct {
	Intents  Intents
	Rotation RotationInput
	// Reset restores the identity orientation before anything else runs.
	Reset bool
}

// DefaultBindings maps keys to movement intents.
func DefaultBindings() map[KeyCode]Intent {
	return map[KeyCode]Intent{
		KEY_W: MoveForward,
		KEY_S: MoveBack,
		KEY_A: StrafeLeft,
		KEY_D: StrafeRight,
		KEY_Q: MoveAna,
		KEY_E: MoveKata,
	}
}

/**
 * @brief Input collects raw events pushed by the host (possibly from another
 * goroutine) and turns them into one FrameInput per frame.
 */
type Input struct {
	mu       sync.Mutex
	queue    *containers.RingQueue[InputEvent]
	bindings map[KeyCode]Intent

	keys    [KEYS_MAX_KEYS]bool
	buttons [BUTTON_MAX_BUTTONS]bool
	// Rotation per frame while an arrow key is held.
	ArrowStep float64

	quit bool
}

func NewInput(queueSize int, bindings map[KeyCode]Intent) *Input {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Input{
		queue:     containers.NewRingQueue[InputEvent](queueSize),
		bindings:  bindings,
		ArrowStep: 1,
	}
}

// Push enqueues a raw event for the next frame.
func (in *Input) Push(e InputEvent) error {
	in.mu.Lock()
	defer in.mu.Unlock()
	if err := in.queue.Enqueue(e); err != nil {
		return fmt.Errorf("%w: dropping event %d", ErrQueueFull, e.Type)
	}
	return nil
}

// QuitRequested reports whether a quit event or the escape key was seen.
func (in *Input) QuitRequested() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.quit
}

// Frame drains the queued events and returns the input for this tick.
func (in *Input) Frame() FrameInput {
	in.mu.Lock()
	defer in.mu.Unlock()

	var frame FrameInput
	for !in.queue.IsEmpty() {
		e, _ := in.queue.Dequeue()
		switch e.Type {
		case EVENT_CODE_KEY_PRESSED, EVENT_CODE_KEY_RELEASED:
			if e.Key >= KEYS_MAX_KEYS {
				LogWarn("ignoring out of range key code %d", e.Key)
				continue
			}
			pressed := e.Type == EVENT_CODE_KEY_PRESSED
			in.keys[e.Key] = pressed
			if pressed && e.Key == KEY_R {
				frame.Reset = true
			}
			if pressed && e.Key == KEY_ESCAPE {
				in.quit = true
			}
		case EVENT_CODE_BUTTON_PRESSED, EVENT_CODE_BUTTON_RELEASED:
			if e.Button < BUTTON_MAX_BUTTONS {
				in.buttons[e.Button] = e.Type == EVENT_CODE_BUTTON_PRESSED
			}
		case EVENT_CODE_MOUSE_MOVED:
			// Only a drag rotates.
			if in.buttons[BUTTON_LEFT] {
				frame.Rotation.Horizontal += e.DX
				frame.Rotation.Vertical += e.DY
			}
		case EVENT_CODE_RESET:
			frame.Reset = true
		case EVENT_CODE_APPLICATION_QUIT:
			in.quit = true
		}
	}

	for key, intent := range in.bindings {
		if key < KEYS_MAX_KEYS && in.keys[key] {
			frame.Intents = frame.Intents.With(intent)
		}
	}
	if in.keys[KEY_LEFT] {
		frame.Rotation.Horizontal -= in.ArrowStep
	}
	if in.keys[KEY_RIGHT] {
		frame.Rotation.Horizontal += in.ArrowStep
	}
	if in.keys[KEY_UP] {
		frame.Rotation.Vertical -= in.ArrowStep
	}
	if in.keys[KEY_DOWN] {
		frame.Rotation.Vertical += in.ArrowStep
	}

	switch {
	case in.keys[KEY_SHIFT]:
		frame.Rotation.Planes = PlanesHyper
	case in.keys[KEY_CONTROL]:
		frame.Rotation.Planes = PlanesDepth
	default:
		frame.Rotation.Planes = PlanesSpatial
	}
	return frame
}
